// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/capauth/authconfig"
	"github.com/hashicorp/capauth/provider"
	"github.com/hashicorp/capauth/sdk/secret"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/go-secure-stdlib/password"
)

const usage = `usage: cli <command> [flags]

commands:
  show       print the assembled auth config (secrets redacted)
  check      validate the assembled auth config
  gensecret  print a new auth secret
  hash       print a bcrypt hash of a password
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}
	cmd, args := args[0], args[1:]
	switch cmd {
	case "show":
		return runShow(args, stdout, stderr)
	case "check":
		return runCheck(args, stdout, stderr)
	case "gensecret":
		return runGenSecret(args, stdout, stderr)
	case "hash":
		return runHash(args, stdout, stderr)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}
}

// configFlags are shared by the commands which assemble a config
type configFlags struct {
	configFile string
	envPrefix  string
	logLevel   string
}

func (c *configFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "runtime config YAML filename")
	fs.StringVar(&c.envPrefix, "env-prefix", authconfig.DefaultEnvPrefix, "prefix of the environment overrides")
	fs.StringVar(&c.logLevel, "log-level", "warn", "log level: trace, debug, info, warn or error")
}

func (c *configFlags) assemble(stderr io.Writer) (*authconfig.Config, error) {
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "authconfig",
		Output: stderr,
		Level:  hclog.LevelFromString(c.logLevel),
	})
	rc, err := authconfig.LoadRuntimeConfig(
		authconfig.WithConfigFile(c.configFile),
		authconfig.WithEnvPrefix(c.envPrefix),
		authconfig.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return authconfig.Assemble(rc, provider.StaticVerifier{}, authconfig.WithLogger(logger))
}

func runShow(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cf configFlags
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	c, err := cf.assemble(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "An error occurred assembling the auth config:\n%s\n", err)
		return 1
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		fmt.Fprintf(stderr, "An error occurred encoding the auth config:\n%s\n", err)
		return 1
	}
	return 0
}

func runCheck(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cf configFlags
	cf.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	c, err := cf.assemble(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "An error occurred assembling the auth config:\n%s\n", err)
		return 1
	}
	if err := c.Validate(); err != nil {
		if merr, ok := err.(*multierror.Error); ok {
			fmt.Fprintf(stderr, "the auth config has %d problem(s):\n", len(merr.Errors))
			for _, e := range merr.Errors {
				fmt.Fprintf(stderr, "  - %s\n", e)
			}
			return 1
		}
		fmt.Fprintf(stderr, "the auth config is invalid:\n%s\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "auth config is valid: providers %v\n", c.ProviderIDs())
	return 0
}

func runGenSecret(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gensecret", flag.ContinueOnError)
	fs.SetOutput(stderr)
	length := fs.Int("length", secret.DefaultLength, "number of random bytes in the secret")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	s, err := secret.New(*length)
	if err != nil {
		fmt.Fprintf(stderr, "An error occurred generating the secret:\n%s\n", err)
		return 1
	}
	fmt.Fprintln(stdout, s)
	return 0
}

func runHash(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pw := fs.String("password", "", "password to hash (prompted for when empty)")
	cost := fs.Int("cost", provider.DefaultBcryptCost, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	value := *pw
	if value == "" {
		fmt.Fprintf(stderr, "Enter password: ")
		var err error
		value, err = password.Read(os.Stdin)
		fmt.Fprint(stderr, "\n")
		if err != nil {
			fmt.Fprintf(stderr, "An error occurred attempting to read the password. This is usually because the command isn't running in a terminal (TTY). The raw error was:\n\n%s\n", err)
			return 1
		}
	}
	h, err := provider.HashPassword(value, provider.WithCost(*cost))
	if err != nil {
		fmt.Fprintf(stderr, "An error occurred hashing the password:\n%s\n", err)
		return 1
	}
	// sanity check the hash the way it'll be used
	v, err := provider.NewBcryptVerifier(h, &provider.User{ID: "check"})
	if err == nil {
		_, err = v.Verify(context.Background(), value)
	}
	if err != nil {
		fmt.Fprintf(stderr, "An error occurred verifying the hash:\n%s\n", err)
		return 1
	}
	fmt.Fprintln(stdout, h)
	return 0
}
