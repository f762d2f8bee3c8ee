// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

// Command wire is a CLI surface over this module's codecs (spec §6's
// programmatic surface, exposed as subcommands): convert between wire
// formats, print diagnostic notation, validate well-formedness, and
// resolve a path within a document without fully decoding it.
package main

import (
	"flag"
	"fmt"
	"os"
)

type subcommand struct {
	name    string
	summary string
	run     func(args []string) error
}

var subcommands = []subcommand{
	{"convert", "re-encode a value from one wire format to another", runConvert},
	{"diag", "print diagnostic notation for a value", runDiag},
	{"validate", "check that input is a single well-formed value", runValidate},
	{"at", "resolve a path within a value without fully decoding it", runAt},
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing subcommand")
	}
	for _, sc := range subcommands {
		if args[0] == sc.name {
			return sc.run(args[1:])
		}
	}
	usage()
	return fmt.Errorf("unknown subcommand %q", args[0])
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: wire <subcommand> [flags] [file]")
	fmt.Fprintln(os.Stderr, "subcommands:")
	for _, sc := range subcommands {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", sc.name, sc.summary)
	}
	fmt.Fprintf(os.Stderr, "formats: %v\n", formatNames())
}

// newFlagSet returns a FlagSet preconfigured for a subcommand: it
// writes usage to stderr and does not exit the process on a parse
// error, so run's caller can report it uniformly.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	return fs
}
