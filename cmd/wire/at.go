// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/wireline-go/wireline/lib/json"
)

func runAt(args []string) error {
	fs := newFlagSet("at")
	formatName := fs.String("format", "", "wire format (required)")
	path := fs.String("path", "", `dotted path, e.g. "a.b[2].c" (required; "" selects the whole document)`)
	hexIn := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formatName == "" {
		return fmt.Errorf("at requires -format")
	}
	f, err := lookupFormat(*formatName)
	if err != nil {
		return err
	}
	p, err := parsePath(*path)
	if err != nil {
		return err
	}
	data, err := readInput(fs.Args(), *hexIn)
	if err != nil {
		return err
	}

	if f.navigator != nil {
		// The Navigable-backed path: cursor advances through data
		// without materializing the parts of the tree not on path
		// (spec §4.7), then decodes only the span it landed on.
		raw, err := f.navigator(data, p)
		if err != nil {
			return fmt.Errorf("resolving path: %w", err)
		}
		v, err := f.decode(raw.RawBytes)
		if err != nil {
			return fmt.Errorf("decoding resolved value: %w", err)
		}
		out, err := json.Encode(v, json.EncOptions{Stable: true})
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	v, err := f.decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *formatName, err)
	}
	found, err := genericNavigate(v, p)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	out, err := json.Encode(found, json.EncOptions{Stable: true})
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
