// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/wireline-go/wireline/internal/detcbor"
	"github.com/wireline-go/wireline/lib/json"
)

func runDiag(args []string) error {
	fs := newFlagSet("diag")
	formatName := fs.String("format", "cbor", "wire format")
	hexIn := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := readInput(fs.Args(), *hexIn)
	if err != nil {
		return err
	}

	if *formatName == "cbor" {
		// CBOR gets RFC 8949 §8 diagnostic notation from an
		// independent decoder (fxamacker/cbor), a cross-check lib/cbor
		// itself can't provide.
		text, err := detcbor.Diagnose(data)
		if err != nil {
			return fmt.Errorf("diagnosing cbor: %w", err)
		}
		fmt.Println(text)
		return nil
	}

	f, err := lookupFormat(*formatName)
	if err != nil {
		return err
	}
	v, err := f.decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *formatName, err)
	}
	pretty, err := json.Encode(v, json.EncOptions{Stable: true})
	if err != nil {
		return fmt.Errorf("formatting diagnostic output: %w", err)
	}
	fmt.Println(string(pretty))
	return nil
}
