// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/wireline-go/wireline/internal/detcbor"
	"github.com/wireline-go/wireline/lib/cbor"
)

func runValidate(args []string) error {
	fs := newFlagSet("validate")
	formatName := fs.String("format", "", "wire format (required)")
	hexIn := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formatName == "" {
		return fmt.Errorf("validate requires -format")
	}
	data, err := readInput(fs.Args(), *hexIn)
	if err != nil {
		return err
	}

	if *formatName == "cbor" {
		// lib/cbor.Validate checks the structural span is exactly one
		// value with no trailing bytes; detcbor.Validate is a second,
		// independently-implemented decoder as a cross-check.
		if err := cbor.Validate(data, 0, len(data)); err != nil {
			return fmt.Errorf("invalid: %w", err)
		}
		if err := detcbor.Validate(data); err != nil {
			return fmt.Errorf("invalid (cross-check failed): %w", err)
		}
		fmt.Println("ok")
		return nil
	}

	f, err := lookupFormat(*formatName)
	if err != nil {
		return err
	}
	if _, err := f.decode(data); err != nil {
		return fmt.Errorf("invalid: %w", err)
	}
	fmt.Println("ok")
	return nil
}
