// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"unicode"
)

// readInput resolves the bytes a subcommand operates on: a trailing
// file-path argument if one remains after flag parsing, otherwise
// standard input. hexMode decodes the input as whitespace-tolerant
// hex text first, the convention the teacher's cbor subcommand uses
// for pasting wire bytes on a terminal.
func readInput(args []string, hexMode bool) ([]byte, error) {
	var data []byte
	if len(args) > 0 {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", args[0], err)
		}
		data = raw
	} else {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		data = raw
	}
	if hexMode {
		return decodeHexInput(data)
	}
	return data, nil
}

// decodeHexInput strips whitespace and decodes the remainder as hex,
// so input copied from a log line or a hex dump tool works unmodified.
func decodeHexInput(data []byte) ([]byte, error) {
	stripped := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)
	decoded := make([]byte, hex.DecodedLen(len(stripped)))
	n, err := hex.Decode(decoded, stripped)
	if err != nil {
		return nil, fmt.Errorf("decoding hex input: %w", err)
	}
	return decoded[:n], nil
}
