// Copyright 2026 The Wireline Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"os"
)

func runConvert(args []string) error {
	fs := newFlagSet("convert")
	from := fs.String("from", "", "source format ("+fmt.Sprint(formatNames())+")")
	to := fs.String("to", "", "target format")
	hexIn := fs.Bool("hex", false, "input is hex text rather than raw bytes")
	hexOut := fs.Bool("out-hex", false, "print output as hex text rather than raw bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *from == "" || *to == "" {
		return fmt.Errorf("convert requires -from and -to")
	}
	srcFmt, err := lookupFormat(*from)
	if err != nil {
		return err
	}
	dstFmt, err := lookupFormat(*to)
	if err != nil {
		return err
	}

	data, err := readInput(fs.Args(), *hexIn)
	if err != nil {
		return err
	}
	v, err := srcFmt.decode(data)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", *from, err)
	}
	out, err := dstFmt.encode(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", *to, err)
	}
	if *hexOut {
		fmt.Println(hex.EncodeToString(out))
		return nil
	}
	_, err = os.Stdout.Write(out)
	return err
}
