// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

// Command crccheck reads CRC model descriptions from standard input (the
// modelparse key=value format) and verifies the Check and Residue values
// each line carries against the model crcforge actually builds, printing
// one PASS/FAIL line per model. Grounded on
// _examples/original_source/crctest.c and mincrc.c's self-check loops --
// the "check-value regression driver" of spec.md §1.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/crcforge/crcforge/modelparse"
)

func main() {
	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	anyFailed := false
	anyModel := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		spec, err := modelparse.Parse(line)
		if err != nil {
			fmt.Printf("FAIL  line %d: %v\n", lineNo, err)
			anyFailed = true
			continue
		}
		anyModel = true

		model, err := spec.Prepare()
		if err != nil {
			fmt.Printf("FAIL  %s: %v\n", displayName(spec), err)
			anyFailed = true
			continue
		}

		okCheck, wantCheck, gotCheck := spec.VerifyCheck(model)
		okResidue, wantResidue, gotResidue := spec.VerifyResidue(model)
		if okCheck && okResidue {
			fmt.Printf("PASS  %s\n", displayName(spec))
			continue
		}

		anyFailed = true
		if !okCheck {
			fmt.Printf("FAIL  %s: check: want %#x, got %#x\n", displayName(spec), wantCheck, gotCheck)
		}
		if !okResidue {
			fmt.Printf("FAIL  %s: residue: want %#x, got %#x\n", displayName(spec), wantResidue, gotResidue)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "crccheck: reading stdin: %v\n", err)
		os.Exit(1)
	}
	if !anyModel {
		fmt.Fprintln(os.Stderr, "crccheck: no models read from stdin")
	}
	if anyFailed {
		os.Exit(1)
	}
}

func displayName(s modelparse.Spec) string {
	if s.HasName {
		return s.Name
	}
	return fmt.Sprintf("width=%d poly=%#x", s.Width, s.Poly.Lo)
}
