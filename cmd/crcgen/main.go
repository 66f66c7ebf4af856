// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

// Command crcgen reads CRC model descriptions (one per line, modelparse's
// key=value format) from standard input and writes one specialized Go
// source file per model into an output directory, plus an aggregate
// check-value test driver. Grounded on
// _examples/original_source/crcadd.c's create_source (the "file already
// exists -> skip with a warning" behavior) and crcgen.c's batch-driver
// main loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/crcforge/crcforge/codegen"
	"github.com/crcforge/crcforge/modelparse"
)

func main() {
	endian := flag.String("endian", "little", "byte order for the wordwise tables: little or big")
	wordBits := flag.Int("wordbits", 64, "machine word size for the wordwise tables: 32 or 64")
	outDir := flag.String("out", ".", "directory to write generated files into")
	flag.Parse()

	opts := codegen.Options{Endian: *endian, WordBits: *wordBits}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "crcgen: %v\n", err)
		os.Exit(1)
	}

	var generated []generatedModel
	fatal := false
	scanner := bufio.NewScanner(os.Stdin)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		spec, err := modelparse.Parse(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crcgen: line %d: %v\n", lineNo, err)
			continue
		}
		if spec.Width > 64 {
			fmt.Fprintf(os.Stderr, "crcgen: line %d: %q: width %d has no generated fast path, skipping\n", lineNo, spec.Name, spec.Width)
			continue
		}

		m := codegen.ModelInfo{
			Width: spec.Width, Poly: spec.Poly.Lo, Init: spec.Init.Lo, XorOut: spec.XorOut.Lo,
			RefIn: spec.RefIn, RefOut: spec.RefOut, Name: spec.Name, Slug: slug(spec.Name),
		}
		src, err := codegen.Generate(m, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crcgen: line %d: %v\n", lineNo, err)
			continue
		}

		path := fmt.Sprintf("%s/%s.go", strings.TrimSuffix(*outDir, "/"), strings.ToLower(m.Slug))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				fmt.Fprintf(os.Stderr, "crcgen: %s already exists, skipping\n", path)
				continue
			}
			fmt.Fprintf(os.Stderr, "crcgen: %v\n", err)
			fatal = true
			break
		}
		_, werr := f.WriteString(src)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			fmt.Fprintf(os.Stderr, "crcgen: writing %s: %v\n", path, firstErr(werr, cerr))
			fatal = true
			break
		}
		generated = append(generated, generatedModel{width: m.Width, slug: m.Slug, hasCheck: spec.HasCheck, check: spec.Check.Lo})
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "crcgen: reading stdin: %v\n", err)
		fatal = true
	}

	if !fatal && len(generated) > 0 {
		if err := writeCheckTest(*outDir, generated); err != nil {
			fmt.Fprintf(os.Stderr, "crcgen: %v\n", err)
			fatal = true
		}
	}

	if fatal {
		os.Exit(1)
	}
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}

// slug turns a catalogue name like "CRC-32/ISO-HDLC" into an
// identifier-safe form like "CRC32ISOHDLC".
func slug(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

type generatedModel struct {
	width    int
	slug     string
	hasCheck bool
	check    uint64
}

// writeCheckTest emits one aggregate test file exercising every model
// generated this run. Models whose input line carried a check value get
// an exact assertion; the others (generator "lenient mode", spec.md
// §6.1) just get a smoke call confirming the generated function runs.
func writeCheckTest(outDir string, generated []generatedModel) error {
	path := strings.TrimSuffix(outDir, "/") + "/crc_check_test.go"
	var b strings.Builder
	b.WriteString("// Code generated by crcforge/cmd/crcgen. DO NOT EDIT.\n\n")
	b.WriteString("package crcpresets\n\n")
	b.WriteString("import \"testing\"\n\n")
	b.WriteString("func TestGeneratedCheckValues(t *testing.T) {\n")
	for _, g := range generated {
		fn := fmt.Sprintf("CRC%d%s", g.width, g.slug)
		if g.hasCheck {
			fmt.Fprintf(&b, "\tif got := %s([]byte(\"123456789\")); got != %#x {\n\t\tt.Errorf(\"%s: got %%#x, want %#x\", got)\n\t}\n", fn, g.check, fn, g.check)
		} else {
			fmt.Fprintf(&b, "\t_ = %s([]byte(\"123456789\"))\n", fn)
		}
	}
	b.WriteString("}\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
