// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

// Package modelparse reads the RevEng "Painless Guide" catalogue line
// format -- whitespace-separated `key=value` tokens describing one CRC
// model per line -- and turns each line into a Spec ready for Spec.Prepare
// to build into a crcforge.Model. Grounded on
// _examples/original_source/model.c's read_var/strtobig (the C
// tokenizer/numeric-literal parser this package re-expresses in Go), with
// error aggregation in the teacher's reported-errors style (every fault on
// a line is collected, not just the first).
package modelparse

import (
	"math/big"
	"strings"
)

// BigUint holds a CRC parameter value of up to 128 bits, split into a high
// and low 64-bit half (hi holds bits 64 and up). Narrow (width<=64) models
// always carry a zero Hi.
type BigUint struct {
	Hi, Lo uint64
}

// Spec is the plain-data, pre-normalization result of Parse -- one parsed
// catalogue line. Parse itself applies the refin/refout-copy rule and
// leaves absent init/xorout/check/residue values at zero; the Has* flags
// record which fields the line actually carried.
type Spec struct {
	Width int

	Poly   BigUint
	Init   BigUint
	XorOut BigUint
	Check  BigUint
	Residue BigUint

	RefIn  bool
	RefOut bool

	Name string

	HasInit    bool
	HasXorOut  bool
	HasCheck   bool
	HasResidue bool
	HasRefIn   bool
	HasRefOut  bool
	HasName    bool
}

// key identifies one of the nine recognised fields.
type key int

const (
	keyWidth key = iota
	keyPoly
	keyInit
	keyRefIn
	keyRefOut
	keyXorOut
	keyCheck
	keyResidue
	keyName
)

var keyNames = map[key]string{
	keyWidth:   "width",
	keyPoly:    "poly",
	keyInit:    "init",
	keyRefIn:   "refin",
	keyRefOut:  "refout",
	keyXorOut:  "xorout",
	keyCheck:   "check",
	keyResidue: "residue",
	keyName:    "name",
}

// minAbbrev is the minimum prefix length accepted for a key; keys absent
// from this map need only a single matching character, provided the
// prefix is unambiguous among the other keys. refout needs at least 4
// characters and residue at least 3; a shorter prefix does not count as a
// candidate for them, so "r", "re" and "ref" all resolve to refin instead
// of being reported as ambiguous.
var minAbbrev = map[key]int{
	keyRefOut:  4,
	keyResidue: 3,
}

// resolveKey maps a lowercased token to the one key it abbreviates, or
// reports ambiguous/unknown. tok must be non-empty.
func resolveKey(tok string) (k key, ok, ambiguous bool) {
	matches := make([]key, 0, 2)
	for kk, name := range keyNames {
		if strings.HasPrefix(name, tok) {
			if floor, has := minAbbrev[kk]; has && len(tok) < floor {
				continue
			}
			matches = append(matches, kk)
		}
	}
	if len(matches) == 1 {
		return matches[0], true, false
	}
	if len(matches) > 1 {
		return 0, false, true
	}
	return 0, false, false
}

// Parse turns one key=value ... line into a Spec, aggregating every fault
// found into a single *ParseError rather than stopping at the first.
func Parse(line string) (Spec, error) {
	perr := &ParseError{Line: line}
	seen := map[key]bool{}

	var spec Spec
	rawPoly := rawNum{}
	rawInit := rawNum{}
	rawXorOut := rawNum{}
	rawCheck := rawNum{}
	rawResidue := rawNum{}
	haveWidth := false

	for _, tok := range tokenize(line) {
		eq := strings.IndexByte(tok, '=')
		if eq <= 0 {
			perr.add(FieldError{Kind: BadSyntax, Field: tok, Msg: "expected key=value"})
			continue
		}
		rawKey, rawVal := tok[:eq], tok[eq+1:]
		k, ok, ambiguous := resolveKey(strings.ToLower(rawKey))
		if ambiguous {
			perr.add(FieldError{Kind: BadSyntax, Field: rawKey, Msg: "ambiguous abbreviation"})
			continue
		}
		if !ok {
			perr.add(FieldError{Kind: Unknown, Field: rawKey})
			continue
		}
		if seen[k] {
			perr.add(FieldError{Kind: Repeated, Field: keyNames[k]})
			continue
		}
		seen[k] = true

		switch k {
		case keyWidth:
			n, ok := parseUintLiteral(rawVal)
			if !ok || n.Sign() <= 0 || !n.IsInt64() || n.Int64() > 128 {
				perr.add(FieldError{Kind: OutOfRange, Field: "width", Msg: "must be an integer in [1, 128]"})
				continue
			}
			spec.Width = int(n.Int64())
			haveWidth = true
		case keyPoly:
			if v, bad := parseSigned(rawVal); bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "poly"})
			} else {
				rawPoly = v
			}
		case keyInit:
			if v, bad := parseSigned(rawVal); bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "init"})
			} else {
				rawInit = v
				spec.HasInit = true
			}
		case keyXorOut:
			if v, bad := parseSigned(rawVal); bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "xorout"})
			} else {
				rawXorOut = v
				spec.HasXorOut = true
			}
		case keyCheck:
			if v, bad := parseSigned(rawVal); bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "check"})
			} else {
				rawCheck = v
				spec.HasCheck = true
			}
		case keyResidue:
			if v, bad := parseSigned(rawVal); bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "residue"})
			} else {
				rawResidue = v
				spec.HasResidue = true
			}
		case keyRefIn:
			b, ok := parseBool(rawVal)
			if !ok {
				perr.add(FieldError{Kind: BadSyntax, Field: "refin", Msg: "expected true/false"})
				continue
			}
			spec.RefIn = b
			spec.HasRefIn = true
		case keyRefOut:
			b, ok := parseBool(rawVal)
			if !ok {
				perr.add(FieldError{Kind: BadSyntax, Field: "refout", Msg: "expected true/false"})
				continue
			}
			spec.RefOut = b
			spec.HasRefOut = true
		case keyName:
			name, bad := parseName(rawVal)
			if bad {
				perr.add(FieldError{Kind: BadSyntax, Field: "name", Msg: "unterminated quote"})
				continue
			}
			spec.Name = name
			spec.HasName = true
		}
	}

	var missing []string
	if !haveWidth {
		missing = append(missing, "width")
	}
	if !seen[keyPoly] {
		missing = append(missing, "poly")
	}
	if !spec.HasRefIn && !spec.HasRefOut {
		missing = append(missing, "refin/refout")
	}
	if len(missing) > 0 {
		perr.add(FieldError{Kind: Missing, Field: strings.Join(missing, ",")})
	}

	if !spec.HasRefIn {
		spec.RefIn = spec.RefOut
	}
	if !spec.HasRefOut {
		spec.RefOut = spec.RefIn
	}

	if haveWidth {
		spec.Poly = wrapToWidth(rawPoly, spec.Width, perr, "poly")
		spec.Init = wrapToWidth(rawInit, spec.Width, perr, "init")
		spec.XorOut = wrapToWidth(rawXorOut, spec.Width, perr, "xorout")
		spec.Check = wrapToWidth(rawCheck, spec.Width, perr, "check")
		spec.Residue = wrapToWidth(rawResidue, spec.Width, perr, "residue")
	}

	if len(perr.Faults) > 0 {
		return Spec{}, perr
	}
	return spec, nil
}

// tokenize splits line on runs of whitespace, except inside a double-quoted
// name=value token where embedded spaces and ""-escaped quotes stay intact.
func tokenize(line string) []string {
	var toks []string
	i, n := 0, len(line)
	for i < n {
		for i < n && isSpace(line[i]) {
			i++
		}
		if i >= n {
			break
		}
		start := i
		inQuote := false
		for i < n {
			c := line[i]
			if c == '"' {
				if inQuote && i+1 < n && line[i+1] == '"' {
					i += 2
					continue
				}
				inQuote = !inQuote
				i++
				continue
			}
			if isSpace(c) && !inQuote {
				break
			}
			i++
		}
		toks = append(toks, line[start:i])
	}
	return toks
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

type rawNum struct {
	mag *big.Int
	neg bool
	set bool
}

// parseSigned parses a poly/init/xorout/check/residue literal: decimal,
// 0x-hex, 0-octal, with an optional leading '-' (wrapped to width bits
// once width is known -- see wrapToWidth).
func parseSigned(s string) (rawNum, bool) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	n, ok := parseUintLiteral(s)
	if !ok {
		return rawNum{}, true
	}
	return rawNum{mag: n, neg: neg, set: true}, false
}

// parseUintLiteral parses a non-negative decimal, 0x-hex, or 0-octal
// literal, mirroring original_source/model.c's strtobig magnitude path.
func parseUintLiteral(s string) (*big.Int, bool) {
	if s == "" {
		return nil, false
	}
	base := 10
	digits := s
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case len(s) > 1 && s[0] == '0':
		base, digits = 8, s[1:]
	}
	if digits == "" {
		if base == 8 {
			return big.NewInt(0), true
		}
		return nil, false
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok || n.Sign() < 0 {
		return nil, false
	}
	return n, true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// parseName strips one layer of surrounding double quotes, unescaping ""
// to a literal ", or returns the bare token unquoted if it has none.
func parseName(s string) (string, bool) {
	if len(s) == 0 || s[0] != '"' {
		return s, false
	}
	if len(s) < 2 || s[len(s)-1] != '"' {
		return "", true
	}
	inner := s[1 : len(s)-1]
	return strings.ReplaceAll(inner, `""`, `"`), false
}

// wrapToWidth converts a raw (possibly negative) literal to a BigUint
// wrapped modulo 2^width (two's-complement wraparound for negatives), and
// flags OutOfRange when an unsigned literal doesn't fit in width bits.
func wrapToWidth(r rawNum, width int, perr *ParseError, field string) BigUint {
	if !r.set {
		return BigUint{}
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	v := new(big.Int).Set(r.mag)
	if r.neg {
		v.Neg(v)
		v.Mod(v, mod)
	} else if v.Cmp(mod) >= 0 {
		perr.add(FieldError{Kind: OutOfRange, Field: field, Msg: "value exceeds width bits"})
		v.Mod(v, mod)
	}
	full := make([]byte, 16)
	v.FillBytes(full[16-((width+7)/8):])
	var b BigUint
	for i := 0; i < 8; i++ {
		b.Lo |= uint64(full[15-i]) << uint(8*i)
	}
	for i := 0; i < 8; i++ {
		b.Hi |= uint64(full[7-i]) << uint(8*i)
	}
	return b
}
