// SPDX-License-Identifier: MIT-0
// SPDX-FileCopyrightText:  2024 Istvan Pasztor

package modelparse

import "strings"

// Kind classifies one fault found while parsing a catalogue line.
type Kind int

const (
	BadSyntax Kind = iota
	Repeated
	OutOfRange
	Missing
	Unknown
)

func (k Kind) String() string {
	switch k {
	case BadSyntax:
		return "bad syntax"
	case Repeated:
		return "repeated field"
	case OutOfRange:
		return "out of range"
	case Missing:
		return "missing field"
	case Unknown:
		return "unknown field"
	default:
		return "unknown fault"
	}
}

// FieldError is one fault attributed to a single field/token.
type FieldError struct {
	Kind  Kind
	Field string
	Msg   string
}

func (e FieldError) String() string {
	if e.Msg == "" {
		return e.Kind.String() + ": " + e.Field
	}
	return e.Kind.String() + ": " + e.Field + " (" + e.Msg + ")"
}

// ParseError aggregates every fault found on one catalogue line -- Parse
// never stops at the first bad token, mirroring original_source/model.c's
// style of reporting everything wrong with a line at once.
type ParseError struct {
	Line   string
	Faults []FieldError
}

func (e *ParseError) add(f FieldError) {
	e.Faults = append(e.Faults, f)
}

func (e *ParseError) Error() string {
	parts := make([]string, len(e.Faults))
	for i, f := range e.Faults {
		parts[i] = f.String()
	}
	return "modelparse: " + strings.Join(parts, "; ")
}
