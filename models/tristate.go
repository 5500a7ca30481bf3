package models

import (
	"bytes"
	"fmt"
)

// TriState represents a safety flag that may be affirmed, denied, or simply
// not recorded. Catalog data frequently omits safety information, and the
// filter predicates must treat "not recorded" differently from "no".
type TriState int8

const (
	TriUnknown TriState = iota
	TriYes
	TriNo
)

// True reports whether the flag is explicitly affirmed.
func (t TriState) True() bool { return t == TriYes }

// False reports whether the flag is explicitly denied.
func (t TriState) False() bool { return t == TriNo }

// Known reports whether the flag carries any recorded value.
func (t TriState) Known() bool { return t != TriUnknown }

var (
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
	jsonNull  = []byte("null")
)

func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case TriYes:
		return jsonTrue, nil
	case TriNo:
		return jsonFalse, nil
	default:
		return jsonNull, nil
	}
}

func (t *TriState) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, jsonTrue):
		*t = TriYes
	case bytes.Equal(data, jsonFalse):
		*t = TriNo
	case bytes.Equal(data, jsonNull):
		*t = TriUnknown
	default:
		return fmt.Errorf("tristate: cannot decode %q", data)
	}
	return nil
}

func (t TriState) String() string {
	switch t {
	case TriYes:
		return "yes"
	case TriNo:
		return "no"
	default:
		return "unknown"
	}
}
