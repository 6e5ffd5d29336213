package ftsearch

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode selects how MySQL interprets the search text.
type Mode int

const (
	// ModeAuto picks ModeBoolean when the text contains an Operators
	// character and ModeDefault otherwise.
	ModeAuto Mode = iota
	// ModeDefault renders no modifier; the server uses natural language.
	ModeDefault
	ModeNaturalLanguage
	ModeBoolean
	ModeQueryExpansion
)

// Operators are the boolean-mode characters that switch ModeAuto to ModeBoolean.
// An '@' alone does not, so plain text containing it still runs in the
// default mode.
const Operators = `+-><()*"`

var modeNames = map[Mode]string{
	ModeAuto:            "auto",
	ModeDefault:         "default",
	ModeNaturalLanguage: "natural language",
	ModeBoolean:         "boolean",
	ModeQueryExpansion:  "query expansion",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

func (m Mode) valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Clause returns the modifier placed after the AGAINST placeholder.
// ModeAuto and ModeDefault have none.
func (m Mode) Clause() string {
	switch m {
	case ModeNaturalLanguage:
		return "IN NATURAL LANGUAGE MODE"
	case ModeBoolean:
		return "IN BOOLEAN MODE"
	case ModeQueryExpansion:
		return "WITH QUERY EXPANSION"
	}
	return ""
}

// ParseMode reads a mode name as used in configuration and flags.
// It accepts the String() forms, case-insensitively, plus "" for auto
// and "natural" for natural language.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "", "auto":
		return ModeAuto, nil
	case "default", "none":
		return ModeDefault, nil
	case "natural", "natural language":
		return ModeNaturalLanguage, nil
	case "boolean":
		return ModeBoolean, nil
	case "query expansion", "natural language with query expansion":
		return ModeQueryExpansion, nil
	}
	return ModeAuto, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// SelectMode returns mode unless it is ModeAuto, in which case the text is
// scanned for Operators. The scan is a heuristic, not a parser: a stray
// quote in plain text is enough to switch to boolean mode.
func SelectMode(text string, mode Mode) Mode {
	if mode != ModeAuto {
		return mode
	}
	if strings.ContainsAny(text, Operators) {
		return ModeBoolean
	}
	return ModeDefault
}
