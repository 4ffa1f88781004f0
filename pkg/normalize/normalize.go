// Package normalize maps raw department names and codes to the canonical
// strings used as matching keys.
//
// Two policies exist because the AO and MVDR exports were reconciled with
// different rules over time. The policy is always chosen explicitly:
//
//	strict  names: keep Latin/Cyrillic letters, digits and spaces; collapse
//	        spaces; upper-case. codes: trim; upper-case.
//	loose   names: trim; collapse spaces; lower-case; punctuation kept.
//	        codes: trim; lower-case.
//
// All functions are pure and idempotent.
package normalize

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/agentstation/deptmerge/pkg/errors"
)

// Policy names a normalization rule set.
type Policy string

const (
	// Strict strips punctuation from names and upper-cases names and codes.
	Strict Policy = "strict"
	// Loose only trims, collapses whitespace and lower-cases.
	Loose Policy = "loose"
)

// DefaultPolicy is used when no policy is configured.
const DefaultPolicy = Strict

// Policies lists every supported policy.
func Policies() []Policy {
	return []Policy{Strict, Loose}
}

// String returns the string representation of a policy.
func (p Policy) String() string {
	return string(p)
}

// Description returns a human-readable description of the policy.
func (p Policy) Description() string {
	switch p {
	case Strict:
		return "strip punctuation from names, collapse whitespace, upper-case"
	case Loose:
		return "trim, collapse whitespace in names, lower-case, keep punctuation"
	default:
		return "unknown"
	}
}

// Valid reports whether p is a supported policy.
func (p Policy) Valid() bool {
	return p == Strict || p == Loose
}

// ParsePolicy converts a configuration value to a Policy.
// The empty string selects DefaultPolicy.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPolicy, nil
	}
	if !p.Valid() {
		return "", errors.NewConfigError("normalize",
			fmt.Sprintf("unknown policy %q: must be one of: strict, loose", s), errors.ErrInvalidInput)
	}
	return p, nil
}

// Name normalizes a department name under the policy.
func (p Policy) Name(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	switch p {
	case Loose:
		return strings.ToLower(collapseSpaces(s))
	default:
		return strings.ToUpper(collapseSpaces(strings.Map(keepNameRune, s)))
	}
}

// Code normalizes a department code under the policy. Codes are never
// stripped: punctuation is part of the code.
func (p Policy) Code(s string) string {
	if s == "" {
		return ""
	}
	switch p {
	case Loose:
		return strings.ToLower(strings.TrimSpace(s))
	default:
		return strings.ToUpper(strings.TrimSpace(s))
	}
}

// keepNameRune drops everything except Latin and Cyrillic letters, ASCII
// digits and whitespace.
func keepNameRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		return r
	case r >= 'А' && r <= 'я', r == 'Ё', r == 'ё':
		return r
	case r >= '0' && r <= '9':
		return r
	case unicode.IsSpace(r):
		return r
	default:
		return -1
	}
}

// collapseSpaces trims s and replaces every whitespace run with one space.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
