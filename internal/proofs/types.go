// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package proofs holds the proof domain types and the request flow.
package proofs

// =============================================================================
// PROOF TYPE
// =============================================================================

// Type is the closed set of proof kinds the service can generate. Anything
// the service reports outside this set renders through the raw string and
// is never requestable from here.
type Type string

const (
	TypeAgeOver18      Type = "age_over_18"
	TypeAgeOver21      Type = "age_over_21"
	TypeNotSanctioned  Type = "not_sanctioned"
	TypeIsHuman        Type = "is_human"
	TypeUniquePerson   Type = "unique_person"
	TypeCountryAllowed Type = "country_allowed"
)

// All lists the known proof types in display order.
func All() []Type {
	return []Type{
		TypeAgeOver18,
		TypeAgeOver21,
		TypeNotSanctioned,
		TypeIsHuman,
		TypeUniquePerson,
		TypeCountryAllowed,
	}
}

// ParseType maps a wire string onto the closed set.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeAgeOver18, TypeAgeOver21, TypeNotSanctioned,
		TypeIsHuman, TypeUniquePerson, TypeCountryAllowed:
		return Type(s), true
	}
	return "", false
}

// Label returns the human-readable name.
func (t Type) Label() string {
	switch t {
	case TypeAgeOver18:
		return "Age over 18"
	case TypeAgeOver21:
		return "Age over 21"
	case TypeNotSanctioned:
		return "Not sanctioned"
	case TypeIsHuman:
		return "Proof of humanity"
	case TypeUniquePerson:
		return "Unique person"
	case TypeCountryAllowed:
		return "Country allowed"
	}
	return string(t)
}

// Glyph returns the one-cell icon shown in lists and pickers.
func (t Type) Glyph() string {
	switch t {
	case TypeAgeOver18, TypeAgeOver21:
		return "◆"
	case TypeNotSanctioned:
		return "✓"
	case TypeIsHuman:
		return "●"
	case TypeUniquePerson:
		return "◎"
	case TypeCountryAllowed:
		return "▣"
	}
	return "·"
}

// Summary returns the one-line explanation shown under the picker entry.
func (t Type) Summary() string {
	switch t {
	case TypeAgeOver18:
		return "Prove you are over 18 without revealing your birth date."
	case TypeAgeOver21:
		return "Prove you are over 21 without revealing your birth date."
	case TypeNotSanctioned:
		return "Prove you are not on a sanctions list without revealing your identity."
	case TypeIsHuman:
		return "Prove you are a verified human, not a bot."
	case TypeUniquePerson:
		return "Prove you hold exactly one account without linking them."
	case TypeCountryAllowed:
		return "Prove your residence is in an allowed country without naming it."
	}
	return ""
}
