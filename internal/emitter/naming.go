// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"strings"
	"unicode"

	"github.com/cpacsgen/cpacsgen/internal/tables"
)

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowerFirst lower-cases the first rune, leaving the rest untouched.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// fieldIdent derives the unexported struct field identifier for a
// Field.Name(): lower-cased leading rune, prefixed with an underscore
// if the result collides with a reserved identifier (a Go keyword, by
// default -- see tables.defaultReservedNames).
func fieldIdent(name string, reserved tables.Set) string {
	id := lowerFirst(name)
	if reserved.Contains(id) {
		id = "_" + id
	}
	return id
}

// accessorName derives the exported Get/Set method stem for a field.
func accessorName(name string) string {
	return capitalize(name)
}

// mangleEnumValue turns a raw CPACS enumeration literal into a
// legal-identifier suffix, per spec.md §4.4:
//
//  1. a value beginning with a digit is prefixed with "_"
//  2. a value of the shape "-<digits>" becomes "_neg<digits>"
//  3. every remaining non-alphanumeric rune becomes "_"
//  4. a result colliding with a reserved identifier is prefixed with "_"
func mangleEnumValue(raw string, reserved tables.Set) string {
	s := raw
	if strings.HasPrefix(s, "-") && isAllDigits(s[1:]) {
		s = "_neg" + s[1:]
	} else if s != "" && unicode.IsDigit(rune(s[0])) {
		s = "_" + s
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	s = b.String()

	if reserved.Contains(s) {
		s = "_" + s
	}
	return s
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// enumConstName builds the Go constant identifier for one enum value:
// the enum's type name followed by the capitalized, mangled value.
func enumConstName(enumName, value string, reserved tables.Set) string {
	return enumName + capitalize(mangleEnumValue(value, reserved))
}

// goIdentFromTypeName derives a package-qualified-safe base name to use
// in generated identifiers (e.g. constructor suffixes) from a class
// name, stripping nothing -- class/enum names are already valid Go
// exported identifiers by construction (typesystem guarantees this).
func goIdentFromTypeName(name string) string {
	return name
}
