// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import (
	"strings"
	"unicode"
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

// enumName derives a generated Enum's name from a CPACS simpleType
// name, per spec.md Phase B1: strip a trailing "Type", capitalize,
// prepend "CPACS".
func enumName(simpleTypeName string) string {
	stripped := strings.TrimSuffix(simpleTypeName, "Type")
	return "CPACS" + capitalize(stripped)
}

// normalizeForCollapse reduces an enum name to the canonical form used
// to detect collapse candidates in Phase B3: strip trailing digits and
// underscores, strip a trailing "_SimpleContent", strip any prefix up
// to the last underscore, capitalize, strip a trailing "Type", prepend
// "CPACS".
func normalizeForCollapse(name string) string {
	s := strings.TrimRight(name, "0123456789")
	s = strings.TrimRight(s, "_")
	s = strings.TrimSuffix(s, "_SimpleContent")
	if i := strings.LastIndex(s, "_"); i >= 0 {
		s = s[i+1:]
	}
	s = capitalize(s)
	s = strings.TrimSuffix(s, "Type")
	return "CPACS" + s
}
