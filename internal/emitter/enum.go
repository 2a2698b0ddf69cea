// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// renderEnum produces the complete Go source for one collapsed
// enumeration: a string-backed named type, one constant per surviving
// value, a String method returning the original CPACS literal, and a
// case-sensitive-first (falling back to case-insensitive) parser.
func renderEnum(enum *typesystem.Enum, tbls *tables.Tables, pkg string) string {
	name := emittedTypeName(enum.Name, tbls)

	var body strings.Builder
	writeDocComment(&body, name, enum.Documentation)
	fmt.Fprintf(&body, "type %s string\n\n", name)

	fmt.Fprintf(&body, "const (\n")
	for _, v := range enum.Values {
		constName := enumConstName(name, v.Name(), tbls.ReservedNames)
		fmt.Fprintf(&body, "\t%s %s = %q\n", constName, name, v.CpacsName)
	}
	body.WriteString(")\n\n")

	fmt.Fprintf(&body, "// String returns the CPACS literal %s represents.\n", name)
	fmt.Fprintf(&body, "func (v %s) String() string {\n\treturn string(v)\n}\n\n", name)

	fmt.Fprintf(&body, "// Parse%s resolves a CPACS literal to its %s constant, matching\n", name, name)
	body.WriteString("// case-insensitively if no exact match is found.\n")
	fmt.Fprintf(&body, "func Parse%s(raw string) (%s, error) {\n", name, name)
	fmt.Fprintf(&body, "\tswitch %s(raw) {\n", name)
	for _, v := range enum.Values {
		constName := enumConstName(name, v.Name(), tbls.ReservedNames)
		fmt.Fprintf(&body, "\tcase %s:\n\t\treturn %s, nil\n", constName, constName)
	}
	body.WriteString("\t}\n")
	fmt.Fprintf(&body, "\tfor _, v := range []%s{", name)
	for i, v := range enum.Values {
		if i > 0 {
			body.WriteString(", ")
		}
		body.WriteString(enumConstName(name, v.Name(), tbls.ReservedNames))
	}
	body.WriteString("} {\n")
	fmt.Fprintf(&body, "\t\tif strings.EqualFold(string(v), raw) {\n\t\t\treturn v, nil\n\t\t}\n\t}\n")
	fmt.Fprintf(&body, "\treturn \"\", fmt.Errorf(\"%s: not a valid value: %%q\", raw)\n}\n\n", name)

	return assembleFile(pkg, body.String(), nil)
}
