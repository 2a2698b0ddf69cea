// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// typeRef is what a Field's typeName resolves to for emission: the Go
// type expression to print, and, if it names a type from outside this
// generated package, the import path to pull in. CustomTypes entries
// are written as "import/path#TypeName"; an entry with no "#" just
// renames the generated type without introducing an import (still a
// same-package type, as when a class's emitted name needs to avoid a
// clash with hand-written code in the output package).
type typeRef struct {
	GoType string
	Import string
}

// resolveCustomType applies the customTypes override table to name,
// returning the override (with its import split out) if present.
func resolveCustomType(name string, tbls *tables.Tables) (typeRef, bool) {
	override, ok := tbls.CustomTypes.Find(name)
	if !ok {
		return typeRef{}, false
	}
	if idx := strings.LastIndex(override, "#"); idx >= 0 {
		return typeRef{GoType: override[idx+1:], Import: override[:idx]}, true
	}
	return typeRef{GoType: override}, true
}

// kind classifies a resolved Field.TypeName for emission purposes.
type kind int

const (
	kindClass kind = iota
	kindEnum
	kindScalar
)

func classifyType(typeName string, ts *typesystem.TypeSystem) kind {
	if _, ok := ts.ClassByName(typeName); ok {
		return kindClass
	}
	if _, ok := ts.EnumByName(typeName); ok {
		return kindEnum
	}
	return kindScalar
}

// emittedTypeName returns the Go type name a Class or Enum is emitted
// under: its typesystem name, unless customTypes renames it.
func emittedTypeName(name string, tbls *tables.Tables) string {
	if r, ok := resolveCustomType(name, tbls); ok {
		return r.GoType
	}
	return name
}

// resolveFieldType resolves a Field.TypeName to the Go type reference
// to print for it (before any cardinality wrapping), plus the import it
// needs, if any.
func resolveFieldType(typeName string, ts *typesystem.TypeSystem, tbls *tables.Tables) typeRef {
	if r, ok := resolveCustomType(typeName, tbls); ok {
		return r
	}
	switch classifyType(typeName, ts) {
	case kindClass, kindEnum:
		return typeRef{GoType: typeName}
	default:
		if typeName == "time.Time" {
			return typeRef{GoType: "time.Time", Import: "time"}
		}
		return typeRef{GoType: typeName}
	}
}
