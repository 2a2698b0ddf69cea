// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// uidRefTypeName is the well-known CPACS base type that marks a field as
// a UID reference (a string that names another object's uID elsewhere
// in the document), grounded in the original tool's c_uidRefType
// constant ("stringUIDBaseType").
const uidRefTypeName = "stringUIDBaseType"

// fieldView is a Field plus everything precomputed for emission: the Go
// identifiers, the resolved element type, and the wrapped declaration
// type that cardinality dictates (value / pointer / slice).
type fieldView struct {
	typesystem.Field
	Ident      string // unexported struct field name
	Accessor   string // exported Get/Set stem
	ElemType   string // element Go type, unwrapped by cardinality
	DeclType   string // actual struct field type
	Kind       kind
	Import     string
	IsUIDField bool
	IsUIDRef   bool
}

func buildFieldViews(class *typesystem.Class, ts *typesystem.TypeSystem, tbls *tables.Tables) []fieldView {
	views := make([]fieldView, 0, len(class.Fields))
	for _, f := range class.Fields {
		views = append(views, buildFieldView(f, ts, tbls))
	}
	return views
}

func buildFieldView(f typesystem.Field, ts *typesystem.TypeSystem, tbls *tables.Tables) fieldView {
	ref := resolveFieldType(f.TypeName, ts, tbls)
	k := classifyType(f.TypeName, ts)

	elem := ref.GoType
	if k == kindClass || k == kindEnum {
		elem = emittedTypeName(f.TypeName, tbls)
	}

	fv := fieldView{
		Field:      f,
		Ident:      fieldIdent(f.Name(), tbls.ReservedNames),
		Accessor:   accessorName(f.Name()),
		ElemType:   elem,
		Kind:       k,
		Import:     ref.Import,
		IsUIDField: f.CpacsName == "uID",
		IsUIDRef:   f.XMLTypeName == uidRefTypeName,
	}

	switch f.Cardinality() {
	case typesystem.Mandatory:
		fv.DeclType = elem
	case typesystem.Optional:
		fv.DeclType = "*" + elem
	case typesystem.Vector:
		if k == kindClass {
			fv.DeclType = "[]*" + elem
		} else {
			fv.DeclType = "[]" + elem
		}
	}
	return fv
}
