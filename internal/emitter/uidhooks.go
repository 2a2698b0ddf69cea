// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// writeValidateChoices emits the compiled choice-group validator, per
// spec.md §4.4.
func (cr *classRenderer) writeValidateChoices(b *strings.Builder) {
	expr := compileChoiceValidator(cr.class, cr.tbls.ReservedNames)
	b.WriteString("// ValidateChoices reports whether the class's xsd:choice content is\n")
	b.WriteString("// satisfied: exactly one option group selected at every choice point\n")
	b.WriteString("// (or none, at a choice point with minOccurs=0).\n")
	fmt.Fprintf(b, "func (c *%s) ValidateChoices() bool {\n\treturn %s\n}\n\n", cr.name, expr)
}

// writeUIDHooks emits NotifyUIDChange (rewriting every UID-reference
// field that matches a renamed uID) and Close, the explicit teardown
// hook that substitutes for the original's virtual destructor -- Go has
// no deterministic destructor, so UID-manager unregistration on
// disposal is exposed as a method callers invoke explicitly instead of
// relying on scope exit.
func (cr *classRenderer) writeUIDHooks(b *strings.Builder) {
	refFields := make([]fieldView, 0)
	for _, fv := range cr.fields {
		if fv.IsUIDRef {
			refFields = append(refFields, fv)
		}
	}
	if len(refFields) > 0 {
		b.WriteString("// NotifyUIDChange rewrites every reference field currently set to\n")
		b.WriteString("// oldUID so it points at newUID instead, following a rename elsewhere\n")
		b.WriteString("// in the document.\n")
		fmt.Fprintf(b, "func (c *%s) NotifyUIDChange(oldUID, newUID string) {\n", cr.name)
		for _, fv := range refFields {
			switch fv.Cardinality() {
			case typesystem.Optional:
				fmt.Fprintf(b, "\tif c.%s != nil && *c.%s == oldUID {\n\t\t*c.%s = newUID\n\t}\n", fv.Ident, fv.Ident, fv.Ident)
			case typesystem.Vector:
				fmt.Fprintf(b, "\tfor i, v := range c.%s {\n\t\tif v == oldUID {\n\t\t\tc.%s[i] = newUID\n\t\t}\n\t}\n", fv.Ident, fv.Ident)
			default:
				fmt.Fprintf(b, "\tif c.%s == oldUID {\n\t\tc.%s = newUID\n\t}\n", fv.Ident, fv.Ident)
			}
		}
		b.WriteString("}\n\n")
	}

	if !cr.needsUIDManager() {
		return
	}
	b.WriteString("// Close unregisters this instance (and any UID references it holds)\n")
	b.WriteString("// from the UID manager. Call it when an instance is removed from the\n")
	b.WriteString("// document tree.\n")
	fmt.Fprintf(b, "func (c *%s) Close() {\n\tif c.uidMgr == nil {\n\t\treturn\n\t}\n", cr.name)
	if cr.class.HasUIDField() {
		uidField := findField(cr.fields, "uID")
		if uidField.Cardinality() == typesystem.Optional {
			fmt.Fprintf(b, "\tif c.%s != nil && *c.%s != \"\" {\n\t\tc.uidMgr.TryUnregisterObject(*c.%s)\n\t}\n", uidField.Ident, uidField.Ident, uidField.Ident)
		} else {
			fmt.Fprintf(b, "\tif c.%s != \"\" {\n\t\tc.uidMgr.TryUnregisterObject(c.%s)\n\t}\n", uidField.Ident, uidField.Ident)
		}
	}
	for _, fv := range refFields {
		switch fv.Cardinality() {
		case typesystem.Optional:
			fmt.Fprintf(b, "\tif c.%s != nil && *c.%s != \"\" {\n\t\tc.uidMgr.TryUnregisterReference(*c.%s, c)\n\t}\n", fv.Ident, fv.Ident, fv.Ident)
		case typesystem.Vector:
			fmt.Fprintf(b, "\tfor _, v := range c.%s {\n\t\tif v != \"\" {\n\t\t\tc.uidMgr.TryUnregisterReference(v, c)\n\t\t}\n\t}\n", fv.Ident)
		default:
			fmt.Fprintf(b, "\tif c.%s != \"\" {\n\t\tc.uidMgr.TryUnregisterReference(c.%s, c)\n\t}\n", fv.Ident, fv.Ident)
		}
	}
	b.WriteString("}\n\n")
}

func findField(fields []fieldView, cpacsName string) fieldView {
	for _, fv := range fields {
		if fv.CpacsName == cpacsName {
			return fv
		}
	}
	return fieldView{}
}
