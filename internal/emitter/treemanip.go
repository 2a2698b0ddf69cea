// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// writeTreeManipulators emits the ergonomic mutation methods spec.md
// §4.4 calls for on every class-typed field: a get-or-create plus a
// remover for optionals, an appending factory plus a find-by-address
// remover for vectors. Vector fields carrying UID references get the
// AddTo/RemoveFrom pair instead, since their element is a bare string,
// not a nested class, and mutation means registering/unregistering with
// the UID manager rather than constructing anything.
func (cr *classRenderer) writeTreeManipulators(b *strings.Builder) {
	for _, fv := range cr.fields {
		switch {
		case fv.IsUIDRef && fv.Cardinality() == typesystem.Vector:
			cr.writeUIDRefVectorManipulators(b, fv)
		case fv.Kind == kindClass && fv.Cardinality() == typesystem.Optional:
			cr.writeOptionalClassManipulators(b, fv)
		case fv.Kind == kindClass && fv.Cardinality() == typesystem.Vector:
			cr.writeVectorClassManipulators(b, fv)
		}
	}
}

func singular(accessor string) string {
	if strings.HasSuffix(accessor, "ies") {
		return strings.TrimSuffix(accessor, "ies") + "y"
	}
	if strings.HasSuffix(accessor, "s") && !strings.HasSuffix(accessor, "ss") {
		return strings.TrimSuffix(accessor, "s")
	}
	return accessor
}

func (cr *classRenderer) writeOptionalClassManipulators(b *strings.Builder, fv fieldView) {
	fmt.Fprintf(b, "// GetOrCreate%s returns the %s field, constructing it (wired to this parent) if absent.\n", fv.Accessor, fv.CpacsName)
	fmt.Fprintf(b, `func (c *%s) GetOrCreate%s() *%s {
	if c.%s == nil {
		c.%s = %s
	}
	return c.%s
}

`, cr.name, fv.Accessor, fv.ElemType, fv.Ident, fv.Ident, cr.constructExpr(fv), fv.Ident)

	fmt.Fprintf(b, "// Remove%s clears the %s field.\n", fv.Accessor, fv.CpacsName)
	fmt.Fprintf(b, "func (c *%s) Remove%s() {\n\tc.%s = nil\n}\n\n", cr.name, fv.Accessor, fv.Ident)
}

func (cr *classRenderer) writeVectorClassManipulators(b *strings.Builder, fv fieldView) {
	sing := singular(fv.Accessor)
	fmt.Fprintf(b, "// Add%s appends a new %s (wired to this parent) and returns it.\n", sing, fv.ElemType)
	fmt.Fprintf(b, `func (c *%s) Add%s() *%s {
	item := %s
	c.%s = append(c.%s, item)
	return item
}

`, cr.name, sing, fv.ElemType, cr.constructExpr(fv), fv.Ident, fv.Ident)

	fmt.Fprintf(b, "// Remove%s removes item from the %s field by address, reporting whether it was found.\n", sing, fv.CpacsName)
	fmt.Fprintf(b, `func (c *%s) Remove%s(item *%s) bool {
	for i, v := range c.%s {
		if v == item {
			c.%s = append(c.%s[:i], c.%s[i+1:]...)
			return true
		}
	}
	return false
}

`, cr.name, sing, fv.ElemType, fv.Ident, fv.Ident, fv.Ident, fv.Ident)
}

func (cr *classRenderer) writeUIDRefVectorManipulators(b *strings.Builder, fv fieldView) {
	fmt.Fprintf(b, "// AddTo%s appends uid to the %s reference list, registering it with the UID manager.\n", fv.Accessor, fv.CpacsName)
	fmt.Fprintf(b, `func (c *%s) AddTo%s(uid string) {
	c.%s = append(c.%s, uid)
	if c.uidMgr != nil && uid != "" {
		c.uidMgr.RegisterReference(uid, c)
	}
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident)

	fmt.Fprintf(b, "// RemoveFrom%s removes the first occurrence of uid from the %s reference list.\n", fv.Accessor, fv.CpacsName)
	fmt.Fprintf(b, `func (c *%s) RemoveFrom%s(uid string) bool {
	for i, v := range c.%s {
		if v == uid {
			c.%s = append(c.%s[:i], c.%s[i+1:]...)
			if c.uidMgr != nil && uid != "" {
				c.uidMgr.TryUnregisterReference(uid, c)
			}
			return true
		}
	}
	return false
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident, fv.Ident, fv.Ident)
}

// constructExpr renders the expression used to build a fresh instance
// of a class-typed field's element type: wired to this instance as
// parent (and, if needed, sharing its UID manager) when the target
// class lists this class among its legal parents, otherwise a bare
// zero-value construction.
func (cr *classRenderer) constructExpr(fv fieldView) string {
	target, ok := cr.ts.ClassByName(fv.TypeName)
	if !ok {
		return fmt.Sprintf("New%s()", fv.ElemType)
	}
	isParent := false
	for _, pk := range target.ParentKinds {
		if pk == cr.class.Name {
			isParent = true
			break
		}
	}
	if !isParent {
		return fmt.Sprintf("New%s()", fv.ElemType)
	}
	if classNeedsUIDManager(target) {
		return fmt.Sprintf("New%sFrom%s(c, c.uidMgr)", fv.ElemType, cr.name)
	}
	return fmt.Sprintf("New%sFrom%s(c)", fv.ElemType, cr.name)
}

func classNeedsUIDManager(c *typesystem.Class) bool {
	if c.HasUIDField() {
		return true
	}
	for _, f := range c.Fields {
		if f.XMLTypeName == uidRefTypeName {
			return true
		}
	}
	return false
}
