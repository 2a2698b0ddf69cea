// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// writeAccessors emits one Get<Field> per field (returning the field's
// declared type directly) and, for scalar/enum fields, a matching
// Set<Field>. Class-typed fields are mutated only through the tree
// manipulators (writeTreeManipulators): an optional or vector nested
// class needs its parent back-reference wired at construction time, so
// a bare setter would let a caller attach an instance with a stale or
// absent parent link.
func (cr *classRenderer) writeAccessors(b *strings.Builder) {
	for _, fv := range cr.fields {
		fmt.Fprintf(b, "// Get%s returns the %s field.\n", fv.Accessor, fv.CpacsName)
		fmt.Fprintf(b, "func (c *%s) Get%s() %s {\n\treturn c.%s\n}\n\n", cr.name, fv.Accessor, fv.DeclType, fv.Ident)

		switch {
		case fv.Kind == kindClass:
			continue
		case fv.IsUIDField:
			cr.writeUIDSetter(b, fv)
		case fv.IsUIDRef && fv.Cardinality() != typesystem.Vector:
			cr.writeUIDRefSetter(b, fv)
		case fv.IsUIDRef && fv.Cardinality() == typesystem.Vector:
			continue // covered by AddTo/RemoveFrom in writeTreeManipulators
		default:
			fmt.Fprintf(b, "// Set%s assigns the %s field.\n", fv.Accessor, fv.CpacsName)
			fmt.Fprintf(b, "func (c *%s) Set%s(v %s) {\n\tc.%s = v\n}\n\n", cr.name, fv.Accessor, fv.DeclType, fv.Ident)
		}
	}
}

func (cr *classRenderer) writeUIDSetter(b *strings.Builder, fv fieldView) {
	fmt.Fprintf(b, "// Set%s assigns the object's uID, updating the UID manager's registration.\n", fv.Accessor)
	if fv.Cardinality() == typesystem.Optional {
		fmt.Fprintf(b, `func (c *%s) Set%s(v *string) {
	if c.uidMgr != nil {
		switch {
		case c.%s == nil && v != nil:
			c.uidMgr.RegisterObject(*v, c)
		case c.%s != nil && v == nil:
			c.uidMgr.TryUnregisterObject(*c.%s)
		case c.%s != nil && v != nil:
			c.uidMgr.UpdateObjectUID(*c.%s, *v)
		}
	}
	c.%s = v
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident, fv.Ident, fv.Ident, fv.Ident, fv.Ident)
		return
	}
	fmt.Fprintf(b, `func (c *%s) Set%s(v string) {
	if c.uidMgr != nil {
		if c.%s == "" {
			c.uidMgr.RegisterObject(v, c)
		} else {
			c.uidMgr.UpdateObjectUID(c.%s, v)
		}
	}
	c.%s = v
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident, fv.Ident)
}

func (cr *classRenderer) writeUIDRefSetter(b *strings.Builder, fv fieldView) {
	fmt.Fprintf(b, "// Set%s assigns the %s reference, updating the UID manager's back-references.\n", fv.Accessor, fv.CpacsName)
	if fv.Cardinality() == typesystem.Optional {
		fmt.Fprintf(b, `func (c *%s) Set%s(v *string) {
	if c.uidMgr != nil {
		if c.%s != nil && *c.%s != "" {
			c.uidMgr.TryUnregisterReference(*c.%s, c)
		}
		if v != nil && *v != "" {
			c.uidMgr.RegisterReference(*v, c)
		}
	}
	c.%s = v
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident, fv.Ident, fv.Ident)
		return
	}
	fmt.Fprintf(b, `func (c *%s) Set%s(v string) {
	if c.uidMgr != nil {
		if c.%s != "" {
			c.uidMgr.TryUnregisterReference(c.%s, c)
		}
		if v != "" {
			c.uidMgr.RegisterReference(v, c)
		}
	}
	c.%s = v
}

`, cr.name, fv.Accessor, fv.Ident, fv.Ident, fv.Ident)
}
