// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// classRenderer carries everything one class's emission needs so its
// many small render* helpers don't have to thread arguments through.
type classRenderer struct {
	ts     *typesystem.TypeSystem
	tbls   *tables.Tables
	class  *typesystem.Class
	name   string // emitted (post-customTypes) class name
	fields []fieldView
}

// renderClass produces the complete Go source for one class: struct,
// constructors, accessors, tree manipulators, the choice validator and
// the ReadCPACS/WriteCPACS bodies. pkg is the output package name.
func renderClass(class *typesystem.Class, ts *typesystem.TypeSystem, tbls *tables.Tables, pkg string) (string, error) {
	cr := &classRenderer{
		ts:     ts,
		tbls:   tbls,
		class:  class,
		name:   emittedTypeName(class.Name, tbls),
		fields: buildFieldViews(class, ts, tbls),
	}

	for _, fv := range cr.fields {
		if fv.Kind == kindEnum && fv.Cardinality() == typesystem.Vector {
			return "", fmt.Errorf("%s.%s: vector of enum fields is not implemented", class.Name, fv.CpacsName)
		}
	}

	var body strings.Builder
	cr.writeDoc(&body)
	cr.writeStruct(&body)
	cr.writeConstructors(&body)
	cr.writeParentAccessors(&body)
	cr.writeUIDManagerAccessor(&body)
	cr.writeAccessors(&body)
	cr.writeTreeManipulators(&body)
	if class.Choices != nil {
		cr.writeValidateChoices(&body)
	}
	cr.writeReadCPACS(&body)
	cr.writeWriteCPACS(&body)
	cr.writeUIDHooks(&body)

	customImports := cr.customImportPaths()
	return assembleFile(pkg, body.String(), customImports), nil
}

func (cr *classRenderer) baseName() string {
	if cr.class.Base == "" {
		return ""
	}
	return emittedTypeName(cr.class.Base, cr.tbls)
}

func (cr *classRenderer) needsUIDManager() bool {
	if cr.class.HasUIDField() {
		return true
	}
	for _, fv := range cr.fields {
		if fv.IsUIDRef {
			return true
		}
	}
	return false
}

func (cr *classRenderer) customImportPaths() []string {
	seen := map[string]bool{}
	var out []string
	for _, fv := range cr.fields {
		if fv.Import != "" && !seen[fv.Import] {
			seen[fv.Import] = true
			out = append(out, fv.Import)
		}
	}
	sort.Strings(out)
	return out
}

func (cr *classRenderer) writeDoc(b *strings.Builder) {
	writeDocComment(b, cr.name, cr.class.Documentation)
}

func (cr *classRenderer) writeStruct(b *strings.Builder) {
	fmt.Fprintf(b, "type %s struct {\n", cr.name)
	if base := cr.baseName(); base != "" {
		fmt.Fprintf(b, "\t%s\n\n", base)
	}
	switch len(cr.class.ParentKinds) {
	case 0:
	case 1:
		fmt.Fprintf(b, "\tparent *%s\n", emittedTypeName(cr.class.ParentKinds[0], cr.tbls))
	default:
		fmt.Fprintf(b, "\tparent %s\n", cr.parentUnionName())
	}
	if cr.needsUIDManager() {
		b.WriteString("\tuidMgr cpacsxml.UIDManager\n")
	}
	if len(cr.class.ParentKinds) > 0 || cr.needsUIDManager() {
		b.WriteString("\n")
	}
	for _, fv := range cr.fields {
		if fv.Documentation != "" {
			writeDocComment(b, "", fv.Documentation)
		}
		fmt.Fprintf(b, "\t%s %s\n", fv.Ident, fv.DeclType)
	}
	b.WriteString("}\n\n")

	if len(cr.class.ParentKinds) > 1 {
		cr.writeParentUnionType(b)
	}
}

func (cr *classRenderer) parentUnionName() string {
	return cr.name + "Parent"
}

func (cr *classRenderer) writeParentUnionType(b *strings.Builder) {
	fmt.Fprintf(b, "// %s is a tagged union of %s's legal containing types:\n", cr.parentUnionName(), cr.name)
	b.WriteString("// exactly one field is non-nil, matching whichever parent actually holds this instance.\n")
	fmt.Fprintf(b, "type %s struct {\n", cr.parentUnionName())
	for _, p := range cr.class.ParentKinds {
		pn := emittedTypeName(p, cr.tbls)
		fmt.Fprintf(b, "\t%s *%s\n", pn, pn)
	}
	b.WriteString("}\n\n")
}

func (cr *classRenderer) writeConstructors(b *strings.Builder) {
	fmt.Fprintf(b, "// New%s builds a zero-value %s with no parent and no UID manager attached.\n", cr.name, cr.name)
	fmt.Fprintf(b, "func New%s() *%s {\n\treturn &%s{}\n}\n\n", cr.name, cr.name, cr.name)

	uidParam := ""
	uidArg := ""
	if cr.needsUIDManager() {
		uidParam = ", uidMgr cpacsxml.UIDManager"
		uidArg = ", uidMgr: uidMgr"
	}

	switch len(cr.class.ParentKinds) {
	case 0:
		return
	case 1:
		p := emittedTypeName(cr.class.ParentKinds[0], cr.tbls)
		fmt.Fprintf(b, "// New%sFrom%s builds a %s owned by parent.\n", cr.name, p, cr.name)
		fmt.Fprintf(b, "func New%sFrom%s(parent *%s%s) *%s {\n\treturn &%s{parent: parent%s}\n}\n\n",
			cr.name, p, p, uidParam, cr.name, cr.name, uidArg)
	default:
		for _, pk := range cr.class.ParentKinds {
			p := emittedTypeName(pk, cr.tbls)
			fmt.Fprintf(b, "// New%sFrom%s builds a %s owned by a %s parent.\n", cr.name, p, cr.name, p)
			fmt.Fprintf(b, "func New%sFrom%s(parent *%s%s) *%s {\n\treturn &%s{parent: %s{%s: parent}%s}\n}\n\n",
				cr.name, p, p, uidParam, cr.name, cr.name, cr.parentUnionName(), p, uidArg)
		}
	}
}

func (cr *classRenderer) writeParentAccessors(b *strings.Builder) {
	switch len(cr.class.ParentKinds) {
	case 0:
		return
	case 1:
		p := emittedTypeName(cr.class.ParentKinds[0], cr.tbls)
		fmt.Fprintf(b, "// GetParent returns the %s instance containing this one, or nil if unattached.\n", p)
		fmt.Fprintf(b, "func (c *%s) GetParent() *%s {\n\treturn c.parent\n}\n\n", cr.name, p)
	default:
		for _, pk := range cr.class.ParentKinds {
			p := emittedTypeName(pk, cr.tbls)
			fmt.Fprintf(b, "// GetParentAs%s returns the containing %s and true, if that is this instance's actual parent kind.\n", p, p)
			fmt.Fprintf(b, "func (c *%s) GetParentAs%s() (*%s, bool) {\n\treturn c.parent.%s, c.parent.%s != nil\n}\n\n",
				cr.name, p, p, p, p)
		}
	}
}

func (cr *classRenderer) writeUIDManagerAccessor(b *strings.Builder) {
	if !cr.needsUIDManager() {
		return
	}
	fmt.Fprintf(b, "// GetUIDManager returns the UID manager this instance was constructed with, if any.\n")
	fmt.Fprintf(b, "func (c *%s) GetUIDManager() cpacsxml.UIDManager {\n\treturn c.uidMgr\n}\n\n", cr.name)
}

// writeDocComment renders a Go doc comment. When name is non-empty it
// is the identifier the comment is attached to (used for top-level
// doc comments, which gofmt/golint expect to start with the name);
// field-level comments pass an empty name and are written as a plain
// comment block above the field.
func writeDocComment(b *strings.Builder, name, doc string) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		if name == "" {
			return
		}
		fmt.Fprintf(b, "// %s is generated from the CPACS schema.\n", name)
		return
	}
	lines := strings.Split(doc, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if i == 0 && name != "" && !strings.HasPrefix(line, name) {
			fmt.Fprintf(b, "// %s %s\n", name, line)
			continue
		}
		fmt.Fprintf(b, "// %s\n", line)
	}
}
