// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// writeReadCPACS emits ReadCPACS, which fills c from doc starting at
// xpath. Per spec.md §7, a missing mandatory field is a diagnostic, not
// a fatal error: the generator trusts that most documents are close to
// correct and a read should recover as much of the tree as it can. Only
// a failure inside a mandatory nested class is propagated, since at
// that point the field itself cannot be given any sensible value.
func (cr *classRenderer) writeReadCPACS(b *strings.Builder) {
	fmt.Fprintf(b, "// ReadCPACS fills in %s's fields by reading the element tree rooted\n", cr.name)
	b.WriteString("// at xpath. Diagnostics are logged; only a failing mandatory nested\n")
	b.WriteString("// class aborts the read.\n")
	fmt.Fprintf(b, "func (c *%s) ReadCPACS(doc cpacsxml.Document, xpath string) error {\n", cr.name)

	if base := cr.baseName(); base != "" {
		fmt.Fprintf(b, "\tif err := c.%s.ReadCPACS(doc, xpath); err != nil {\n\t\treturn err\n\t}\n", base)
	}

	for _, fv := range cr.fields {
		cr.writeReadField(b, fv)
	}

	if cr.class.Choices != nil {
		b.WriteString("\tif !c.ValidateChoices() {\n")
		fmt.Fprintf(b, "\t\tlog.WithField(\"xpath\", xpath).Warn(\"%s: choice content not satisfied\")\n", cr.name)
		b.WriteString("\t}\n")
	}
	if cr.needsUIDManager() {
		cr.writeReadUIDRegistration(b)
	}

	b.WriteString("\treturn nil\n}\n\n")
}

// writeReadUIDRegistration registers this instance's own uID (if any)
// with the UID manager once a read has populated it, mirroring the
// original's registration-on-load behavior for CTiglUIDManager.
func (cr *classRenderer) writeReadUIDRegistration(b *strings.Builder) {
	if !cr.class.HasUIDField() {
		return
	}
	uidField := findField(cr.fields, "uID")
	b.WriteString("\tif c.uidMgr != nil {\n")
	if uidField.Cardinality() == typesystem.Optional {
		fmt.Fprintf(b, "\t\tif c.%s != nil && *c.%s != \"\" {\n\t\t\tc.uidMgr.RegisterObject(*c.%s, c)\n\t\t}\n", uidField.Ident, uidField.Ident, uidField.Ident)
	} else {
		fmt.Fprintf(b, "\t\tif c.%s != \"\" {\n\t\t\tc.uidMgr.RegisterObject(c.%s, c)\n\t\t}\n", uidField.Ident, uidField.Ident)
	}
	b.WriteString("\t}\n")
}

func (cr *classRenderer) writeReadField(b *strings.Builder, fv fieldView) {
	switch fv.XMLConstruct {
	case typesystem.ConstructAttribute:
		cr.writeReadAttribute(b, fv)
	case typesystem.ConstructSimpleContent, typesystem.ConstructFundamentalTypeBase:
		cr.writeReadSelfText(b, fv)
	case typesystem.ConstructElement:
		cr.writeReadElement(b, fv)
	}
}

func (cr *classRenderer) writeReadAttribute(b *strings.Builder, fv fieldView) {
	conv := convFor(fv.ElemType)
	switch fv.Cardinality() {
	case typesystem.Mandatory:
		fmt.Fprintf(b, "\tif !doc.CheckAttribute(xpath, %q) {\n", fv.CpacsName)
		fmt.Fprintf(b, "\t\tlog.WithField(\"xpath\", xpath).Warn(\"%s: mandatory attribute %s missing\")\n", cr.name, fv.CpacsName)
		b.WriteString("\t} else {\n")
		cr.writeScalarAssign(b, "\t\t", fv, conv, "doc.GetAttribute(xpath, "+fmt.Sprintf("%q", fv.CpacsName)+")")
		b.WriteString("\t}\n")
	default: // Optional; attributes are never vectors
		fmt.Fprintf(b, "\tif doc.CheckAttribute(xpath, %q) {\n", fv.CpacsName)
		cr.writeOptionalScalarAssign(b, "\t\t", fv, conv, "doc.GetAttribute(xpath, "+fmt.Sprintf("%q", fv.CpacsName)+")")
		b.WriteString("\t}\n")
	}
}

func (cr *classRenderer) writeReadSelfText(b *strings.Builder, fv fieldView) {
	conv := convFor(fv.ElemType)
	fmt.Fprintf(b, "\tif !doc.CheckElement(xpath) {\n")
	fmt.Fprintf(b, "\t\tlog.WithField(\"xpath\", xpath).Warn(\"%s: mandatory content missing\")\n", cr.name)
	b.WriteString("\t} else {\n")
	cr.writeScalarAssign(b, "\t\t", fv, conv, "doc.GetElement(xpath)")
	b.WriteString("\t}\n")
}

func (cr *classRenderer) writeReadElement(b *strings.Builder, fv fieldView) {
	fieldXPath := fmt.Sprintf("xpath + \"/%s\"", fv.CpacsName)
	switch fv.Cardinality() {
	case typesystem.Mandatory:
		cr.writeReadMandatoryElement(b, fv, fieldXPath)
	case typesystem.Optional:
		cr.writeReadOptionalElement(b, fv, fieldXPath)
	case typesystem.Vector:
		cr.writeReadVectorElement(b, fv, fieldXPath)
	}
}

func (cr *classRenderer) writeReadMandatoryElement(b *strings.Builder, fv fieldView, fieldXPath string) {
	fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
	fmt.Fprintf(b, "\t\tif !doc.CheckElement(fxp) {\n")
	fmt.Fprintf(b, "\t\t\tlog.WithField(\"xpath\", fxp).Warn(\"%s: mandatory element %s missing\")\n", cr.name, fv.CpacsName)
	b.WriteString("\t\t} else {\n")
	if fv.Kind == kindClass {
		fmt.Fprintf(b, "\t\t\tv := %s\n", cr.constructExpr(fv))
		b.WriteString("\t\t\tif err := v.ReadCPACS(doc, fxp); err != nil {\n")
		fmt.Fprintf(b, "\t\t\t\treturn fmt.Errorf(\"%s: %s: %%w\", err)\n", cr.name, fv.CpacsName)
		b.WriteString("\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tc.%s = v\n", fv.Ident)
	} else {
		conv := convFor(fv.ElemType)
		cr.writeScalarAssign(b, "\t\t\t", fv, conv, "doc.GetElement(fxp)")
	}
	b.WriteString("\t\t}\n\t}\n")
}

func (cr *classRenderer) writeReadOptionalElement(b *strings.Builder, fv fieldView, fieldXPath string) {
	fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
	fmt.Fprintf(b, "\t\tif doc.CheckElement(fxp) {\n")
	if fv.Kind == kindClass {
		fmt.Fprintf(b, "\t\t\tv := %s\n", cr.constructExpr(fv))
		b.WriteString("\t\t\tif err := v.ReadCPACS(doc, fxp); err != nil {\n")
		fmt.Fprintf(b, "\t\t\t\tlog.WithField(\"xpath\", fxp).WithError(err).Warn(\"%s: discarding unreadable %s\")\n", cr.name, fv.CpacsName)
		fmt.Fprintf(b, "\t\t\t\tc.%s = nil\n", fv.Ident)
		b.WriteString("\t\t\t} else {\n")
		fmt.Fprintf(b, "\t\t\t\tc.%s = v\n", fv.Ident)
		b.WriteString("\t\t\t}\n")
	} else {
		conv := convFor(fv.ElemType)
		cr.writeOptionalScalarAssign(b, "\t\t\t", fv, conv, "doc.GetElement(fxp)")
	}
	b.WriteString("\t\t}\n\t}\n")
}

func (cr *classRenderer) writeReadVectorElement(b *strings.Builder, fv fieldView, fieldXPath string) {
	fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
	if fv.Kind == kindClass {
		b.WriteString("\t\tn, _ := doc.CountChildren(fxp)\n")
		fmt.Fprintf(b, "\t\tc.%s = c.%s[:0]\n", fv.Ident, fv.Ident)
		b.WriteString("\t\tfor i := 1; i <= n; i++ {\n")
		b.WriteString("\t\t\titemXPath := fmt.Sprintf(\"%s[%d]\", fxp, i)\n")
		fmt.Fprintf(b, "\t\t\tv := %s\n", cr.constructExpr(fv))
		b.WriteString("\t\t\tif err := v.ReadCPACS(doc, itemXPath); err != nil {\n")
		fmt.Fprintf(b, "\t\t\t\tlog.WithField(\"xpath\", itemXPath).WithError(err).Warn(\"%s: skipping unreadable %s\")\n", cr.name, fv.CpacsName)
		b.WriteString("\t\t\t\tcontinue\n\t\t\t}\n")
		fmt.Fprintf(b, "\t\t\tc.%s = append(c.%s, v)\n", fv.Ident, fv.Ident)
		b.WriteString("\t\t}\n")
	} else {
		fmt.Fprintf(b, "\t\tvalues, err := doc.ReadElements(fxp, %d, %d)\n", fv.MinOccurs, vectorMax(fv))
		b.WriteString("\t\tif err != nil {\n")
		fmt.Fprintf(b, "\t\t\tlog.WithField(\"xpath\", fxp).WithError(err).Warn(\"%s: %s\")\n", cr.name, fv.CpacsName)
		b.WriteString("\t\t} else {\n")
		fmt.Fprintf(b, "\t\t\tc.%s = c.%s[:0]\n", fv.Ident, fv.Ident)
		b.WriteString("\t\t\tfor _, raw := range values {\n")
		if fv.Kind == kindEnum {
			fmt.Fprintf(b, "\t\t\t\tparsed, err := Parse%s(raw)\n", fv.ElemType)
			b.WriteString("\t\t\t\tif err != nil {\n")
			fmt.Fprintf(b, "\t\t\t\t\tlog.WithField(\"xpath\", fxp).WithError(err).Warn(\"%s: %s value\")\n", cr.name, fv.CpacsName)
			b.WriteString("\t\t\t\t\tcontinue\n\t\t\t\t}\n")
			fmt.Fprintf(b, "\t\t\t\tc.%s = append(c.%s, parsed)\n", fv.Ident, fv.Ident)
		} else {
			conv := convFor(fv.ElemType)
			fmt.Fprintf(b, "\t\t\t\tparsed, err := %s(raw)\n", conv.Parse)
			b.WriteString("\t\t\t\tif err != nil {\n")
			fmt.Fprintf(b, "\t\t\t\t\tlog.WithField(\"xpath\", fxp).WithError(err).Warn(\"%s: %s value\")\n", cr.name, fv.CpacsName)
			b.WriteString("\t\t\t\t\tcontinue\n\t\t\t\t}\n")
			fmt.Fprintf(b, "\t\t\t\tc.%s = append(c.%s, parsed)\n", fv.Ident, fv.Ident)
		}
		b.WriteString("\t\t\t}\n")
		if fv.IsUIDRef {
			b.WriteString("\t\t\tif c.uidMgr != nil {\n")
			fmt.Fprintf(b, "\t\t\t\tfor _, v := range c.%s {\n", fv.Ident)
			b.WriteString("\t\t\t\t\tif v != \"\" {\n\t\t\t\t\t\tc.uidMgr.RegisterReference(v, c)\n\t\t\t\t\t}\n\t\t\t\t}\n")
			b.WriteString("\t\t\t}\n")
		}
		b.WriteString("\t\t}\n")
	}
	b.WriteString("\t}\n")
}

// vectorMax renders the upper cardinality bound ReadElements enforces:
// 0 signals "unbounded" in the facade's own convention.
func vectorMax(fv fieldView) uint32 {
	if fv.MaxOccurs == unboundedSentinel {
		return 0
	}
	return fv.MaxOccurs
}

const unboundedSentinel = ^uint32(0)

// writeScalarAssign emits a mandatory scalar/enum read-and-assign: parse
// failures are logged and leave the field at its zero value.
func (cr *classRenderer) writeScalarAssign(b *strings.Builder, indent string, fv fieldView, conv scalarConv, readExpr string) {
	fmt.Fprintf(b, "%sraw, err := %s\n", indent, readExpr)
	fmt.Fprintf(b, "%sif err != nil {\n", indent)
	fmt.Fprintf(b, "%s\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s\")\n", indent, cr.name, fv.CpacsName)
	fmt.Fprintf(b, "%s} else {\n", indent)
	if fv.Kind == kindEnum {
		fmt.Fprintf(b, "%s\tparsed, err := Parse%s(raw)\n", indent, fv.ElemType)
		fmt.Fprintf(b, "%s\tif err != nil {\n", indent)
		fmt.Fprintf(b, "%s\t\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s value\")\n", indent, cr.name, fv.CpacsName)
		fmt.Fprintf(b, "%s\t} else {\n\t\t%sc.%s = parsed\n%s\t}\n", indent, indent, fv.Ident, indent)
	} else {
		fmt.Fprintf(b, "%s\tparsed, err := %s(raw)\n", indent, conv.Parse)
		fmt.Fprintf(b, "%s\tif err != nil {\n", indent)
		fmt.Fprintf(b, "%s\t\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s value\")\n", indent, cr.name, fv.CpacsName)
		fmt.Fprintf(b, "%s\t} else {\n\t\t%sc.%s = parsed\n%s\t}\n", indent, indent, fv.Ident, indent)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

// writeOptionalScalarAssign is writeScalarAssign's optional-field
// counterpart: on parse success it assigns a freshly allocated pointer.
func (cr *classRenderer) writeOptionalScalarAssign(b *strings.Builder, indent string, fv fieldView, conv scalarConv, readExpr string) {
	fmt.Fprintf(b, "%sraw, err := %s\n", indent, readExpr)
	fmt.Fprintf(b, "%sif err != nil {\n", indent)
	fmt.Fprintf(b, "%s\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s\")\n", indent, cr.name, fv.CpacsName)
	fmt.Fprintf(b, "%s} else {\n", indent)
	if fv.Kind == kindEnum {
		fmt.Fprintf(b, "%s\tparsed, err := Parse%s(raw)\n", indent, fv.ElemType)
		fmt.Fprintf(b, "%s\tif err != nil {\n", indent)
		fmt.Fprintf(b, "%s\t\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s value\")\n", indent, cr.name, fv.CpacsName)
		fmt.Fprintf(b, "%s\t} else {\n\t\t%sc.%s = &parsed\n%s\t}\n", indent, indent, fv.Ident, indent)
	} else {
		fmt.Fprintf(b, "%s\tparsed, err := %s(raw)\n", indent, conv.Parse)
		fmt.Fprintf(b, "%s\tif err != nil {\n", indent)
		fmt.Fprintf(b, "%s\t\tlog.WithField(\"xpath\", xpath).WithError(err).Warn(\"%s: %s value\")\n", indent, cr.name, fv.CpacsName)
		fmt.Fprintf(b, "%s\t} else {\n\t\t%sc.%s = &parsed\n%s\t}\n", indent, indent, fv.Ident, indent)
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

// writeWriteCPACS emits WriteCPACS, which reflects c's current field
// values back into doc at xpath, creating and removing child elements
// as needed so the tree matches field presence exactly.
func (cr *classRenderer) writeWriteCPACS(b *strings.Builder) {
	fmt.Fprintf(b, "// WriteCPACS writes %s's current field values into doc at xpath,\n", cr.name)
	b.WriteString("// creating or removing child elements so presence matches the Go\n")
	b.WriteString("// zero-value/nil state of each field.\n")
	fmt.Fprintf(b, "func (c *%s) WriteCPACS(doc cpacsxml.Document, xpath string) error {\n", cr.name)

	if base := cr.baseName(); base != "" {
		fmt.Fprintf(b, "\tif err := c.%s.WriteCPACS(doc, xpath); err != nil {\n\t\treturn err\n\t}\n", base)
	}

	if cr.class.ContainsSequence {
		cr.writeOrderList(b)
	}

	for _, fv := range cr.fields {
		cr.writeWriteField(b, fv)
	}

	b.WriteString("\treturn nil\n}\n\n")
}

func (cr *classRenderer) writeOrderList(b *strings.Builder) {
	var names []string
	for _, fv := range cr.fields {
		if fv.XMLConstruct == typesystem.ConstructElement {
			names = append(names, fv.CpacsName)
		}
	}
	b.WriteString("\torderList := []string{")
	for i, n := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%q", n)
	}
	b.WriteString("}\n")
}

func (cr *classRenderer) writeWriteField(b *strings.Builder, fv fieldView) {
	switch fv.XMLConstruct {
	case typesystem.ConstructAttribute:
		cr.writeWriteAttribute(b, fv)
	case typesystem.ConstructSimpleContent, typesystem.ConstructFundamentalTypeBase:
		cr.writeWriteSelfText(b, fv)
	case typesystem.ConstructElement:
		cr.writeWriteElement(b, fv)
	}
}

func (cr *classRenderer) writeWriteAttribute(b *strings.Builder, fv fieldView) {
	conv := convFor(fv.ElemType)
	formatExpr := func(expr string) string {
		if fv.Kind == kindEnum {
			return expr + ".String()"
		}
		return fmt.Sprintf("%s(%s)", conv.Format, expr)
	}
	if fv.Cardinality() == typesystem.Optional {
		fmt.Fprintf(b, "\tif c.%s != nil {\n", fv.Ident)
		fmt.Fprintf(b, "\t\tif err := doc.SaveAttribute(xpath, %q, %s); err != nil {\n\t\t\treturn err\n\t\t}\n", fv.CpacsName, formatExpr("*c."+fv.Ident))
		b.WriteString("\t} else {\n")
		fmt.Fprintf(b, "\t\tif err := doc.RemoveAttribute(xpath, %q); err != nil {\n\t\t\treturn err\n\t\t}\n", fv.CpacsName)
		b.WriteString("\t}\n")
		return
	}
	fmt.Fprintf(b, "\tif err := doc.SaveAttribute(xpath, %q, %s); err != nil {\n\t\treturn err\n\t}\n", fv.CpacsName, formatExpr("c."+fv.Ident))
}

func (cr *classRenderer) writeWriteSelfText(b *strings.Builder, fv fieldView) {
	conv := convFor(fv.ElemType)
	expr := fmt.Sprintf("%s(c.%s)", conv.Format, fv.Ident)
	if fv.Kind == kindEnum {
		expr = fmt.Sprintf("c.%s.String()", fv.Ident)
	}
	fmt.Fprintf(b, "\tif err := doc.SaveElement(xpath, %s); err != nil {\n\t\treturn err\n\t}\n", expr)
}

func (cr *classRenderer) writeWriteElement(b *strings.Builder, fv fieldView) {
	fieldXPath := fmt.Sprintf("xpath + \"/%s\"", fv.CpacsName)
	createCall := "doc.CreateElementIfNotExists(fxp)"
	if cr.class.ContainsSequence {
		createCall = "doc.CreateSequenceElementIfNotExists(fxp, orderList)"
	}

	switch fv.Cardinality() {
	case typesystem.Mandatory:
		fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
		fmt.Fprintf(b, "\t\tif err := %s; err != nil {\n\t\t\treturn err\n\t\t}\n", createCall)
		cr.writeWriteScalarOrClass(b, fv, "\t\t", "fxp")
		b.WriteString("\t}\n")
	case typesystem.Optional:
		fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
		if fv.Kind == kindClass {
			fmt.Fprintf(b, "\t\tif c.%s != nil {\n", fv.Ident)
			fmt.Fprintf(b, "\t\t\tif err := %s; err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", createCall)
			fmt.Fprintf(b, "\t\t\tif err := c.%s.WriteCPACS(doc, fxp); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", fv.Ident)
			b.WriteString("\t\t} else {\n")
			b.WriteString("\t\t\tif err := doc.RemoveElement(fxp); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			b.WriteString("\t\t}\n")
		} else {
			conv := convFor(fv.ElemType)
			fmt.Fprintf(b, "\t\tif c.%s != nil {\n", fv.Ident)
			fmt.Fprintf(b, "\t\t\tif err := %s; err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", createCall)
			expr := fmt.Sprintf("%s(*c.%s)", conv.Format, fv.Ident)
			if fv.Kind == kindEnum {
				expr = fmt.Sprintf("c.%s.String()", fv.Ident)
			}
			fmt.Fprintf(b, "\t\t\tif err := doc.SaveElement(fxp, %s); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n", expr)
			b.WriteString("\t\t} else {\n")
			b.WriteString("\t\t\tif err := doc.RemoveElement(fxp); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
			b.WriteString("\t\t}\n")
		}
		b.WriteString("\t}\n")
	case typesystem.Vector:
		cr.writeWriteVectorElement(b, fv, fieldXPath)
	}
}

func (cr *classRenderer) writeWriteScalarOrClass(b *strings.Builder, fv fieldView, indent, xpathVar string) {
	if fv.Kind == kindClass {
		fmt.Fprintf(b, "%sif err := c.%s.WriteCPACS(doc, %s); err != nil {\n%s\treturn err\n%s}\n", indent, fv.Ident, xpathVar, indent, indent)
		return
	}
	conv := convFor(fv.ElemType)
	expr := fmt.Sprintf("%s(c.%s)", conv.Format, fv.Ident)
	if fv.Kind == kindEnum {
		expr = fmt.Sprintf("c.%s.String()", fv.Ident)
	}
	fmt.Fprintf(b, "%sif err := doc.SaveElement(%s, %s); err != nil {\n%s\treturn err\n%s}\n", indent, xpathVar, expr, indent, indent)
}

func (cr *classRenderer) writeWriteVectorElement(b *strings.Builder, fv fieldView, fieldXPath string) {
	fmt.Fprintf(b, "\t{\n\t\tfxp := %s\n", fieldXPath)
	if fv.Kind == kindClass {
		fmt.Fprintf(b, "\t\tfor i, item := range c.%s {\n", fv.Ident)
		b.WriteString("\t\t\titemXPath := fmt.Sprintf(\"%s[%d]\", fxp, i+1)\n")
		b.WriteString("\t\t\tif err := doc.EnsureIndexedElement(fxp, i+1); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		b.WriteString("\t\t\tif err := item.WriteCPACS(doc, itemXPath); err != nil {\n\t\t\t\treturn err\n\t\t\t}\n")
		b.WriteString("\t\t}\n")
		b.WriteString("\t\tif extra, err := doc.CountChildren(fxp); err == nil {\n")
		fmt.Fprintf(b, "\t\t\tfor i := extra; i > len(c.%s); i-- {\n", fv.Ident)
		b.WriteString("\t\t\t\tif err := doc.RemoveElement(fmt.Sprintf(\"%s[%d]\", fxp, i)); err != nil {\n\t\t\t\t\treturn err\n\t\t\t\t}\n")
		b.WriteString("\t\t\t}\n\t\t}\n")
	} else {
		conv := convFor(fv.ElemType)
		fmt.Fprintf(b, "\t\tvalues := make([]string, len(c.%s))\n", fv.Ident)
		fmt.Fprintf(b, "\t\tfor i, v := range c.%s {\n", fv.Ident)
		if fv.Kind == kindEnum {
			b.WriteString("\t\t\tvalues[i] = v.String()\n")
		} else {
			fmt.Fprintf(b, "\t\t\tvalues[i] = %s(v)\n", conv.Format)
		}
		b.WriteString("\t\t}\n")
		b.WriteString("\t\tif err := doc.SaveElements(fxp, values); err != nil {\n\t\t\treturn err\n\t\t}\n")
	}
	b.WriteString("\t}\n")
}
