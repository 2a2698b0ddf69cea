// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package schema

import (
	"encoding/xml"
)

const xmlschemaNS = "http://www.w3.org/2001/XMLSchema"

// rawSchema is the raw parse tree for one <xsd:schema> document, decoded
// in document order so name synthesis can see surrounding context.
type rawSchema struct {
	XMLName         xml.Name
	TargetNamespace string
	Elements        []*rawElement
	ComplexTypes    []*rawComplexType
	SimpleTypes     []*rawSimpleType
	Groups          []*rawGroup
	AttributeGroups []*rawAttributeGroup
	xpath           string
}

// UnmarshalXML dispatches over the schema's direct children in document
// order, matching spec.md §4.2's algorithm exactly.
func (s *rawSchema) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	s.XMLName = start.Name
	for _, attr := range start.Attr {
		if attr.Name.Local == "targetNamespace" {
			s.TargetNamespace = attr.Value
		}
	}
	s.xpath = "/xsd:schema"

Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "element":
				x := &rawElement{xpath: s.xpath + "/xsd:element[@name='" + attrValue(t, "name") + "']"}
				if err := d.DecodeElement(x, &t); err != nil {
					return err
				}
				s.Elements = append(s.Elements, x)
			case "complexType":
				x := &rawComplexType{xpath: s.xpath + "/xsd:complexType[@name='" + attrValue(t, "name") + "']"}
				if err := decodeComplexType(d, t, x); err != nil {
					return err
				}
				s.ComplexTypes = append(s.ComplexTypes, x)
			case "simpleType":
				x := &rawSimpleType{xpath: s.xpath + "/xsd:simpleType[@name='" + attrValue(t, "name") + "']"}
				if err := d.DecodeElement(x, &t); err != nil {
					return err
				}
				s.SimpleTypes = append(s.SimpleTypes, x)
			case "group":
				x := &rawGroup{xpath: s.xpath + "/xsd:group[@name='" + attrValue(t, "name") + "']"}
				if err := d.Skip(); err != nil {
					return err
				}
				s.Groups = append(s.Groups, x)
			case "attributeGroup":
				x := &rawAttributeGroup{xpath: s.xpath + "/xsd:attributeGroup[@name='" + attrValue(t, "name") + "']"}
				if err := d.Skip(); err != nil {
					return err
				}
				s.AttributeGroups = append(s.AttributeGroups, x)
			case "include", "import", "annotation":
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return nil
}

func attrValue(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// rawGroup / rawAttributeGroup are recorded only so the front-end can
// reject a *reference* to them with a precise xpath; their bodies are
// never lowered (xsd:group and attribute groups are unsupported, per
// spec.md §1).
type rawGroup struct {
	xpath string
}

type rawAttributeGroup struct {
	xpath string
}

// rawElement is an xsd:element, named or as a child of a content model.
type rawElement struct {
	XMLName     xml.Name
	Name        string
	Doc         string
	Type        string
	Ref         string
	MinOccurs   string
	MaxOccurs   string
	Default     string
	Abstract    bool
	Nillable    bool
	ComplexType *rawComplexType
	SimpleType  *rawSimpleType
	xpath       string
}

func (e *rawElement) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	e.XMLName = start.Name
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			e.Name = a.Value
		case "type":
			e.Type = a.Value
		case "ref":
			e.Ref = a.Value
		case "minOccurs":
			e.MinOccurs = a.Value
		case "maxOccurs":
			e.MaxOccurs = a.Value
		case "default":
			e.Default = a.Value
		case "abstract":
			e.Abstract = a.Value == "true"
		case "nillable":
			e.Nillable = a.Value == "true"
		}
	}
	if e.xpath == "" {
		e.xpath = "/xsd:element[@name='" + e.Name + "']"
	}

Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "annotation":
				doc, err := decodeAnnotation(d, t)
				if err != nil {
					return err
				}
				e.Doc = doc
			case "complexType":
				x := &rawComplexType{xpath: e.xpath + "/xsd:complexType"}
				if err := decodeComplexType(d, t, x); err != nil {
					return err
				}
				e.ComplexType = x
			case "simpleType":
				x := &rawSimpleType{xpath: e.xpath + "/xsd:simpleType"}
				if err := d.DecodeElement(x, &t); err != nil {
					return err
				}
				e.SimpleType = x
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return nil
}

// rawAny is an xsd:any wildcard.
type rawAny struct {
	xpath string
}

// rawComplexType is an xsd:complexType, named or inline.
type rawComplexType struct {
	Name           string
	Abstract       bool
	Mixed          bool
	Block          string
	Final          string
	Sequence       *rawModelGroup
	Choice         *rawModelGroup
	All            *rawModelGroup
	Attributes     []*rawAttribute
	ComplexContent *rawComplexContent
	SimpleContent  *rawSimpleContent
	Doc            string
	xpath          string
}

// rawModelGroup is a sequence/choice/all body: an ordered mix of
// elements, nested choices and (rejected) wildcards.
type rawModelGroup struct {
	Items     []rawModelItem
	MinOccurs string
	xpath     string
}

type rawModelItem struct {
	Element *rawElement
	Choice  *rawModelGroup
	Any     *rawAny
	Group   *rawGroup
}

func decodeComplexType(d *xml.Decoder, start xml.StartElement, ct *rawComplexType) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			ct.Name = a.Value
		case "abstract":
			ct.Abstract = a.Value == "true"
		case "mixed":
			ct.Mixed = a.Value == "true"
		case "block":
			ct.Block = a.Value
		case "final":
			ct.Final = a.Value
		}
	}

Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "annotation":
				doc, err := decodeAnnotation(d, t)
				if err != nil {
					return err
				}
				ct.Doc = doc
			case "attribute":
				x := &rawAttribute{xpath: ct.xpath + "/xsd:attribute[@name='" + attrValue(t, "name") + "']"}
				if err := d.DecodeElement(x, &t); err != nil {
					return err
				}
				ct.Attributes = append(ct.Attributes, x)
			case "attributeGroup":
				return notImplemented(ct.xpath+"/xsd:attributeGroup", "attribute groups")
			case "sequence":
				mg, err := decodeModelGroup(d, t, ct.xpath+"/xsd:sequence")
				if err != nil {
					return err
				}
				ct.Sequence = mg
			case "choice":
				mg, err := decodeModelGroup(d, t, ct.xpath+"/xsd:choice")
				if err != nil {
					return err
				}
				ct.Choice = mg
			case "all":
				mg, err := decodeModelGroup(d, t, ct.xpath+"/xsd:all")
				if err != nil {
					return err
				}
				ct.All = mg
			case "group":
				return notImplemented(ct.xpath+"/xsd:group", "group reference")
			case "complexContent":
				x, err := decodeComplexContent(d, t, ct.xpath+"/xsd:complexContent")
				if err != nil {
					return err
				}
				ct.ComplexContent = x
			case "simpleContent":
				x, err := decodeSimpleContent(d, t, ct.xpath+"/xsd:simpleContent")
				if err != nil {
					return err
				}
				ct.SimpleContent = x
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}

	if ct.Mixed {
		return notImplemented(ct.xpath, "mixed content")
	}
	if ct.Block != "" {
		return notImplemented(ct.xpath, "block attribute")
	}
	if ct.Final != "" {
		return notImplemented(ct.xpath, "final attribute")
	}
	return nil
}

func decodeModelGroup(d *xml.Decoder, start xml.StartElement, xpath string) (*rawModelGroup, error) {
	mg := &rawModelGroup{xpath: xpath}
	for _, a := range start.Attr {
		if a.Name.Local == "minOccurs" {
			mg.MinOccurs = a.Value
		}
	}

Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "element":
				x := &rawElement{xpath: xpath + "/xsd:element[@name='" + attrValue(t, "name") + "']"}
				if err := d.DecodeElement(x, &t); err != nil {
					return nil, err
				}
				mg.Items = append(mg.Items, rawModelItem{Element: x})
			case "choice":
				nested, err := decodeModelGroup(d, t, xpath+"/xsd:choice")
				if err != nil {
					return nil, err
				}
				mg.Items = append(mg.Items, rawModelItem{Choice: nested})
			case "any":
				if err := d.Skip(); err != nil {
					return nil, err
				}
				mg.Items = append(mg.Items, rawModelItem{Any: &rawAny{xpath: xpath + "/xsd:any"}})
			case "group":
				return nil, notImplemented(xpath+"/xsd:group", "group reference")
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return mg, nil
}

// rawComplexContent / rawExtension handle xsd:extension of a complex
// type; xsd:restriction of complex content is unsupported.
type rawComplexContent struct {
	Extension *rawExtension
	xpath     string
}

type rawSimpleContent struct {
	Extension *rawExtension
	xpath     string
}

type rawExtension struct {
	Base              string
	Sequence          *rawModelGroup
	Choice            *rawModelGroup
	Attributes        []*rawAttribute
	EnumerationValues []string // only set when decoded from simpleContent/restriction
	xpath             string
}

func decodeComplexContent(d *xml.Decoder, start xml.StartElement, xpath string) (*rawComplexContent, error) {
	cc := &rawComplexContent{xpath: xpath}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "extension":
				ext, err := decodeExtension(d, t, xpath+"/xsd:extension")
				if err != nil {
					return nil, err
				}
				cc.Extension = ext
			case "restriction":
				return nil, notImplemented(xpath+"/xsd:restriction", "restriction of complex content")
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return cc, nil
}

func decodeSimpleContent(d *xml.Decoder, start xml.StartElement, xpath string) (*rawSimpleContent, error) {
	sc := &rawSimpleContent{xpath: xpath}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "extension":
				ext, err := decodeExtension(d, t, xpath+"/xsd:extension")
				if err != nil {
					return nil, err
				}
				sc.Extension = ext
			case "restriction":
				ext, err := decodeSimpleContentRestriction(d, t, xpath+"/xsd:restriction")
				if err != nil {
					return nil, err
				}
				sc.Extension = ext
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return sc, nil
}

func decodeExtension(d *xml.Decoder, start xml.StartElement, xpath string) (*rawExtension, error) {
	ext := &rawExtension{xpath: xpath}
	for _, a := range start.Attr {
		if a.Name.Local == "base" {
			ext.Base = a.Value
		}
	}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "attribute":
				x := &rawAttribute{xpath: xpath + "/xsd:attribute[@name='" + attrValue(t, "name") + "']"}
				if err := d.DecodeElement(x, &t); err != nil {
					return nil, err
				}
				ext.Attributes = append(ext.Attributes, x)
			case "attributeGroup":
				return nil, notImplemented(xpath+"/xsd:attributeGroup", "attribute groups")
			case "sequence":
				mg, err := decodeModelGroup(d, t, xpath+"/xsd:sequence")
				if err != nil {
					return nil, err
				}
				ext.Sequence = mg
			case "choice":
				mg, err := decodeModelGroup(d, t, xpath+"/xsd:choice")
				if err != nil {
					return nil, err
				}
				ext.Choice = mg
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return ext, nil
}

// decodeSimpleContentRestriction folds a <simpleContent><restriction>
// into the same shape as an extension carrying only the enumeration's
// base, since for this generator's purposes the distinction doesn't
// matter: the restriction values end up on the synthesized simple type
// either way.
func decodeSimpleContentRestriction(d *xml.Decoder, start xml.StartElement, xpath string) (*rawExtension, error) {
	ext := &rawExtension{xpath: xpath}
	for _, a := range start.Attr {
		if a.Name.Local == "base" {
			ext.Base = a.Value
		}
	}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "enumeration" {
				ext.EnumerationValues = append(ext.EnumerationValues, attrValue(t, "value"))
				if err := d.Skip(); err != nil {
					return nil, err
				}
				continue Loop
			}
			log.WithField("xpath", xpath+"/xsd:"+t.Name.Local).
				Warn("unsupported facet ignored")
			if err := d.Skip(); err != nil {
				return nil, err
			}
		case xml.EndElement:
			break Loop
		}
	}
	return ext, nil
}

// rawAttribute is an xsd:attribute.
type rawAttribute struct {
	Name       string
	Type       string
	Use        string
	Default    string
	Fixed      string
	Doc        string
	SimpleType *rawSimpleType
	xpath      string
}

func (a *rawAttribute) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "name":
			a.Name = attr.Value
		case "type":
			a.Type = attr.Value
		case "use":
			a.Use = attr.Value
		case "default":
			a.Default = attr.Value
		case "fixed":
			a.Fixed = attr.Value
		}
	}
	if a.xpath == "" {
		a.xpath = "/xsd:attribute[@name='" + a.Name + "']"
	}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "annotation":
				doc, err := decodeAnnotation(d, t)
				if err != nil {
					return err
				}
				a.Doc = doc
			case "simpleType":
				x := &rawSimpleType{xpath: a.xpath + "/xsd:simpleType"}
				if err := d.DecodeElement(x, &t); err != nil {
					return err
				}
				a.SimpleType = x
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return nil
}

// rawSimpleType is an xsd:simpleType: restriction, list or union.
type rawSimpleType struct {
	Name              string
	Doc               string
	RestrictionBase   string
	EnumerationValues []string
	IsList            bool
	IsUnion           bool
	xpath             string
}

func (s *rawSimpleType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		if a.Name.Local == "name" {
			s.Name = a.Value
		}
	}
	if s.xpath == "" {
		s.xpath = "/xsd:simpleType[@name='" + s.Name + "']"
	}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "annotation":
				doc, err := decodeAnnotation(d, t)
				if err != nil {
					return err
				}
				s.Doc = doc
			case "restriction":
				if err := s.decodeRestriction(d, t); err != nil {
					return err
				}
			case "list":
				s.IsList = true
				if err := d.Skip(); err != nil {
					return err
				}
			case "union":
				s.IsUnion = true
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	if s.IsList {
		return notImplemented(s.xpath, "xsd:list")
	}
	if s.IsUnion {
		return notImplemented(s.xpath, "xsd:union")
	}
	return nil
}

func (s *rawSimpleType) decodeRestriction(d *xml.Decoder, start xml.StartElement) error {
	rxpath := s.xpath + "/xsd:restriction"
	for _, a := range start.Attr {
		if a.Name.Local == "base" {
			s.RestrictionBase = a.Value
		}
	}
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != xmlschemaNS {
				if err := d.Skip(); err != nil {
					return err
				}
				continue Loop
			}
			switch t.Name.Local {
			case "enumeration":
				s.EnumerationValues = append(s.EnumerationValues, attrValue(t, "value"))
				if err := d.Skip(); err != nil {
					return err
				}
			case "pattern", "length", "minLength", "maxLength",
				"minInclusive", "maxInclusive", "minExclusive", "maxExclusive",
				"totalDigits", "fractionDigits", "whiteSpace":
				log.WithField("xpath", rxpath+"/xsd:"+t.Name.Local).
					Warn("unsupported facet ignored")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			break Loop
		}
	}
	return nil
}

// decodeAnnotation flattens xsd:annotation/xsd:documentation into plain
// text, per spec.md §4.2's documentation rules: ddue:summary introduces
// "@brief", ddue:mediaLink/ddue:image/@href becomes "@see".
func decodeAnnotation(d *xml.Decoder, start xml.StartElement) (string, error) {
	var doc string
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "documentation" {
				text, err := decodeDocumentation(d, t)
				if err != nil {
					return "", err
				}
				doc = text
				continue Loop
			}
			if err := d.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			break Loop
		}
	}
	return doc, nil
}

func decodeDocumentation(d *xml.Decoder, start xml.StartElement) (string, error) {
	var b rawDocBuilder
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "summary":
				text, err := decodeCharData(d, t)
				if err != nil {
					return "", err
				}
				b.brief(text)
			case "image":
				href := attrValue(t, "href")
				if err := d.Skip(); err != nil {
					return "", err
				}
				if href != "" {
					b.see(href)
				}
			default:
				text, err := decodeCharData(d, t)
				if err != nil {
					return "", err
				}
				b.plain(text)
			}
		case xml.CharData:
			b.plain(string(t))
		case xml.EndElement:
			break Loop
		}
	}
	return b.String(), nil
}

func decodeCharData(d *xml.Decoder, start xml.StartElement) (string, error) {
	var b rawDocBuilder
Loop:
	for {
		tok, err := d.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.plain(string(t))
		case xml.StartElement:
			if err := d.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			break Loop
		}
	}
	return b.String(), nil
}
