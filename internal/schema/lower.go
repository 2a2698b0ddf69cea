// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package schema

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stage", "schema")

// lowering carries the mutable state needed while flattening one or
// more raw schemas into a single SchemaTypes catalog: the registered
// types so far (for duplicate/name-synthesis bookkeeping) and the
// ordered root list.
type lowering struct {
	types map[string]NamedType
	roots []string
}

func newLowering() *lowering {
	return &lowering{types: make(map[string]NamedType)}
}

func (l *lowering) register(t NamedType, xpath string) error {
	if _, exists := l.types[t.TypeName()]; exists {
		return newError(xpath, fmt.Sprintf("duplicate type name %q", t.TypeName()))
	}
	l.types[t.TypeName()] = t
	return nil
}

// freshName disambiguates a synthesized name against everything
// registered so far by appending an ascending numeric suffix.
func (l *lowering) freshName(base string) string {
	if _, exists := l.types[base]; !exists {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		if _, exists := l.types[candidate]; !exists {
			return candidate
		}
	}
}

// lowerSchema lowers one raw schema's top-level declarations into l,
// and appends its root element type names to l.roots in document order.
func (l *lowering) lowerSchema(raw *rawSchema) error {
	for _, st := range raw.SimpleTypes {
		simple, err := l.lowerNamedSimpleType(st)
		if err != nil {
			return err
		}
		if err := l.register(simple, st.xpath); err != nil {
			return err
		}
	}

	for _, ct := range raw.ComplexTypes {
		complex, err := l.lowerNamedComplexType(ct)
		if pst, ok := asPromotedSimpleType(err); ok {
			if err := l.register(pst.Type, ct.xpath); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if err := l.register(complex, ct.xpath); err != nil {
			return err
		}
	}

	for _, el := range raw.Elements {
		typeName, err := l.lowerRootElement(el)
		if err != nil {
			return err
		}
		l.roots = append(l.roots, typeName)
	}

	return nil
}

// lowerRootElement lowers a top-level xsd:element, synthesizing and
// registering an anonymous type if the element carries an inline
// complexType/simpleType, and returns the type name to use as a root.
func (l *lowering) lowerRootElement(el *rawElement) (string, error) {
	if el.Type != "" {
		return el.Type, nil
	}
	if el.ComplexType != nil {
		name := l.freshName(el.Name + "Type")
		el.ComplexType.Name = name
		ct, err := l.lowerNamedComplexType(el.ComplexType)
		if pst, ok := asPromotedSimpleType(err); ok {
			if err := l.register(pst.Type, el.ComplexType.xpath); err != nil {
				return "", err
			}
			return pst.Type.Name, nil
		}
		if err != nil {
			return "", err
		}
		if err := l.register(ct, el.ComplexType.xpath); err != nil {
			return "", err
		}
		return name, nil
	}
	if el.SimpleType != nil {
		name := l.freshName(el.Name + "Type")
		el.SimpleType.Name = name
		st, err := l.lowerNamedSimpleType(el.SimpleType)
		if err != nil {
			return "", err
		}
		if err := l.register(st, el.SimpleType.xpath); err != nil {
			return "", err
		}
		return name, nil
	}
	return "", newError(el.xpath, "root element has neither a type reference nor an inline type")
}

func (l *lowering) lowerNamedSimpleType(st *rawSimpleType) (*SimpleType, error) {
	return &SimpleType{
		Name:              st.Name,
		Base:              st.RestrictionBase,
		RestrictionValues: append([]string(nil), st.EnumerationValues...),
		Documentation:     st.Doc,
		XPath:             st.xpath,
	}, nil
}

func (l *lowering) lowerNamedComplexType(ct *rawComplexType) (*ComplexType, error) {
	if ct.Abstract {
		return nil, notImplemented(ct.xpath, "abstract complex type")
	}

	out := &ComplexType{
		Name:          ct.Name,
		Documentation: ct.Doc,
		XPath:         ct.xpath,
	}

	switch {
	case ct.SimpleContent != nil:
		return l.lowerSimpleContentType(ct, out)
	case ct.ComplexContent != nil:
		ext := ct.ComplexContent.Extension
		if ext == nil {
			return nil, newError(ct.xpath, "complexContent without extension")
		}
		out.Base = ext.Base
		for _, a := range ext.Attributes {
			attr, err := l.lowerAttribute(a, ct.Name)
			if err != nil {
				return nil, err
			}
			out.Attributes = append(out.Attributes, attr)
		}
		if ext.Sequence != nil {
			seq, err := l.lowerSequence(ext.Sequence, ct.Name)
			if err != nil {
				return nil, err
			}
			out.Content = ContentSequence
			out.Sequence = seq
		} else if ext.Choice != nil {
			choice, err := l.lowerChoice(ext.Choice, ct.Name)
			if err != nil {
				return nil, err
			}
			out.Content = ContentChoice
			out.Choice = choice
		}
		return out, nil
	case ct.Sequence != nil:
		seq, err := l.lowerSequence(ct.Sequence, ct.Name)
		if err != nil {
			return nil, err
		}
		out.Content = ContentSequence
		out.Sequence = seq
	case ct.Choice != nil:
		choice, err := l.lowerChoice(ct.Choice, ct.Name)
		if err != nil {
			return nil, err
		}
		out.Content = ContentChoice
		out.Choice = choice
	case ct.All != nil:
		all, err := l.lowerAll(ct.All, ct.Name)
		if err != nil {
			return nil, err
		}
		out.Content = ContentAll
		out.All = all
	}

	for _, a := range ct.Attributes {
		attr, err := l.lowerAttribute(a, ct.Name)
		if err != nil {
			return nil, err
		}
		out.Attributes = append(out.Attributes, attr)
	}

	return out, nil
}

// lowerSimpleContentType implements spec.md §4.2's "SimpleContent
// folding": a complex type whose body is only simpleContent with an
// enumeration restriction generates an auxiliary simple type, which is
// then promoted to the outer name when the outer type has no attributes
// and no base, turning a restriction-only wrapper into a plain enum.
func (l *lowering) lowerSimpleContentType(ct *rawComplexType, out *ComplexType) (*ComplexType, error) {
	ext := ct.SimpleContent.Extension
	if ext == nil {
		return nil, newError(ct.xpath, "simpleContent without extension or restriction")
	}

	for _, a := range ext.Attributes {
		attr, err := l.lowerAttribute(a, ct.Name)
		if err != nil {
			return nil, err
		}
		out.Attributes = append(out.Attributes, attr)
	}

	// Case 1: <simpleContent><restriction base="..."><enumeration .../>
	// directly carries the enumeration values.
	if len(ext.EnumerationValues) > 0 {
		if len(out.Attributes) == 0 {
			folded := &SimpleType{
				Name:              ct.Name,
				Base:              ext.Base,
				RestrictionValues: ext.EnumerationValues,
				Documentation:     ct.Doc,
				XPath:             ct.xpath,
			}
			return nil, &promotedSimpleType{folded}
		}
		auxName := l.freshName(ct.Name + "_SimpleContentType")
		aux := &SimpleType{
			Name:              auxName,
			Base:              ext.Base,
			RestrictionValues: ext.EnumerationValues,
			XPath:             ct.xpath,
		}
		if err := l.register(aux, ct.xpath); err != nil {
			return nil, err
		}
		out.Content = ContentSimpleContent
		out.SimpleContent = auxName
		return out, nil
	}

	// Case 2: <simpleContent><extension base="SomeEnumType"> where the
	// base already names a registered enumeration simple type.
	if len(out.Attributes) == 0 {
		if base, ok := l.types[ext.Base].(*SimpleType); ok && len(base.RestrictionValues) > 0 {
			folded := &SimpleType{
				Name:              ct.Name,
				Base:              base.Base,
				RestrictionValues: base.RestrictionValues,
				Documentation:     ct.Doc,
				XPath:             ct.xpath,
			}
			return nil, &promotedSimpleType{folded}
		}
	}

	out.Content = ContentSimpleContent
	out.SimpleContent = ext.Base
	return out, nil
}

// promotedSimpleType is a sentinel "error" used to signal from
// lowerNamedComplexType that a complex type folded into a plain enum
// under the outer name; the caller registers the SimpleType instead.
type promotedSimpleType struct {
	Type *SimpleType
}

func (p *promotedSimpleType) Error() string { return "promoted to simple type" }

func (l *lowering) lowerAttribute(a *rawAttribute, owner string) (Attribute, error) {
	typeName := a.Type
	if typeName == "" && a.SimpleType != nil {
		name := l.freshName(owner + "_" + a.Name + "Type")
		a.SimpleType.Name = name
		st, err := l.lowerNamedSimpleType(a.SimpleType)
		if err != nil {
			return Attribute{}, err
		}
		if err := l.register(st, a.SimpleType.xpath); err != nil {
			return Attribute{}, err
		}
		typeName = name
	}
	return Attribute{
		Name:          a.Name,
		Type:          typeName,
		Optional:      a.Use != "required",
		DefaultValue:  a.Default,
		Fixed:         a.Fixed,
		Documentation: a.Doc,
		XPath:         a.xpath,
	}, nil
}

func (l *lowering) lowerElement(e *rawElement, owner string) (Element, error) {
	min, max, err := parseOccurs(e.MinOccurs, e.MaxOccurs, e.xpath)
	if err != nil {
		return Element{}, err
	}

	typeName := e.Type
	switch {
	case typeName != "":
		// reference, nothing to synthesize
	case e.ComplexType != nil:
		name := l.freshName(owner + "_" + e.Name + "Type")
		e.ComplexType.Name = name
		ct, err := l.lowerNamedComplexType(e.ComplexType)
		if pst, ok := asPromotedSimpleType(err); ok {
			if err := l.register(pst.Type, e.ComplexType.xpath); err != nil {
				return Element{}, err
			}
			typeName = pst.Type.Name
			break
		}
		if err != nil {
			return Element{}, err
		}
		if err := l.register(ct, e.ComplexType.xpath); err != nil {
			return Element{}, err
		}
		typeName = name
	case e.SimpleType != nil:
		name := l.freshName(owner + "_" + e.Name + "Type")
		e.SimpleType.Name = name
		st, err := l.lowerNamedSimpleType(e.SimpleType)
		if err != nil {
			return Element{}, err
		}
		if err := l.register(st, e.SimpleType.xpath); err != nil {
			return Element{}, err
		}
		typeName = name
	default:
		return Element{}, newError(e.xpath, "element has neither a type reference nor an inline type")
	}

	return Element{
		Name:          e.Name,
		Type:          typeName,
		MinOccurs:     min,
		MaxOccurs:     max,
		DefaultValue:  e.Default,
		Documentation: e.Doc,
		XPath:         e.xpath,
	}, nil
}

func asPromotedSimpleType(err error) (*promotedSimpleType, bool) {
	pst, ok := err.(*promotedSimpleType)
	return pst, ok
}

func (l *lowering) lowerSequence(mg *rawModelGroup, owner string) (*Sequence, error) {
	seq := &Sequence{}
	for _, item := range mg.Items {
		switch {
		case item.Element != nil:
			el, err := l.lowerElement(item.Element, owner)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, SequenceItem{Element: &el})
		case item.Choice != nil:
			choice, err := l.lowerChoice(item.Choice, owner)
			if err != nil {
				return nil, err
			}
			seq.Items = append(seq.Items, SequenceItem{Choice: choice})
		case item.Any != nil:
			log.WithField("xpath", item.Any.xpath).Warn("xsd:any in sequence: no field emitted")
		}
	}
	return seq, nil
}

func (l *lowering) lowerAll(mg *rawModelGroup, owner string) (*All, error) {
	all := &All{}
	for _, item := range mg.Items {
		if item.Element == nil {
			return nil, newError(mg.xpath, "xsd:all may only contain elements")
		}
		el, err := l.lowerElement(item.Element, owner)
		if err != nil {
			return nil, err
		}
		all.Elements = append(all.Elements, el)
	}
	return all, nil
}

func (l *lowering) lowerChoice(mg *rawModelGroup, owner string) (*ChoiceNode, error) {
	min, _, err := parseOccurs(mg.MinOccurs, "1", mg.xpath)
	if err != nil {
		return nil, err
	}

	node := &ChoiceNode{MinOccurs: min, XPath: mg.xpath}

	for _, item := range mg.Items {
		switch {
		case item.Element != nil:
			el, err := l.lowerElement(item.Element, owner)
			if err != nil {
				return nil, err
			}
			node.Options = append(node.Options, []ChoiceOptionItem{{Element: &el}})
		case item.Choice != nil:
			nested, err := l.lowerChoice(item.Choice, owner)
			if err != nil {
				return nil, err
			}
			node.Options = append(node.Options, []ChoiceOptionItem{{Nested: nested}})
		case item.Any != nil:
			log.WithField("xpath", item.Any.xpath).Warn("xsd:any in choice: no field emitted")
		}
	}
	return node, nil
}

func parseOccurs(minStr, maxStr, xpath string) (uint32, uint32, error) {
	min := uint32(1)
	if minStr != "" {
		v, err := strconv.Atoi(minStr)
		if err != nil {
			return 0, 0, wrapError(xpath, "invalid minOccurs", err)
		}
		if v < 0 {
			return 0, 0, newError(xpath, "negative minOccurs")
		}
		min = uint32(v)
	}

	max := uint32(1)
	switch {
	case maxStr == "":
		max = 1
	case maxStr == "unbounded":
		max = Unbounded
	default:
		v, err := strconv.Atoi(maxStr)
		if err != nil {
			return 0, 0, wrapError(xpath, "invalid maxOccurs", err)
		}
		if v < 0 {
			return 0, 0, newError(xpath, "negative maxOccurs")
		}
		max = uint32(v)
	}

	return min, max, nil
}
