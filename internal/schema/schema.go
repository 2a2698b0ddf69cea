// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package schema is the XSD front-end: it lowers the recursive XSD
// grammar (sequence, choice, all, inline anonymous types, extensions,
// restrictions) into a flat, normalized catalog of named types.
package schema

import "math"

// Unbounded represents xsd:maxOccurs="unbounded".
const Unbounded uint32 = math.MaxUint32

// SchemaTypes is the front-end's output: every named type in the schema
// plus the ordered list of root element type names.
type SchemaTypes struct {
	Roots []string
	Types map[string]NamedType
}

// NamedType is implemented by *ComplexType and *SimpleType.
type NamedType interface {
	TypeName() string
	isNamedType()
}

// ContentKind tags the shape of a ComplexType's body.
type ContentKind int

const (
	// ContentEmpty is a complex type with no model group at all: just
	// attributes, or an extension base contributing no new content.
	ContentEmpty ContentKind = iota
	ContentAll
	ContentSequence
	ContentChoice
	ContentGroup
	ContentSimpleContent
	ContentAny
)

// ComplexType is a named or synthesized xsd:complexType.
type ComplexType struct {
	Name          string
	Base          string
	Content       ContentKind
	Sequence      *Sequence
	Choice        *ChoiceNode
	All           *All
	SimpleContent string // base type name, only set when Content == ContentSimpleContent
	Attributes    []Attribute
	Documentation string
	XPath         string
}

func (c *ComplexType) TypeName() string { return c.Name }
func (*ComplexType) isNamedType()       {}

// SimpleType is a named or synthesized xsd:simpleType. A non-empty
// RestrictionValues means the type is an enumeration.
type SimpleType struct {
	Name              string
	Base              string
	RestrictionValues []string
	Documentation     string
	XPath             string
}

func (s *SimpleType) TypeName() string { return s.Name }
func (*SimpleType) isNamedType()       {}

// Attribute is an xsd:attribute.
type Attribute struct {
	Name          string
	Type          string
	Optional      bool
	DefaultValue  string
	Fixed         string
	Documentation string
	XPath         string
}

// Element is an xsd:element, either referencing a named type or carrying
// an inline anonymous one (already lowered to a synthesized type name by
// the time it reaches this struct).
type Element struct {
	Name          string
	Type          string
	MinOccurs     uint32
	MaxOccurs     uint32
	DefaultValue  string
	Documentation string
	XPath         string
}

// Sequence is an ordered xsd:sequence; items are either elements or
// nested choices, interleaved in document order.
type Sequence struct {
	Items []SequenceItem
}

// SequenceItem is one slot in a Sequence: exactly one of Element or
// Choice is set.
type SequenceItem struct {
	Element *Element
	Choice  *ChoiceNode
}

// All is an xsd:all group: like Sequence but order-independent in the
// source (still emitted as ordered fields, matching spec.md's data model).
type All struct {
	Elements []Element
}

// ChoiceNode is an xsd:choice: "exactly one of these child groups". Each
// option is an ordered list of items, and an item is either a plain
// element or a nested xsd:choice, so genuinely nested choices (a choice
// option that is itself a choice, without an intervening sequence) are
// represented without flattening.
type ChoiceNode struct {
	MinOccurs uint32
	Options   [][]ChoiceOptionItem
	XPath     string
}

// ChoiceOptionItem is one slot within a ChoiceNode option: exactly one
// of Element or Nested is set.
type ChoiceOptionItem struct {
	Element *Element
	Nested  *ChoiceNode
}

// Error is a schema-stage error: malformed XSD, negative occurrence
// counts, unknown referenced type, or an unsupported XSD construct.
// It always carries the XSD xpath at which the problem was found.
type Error struct {
	XPath string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.XPath + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.XPath + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(xpath, msg string) *Error {
	return &Error{XPath: xpath, Msg: msg}
}

func wrapError(xpath, msg string, err error) *Error {
	return &Error{XPath: xpath, Msg: msg, Err: err}
}

// notImplemented builds the distinguished "not implemented" schema error
// for a construct this generator deliberately does not support.
func notImplemented(xpath, construct string) *Error {
	return newError(xpath, "not implemented: "+construct)
}
