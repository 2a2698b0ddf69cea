// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package typesystem is the analytical heart of the generator: it lowers
// a schema.SchemaTypes catalog into a graph of Class and Enum records
// with resolved field types, choice trees, inheritance links,
// parent/child back-edges, enum collapsing, enum-value disambiguation
// and a prune-list sweep.
package typesystem

import "fmt"

// Cardinality is a field's multiplicity, reduced to three cases.
type Cardinality int

const (
	Optional Cardinality = iota
	Mandatory
	Vector
)

func (c Cardinality) String() string {
	switch c {
	case Optional:
		return "Optional"
	case Mandatory:
		return "Mandatory"
	case Vector:
		return "Vector"
	default:
		return "Invalid"
	}
}

// XMLConstruct tags how a field is carried in the XML document.
type XMLConstruct int

const (
	ConstructElement XMLConstruct = iota
	ConstructAttribute
	ConstructSimpleContent
	ConstructFundamentalTypeBase
)

// Field is one member of a Class, carrying both its resolved type and
// everything the emitter needs to read/write it.
type Field struct {
	OriginXPath   string
	CpacsName     string
	TypeName      string // resolved: a Class name, an Enum name, or an xsdTypes value
	XMLConstruct  XMLConstruct
	XMLTypeName   string // the original XSD type name, pre-resolution
	MinOccurs     uint32
	MaxOccurs     uint32
	DefaultValue  string
	NamePostfix   string
	Documentation string
}

// Cardinality derives the field's multiplicity from its occurrence
// bounds. The builder rejects any (min,max) pair outside the three
// shapes below as a fatal build error before a Field is ever
// constructed (validateOccurs in builder.go), and omits a
// minOccurs=0/maxOccurs=0 field entirely rather than constructing it --
// so the default case here is an invariant that can no longer occur by
// the time a Field reaches this method, not a validation path.
func (f Field) Cardinality() Cardinality {
	switch {
	case f.MinOccurs == 0 && f.MaxOccurs == 1:
		return Optional
	case f.MinOccurs == 1 && f.MaxOccurs == 1:
		return Mandatory
	case f.MaxOccurs > 1:
		return Vector
	default:
		panic(fmt.Sprintf("invalid cardinality: min=%d max=%d", f.MinOccurs, f.MaxOccurs))
	}
}

// Name is the field's final identifier stem: cpacsName, suffixed with
// "s" for vector fields that don't already end in s, then suffixed with
// namePostfix (used for choice-group disambiguation).
func (f Field) Name() string {
	n := f.CpacsName
	if f.Cardinality() == Vector && n != "" && n[len(n)-1] != 's' {
		n += "s"
	}
	return n + f.NamePostfix
}

// ClassDependencies holds the back-edges from one class, by name. Every
// list is sorted and duplicate-free, per spec.md invariant 5.
type ClassDependencies struct {
	Bases        []string
	Deriveds     []string
	Parents      []string
	Children     []string
	EnumChildren []string
}

// Class is a generated record type: one per CPACS complex type.
type Class struct {
	Name             string
	Base             string
	Fields           []Field
	Choices          ChoiceItem // nil if the class has no xsd:choice content
	Pruned           bool
	Deps             ClassDependencies
	Documentation    string
	OriginXPath      string
	ContainsSequence bool

	// ParentKinds lists the class names that may legally contain this
	// class as a field, populated only for classes the parentPointers
	// table (or a global flag) marks as carrying a back-reference.
	ParentKinds []string
}

// HasUIDField reports whether the class carries a field named "uID"
// (of any construct and cardinality), which drives UID-manager
// registration hooks.
func (c *Class) HasUIDField() bool {
	for _, f := range c.Fields {
		if f.CpacsName == "uID" {
			return true
		}
	}
	return false
}

// EnumValue is one literal in an Enum; CustomName is set only when B4
// disambiguation was needed.
type EnumValue struct {
	CpacsName  string
	CustomName string
}

// Name is the effective value name used for equality and emission.
func (v EnumValue) Name() string {
	if v.CustomName != "" {
		return v.CustomName
	}
	return v.CpacsName
}

// EnumDependencies holds the parent classes referencing this enum.
type EnumDependencies struct {
	Parents []string
}

// Enum is a generated scoped enumeration: one per collapsed group of
// CPACS simpleType restrictions sharing a value set.
type Enum struct {
	Name          string
	Values        []EnumValue
	Pruned        bool
	Deps          EnumDependencies
	Documentation string
	OriginXPath   string
}

// ChoiceItem is either a ChoiceLeaf or a *ChoiceGroup; it mirrors the
// nesting of xsd:choice inside xsd:sequence/xsd:choice.
type ChoiceItem interface {
	isChoiceItem()
}

// ChoiceLeaf references one field by index into the owning Class's
// Fields slice. OptionalBefore records whether the field was already
// optional in the schema (min=0) independent of choice membership, so
// the validator can tell "absent because not chosen" from "absent
// because naturally optional".
type ChoiceLeaf struct {
	FieldIndex     int
	OptionalBefore bool
}

func (ChoiceLeaf) isChoiceItem() {}

// ChoiceGroup is "exactly one of these option lists must be present".
type ChoiceGroup struct {
	Options   [][]ChoiceItem
	MinOccurs uint32
}

func (*ChoiceGroup) isChoiceItem() {}

// ChoiceForest holds more than one independent top-level choice group
// within a single class body -- the rare case of a sequence containing
// two or more sibling xsd:choice elements rather than one.
type ChoiceForest []ChoiceItem

func (ChoiceForest) isChoiceItem() {}

// TypeSystem is the builder's output: every surviving (and, pre-prune,
// every) class and enum, addressable by name.
type TypeSystem struct {
	Classes map[string]*Class
	Enums   map[string]*Enum

	// Roots lists the translated (builder-resolved) names of the schema's
	// root elements: a Class name for a structured root, or an Enum name
	// for a root whose element type is a bare restriction.
	Roots []string
}

// ClassByName resolves a class back-edge to its owning record.
func (ts *TypeSystem) ClassByName(name string) (*Class, bool) {
	c, ok := ts.Classes[name]
	return c, ok
}

// EnumByName resolves an enum back-edge to its owning record.
func (ts *TypeSystem) EnumByName(name string) (*Enum, bool) {
	e, ok := ts.Enums[name]
	return e, ok
}

// Error is a build-stage error: duplicate type name, invalid
// cardinality pair, missing root element, or an enum value conflict
// that cannot be disambiguated.
type Error struct {
	TypeName string
	Msg      string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.TypeName + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.TypeName + ": " + e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(typeName, msg string) *Error {
	return &Error{TypeName: typeName, Msg: msg}
}

func wrapError(typeName, msg string, err error) *Error {
	return &Error{TypeName: typeName, Msg: msg, Err: err}
}
