// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cpacsxml defines the thin DOM facade that generated readers
// and writers are compiled against. A generated class never touches
// encoding/xml directly: it calls Document methods addressed by xpath,
// and the facade owns element lookup, creation order and type
// conversion. Document is an interface so generated code links against
// whatever runtime implements it; MemDocument is this repository's own
// reference implementation, exercised by this package's own tests.
package cpacsxml

import (
	"errors"
	"fmt"
)

// ErrMissing is wrapped into errors returned by the Get* family when an
// xpath that is required to exist does not.
var ErrMissing = errors.New("cpacsxml: missing element or attribute")

// ErrCardinality is wrapped into the error ReadElements returns when the
// number of matching children falls outside [min, max].
var ErrCardinality = errors.New("cpacsxml: cardinality violation")

// Document is the facade contract generated code is compiled against,
// translating spec section 6's operation table directly:
//
//	checkAttribute / checkElement           -> existence predicates
//	getAttribute<T> / getElement<T>         -> typed read, error on missing
//	readElements                            -> repeated children, cardinality checked
//	saveAttribute / saveElement / saveElements -> write, creating ancestors
//	createElementIfNotExists / createSequenceElementIfNotExists -> ensure presence
//	removeAttribute / removeElement         -> idempotent removal
type Document interface {
	// CheckAttribute reports whether an attribute named name exists on
	// the element at xpath.
	CheckAttribute(xpath, name string) bool
	// CheckElement reports whether an element exists at xpath.
	CheckElement(xpath string) bool

	// GetAttribute reads the raw string value of the attribute named name
	// on the element at xpath. Returns ErrMissing if either is absent.
	GetAttribute(xpath, name string) (string, error)
	// GetElement reads the raw text content of the element at xpath.
	// Returns ErrMissing if absent.
	GetElement(xpath string) (string, error)

	// ReadElements reads every child matching xpath, verifying that the
	// count lies within [min, max] (max == 0 means unbounded).
	ReadElements(xpath string, min, max uint32) ([]string, error)

	// CountChildren reports how many siblings named by xpath's final
	// path segment currently exist, so generated code can iterate a
	// vector of class-typed children by 1-based index (xpath + "[i]",
	// matching TIXI's indexed-element addressing convention).
	CountChildren(xpath string) (int, error)

	// EnsureIndexedElement makes sure the index'th (1-based) sibling
	// named by xpath's final path segment exists, appending new
	// elements as needed; it never removes or reorders existing ones.
	EnsureIndexedElement(xpath string, index int) error

	// SaveAttribute writes value as an attribute named name on the
	// element at xpath, creating intermediate elements as needed.
	SaveAttribute(xpath, name, value string) error
	// SaveElement writes value as the text content of the element at
	// xpath, creating intermediate elements as needed.
	SaveElement(xpath, value string) error
	// SaveElements writes one child element per value under xpath, in
	// order, creating xpath itself if absent.
	SaveElements(xpath string, values []string) error

	// CreateElementIfNotExists ensures an element exists at xpath,
	// creating intermediate ancestors, and returns without error if it
	// is already present.
	CreateElementIfNotExists(xpath string) error
	// CreateSequenceElementIfNotExists ensures an element exists at
	// xpath, inserting it among existing siblings so that it respects
	// orderList (the full list of sibling tag names in schema order).
	CreateSequenceElementIfNotExists(xpath string, orderList []string) error

	// RemoveAttribute removes the attribute named name from xpath, or
	// does nothing if it is already absent.
	RemoveAttribute(xpath, name string) error
	// RemoveElement removes the element at xpath and its subtree, or
	// does nothing if it is already absent.
	RemoveElement(xpath string) error
}

// MissingError wraps ErrMissing with the xpath that was not found, so
// callers can report a useful message without string-matching.
type MissingError struct {
	XPath string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("cpacsxml: %s: %v", e.XPath, ErrMissing)
}

func (e *MissingError) Unwrap() error { return ErrMissing }

// CardinalityError wraps ErrCardinality with the xpath and the observed
// count versus the [min, max] bound that was violated.
type CardinalityError struct {
	XPath          string
	Min, Max, Got  uint32
}

func (e *CardinalityError) Error() string {
	return fmt.Sprintf("cpacsxml: %s: got %d children, want [%d,%d]: %v", e.XPath, e.Got, e.Min, e.Max, ErrCardinality)
}

func (e *CardinalityError) Unwrap() error { return ErrCardinality }
