// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package tables loads the small, plain-text configuration tables that
// parameterize schema lowering and code emission: custom type renames,
// type substitutions, the XSD-primitive mapping, the prune list, the
// parent-pointer list, reserved identifiers and the fundamental-type set.
package tables

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("stage", "tables")

// Set is an unordered collection of names, backed by a file with one
// record per line.
type Set struct {
	data map[string]struct{}
}

// NewSet builds a Set from an in-memory collection, used for defaults.
func NewSet(values ...string) Set {
	s := Set{data: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.data[v] = struct{}{}
	}
	return s
}

// Contains reports whether key was declared in the table.
func (s Set) Contains(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Len reports the number of entries.
func (s Set) Len() int { return len(s.data) }

func loadSet(path string, fallback Set) Set {
	records, ok := readRecords(path)
	if !ok {
		return fallback
	}
	s := Set{data: make(map[string]struct{}, len(records))}
	for _, r := range records {
		if len(r) == 0 {
			continue
		}
		s.data[r[0]] = struct{}{}
	}
	return s
}

// Mapping is a string-to-string lookup, backed by a two-column table file.
type Mapping struct {
	data map[string]string
}

// NewMapping builds a Mapping from an in-memory collection, used for defaults.
func NewMapping(data map[string]string) Mapping {
	m := Mapping{data: make(map[string]string, len(data))}
	for k, v := range data {
		m.data[k] = v
	}
	return m
}

// Contains reports whether key has a mapped value.
func (m Mapping) Contains(key string) bool {
	_, ok := m.data[key]
	return ok
}

// Find looks up key, returning ("", false) when absent.
func (m Mapping) Find(key string) (string, bool) {
	v, ok := m.data[key]
	return v, ok
}

// SubstituteIfExists rewrites value in place when key has a mapping.
func (m Mapping) SubstituteIfExists(key string, value *string) {
	if v, ok := m.data[key]; ok {
		*value = v
	}
}

func loadMapping(path string, fallback Mapping) Mapping {
	records, ok := readRecords(path)
	if !ok {
		return fallback
	}
	m := Mapping{data: make(map[string]string, len(records))}
	for _, r := range records {
		if len(r) < 2 {
			continue
		}
		m.data[r[0]] = r[1]
	}
	return m
}

// readRecords reads whitespace-separated fields per line from path,
// skipping blank lines and "//" comments. Missing files are non-fatal:
// the second return value is false and the caller substitutes defaults.
func readRecords(path string) ([][]string, bool) {
	f, err := os.Open(path)
	if err != nil {
		log.WithField("file", path).Warn("failed to open table file, no table data loaded")
		return nil, false
	}
	defer f.Close()

	log.WithField("file", path).Info("reading table")

	var records [][]string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		records = append(records, fields)
	}
	return records, true
}

// Tables bundles the seven named configuration tables loaded from a
// directory.
type Tables struct {
	CustomTypes       Mapping
	TypeSubstitutions Mapping
	XSDTypes          Mapping
	PruneList         Set
	ParentPointers    Set
	ReservedNames     Set
	FundamentalTypes  Set
}

// Load reads all seven tables from dir. Missing files warn and fall back
// to the built-in defaults for xsdTypes, reservedNames and
// fundamentalTypes; the remaining four default to empty.
func Load(dir string) *Tables {
	return &Tables{
		CustomTypes:       loadMapping(filepath.Join(dir, "CustomTypes.txt"), NewMapping(nil)),
		TypeSubstitutions: loadMapping(filepath.Join(dir, "TypeSubstitution.txt"), NewMapping(nil)),
		XSDTypes:          loadMapping(filepath.Join(dir, "XsdTypes.txt"), NewMapping(defaultXSDTypes)),
		PruneList:         loadSet(filepath.Join(dir, "PruneList.txt"), NewSet()),
		ParentPointers:    loadSet(filepath.Join(dir, "ParentPointer.txt"), NewSet()),
		ReservedNames:     loadSet(filepath.Join(dir, "ReservedNames.txt"), NewSet(defaultReservedNames...)),
		FundamentalTypes:  loadSet(filepath.Join(dir, "FundamentalTypes.txt"), NewSet(defaultFundamentalTypes...)),
	}
}

// defaultXSDTypes mirrors the fixed XSD-primitive mapping baked into the
// original tool's Tables.cpp, translated to Go scalar equivalents.
var defaultXSDTypes = map[string]string{
	"xsd:byte":          "int8",
	"xsd:unsignedByte":  "uint8",
	"xsd:short":         "int16",
	"xsd:unsignedShort": "uint16",
	"xsd:int":           "int32",
	"xsd:unsignedInt":   "uint32",
	"xsd:long":          "int64",
	"xsd:unsignedLong":  "uint64",
	"xsd:integer":       "int",
	"xsd:boolean":       "bool",
	"xsd:float":         "float32",
	"xsd:double":        "float64",
	"xsd:decimal":       "float64",
	"xsd:date":          "time.Time",
	"xsd:dateTime":      "time.Time",
	"xsd:time":          "time.Time",
	"xsd:string":        "string",
	"xsd:ID":            "string",
	"xsd:IDREF":         "string",
}

// defaultReservedNames is the set of identifiers Go reserves.
var defaultReservedNames = []string{
	"break", "default", "func", "interface", "select",
	"case", "defer", "go", "map", "struct",
	"chan", "else", "goto", "package", "switch",
	"const", "fallthrough", "if", "range", "type",
	"continue", "for", "import", "return", "var",
}

// defaultFundamentalTypes is the set of leaf scalar types, translated
// from the original tool's m_fundamentalTypes.
var defaultFundamentalTypes = []string{
	"string",
	"float64",
	"bool",
	"int",
	"time.Time",
}
