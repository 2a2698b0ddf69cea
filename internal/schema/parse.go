// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package schema

import (
	"encoding/xml"
	"os"
	"path/filepath"
)

// Parse reads every *.xsd file directly under dir, plus every *.xsd file
// one level of subdirectory down (subnamespaces, per spec.md §6), and
// lowers them into a single normalized SchemaTypes catalog. A duplicate
// top-level type name across files is a schema error.
func Parse(dir string) (*SchemaTypes, error) {
	files, err := findXSDFiles(dir)
	if err != nil {
		return nil, wrapError(dir, "failed to enumerate XSD files", err)
	}

	l := newLowering()
	for _, file := range files {
		raw, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		log.WithField("file", file).WithField("namespace", raw.TargetNamespace).
			Info("lowering schema")
		if err := l.lowerSchema(raw); err != nil {
			return nil, err
		}
	}

	return &SchemaTypes{Roots: l.roots, Types: l.types}, nil
}

func findXSDFiles(dir string) ([]string, error) {
	var files []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			subEntries, err := os.ReadDir(filepath.Join(dir, e.Name()))
			if err != nil {
				return nil, err
			}
			for _, se := range subEntries {
				if !se.IsDir() && filepath.Ext(se.Name()) == ".xsd" {
					files = append(files, filepath.Join(dir, e.Name(), se.Name()))
				}
			}
			continue
		}
		if filepath.Ext(e.Name()) == ".xsd" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func parseFile(path string) (*rawSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(path, "failed to read XSD file", err)
	}

	raw := new(rawSchema)
	if err := xml.Unmarshal(data, raw); err != nil {
		if schemaErr, ok := err.(*Error); ok {
			return nil, schemaErr
		}
		return nil, wrapError(path, "malformed XSD", err)
	}
	return raw, nil
}
