// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import (
	"fmt"
	"sort"
)

// CollapseEnums is Phase B3: two enums collapse into one when, after
// normalizeForCollapse, they share a normalized name and an identical,
// order-preserving value list. The survivor takes the normalized name
// if nothing else already uses it verbatim; otherwise it takes the
// lexicographically smallest of the absorbed enums' original names.
// Every field pointing at an absorbed enum is rewritten to point at the
// survivor.
func CollapseEnums(ts *TypeSystem) {
	originalNames := make(map[string]bool, len(ts.Enums))
	for name := range ts.Enums {
		originalNames[name] = true
	}

	byNormalized := make(map[string][]*Enum)
	for _, e := range ts.Enums {
		key := normalizeForCollapse(e.Name)
		byNormalized[key] = append(byNormalized[key], e)
	}

	replacements := make(map[string]string)
	survivors := make(map[string]*Enum, len(ts.Enums))

	for normalized, group := range byNormalized {
		sort.Slice(group, func(i, j int) bool { return group[i].Name < group[j].Name })

		used := make([]bool, len(group))
		for i := range group {
			if used[i] {
				continue
			}
			cluster := []*Enum{group[i]}
			used[i] = true
			for j := i + 1; j < len(group); j++ {
				if !used[j] && sameValueList(group[i].Values, group[j].Values) {
					cluster = append(cluster, group[j])
					used[j] = true
				}
			}

			if len(cluster) == 1 {
				survivors[cluster[0].Name] = cluster[0]
				continue
			}

			survivorName := normalized
			if conflictsOutsideCluster(originalNames, cluster, normalized) {
				survivorName = cluster[0].Name
				for _, c := range cluster {
					if c.Name < survivorName {
						survivorName = c.Name
					}
				}
			}

			survivor := &Enum{
				Name:          survivorName,
				Values:        cluster[0].Values,
				Documentation: firstDocumentation(cluster),
				OriginXPath:   cluster[0].OriginXPath,
			}
			survivors[survivorName] = survivor
			for _, c := range cluster {
				if c.Name != survivorName {
					replacements[c.Name] = survivorName
				}
			}
		}
	}

	ts.Enums = survivors
	rewriteEnumReferences(ts, replacements)
}

func sameValueList(a, b []EnumValue) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].CpacsName != b[i].CpacsName {
			return false
		}
	}
	return true
}

// conflictsOutsideCluster reports whether the normalized name is
// already some other enum's literal name, which would make it unsafe to
// rename the survivor to the normalized form.
func conflictsOutsideCluster(originalNames map[string]bool, cluster []*Enum, normalized string) bool {
	if !originalNames[normalized] {
		return false
	}
	for _, c := range cluster {
		if c.Name == normalized {
			return false
		}
	}
	return true
}

func firstDocumentation(cluster []*Enum) string {
	for _, c := range cluster {
		if c.Documentation != "" {
			return c.Documentation
		}
	}
	return ""
}

func rewriteEnumReferences(ts *TypeSystem, replacements map[string]string) {
	if len(replacements) == 0 {
		return
	}
	for _, c := range ts.Classes {
		for i := range c.Fields {
			if to, ok := replacements[c.Fields[i].TypeName]; ok {
				c.Fields[i].TypeName = to
			}
		}
	}
}

// DisambiguateEnumValues is Phase B4. It runs in two passes: first, a
// value string repeated within one enum (two xsd:enumeration facets
// with the same literal, typically from a hand-edited schema) gets an
// ascending numeric suffix so every Go constant name stays unique;
// second, a value string shared verbatim across two or more distinct
// enums gets customName = "<enumName>_<value>" on every occurrence that
// the first pass left without a suffix.
func DisambiguateEnumValues(ts *TypeSystem) {
	for _, e := range ts.Enums {
		seen := make(map[string]int, len(e.Values))
		for i := range e.Values {
			name := e.Values[i].CpacsName
			seen[name]++
			if seen[name] > 1 {
				e.Values[i].CustomName = fmt.Sprintf("%s_%d", name, seen[name])
			}
		}
	}

	owners := make(map[string][]string)
	for _, e := range ts.Enums {
		added := make(map[string]bool, len(e.Values))
		for _, v := range e.Values {
			if added[v.CpacsName] {
				continue
			}
			added[v.CpacsName] = true
			owners[v.CpacsName] = append(owners[v.CpacsName], e.Name)
		}
	}

	for value, enumNames := range owners {
		if len(enumNames) < 2 {
			continue
		}
		for _, enumName := range enumNames {
			e := ts.Enums[enumName]
			for i := range e.Values {
				if e.Values[i].CpacsName == value && e.Values[i].CustomName == "" {
					e.Values[i].CustomName = enumName + "_" + value
				}
			}
		}
	}
}
