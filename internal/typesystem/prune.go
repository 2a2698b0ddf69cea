// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import "github.com/cpacsgen/cpacsgen/internal/tables"

// Prune is Phase B5. Every class and enum starts marked pruned. A
// depth-first walk from ts.Roots follows bases, field types and enum
// children, marking each visited node kept, but halts without
// descending into a node's own bases/fields once that node's name
// appears in pruneList -- the node itself is kept (it is, after all,
// reachable), only the walk past it stops, since pruneList names the
// boundary of generation (environment-provided fundamentals).
//
// After the walk, every field referencing a still-pruned class or enum
// is dropped, and any base pointing at a still-pruned class is cleared,
// then dependencies are recomputed. Re-running Prune afterwards against
// the same pruneList is a no-op: the dangling edges it would have
// walked past are already gone.
func Prune(ts *TypeSystem, pruneList tables.Set) {
	for _, c := range ts.Classes {
		c.Pruned = true
	}
	for _, e := range ts.Enums {
		e.Pruned = true
	}

	visitedClasses := make(map[string]bool)
	visitedEnums := make(map[string]bool)

	var visitClass func(name string)
	visitEnum := func(name string) {
		if visitedEnums[name] {
			return
		}
		e, ok := ts.Enums[name]
		if !ok {
			return
		}
		visitedEnums[name] = true
		e.Pruned = false
	}
	visitClass = func(name string) {
		if visitedClasses[name] {
			return
		}
		c, ok := ts.Classes[name]
		if !ok {
			return
		}
		visitedClasses[name] = true
		c.Pruned = false

		if pruneList.Contains(name) {
			return
		}
		if c.Base != "" {
			visitClass(c.Base)
		}
		for _, f := range c.Fields {
			if _, ok := ts.Classes[f.TypeName]; ok {
				visitClass(f.TypeName)
				continue
			}
			if _, ok := ts.Enums[f.TypeName]; ok {
				visitEnum(f.TypeName)
			}
		}
	}

	for _, root := range ts.Roots {
		visitClass(root)
		visitEnum(root)
	}

	for _, c := range ts.Classes {
		if c.Pruned {
			continue
		}
		if c.Base != "" {
			if base, ok := ts.Classes[c.Base]; ok && base.Pruned {
				c.Base = ""
			}
		}
		filterClassFields(c, ts)
	}

	ComputeDependencies(ts)
}

// filterClassFields drops fields whose type is a pruned class or enum,
// and renumbers every ChoiceLeaf.FieldIndex that survives (dropping
// choice leaves, and empty choice options or groups, left behind by a
// pruned field).
func filterClassFields(c *Class, ts *TypeSystem) {
	oldToNew := make(map[int]int, len(c.Fields))
	kept := make([]Field, 0, len(c.Fields))
	for i, f := range c.Fields {
		var pruned bool
		if target, ok := ts.Classes[f.TypeName]; ok && target.Pruned {
			pruned = true
		}
		if target, ok := ts.Enums[f.TypeName]; ok && target.Pruned {
			pruned = true
		}
		if pruned {
			continue
		}
		oldToNew[i] = len(kept)
		kept = append(kept, f)
	}
	c.Fields = kept

	if c.Choices != nil {
		c.Choices = reindexChoiceItem(c.Choices, oldToNew)
	}
}

func reindexChoiceItem(item ChoiceItem, oldToNew map[int]int) ChoiceItem {
	switch v := item.(type) {
	case ChoiceLeaf:
		newIdx, ok := oldToNew[v.FieldIndex]
		if !ok {
			return nil
		}
		v.FieldIndex = newIdx
		return v
	case *ChoiceGroup:
		var options [][]ChoiceItem
		for _, opt := range v.Options {
			var kept []ChoiceItem
			for _, it := range opt {
				if r := reindexChoiceItem(it, oldToNew); r != nil {
					kept = append(kept, r)
				}
			}
			if len(kept) > 0 {
				options = append(options, kept)
			}
		}
		if len(options) == 0 {
			return nil
		}
		return &ChoiceGroup{Options: options, MinOccurs: v.MinOccurs}
	case ChoiceForest:
		var kept []ChoiceItem
		for _, it := range v {
			if r := reindexChoiceItem(it, oldToNew); r != nil {
				kept = append(kept, r)
			}
		}
		switch len(kept) {
		case 0:
			return nil
		case 1:
			return kept[0]
		default:
			return ChoiceForest(kept)
		}
	default:
		return item
	}
}
