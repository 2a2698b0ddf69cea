// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import "sort"

// ComputeDependencies is Phase B2: it resets and rebuilds every class's
// and enum's back-edge sets from the current Fields/Base state. It is
// re-run after the prune sweep (Phase B5) drops fields and bases that
// pointed at pruned nodes, so it must be idempotent -- calling it twice
// in a row with no graph changes between the calls leaves every
// dependency set unchanged.
func ComputeDependencies(ts *TypeSystem) {
	for _, c := range ts.Classes {
		c.Deps = ClassDependencies{}
	}
	for _, e := range ts.Enums {
		e.Deps = EnumDependencies{}
	}

	for _, c := range ts.Classes {
		if c.Base != "" {
			if base, ok := ts.Classes[c.Base]; ok {
				addUnique(&base.Deps.Deriveds, c.Name)
				addUnique(&c.Deps.Bases, c.Base)
			}
		}
		for _, f := range c.Fields {
			if target, ok := ts.Classes[f.TypeName]; ok {
				addUnique(&target.Deps.Parents, c.Name)
				addUnique(&c.Deps.Children, f.TypeName)
				continue
			}
			if enum, ok := ts.Enums[f.TypeName]; ok {
				addUnique(&enum.Deps.Parents, c.Name)
				addUnique(&c.Deps.EnumChildren, f.TypeName)
			}
		}
	}

	for _, c := range ts.Classes {
		sort.Strings(c.Deps.Bases)
		sort.Strings(c.Deps.Deriveds)
		sort.Strings(c.Deps.Parents)
		sort.Strings(c.Deps.Children)
		sort.Strings(c.Deps.EnumChildren)
	}
	for _, e := range ts.Enums {
		sort.Strings(e.Deps.Parents)
	}
}

func addUnique(list *[]string, name string) {
	for _, v := range *list {
		if v == name {
			return
		}
	}
	*list = append(*list, name)
}
