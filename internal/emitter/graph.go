// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// WriteGraph renders the resolved type graph as GraphViz DOT: one node
// per surviving class/enum, edges for base, child (field references)
// and enumChild, per spec.md §6's graphOutputPath contract.
func WriteGraph(ts *typesystem.TypeSystem) string {
	var b strings.Builder
	b.WriteString("digraph cpacs {\n\trankdir=LR;\n")

	for _, name := range sortedClassNames(ts) {
		c := ts.Classes[name]
		if c.Pruned {
			continue
		}
		fmt.Fprintf(&b, "\t%q [shape=box];\n", name)
		if c.Base != "" {
			fmt.Fprintf(&b, "\t%q -> %q [style=dashed, label=\"base\"];\n", name, c.Base)
		}
		for _, child := range c.Deps.Children {
			fmt.Fprintf(&b, "\t%q -> %q;\n", name, child)
		}
		for _, child := range c.Deps.EnumChildren {
			fmt.Fprintf(&b, "\t%q -> %q [color=blue];\n", name, child)
		}
	}
	for _, name := range sortedEnumNames(ts) {
		e := ts.Enums[name]
		if e.Pruned {
			continue
		}
		fmt.Fprintf(&b, "\t%q [shape=ellipse, color=blue];\n", name)
	}

	b.WriteString("}\n")
	return b.String()
}
