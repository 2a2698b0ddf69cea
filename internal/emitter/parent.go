// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// assignParentKinds populates Class.ParentKinds for every class the
// parentPointers table names, from the already-computed Deps.Parents
// back-edge (Phase B2): the legal parents of a class are exactly the
// classes that reference it through a field. This is an emitter-owned
// pass -- the builder leaves ParentKinds empty, since whether a class
// needs a back-reference at all is an emission decision (spec.md §4.4),
// not a property of the schema.
func assignParentKinds(ts *typesystem.TypeSystem, tbls *tables.Tables) {
	for name, c := range ts.Classes {
		if c.Pruned || !tbls.ParentPointers.Contains(name) {
			continue
		}
		c.ParentKinds = append([]string(nil), c.Deps.Parents...)
	}
}
