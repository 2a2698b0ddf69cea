// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"fmt"
	"strings"

	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
)

// compileChoiceValidator compiles a class's choice tree into the body
// of its ValidateChoices method, per spec.md §4.4: every ChoiceGroup
// becomes a self-evaluating function literal counting how many of its
// options are satisfied, a satisfied option requiring its own leaves
// present and every other option's non-shared leaves absent.
func compileChoiceValidator(class *typesystem.Class, reserved tables.Set) string {
	return compileChoiceItem(class.Choices, class, reserved)
}

func compileChoiceItem(item typesystem.ChoiceItem, class *typesystem.Class, reserved tables.Set) string {
	switch v := item.(type) {
	case nil:
		return "true"
	case typesystem.ChoiceLeaf:
		if v.OptionalBefore {
			return "true"
		}
		return presenceExpr(class, v.FieldIndex, reserved)
	case *typesystem.ChoiceGroup:
		return compileChoiceGroup(v, class, reserved)
	case typesystem.ChoiceForest:
		parts := make([]string, 0, len(v))
		for _, it := range v {
			parts = append(parts, compileChoiceItem(it, class, reserved))
		}
		if len(parts) == 0 {
			return "true"
		}
		return strings.Join(parts, " && ")
	default:
		return "true"
	}
}

func compileChoiceGroup(group *typesystem.ChoiceGroup, class *typesystem.Class, reserved tables.Set) string {
	optionLeaves := make([][]typesystem.ChoiceLeaf, len(group.Options))
	for i, opt := range group.Options {
		for _, it := range opt {
			optionLeaves[i] = append(optionLeaves[i], collectLeaves(it)...)
		}
	}

	nameCount := make(map[string]int)
	for _, leaves := range optionLeaves {
		seen := make(map[string]bool)
		for _, l := range leaves {
			name := class.Fields[l.FieldIndex].CpacsName
			if !seen[name] {
				seen[name] = true
				nameCount[name]++
			}
		}
	}
	sharedNames := make(map[string]bool)
	for name, n := range nameCount {
		if n > 1 {
			sharedNames[name] = true
		}
	}

	var b strings.Builder
	b.WriteString("func() bool {\n\t\tn := 0\n")
	for i, opt := range group.Options {
		selfParts := make([]string, 0, len(opt))
		for _, it := range opt {
			selfParts = append(selfParts, compileChoiceItem(it, class, reserved))
		}
		selfExpr := "true"
		if len(selfParts) > 0 {
			selfExpr = strings.Join(selfParts, " && ")
		}

		var otherExprs []string
		for j, leaves := range optionLeaves {
			if j == i {
				continue
			}
			for _, l := range leaves {
				if sharedNames[class.Fields[l.FieldIndex].CpacsName] {
					continue
				}
				otherExprs = append(otherExprs, presenceExpr(class, l.FieldIndex, reserved))
			}
		}
		negExpr := "true"
		if len(otherExprs) > 0 {
			negExpr = "!(" + strings.Join(otherExprs, " || ") + ")"
		}

		fmt.Fprintf(&b, "\t\tif (%s) && (%s) {\n\t\t\tn++\n\t\t}\n", selfExpr, negExpr)
	}
	b.WriteString("\t\tif n == 1 {\n\t\t\treturn true\n\t\t}\n")
	if group.MinOccurs == 0 {
		b.WriteString("\t\tif n == 0 {\n\t\t\treturn true\n\t\t}\n")
	}
	b.WriteString("\t\treturn false\n\t}()")
	return b.String()
}

// collectLeaves flattens a ChoiceItem subtree (through nested groups and
// forests) into the leaf fields it ultimately governs, used to decide
// which fields belong to which option for the collision check.
func collectLeaves(item typesystem.ChoiceItem) []typesystem.ChoiceLeaf {
	switch v := item.(type) {
	case typesystem.ChoiceLeaf:
		return []typesystem.ChoiceLeaf{v}
	case *typesystem.ChoiceGroup:
		var out []typesystem.ChoiceLeaf
		for _, opt := range v.Options {
			for _, it := range opt {
				out = append(out, collectLeaves(it)...)
			}
		}
		return out
	case typesystem.ChoiceForest:
		var out []typesystem.ChoiceLeaf
		for _, it := range v {
			out = append(out, collectLeaves(it)...)
		}
		return out
	default:
		return nil
	}
}

// presenceExpr renders the "is this field present" predicate used by
// the choice validator, matching the field's cardinality-derived Go
// representation (pointer for Optional, slice for Vector).
func presenceExpr(class *typesystem.Class, fieldIndex int, reserved tables.Set) string {
	f := class.Fields[fieldIndex]
	ident := "c." + fieldIdent(f.Name(), reserved)
	switch f.Cardinality() {
	case typesystem.Vector:
		return fmt.Sprintf("len(%s) > 0", ident)
	default:
		return ident + " != nil"
	}
}
