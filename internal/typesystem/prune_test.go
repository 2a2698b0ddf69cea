// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpacsgen/cpacsgen/internal/tables"
)

func TestPruneKeepsOnlyReachableFromRoots(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="wing" type="CPACSWingType"/>
  <xsd:complexType name="CPACSWingType">
    <xsd:sequence>
      <xsd:element name="segment" type="CPACSWingSegmentType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSWingSegmentType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSOrphanType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	ComputeDependencies(ts)
	Prune(ts, tables.NewSet())

	wing, _ := ts.ClassByName("CPACSWingType")
	segment, _ := ts.ClassByName("CPACSWingSegmentType")
	orphan, _ := ts.ClassByName("CPACSOrphanType")

	assert.False(t, wing.Pruned)
	assert.False(t, segment.Pruned)
	assert.True(t, orphan.Pruned)
}

func TestPruneListHaltsTraversalButKeepsTheNode(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="wing" type="CPACSWingType"/>
  <xsd:complexType name="CPACSWingType">
    <xsd:sequence>
      <xsd:element name="boundary" type="CPACSEnvironmentType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSEnvironmentType">
    <xsd:sequence>
      <xsd:element name="hidden" type="CPACSHiddenType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSHiddenType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	ComputeDependencies(ts)
	Prune(ts, tables.NewSet("CPACSEnvironmentType"))

	env, _ := ts.ClassByName("CPACSEnvironmentType")
	hidden, _ := ts.ClassByName("CPACSHiddenType")
	assert.False(t, env.Pruned, "the halted node itself is kept")
	assert.True(t, hidden.Pruned, "traversal never reached past the halted node")

	wing, _ := ts.ClassByName("CPACSWingType")
	require.Len(t, wing.Fields, 1)
	assert.Equal(t, "CPACSEnvironmentType", wing.Fields[0].TypeName)
}

func TestPruneLeavesFieldsOfKeptClassIntact(t *testing.T) {
	// CPACSOrphanType is never referenced from the root, so it is pruned;
	// CPACSWingType never referenced it and keeps its own field.
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="wing" type="CPACSWingType"/>
  <xsd:complexType name="CPACSWingType">
    <xsd:sequence>
      <xsd:element name="name" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSOrphanType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)
	ComputeDependencies(ts)
	Prune(ts, tables.NewSet())

	wing, _ := ts.ClassByName("CPACSWingType")
	require.Len(t, wing.Fields, 1)
	assert.Equal(t, "name", wing.Fields[0].CpacsName)
}

func TestPruneIsIdempotent(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="wing" type="CPACSWingType"/>
  <xsd:complexType name="CPACSWingType">
    <xsd:sequence>
      <xsd:element name="segment" type="CPACSWingSegmentType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSWingSegmentType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSOrphanType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	ComputeDependencies(ts)
	Prune(ts, tables.NewSet())
	firstPassWing, _ := ts.ClassByName("CPACSWingType")
	firstFields := append([]Field(nil), firstPassWing.Fields...)

	Prune(ts, tables.NewSet())
	secondPassWing, _ := ts.ClassByName("CPACSWingType")
	assert.Equal(t, firstFields, secondPassWing.Fields)
}
