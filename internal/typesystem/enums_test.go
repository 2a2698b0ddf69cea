// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseEnumsMergesIdenticalValueLists(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="a" type="wing_statusType"/>
      <xsd:element name="b" type="fuselage_statusType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="wing_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="on"/>
      <xsd:enumeration value="off"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="fuselage_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="on"/>
      <xsd:enumeration value="off"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`)

	require.Len(t, ts.Enums, 2, "precondition: two separate enums before collapsing")
	CollapseEnums(ts)
	require.Len(t, ts.Enums, 1)

	var survivor *Enum
	for _, e := range ts.Enums {
		survivor = e
	}
	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	assert.Equal(t, survivor.Name, root.Fields[0].TypeName)
	assert.Equal(t, survivor.Name, root.Fields[1].TypeName)
}

func TestCollapseEnumsKeepsDifferentValueListsSeparate(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="a" type="wing_statusType"/>
      <xsd:element name="b" type="fuselage_statusType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="wing_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="on"/>
      <xsd:enumeration value="off"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="fuselage_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="red"/>
      <xsd:enumeration value="blue"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`)

	CollapseEnums(ts)
	assert.Len(t, ts.Enums, 2)
}

func TestDisambiguateEnumValuesAcrossDistinctEnums(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="a" type="fooKindType"/>
      <xsd:element name="b" type="barKindType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="fooKindType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="shared"/>
      <xsd:enumeration value="fooOnly"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="barKindType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="shared"/>
      <xsd:enumeration value="barOnly"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`)

	DisambiguateEnumValues(ts)

	foo, ok := ts.EnumByName("CPACSFooKind")
	require.True(t, ok)
	bar, ok := ts.EnumByName("CPACSBarKind")
	require.True(t, ok)

	assert.Equal(t, "CPACSFooKind_shared", foo.Values[0].Name())
	assert.Equal(t, "fooOnly", foo.Values[1].Name())
	assert.Equal(t, "CPACSBarKind_shared", bar.Values[0].Name())
	assert.Equal(t, "barOnly", bar.Values[1].Name())
}

func TestDisambiguateEnumValuesWithinOneEnum(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="a" type="fooKindType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="fooKindType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="dup"/>
      <xsd:enumeration value="dup"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`)

	DisambiguateEnumValues(ts)

	foo, ok := ts.EnumByName("CPACSFooKind")
	require.True(t, ok)
	require.Len(t, foo.Values, 2)
	assert.Equal(t, "dup", foo.Values[0].Name())
	assert.Equal(t, "dup_2", foo.Values[1].Name())
}
