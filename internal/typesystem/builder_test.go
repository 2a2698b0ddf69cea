// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package typesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpacsgen/cpacsgen/internal/schema"
	"github.com/cpacsgen/cpacsgen/internal/tables"
)

func testTables() *tables.Tables {
	return &tables.Tables{
		CustomTypes:       tables.NewMapping(nil),
		TypeSubstitutions: tables.NewMapping(nil),
		XSDTypes: tables.NewMapping(map[string]string{
			"xsd:string":  "string",
			"xsd:int":     "int32",
			"xsd:boolean": "bool",
			"xsd:double":  "float64",
		}),
		PruneList:        tables.NewSet(),
		ParentPointers:   tables.NewSet(),
		ReservedNames:    tables.NewSet(),
		FundamentalTypes: tables.NewSet("string", "int32", "bool", "float64"),
	}
}

func buildFromXSD(t *testing.T, xsd string) *TypeSystem {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.xsd"), []byte(xsd), 0o644))
	st, err := schema.Parse(dir)
	require.NoError(t, err)
	ts, err := Build(st, testTables())
	require.NoError(t, err)
	return ts
}

func TestSequenceFieldsCarryCardinality(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="wing" type="CPACSWingType"/>
  <xsd:complexType name="CPACSWingType">
    <xsd:sequence>
      <xsd:element name="name" type="xsd:string"/>
      <xsd:element name="description" type="xsd:string" minOccurs="0"/>
      <xsd:element name="segment" type="CPACSWingSegmentType" maxOccurs="unbounded"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSWingSegmentType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	wing, ok := ts.ClassByName("CPACSWingType")
	require.True(t, ok)
	require.Len(t, wing.Fields, 3)
	assert.Equal(t, Mandatory, wing.Fields[0].Cardinality())
	assert.Equal(t, Optional, wing.Fields[1].Cardinality())
	assert.Equal(t, Vector, wing.Fields[2].Cardinality())
	assert.Equal(t, "CPACSWingSegmentType", wing.Fields[2].TypeName)
	assert.True(t, wing.ContainsSequence)
}

func TestChoiceBuildsLeavesWithOptionalBefore(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:choice>
        <xsd:element name="optionA" type="xsd:string"/>
        <xsd:element name="optionB" type="xsd:string" minOccurs="0"/>
      </xsd:choice>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, Optional, root.Fields[0].Cardinality(), "choice membership forces optional regardless of original min")
	assert.Equal(t, Optional, root.Fields[1].Cardinality())

	group, ok := root.Choices.(*ChoiceGroup)
	require.True(t, ok)
	require.Len(t, group.Options, 2)
	leafA := group.Options[0][0].(ChoiceLeaf)
	leafB := group.Options[1][0].(ChoiceLeaf)
	assert.False(t, leafA.OptionalBefore)
	assert.True(t, leafB.OptionalBefore)
	assert.Equal(t, "optionA", root.Fields[leafA.FieldIndex].CpacsName)
	assert.Equal(t, "_choice1", root.Fields[leafA.FieldIndex].NamePostfix)
}

func TestEnumerationBecomesEnum(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="kind" type="wingStatusType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="wingStatusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="normal"/>
      <xsd:enumeration value="simple"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`)

	enum, ok := ts.EnumByName("CPACSWingStatus")
	require.True(t, ok)
	require.Len(t, enum.Values, 2)
	assert.Equal(t, "normal", enum.Values[0].CpacsName)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	assert.Equal(t, "CPACSWingStatus", root.Fields[0].TypeName)
}

func TestSimpleContentFieldResolvesBaseType(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:simpleContent>
      <xsd:extension base="xsd:double">
        <xsd:attribute name="uID" type="xsd:string" use="required"/>
      </xsd:extension>
    </xsd:simpleContent>
  </xsd:complexType>
</xsd:schema>
`)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "uID", root.Fields[0].CpacsName)
	assert.Equal(t, Mandatory, root.Fields[0].Cardinality())
	assert.Equal(t, "simpleContent", root.Fields[1].CpacsName)
	assert.Equal(t, "float64", root.Fields[1].TypeName)
	assert.Equal(t, ConstructSimpleContent, root.Fields[1].XMLConstruct)
	assert.True(t, root.HasUIDField())
}

func TestFundamentalBaseIsFoldedIntoSyntheticField(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:complexContent>
      <xsd:extension base="xsd:string">
        <xsd:attribute name="uID" type="xsd:string" use="required"/>
      </xsd:extension>
    </xsd:complexContent>
  </xsd:complexType>
</xsd:schema>
`)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	assert.Equal(t, "", root.Base)
	require.Len(t, root.Fields, 2)
	assert.Equal(t, "base", root.Fields[0].CpacsName)
	assert.Equal(t, ConstructFundamentalTypeBase, root.Fields[0].XMLConstruct)
	assert.Equal(t, "string", root.Fields[0].TypeName)
}

func TestComplexBaseIsInheritanceEdge(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="DerivedType"/>
  <xsd:complexType name="BaseType">
    <xsd:sequence>
      <xsd:element name="name" type="xsd:string"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="DerivedType">
    <xsd:complexContent>
      <xsd:extension base="BaseType">
        <xsd:sequence>
          <xsd:element name="extra" type="xsd:string"/>
        </xsd:sequence>
      </xsd:extension>
    </xsd:complexContent>
  </xsd:complexType>
</xsd:schema>
`)

	derived, ok := ts.ClassByName("DerivedType")
	require.True(t, ok)
	assert.Equal(t, "BaseType", derived.Base)
	require.Len(t, derived.Fields, 1)
	assert.Equal(t, "extra", derived.Fields[0].CpacsName)
}

func TestTypeSubstitutionBypassesClassGeneration(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.xsd"), []byte(`
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="point" type="CPACSPointType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:complexType name="CPACSPointType">
    <xsd:sequence>
      <xsd:element name="x" type="xsd:double"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`), 0o644))
	st, err := schema.Parse(dir)
	require.NoError(t, err)

	tbls := testTables()
	tbls.TypeSubstitutions = tables.NewMapping(map[string]string{"CPACSPointType": "geom.Point3D"})

	ts, err := Build(st, tbls)
	require.NoError(t, err)

	_, hasPointClass := ts.ClassByName("CPACSPointType")
	assert.False(t, hasPointClass)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	assert.Equal(t, "geom.Point3D", root.Fields[0].TypeName)
}

func TestZeroMinAndMaxOccursOmitsFieldWithoutError(t *testing.T) {
	ts := buildFromXSD(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="name" type="xsd:string"/>
      <xsd:element name="deadField" type="xsd:string" minOccurs="0" maxOccurs="0"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`)

	root, ok := ts.ClassByName("RootType")
	require.True(t, ok)
	require.Len(t, root.Fields, 1)
	assert.Equal(t, "name", root.Fields[0].CpacsName)
}

func TestInvalidOccursPairIsBuildError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.xsd"), []byte(`
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="broken" type="xsd:string" minOccurs="2" maxOccurs="1"/>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`), 0o644))
	st, err := schema.Parse(dir)
	require.NoError(t, err)

	_, err = Build(st, testTables())
	require.Error(t, err)

	var tsErr *Error
	require.ErrorAs(t, err, &tsErr)
	assert.Contains(t, tsErr.Error(), "RootType")
}
