// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package emitter

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpacsgen/cpacsgen/internal/filesink"
	"github.com/cpacsgen/cpacsgen/internal/schema"
	"github.com/cpacsgen/cpacsgen/internal/tables"
	"github.com/cpacsgen/cpacsgen/internal/typesystem"
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
		ReservedNames:    tables.NewSet("type", "range", "func", "map"),
		FundamentalTypes: tables.NewSet("string", "int32", "bool", "float64"),
	}
}

// generate runs the full pipeline (schema -> builder -> collapse ->
// disambiguate -> prune -> emit) over an inline XSD and returns every
// generated file's content, keyed by file name, plus the resolved
// TypeSystem for assertions that need it directly.
func generate(t *testing.T, xsd string, mutate func(*tables.Tables)) (map[string]string, *typesystem.TypeSystem) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.xsd"), []byte(xsd), 0o644))

	st, err := schema.Parse(dir)
	require.NoError(t, err)

	tbls := testTables()
	if mutate != nil {
		mutate(tbls)
	}

	ts, err := typesystem.Build(st, tbls)
	require.NoError(t, err)
	typesystem.CollapseEnums(ts)
	typesystem.DisambiguateEnumValues(ts)
	typesystem.Prune(ts, tbls.PruneList)

	outDir := t.TempDir()
	sink := filesink.New(outDir)
	_, err = Emit(ts, tbls, "cpacsobjects", sink)
	require.NoError(t, err)
	_, err = sink.Flush()
	require.NoError(t, err)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)

	files := make(map[string]string, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(outDir, e.Name()))
		require.NoError(t, err)
		files[e.Name()] = string(data)

		_, parseErr := parser.ParseFile(token.NewFileSet(), e.Name(), data, parser.AllErrors)
		assert.NoError(t, parseErr, "generated file %s must be syntactically valid Go", e.Name())
	}
	return files, ts
}

func TestEmitSequenceFieldsAndRoundTripMethods(t *testing.T) {
	files, _ := generate(t, `
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
`, nil)

	wing, ok := files["CPACSWingType.go"]
	require.True(t, ok)
	assert.Contains(t, wing, "type CPACSWingType struct")
	assert.Contains(t, wing, "name        string")
	assert.Contains(t, wing, "description *string")
	assert.Contains(t, wing, "segments    []*CPACSWingSegmentType")
	assert.Contains(t, wing, "func (c *CPACSWingType) ReadCPACS(doc cpacsxml.Document, xpath string) error")
	assert.Contains(t, wing, "func (c *CPACSWingType) WriteCPACS(doc cpacsxml.Document, xpath string) error")
	assert.Contains(t, wing, "orderList := []string{\"name\", \"description\", \"segment\"}")
}

func TestEmitChoiceGroupValidator(t *testing.T) {
	files, _ := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:choice>
        <xsd:element name="optionA" type="xsd:string"/>
        <xsd:element name="optionB" type="xsd:string"/>
      </xsd:choice>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`, nil)

	root := files["RootType.go"]
	assert.Contains(t, root, "func (c *RootType) ValidateChoices() bool")
	assert.Contains(t, root, "c.optionA_choice1 != nil")
	assert.Contains(t, root, "c.optionB_choice1 != nil")
}

func TestEmitOptionalChoiceAllowsZeroSelection(t *testing.T) {
	files, _ := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:choice minOccurs="0">
        <xsd:element name="optionA" type="xsd:string"/>
        <xsd:element name="optionB" type="xsd:string"/>
      </xsd:choice>
    </xsd:sequence>
  </xsd:complexType>
</xsd:schema>
`, nil)

	root := files["RootType.go"]
	assert.Contains(t, root, "if n == 0 {")
}

func TestEmitCollapsedEnumsShareOneType(t *testing.T) {
	files, ts := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="statusA" type="wing_statusType"/>
      <xsd:element name="statusB" type="fuselage_statusType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="wing_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="normal"/>
      <xsd:enumeration value="simple"/>
    </xsd:restriction>
  </xsd:simpleType>
  <xsd:simpleType name="fuselage_statusType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="normal"/>
      <xsd:enumeration value="simple"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`, nil)

	assert.Len(t, ts.Enums, 1, "two identical value-lists should collapse into one enum")
	root := files["RootType.go"]
	var enumTypeName string
	for name := range ts.Enums {
		enumTypeName = name
	}
	assert.Contains(t, root, "statusA "+enumTypeName)
	assert.Contains(t, root, "statusB "+enumTypeName)
}

func TestEmitComplexTypeWithSimpleContent(t *testing.T) {
	files, _ := generate(t, `
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
`, nil)

	root := files["RootType.go"]
	assert.Contains(t, root, "simpleContent float64")
	assert.Contains(t, root, "doc.SaveElement(xpath, cpacsxml.FormatFloat64(c.simpleContent))")
	assert.Contains(t, root, "func (c *RootType) Close()")
}

func TestEmitUIDReferenceVectorGetsManipulators(t *testing.T) {
	files, _ := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="uID" type="xsd:string"/>
      <xsd:element name="componentSegmentUID" type="stringUIDBaseType" maxOccurs="unbounded"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="stringUIDBaseType">
    <xsd:restriction base="xsd:string"/>
  </xsd:simpleType>
</xsd:schema>
`, nil)

	root := files["RootType.go"]
	assert.Contains(t, root, "componentSegmentUIDs []string")
	assert.Contains(t, root, "func (c *RootType) AddToComponentSegmentUIDs(uid string) {")
	assert.Contains(t, root, "func (c *RootType) RemoveFromComponentSegmentUIDs(uid string) bool {")
	assert.Contains(t, root, "func (c *RootType) NotifyUIDChange(oldUID, newUID string) {")
}

func TestEmitFundamentalBaseChainFoldsOnlyOnce(t *testing.T) {
	files, _ := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="DerivedType"/>
  <xsd:complexType name="BaseType">
    <xsd:complexContent>
      <xsd:extension base="xsd:string">
        <xsd:attribute name="uID" type="xsd:string" use="required"/>
      </xsd:extension>
    </xsd:complexContent>
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
`, nil)

	base := files["BaseType.go"]
	derived := files["DerivedType.go"]
	assert.Contains(t, base, "base string")
	assert.Contains(t, derived, "type DerivedType struct")
	assert.Contains(t, derived, "BaseType")
	assert.NotContains(t, derived, "base string", "a derived class inherits the folded base field, it doesn't re-synthesize one")
	assert.Contains(t, derived, "c.BaseType.ReadCPACS(doc, xpath)")
}

func TestEmitDuplicateEnumValueGetsNumericSuffix(t *testing.T) {
	files, ts := generate(t, `
<xsd:schema xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <xsd:element name="root" type="RootType"/>
  <xsd:complexType name="RootType">
    <xsd:sequence>
      <xsd:element name="kind" type="dupType"/>
    </xsd:sequence>
  </xsd:complexType>
  <xsd:simpleType name="dupType">
    <xsd:restriction base="xsd:string">
      <xsd:enumeration value="a"/>
      <xsd:enumeration value="a"/>
      <xsd:enumeration value="b"/>
    </xsd:restriction>
  </xsd:simpleType>
</xsd:schema>
`, nil)

	var enumTypeName string
	for name, e := range ts.Enums {
		enumTypeName = name
		require.Len(t, e.Values, 3)
		assert.Equal(t, "a", e.Values[0].Name())
		assert.Equal(t, "a_2", e.Values[1].Name())
		assert.Equal(t, "b", e.Values[2].Name())
	}
	enumSrc := files[enumTypeName+".go"]
	assert.Contains(t, enumSrc, enumTypeName+"A_2")
}

func TestEmitTypeSubstitutionDropsGeneratedFile(t *testing.T) {
	files, _ := generate(t, `
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
`, func(tbls *tables.Tables) {
		tbls.TypeSubstitutions = tables.NewMapping(map[string]string{"CPACSPointType": "string"})
	})

	_, hasPointFile := files["CPACSPointType.go"]
	assert.False(t, hasPointFile, "a substituted type never gets a generated file of its own")
	assert.Contains(t, files["RootType.go"], "point string")
}
