// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissingFilesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	tbls := Load(dir)

	assert.True(t, tbls.FundamentalTypes.Contains("string"))
	assert.True(t, tbls.ReservedNames.Contains("type"))
	assert.Equal(t, 0, tbls.PruneList.Len())
	assert.Equal(t, 0, tbls.ParentPointers.Len())
	xsdType, ok := tbls.XSDTypes.Find("xsd:int")
	assert.True(t, ok)
	assert.Equal(t, "int32", xsdType)
}

func TestLoadParsesRecordsAndIgnoresCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, "PruneList.txt", "// pruned types\n\nCPACSWingSegments\nCPACSFuselageSegments\n")
	writeTable(t, dir, "CustomTypes.txt", "CPACSPoint  tigl::Point\n")

	tbls := Load(dir)

	assert.True(t, tbls.PruneList.Contains("CPACSWingSegments"))
	assert.True(t, tbls.PruneList.Contains("CPACSFuselageSegments"))
	assert.False(t, tbls.PruneList.Contains("CPACSWing"))

	v, ok := tbls.CustomTypes.Find("CPACSPoint")
	require.True(t, ok)
	assert.Equal(t, "tigl::Point", v)
}

func TestSubstituteIfExists(t *testing.T) {
	m := NewMapping(map[string]string{"CPACSPoint": "geom.Point"})

	value := "CPACSPoint"
	m.SubstituteIfExists("CPACSPoint", &value)
	assert.Equal(t, "geom.Point", value)

	value = "CPACSOther"
	m.SubstituteIfExists("CPACSOther", &value)
	assert.Equal(t, "CPACSOther", value)
}
