// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package filesink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlushCreatesNewFiles(t *testing.T) {
	dir := t.TempDir()
	sink := New(dir)
	sink.NewFile("a.go").WriteString("package a\n")

	counts, err := sink.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Created)
	assert.Equal(t, 0, counts.Overwritten)

	data, err := os.ReadFile(filepath.Join(dir, "a.go"))
	require.NoError(t, err)
	assert.Equal(t, "package a\n", string(data))
}

func TestSecondFlushWithSameContentSkips(t *testing.T) {
	dir := t.TempDir()

	sink1 := New(dir)
	sink1.NewFile("a.go").WriteString("package a\n")
	_, err := sink1.Flush()
	require.NoError(t, err)

	sink2 := New(dir)
	sink2.NewFile("a.go").WriteString("package a\n")
	counts, err := sink2.Flush()
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Created)
	assert.Equal(t, 0, counts.Overwritten)
	assert.Equal(t, 1, counts.Skipped)
}

func TestChangedContentOverwrites(t *testing.T) {
	dir := t.TempDir()

	sink1 := New(dir)
	sink1.NewFile("a.go").WriteString("package a\n")
	_, err := sink1.Flush()
	require.NoError(t, err)

	sink2 := New(dir)
	sink2.NewFile("a.go").WriteString("package a // changed\n")
	counts, err := sink2.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Overwritten)
}

func TestFlushRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()

	sink1 := New(dir)
	sink1.NewFile("a.go").WriteString("package a\n")
	sink1.NewFile("b.go").WriteString("package a\n")
	_, err := sink1.Flush()
	require.NoError(t, err)

	sink2 := New(dir)
	sink2.NewFile("a.go").WriteString("package a\n")
	counts, err := sink2.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Deleted)

	_, err = os.Stat(filepath.Join(dir, "b.go"))
	assert.True(t, os.IsNotExist(err))
}

func TestMergeFilesIntoOrdersHeadersFirstThenAlphabetical(t *testing.T) {
	dir := t.TempDir()
	sink := New(dir)
	sink.NewFile("z.go").WriteString("Z")
	sink.NewFile("a.go").WriteString("A")
	sink.NewFile("types.h").WriteString("H")

	mergedPath := filepath.Join(dir, "merged.txt")
	require.NoError(t, sink.MergeFilesInto(mergedPath))

	data, err := os.ReadFile(mergedPath)
	require.NoError(t, err)
	content := string(data)

	hIdx := indexOf(content, "types.h")
	aIdx := indexOf(content, "a.go")
	zIdx := indexOf(content, "z.go")
	assert.True(t, hIdx < aIdx)
	assert.True(t, aIdx < zIdx)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
