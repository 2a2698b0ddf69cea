// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cpacsxml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemDocumentSaveAndGetAttribute(t *testing.T) {
	doc := NewMemDocument("cpacsAircraft")

	require.NoError(t, doc.SaveAttribute("/cpacsAircraft", "uID", "aircraft1"))
	assert.True(t, doc.CheckAttribute("/cpacsAircraft", "uID"))

	v, err := doc.GetAttribute("/cpacsAircraft", "uID")
	require.NoError(t, err)
	assert.Equal(t, "aircraft1", v)

	_, err = doc.GetAttribute("/cpacsAircraft", "missing")
	var missing *MissingError
	assert.True(t, errors.As(err, &missing))
}

func TestMemDocumentSaveAndGetElementCreatesIntermediateNodes(t *testing.T) {
	doc := NewMemDocument("cpacsAircraft")

	require.NoError(t, doc.SaveElement("/cpacsAircraft/name", "Concept A"))
	assert.True(t, doc.CheckElement("/cpacsAircraft/name"))

	v, err := doc.GetElement("/cpacsAircraft/name")
	require.NoError(t, err)
	assert.Equal(t, "Concept A", v)
}

func TestMemDocumentReadElementsHonorsCardinality(t *testing.T) {
	doc := NewMemDocument("root")
	require.NoError(t, doc.SaveElements("/root/item", []string{"a", "b", "c"}))

	values, err := doc.ReadElements("/root/item", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, values)

	_, err = doc.ReadElements("/root/item", 4, 0)
	var cardErr *CardinalityError
	assert.True(t, errors.As(err, &cardErr))
	assert.Equal(t, uint32(3), cardErr.Got)
}

func TestMemDocumentReadElementsAbsentParentWithMinZeroReturnsEmpty(t *testing.T) {
	doc := NewMemDocument("root")

	values, err := doc.ReadElements("/root/item", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestMemDocumentEnsureIndexedElementAndCountChildren(t *testing.T) {
	doc := NewMemDocument("root")

	require.NoError(t, doc.EnsureIndexedElement("/root/item", 1))
	require.NoError(t, doc.EnsureIndexedElement("/root/item", 3))

	n, err := doc.CountChildren("/root/item")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, doc.SaveElement("/root/item[2]", "middle"))
	v, err := doc.GetElement("/root/item[2]")
	require.NoError(t, err)
	assert.Equal(t, "middle", v)
}

func TestMemDocumentRemoveElementByIndex(t *testing.T) {
	doc := NewMemDocument("root")
	require.NoError(t, doc.SaveElements("/root/item", []string{"a", "b", "c"}))

	require.NoError(t, doc.RemoveElement("/root/item[2]"))

	values, err := doc.ReadElements("/root/item", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, values)
}

func TestMemDocumentRemoveAttributeIsNoopWhenAbsent(t *testing.T) {
	doc := NewMemDocument("root")
	require.NoError(t, doc.RemoveAttribute("/root", "uID"))
	assert.False(t, doc.CheckAttribute("/root", "uID"))
}

func TestMemDocumentCreateSequenceElementIfNotExistsOrdersBySchema(t *testing.T) {
	doc := NewMemDocument("root")
	order := []string{"name", "description", "segment"}

	require.NoError(t, doc.CreateSequenceElementIfNotExists("/root/segment", order))
	require.NoError(t, doc.CreateSequenceElementIfNotExists("/root/name", order))
	require.NoError(t, doc.CreateSequenceElementIfNotExists("/root/description", order))

	// Each element exists despite the out-of-order creation calls.
	assert.True(t, doc.CheckElement("/root/name"))
	assert.True(t, doc.CheckElement("/root/description"))
	assert.True(t, doc.CheckElement("/root/segment"))

	// A second call for an already-present element does not duplicate it.
	require.NoError(t, doc.CreateSequenceElementIfNotExists("/root/name", order))
	n, err := doc.CountChildren("/root/name")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	xml, err := doc.WriteXML()
	require.NoError(t, err)
	nameIdx := indexOf(t, string(xml), "<name")
	descIdx := indexOf(t, string(xml), "<description")
	segIdx := indexOf(t, string(xml), "<segment")
	assert.Less(t, nameIdx, descIdx, "name must precede description per orderList")
	assert.Less(t, descIdx, segIdx, "description must precede segment per orderList")
}

func TestMemDocumentParseAndWriteXMLRoundTrips(t *testing.T) {
	src := `<cpacsAircraft uID="ac1"><name>Concept A</name><segments><segment uID="seg1"><length>12.5</length></segment></segments></cpacsAircraft>`

	doc, err := ParseMemDocument([]byte(src))
	require.NoError(t, err)

	uid, err := doc.GetAttribute("/cpacsAircraft", "uID")
	require.NoError(t, err)
	assert.Equal(t, "ac1", uid)

	name, err := doc.GetElement("/cpacsAircraft/name")
	require.NoError(t, err)
	assert.Equal(t, "Concept A", name)

	length, err := doc.GetElement("/cpacsAircraft/segments/segment/length")
	require.NoError(t, err)
	assert.Equal(t, "12.5", length)

	require.NoError(t, doc.SaveElement("/cpacsAircraft/name", "Concept B"))
	out, err := doc.WriteXML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Concept B")

	reparsed, err := ParseMemDocument(out)
	require.NoError(t, err)
	name2, err := reparsed.GetElement("/cpacsAircraft/name")
	require.NoError(t, err)
	assert.Equal(t, "Concept B", name2)
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", substr, s)
	return -1
}
