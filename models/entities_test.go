package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Old rows stored media as bare URL strings; the decoder must accept both
// forms side by side.
func TestMediaListLegacyStrings(t *testing.T) {
	var media MediaList
	err := json.Unmarshal([]byte(`["https://cdn.example/old.jpg", {"url":"https://cdn.example/new.jpg","type":"image"}]`), &media)
	require.NoError(t, err)

	require.Len(t, media, 2)
	assert.Equal(t, "https://cdn.example/old.jpg", media[0].URL)
	assert.Equal(t, MediaOther, media[0].Type)
	assert.Equal(t, "https://cdn.example/new.jpg", media[1].URL)
	assert.Equal(t, MediaImage, media[1].Type)
}

func TestMediaTypeVocabulary(t *testing.T) {
	assert.Equal(t, MediaType("image"), MediaImage)
	assert.Equal(t, MediaType("video"), MediaVideo)
	assert.Equal(t, MediaType("document"), MediaDocument)
	assert.Equal(t, MediaType("other"), MediaOther)
}

func TestIDListScanAndValue(t *testing.T) {
	var list IDList
	require.NoError(t, list.Scan([]byte(`[3, 7, 11]`)))
	assert.Equal(t, IDList{3, 7, 11}, list)
	assert.True(t, list.Contains(7))
	assert.False(t, list.Contains(8))

	// NULL column scans to an empty list
	var empty IDList
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)

	// empty lists store as NULL, not "[]"
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
