package main

import (
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	base := map[string]any{"regulation": "EUDR", "year": 2024}

	props, err := parseProperties(base, []string{"owner=Ama Mensah", "year=2025", "note=a=b"})
	require.NoError(t, err)
	assert.Equal(t, geojson.Properties{
		"regulation": "EUDR",
		"owner":      "Ama Mensah",
		"year":       "2025",
		"note":       "a=b",
	}, props)

	assert.Equal(t, 2024, base["year"])
}

func TestParsePropertiesRejectsBadPairs(t *testing.T) {
	for _, pair := range []string{"owner", "=value", " =x"} {
		_, err := parseProperties(nil, []string{pair})
		assert.Error(t, err, pair)
	}
}
