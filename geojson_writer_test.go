package lanelet

import (
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGeoJSON(t *testing.T, m *LaneletMap, options ...func(*IOOptions)) *geojson.FeatureCollection {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "out.geojson")
	errs, err := WriteRobust(filename, m, testProjector(), options...)
	require.NoError(t, err)
	require.Empty(t, errs)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	return collection
}

func TestGeoJSONExport(t *testing.T) {
	m := NewLaneletMap()
	ll := newTestLanelet(1)
	light, err := NewTrafficLight(0, nil, []*LineString{newTestLineString(200, nil)}, newTestLineString(201, nil))
	require.NoError(t, err)
	ll.AddRegulatoryElement(light)
	m.AddLanelet(ll)

	collection := writeGeoJSON(t, m)

	// one polygon for the lanelet plus one feature per linestring
	require.Len(t, collection.Features, 1+len(m.LineStrings))

	polygon := collection.Features[0]
	assert.Equal(t, geojson.GeometryPolygon, polygon.Geometry.Type)
	assert.Equal(t, TypeLanelet, polygon.Properties["feature_type"])
	assert.Equal(t, "road", polygon.Properties["subtype"])
	rules, ok := polygon.Properties["regulatory_elements"].([]interface{})
	require.True(t, ok)
	require.Len(t, rules, 1)
	assert.Equal(t, RuleNameTrafficLight, rules[0])

	for _, feature := range collection.Features[1:] {
		assert.Equal(t, geojson.GeometryLineString, feature.Geometry.Type)
		assert.Contains(t, feature.Properties, "length_m")
	}
}

func TestGeoJSONExportWithoutLineStrings(t *testing.T) {
	m := NewLaneletMap()
	m.AddLanelet(newTestLanelet(1))

	collection := writeGeoJSON(t, m, WithConfiguration(Configuration{"include_linestrings": false}))

	require.Len(t, collection.Features, 1)
	assert.Equal(t, geojson.GeometryPolygon, collection.Features[0].Geometry.Type)
}

func TestGeoJSONExportReportsBrokenLanelet(t *testing.T) {
	m := NewLaneletMap()
	ll := newTestLanelet(1)
	m.AddLanelet(ll)
	ll.LeftBound = nil

	filename := filepath.Join(t.TempDir(), "out.geojson")
	errs, err := WriteRobust(filename, m, testProjector(), WithConfiguration(Configuration{"include_linestrings": false}))
	require.NoError(t, err)
	require.Len(t, errs, 1)

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	collection, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Empty(t, collection.Features)
}
