package lanelet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test geometry is placed around the Karlsruhe area
const (
	testOriginLat = 49.0
	testOriginLon = 8.4
)

var nextTestPointID ID = 1000

func newTestPoint(lat, lon float64) *Point {
	nextTestPointID++
	return &Point{
		ID:         nextTestPointID,
		GeoPoint:   GeoPoint{Lat: lat, Lon: lon},
		Attributes: AttributeMap{},
	}
}

func newTestLineString(id ID, attrs AttributeMap) *LineString {
	if attrs == nil {
		attrs = AttributeMap{}
	}
	return &LineString{
		ID:         id,
		Attributes: attrs,
		Points: []*Point{
			newTestPoint(testOriginLat+float64(id)*1e-5, testOriginLon),
			newTestPoint(testOriginLat+float64(id)*1e-5, testOriginLon+1e-5),
		},
	}
}

func newTestLanelet(id ID) *Lanelet {
	return &Lanelet{
		ID:         id,
		Attributes: AttributeMap{AttrSubtype: "road"},
		LeftBound:  newTestLineString(id*10+1, nil),
		RightBound: newTestLineString(id*10+2, nil),
	}
}

// projectMapPoints fills local coordinates of all points of the map, which a
// writer needs for the reverse projection
func projectMapPoints(t *testing.T, m *LaneletMap, projector Projector) {
	t.Helper()
	for _, point := range m.Points {
		local, err := projector.Forward(point.GeoPoint)
		require.NoError(t, err)
		point.Local = local
	}
}
