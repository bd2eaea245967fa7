package lanelet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreatCircleDistance(t *testing.T) {
	karlsruhe := GeoPoint{Lat: 49.0069, Lon: 8.4037}
	stuttgart := GeoPoint{Lat: 48.7758, Lon: 9.1829}
	distance := greatCircleDistance(karlsruhe, stuttgart)
	assert.InDelta(t, 62.0, distance, 1.5)
	assert.InDelta(t, 0.0, greatCircleDistance(karlsruhe, karlsruhe), 1e-12)
}

func TestRoundCoordinate(t *testing.T) {
	assert.InDelta(t, 8.4037, roundCoordinate(8.40370000049, 5), 1e-12)
	assert.InDelta(t, 8.0, roundCoordinate(8.4037, 0), 1e-12)
}

func TestLineStringLength(t *testing.T) {
	// two points roughly 111 meters apart along a meridian
	ls := &LineString{
		ID: 1,
		Points: []*Point{
			{ID: 1, GeoPoint: GeoPoint{Lat: 49.000, Lon: 8.4}},
			{ID: 2, GeoPoint: GeoPoint{Lat: 49.001, Lon: 8.4}},
		},
	}
	assert.InDelta(t, 111.2, ls.Length(), 1.0)
}
