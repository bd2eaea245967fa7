package lanelet

import (
	"github.com/samber/lo"
)

// LineString is an ordered strip of map points. Besides lane bounds it is the
// shape used to model physical rule infrastructure: a traffic light or sign is
// a linestring from its left edge to its right edge, a stop line is a
// linestring across the lane.
type LineString struct {
	ID         ID
	Attributes AttributeMap
	Points     []*Point
}

func (ls *LineString) refID() ID { return ls.ID }

// GeoPoints returns geographic positions of all points of the linestring
func (ls *LineString) GeoPoints() []GeoPoint {
	return lo.Map(ls.Points, func(p *Point, _ int) GeoPoint {
		return p.GeoPoint
	})
}

// Length returns length of the linestring over the ground (meters)
func (ls *LineString) Length() float64 {
	length := 0.0
	for i := 1; i < len(ls.Points); i++ {
		length += greatCircleDistance(ls.Points[i-1].GeoPoint, ls.Points[i].GeoPoint)
	}
	return length * 1000.0
}
