package lanelet

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Origin anchors a default projection at a geographic point
type Origin struct {
	Position GeoPoint
}

// NewOrigin Creates an origin at given latitude and longitude
func NewOrigin(lat, lon float64) Origin {
	return Origin{Position: GeoPoint{Lat: lat, Lon: lon}}
}

// LocalPoint is a point in the local planar coordinate frame (meters)
type LocalPoint struct {
	orb.Point
	Ele float64
}

// NewLocalPoint Creates a local point from planar coordinates and elevation
func NewLocalPoint(x, y, ele float64) LocalPoint {
	return LocalPoint{Point: orb.Point{x, y}, Ele: ele}
}

// Projector converts between geographic and local planar coordinates. It is
// supplied by the caller of a load or write operation and borrowed by the
// format handler for the duration of that call only.
type Projector interface {
	Forward(p GeoPoint) (LocalPoint, error)
	Reverse(p LocalPoint) (GeoPoint, error)
	Origin() Origin
}

const (
	mercatorRadius = 6378137.0
	// Latitudes beyond this bound have no spherical-mercator image
	mercatorMaxLat = 85.0511287798
)

// MercatorProjector is the default projection: spherical mercator shifted so
// that the origin maps to (0, 0). Elevation passes through unchanged.
type MercatorProjector struct {
	origin Origin
	offset orb.Point
}

// NewMercatorProjector Creates a mercator projector anchored at given origin
func NewMercatorProjector(origin Origin) *MercatorProjector {
	p := &MercatorProjector{origin: origin}
	p.offset = mercatorForward(origin.Position)
	return p
}

func mercatorForward(gp GeoPoint) orb.Point {
	x := mercatorRadius * degreesToRadians(gp.Lon)
	y := mercatorRadius * math.Log(math.Tan(math.Pi/4+degreesToRadians(gp.Lat)/2))
	return orb.Point{x, y}
}

// Origin Returns the origin the projector is anchored at
func (p *MercatorProjector) Origin() Origin {
	return p.origin
}

// Forward Converts a geographic point to local planar coordinates
func (p *MercatorProjector) Forward(gp GeoPoint) (LocalPoint, error) {
	if math.Abs(gp.Lat) > mercatorMaxLat {
		return LocalPoint{}, errors.Errorf("latitude %f is out of mercator range [-%f, %f]", gp.Lat, mercatorMaxLat, mercatorMaxLat)
	}
	planar := mercatorForward(gp)
	return LocalPoint{
		Point: orb.Point{planar.X() - p.offset.X(), planar.Y() - p.offset.Y()},
		Ele:   gp.Ele,
	}, nil
}

// Reverse Converts a local planar point back to geographic coordinates
func (p *MercatorProjector) Reverse(lp LocalPoint) (GeoPoint, error) {
	x := lp.X() + p.offset.X()
	y := lp.Y() + p.offset.Y()
	lon := radiansToDegrees(x / mercatorRadius)
	lat := radiansToDegrees(2*math.Atan(math.Exp(y/mercatorRadius)) - math.Pi/2)
	if math.Abs(lon) > 180.0 {
		return GeoPoint{}, errors.Errorf("local point %v maps outside of valid longitudes", lp.Point)
	}
	return GeoPoint{Lat: lat, Lon: lon, Ele: lp.Ele}, nil
}
