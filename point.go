package lanelet

// ID identifies a map element. Zero means "not assigned yet": such elements
// get an identifier when they are added to a map.
type ID int64

// Point is a single map node. It carries both the geographic position and the
// projected local position; which one is authoritative depends on the stage:
// parsers fill Local through the projector, writers recover the geographic
// position from Local through the reverse projection.
type Point struct {
	ID         ID
	GeoPoint   GeoPoint
	Local      LocalPoint
	Attributes AttributeMap
}
