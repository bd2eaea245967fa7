package lanelet

// Well-known attribute keys used across the map primitives
const (
	AttrType       = "type"
	AttrSubtype    = "subtype"
	AttrSignType   = "sign_type"
	AttrCancelType = "cancel_type"
	AttrElevation  = "ele"
	AttrOneWay     = "one_way"
	AttrArea       = "area"
)

// Values of the 'type' attribute carried by relations in OSM-based files
const (
	TypeLanelet           = "lanelet"
	TypeRegulatoryElement = "regulatory_element"
)

// AttributeMap holds free-form string attributes of a map element
type AttributeMap map[string]string

// Find returns value for given key or empty string if key is not present
func (a AttributeMap) Find(key string) string {
	if a == nil {
		return ""
	}
	return a[key]
}

// Copy returns independent copy of attributes
func (a AttributeMap) Copy() AttributeMap {
	cp := make(AttributeMap, len(a))
	for k, v := range a {
		cp[k] = v
	}
	return cp
}
