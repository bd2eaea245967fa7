package lanelet

// Lanelet is a directed strip of drivable surface bounded by a left and a
// right linestring. A lanelet references the regulatory elements that apply
// to it but does not own them; ownership stays with the map.
type Lanelet struct {
	ID                 ID
	Attributes         AttributeMap
	LeftBound          *LineString
	RightBound         *LineString
	RegulatoryElements []RegulatoryElement
}

func (ll *Lanelet) refID() ID { return ll.ID }

// AddRegulatoryElement attaches a regulatory element to the lanelet
func (ll *Lanelet) AddRegulatoryElement(re RegulatoryElement) {
	ll.RegulatoryElements = append(ll.RegulatoryElements, re)
}

// RemoveRegulatoryElement detaches a regulatory element and reports whether
// it was attached
func (ll *Lanelet) RemoveRegulatoryElement(re RegulatoryElement) bool {
	for i, attached := range ll.RegulatoryElements {
		if attached == re {
			ll.RegulatoryElements = append(ll.RegulatoryElements[:i], ll.RegulatoryElements[i+1:]...)
			return true
		}
	}
	return false
}
