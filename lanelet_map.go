package lanelet

// LaneletMap is the in-memory form of a map file: lane segments, the
// geometry they are built from and the regulatory elements they reference.
// Adding an element pulls everything it references into the map as well and
// assigns identifiers to elements that do not have one yet.
type LaneletMap struct {
	Points             map[ID]*Point
	LineStrings        map[ID]*LineString
	Lanelets           map[ID]*Lanelet
	RegulatoryElements map[ID]RegulatoryElement

	lastAssignedID ID
}

// NewLaneletMap Creates an empty map
func NewLaneletMap() *LaneletMap {
	return &LaneletMap{
		Points:             make(map[ID]*Point),
		LineStrings:        make(map[ID]*LineString),
		Lanelets:           make(map[ID]*Lanelet),
		RegulatoryElements: make(map[ID]RegulatoryElement),
	}
}

func (m *LaneletMap) nextID() ID {
	m.lastAssignedID++
	// skip identifiers already taken by loaded elements
	for {
		id := m.lastAssignedID
		_, pt := m.Points[id]
		_, ls := m.LineStrings[id]
		_, ll := m.Lanelets[id]
		_, re := m.RegulatoryElements[id]
		if !pt && !ls && !ll && !re {
			return id
		}
		m.lastAssignedID++
	}
}

// AddPoint Adds a point to the map
func (m *LaneletMap) AddPoint(p *Point) {
	if p.ID == 0 {
		p.ID = m.nextID()
	}
	m.Points[p.ID] = p
}

// AddLineString Adds a linestring and all its points to the map
func (m *LaneletMap) AddLineString(ls *LineString) {
	if ls.ID == 0 {
		ls.ID = m.nextID()
	}
	m.LineStrings[ls.ID] = ls
	for _, p := range ls.Points {
		m.AddPoint(p)
	}
}

// AddRegulatoryElement Adds a regulatory element together with the geometry
// and lanelets its roles reference
func (m *LaneletMap) AddRegulatoryElement(re RegulatoryElement) {
	if re.ID() == 0 {
		re.SetID(m.nextID())
	}
	if _, ok := m.RegulatoryElements[re.ID()]; ok {
		return
	}
	m.RegulatoryElements[re.ID()] = re
	for _, params := range re.Roles() {
		for _, param := range params {
			switch ref := param.(type) {
			case *LineString:
				m.AddLineString(ref)
			case *Lanelet:
				m.AddLanelet(ref)
			}
		}
	}
}

// AddLanelet Adds a lanelet, its bounds and its regulatory elements to the
// map
func (m *LaneletMap) AddLanelet(ll *Lanelet) {
	if ll.ID == 0 {
		ll.ID = m.nextID()
	}
	if _, ok := m.Lanelets[ll.ID]; ok {
		return
	}
	m.Lanelets[ll.ID] = ll
	if ll.LeftBound != nil {
		m.AddLineString(ll.LeftBound)
	}
	if ll.RightBound != nil {
		m.AddLineString(ll.RightBound)
	}
	for _, re := range ll.RegulatoryElements {
		m.AddRegulatoryElement(re)
	}
}
