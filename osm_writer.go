package lanelet

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Decimal places kept for lat/lon values unless the 'precision'
// configuration option overrides it
const defaultOSMPrecision = 9

type osmWriter struct {
	projector Projector
	config    Configuration
}

func newOSMWriter(projector Projector, config Configuration) Writer {
	return &osmWriter{
		projector: projector,
		config:    config,
	}
}

// Write Encodes a lanelet map as OSM XML, mirroring the parser. Output is
// deterministic: elements are ordered by identifier, tags by key. Elements
// that can not be serialized (a point outside the projection, a rule whose
// invariants were broken by mutation after construction) are skipped with a
// diagnostic each; everything else still produces a well-formed file.
func (w *osmWriter) Write(out io.Writer, m *LaneletMap) (ErrorMessages, error) {
	precision := w.config.IntOr("precision", defaultOSMPrecision)
	errs := ErrorMessages{}
	doc := &osm.OSM{Version: 0.6}

	/* Points */
	writtenPoints := make(map[ID]struct{}, len(m.Points))
	for _, id := range sortedIDs(lo.Keys(m.Points)) {
		point := m.Points[id]
		geo, err := w.projector.Reverse(point.Local)
		if err != nil {
			errs = append(errs, (&WriteError{ElementID: id, Message: err.Error()}).Error())
			continue
		}
		tags := osm.Tags{}
		if geo.Ele != 0 {
			tags = append(tags, osm.Tag{Key: AttrElevation, Value: strconv.FormatFloat(geo.Ele, 'f', -1, 64)})
		}
		doc.Nodes = append(doc.Nodes, &osm.Node{
			ID:      osm.NodeID(id),
			Lat:     roundCoordinate(geo.Lat, precision),
			Lon:     roundCoordinate(geo.Lon, precision),
			Visible: true,
			Version: 1,
			Tags:    appendAttributeTags(tags, point.Attributes),
		})
		writtenPoints[id] = struct{}{}
	}

	/* Linestrings */
	writtenLineStrings := make(map[ID]struct{}, len(m.LineStrings))
	for _, id := range sortedIDs(lo.Keys(m.LineStrings)) {
		lineString := m.LineStrings[id]
		way, err := convertLineString(lineString, writtenPoints)
		if err != nil {
			errs = append(errs, (&WriteError{ElementID: id, Message: err.Error()}).Error())
			continue
		}
		doc.Ways = append(doc.Ways, way)
		writtenLineStrings[id] = struct{}{}
	}

	/* Decide which lanelets and rules make it into the file before
	serializing either. The two depend on each other: a lanelet is dropped
	when one of its rules is dropped, and a rule is dropped when a lanelet
	it references is dropped. Failures only shrink the sets, so propagating
	them until nothing changes terminates. */
	laneletFailures := make(map[ID]string)
	for _, id := range sortedIDs(lo.Keys(m.Lanelets)) {
		if err := checkLaneletBounds(m.Lanelets[id], writtenLineStrings); err != nil {
			laneletFailures[id] = err.Error()
		}
	}
	ruleFailures := make(map[ID]string)
	for _, id := range sortedIDs(lo.Keys(m.RegulatoryElements)) {
		if err := checkRule(m.RegulatoryElements[id], writtenLineStrings); err != nil {
			ruleFailures[id] = err.Error()
		}
	}
	for changed := true; changed; {
		changed = false
		for _, id := range sortedIDs(lo.Keys(m.RegulatoryElements)) {
			if _, failed := ruleFailures[id]; failed {
				continue
			}
			if err := checkRuleLanelets(m.RegulatoryElements[id], m.Lanelets, laneletFailures); err != nil {
				ruleFailures[id] = err.Error()
				changed = true
			}
		}
		for _, id := range sortedIDs(lo.Keys(m.Lanelets)) {
			if _, failed := laneletFailures[id]; failed {
				continue
			}
			if err := checkLaneletRules(m.Lanelets[id], m.RegulatoryElements, ruleFailures); err != nil {
				laneletFailures[id] = err.Error()
				changed = true
			}
		}
	}

	/* Lanelets */
	for _, id := range sortedIDs(lo.Keys(m.Lanelets)) {
		if message, failed := laneletFailures[id]; failed {
			errs = append(errs, (&WriteError{ElementID: id, Message: message}).Error())
			continue
		}
		doc.Relations = append(doc.Relations, convertLanelet(m.Lanelets[id]))
	}

	/* Regulatory elements */
	for _, id := range sortedIDs(lo.Keys(m.RegulatoryElements)) {
		if message, failed := ruleFailures[id]; failed {
			errs = append(errs, (&WriteError{ElementID: id, Message: message}).Error())
			continue
		}
		doc.Relations = append(doc.Relations, convertRule(m.RegulatoryElements[id]))
	}

	if _, err := fmt.Fprint(out, xml.Header); err != nil {
		return errs, errors.Wrap(err, "can not write osm output")
	}
	encoder := xml.NewEncoder(out)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return errs, errors.Wrap(err, "can not encode osm output")
	}
	for _, message := range errs {
		log.Debugf("osm writer: %s", message)
	}
	return errs, nil
}

// convertLineString turns a linestring back into an OSM way
func convertLineString(lineString *LineString, writtenPoints map[ID]struct{}) (*osm.Way, error) {
	if len(lineString.Points) < 2 {
		return nil, errors.Errorf("got %d points, linestring needs at least 2", len(lineString.Points))
	}
	wayNodes := make(osm.WayNodes, 0, len(lineString.Points))
	for _, point := range lineString.Points {
		if _, ok := writtenPoints[point.ID]; !ok {
			return nil, errors.Errorf("references skipped point %d", point.ID)
		}
		wayNodes = append(wayNodes, osm.WayNode{ID: osm.NodeID(point.ID)})
	}
	return &osm.Way{
		ID:      osm.WayID(lineString.ID),
		Visible: true,
		Version: 1,
		Nodes:   wayNodes,
		Tags:    appendAttributeTags(osm.Tags{}, lineString.Attributes),
	}, nil
}

// checkLaneletBounds verifies the lanelet bounds exist and made it into the
// file
func checkLaneletBounds(lanelet *Lanelet, writtenLineStrings map[ID]struct{}) error {
	if lanelet.LeftBound == nil || lanelet.RightBound == nil {
		return errors.New("lanelet must have both bounds")
	}
	for _, bound := range []*LineString{lanelet.LeftBound, lanelet.RightBound} {
		if _, ok := writtenLineStrings[bound.ID]; !ok {
			return errors.Errorf("references skipped linestring %d", bound.ID)
		}
	}
	return nil
}

// checkLaneletRules verifies every rule attached to the lanelet made it into
// the file
func checkLaneletRules(lanelet *Lanelet, rules map[ID]RegulatoryElement, failures map[ID]string) error {
	for _, rule := range lanelet.RegulatoryElements {
		if _, inMap := rules[rule.ID()]; !inMap {
			return errors.Errorf("references regulatory element %d outside of the map", rule.ID())
		}
		if _, failed := failures[rule.ID()]; failed {
			return errors.Errorf("references skipped regulatory element %d", rule.ID())
		}
	}
	return nil
}

// checkRule re-runs the rule through its registry factory and verifies its
// linestring members made it into the file. A rule whose invariants were
// broken after construction (or whose type was never registered) must not be
// serialized.
func checkRule(rule RegulatoryElement, writtenLineStrings map[ID]struct{}) error {
	roles := rule.Roles()
	if _, err := NewRegulatoryElement(rule.RuleName(), RuleData{
		ID:         rule.ID(),
		Attributes: rule.Attributes(),
		Roles:      roles,
	}); err != nil {
		return err
	}
	roleNames := lo.Keys(roles)
	sort.Strings(roleNames)
	for _, role := range roleNames {
		for _, param := range roles[role] {
			switch ref := param.(type) {
			case *LineString:
				if _, ok := writtenLineStrings[ref.ID]; !ok {
					return errors.Errorf("role '%s' references skipped linestring %d", role, ref.ID)
				}
			case *Lanelet:
				// cross-checked against the written lanelet set separately
			default:
				return errors.Errorf("role '%s' holds a parameter of unsupported type %T", role, param)
			}
		}
	}
	return nil
}

// checkRuleLanelets verifies every lanelet a rule references made it into
// the file
func checkRuleLanelets(rule RegulatoryElement, lanelets map[ID]*Lanelet, failures map[ID]string) error {
	roles := rule.Roles()
	roleNames := lo.Keys(roles)
	sort.Strings(roleNames)
	for _, role := range roleNames {
		for _, param := range roles[role] {
			ref, ok := param.(*Lanelet)
			if !ok {
				continue
			}
			if _, inMap := lanelets[ref.ID]; !inMap {
				return errors.Errorf("role '%s' references lanelet %d outside of the map", role, ref.ID)
			}
			if _, failed := failures[ref.ID]; failed {
				return errors.Errorf("role '%s' references skipped lanelet %d", role, ref.ID)
			}
		}
	}
	return nil
}

// convertLanelet turns a lanelet back into a type=lanelet relation. Its
// references must have been checked beforehand.
func convertLanelet(lanelet *Lanelet) *osm.Relation {
	members := osm.Members{
		{Type: osm.TypeWay, Ref: int64(lanelet.LeftBound.ID), Role: osmRoleLeft},
		{Type: osm.TypeWay, Ref: int64(lanelet.RightBound.ID), Role: osmRoleRight},
	}
	for _, rule := range lanelet.RegulatoryElements {
		members = append(members, osm.Member{Type: osm.TypeRelation, Ref: int64(rule.ID()), Role: osmRoleRegulatoryElement})
	}
	tags := osm.Tags{{Key: AttrType, Value: TypeLanelet}}
	return &osm.Relation{
		ID:      osm.RelationID(lanelet.ID),
		Visible: true,
		Version: 1,
		Members: members,
		Tags:    appendAttributeTags(tags, lanelet.Attributes),
	}
}

// convertRule decomposes a regulatory element into a
// type=regulatory_element relation. Its references must have been checked
// beforehand.
func convertRule(rule RegulatoryElement) *osm.Relation {
	roles := rule.Roles()
	members := osm.Members{}
	roleNames := lo.Keys(roles)
	sort.Strings(roleNames)
	for _, role := range roleNames {
		for _, param := range roles[role] {
			switch ref := param.(type) {
			case *LineString:
				members = append(members, osm.Member{Type: osm.TypeWay, Ref: int64(ref.ID), Role: role})
			case *Lanelet:
				members = append(members, osm.Member{Type: osm.TypeRelation, Ref: int64(ref.ID), Role: role})
			}
		}
	}
	tags := osm.Tags{
		{Key: AttrType, Value: TypeRegulatoryElement},
		{Key: AttrSubtype, Value: rule.RuleName()},
	}
	return &osm.Relation{
		ID:      osm.RelationID(rule.ID()),
		Visible: true,
		Version: 1,
		Members: members,
		Tags:    appendAttributeTags(tags, rule.Attributes()),
	}
}

// appendAttributeTags appends attributes as tags in key order
func appendAttributeTags(tags osm.Tags, attrs AttributeMap) osm.Tags {
	keys := lo.Keys(attrs)
	sort.Strings(keys)
	for _, key := range keys {
		tags = append(tags, osm.Tag{Key: key, Value: attrs[key]})
	}
	return tags
}

// sortedIDs returns identifiers in ascending order for deterministic output
func sortedIDs(ids []ID) []ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
