package lanelet

import (
	"context"
	"io"
	"strconv"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
)

const (
	osmExtension  = ".osm"
	osmFormatName = "osm"

	osmRoleLeft              = "left"
	osmRoleRight             = "right"
	osmRoleRegulatoryElement = "regulatory_element"
)

func init() {
	RegisterFormat(osmExtension, osmFormatName, newOSMParser, newOSMWriter)
}

type osmParser struct {
	projector Projector
	config    Configuration
}

func newOSMParser(projector Projector, config Configuration) Parser {
	return &osmParser{
		projector: projector,
		config:    config,
	}
}

// Parse Decodes a lanelet map from OSM XML
/*
	Nodes become points, ways become linestrings, relations tagged
	type=lanelet become lanelets and relations tagged
	type=regulatory_element become rules resolved through the rule registry.
	Assembly is element-granular: an element that can not be fully
	reconstructed is dropped as a whole and reported with exactly one
	diagnostic, it never enters the map half-built.
*/
func (p *osmParser) Parse(r io.Reader) (*LaneletMap, ErrorMessages, error) {
	rawNodes := []*osm.Node{}
	rawWays := []*osm.Way{}
	rawRelations := []*osm.Relation{}

	scanner := osmxml.New(context.Background(), r)
	defer scanner.Close()
	for scanner.Scan() {
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			rawNodes = append(rawNodes, obj)
		case *osm.Way:
			rawWays = append(rawWays, obj)
		case *osm.Relation:
			rawRelations = append(rawRelations, obj)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "can not scan osm input")
	}

	errs := ErrorMessages{}

	/* Points */
	points := make(map[osm.NodeID]*Point, len(rawNodes))
	for _, node := range rawNodes {
		point, err := p.convertNode(node)
		if err != nil {
			errs.addf("node %d: %v", node.ID, err)
			continue
		}
		points[node.ID] = point
	}

	/* Linestrings */
	lineStrings := make(map[osm.WayID]*LineString, len(rawWays))
	for _, way := range rawWays {
		lineString, err := convertWay(way, points)
		if err != nil {
			errs.addf("way %d: %v", way.ID, err)
			continue
		}
		lineStrings[way.ID] = lineString
	}

	/* Lanelets (without their rules yet, rules may reference lanelets) */
	lanelets := make(map[osm.RelationID]*Lanelet)
	ruleRefs := make(map[osm.RelationID][]osm.RelationID)
	failed := make(map[osm.RelationID]struct{})
	for _, relation := range rawRelations {
		if relation.Tags.Find(AttrType) != TypeLanelet {
			continue
		}
		lanelet, refs, err := convertLaneletRelation(relation, lineStrings)
		if err != nil {
			errs.addf("lanelet relation %d: %v", relation.ID, err)
			failed[relation.ID] = struct{}{}
			continue
		}
		lanelets[relation.ID] = lanelet
		ruleRefs[relation.ID] = refs
	}

	/* Regulatory elements */
	rules := make(map[osm.RelationID]RegulatoryElement)
	for _, relation := range rawRelations {
		if relation.Tags.Find(AttrType) != TypeRegulatoryElement {
			continue
		}
		rule, err := convertRuleRelation(relation, lineStrings, lanelets)
		if err != nil {
			errs.addf("regulatory element %d: %v", relation.ID, err)
			failed[relation.ID] = struct{}{}
			continue
		}
		rules[relation.ID] = rule
	}

	/* Attach rules to lanelets. A reference to a rule that already produced
	a diagnostic is dropped silently, the record was reported once. */
	for relationID, lanelet := range lanelets {
		for _, ref := range ruleRefs[relationID] {
			if rule, ok := rules[ref]; ok {
				lanelet.AddRegulatoryElement(rule)
				continue
			}
			if _, reported := failed[ref]; !reported {
				errs.addf("lanelet relation %d references missing regulatory element %d", relationID, ref)
			}
		}
	}

	m := NewLaneletMap()
	for _, point := range points {
		m.AddPoint(point)
	}
	for _, lineString := range lineStrings {
		m.AddLineString(lineString)
	}
	for _, lanelet := range lanelets {
		m.AddLanelet(lanelet)
	}
	for _, rule := range rules {
		m.AddRegulatoryElement(rule)
	}
	for _, message := range errs {
		log.Debugf("osm parser: %s", message)
	}
	return m, errs, nil
}

// convertNode projects an OSM node into a map point
func (p *osmParser) convertNode(node *osm.Node) (*Point, error) {
	geo := GeoPoint{Lat: node.Lat, Lon: node.Lon}
	attrs := make(AttributeMap)
	for _, tag := range node.Tags {
		if tag.Key == AttrElevation {
			ele, err := strconv.ParseFloat(tag.Value, 64)
			if err != nil {
				return nil, errors.Errorf("malformed elevation '%s'", tag.Value)
			}
			geo.Ele = ele
			continue
		}
		attrs[tag.Key] = tag.Value
	}
	local, err := p.projector.Forward(geo)
	if err != nil {
		return nil, err
	}
	return &Point{
		ID:         ID(node.ID),
		GeoPoint:   geo,
		Local:      local,
		Attributes: attrs,
	}, nil
}

// convertWay resolves way members into a linestring
func convertWay(way *osm.Way, points map[osm.NodeID]*Point) (*LineString, error) {
	if len(way.Nodes) < 2 {
		return nil, errors.Errorf("got %d nodes, linestring needs at least 2", len(way.Nodes))
	}
	members := make([]*Point, 0, len(way.Nodes))
	for _, wayNode := range way.Nodes {
		point, ok := points[wayNode.ID]
		if !ok {
			return nil, errors.Errorf("references missing node %d", wayNode.ID)
		}
		members = append(members, point)
	}
	attrs := make(AttributeMap, len(way.Tags))
	for _, tag := range way.Tags {
		attrs[tag.Key] = tag.Value
	}
	return &LineString{
		ID:         ID(way.ID),
		Attributes: attrs,
		Points:     members,
	}, nil
}

// convertLaneletRelation resolves a type=lanelet relation into a lanelet and
// the ids of the regulatory element relations it references
func convertLaneletRelation(relation *osm.Relation, lineStrings map[osm.WayID]*LineString) (*Lanelet, []osm.RelationID, error) {
	var left, right *LineString
	ruleRefs := []osm.RelationID{}
	for _, member := range relation.Members {
		switch member.Role {
		case osmRoleLeft, osmRoleRight:
			if member.Type != osm.TypeWay {
				return nil, nil, errors.Errorf("'%s' member must be a way, got %s %d", member.Role, member.Type, member.Ref)
			}
			bound, ok := lineStrings[osm.WayID(member.Ref)]
			if !ok {
				return nil, nil, errors.Errorf("'%s' member references missing way %d", member.Role, member.Ref)
			}
			if member.Role == osmRoleLeft {
				if left != nil {
					return nil, nil, errors.New("more than one left bound")
				}
				left = bound
			} else {
				if right != nil {
					return nil, nil, errors.New("more than one right bound")
				}
				right = bound
			}
		case osmRoleRegulatoryElement:
			if member.Type != osm.TypeRelation {
				return nil, nil, errors.Errorf("regulatory element member must be a relation, got %s %d", member.Type, member.Ref)
			}
			ruleRefs = append(ruleRefs, osm.RelationID(member.Ref))
		default:
			log.Debugf("osm parser: lanelet relation %d: ignoring member with role '%s'", relation.ID, member.Role)
		}
	}
	if left == nil || right == nil {
		return nil, nil, errors.New("needs exactly one left and one right bound")
	}
	attrs := make(AttributeMap, len(relation.Tags))
	for _, tag := range relation.Tags {
		if tag.Key == AttrType {
			continue
		}
		attrs[tag.Key] = tag.Value
	}
	return &Lanelet{
		ID:         ID(relation.ID),
		Attributes: attrs,
		LeftBound:  left,
		RightBound: right,
	}, ruleRefs, nil
}

// convertRuleRelation resolves a type=regulatory_element relation through
// the rule registry
func convertRuleRelation(relation *osm.Relation, lineStrings map[osm.WayID]*LineString, lanelets map[osm.RelationID]*Lanelet) (RegulatoryElement, error) {
	ruleName := relation.Tags.Find(AttrSubtype)
	if ruleName == "" {
		return nil, errors.New("missing 'subtype' tag with the rule type name")
	}
	roles := make(RuleRoles)
	for _, member := range relation.Members {
		if member.Role == "" {
			return nil, errors.Errorf("member %s %d carries no role", member.Type, member.Ref)
		}
		switch member.Type {
		case osm.TypeWay:
			lineString, ok := lineStrings[osm.WayID(member.Ref)]
			if !ok {
				return nil, errors.Errorf("role '%s' references missing way %d", member.Role, member.Ref)
			}
			roles[member.Role] = append(roles[member.Role], lineString)
		case osm.TypeRelation:
			lanelet, ok := lanelets[osm.RelationID(member.Ref)]
			if !ok {
				return nil, errors.Errorf("role '%s' references missing lanelet %d", member.Role, member.Ref)
			}
			roles[member.Role] = append(roles[member.Role], lanelet)
		default:
			return nil, errors.Errorf("role '%s' references unsupported member type %s", member.Role, member.Type)
		}
	}
	attrs := make(AttributeMap, len(relation.Tags))
	for _, tag := range relation.Tags {
		if tag.Key == AttrType || tag.Key == AttrSubtype {
			continue
		}
		attrs[tag.Key] = tag.Value
	}
	return NewRegulatoryElement(ruleName, RuleData{
		ID:         ID(relation.ID),
		Attributes: attrs,
		Roles:      roles,
	})
}
