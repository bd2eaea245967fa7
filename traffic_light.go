package lanelet

import (
	"github.com/pkg/errors"
)

// RuleNameTrafficLight Registry name of the traffic light rule
const RuleNameTrafficLight = "traffic_light"

func init() {
	RegisterRuleType(RuleNameTrafficLight, func(data RuleData) (RegulatoryElement, error) {
		lights := lineStringParams(data.Roles[RoleRefers])
		if len(lights) != len(data.Roles[RoleRefers]) {
			return nil, errors.Wrap(ErrInvariantViolation, "traffic light '"+RoleRefers+"' role accepts linestrings only")
		}
		stopLines := lineStringParams(data.Roles[RoleRefLine])
		if len(stopLines) != 1 {
			return nil, errors.Wrap(ErrInvariantViolation, "traffic light needs exactly one stop line")
		}
		return NewTrafficLight(data.ID, data.Attributes, lights, stopLines[0])
	})
}

// TrafficLight Represents a traffic light restriction on a lanelet
type TrafficLight struct {
	RegulatoryElementBase
}

// NewTrafficLight Creates a traffic light rule from its required parameters
/*
	trafficLights - the linestrings representing the lights. There might be
	several but they are required to show the same signal.
	stopLine - the line to stop at while the lights show red.
*/
func NewTrafficLight(id ID, attributes AttributeMap, trafficLights []*LineString, stopLine *LineString) (*TrafficLight, error) {
	if len(trafficLights) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "traffic light needs at least one light")
	}
	if stopLine == nil {
		return nil, errors.Wrap(ErrInvariantViolation, "traffic light needs a stop line")
	}
	t := &TrafficLight{newRegulatoryElementBase(id, attributes)}
	for _, light := range trafficLights {
		t.AddTrafficLight(light)
	}
	t.SetStopLine(stopLine)
	return t, nil
}

// RuleName Returns registry name of the variant
func (t *TrafficLight) RuleName() string {
	return RuleNameTrafficLight
}

// TrafficLights Returns the relevant lights
func (t *TrafficLight) TrafficLights() []*LineString {
	return lineStringParams(t.Parameters(RoleRefers))
}

// StopLine Returns the stop line for the traffic light
func (t *TrafficLight) StopLine() *LineString {
	lines := lineStringParams(t.Parameters(RoleRefLine))
	if len(lines) == 0 {
		return nil
	}
	return lines[0]
}

// AddTrafficLight Appends one more light. Re-adding an already referenced
// light is ignored: a duplicated reference to the same signal carries no
// meaning.
func (t *TrafficLight) AddTrafficLight(light *LineString) {
	t.addParameterUnique(RoleRefers, light)
}

// RemoveTrafficLight Removes a light and reports whether it was referenced
func (t *TrafficLight) RemoveTrafficLight(light *LineString) bool {
	return t.RemoveParameter(RoleRefers, light)
}

// SetStopLine Overwrites the stop line. The stop line is singular: it can be
// replaced but never unset.
func (t *TrafficLight) SetStopLine(stopLine *LineString) {
	t.SetParameter(RoleRefLine, stopLine)
}
