package lanelet

import (
	"github.com/pkg/errors"
)

// RuleNameRightOfWay Registry name of the right of way rule
const RuleNameRightOfWay = "right_of_way"

// Maneuver Classification of a lanelet with respect to a right of way rule
type Maneuver uint16

const (
	MANEUVER_RIGHT_OF_WAY = Maneuver(iota + 1)
	MANEUVER_YIELD
	MANEUVER_UNKNOWN
)

func (iotaIdx Maneuver) String() string {
	return [...]string{"right_of_way", "yield", "unknown"}[iotaIdx-1]
}

func init() {
	RegisterRuleType(RuleNameRightOfWay, func(data RuleData) (RegulatoryElement, error) {
		rightOfWay := laneletParams(data.Roles[RoleRightOfWay])
		if len(rightOfWay) != len(data.Roles[RoleRightOfWay]) {
			return nil, errors.Wrap(ErrInvariantViolation, "right of way '"+RoleRightOfWay+"' role accepts lanelets only")
		}
		yield := laneletParams(data.Roles[RoleYield])
		if len(yield) != len(data.Roles[RoleYield]) {
			return nil, errors.Wrap(ErrInvariantViolation, "right of way '"+RoleYield+"' role accepts lanelets only")
		}
		stopLines := lineStringParams(data.Roles[RoleRefLine])
		if len(stopLines) > 1 {
			return nil, errors.Wrap(ErrInvariantViolation, "right of way can have one stop line at most")
		}
		options := []func(*RightOfWay){}
		if len(stopLines) == 1 {
			options = append(options, WithStopLine(stopLines[0]))
		}
		for _, sign := range lineStringParams(data.Roles[RoleRefers]) {
			options = append(options, WithSupportingSign(sign))
		}
		return NewRightOfWay(data.ID, data.Attributes, rightOfWay, yield, options...)
	})
}

// RightOfWay Defines right of way restrictions between lanelets
type RightOfWay struct {
	RegulatoryElementBase
}

// NewRightOfWay Creates a right of way rule
/*
	rightOfWay - the lanelets that have right of way
	yield - the lanelets that have to yield

	Optional parameters are provided via WithStopLine and WithSupportingSign.
	If no stop line is set the yielding vehicle stops at the end of its
	lanelet.
*/
func NewRightOfWay(id ID, attributes AttributeMap, rightOfWay []*Lanelet, yield []*Lanelet, options ...func(*RightOfWay)) (*RightOfWay, error) {
	if len(rightOfWay) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "right of way needs at least one prioritized lanelet")
	}
	if len(yield) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "right of way needs at least one yielding lanelet")
	}
	r := &RightOfWay{newRegulatoryElementBase(id, attributes)}
	for _, lanelet := range rightOfWay {
		r.AddParameter(RoleRightOfWay, lanelet)
	}
	for _, lanelet := range yield {
		r.AddParameter(RoleYield, lanelet)
	}
	for _, option := range options {
		option(r)
	}
	return r, nil
}

// WithStopLine Sets the line where the yielding vehicle has to stop
func WithStopLine(stopLine *LineString) func(*RightOfWay) {
	return func(r *RightOfWay) {
		r.SetStopLine(stopLine)
	}
}

// WithSupportingSign Adds the traffic sign the rule originates from
func WithSupportingSign(sign *LineString) func(*RightOfWay) {
	return func(r *RightOfWay) {
		r.AddParameter(RoleRefers, sign)
	}
}

// RuleName Returns registry name of the variant
func (r *RightOfWay) RuleName() string {
	return RuleNameRightOfWay
}

// Maneuver Classifies a lanelet with respect to this rule. Membership in the
// right of way set is checked before the yield set: a lanelet erroneously
// present in both sets is treated as having priority, since failing toward
// "yield" on a priority road is the less safe error. This precedence is
// defined behavior, not an accident of implementation.
func (r *RightOfWay) Maneuver(lanelet *Lanelet) Maneuver {
	for _, prioritized := range r.Parameters(RoleRightOfWay) {
		if sameParameter(prioritized, lanelet) {
			return MANEUVER_RIGHT_OF_WAY
		}
	}
	for _, yielding := range r.Parameters(RoleYield) {
		if sameParameter(yielding, lanelet) {
			return MANEUVER_YIELD
		}
	}
	return MANEUVER_UNKNOWN
}

// RightOfWayLanelets Returns the lanelets that have right of way
func (r *RightOfWay) RightOfWayLanelets() []*Lanelet {
	return laneletParams(r.Parameters(RoleRightOfWay))
}

// YieldLanelets Returns the lanelets that have to yield
func (r *RightOfWay) YieldLanelets() []*Lanelet {
	return laneletParams(r.Parameters(RoleYield))
}

// SupportingSigns Returns the signs the rule originates from (may be empty)
func (r *RightOfWay) SupportingSigns() []*LineString {
	return lineStringParams(r.Parameters(RoleRefers))
}

// StopLine Returns the stop line or nil if none is set
func (r *RightOfWay) StopLine() *LineString {
	lines := lineStringParams(r.Parameters(RoleRefLine))
	if len(lines) == 0 {
		return nil
	}
	return lines[0]
}

// SetStopLine Overwrites the stop line
func (r *RightOfWay) SetStopLine(stopLine *LineString) {
	r.SetParameter(RoleRefLine, stopLine)
}

// RemoveStopLine Drops the stop line
func (r *RightOfWay) RemoveStopLine() {
	r.ClearRole(RoleRefLine)
}

// AddRightOfWayLanelet Adds a lanelet that has right of way
func (r *RightOfWay) AddRightOfWayLanelet(lanelet *Lanelet) {
	r.AddParameter(RoleRightOfWay, lanelet)
}

// AddYieldLanelet Adds a lanelet that has to yield
func (r *RightOfWay) AddYieldLanelet(lanelet *Lanelet) {
	r.AddParameter(RoleYield, lanelet)
}

// RemoveRightOfWayLanelet Removes a prioritized lanelet and reports whether
// it was part of the rule
func (r *RightOfWay) RemoveRightOfWayLanelet(lanelet *Lanelet) bool {
	return r.RemoveParameter(RoleRightOfWay, lanelet)
}

// RemoveYieldLanelet Removes a yielding lanelet and reports whether it was
// part of the rule
func (r *RightOfWay) RemoveYieldLanelet(lanelet *Lanelet) bool {
	return r.RemoveParameter(RoleYield, lanelet)
}
