package lanelet

import (
	"github.com/pkg/errors"
)

// RuleNameTrafficSign Registry name of the generic traffic sign rule
const RuleNameTrafficSign = "traffic_sign"

func init() {
	RegisterRuleType(RuleNameTrafficSign, func(data RuleData) (RegulatoryElement, error) {
		return newSignRule(data, func(ts *TrafficSign) RegulatoryElement { return ts })
	})
}

// newSignRule reconstructs the shared sign-rule shape from generic data. The
// wrap callback lets SpeedLimit reuse the same reconstruction with a
// different registry name.
func newSignRule(data RuleData, wrap func(*TrafficSign) RegulatoryElement) (RegulatoryElement, error) {
	signs := lineStringParams(data.Roles[RoleRefers])
	if len(signs) != len(data.Roles[RoleRefers]) {
		return nil, errors.Wrap(ErrInvariantViolation, "sign rule '"+RoleRefers+"' role accepts linestrings only")
	}
	options := []func(*TrafficSign){}
	if cancels := lineStringParams(data.Roles[RoleCancels]); len(cancels) > 0 {
		options = append(options, WithCancellingSigns(SignsWithType{Signs: cancels}))
	}
	if refLines := lineStringParams(data.Roles[RoleRefLine]); len(refLines) > 0 {
		options = append(options, WithRefLines(refLines...))
	}
	if cancelLines := lineStringParams(data.Roles[RoleCancelLine]); len(cancelLines) > 0 {
		options = append(options, WithCancelLines(cancelLines...))
	}
	ts, err := NewTrafficSign(data.ID, data.Attributes, SignsWithType{Signs: signs}, options...)
	if err != nil {
		return nil, err
	}
	return wrap(ts), nil
}

// SignsWithType Couples sign linestrings with their type string
/*
	The type format is <country-code><ID>, e.g. "de205". If Type is empty the
	type is expected to be found in the 'subtype' attribute of the signs
	themselves.
*/
type SignsWithType struct {
	Signs []*LineString
	Type  string
}

// TrafficSign Expresses a generic traffic sign rule
type TrafficSign struct {
	RegulatoryElementBase
}

// NewTrafficSign Creates a traffic sign rule
/*
	signs - the signs defining the rule, all required to show the same symbol.
	Optional parameters are provided via WithCancellingSigns, WithRefLines and
	WithCancelLines. Without ref lines the rule is active over the whole
	lanelet.
*/
func NewTrafficSign(id ID, attributes AttributeMap, signs SignsWithType, options ...func(*TrafficSign)) (*TrafficSign, error) {
	if len(signs.Signs) == 0 {
		return nil, errors.Wrap(ErrInvariantViolation, "traffic sign needs at least one sign")
	}
	t := &TrafficSign{newRegulatoryElementBase(id, attributes)}
	for _, sign := range signs.Signs {
		t.AddParameter(RoleRefers, sign)
	}
	if signs.Type != "" {
		t.attrs[AttrSignType] = signs.Type
	}
	for _, option := range options {
		option(t)
	}
	return t, nil
}

// WithCancellingSigns Sets the signs that terminate the rule
func WithCancellingSigns(cancels SignsWithType) func(*TrafficSign) {
	return func(t *TrafficSign) {
		for _, sign := range cancels.Signs {
			t.AddParameter(RoleCancels, sign)
		}
		if cancels.Type != "" {
			t.attrs[AttrCancelType] = cancels.Type
		}
	}
}

// WithRefLines Sets the lines from which the rule becomes active
func WithRefLines(lines ...*LineString) func(*TrafficSign) {
	return func(t *TrafficSign) {
		for _, line := range lines {
			t.AddParameter(RoleRefLine, line)
		}
	}
}

// WithCancelLines Sets the lines from which the rule becomes inactive
func WithCancelLines(lines ...*LineString) func(*TrafficSign) {
	return func(t *TrafficSign) {
		for _, line := range lines {
			t.AddParameter(RoleCancelLine, line)
		}
	}
}

// RuleName Returns registry name of the variant
func (t *TrafficSign) RuleName() string {
	return RuleNameTrafficSign
}

// TrafficSigns Returns the signs defining the rule
func (t *TrafficSign) TrafficSigns() []*LineString {
	return lineStringParams(t.Parameters(RoleRefers))
}

// Type Returns the id/number of the sign(s), e.g. "de205"
/*
	A type given explicitly at construction wins. Otherwise the 'subtype'
	attribute of the first sign is consulted, and only the first one: callers
	must keep all referenced signs at the same type anyway. Empty string means
	the type is unknown.
*/
func (t *TrafficSign) Type() string {
	return t.typeFrom(AttrSignType, RoleRefers)
}

// CancellingTrafficSigns Returns the signs terminating the rule (may be empty)
func (t *TrafficSign) CancellingTrafficSigns() []*LineString {
	return lineStringParams(t.Parameters(RoleCancels))
}

// CancelType Returns the type of the cancelling sign(s), derived the same way
// as Type
func (t *TrafficSign) CancelType() string {
	return t.typeFrom(AttrCancelType, RoleCancels)
}

func (t *TrafficSign) typeFrom(attrKey, role string) string {
	if explicit := t.attrs.Find(attrKey); explicit != "" {
		return explicit
	}
	signs := lineStringParams(t.Parameters(role))
	if len(signs) == 0 {
		return ""
	}
	return signs[0].Attributes.Find(AttrSubtype)
}

// RefLines Returns the lines from which the rule becomes active (may be empty)
func (t *TrafficSign) RefLines() []*LineString {
	return lineStringParams(t.Parameters(RoleRefLine))
}

// CancelLines Returns the lines from which the rule becomes inactive (may be
// empty)
func (t *TrafficSign) CancelLines() []*LineString {
	return lineStringParams(t.Parameters(RoleCancelLine))
}

// AddTrafficSign Adds another sign defining the rule
func (t *TrafficSign) AddTrafficSign(sign *LineString) {
	t.AddParameter(RoleRefers, sign)
}

// RemoveTrafficSign Removes a sign and reports whether it was referenced
func (t *TrafficSign) RemoveTrafficSign(sign *LineString) bool {
	return t.RemoveParameter(RoleRefers, sign)
}

// AddCancellingTrafficSign Adds a sign that terminates the rule
func (t *TrafficSign) AddCancellingTrafficSign(sign *LineString) {
	t.AddParameter(RoleCancels, sign)
}

// RemoveCancellingTrafficSign Removes a cancelling sign and reports whether
// it was referenced
func (t *TrafficSign) RemoveCancellingTrafficSign(sign *LineString) bool {
	return t.RemoveParameter(RoleCancels, sign)
}

// AddRefLine Adds a line from which the rule becomes active
func (t *TrafficSign) AddRefLine(line *LineString) {
	t.AddParameter(RoleRefLine, line)
}

// RemoveRefLine Removes a ref line and reports whether it was referenced
func (t *TrafficSign) RemoveRefLine(line *LineString) bool {
	return t.RemoveParameter(RoleRefLine, line)
}

// AddCancelLine Adds a line from which the rule becomes inactive
func (t *TrafficSign) AddCancelLine(line *LineString) {
	t.AddParameter(RoleCancelLine, line)
}

// RemoveCancelLine Removes a cancel line and reports whether it was
// referenced
func (t *TrafficSign) RemoveCancelLine(line *LineString) bool {
	return t.RemoveParameter(RoleCancelLine, line)
}
