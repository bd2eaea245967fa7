package lanelet

// RuleNameSpeedLimit Registry name of the speed limit rule
const RuleNameSpeedLimit = "speed_limit"

func init() {
	RegisterRuleType(RuleNameSpeedLimit, func(data RuleData) (RegulatoryElement, error) {
		return newSignRule(data, func(ts *TrafficSign) RegulatoryElement {
			return &SpeedLimit{*ts}
		})
	})
}

// SpeedLimit Represents a speed limit that affects a lanelet
/*
	A speed limit has the same structural shape as a generic traffic sign and
	is distinguished by its registry name only. Its type is expected to encode
	the numeric limit, e.g. "de274-60".
*/
type SpeedLimit struct {
	TrafficSign
}

// NewSpeedLimit Creates a speed limit rule. Accepts the same optional
// parameters as NewTrafficSign.
func NewSpeedLimit(id ID, attributes AttributeMap, signs SignsWithType, options ...func(*TrafficSign)) (*SpeedLimit, error) {
	ts, err := NewTrafficSign(id, attributes, signs, options...)
	if err != nil {
		return nil, err
	}
	return &SpeedLimit{*ts}, nil
}

// RuleName Returns registry name of the variant
func (s *SpeedLimit) RuleName() string {
	return RuleNameSpeedLimit
}
