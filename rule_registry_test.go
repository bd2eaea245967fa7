package lanelet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownRuleType(t *testing.T) {
	_, err := NewRegulatoryElement("zebra_crossing", RuleData{ID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRuleType))
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterRuleType(RuleNameTrafficLight, func(data RuleData) (RegulatoryElement, error) {
			return nil, nil
		})
	})
}

func TestBuiltinRuleTypesRegistered(t *testing.T) {
	names := RuleTypeNames()
	for _, name := range []string{RuleNameTrafficLight, RuleNameRightOfWay, RuleNameTrafficSign, RuleNameSpeedLimit} {
		assert.Contains(t, names, name)
	}
}

// Construct, decompose to the generic wire form, re-construct through the
// registry: roles and attributes must survive unchanged for every variant.
func TestRuleRoundTrip(t *testing.T) {
	light := newTestLineString(1, AttributeMap{AttrType: "traffic_light"})
	stopLine := newTestLineString(2, AttributeMap{AttrType: "stop_line"})
	sign := newTestLineString(3, AttributeMap{AttrSubtype: "de205"})
	prioritized := newTestLanelet(4)
	yielding := newTestLanelet(5)

	trafficLight, err := NewTrafficLight(100, AttributeMap{"key": "value"}, []*LineString{light}, stopLine)
	require.NoError(t, err)
	rightOfWay, err := NewRightOfWay(101, AttributeMap{}, []*Lanelet{prioritized}, []*Lanelet{yielding}, WithStopLine(stopLine))
	require.NoError(t, err)
	trafficSign, err := NewTrafficSign(102, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}, Type: "de205"})
	require.NoError(t, err)
	speedLimit, err := NewSpeedLimit(103, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}, Type: "de274-60"})
	require.NoError(t, err)

	for _, original := range []RegulatoryElement{trafficLight, rightOfWay, trafficSign, speedLimit} {
		rebuilt, err := NewRegulatoryElement(original.RuleName(), RuleData{
			ID:         original.ID(),
			Attributes: original.Attributes(),
			Roles:      original.Roles(),
		})
		require.NoError(t, err, original.RuleName())
		assert.Equal(t, original.ID(), rebuilt.ID(), original.RuleName())
		assert.Equal(t, original.RuleName(), rebuilt.RuleName())
		assert.Equal(t, original.Attributes(), rebuilt.Attributes(), original.RuleName())
		assert.Equal(t, original.Roles(), rebuilt.Roles(), original.RuleName())
	}
}

// The variant set is open: a rule type defined outside of this package can
// be registered and flows through the registry like the built-in ones.
type testCrosswalkRule struct {
	RegulatoryElementBase
}

func (c *testCrosswalkRule) RuleName() string { return "test_crosswalk" }

func TestCustomRuleType(t *testing.T) {
	RegisterRuleType("test_crosswalk", func(data RuleData) (RegulatoryElement, error) {
		rule := &testCrosswalkRule{newRegulatoryElementBase(data.ID, data.Attributes)}
		for _, param := range data.Roles[RoleRefers] {
			rule.AddParameter(RoleRefers, param)
		}
		return rule, nil
	})

	marking := newTestLineString(1, AttributeMap{AttrType: "zebra_marking"})
	rebuilt, err := NewRegulatoryElement("test_crosswalk", RuleData{
		ID:    200,
		Roles: RuleRoles{RoleRefers: {marking}},
	})
	require.NoError(t, err)
	assert.Equal(t, "test_crosswalk", rebuilt.RuleName())
	assert.Equal(t, RuleRoles{RoleRefers: {marking}}, rebuilt.Roles())
}

func TestRolesReturnsCopy(t *testing.T) {
	light := newTestLineString(1, nil)
	stopLine := newTestLineString(2, nil)
	tl, err := NewTrafficLight(100, AttributeMap{}, []*LineString{light}, stopLine)
	require.NoError(t, err)

	roles := tl.Roles()
	delete(roles, RoleRefers)
	assert.Len(t, tl.TrafficLights(), 1)
}
