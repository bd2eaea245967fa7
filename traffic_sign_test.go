package lanelet

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrafficSignExplicitTypeWins(t *testing.T) {
	sign := newTestLineString(1, AttributeMap{AttrSubtype: "de206"})
	ts, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}, Type: "de205"})
	require.NoError(t, err)
	assert.Equal(t, "de205", ts.Type())
}

func TestTrafficSignTypeFromFirstSign(t *testing.T) {
	first := newTestLineString(1, AttributeMap{AttrSubtype: "de205"})
	second := newTestLineString(2, AttributeMap{AttrSubtype: "de206"})
	ts, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{Signs: []*LineString{first, second}})
	require.NoError(t, err)
	assert.Equal(t, "de205", ts.Type())
}

func TestTrafficSignTypeOnlyFirstSignConsulted(t *testing.T) {
	// The fallback walks exactly one element: a later sign carrying the tag
	// does not help when the first one misses it
	untagged := newTestLineString(1, nil)
	tagged := newTestLineString(2, AttributeMap{AttrSubtype: "de205"})
	ts, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{Signs: []*LineString{untagged, tagged}})
	require.NoError(t, err)
	assert.Equal(t, "", ts.Type())
}

func TestTrafficSignNeedsSigns(t *testing.T) {
	_, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvariantViolation))
}

func TestTrafficSignAddRemove(t *testing.T) {
	sign := newTestLineString(1, AttributeMap{AttrSubtype: "de205"})
	ts, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}})
	require.NoError(t, err)
	sizeBefore := len(ts.TrafficSigns())

	extra := newTestLineString(2, AttributeMap{AttrSubtype: "de205"})
	ts.AddTrafficSign(extra)
	assert.True(t, ts.RemoveTrafficSign(extra))
	assert.Len(t, ts.TrafficSigns(), sizeBefore)
}

func TestTrafficSignRemoveNeverAdded(t *testing.T) {
	sign := newTestLineString(1, nil)
	ts, err := NewTrafficSign(100, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}})
	require.NoError(t, err)

	stranger := newTestLineString(2, nil)
	assert.False(t, ts.RemoveTrafficSign(stranger))
	assert.Equal(t, []*LineString{sign}, ts.TrafficSigns())
}

func TestTrafficSignCancellation(t *testing.T) {
	sign := newTestLineString(1, AttributeMap{AttrSubtype: "de274"})
	cancel := newTestLineString(2, AttributeMap{AttrSubtype: "de282"})
	refLine := newTestLineString(3, nil)
	cancelLine := newTestLineString(4, nil)

	ts, err := NewTrafficSign(100, AttributeMap{},
		SignsWithType{Signs: []*LineString{sign}},
		WithCancellingSigns(SignsWithType{Signs: []*LineString{cancel}}),
		WithRefLines(refLine),
		WithCancelLines(cancelLine),
	)
	require.NoError(t, err)

	assert.Equal(t, []*LineString{cancel}, ts.CancellingTrafficSigns())
	assert.Equal(t, "de282", ts.CancelType())
	assert.Equal(t, []*LineString{refLine}, ts.RefLines())
	assert.Equal(t, []*LineString{cancelLine}, ts.CancelLines())

	assert.True(t, ts.RemoveCancellingTrafficSign(cancel))
	assert.Equal(t, "", ts.CancelType())
	assert.True(t, ts.RemoveRefLine(refLine))
	assert.True(t, ts.RemoveCancelLine(cancelLine))
	assert.False(t, ts.RemoveCancelLine(cancelLine))
}

func TestTrafficSignExplicitCancelType(t *testing.T) {
	sign := newTestLineString(1, nil)
	cancel := newTestLineString(2, AttributeMap{AttrSubtype: "de282"})
	ts, err := NewTrafficSign(100, AttributeMap{},
		SignsWithType{Signs: []*LineString{sign}, Type: "de274-60"},
		WithCancellingSigns(SignsWithType{Signs: []*LineString{cancel}, Type: "de280"}),
	)
	require.NoError(t, err)
	assert.Equal(t, "de274-60", ts.Type())
	assert.Equal(t, "de280", ts.CancelType())
}

func TestSpeedLimit(t *testing.T) {
	sign := newTestLineString(1, AttributeMap{AttrSubtype: "de274-60"})
	sl, err := NewSpeedLimit(100, AttributeMap{}, SignsWithType{Signs: []*LineString{sign}})
	require.NoError(t, err)
	assert.Equal(t, RuleNameSpeedLimit, sl.RuleName())
	assert.Equal(t, "de274-60", sl.Type())
	assert.Equal(t, []*LineString{sign}, sl.TrafficSigns())
}
