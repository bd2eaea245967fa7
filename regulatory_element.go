package lanelet

// Role names shared by the built-in rule variants
const (
	RoleRefers     = "refers"
	RoleRefLine    = "ref_line"
	RoleRightOfWay = "right_of_way"
	RoleYield      = "yield"
	RoleCancels    = "cancels"
	RoleCancelLine = "cancel_line"
)

// RuleParameter is a reference to a map element that can fill a role of a
// regulatory element. Linestrings and lanelets implement it.
type RuleParameter interface {
	refID() ID
}

// sameParameter reports whether two parameters reference the same map
// element. Elements without an assigned identifier compare by identity only:
// two distinct unassigned elements are never the same.
func sameParameter(a, b RuleParameter) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.refID() == 0 || b.refID() == 0 {
		return false
	}
	if a.refID() != b.refID() {
		return false
	}
	switch a.(type) {
	case *LineString:
		_, ok := b.(*LineString)
		return ok
	case *Lanelet:
		_, ok := b.(*Lanelet)
		return ok
	}
	return false
}

// RuleRoles maps a role name to its ordered parameters
type RuleRoles map[string][]RuleParameter

// RuleData is the generic decomposed form of a regulatory element. It is the
// wire contract between the rule registry and the format handlers: a handler
// serializes and reconstructs rules through this shape without compile-time
// knowledge of the concrete variants.
type RuleData struct {
	ID         ID
	Attributes AttributeMap
	Roles      RuleRoles
}

// RegulatoryElement is a traffic-control rule attached to one or more
// lanelets. Concrete variants add their own typed accessors and mutators on
// top of this generic surface.
type RegulatoryElement interface {
	ID() ID
	SetID(id ID)
	// RuleName returns the registry name of the variant, e.g. "traffic_light"
	RuleName() string
	Attributes() AttributeMap
	// Roles returns the generic decomposition of the rule used by writers.
	// The returned mapping is a copy, mutating it does not affect the rule.
	Roles() RuleRoles
}

// RegulatoryElementBase carries the identity, attributes and role bookkeeping
// shared by all rule variants. Custom variants registered from outside this
// package can embed it to get the generic surface for free.
type RegulatoryElementBase struct {
	id    ID
	attrs AttributeMap
	roles RuleRoles
}

func newRegulatoryElementBase(id ID, attributes AttributeMap) RegulatoryElementBase {
	return RegulatoryElementBase{
		id:    id,
		attrs: attributes.Copy(),
		roles: make(RuleRoles),
	}
}

// ID returns identifier of the rule
func (b *RegulatoryElementBase) ID() ID {
	return b.id
}

// SetID overwrites identifier of the rule
func (b *RegulatoryElementBase) SetID(id ID) {
	b.id = id
}

// Attributes returns the attribute mapping of the rule
func (b *RegulatoryElementBase) Attributes() AttributeMap {
	return b.attrs
}

// Roles returns a copy of the role mapping of the rule
func (b *RegulatoryElementBase) Roles() RuleRoles {
	roles := make(RuleRoles, len(b.roles))
	for name, params := range b.roles {
		cp := make([]RuleParameter, len(params))
		copy(cp, params)
		roles[name] = cp
	}
	return roles
}

// Parameters returns ordered contents of a single role
func (b *RegulatoryElementBase) Parameters(role string) []RuleParameter {
	return b.roles[role]
}

// AddParameter appends a parameter to a role keeping insertion order
func (b *RegulatoryElementBase) AddParameter(role string, p RuleParameter) {
	b.roles[role] = append(b.roles[role], p)
}

// addParameterUnique appends a parameter unless the same element is already
// part of the role
func (b *RegulatoryElementBase) addParameterUnique(role string, p RuleParameter) {
	for _, present := range b.roles[role] {
		if sameParameter(present, p) {
			return
		}
	}
	b.AddParameter(role, p)
}

// RemoveParameter removes a parameter from a role and reports whether the
// element was present
func (b *RegulatoryElementBase) RemoveParameter(role string, p RuleParameter) bool {
	params := b.roles[role]
	for i, present := range params {
		if sameParameter(present, p) {
			b.roles[role] = append(params[:i], params[i+1:]...)
			return true
		}
	}
	return false
}

// SetParameter overwrites a role with cardinality one
func (b *RegulatoryElementBase) SetParameter(role string, p RuleParameter) {
	b.roles[role] = []RuleParameter{p}
}

// ClearRole drops a role entirely
func (b *RegulatoryElementBase) ClearRole(role string) {
	delete(b.roles, role)
}

// lineStringParams filters linestring references out of role parameters
func lineStringParams(params []RuleParameter) []*LineString {
	result := make([]*LineString, 0, len(params))
	for _, p := range params {
		if ls, ok := p.(*LineString); ok {
			result = append(result, ls)
		}
	}
	return result
}

// laneletParams filters lanelet references out of role parameters
func laneletParams(params []RuleParameter) []*Lanelet {
	result := make([]*Lanelet, 0, len(params))
	for _, p := range params {
		if ll, ok := p.(*Lanelet); ok {
			result = append(result, ll)
		}
	}
	return result
}
