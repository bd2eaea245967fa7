package lanelet

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// RuleFactory reconstructs a concrete regulatory element from its generic
// wire form. It must validate the variant's structural invariants and return
// ErrInvariantViolation when they do not hold.
type RuleFactory func(data RuleData) (RegulatoryElement, error)

type ruleRegistry struct {
	mu        sync.RWMutex
	factories map[string]RuleFactory
}

var ruleTypes = &ruleRegistry{
	factories: make(map[string]RuleFactory),
}

// RegisterRuleType adds a factory for a rule type name. The set of variants
// is open: code outside this package may register new rule types before the
// first load or write call. Registering the same name twice is a programming
// error and panics, mirroring gob.Register.
func RegisterRuleType(name string, factory RuleFactory) {
	ruleTypes.mu.Lock()
	defer ruleTypes.mu.Unlock()
	if _, ok := ruleTypes.factories[name]; ok {
		panic(fmt.Sprintf("lanelet: rule type '%s' registered twice", name))
	}
	ruleTypes.factories[name] = factory
}

// NewRegulatoryElement constructs a rule variant by its registered name.
// Returns ErrUnknownRuleType when no factory is registered for the name.
func NewRegulatoryElement(name string, data RuleData) (RegulatoryElement, error) {
	ruleTypes.mu.RLock()
	factory, ok := ruleTypes.factories[name]
	ruleTypes.mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownRuleType, "'%s'", name)
	}
	return factory(data)
}

// RuleTypeNames returns sorted names of all registered rule types
func RuleTypeNames() []string {
	ruleTypes.mu.RLock()
	defer ruleTypes.mu.RUnlock()
	names := make([]string, 0, len(ruleTypes.factories))
	for name := range ruleTypes.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
