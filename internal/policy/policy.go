// Package policy resolves policy numbers to coverage records.
package policy

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jmoreau/claimroute/internal/common"
	"github.com/jmoreau/claimroute/internal/service"
)

// DefaultDeductible applies when a policy record carries no deductible.
const DefaultDeductible = 500.0

// StaticLookup serves policies from an in-memory table. It implements
// service.PolicyLookup and is safe for concurrent use.
type StaticLookup struct {
	policies map[string]service.Policy
	mu       sync.RWMutex
}

// NewStaticLookup creates a policy lookup seeded with the given policies.
func NewStaticLookup(policies []service.Policy) *StaticLookup {
	table := make(map[string]service.Policy, len(policies))
	for _, p := range policies {
		if p.Deductible == 0 {
			p.Deductible = DefaultDeductible
		}
		table[p.Number] = p
	}
	return &StaticLookup{policies: table}
}

// Lookup resolves a policy number. Unknown numbers return ErrNotFound;
// inactive policies return ErrPolicyInactive.
func (l *StaticLookup) Lookup(_ context.Context, policyNumber string) (service.Policy, error) {
	policyNumber = strings.TrimSpace(policyNumber)
	if policyNumber == "" {
		return service.Policy{}, fmt.Errorf("%w: empty policy number", common.ErrValidation)
	}

	l.mu.RLock()
	p, ok := l.policies[policyNumber]
	l.mu.RUnlock()

	if !ok {
		return service.Policy{}, fmt.Errorf("policy %s: %w", policyNumber, common.ErrNotFound)
	}
	if !p.Active() {
		return p, fmt.Errorf("policy %s: %w", policyNumber, common.ErrPolicyInactive)
	}
	return p, nil
}

// Add inserts or replaces a policy record.
func (l *StaticLookup) Add(p service.Policy) {
	if p.Deductible == 0 {
		p.Deductible = DefaultDeductible
	}
	l.mu.Lock()
	l.policies[p.Number] = p
	l.mu.Unlock()
}
