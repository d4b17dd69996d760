package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoreau/claimroute/internal/model"
	"github.com/jmoreau/claimroute/internal/service"
)

// UnknownDaysDifference is assigned to candidates whose own incident date
// cannot be parsed while the target date is valid. It pushes them behind any
// candidate within 999 days; a candidate genuinely farther away than that
// still sorts after it, a quirk kept for parity with existing ranking
// behavior.
const UnknownDaysDifference = 999

// Candidate is a prior claim on the same VIN, optionally annotated with its
// calendar-day distance from the target incident date.
type Candidate struct {
	Claim model.Claim
	// DaysDifference is -1 when the target incident date was unparseable and
	// no proximity ranking was performed.
	DaysDifference int
}

// Matcher finds prior claims that may duplicate a new submission.
type Matcher struct {
	storage service.Storage
}

// NewMatcher creates a duplicate matcher backed by claim storage.
func NewMatcher(storage service.Storage) *Matcher {
	return &Matcher{storage: storage}
}

// FindCandidates returns prior claims sharing the given VIN, excluding
// currentClaimID, ranked by incident-date proximity when the target date
// parses. A blank VIN returns no candidates without querying storage. When the
// target date is unparseable the candidates come back in storage order,
// unannotated.
func (m *Matcher) FindCandidates(ctx context.Context, vin, incidentDate, currentClaimID string) ([]Candidate, error) {
	vin = strings.TrimSpace(vin)
	if vin == "" {
		return []Candidate{}, nil
	}

	claims, err := m.storage.SearchClaims(ctx, service.SearchFilter{VIN: vin})
	if err != nil {
		return nil, fmt.Errorf("failed to search claims for VIN %s: %w", vin, err)
	}

	candidates := make([]Candidate, 0, len(claims))
	for _, claim := range claims {
		if claim.ID == currentClaimID {
			continue
		}
		candidates = append(candidates, Candidate{Claim: claim, DaysDifference: -1})
	}

	targetDate, err := model.ParseIncidentDate(incidentDate)
	if err != nil {
		// No proximity ranking possible; return matches in storage order.
		return candidates, nil
	}

	for i := range candidates {
		candidateDate, parseErr := model.ParseIncidentDate(candidates[i].Claim.IncidentDate)
		if parseErr != nil {
			candidates[i].DaysDifference = UnknownDaysDifference
			continue
		}
		days := int(targetDate.Sub(candidateDate).Hours() / 24)
		if days < 0 {
			days = -days
		}
		candidates[i].DaysDifference = days
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].DaysDifference < candidates[j].DaysDifference
	})

	return candidates, nil
}
