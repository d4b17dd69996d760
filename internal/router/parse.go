// Package router turns raw classifier output into a claim type and provides
// the default rule-based classifier.
package router

import (
	"strings"

	"github.com/jmoreau/claimroute/internal/model"
)

// prefixOrder resolves lines that open with a claim type followed by more
// text. Checked in precedence order: fraud and partial_loss before total_loss,
// total_loss before duplicate and new.
var prefixOrder = []model.ClaimType{
	model.TypeFraud,
	model.TypePartialLoss,
	model.TypeTotalLoss,
	model.TypeDuplicate,
	model.TypeNew,
}

// ParseClaimType extracts the claim type from classifier output. The expected
// format is the type on one line with reasoning on the next, so lines are
// checked one at a time: an exact match on the normalized line wins, then a
// prefix match in precedence order, and the first line that matches decides.
// A type merely mentioned mid-sentence does not match. Unrecognizable output
// defaults to a new claim.
func ParseClaimType(output string) model.ClaimType {
	for _, line := range strings.Split(output, "\n") {
		normalized := strings.ToLower(strings.TrimSpace(line))
		normalized = strings.ReplaceAll(normalized, "_", " ")
		normalized = strings.ReplaceAll(normalized, "-", " ")
		if t, ok := matchLine(normalized); ok {
			return t
		}
	}
	return model.TypeNew
}

func matchLine(line string) (model.ClaimType, bool) {
	trimmed := strings.Trim(line, ".!\"' ")
	for _, t := range model.ClaimTypes {
		if trimmed == spaced(t) {
			return t, true
		}
	}
	for _, t := range prefixOrder {
		if strings.HasPrefix(line, spaced(t)) {
			return t, true
		}
	}
	return "", false
}

func spaced(t model.ClaimType) string {
	return strings.ReplaceAll(string(t), "_", " ")
}
