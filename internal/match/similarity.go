// Package match implements text similarity and duplicate-claim detection.
package match

import (
	"math"
	"strings"
)

// DuplicateThreshold is the similarity score above which two descriptions are
// treated as duplicates.
const DuplicateThreshold = 80.0

// Similarity is a scored comparison of two free-text descriptions.
type Similarity struct {
	Score       float64
	IsDuplicate bool
}

// Compare computes Jaccard token-set similarity between two texts on a 0-100
// scale. Blank input on either side scores 0 so that two empty descriptions
// are never "100% similar". Symmetric in its arguments.
func Compare(a, b string) Similarity {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return Similarity{Score: 0.0, IsDuplicate: false}
	}

	intersection := 0
	union := len(tokensB)
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		} else {
			union++
		}
	}

	score := float64(intersection) / float64(union) * 100.0
	score = math.Round(score*100) / 100
	return Similarity{
		Score:       score,
		IsDuplicate: score > DuplicateThreshold,
	}
}

// Overlap returns the raw Jaccard ratio in [0,1], used by the fraud
// cross-reference description-mismatch check.
func Overlap(a, b string) float64 {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	intersection := 0
	union := len(tokensB)
	for token := range tokensA {
		if _, ok := tokensB[token]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union)
}

func tokenize(text string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(text)))
	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		tokens[f] = struct{}{}
	}
	return tokens
}
