package repair

import (
	"strings"
)

// Part type preferences for catalog pricing.
const (
	PartTypeOEM         = "oem"
	PartTypeAftermarket = "aftermarket"
	PartTypeRefurbished = "refurbished"
)

// Part is a replaceable component with pricing per sourcing type.
type Part struct {
	ID               string
	Name             string
	Keywords         []string
	PriceOEM         float64
	PriceAftermarket float64
	PriceRefurbished float64
	NeedsPaint       bool
}

// Price returns the part price for the requested sourcing type, falling back
// to aftermarket for unknown types.
func (p Part) Price(partType string) float64 {
	switch strings.ToLower(partType) {
	case PartTypeOEM:
		return p.PriceOEM
	case PartTypeRefurbished:
		return p.PriceRefurbished
	default:
		return p.PriceAftermarket
	}
}

// defaultCatalog maps common damage vocabulary to orderable parts.
var defaultCatalog = []Part{
	{ID: "PART-BUMPER-FRONT", Name: "Front Bumper", Keywords: []string{"front bumper"}, PriceOEM: 850, PriceAftermarket: 450, PriceRefurbished: 300, NeedsPaint: true},
	{ID: "PART-BUMPER-REAR", Name: "Rear Bumper", Keywords: []string{"rear bumper"}, PriceOEM: 800, PriceAftermarket: 425, PriceRefurbished: 280, NeedsPaint: true},
	{ID: "PART-BUMPER", Name: "Bumper", Keywords: []string{"bumper"}, PriceOEM: 825, PriceAftermarket: 440, PriceRefurbished: 290, NeedsPaint: true},
	{ID: "PART-HEADLIGHT", Name: "Headlight Assembly", Keywords: []string{"headlight", "head light"}, PriceOEM: 420, PriceAftermarket: 180, PriceRefurbished: 120},
	{ID: "PART-TAILLIGHT", Name: "Taillight Assembly", Keywords: []string{"taillight", "tail light"}, PriceOEM: 310, PriceAftermarket: 140, PriceRefurbished: 95},
	{ID: "PART-HOOD", Name: "Hood", Keywords: []string{"hood"}, PriceOEM: 950, PriceAftermarket: 520, PriceRefurbished: 350, NeedsPaint: true},
	{ID: "PART-DOOR", Name: "Door Shell", Keywords: []string{"door"}, PriceOEM: 1100, PriceAftermarket: 600, PriceRefurbished: 400, NeedsPaint: true},
	{ID: "PART-FENDER", Name: "Fender", Keywords: []string{"fender"}, PriceOEM: 480, PriceAftermarket: 250, PriceRefurbished: 170, NeedsPaint: true},
	{ID: "PART-QUARTER-PANEL", Name: "Quarter Panel", Keywords: []string{"quarter panel"}, PriceOEM: 780, PriceAftermarket: 430, PriceRefurbished: 290, NeedsPaint: true},
	{ID: "PART-WINDSHIELD", Name: "Windshield", Keywords: []string{"windshield"}, PriceOEM: 550, PriceAftermarket: 320, PriceRefurbished: 220},
	{ID: "PART-WINDOW", Name: "Door Glass", Keywords: []string{"window"}, PriceOEM: 280, PriceAftermarket: 150, PriceRefurbished: 100},
	{ID: "PART-MIRROR", Name: "Side Mirror", Keywords: []string{"mirror"}, PriceOEM: 260, PriceAftermarket: 110, PriceRefurbished: 75},
	{ID: "PART-TRUNK", Name: "Trunk Lid", Keywords: []string{"trunk"}, PriceOEM: 720, PriceAftermarket: 390, PriceRefurbished: 260, NeedsPaint: true},
}

// MatchParts scans the damage description and returns the parts it mentions.
// More specific keywords win over generic ones ("front bumper" suppresses the
// plain "bumper" entry) and each part is returned at most once, in catalog
// order.
func MatchParts(damageDescription string) []Part {
	text := strings.ToLower(damageDescription)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	matchedKeywords := make(map[string]bool)
	var matched []Part
	for _, part := range defaultCatalog {
		for _, keyword := range part.Keywords {
			if strings.Contains(text, keyword) && !coveredBySpecific(keyword, matchedKeywords) {
				matched = append(matched, part)
				matchedKeywords[keyword] = true
				break
			}
		}
	}
	return matched
}

// coveredBySpecific reports whether a generic keyword is already represented
// by a longer matched keyword containing it.
func coveredBySpecific(keyword string, matched map[string]bool) bool {
	for m := range matched {
		if m != keyword && strings.Contains(m, keyword) {
			return true
		}
	}
	return false
}
