package scoring

import (
	"strings"
	"time"
	"unicode"
)

// SimpleProfile is the minimal company view available from sources that
// return no contacts (curated lists, Crunchbase, news, directory scraping).
type SimpleProfile struct {
	Name              string
	Description       string
	Industry          string
	LatestFundingDate *time.Time
	EmployeeCount     int
	AsOf              time.Time
}

// ScoreSimple is the keyword relevance heuristic, clamped into [w.Min, w.Max].
func ScoreSimple(p SimpleProfile, w SimpleWeights) ScoreResult {
	text := strings.ToLower(strings.Join([]string{p.Name, p.Description, p.Industry}, " "))
	words := tokenize(text)

	relevance := 0
	for _, kw := range w.Keywords {
		if matchesAny(text, words, kw.Terms) {
			relevance += kw.Points
		}
	}

	funding := 0
	if p.LatestFundingDate != nil && !p.AsOf.IsZero() {
		if age := p.AsOf.Sub(*p.LatestFundingDate); age >= 0 && age < monthsToDuration(12) {
			funding = w.RecentFunding
		}
	}

	size := 0
	if p.EmployeeCount > w.EmployeesMin && p.EmployeeCount < w.EmployeesMax {
		size = w.SizeSweetSpot
	}

	breakdown := map[string]int{
		categoryRelevance: relevance,
		categoryFunding:   funding,
		categoryProfile:   size,
	}
	return ScoreResult{
		Total:     clamp(w.Base+relevance+funding+size, w.Min, w.Max),
		Breakdown: breakdown,
	}
}

// matchesAny treats short terms as whole words so "ai" does not match "chain".
func matchesAny(text string, words map[string]struct{}, terms []string) bool {
	for _, term := range terms {
		term = strings.ToLower(term)
		if len(term) <= 3 {
			if _, ok := words[term]; ok {
				return true
			}
			continue
		}
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func tokenize(text string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, f := range strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[f] = struct{}{}
	}
	return out
}
