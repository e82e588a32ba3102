package scoring

import (
	"strings"
	"time"
)

const (
	categoryContacts   = "contacts"
	categoryLeadership = "leadership"
	categoryFunding    = "funding"
	categoryMaturity   = "maturity"
	categoryProfile    = "profile"
	categoryRelevance  = "relevance"
)

// Contact is the slice of a contact the heuristic looks at.
type Contact struct {
	RoleCategory string
}

// Profile captures the company signals used by the enhanced scorer.
type Profile struct {
	Contacts          []Contact
	FundingStage      string
	RequestedStages   []string
	LatestFundingDate *time.Time
	FoundedYear       int
	PubliclyTraded    bool
	TotalFunding      int64
	Revenue           int64
	Description       string
	Location          string
	// AsOf anchors funding recency; zero disables the recency bonus.
	AsOf time.Time
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ScoreEnhanced evaluates a discovered company with its resolved contacts.
// The total is clamped into [w.Min, w.Max].
func ScoreEnhanced(p Profile, w Weights) ScoreResult {
	breakdown := map[string]int{
		categoryContacts:   scoreContacts(p, w),
		categoryLeadership: scoreLeadership(p, w),
		categoryFunding:    scoreFunding(p, w),
		categoryMaturity:   scoreMaturity(p, w),
		categoryProfile:    scoreProfile(p, w),
	}

	total := w.Base
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     clamp(total, w.Min, w.Max),
		Breakdown: breakdown,
	}
}

func scoreContacts(p Profile, w Weights) int {
	score := 0
	if len(p.Contacts) > 0 {
		score += w.ContactsPresent
	}
	if w.ManyContactsThreshold > 0 && len(p.Contacts) >= w.ManyContactsThreshold {
		score += w.ManyContacts
	}
	return score
}

func scoreLeadership(p Profile, w Weights) int {
	leaders := 0
	for _, c := range p.Contacts {
		if isLeadership(c.RoleCategory) {
			leaders++
		}
	}
	score := 0
	if leaders > 0 {
		score += w.LeadershipPresent
	}
	if leaders >= 2 {
		score += w.MultipleLeaders
	}
	return score
}

func scoreFunding(p Profile, w Weights) int {
	score := 0
	if stageRequested(p.FundingStage, p.RequestedStages) {
		score += w.StageMatch
	}
	if p.LatestFundingDate != nil && !p.AsOf.IsZero() {
		age := p.AsOf.Sub(*p.LatestFundingDate)
		if age >= 0 && age <= monthsToDuration(12) {
			score += w.FundedWithinYear
		}
		if age >= 0 && age <= monthsToDuration(6) {
			score += w.FundedWithinHalfYear
		}
	}
	if w.FundingThreshold > 0 && p.TotalFunding >= w.FundingThreshold {
		score += w.FundingBonus
	}
	return score
}

func scoreMaturity(p Profile, w Weights) int {
	score := 0
	if w.FoundedSince > 0 && p.FoundedYear >= w.FoundedSince {
		score += w.FoundedRecently
	}
	if p.PubliclyTraded || strings.EqualFold(strings.TrimSpace(p.FundingStage), "public") {
		score += w.Public
	}
	if w.RevenueThreshold > 0 && p.Revenue >= w.RevenueThreshold {
		score += w.RevenueBonus
	}
	return score
}

func scoreProfile(p Profile, w Weights) int {
	score := 0
	if w.DescriptionMinLength > 0 && len(strings.TrimSpace(p.Description)) >= w.DescriptionMinLength {
		score += w.DescriptionBonus
	}
	if inHub(p.Location, w.HubCities) {
		score += w.HubBonus
	}
	return score
}

func isLeadership(role string) bool {
	switch role {
	case "Founder", "C-Suite":
		return true
	}
	return false
}

func stageRequested(stage string, requested []string) bool {
	stage = strings.ToLower(strings.TrimSpace(stage))
	if stage == "" {
		return false
	}
	for _, r := range requested {
		if strings.ToLower(strings.TrimSpace(r)) == stage {
			return true
		}
	}
	return false
}

func inHub(location string, hubs []string) bool {
	loc := strings.ToLower(location)
	if loc == "" {
		return false
	}
	for _, hub := range hubs {
		if hub = strings.ToLower(strings.TrimSpace(hub)); hub != "" && strings.Contains(loc, hub) {
			return true
		}
	}
	return false
}

// monthsToDuration uses 30-day months.
func monthsToDuration(months int) time.Duration {
	return time.Duration(months) * 30 * 24 * time.Hour
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
