package news

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/sanitize"
)

var (
	fundingPattern = regexp.MustCompile(`((?:[A-Z][\w&.'-]*\s+){0,4}[A-Z][\w&.'-]*)\s+(?:raised|raises|receives?|secures?|closes?)\s+(?:an?\s+)?\$?([\d.]+)\s*(M|million|B|billion)\b`)
	stagePattern   = regexp.MustCompile(`(?i)\b(series\s+[a-f]|seed|ipo)\b`)
)

// Funding is an announcement pulled out of article text.
type Funding struct {
	Company string
	Amount  int64
	Stage   string
}

// ExtractFunding finds the first "<Company> raises $<n>M" style statement
// in text.
func ExtractFunding(text string) (Funding, bool) {
	m := fundingPattern.FindStringSubmatch(text)
	if m == nil {
		return Funding{}, false
	}
	company := strings.TrimSpace(m[1])
	if company == "" {
		return Funding{}, false
	}

	f := Funding{Company: company, Stage: "Unknown"}
	if v, err := strconv.ParseFloat(m[2], 64); err == nil {
		mult := 1e6
		if strings.HasPrefix(strings.ToLower(m[3]), "b") {
			mult = 1e9
		}
		f.Amount = int64(v * mult)
	}
	if s := stagePattern.FindString(text); s != "" {
		f.Stage = stageLabel(s)
	}
	return f, true
}

// Article is the feed-agnostic view of a news item.
type Article struct {
	Title       string
	Description string
	Content     string
	URL         string
}

// LeadFromArticle converts an article announcing a raise into a lead.
func LeadFromArticle(a Article, source string) (dto.Lead, bool) {
	title := sanitize.Text(a.Title)
	desc := sanitize.Text(a.Description)
	text := strings.Join([]string{title, desc, sanitize.Text(a.Content)}, " ")

	f, ok := ExtractFunding(text)
	if !ok {
		return dto.Lead{}, false
	}
	if desc == "" {
		desc = title
	}
	return dto.Lead{
		Company:      f.Company,
		Industry:     "Biotechnology",
		Description:  sanitize.Truncate(desc, 500),
		FundingStage: f.Stage,
		TotalFunding: f.Amount,
		Location:     "Unknown",
		RecentNews:   []string{title},
		Source:       source,
		Contacts:     []dto.LeadContact{},
	}, true
}

func stageLabel(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	switch {
	case len(fields) == 2:
		return "Series " + strings.ToUpper(fields[1])
	case fields[0] == "ipo":
		return "IPO"
	default:
		return "Seed"
	}
}
