package service

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

var (
	locationPattern = regexp.MustCompile(`(?i)\b(?:in|near|around|based in)\s+([a-z][a-z .'-]*?)(?:\s+(?:with|that|who|and|raising|at)\b|[,;.!?]|$)`)
	stagePattern    = regexp.MustCompile(`(?i)\b(pre-seed|seed|series\s+[a-e]|ipo|public)\b`)
	limitPattern    = regexp.MustCompile(`(?i)\b(\d{1,3})\s+(?:[a-z-]+\s+){0,3}?(?:companies|leads|startups|results|biotechs?)\b`)
	vcPattern       = regexp.MustCompile(`(?i)\b(vcs?|investors?|venture)\b`)
)

var industryKeywords = []struct {
	industry string
	keywords []string
}{
	{"Biotechnology", []string{"biotech", "biotechnology", "life science", "gene", "cell therapy", "mrna", "genomic"}},
	{"Pharmaceuticals", []string{"pharma", "drug", "therapeutic"}},
	{"Medical Devices", []string{"medtech", "medical device", "diagnostic"}},
	{"Digital Health", []string{"digital health", "healthtech", "health tech"}},
}

// PromptService turns free-form discovery prompts into search criteria.
type PromptService struct {
	DefaultMaxResults int
}

// NewPromptService creates a prompt parser. Non-positive defaults fall back to 25.
func NewPromptService(defaultMaxResults int) *PromptService {
	if defaultMaxResults <= 0 {
		defaultMaxResults = 25
	}
	return &PromptService{DefaultMaxResults: defaultMaxResults}
}

// Parse converts a prompt into a structured discovery search.
func (s *PromptService) Parse(req dto.PromptSearchRequest) (dto.SearchRequest, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return dto.SearchRequest{}, errors.New("prompt is required")
	}
	lower := strings.ToLower(prompt)

	search := dto.SearchRequest{
		MaxResults:  s.DefaultMaxResults,
		IncludeVCs:  vcPattern.MatchString(prompt),
		SortByScore: true,
	}
	if req.MaxResults > 0 {
		search.MaxResults = req.MaxResults
	} else if m := limitPattern.FindStringSubmatch(prompt); len(m) > 1 {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			search.MaxResults = min(n, 500)
		}
	}

	for _, entry := range industryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				search.Industries = append(search.Industries, entry.industry)
				break
			}
		}
	}

	for _, m := range stagePattern.FindAllString(prompt, -1) {
		stage := normaliseStage(m)
		if !slices.Contains(search.FundingStages, stage) {
			search.FundingStages = append(search.FundingStages, stage)
		}
	}

	if m := locationPattern.FindStringSubmatch(prompt); len(m) > 1 {
		if city := titleCase(m[1]); city != "" {
			search.Locations = []string{city}
		}
	}
	return search, nil
}

func normaliseStage(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	switch {
	case len(fields) == 2 && fields[0] == "series":
		return "Series " + strings.ToUpper(fields[1])
	case fields[0] == "ipo" || fields[0] == "public":
		return "Public"
	case fields[0] == "pre-seed":
		return "Pre-Seed"
	default:
		return "Seed"
	}
}

func titleCase(value string) string {
	parts := strings.Fields(value)
	for i, p := range parts {
		lower := strings.ToLower(p)
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}
