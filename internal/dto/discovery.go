package dto

// Range is an inclusive numeric bound; nil ends are open.
type Range struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// Contains reports whether v falls inside the range.
func (r *Range) Contains(v int64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// SearchRequest is the body of POST /api/discovery/search.
type SearchRequest struct {
	Industries          []string `json:"industries" validate:"omitempty,max=10,dive,max=100"`
	FundingStages       []string `json:"fundingStages" validate:"omitempty,max=10,dive,max=50"`
	Locations           []string `json:"locations" validate:"omitempty,max=20,dive,max=100"`
	MaxResults          int      `json:"maxResults" validate:"omitempty,min=1,max=500"`
	CompanySize         *Range   `json:"companySize,omitempty"`
	FundingRange        *Range   `json:"fundingRange,omitempty"`
	IncludeVCs          bool     `json:"includeVCs"`
	MaxVCs              int      `json:"maxVCs" validate:"omitempty,min=1,max=200"`
	ExcludeExisting     bool     `json:"excludeExisting"`
	SortByScore         bool     `json:"sortByScore"`
	AIScoring           bool     `json:"aiScoring"`
	IncludeSupplemental bool     `json:"includeSupplemental"`
}

// Lead is a company plus its discovered contacts.
type Lead struct {
	ID                string         `json:"id,omitempty"`
	Company           string         `json:"company"`
	Website           string         `json:"website,omitempty"`
	Domain            string         `json:"domain,omitempty"`
	Industry          string         `json:"industry,omitempty"`
	Description       string         `json:"description,omitempty"`
	FundingStage      string         `json:"fundingStage,omitempty"`
	TotalFunding      int64          `json:"totalFunding,omitempty"`
	Revenue           int64          `json:"revenue,omitempty"`
	EmployeeCount     int            `json:"employeeCount,omitempty"`
	Location          string         `json:"location,omitempty"`
	FoundedYear       int            `json:"foundedYear,omitempty"`
	LatestFundingDate string         `json:"latestFundingDate,omitempty"`
	PubliclyTraded    bool           `json:"publiclyTraded,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	LinkedInURL       string         `json:"linkedinUrl,omitempty"`
	Investors         []string       `json:"investors,omitempty"`
	RecentNews        []string       `json:"recentNews,omitempty"`
	AIScore           int            `json:"ai_score"`
	ScoreBreakdown    map[string]int `json:"scoreBreakdown,omitempty"`
	AIAnalysis        *AIAnalysis    `json:"aiAnalysis,omitempty"`
	Source            string         `json:"source,omitempty"`
	Contacts          []LeadContact  `json:"contacts"`
}

// LeadContact is a person discovered for a lead.
type LeadContact struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Title        string `json:"title,omitempty"`
	Email        string `json:"email,omitempty"`
	EmailLocked  bool   `json:"email_locked,omitempty"`
	RoleCategory string `json:"role_category,omitempty"`
	Seniority    string `json:"seniority,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	Location     string `json:"location,omitempty"`
}

// VCContact is an investor discovered independently of any lead.
type VCContact struct {
	LeadContact
	Organization       string `json:"organization,omitempty"`
	OrganizationDomain string `json:"organization_domain,omitempty"`
}

// AIAnalysis is the structured verdict returned by the LLM scorer.
type AIAnalysis struct {
	OverallScore         int      `json:"overallScore"`
	RelevanceScore       int      `json:"relevanceScore"`
	GrowthPotential      int      `json:"growthPotential"`
	TechMaturity         int      `json:"techMaturity"`
	Reasoning            string   `json:"reasoning"`
	ActionRecommendation string   `json:"actionRecommendation"`
	UrgencyLevel         string   `json:"urgencyLevel"`
	ContactPriority      []string `json:"contactPriority"`
	Fallback             bool     `json:"fallback,omitempty"`
}

// SearchResponse is the body returned by POST /api/discovery/search.
type SearchResponse struct {
	Results    []Lead      `json:"results"`
	VCs        []VCContact `json:"vcs,omitempty"`
	TotalCount int         `json:"totalCount"`
	Source     string      `json:"source"`
	Message    string      `json:"message,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// PromptSearchRequest is the body of POST /api/discovery/prompt.
type PromptSearchRequest struct {
	Prompt     string `json:"prompt" validate:"required,max=500"`
	MaxResults int    `json:"maxResults" validate:"omitempty,min=1,max=500"`
}
