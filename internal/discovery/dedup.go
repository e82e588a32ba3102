package discovery

import "strings"

// Candidate is the identity of a company, contact or VC seen during a run.
type Candidate struct {
	SourceID string
	Email    string
	Name     string
	// Company scopes a person's name match; empty for companies.
	Company string
}

// ExistingIndex holds identities already present in the store. It is
// loaded once per run and only consulted when exclusion is requested.
type ExistingIndex struct {
	CompanySourceIDs map[string]struct{}
	CompanyNames     map[string]struct{}
	ContactSourceIDs map[string]struct{}
	ContactEmails    map[string]struct{}
}

// NewExistingIndex builds an index from raw identity lists.
func NewExistingIndex(companyIDs, companyNames, contactIDs, contactEmails []string) *ExistingIndex {
	return &ExistingIndex{
		CompanySourceIDs: toSet(companyIDs, strings.TrimSpace),
		CompanyNames:     toSet(companyNames, normalizeKey),
		ContactSourceIDs: toSet(contactIDs, strings.TrimSpace),
		ContactEmails:    toSet(contactEmails, normalizeKey),
	}
}

// Ledger is the seen-state of one dedup stage within one run.
type Ledger struct {
	sourceIDs map[string]struct{}
	emails    map[string]struct{}
	names     map[string]struct{}

	exclude        bool
	existingIDs    map[string]struct{}
	existingEmails map[string]struct{}
	existingNames  map[string]struct{}
}

func (l *Ledger) record(c Candidate) {
	if id := strings.TrimSpace(c.SourceID); id != "" {
		l.sourceIDs[id] = struct{}{}
	}
	if email := normalizeKey(c.Email); email != "" {
		l.emails[email] = struct{}{}
	}
	if key := nameKey(c); key != "" {
		l.names[key] = struct{}{}
	}
}

// Matcher reports whether a candidate duplicates something already known.
type Matcher struct {
	Reason string
	Match  func(c Candidate, l *Ledger) bool
}

// MatchSourceID matches a repeated upstream identifier.
var MatchSourceID = Matcher{
	Reason: "source_id",
	Match: func(c Candidate, l *Ledger) bool {
		id := strings.TrimSpace(c.SourceID)
		if id == "" {
			return false
		}
		return in(l.sourceIDs, id) || (l.exclude && in(l.existingIDs, id))
	},
}

// MatchEmail matches a known email, only when exclusion was requested.
var MatchEmail = Matcher{
	Reason: "email",
	Match: func(c Candidate, l *Ledger) bool {
		email := normalizeKey(c.Email)
		if email == "" || !l.exclude {
			return false
		}
		return in(l.emails, email) || in(l.existingEmails, email)
	},
}

// MatchName matches a case-insensitive name, scoped by company for people.
var MatchName = Matcher{
	Reason: "name",
	Match: func(c Candidate, l *Ledger) bool {
		key := nameKey(c)
		if key == "" {
			return false
		}
		return in(l.names, key) || (l.exclude && in(l.existingNames, key))
	},
}

// Deduper evaluates its matchers in order; the first match wins.
type Deduper struct {
	matchers []Matcher
	ledger   *Ledger
}

// NewDeduper builds a deduper over the given ranked matchers.
func NewDeduper(matchers []Matcher, ledger *Ledger) *Deduper {
	return &Deduper{matchers: matchers, ledger: ledger}
}

// NewCompanyDeduper ranks source id then name against the run and, when
// exclude is set, the stored companies.
func NewCompanyDeduper(existing *ExistingIndex, exclude bool) *Deduper {
	ledger := newLedger(exclude)
	if existing != nil {
		ledger.existingIDs = existing.CompanySourceIDs
		ledger.existingNames = existing.CompanyNames
	}
	return NewDeduper([]Matcher{MatchSourceID, MatchName}, ledger)
}

// NewContactDeduper ranks source id, email, then (company, name).
func NewContactDeduper(existing *ExistingIndex, exclude bool) *Deduper {
	ledger := newLedger(exclude)
	if existing != nil {
		ledger.existingIDs = existing.ContactSourceIDs
		ledger.existingEmails = existing.ContactEmails
	}
	return NewDeduper([]Matcher{MatchSourceID, MatchEmail, MatchName}, ledger)
}

// Check returns the reason of the first matching matcher. A candidate that
// matches nothing is recorded and reported as new.
func (d *Deduper) Check(c Candidate) (reason string, duplicate bool) {
	for _, m := range d.matchers {
		if m.Match(c, d.ledger) {
			return m.Reason, true
		}
	}
	d.ledger.record(c)
	return "", false
}

func newLedger(exclude bool) *Ledger {
	return &Ledger{
		sourceIDs: map[string]struct{}{},
		emails:    map[string]struct{}{},
		names:     map[string]struct{}{},
		exclude:   exclude,
	}
}

func nameKey(c Candidate) string {
	name := normalizeKey(c.Name)
	if name == "" {
		return ""
	}
	if company := normalizeKey(c.Company); company != "" {
		return company + "|" + name
	}
	return name
}

func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func in(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, ok := set[key]
	return ok
}

func toSet(values []string, norm func(string) string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v = norm(v); v != "" {
			out[v] = struct{}{}
		}
	}
	return out
}
