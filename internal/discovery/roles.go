package discovery

import (
	"strings"
	"unicode"
)

// Role categories derived from a contact's title and seniority.
const (
	RoleFounder   = "Founder"
	RoleCSuite    = "C-Suite"
	RoleBoard     = "Board/Partner"
	RoleVP        = "VP"
	RoleDirector  = "Director"
	RoleInvestor  = "Investor/VC"
	RoleExecutive = "Executive"
)

var (
	cSuiteWords   = []string{"chief", "ceo", "cto", "cfo", "coo", "cso", "cmo", "cio", "cbo", "cmio", "president"}
	boardWords    = []string{"board", "chairman", "chairwoman", "chair"}
	investorWords = []string{"investor", "investors", "venture", "vc", "principal"}
	vpWords       = []string{"vp", "svp", "evp", "avp"}
	directorWords = []string{"director", "head"}

	investorPhrases = []string{"general partner", "managing partner", "venture partner", "investment partner"}

	senioritySynonyms = map[string]string{
		"founder":  RoleFounder,
		"owner":    RoleFounder,
		"c_suite":  RoleCSuite,
		"partner":  RoleBoard,
		"vp":       RoleVP,
		"head":     RoleDirector,
		"director": RoleDirector,
	}
)

// CategorizeRole maps a title (and, failing that, an upstream seniority tag)
// to a role category. Matching is on whole words so "Director" never reads
// as "CTO". "Vice president" is removed before the C-suite check, so a title
// is C-suite only when some other part of it names a C-suite office.
func CategorizeRole(title, seniority string) string {
	lower := strings.ToLower(title)
	words := titleWords(lower)

	switch {
	case strings.Contains(lower, "founder"):
		return RoleFounder
	case hasAny(titleWords(strings.ReplaceAll(lower, "vice president", " ")), cSuiteWords):
		return RoleCSuite
	case hasAny(words, boardWords):
		return RoleBoard
	case hasAny(words, investorWords) || containsAny(lower, investorPhrases):
		return RoleInvestor
	case hasAny(words, []string{"partner"}):
		return RoleBoard
	case hasAny(words, vpWords) || strings.Contains(lower, "vice president"):
		return RoleVP
	case hasAny(words, directorWords):
		return RoleDirector
	}

	if role, ok := senioritySynonyms[strings.ToLower(strings.TrimSpace(seniority))]; ok {
		return role
	}
	return RoleExecutive
}

func titleWords(lower string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, f := range strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		out[f] = struct{}{}
	}
	return out
}

func hasAny(words map[string]struct{}, candidates []string) bool {
	for _, c := range candidates {
		if _, ok := words[c]; ok {
			return true
		}
	}
	return false
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
