package discovery

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// Demo generator caps.
const (
	MaxDemoCompanies = 25
	MaxDemoVCs       = 50
)

var (
	demoCompanyNames = []string{
		"Nexus Therapeutics", "Bioforge Labs", "Quantum Biosciences", "Meridian Health",
		"Catalyst Pharma", "Genomic Innovations", "Precision Therapeutics", "Vitalis Bio",
		"Helix Diagnostics", "BioVantage Corp", "Zenith Medicines", "Apex Biotechnology",
		"Innovate Health Systems", "BioCatalyst Inc", "Therapeutic Solutions Group",
		"MedTech Dynamics", "Cellular Frontiers", "Regenerative Sciences", "BioSphere Labs",
		"Molecular Insights Corp", "HealthTech Innovations", "Biomedical Ventures",
		"Advanced Therapeutics", "Precision Medicine Co", "Genomics Research Institute",
	}
	demoIndustries = []string{
		"Biotechnology", "Pharmaceuticals", "Medical Devices", "Digital Health",
		"Diagnostics", "Gene Therapy", "Immunotherapy", "Drug Discovery",
	}
	demoLocations = []string{
		"San Francisco, CA", "Boston, MA", "Cambridge, MA", "New York, NY",
		"San Diego, CA", "Seattle, WA", "Research Triangle Park, NC", "Austin, TX",
		"London, UK", "Basel, Switzerland", "Copenhagen, Denmark", "Singapore",
	}
	demoFundingStages = []string{"Seed", "Series A", "Series B", "Series C", "Growth"}
	demoTitles        = []string{
		"Chief Executive Officer", "Chief Technology Officer", "Chief Scientific Officer",
		"Chief Medical Officer", "Chief Operating Officer", "Chief Financial Officer",
		"Vice President of Research", "Vice President of Development", "Head of Clinical Affairs",
		"Director of Business Development", "Co-Founder", "Founder and CEO",
	}
	demoSeniorities = []string{"c_suite", "founder", "vp", "director"}
	demoFirstNames  = []string{"John", "Sarah", "Michael", "Emily", "David", "Lisa", "Robert", "Anna", "James", "Maria"}
	demoLastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	demoVCNames     = []string{
		"Alexandra Chen", "Michael Rodriguez", "Sarah Kim", "David Thompson",
		"Emily Wang", "James Wilson", "Lisa Patel", "Robert Johnson",
		"Anna Kowalski", "Christopher Lee", "Maria Garcia", "Thomas Anderson",
	}
	demoVCFirms = []string{
		"Andreessen Horowitz", "Sequoia Capital", "Kleiner Perkins", "Accel Partners",
		"General Catalyst", "NEA", "Greylock Partners", "Bessemer Venture Partners",
		"First Round Capital", "Insight Partners", "Battery Ventures", "Lightspeed Venture Partners",
	}
	demoVCTitles = []string{
		"General Partner", "Managing Partner", "Venture Partner", "Principal",
		"Senior Associate", "Investment Partner", "Partner",
	}
	demoInvestors = []string{"Demo Venture Partners", "Innovation Capital", "TechStart Fund"}

	nonAlnum = regexp.MustCompile(`[^a-z0-9]`)
)

// Generator produces fake but stable demo records. The same key always
// yields the same record.
type Generator struct {
	seed uint64
	now  func() time.Time
}

// NewGenerator returns a generator whose output depends only on seed and keys.
func NewGenerator(seed uint64, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{seed: seed, now: now}
}

func (g *Generator) rng(key string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(key))
	return rand.New(rand.NewPCG(g.seed, h.Sum64()))
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func slug(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

// Companies returns up to MaxDemoCompanies generated leads with contacts.
func (g *Generator) Companies(n int) []dto.Lead {
	n = min(max(n, 0), MaxDemoCompanies)
	year := g.now().Year()
	leads := make([]dto.Lead, 0, n)
	for i := range n {
		name := demoCompanyNames[i%len(demoCompanyNames)]
		id := fmt.Sprintf("demo_company_%d", i+1)
		r := g.rng(id)
		domain := slug(name) + ".com"
		industry := pick(r, demoIndustries)
		funded := time.Date(year-r.IntN(3), time.Month(1+r.IntN(12)), 1+r.IntN(28), 0, 0, 0, 0, time.UTC)

		lead := dto.Lead{
			ID:                id,
			Company:           name,
			Website:           "https://" + domain,
			Domain:            domain,
			Industry:          industry,
			Description:       fmt.Sprintf("%s is a leading %s company focused on developing innovative therapeutic solutions for patients worldwide.", name, strings.ToLower(industry)),
			FundingStage:      pick(r, demoFundingStages),
			TotalFunding:      int64(5_000_000 + r.IntN(100_000_000)),
			Revenue:           int64(1_000_000 + r.IntN(50_000_000)),
			EmployeeCount:     10 + r.IntN(500),
			Location:          pick(r, demoLocations),
			FoundedYear:       2015 + r.IntN(9),
			LatestFundingDate: funded.Format("2006-01-02"),
			Investors:         demoInvestors,
			AIScore:           70 + r.IntN(30),
			Source:            SourceDemoLead,
		}
		lead.Contacts = g.Contacts(id, domain, 1+r.IntN(4))
		leads = append(leads, lead)
	}
	return leads
}

// Contacts returns count executives for a company. Roughly 70% carry an email.
func (g *Generator) Contacts(companyID, domain string, count int) []dto.LeadContact {
	contacts := make([]dto.LeadContact, 0, count)
	for i := range count {
		id := fmt.Sprintf("demo_contact_%s_%d", companyID, i+1)
		r := g.rng(id)
		first, last := pick(r, demoFirstNames), pick(r, demoLastNames)
		title := pick(r, demoTitles)
		seniority := pick(r, demoSeniorities)

		c := dto.LeadContact{
			ID:           id,
			Name:         first + " " + last,
			FirstName:    first,
			LastName:     last,
			Title:        title,
			RoleCategory: CategorizeRole(title, seniority),
			Seniority:    seniority,
			LinkedIn:     fmt.Sprintf("https://linkedin.com/in/%s-%s", strings.ToLower(first), strings.ToLower(last)),
			Location:     pick(r, demoLocations),
		}
		if domain != "" && r.Float64() >= 0.3 {
			c.Email = fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domain)
		}
		contacts = append(contacts, c)
	}
	return contacts
}

// VCs returns up to MaxDemoVCs generated investors.
func (g *Generator) VCs(n int) []dto.VCContact {
	n = min(max(n, 0), MaxDemoVCs)
	vcs := make([]dto.VCContact, 0, n)
	for i := range n {
		id := fmt.Sprintf("demo_vc_%d", i+1)
		r := g.rng(id)
		name := demoVCNames[i%len(demoVCNames)]
		firm := pick(r, demoVCFirms)
		domain := slug(firm) + ".com"
		first, last, _ := strings.Cut(name, " ")

		vc := dto.VCContact{
			LeadContact: dto.LeadContact{
				ID:           id,
				Name:         name,
				FirstName:    first,
				LastName:     last,
				Title:        pick(r, demoVCTitles) + " at " + firm,
				RoleCategory: RoleInvestor,
				Seniority:    "partner",
				LinkedIn:     "https://linkedin.com/in/" + strings.ToLower(strings.ReplaceAll(name, " ", "-")),
				Location:     pick(r, demoLocations),
			},
			Organization:       firm,
			OrganizationDomain: domain,
		}
		if r.Float64() >= 0.4 {
			vc.Email = strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@" + domain
		}
		vcs = append(vcs, vc)
	}
	return vcs
}
