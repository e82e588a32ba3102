package discovery

import "github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"

// SourceDemoLead tags leads produced by the demo source.
const SourceDemoLead = "demo"

type curatedCompany struct {
	id, name, website, industry, description string
	stage                                    string
	funding                                  int64
	employees                                int
	location                                 string
	founded                                  int
	score                                    int
}

// curated is the fixed biotech dataset served in demo mode, in display order.
var curated = []curatedCompany{
	{"bt-001", "Moderna", "https://www.modernatx.com", "mRNA Therapeutics",
		"mRNA therapeutics and vaccines company developing treatments for infectious diseases, immuno-oncology, rare diseases, and cardiovascular disease.",
		"Public", 2_600_000_000, 2800, "Cambridge, MA, USA", 2010, 95},
	{"bt-002", "Ginkgo Bioworks", "https://www.ginkgobioworks.com", "Synthetic Biology",
		"Platform biotechnology company enabling customers to program cells as easily as we can program computers.",
		"Public", 719_000_000, 1200, "Boston, MA, USA", 2009, 88},
	{"bt-003", "Recursion Pharmaceuticals", "https://www.recursion.com", "AI Drug Discovery",
		"Clinical-stage biotechnology company industrializing drug discovery by decoding biology using AI and automation.",
		"Public", 525_000_000, 450, "Salt Lake City, UT, USA", 2013, 92},
	{"bt-004", "AbCellera", "https://www.abcellera.com", "Antibody Discovery",
		"Technology company that searches, decodes, and analyzes natural immune systems to find antibodies for drug development.",
		"Public", 554_000_000, 350, "Vancouver, BC, Canada", 2012, 85},
	{"bt-005", "Beam Therapeutics", "https://www.beamtx.com", "Gene Editing",
		"Biotechnology company developing precision genetic medicines through base editing to provide new treatment options.",
		"Public", 387_000_000, 280, "Cambridge, MA, USA", 2017, 90},
	{"bt-006", "Zymergen", "https://www.zymergen.com", "Synthetic Biology",
		"Biofacturing company that designs microbes to manufacture specialty chemicals and materials.",
		"Series C", 574_000_000, 750, "Emeryville, CA, USA", 2013, 82},
	{"bt-007", "Tempus", "https://www.tempus.com", "Precision Medicine",
		"Technology company that has built an operating system to battle cancer by using AI and machine learning.",
		"Series G", 1_100_000_000, 1800, "Chicago, IL, USA", 2015, 93},
	{"bt-008", "Grail", "https://www.grail.com", "Early Cancer Detection",
		"Healthcare company focused on early detection of cancer using breakthrough genomic sequencing technologies.",
		"Series C", 1_900_000_000, 1500, "Menlo Park, CA, USA", 2016, 91},
	{"bt-009", "Caribou Biosciences", "https://www.cariboubio.com", "CRISPR Gene Editing",
		"Leading CRISPR company developing transformative therapies that harness the immune system to fight disease.",
		"Public", 304_000_000, 180, "Berkeley, CA, USA", 2011, 87},
	{"bt-010", "Twist Bioscience", "https://www.twistbioscience.com", "DNA Synthesis",
		"Company enabling customers to succeed through its offering of high-quality synthetic DNA using silicon platform.",
		"Public", 253_000_000, 500, "South San Francisco, CA, USA", 2013, 84},
	{"bt-011", "Notable Labs", "https://www.notablelabs.com", "AI Drug Discovery",
		"Precision medicine company using AI and functional precision medicine to match cancer patients with treatments.",
		"Series A", 35_000_000, 45, "Foster City, CA, USA", 2017, 89},
	{"bt-012", "Benchling", "https://www.benchling.com", "Life Sciences Software",
		"Cloud platform for biotechnology research and development, informatics, and analytics.",
		"Series F", 425_000_000, 800, "San Francisco, CA, USA", 2012, 86},
}

func (c curatedCompany) lead() dto.Lead {
	return dto.Lead{
		ID:             c.id,
		Company:        c.name,
		Website:        c.website,
		Domain:         ResolveDomain("", c.website),
		Industry:       c.industry,
		Description:    c.description,
		FundingStage:   c.stage,
		TotalFunding:   c.funding,
		EmployeeCount:  c.employees,
		Location:       c.location,
		FoundedYear:    c.founded,
		PubliclyTraded: c.stage == "Public",
		AIScore:        c.score,
		Source:         SourceDemoLead,
		Contacts:       []dto.LeadContact{},
	}
}
