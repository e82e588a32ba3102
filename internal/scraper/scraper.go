// Package scraper extracts company listings from biotech directory pages.
package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/sanitize"
)

// SourceName tags leads produced by this package.
const SourceName = "scraper"

const (
	itemSelector    = "[data-company], .company-item, .company-card"
	nameSelector    = ".company-name, h3, h4"
	summarySelector = ".description, .summary"
	linkSelector    = `a[href^="http"]`
	userAgent       = "Mozilla/5.0 (compatible; LeadDiscoveryBot/1.0)"
	maxBodyBytes    = 5 << 20
)

// Scraper fetches configured directory pages.
type Scraper struct {
	client  *http.Client
	sources []string
}

// New returns a scraper over the given page URLs.
func New(sources []string, client *http.Client) *Scraper {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Scraper{client: client, sources: sources}
}

// Search scrapes every source. Failing pages are reported in the returned
// error while the others still contribute leads.
func (s *Scraper) Search(ctx context.Context) ([]dto.Lead, error) {
	var (
		leads []dto.Lead
		errs  error
	)
	for _, src := range s.sources {
		page, err := s.scrape(ctx, src)
		if err != nil {
			if errs == nil {
				errs = err
			}
			continue
		}
		leads = append(leads, page...)
	}
	return leads, errs
}

func (s *Scraper) scrape(ctx context.Context, source string) ([]dto.Lead, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, eris.Wrapf(err, "build request for %s", source)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch %s", source)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetch %s: status %d", source, resp.StatusCode)
	}
	return Parse(io.LimitReader(resp.Body, maxBodyBytes), source)
}

// Parse extracts companies from a directory page. base resolves relative
// links.
func Parse(r io.Reader, base string) ([]dto.Lead, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, eris.Wrap(err, "parse directory page")
	}
	baseURL, _ := url.Parse(base)

	var leads []dto.Lead
	seen := map[string]struct{}{}
	doc.Find(itemSelector).Each(func(_ int, sel *goquery.Selection) {
		name := sanitize.Text(sel.Find(nameSelector).First().Text())
		if name == "" {
			name = sanitize.Text(sel.AttrOr("data-company", ""))
		}
		if name == "" {
			return
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		leads = append(leads, dto.Lead{
			Company:      name,
			Website:      website(sel, baseURL),
			Industry:     "Biotechnology",
			FundingStage: "Unknown",
			Description:  sanitize.Truncate(sanitize.Text(sel.Find(summarySelector).First().Text()), 500),
			Location:     "Unknown",
			Source:       SourceName,
			Contacts:     []dto.LeadContact{},
		})
	})
	return leads, nil
}

func website(sel *goquery.Selection, base *url.URL) string {
	href, ok := sel.Find(linkSelector).First().Attr("href")
	if !ok {
		href, ok = sel.Find("a[href]").First().Attr("href")
	}
	if !ok || href == "" {
		return ""
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
