package news

import (
	"context"
	"net/http"

	"github.com/mmcdole/gofeed"
	"github.com/rotisserie/eris"

	"github.com/pferreira82/ferreira-cto-lead-discovery-sub000/internal/dto"
)

// FeedSourceName tags leads produced from RSS/Atom feeds.
const FeedSourceName = "rss"

// FeedReader scans industry RSS/Atom feeds for funding announcements.
type FeedReader struct {
	parser *gofeed.Parser
	urls   []string
}

// NewFeedReader returns a reader over the given feed URLs.
func NewFeedReader(urls []string, httpClient *http.Client) *FeedReader {
	p := gofeed.NewParser()
	if httpClient != nil {
		p.Client = httpClient
	}
	return &FeedReader{parser: p, urls: urls}
}

// Search reads every feed. A failing feed is reported in the returned error
// while the others still contribute leads.
func (r *FeedReader) Search(ctx context.Context) ([]dto.Lead, error) {
	var (
		leads []dto.Lead
		errs  error
	)
	for _, u := range r.urls {
		feed, err := r.parser.ParseURLWithContext(u, ctx)
		if err != nil {
			if errs == nil {
				errs = eris.Wrapf(err, "read feed %s", u)
			}
			continue
		}
		for _, item := range feed.Items {
			lead, ok := LeadFromArticle(Article{
				Title:       item.Title,
				Description: item.Description,
				Content:     item.Content,
				URL:         item.Link,
			}, FeedSourceName)
			if ok {
				leads = append(leads, lead)
			}
		}
	}
	return leads, errs
}
