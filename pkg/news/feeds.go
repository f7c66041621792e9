package news

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/weppos/publicsuffix-go/publicsuffix"

	"github.com/mubarak-24/football-matches/internal/utils"
)

// RawItem is one unscored feed item as delivered by a FeedReader.
type RawItem struct {
	Title     string
	Link      string
	Published *time.Time
}

// FeedPage pairs a source name with the items it currently carries.
type FeedPage struct {
	Source string
	Items  []RawItem
}

// FeedReader yields pages in configured feed order. The ordering matters:
// dedup keeps the first occurrence of a title, so the reader must be stable
// across runs for results to be reproducible.
type FeedReader interface {
	Pages(ctx context.Context) []FeedPage
}

// RSSReader fetches and parses RSS/Atom feeds with gofeed. A feed that
// fails to download or parse yields nothing; the other feeds are unaffected.
type RSSReader struct {
	urls   []string
	parser *gofeed.Parser
}

func NewRSSReader(urls []string) *RSSReader {
	return &RSSReader{urls: urls, parser: gofeed.NewParser()}
}

func (r *RSSReader) Pages(ctx context.Context) []FeedPage {
	var pages []FeedPage
	ok := 0
	for _, feedURL := range r.urls {
		feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			utils.Log.Warnf("Skipping feed %s: %v", feedURL, err)
			continue
		}
		source := strings.TrimSpace(feed.Title)
		if source == "" {
			source = registeredDomain(feedURL)
		}

		var items []RawItem
		for _, item := range feed.Items {
			title := CleanTitle(item.Title)
			if title == "" {
				continue
			}
			items = append(items, RawItem{
				Title:     title,
				Link:      item.Link,
				Published: publishedTime(item),
			})
		}
		pages = append(pages, FeedPage{Source: source, Items: items})
		ok++
		utils.Log.Debugf("Loaded %d items from %s", len(items), source)
	}
	utils.Log.Infof("Fetched RSS feeds: %d/%d ok", ok, len(r.urls))
	return pages
}

// publishedTime prefers the published timestamp, falls back to updated,
// and normalizes to UTC. Feeds with neither yield nil.
func publishedTime(item *gofeed.Item) *time.Time {
	var t *time.Time
	if item.PublishedParsed != nil {
		t = item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		t = item.UpdatedParsed
	}
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// CleanTitle strips any embedded HTML markup and surrounding whitespace.
// Some feeds wrap headlines in tags or entities; scoring wants plain text.
func CleanTitle(s string) string {
	if strings.Contains(s, "<") || strings.Contains(s, "&") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

// registeredDomain is the fallback source name when a feed has no title:
// the registrable domain of the feed URL (feeds.bbci.co.uk -> bbci.co.uk).
func registeredDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	host := strings.ToLower(u.Hostname())
	if domain, err := publicsuffix.Domain(host); err == nil {
		return domain
	}
	return host
}
