// ABOUTME: Web page text extraction grouped into heading-led sections
// ABOUTME: Walks h1/h2/h3/p in document order and derives a source name from the URL
package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sfbu/campus-assistant/internal/models"
)

// URLExtractor fetches pages and extracts section-structured text.
type URLExtractor struct {
	client *http.Client
}

// NewURLExtractor creates an extractor with a sane request timeout.
func NewURLExtractor() *URLExtractor {
	return &URLExtractor{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Extract fetches the URL and returns its content grouped into sections.
// Paragraphs before the first heading land in an unnamed section.
func (e *URLExtractor) Extract(ctx context.Context, rawURL string) ([]models.ExtractedSection, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", rawURL, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	source := SourceName(rawURL) + "-web"
	return sections(doc, source), nil
}

// sections walks headings and paragraphs in document order, grouping
// each run of paragraphs under the most recent heading.
func sections(doc *goquery.Document, source string) []models.ExtractedSection {
	var out []models.ExtractedSection
	var current string
	var content []string

	flush := func() {
		if len(content) > 0 {
			out = append(out, models.ExtractedSection{
				Section: current,
				Content: strings.Join(content, " "),
				Source:  source,
			})
			content = nil
		}
	}

	doc.Find("h1, h2, h3, p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		switch goquery.NodeName(sel) {
		case "h1", "h2", "h3":
			flush()
			current = text
		default:
			content = append(content, text)
		}
	})
	flush()

	return out
}

// SourceName derives a readable source name from a URL: meaningful path
// segments joined with hyphens, falling back to the host.
func SourceName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return "unknown-source"
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		// No path: use the first label of the host
		return strings.SplitN(parsed.Host, ".", 2)[0]
	}

	skip := map[string]bool{"index": true, "html": true, "php": true}
	var segments []string
	for _, seg := range strings.Split(path, "/") {
		seg = strings.TrimSuffix(seg, ".html")
		if seg == "" || skip[seg] || isDigits(seg) {
			continue
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return parsed.Host
	}
	return strings.Join(segments, "-")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
