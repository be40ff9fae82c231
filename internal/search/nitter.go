package search

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/mmcdole/gofeed"

	"xsentiment/internal/domain"
)

var statusID = regexp.MustCompile(`/status/(\d+)`)

// Nitter searches through a Nitter instance's RSS search feed. It needs no
// credentials, which makes it a fallback when no X token is available.
type Nitter struct {
	instance string
	client   *http.Client
}

func NewNitter(instance string, timeout time.Duration) *Nitter {
	if !strings.Contains(instance, "://") {
		instance = "https://" + instance
	}

	return &Nitter{
		instance: strings.TrimRight(instance, "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

func (n *Nitter) Search(ctx context.Context, query string, maxResults int, lang string) ([]domain.Post, error) {
	maxResults = max(maxResults, 1)
	u := fmt.Sprintf("%s/search/rss?f=tweets&q=%s", n.instance, url.QueryEscape(withLanguage(query, lang)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "curl/8.0")
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "nitter request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.RateLimited(errors.Newf("nitter: HTTP %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("nitter: HTTP %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "parse nitter feed")
	}

	posts := make([]domain.Post, 0, min(len(feed.Items), maxResults))
	for _, item := range feed.Items {
		if len(posts) >= maxResults {
			break
		}

		posts = append(posts, domain.Post{
			ID:        postID(item),
			Author:    authorOf(item),
			Text:      item.Title,
			CreatedAt: item.PublishedParsed,
		})
	}

	return posts, nil
}

// authorOf prefers the raw dc:creator, which Nitter fills with "@handle" and
// gofeed cannot parse into a Person.
func authorOf(item *gofeed.Item) string {
	var name string
	switch {
	case item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0:
		name = item.DublinCoreExt.Creator[0]
	case item.Author != nil:
		name = item.Author.Name
	}

	name = strings.TrimPrefix(strings.TrimSpace(name), "@")
	if name == "" {
		return unknownAuthor
	}
	return name
}

func postID(item *gofeed.Item) string {
	for _, s := range []string{item.Link, item.GUID} {
		if m := statusID.FindStringSubmatch(s); m != nil {
			return m[1]
		}
	}
	return generateID(item.GUID)
}

func generateID(guid string) string {
	hash := md5.Sum([]byte(guid))
	return fmt.Sprintf("%x", hash)[:12]
}
