package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/oauth2"

	"xsentiment/internal/domain"
)

const (
	DefaultXBaseURL = "https://api.twitter.com"

	// X rejects recent-search pages smaller than this.
	xMinResults = 10

	unknownAuthor = "unknown"
)

// X searches recent posts through the X API v2 with an app bearer token.
type X struct {
	baseURL string
	client  *http.Client
}

func NewX(bearerToken, baseURL string, timeout time.Duration) *X {
	if baseURL == "" {
		baseURL = DefaultXBaseURL
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: timeout})
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: bearerToken,
		TokenType:   "Bearer",
	}))
	client.Timeout = timeout

	return &X{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type xTweet struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	AuthorID  string     `json:"author_id"`
	CreatedAt *time.Time `json:"created_at"`
}

type xUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type xSearchResponse struct {
	Data     []xTweet `json:"data"`
	Includes struct {
		Users []xUser `json:"users"`
	} `json:"includes"`
}

type xProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (x *X) Search(ctx context.Context, query string, maxResults int, lang string) ([]domain.Post, error) {
	maxResults = max(maxResults, 1)

	params := url.Values{}
	params.Set("query", withLanguage(query, lang))
	params.Set("max_results", strconv.Itoa(max(maxResults, xMinResults)))
	params.Set("tweet.fields", "created_at,author_id")
	params.Set("expansions", "author_id")
	params.Set("user.fields", "username")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, x.baseURL+"/2/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "X API request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, domain.RateLimited(errors.Newf("X API: HTTP %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, problem(resp)
	}

	var body xSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "decode X API response")
	}

	users := make(map[string]string, len(body.Includes.Users))
	for _, u := range body.Includes.Users {
		users[u.ID] = u.Username
	}

	posts := make([]domain.Post, 0, min(len(body.Data), maxResults))
	for _, t := range body.Data {
		if len(posts) >= maxResults {
			break
		}

		author, ok := users[t.AuthorID]
		if !ok {
			author = unknownAuthor
		}

		posts = append(posts, domain.Post{
			ID:        t.ID,
			Author:    author,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}

	return posts, nil
}

func problem(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var p xProblem
	if err := json.Unmarshal(raw, &p); err == nil && (p.Title != "" || p.Detail != "") {
		return errors.Newf("X API error: HTTP %d: %s: %s", resp.StatusCode, p.Title, p.Detail)
	}
	return errors.Newf("X API error: HTTP %d", resp.StatusCode)
}
