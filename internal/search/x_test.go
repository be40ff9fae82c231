package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsentiment/internal/domain"
)

const recentSearchBody = `{
  "data": [
    {"id": "1", "text": "first #go", "author_id": "u1", "created_at": "2025-03-01T10:00:00.000Z"},
    {"id": "2", "text": "second", "author_id": "u2"},
    {"id": "3", "text": "third", "author_id": "u9", "created_at": "2025-03-01T10:02:00.000Z"}
  ],
  "includes": {"users": [{"id": "u1", "username": "alice"}, {"id": "u2", "username": "bob"}]},
  "meta": {"result_count": 3}
}`

func newTestX(t *testing.T, h http.HandlerFunc) *X {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewX("secret-token", srv.URL, 5*time.Second)
}

func TestX_Search(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets/search/recent", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		q := r.URL.Query()
		assert.Equal(t, "golang lang:en", q.Get("query"))
		assert.Equal(t, "20", q.Get("max_results"))
		assert.Equal(t, "created_at,author_id", q.Get("tweet.fields"))
		assert.Equal(t, "author_id", q.Get("expansions"))
		assert.Equal(t, "username", q.Get("user.fields"))

		_, _ = fmt.Fprint(w, recentSearchBody)
	})

	posts, err := x.Search(context.Background(), "golang", 20, "en")

	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "alice", posts[0].Author)
	assert.Equal(t, "first #go", posts[0].Text)
	require.NotNil(t, posts[0].CreatedAt)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), posts[0].CreatedAt.UTC())

	assert.Equal(t, "bob", posts[1].Author)
	assert.Nil(t, posts[1].CreatedAt)

	assert.Equal(t, "unknown", posts[2].Author)
}

func TestX_SmallPagesAreTruncated(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("max_results"))
		assert.Equal(t, "golang", r.URL.Query().Get("query"))
		_, _ = fmt.Fprint(w, recentSearchBody)
	})

	posts, err := x.Search(context.Background(), "golang", 2, "")

	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "1", posts[0].ID)
	assert.Equal(t, "2", posts[1].ID)
}

func TestX_NoResults(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{"meta": {"result_count": 0}}`)
	})

	posts, err := x.Search(context.Background(), "nothing", 10, "")

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestX_RateLimited(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"title":"Too Many Requests","detail":"Too Many Requests","type":"about:blank","status":429}`)
	})

	_, err := x.Search(context.Background(), "golang", 10, "")

	require.Error(t, err)
	assert.Equal(t, domain.KindRateLimited, domain.Kind(err))
}

func TestX_UpstreamError(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"title":"Unauthorized","detail":"Unauthorized","type":"about:blank","status":401}`)
	})

	_, err := x.Search(context.Background(), "golang", 10, "")

	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.Kind(err))
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestX_BadJSON(t *testing.T) {
	x := newTestX(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `{not json`)
	})

	_, err := x.Search(context.Background(), "golang", 10, "")

	assert.ErrorContains(t, err, "decode X API response")
}
