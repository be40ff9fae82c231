package textclean

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"plain", "good morning", "good morning"},
		{"mixed", "hello #world @bob http://x.co", "hello world"},
		{"https link", "read this https://example.com/a?b=c now", "read this now"},
		{"www link", "see www.example.org for more", "see for more"},
		{"mention at start", "@alice thanks!", "thanks!"},
		{"mention with underscore", "cc @bob_99 and @carol", "cc and"},
		{"hashtag keeps word", "#golang is #fun", "golang is fun"},
		{"double hashtag", "##tag", "tag"},
		{"stray hash", "C# rocks #", "C rocks"},
		{"collapse", "  lots   of\n\nspace\t", "lots of space"},
		{"email is a mention", "mail me@example.com", "mail me.com"},
		{"hashtag hiding a link", "ht#tp://x.co yes", "yes"},
		{"only noise", "@a #b http://c", "b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

var mentionLeft = regexp.MustCompile(`@\w`)

func FuzzNormalize(f *testing.F) {
	for _, seed := range []string{
		"",
		"hello #world @bob http://x.co",
		"##x @@y www.z.com",
		"ht#tp://x #@bob",
		"wW#w.x @#a",
		"héllo #mundo @josé",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		out := Normalize(in)

		assert.NotContains(t, out, "http")
		assert.NotContains(t, out, "www.")
		assert.NotContains(t, out, "#")
		assert.False(t, mentionLeft.MatchString(out), "mention left in %q", out)
		assert.Equal(t, strings.TrimSpace(out), out)
		assert.NotContains(t, out, "  ")
		assert.Equal(t, out, Normalize(out), "not idempotent for %q", in)
	})
}
