// Package textclean strips the noise social posts carry (links, mentions,
// hashtag markers) before they are shown or classified.
package textclean

import (
	"regexp"
	"strings"
)

var (
	linkPattern    = regexp.MustCompile(`http\S*|www\.\S*`)
	mentionPattern = regexp.MustCompile(`@\w+`)
	hashtagPattern = regexp.MustCompile(`#+(\w+)`)
)

// Normalize removes links and @mentions, unwraps #hashtags to their word and
// collapses whitespace. The result is a fixed point: Normalize(Normalize(s)) ==
// Normalize(s).
func Normalize(text string) string {
	for {
		stripped := strip(text)
		if stripped == text {
			break
		}
		text = stripped
	}
	return strings.Join(strings.Fields(text), " ")
}

// strip runs one pass of every removal. Unwrapping a hashtag can glue two
// fragments into a new link or mention, so Normalize repeats it until nothing changes.
func strip(s string) string {
	s = linkPattern.ReplaceAllString(s, "")
	s = mentionPattern.ReplaceAllString(s, "")
	s = hashtagPattern.ReplaceAllString(s, "${1}")
	return strings.ReplaceAll(s, "#", "")
}
