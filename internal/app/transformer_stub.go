//go:build !hugot

package app

import (
	"github.com/cockroachdb/errors"

	"xsentiment/internal/classifier"
	"xsentiment/internal/config"
)

// ErrNoTransformer is returned for the hugot backend in binaries built without -tags hugot.
var ErrNoTransformer = errors.New("hugot classifier not compiled in; rebuild with -tags hugot")

func newTransformer(config.ClassifierConfig) (classifier.Model, error) {
	return nil, ErrNoTransformer
}
