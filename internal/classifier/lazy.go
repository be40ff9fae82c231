package classifier

import (
	"context"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
)

// LazyModel defers building an expensive model until the first prediction.
// The loader runs at most once; its result, error included, is kept for the
// life of the process.
type LazyModel struct {
	once  sync.Once
	load  func() (Model, error)
	model Model
	err   error
}

func Lazy(load func() (Model, error)) *LazyModel {
	return &LazyModel{load: load}
}

func (l *LazyModel) Predict(ctx context.Context, text string) (Prediction, error) {
	l.once.Do(func() {
		l.model, l.err = l.load()
	})
	if l.err != nil {
		return Prediction{}, l.err
	}
	return l.model.Predict(ctx, text)
}

// Close releases the underlying model if it was ever loaded.
func (l *LazyModel) Close() error {
	l.once.Do(func() {
		l.err = errors.New("model closed before first use")
	})

	if c, ok := l.model.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
