package source

import (
	"context"
	stderrors "errors"

	"github.com/matzehuels/vischart/pkg/data"
	"github.com/matzehuels/vischart/pkg/errors"
)

// ErrNotFound marks a name the resolver does not know.
var ErrNotFound = stderrors.New("dataset not found")

// Resolver turns a dataset name into rows.
type Resolver interface {
	Resolve(ctx context.Context, name string) ([]data.Row, error)
}

// ResolverFunc adapts a function to [Resolver].
type ResolverFunc func(ctx context.Context, name string) ([]data.Row, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	return f(ctx, name)
}

func notFound(name string) error {
	return errors.Wrap(errors.ErrCodeInvalidData, ErrNotFound, "unknown data source: %s", name)
}

// IsNotFound reports whether err means the name is unknown to a resolver.
func IsNotFound(err error) bool {
	return stderrors.Is(err, ErrNotFound)
}

type chain []Resolver

// Chain returns a resolver that asks each resolver in turn. Names unknown to
// one resolver fall through to the next; any other error is returned as is.
// Nil resolvers are skipped.
func Chain(resolvers ...Resolver) Resolver {
	var c chain
	for _, r := range resolvers {
		if r != nil {
			c = append(c, r)
		}
	}
	return c
}

func (c chain) Resolve(ctx context.Context, name string) ([]data.Row, error) {
	if err := errors.ValidateDataName(name); err != nil {
		return nil, err
	}
	for _, r := range c {
		rows, err := r.Resolve(ctx, name)
		if err == nil {
			return rows, nil
		}
		if !IsNotFound(err) {
			return nil, err
		}
	}
	return nil, notFound(name)
}
