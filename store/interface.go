package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Store persists named JSON documents. Load reports a missing key as
// (nil, false, nil), never as an error.
type Store interface {
	Load(ctx context.Context, key string) (json.RawMessage, bool, error)
	Save(ctx context.Context, key string, value json.RawMessage) error
	Remove(ctx context.Context, key string) error

	Close() error
}

// Batch is a set of document writes applied together.
type Batch struct {
	Puts    map[string]json.RawMessage
	Removes []string
}

// Batcher is implemented by stores that can apply a Batch atomically.
type Batcher interface {
	Apply(ctx context.Context, b Batch) error
}

// Write applies b through Batcher when available, otherwise one
// document at a time. Every write is attempted; errors are joined.
func Write(ctx context.Context, s Store, b Batch) error {
	if bs, ok := s.(Batcher); ok {
		return bs.Apply(ctx, b)
	}
	var errs []error
	for key, value := range b.Puts {
		if err := s.Save(ctx, key, value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, key := range b.Removes {
		if err := s.Remove(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
