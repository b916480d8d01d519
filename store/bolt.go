package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const documentBucket = "documents"

// BoltStore keeps each document under its key in a single bbolt bucket.
type BoltStore struct {
	db *bbolt.DB
}

// OpenBolt opens (creating if needed) a bbolt file at path.
func OpenBolt(path string) (*BoltStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	s := &BoltStore{db: db}
	if err := s.ensureBucket(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *BoltStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *BoltStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if s == nil || s.db == nil {
		return nil, false, fmt.Errorf("storage is not configured")
	}

	var out json.RawMessage
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		if bucket == nil {
			return fmt.Errorf("document bucket is missing")
		}
		// bbolt values are only valid for the life of the transaction.
		if v := bucket.Get([]byte(key)); v != nil {
			out = bytes.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	return out, out != nil, nil
}

func (s *BoltStore) Save(ctx context.Context, key string, value json.RawMessage) error {
	return s.Apply(ctx, Batch{Puts: map[string]json.RawMessage{key: value}})
}

func (s *BoltStore) Remove(ctx context.Context, key string) error {
	return s.Apply(ctx, Batch{Removes: []string{key}})
}

// Apply writes the whole batch in one bbolt transaction.
func (s *BoltStore) Apply(ctx context.Context, b Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(documentBucket))
		if bucket == nil {
			return fmt.Errorf("document bucket is missing")
		}
		for key, value := range b.Puts {
			if strings.TrimSpace(key) == "" {
				return fmt.Errorf("document key is required")
			}
			if err := bucket.Put([]byte(key), value); err != nil {
				return fmt.Errorf("put %s: %w", key, err)
			}
		}
		for _, key := range b.Removes {
			if err := bucket.Delete([]byte(key)); err != nil {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *BoltStore) ensureBucket() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(documentBucket)); err != nil {
			return fmt.Errorf("create document bucket: %w", err)
		}
		return nil
	})
}
