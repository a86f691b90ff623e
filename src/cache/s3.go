package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BielosX/wombat/poke-proxy/src/s3"
)

var keyReplacer = strings.NewReplacer("://", "_", "/", "_", ":", "_", "?", "_", "&", "_", "=", "_", "#", "_")

// S3Store keeps one JSON object per entry under a key prefix. Expiry is left
// to the bucket lifecycle configuration.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Store) objectKey(key string) string {
	return s.prefix + keyReplacer.Replace(key) + ".json"
}

func (s *S3Store) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.client.GetFile(ctx, s.bucket, s.objectKey(key))
	if errors.Is(err, s3.ErrNoSuchKey) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache entry: %w", err)
	}
	return &entry, nil
}

func (s *S3Store) Put(ctx context.Context, key string, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}
	return s.client.PutFile(ctx, bytes.NewReader(data), s.bucket, s.objectKey(key))
}

func (s *S3Store) Close() error {
	return nil
}
