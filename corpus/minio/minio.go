// Package minio loads corpus documents from MinIO and S3-compatible
// object storage.
//
// Every object under the configured prefix whose key ends in ".md" or
// ".txt" becomes one document. The document ID is the base name of the
// object key, so keys must not collide on their base names.
package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/hupe1980/ragmark/corpus"
	"github.com/minio/minio-go/v7"
)

// Source loads documents from a MinIO bucket.
type Source struct {
	client *minio.Client
	bucket string
	prefix string
}

// New creates a new MinIO corpus source.
// prefix is prepended to all listings (e.g. "notes/").
func New(client *minio.Client, bucket, prefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ corpus.Source = (*Source)(nil)

// Load lists all markdown and text objects under the prefix and fetches
// their contents. Documents are returned sorted by object key.
func (s *Source) Load(ctx context.Context) ([]corpus.Document, error) {
	var keys []string

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list objects %q: %w", s.prefix, obj.Err)
		}

		ext := strings.ToLower(path.Ext(obj.Key))
		if ext == ".md" || ext == ".txt" {
			keys = append(keys, obj.Key)
		}
	}

	sort.Strings(keys)

	docs := make([]corpus.Document, 0, len(keys))

	for _, key := range keys {
		text, err := s.fetch(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("fetch object %q: %w", key, err)
		}

		docs = append(docs, corpus.Document{
			ID:   path.Base(key),
			Text: text,
		})
	}

	return docs, nil
}

func (s *Source) fetch(ctx context.Context, key string) (string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return "", err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		errResp := minio.ToErrorResponse(err)
		if errResp.Code == "NoSuchKey" || errResp.Code == "NotFound" {
			return "", fmt.Errorf("object %q disappeared during load", key)
		}
		return "", err
	}

	return string(data), nil
}
