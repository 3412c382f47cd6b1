package minio

import (
	"context"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMinioSource_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioSource_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-ragmark"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	put := func(key, text string) {
		_, err := client.PutObject(ctx, bucket, key, strings.NewReader(text), int64(len(text)), minio.PutObjectOptions{})
		require.NoError(t, err)
	}

	put("notes/note_01.md", "first note")
	put("notes/note_02.txt", "second note")
	put("notes/meta.json", "{}")

	defer func() {
		for _, key := range []string{"notes/note_01.md", "notes/note_02.txt", "notes/meta.json"} {
			_ = client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
		}
	}()

	docs, err := New(client, bucket, "notes/").Load(ctx)
	require.NoError(t, err)

	require.Len(t, docs, 2)
	assert.Equal(t, "note_01.md", docs[0].ID)
	assert.Equal(t, "first note", docs[0].Text)
	assert.Equal(t, "note_02.txt", docs[1].ID)
	assert.Equal(t, "second note", docs[1].Text)
}
