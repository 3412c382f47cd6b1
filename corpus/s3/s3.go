package s3

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/ragmark/corpus"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency bounds parallel object downloads per Load.
const fetchConcurrency = 8

// Client is the subset of the S3 API the source needs.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Source loads a corpus from an S3 bucket prefix.
type Source struct {
	client Client
	bucket string
	prefix string
}

// New creates an S3 corpus source. prefix is prepended to all listings
// (e.g. "corpus/").
func New(client Client, bucket, prefix string) *Source {
	return &Source{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ corpus.Source = (*Source)(nil)

// Load implements corpus.Source. Keys are listed in S3 lexicographic order,
// which fixes the corpus enumeration order; bodies are fetched in parallel.
func (s *Source) Load(ctx context.Context) ([]corpus.Document, error) {
	keys, err := s.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]corpus.Document, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	downloader := manager.NewDownloader(s.client)

	for i, key := range keys {
		g.Go(func() error {
			buf := manager.NewWriteAtBuffer(nil)
			_, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
				Bucket: aws.String(s.bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return fmt.Errorf("download %q: %w", key, err)
			}
			docs[i] = corpus.Document{ID: path.Base(key), Text: string(buf.Bytes())}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (s *Source) listKeys(ctx context.Context) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if hasCorpusExt(key) {
				keys = append(keys, key)
			}
		}
	}

	return keys, nil
}

func hasCorpusExt(key string) bool {
	return strings.HasSuffix(key, ".md") || strings.HasSuffix(key, ".txt")
}
