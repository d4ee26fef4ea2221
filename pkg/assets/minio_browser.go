package assets

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// MinioBrowser serves assets from an S3 compatible bucket. Object keys are
// treated as slash separated paths.
type MinioBrowser struct {
	client *minio.Client
	bucket string
}

func NewMinioBrowser(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioBrowser, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create minio client for %s", endpoint)
	}

	return &MinioBrowser{client: client, bucket: bucket}, nil
}

// CheckBucket fails when the bucket doesn't exist or can't be reached.
func (b *MinioBrowser) CheckBucket(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.bucket)
	if err != nil {
		return errors.Wrapf(err, "unable to check bucket %s", b.bucket)
	}

	if !exists {
		return errors.Errorf("bucket %s does not exist", b.bucket)
	}

	return nil
}

func (b *MinioBrowser) Browse(ctx context.Context, dir string, kind Kind) (*Listing, error) {
	rel, err := cleanDir(dir)
	if err != nil {
		return nil, err
	}

	prefix := ""
	if rel != "" {
		prefix = rel + "/"
	}

	listing := &Listing{Dir: rel, Dirs: []string{}, Files: []string{}}
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, errors.Wrapf(obj.Err, "unable to list %s/%s", b.bucket, prefix)
		}

		if strings.HasSuffix(obj.Key, "/") {
			listing.Dirs = append(listing.Dirs, strings.TrimSuffix(obj.Key, "/"))
			continue
		}

		if kind.Matches(path.Base(obj.Key)) {
			listing.Files = append(listing.Files, obj.Key)
		}
	}

	sort.Strings(listing.Dirs)
	sort.Strings(listing.Files)

	return listing, nil
}

func (b *MinioBrowser) Search(ctx context.Context, query string, kind Kind) ([]string, error) {
	matches := []string{}
	for obj := range b.client.ListObjects(ctx, b.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, errors.Wrapf(obj.Err, "unable to list %s", b.bucket)
		}

		if strings.HasSuffix(obj.Key, "/") || !kind.Matches(path.Base(obj.Key)) || !matchesQuery(obj.Key, query) {
			continue
		}

		matches = append(matches, obj.Key)
	}

	sort.Strings(matches)
	return matches, nil
}
