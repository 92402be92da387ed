package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Archive stores a copy of each generated PDF in object storage
// under exports/{slug}/{timestamp}.pdf.
type S3Archive struct {
	client *minio.Client
	bucket string
}

// NewS3Archive connects to the object store and ensures the bucket
// exists.
func NewS3Archive(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*S3Archive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", bucket, err)
		}
	}

	return &S3Archive{client: client, bucket: bucket}, nil
}

// ArchivePDF uploads the PDF in the background. Best effort: a failed
// upload never fails the export that produced it.
func (a *S3Archive) ArchivePDF(slug string, data []byte) {
	if a == nil {
		return
	}
	key := fmt.Sprintf("exports/%s/%s.pdf", slug, time.Now().UTC().Format("20060102T150405Z"))
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(data), int64(len(data)),
			minio.PutObjectOptions{ContentType: "application/pdf"})
		if err != nil {
			log.Printf("export: archive %s: %v", key, err)
		}
	}()
}
