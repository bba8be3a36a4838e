// Package upload handles S3 object writes. Uploads are single PutObject
// calls; the payloads this module produces fit in memory, so there is no
// multipart path.
package upload

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/s3api"
)

// Uploader handles S3 upload operations.
type Uploader struct {
	s3Client s3api.S3API
}

// New creates a new Uploader instance.
func New(s3Client s3api.S3API) *Uploader {
	return &Uploader{
		s3Client: s3Client,
	}
}

// Put writes data to an object with the given content type.
func (u *Uploader) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := u.s3Client.PutObject(ctx, input); err != nil {
		if errors.IsAPINoSuchBucket(err) {
			return errors.NewError("upload", errors.ErrBucketNotFound).WithBucket(bucket).WithKey(key)
		}
		return errors.NewError("upload", err).WithBucket(bucket).WithKey(key)
	}
	return nil
}
