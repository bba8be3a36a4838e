// Package delete handles S3 object deletion, single and batched.
package delete

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/s3api"
)

// Deleter handles deletion of S3 objects. Deleting a key that does not
// exist is a no-op, matching S3 semantics.
type Deleter struct {
	s3Client     s3api.S3API
	maxBatchSize int
}

// New creates a new Deleter.
func New(s3Client s3api.S3API) *Deleter {
	return &Deleter{
		s3Client:     s3Client,
		maxBatchSize: 1000, // S3 maximum
	}
}

// Delete removes objects by key. One key goes through DeleteObject; more go
// through DeleteObjects in chunks of the S3 maximum.
func (d *Deleter) Delete(ctx context.Context, bucket string, keys []string) error {
	switch len(keys) {
	case 0:
		return nil
	case 1:
		return d.deleteOne(ctx, bucket, keys[0])
	}

	for i := 0; i < len(keys); i += d.maxBatchSize {
		end := i + d.maxBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := d.deleteChunk(ctx, bucket, keys[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Deleter) deleteOne(ctx context.Context, bucket, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if _, err := d.s3Client.DeleteObject(ctx, input); err != nil {
		return errors.NewError("delete", err).WithBucket(bucket).WithKey(key)
	}
	return nil
}

func (d *Deleter) deleteChunk(ctx context.Context, bucket string, keys []string) error {
	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		identifiers = append(identifiers, types.ObjectIdentifier{
			Key: aws.String(key),
		})
	}

	input := &s3.DeleteObjectsInput{
		Bucket: aws.String(bucket),
		Delete: &types.Delete{
			Objects: identifiers,
			Quiet:   aws.Bool(true),
		},
	}

	output, err := d.s3Client.DeleteObjects(ctx, input)
	if err != nil {
		return errors.NewError("delete", err).WithBucket(bucket)
	}

	// Quiet mode only reports failures
	for _, derr := range output.Errors {
		code := aws.ToString(derr.Code)
		if code == "NoSuchKey" || code == "NotFound" {
			continue
		}
		return errors.NewError("delete", fmt.Errorf("%s: %s", code, aws.ToString(derr.Message))).
			WithBucket(bucket).
			WithKey(aws.ToString(derr.Key))
	}
	return nil
}
