// Package list implements paginated object listing.
package list

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/croxio/s3kit/s3types"
)

// S3Interface defines the S3 operations we need.
type S3Interface interface {
	ListObjectsV2(
		ctx context.Context,
		input *s3.ListObjectsV2Input,
		opts ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Lister handles listing of S3 objects.
type Lister struct {
	client S3Interface
}

// New creates a new Lister.
func New(client S3Interface) *Lister {
	return &Lister{
		client: client,
	}
}

// Config holds configuration for list operations.
type Config struct {
	Bucket string
	Prefix string

	// Delimiter groups keys below the prefix; "/" yields a flat listing.
	Delimiter string

	// Limit caps the total number of objects returned. Zero means all.
	Limit int32
}

// Result represents the result of a list operation.
type Result struct {
	Objects        []s3types.Object
	CommonPrefixes []string
}

const maxPageSize = 1000 // S3 maximum

// List pages through ListObjectsV2 until the listing is exhausted or the
// configured limit is reached.
func (l *Lister) List(ctx context.Context, config *Config) (*Result, error) {
	result := &Result{}

	var continuationToken *string
	for {
		pageSize := int32(maxPageSize)
		if config.Limit > 0 {
			if remaining := config.Limit - int32(len(result.Objects)); remaining < pageSize {
				pageSize = remaining
			}
		}

		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(config.Bucket),
			Prefix:            aws.String(config.Prefix),
			MaxKeys:           aws.Int32(pageSize),
			ContinuationToken: continuationToken,
		}
		if config.Delimiter != "" {
			input.Delimiter = aws.String(config.Delimiter)
		}

		output, err := l.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range output.Contents {
			result.Objects = append(result.Objects, s3types.Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
				ETag:         aws.ToString(obj.ETag),
				StorageClass: string(obj.StorageClass),
			})
		}
		for _, prefix := range output.CommonPrefixes {
			result.CommonPrefixes = append(result.CommonPrefixes, aws.ToString(prefix.Prefix))
		}

		if config.Limit > 0 && int32(len(result.Objects)) >= config.Limit {
			result.Objects = result.Objects[:config.Limit]
			return result, nil
		}
		if !aws.ToBool(output.IsTruncated) {
			return result, nil
		}
		continuationToken = output.NextContinuationToken
	}
}
