// Package download handles S3 object reads, either into memory or onto a
// local filesystem.
package download

import (
	"bytes"
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/s3api"
)

// Downloader handles S3 download operations.
type Downloader struct {
	s3Client s3api.S3API
}

// New creates a new Downloader instance.
func New(s3Client s3api.S3API) *Downloader {
	return &Downloader{
		s3Client: s3Client,
	}
}

// Download streams an object into an io.Writer.
func (d *Downloader) Download(ctx context.Context, bucket, key string, writer io.Writer) (int64, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	output, err := d.s3Client.GetObject(ctx, input)
	if err != nil {
		if errors.IsAPINotFound(err) {
			return 0, errors.NewObjectError("download", bucket, key, errors.ErrObjectNotFound)
		}
		if errors.IsAPINoSuchBucket(err) {
			return 0, errors.NewObjectError("download", bucket, key, errors.ErrBucketNotFound)
		}
		return 0, errors.NewObjectError("download", bucket, key, err)
	}
	defer output.Body.Close()

	written, err := io.Copy(writer, output.Body)
	if err != nil {
		return written, errors.NewObjectError("download", bucket, key, err)
	}
	return written, nil
}

// DownloadFile downloads an object to a local path on the given filesystem.
// The file is created if it doesn't exist and truncated if it does.
func (d *Downloader) DownloadFile(ctx context.Context, fs afero.Fs, bucket, key, path string) error {
	file, err := fs.Create(path)
	if err != nil {
		return errors.NewObjectError("downloadFile", bucket, key, err)
	}
	defer file.Close()

	if _, err := d.Download(ctx, bucket, key, file); err != nil {
		return err
	}
	return nil
}

// Get downloads an entire object and returns it as a byte slice.
func (d *Downloader) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.Download(ctx, bucket, key, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Exists probes an object with a HEAD request. A not-found API code is not
// an error; transport and authorization failures are.
func (d *Downloader) Exists(ctx context.Context, bucket, key string) (bool, error) {
	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if _, err := d.s3Client.HeadObject(ctx, input); err != nil {
		if errors.IsAPINotFound(err) {
			return false, nil
		}
		if errors.IsAPIAccessDenied(err) {
			return false, errors.NewObjectError("exists", bucket, key, errors.ErrAccessDenied)
		}
		return false, errors.NewObjectError("exists", bucket, key, err)
	}
	return true, nil
}
