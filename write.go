package s3kit

import (
	"context"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/croxio/s3kit/codec"
	"github.com/croxio/s3kit/errors"
	del "github.com/croxio/s3kit/internal/operations/delete"
	"github.com/croxio/s3kit/internal/operations/download"
	"github.com/croxio/s3kit/internal/operations/upload"
	"github.com/croxio/s3kit/s3types"
	"github.com/croxio/s3kit/tabular"
)

// Upload writes a source to an object. The source may be a local file path
// (string, copied verbatim under the key as given), a map[string]any
// (serialized to JSON, with ".json" appended when the key has no extension),
// a *tabular.Frame (serialized per the destination extension, or the default
// format with its extension appended when the key has none), or raw []byte.
//
// With the overwrite policy off, an existing destination fails with
// ErrObjectExists before anything is written. The HEAD-then-PUT sequence is
// not atomic; a concurrent writer can still win the race.
func (s *Store) Upload(ctx context.Context, source any, key string, opts ...s3types.CallOption) error {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("upload")
	if err != nil {
		return err
	}
	return s.uploadOne(ctx, bucket, source, key, settings)
}

// UploadBatch writes several sources to their paired keys. Sources and keys
// must have equal lengths; items are processed in input order and the first
// failure aborts the batch.
func (s *Store) UploadBatch(ctx context.Context, sources []any, keys []string, opts ...s3types.CallOption) error {
	if len(sources) != len(keys) {
		return errors.NewError("upload", errors.ErrInvalidInput).
			WithMessage("sources and keys must have the same length")
	}

	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("upload")
	if err != nil {
		return err
	}

	for i, source := range sources {
		if err := s.uploadOne(ctx, bucket, source, keys[i], settings); err != nil {
			return err
		}
	}
	return nil
}

// UploadFile copies a local file to an object verbatim, sniffing the
// content type from the file bytes.
func (s *Store) UploadFile(ctx context.Context, localPath, key string, opts ...s3types.CallOption) error {
	return s.Upload(ctx, localPath, key, opts...)
}

// UploadFrame serializes a frame to an object per the destination
// extension.
func (s *Store) UploadFrame(ctx context.Context, frame *tabular.Frame, key string, opts ...s3types.CallOption) error {
	return s.Upload(ctx, frame, key, opts...)
}

// UploadJSON serializes a mapping to a JSON object.
func (s *Store) UploadJSON(ctx context.Context, doc map[string]any, key string, opts ...s3types.CallOption) error {
	return s.Upload(ctx, doc, key, opts...)
}

func (s *Store) uploadOne(ctx context.Context, bucket string, source any, key string, settings callSettings) error {
	resolved, err := settings.destinationKey(key)
	if err != nil {
		return err
	}
	resolved = defaultExtension(resolved, source, settings)

	data, contentType, err := s.encodeSource(source, resolved, settings)
	if err != nil {
		return err
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return err
	}

	if !settings.overwrite {
		exists, err := download.New(api).Exists(ctx, bucket, resolved)
		if err != nil {
			return err
		}
		if exists {
			return errors.NewError("upload", errors.ErrObjectExists).
				WithBucket(bucket).
				WithKey(resolved)
		}
	}

	if err := upload.New(api).Put(ctx, bucket, resolved, data, contentType); err != nil {
		return err
	}
	s.client.logger.Info("uploaded object",
		"bucket", bucket, "key", resolved, "bytes", len(data), "content_type", contentType)
	return nil
}

// defaultExtension appends a fallback extension to an extensionless key for
// serialized sources. Mappings always become .json objects; frames get the
// default format's extension. File paths and raw bytes keep the key as
// given.
func defaultExtension(key string, source any, settings callSettings) string {
	if path.Ext(key) != "" {
		return key
	}
	switch source.(type) {
	case map[string]any:
		return key + ".json"
	case *tabular.Frame:
		return key + settings.format.Extension()
	}
	return key
}

// encodeSource serializes an upload source for its destination key.
func (s *Store) encodeSource(source any, key string, settings callSettings) (data []byte, contentType string, err error) {
	switch src := source.(type) {
	case string:
		return s.readLocalFile(src, key)
	case map[string]any:
		return encodeDocument(src, key)
	case *tabular.Frame:
		return encodeFrame(src, key, settings)
	case []byte:
		return src, mimetype.Detect(src).String(), nil
	default:
		return nil, "", errors.NewError("upload", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("source must be a file path, map[string]any, *tabular.Frame, or []byte")
	}
}

func (s *Store) readLocalFile(localPath, key string) ([]byte, string, error) {
	data, err := afero.ReadFile(s.client.fs, localPath)
	if err != nil {
		return nil, "", errors.NewError("upload", err).WithKey(key)
	}
	return data, mimetype.Detect(data).String(), nil
}

func encodeDocument(doc map[string]any, key string) ([]byte, string, error) {
	if !codec.IsJSONKey(key) {
		return nil, "", errors.NewError("upload", errors.ErrUnsupportedFormat).
			WithKey(key).
			WithMessage("mappings can only be written to .json keys")
	}

	data, err := codec.EncodeDocument(doc)
	if err != nil {
		return nil, "", errors.NewError("upload", err).WithKey(key)
	}
	return wrapGzip(data, key, codec.JSONContentType)
}

func encodeFrame(frame *tabular.Frame, key string, settings callSettings) ([]byte, string, error) {
	c, gzipped, ok := codec.ForKey(key)
	if !ok || codec.IsJSONKey(key) {
		return nil, "", errors.NewError("upload", errors.ErrUnsupportedFormat).
			WithKey(key).
			WithMessage("no tabular codec registered for extension " + path.Ext(strings.TrimSuffix(key, ".gz")))
	}

	data, err := c.Encode(frame, settings.codecOpts)
	if err != nil {
		return nil, "", errors.NewError("upload", err).WithKey(key)
	}
	if !gzipped {
		return data, c.ContentType(), nil
	}
	return wrapGzip(data, key, c.ContentType())
}

// wrapGzip compresses encoded bytes when the key carries a ".gz" layer.
func wrapGzip(data []byte, key, contentType string) ([]byte, string, error) {
	if !strings.HasSuffix(strings.ToLower(key), ".gz") {
		return data, contentType, nil
	}

	compressed, err := codec.Gzip(data)
	if err != nil {
		return nil, "", errors.NewError("upload", err).WithKey(key)
	}
	return compressed, "application/gzip", nil
}

// Delete removes a single object. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string, opts ...s3types.CallOption) error {
	return s.DeleteBatch(ctx, []string{key}, opts...)
}

// DeleteBatch removes several objects, chunking through the batch delete
// API above one key. Missing keys are skipped silently.
func (s *Store) DeleteBatch(ctx context.Context, keys []string, opts ...s3types.CallOption) error {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("delete")
	if err != nil {
		return err
	}

	resolved := make([]string, len(keys))
	for i, key := range keys {
		if resolved[i], err = settings.sourceKey(key); err != nil {
			return err
		}
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return err
	}

	if err := del.New(api).Delete(ctx, bucket, resolved); err != nil {
		return err
	}
	s.client.logger.Info("deleted objects", "bucket", bucket, "count", len(resolved))
	return nil
}
