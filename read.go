package s3kit

import (
	"context"
	"path"
	"path/filepath"
	"strings"

	"github.com/croxio/s3kit/codec"
	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/operations/download"
	"github.com/croxio/s3kit/internal/operations/list"
	"github.com/croxio/s3kit/s3types"
	"github.com/croxio/s3kit/tabular"
)

// List returns the objects under a prefix with their metadata. Listing is
// recursive by default; Recursive(false) stops at "/" boundaries. Limit
// caps the number of results.
func (s *Store) List(ctx context.Context, prefix string, opts ...s3types.CallOption) ([]s3types.Object, error) {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("list")
	if err != nil {
		return nil, err
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return nil, err
	}

	config := &list.Config{
		Bucket: bucket,
		Prefix: settings.resolvePrefix(prefix),
		Limit:  settings.limit,
	}
	if !settings.recursive {
		// flat traversal stops at the next "/", so the prefix must end on one
		if config.Prefix != "" && !strings.HasSuffix(config.Prefix, "/") {
			config.Prefix += "/"
		}
		config.Delimiter = "/"
	}

	result, err := list.New(api).List(ctx, config)
	if err != nil {
		return nil, errors.NewError("list", err).WithBucket(bucket)
	}

	s.client.logger.Info("listed objects",
		"bucket", bucket, "prefix", config.Prefix, "count", len(result.Objects))
	return result.Objects, nil
}

// ListKeys returns plain object keys under a prefix.
func (s *Store) ListKeys(ctx context.Context, prefix string, opts ...s3types.CallOption) ([]string, error) {
	objects, err := s.List(ctx, prefix, opts...)
	if err != nil {
		return nil, err
	}

	keys := make([]string, len(objects))
	for i, obj := range objects {
		keys[i] = obj.Key
	}
	return keys, nil
}

// Exists reports whether an object exists, using a HEAD probe. A missing
// object is (false, nil); transport and authorization failures are errors.
func (s *Store) Exists(ctx context.Context, key string, opts ...s3types.CallOption) (bool, error) {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("exists")
	if err != nil {
		return false, err
	}
	resolved, err := settings.sourceKey(key)
	if err != nil {
		return false, err
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return false, err
	}
	return download.New(api).Exists(ctx, bucket, resolved)
}

// Load fetches an object and deserializes it by key extension. JSON keys
// yield a map[string]any; tabular keys yield a *tabular.Frame, [][]string
// records, or raw []byte depending on the configured output kind. Keys with
// an unrecognized extension fail with ErrUnsupportedFormat.
func (s *Store) Load(ctx context.Context, key string, opts ...s3types.CallOption) (any, error) {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("load")
	if err != nil {
		return nil, err
	}
	return s.loadOne(ctx, bucket, key, settings)
}

// LoadBatch fetches and deserializes several objects. Results are ordered
// like the input keys; the first failure aborts the batch.
func (s *Store) LoadBatch(ctx context.Context, keys []string, opts ...s3types.CallOption) ([]any, error) {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("load")
	if err != nil {
		return nil, err
	}

	results := make([]any, 0, len(keys))
	for _, key := range keys {
		value, err := s.loadOne(ctx, bucket, key, settings)
		if err != nil {
			return nil, err
		}
		results = append(results, value)
	}
	return results, nil
}

// LoadFrame fetches a tabular object as a frame regardless of the
// configured output kind.
func (s *Store) LoadFrame(ctx context.Context, key string, opts ...s3types.CallOption) (*tabular.Frame, error) {
	value, err := s.Load(ctx, key, append(opts, AsOutput(s3types.OutputFrame))...)
	if err != nil {
		return nil, err
	}
	frame, ok := value.(*tabular.Frame)
	if !ok {
		return nil, errors.NewError("loadFrame", errors.ErrUnsupportedFormat).
			WithKey(key).
			WithMessage("object is not tabular")
	}
	return frame, nil
}

// LoadJSON fetches a JSON document as a mapping.
func (s *Store) LoadJSON(ctx context.Context, key string, opts ...s3types.CallOption) (map[string]any, error) {
	value, err := s.Load(ctx, key, opts...)
	if err != nil {
		return nil, err
	}
	doc, ok := value.(map[string]any)
	if !ok {
		return nil, errors.NewError("loadJSON", errors.ErrUnsupportedFormat).
			WithKey(key).
			WithMessage("object is not a JSON document")
	}
	return doc, nil
}

func (s *Store) loadOne(ctx context.Context, bucket, key string, settings callSettings) (any, error) {
	resolved, err := settings.sourceKey(key)
	if err != nil {
		return nil, err
	}

	// unsupported extensions fail before the remote call
	if settings.output != s3types.OutputBytes && !codec.IsJSONKey(resolved) {
		if _, _, ok := codec.ForKey(resolved); !ok {
			return nil, errors.NewError("load", errors.ErrUnsupportedFormat).
				WithKey(resolved).
				WithMessage("no codec registered for extension " + path.Ext(strings.TrimSuffix(resolved, ".gz")))
		}
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return nil, err
	}

	data, err := download.New(api).Get(ctx, bucket, resolved)
	if err != nil {
		return nil, err
	}

	value, err := decodeObject(resolved, data, settings)
	if err != nil {
		return nil, err
	}

	s.client.logger.Info("loaded object", "bucket", bucket, "key", resolved, "bytes", len(data))
	return value, nil
}

// decodeObject dispatches object bytes to the codec matching the key
// extension, honoring the configured output kind.
func decodeObject(key string, data []byte, settings callSettings) (any, error) {
	if settings.output == s3types.OutputBytes {
		return data, nil
	}

	c, gzipped, ok := codec.ForKey(key)
	if gzipped {
		var err error
		if data, err = codec.Gunzip(data); err != nil {
			return nil, errors.NewError("load", err).WithKey(key)
		}
	}

	if codec.IsJSONKey(key) {
		doc, err := codec.DecodeDocument(data)
		if err != nil {
			return nil, errors.NewError("load", err).WithKey(key)
		}
		return doc, nil
	}

	if !ok {
		return nil, errors.NewError("load", errors.ErrUnsupportedFormat).
			WithKey(key).
			WithMessage("no codec registered for extension " + path.Ext(strings.TrimSuffix(key, ".gz")))
	}

	frame, err := c.Decode(data, settings.codecOpts)
	if err != nil {
		return nil, errors.NewError("load", err).WithKey(key)
	}

	if settings.output == s3types.OutputRecords {
		return frame.Records(), nil
	}
	return frame, nil
}

// Download copies an object to a local path verbatim, bytes preserved.
func (s *Store) Download(ctx context.Context, key, localPath string, opts ...s3types.CallOption) error {
	settings := s.resolve(opts)
	bucket, err := settings.requireBucket("download")
	if err != nil {
		return err
	}
	resolved, err := settings.sourceKey(key)
	if err != nil {
		return err
	}

	api, err := s.client.s3API(ctx)
	if err != nil {
		return err
	}

	target, err := s.downloadTarget(localPath, resolved)
	if err != nil {
		return err
	}

	if err := download.New(api).DownloadFile(ctx, s.client.fs, bucket, resolved, target); err != nil {
		return err
	}
	s.client.logger.Info("downloaded object", "bucket", bucket, "key", resolved, "path", target)
	return nil
}

// DownloadBatch copies several objects into a local directory, preserving
// each key's base name. The first failure aborts the batch.
func (s *Store) DownloadBatch(ctx context.Context, keys []string, dir string, opts ...s3types.CallOption) error {
	info, err := s.client.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return errors.NewError("download", errors.ErrInvalidInput).
			WithMessage("batch downloads require an existing directory destination")
	}

	for _, key := range keys {
		if err := s.Download(ctx, key, dir, opts...); err != nil {
			return err
		}
	}
	return nil
}

// downloadTarget resolves the local file path for a download. A directory
// destination gets the key's base name appended.
func (s *Store) downloadTarget(localPath, key string) (string, error) {
	info, err := s.client.fs.Stat(localPath)
	if err == nil && info.IsDir() {
		return filepath.Join(localPath, path.Base(key)), nil
	}

	parent := filepath.Dir(localPath)
	if parent != "." {
		if err := s.client.fs.MkdirAll(parent, 0o755); err != nil {
			return "", errors.NewError("download", err).WithKey(key)
		}
	}
	return localPath, nil
}
