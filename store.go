package s3kit

import (
	"strings"

	"github.com/croxio/s3kit/codec"
	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/validation"
	"github.com/croxio/s3kit/s3types"
)

// Store is the storage operations facade. It carries a mutable StoreConfig
// of defaults; every operation accepts call options that shadow those
// defaults for a single call without mutating them.
//
// A Store is not safe for concurrent Configure calls; operations themselves
// only read the configuration.
type Store struct {
	client *Client
	config s3types.StoreConfig
}

// Configure merges settings into the stored defaults.
func (s *Store) Configure(opts ...s3types.StoreOption) {
	for _, opt := range opts {
		opt(&s.config)
	}
}

// Config returns a copy of the stored defaults.
func (s *Store) Config() s3types.StoreConfig {
	return s.config
}

// callSettings is the effective configuration for one operation: the stored
// defaults with per-call overrides applied.
type callSettings struct {
	bucket    string
	prefix    string
	format    s3types.Format
	output    s3types.Output
	overwrite bool
	limit     int32
	recursive bool
	codecOpts codec.Options
}

func (s *Store) resolve(opts []s3types.CallOption) callSettings {
	call := s3types.CallConfig{}
	for _, opt := range opts {
		opt(&call)
	}

	settings := callSettings{
		bucket:    s.config.Bucket,
		prefix:    s.config.KeyPrefix,
		format:    s.config.Format,
		output:    s.config.Output,
		overwrite: s.config.Overwrite,
		limit:     call.Limit,
		recursive: true,
		codecOpts: codec.Options{
			Separator: s.config.CSVSeparator,
			Encoding:  s.config.Encoding,
		},
	}

	if call.Bucket != "" {
		settings.bucket = call.Bucket
	}
	if call.Format != "" {
		settings.format = call.Format
	}
	if call.Output != "" {
		settings.output = call.Output
	}
	if call.Overwrite != nil {
		settings.overwrite = *call.Overwrite
	}
	if call.Recursive != nil {
		settings.recursive = *call.Recursive
	}
	if call.Separator != 0 {
		settings.codecOpts.Separator = call.Separator
	}
	if call.Encoding != "" {
		settings.codecOpts.Encoding = call.Encoding
	}
	return settings
}

// requireBucket validates that an effective bucket is configured.
func (settings callSettings) requireBucket(op string) (string, error) {
	if settings.bucket == "" {
		return "", errors.NewError(op, errors.ErrMissingBucket)
	}
	if err := validation.ValidateBucketName(settings.bucket); err != nil {
		return "", err
	}
	return settings.bucket, nil
}

// resolveKey joins the configured prefix in front of an object key. Keys
// already carrying the prefix are kept as-is.
func (settings callSettings) resolveKey(key string) string {
	if settings.prefix == "" {
		return key
	}
	prefix := strings.TrimSuffix(settings.prefix, "/") + "/"
	key = strings.TrimPrefix(key, "/")
	if strings.HasPrefix(key, prefix) {
		return key
	}
	return prefix + key
}

// resolvePrefix joins the configured prefix in front of a listing prefix.
// An empty listing prefix lists under the configured prefix itself.
func (settings callSettings) resolvePrefix(prefix string) string {
	if prefix == "" {
		if settings.prefix == "" {
			return ""
		}
		return strings.TrimSuffix(settings.prefix, "/") + "/"
	}
	return settings.resolveKey(prefix)
}

// destinationKey resolves a write key: the prefix is applied and the key is
// validated. Extension fallback for serialized sources happens in the
// upload path, which knows the source kind.
func (settings callSettings) destinationKey(key string) (string, error) {
	resolved := settings.resolveKey(key)
	if err := validation.ValidateDestinationKey(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}

func (settings callSettings) sourceKey(key string) (string, error) {
	resolved := settings.resolveKey(key)
	if err := validation.ValidateObjectKey(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
