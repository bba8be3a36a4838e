// Functional options for the client, the stored defaults, and single calls.
package s3kit

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"

	"github.com/croxio/s3kit/s3types"
)

// WithRegion sets the AWS region.
// If not specified, uses the region from the resolved credential source.
func WithRegion(region string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Region = region
	}
}

// WithProfile selects a named profile from the shared AWS config files.
// Mutually exclusive with the other credential sources.
func WithProfile(profile string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Profile = profile
	}
}

// WithStaticCredentials sets an explicit key pair. The session token may be
// empty. Mutually exclusive with the other credential sources.
func WithStaticCredentials(accessKeyID, secretAccessKey, sessionToken string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
		c.SessionToken = sessionToken
	}
}

// WithSharedCredentialsFile reads credentials from an AWS shared-credentials
// file at the given path. Mutually exclusive with the other credential
// sources.
func WithSharedCredentialsFile(path string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CredentialsFile = path
	}
}

// WithEnvFile reads AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, and optional
// AWS_SESSION_TOKEN and AWS_REGION from a dotenv file. Mutually exclusive
// with the other credential sources.
func WithEnvFile(path string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.EnvFile = path
	}
}

// WithEndpoint sets a custom S3 endpoint URL.
// This is useful for S3-compatible services or local testing with LocalStack.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithForcePathStyle forces path-style URLs instead of virtual-hosted style.
// Required for S3-compatible services that don't support virtual hosting.
func WithForcePathStyle(forcePathStyle bool) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithAWSConfig allows providing a custom AWS configuration, bypassing
// credential resolution entirely.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets a custom filesystem for upload and download file
// operations. Defaults to the OS filesystem.
func WithFilesystem(fsys afero.Fs) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Filesystem = fsys
	}
}

// WithBucket sets the default bucket for operations that don't specify one.
func WithBucket(bucket string) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.Bucket = bucket
	}
}

// WithKeyPrefix sets a prefix joined in front of every object key.
func WithKeyPrefix(prefix string) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.KeyPrefix = prefix
	}
}

// WithDefaultFormat sets the format applied to extensionless destination
// keys on frame writes. Parquet unless configured.
func WithDefaultFormat(format s3types.Format) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.Format = format
	}
}

// WithDefaultOutput sets the shape Load returns for tabular objects.
func WithDefaultOutput(output s3types.Output) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.Output = output
	}
}

// WithOverwrite sets whether writes may replace existing objects.
func WithOverwrite(overwrite bool) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.Overwrite = overwrite
	}
}

// WithTextEncoding sets the IANA text encoding for CSV content.
func WithTextEncoding(name string) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.Encoding = name
	}
}

// WithCSVSeparator sets the CSV field separator.
func WithCSVSeparator(sep rune) s3types.StoreOption {
	return func(c *s3types.StoreConfig) {
		c.CSVSeparator = sep
	}
}

// ForBucket overrides the bucket for a single call.
func ForBucket(bucket string) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Bucket = bucket
	}
}

// AsFormat overrides the default format for a single call.
func AsFormat(format s3types.Format) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Format = format
	}
}

// AsOutput overrides the output shape for a single call.
func AsOutput(output s3types.Output) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Output = output
	}
}

// Overwrite overrides the overwrite policy for a single call.
func Overwrite(overwrite bool) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Overwrite = &overwrite
	}
}

// TextEncoding overrides the CSV text encoding for a single call.
func TextEncoding(name string) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Encoding = name
	}
}

// CSVSeparator overrides the CSV field separator for a single call.
func CSVSeparator(sep rune) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Separator = sep
	}
}

// Limit caps the number of keys a list call returns.
func Limit(n int32) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Limit = n
	}
}

// Recursive controls whether a list call descends below "/" boundaries.
// Listing is recursive unless set to false.
func Recursive(recursive bool) s3types.CallOption {
	return func(c *s3types.CallConfig) {
		c.Recursive = &recursive
	}
}
