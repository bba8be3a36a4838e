// Package s3types provides shared type definitions for the s3kit module.
package s3types

import (
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/spf13/afero"
)

// Format identifies a serialization format for tabular objects.
type Format string

// Predefined formats
const (
	// FormatCSV stores frames as comma-separated values
	FormatCSV Format = "csv"

	// FormatParquet stores frames as Apache Parquet
	FormatParquet Format = "parquet"

	// FormatExcel stores frames as .xlsx workbooks
	FormatExcel Format = "xlsx"

	// FormatJSON stores mappings as JSON documents
	FormatJSON Format = "json"
)

// Extension returns the key extension for the format, with the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Output selects the shape Load returns for tabular objects.
type Output string

// Predefined output kinds
const (
	// OutputFrame returns a *tabular.Frame
	OutputFrame Output = "frame"

	// OutputRecords returns [][]string including the header row
	OutputRecords Output = "records"

	// OutputBytes returns the raw object bytes without deserializing
	OutputBytes Output = "bytes"
)

// Object represents an S3 object with its basic metadata.
type Object struct {
	// Key is the S3 object key (path)
	Key string

	// Size is the object size in bytes
	Size int64

	// LastModified is when the object was last modified
	LastModified time.Time

	// ETag is the S3 entity tag for the object
	ETag string

	// StorageClass is the S3 storage class
	StorageClass string
}

// Identity describes the caller behind the active credentials.
type Identity struct {
	// Account is the AWS account ID
	Account string

	// ARN is the caller ARN
	ARN string

	// UserID is the unique caller identifier
	UserID string
}

// ClientConfig holds configuration for the session client.
// At most one credential source (Profile, static keys, CredentialsFile,
// EnvFile) may be set; none means the SDK default chain.
type ClientConfig struct {
	Region          string
	Profile         string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	CredentialsFile string
	EnvFile         string
	Endpoint        string
	ForcePathStyle  bool
	CustomAWSConfig *aws.Config
	Logger          *slog.Logger
	Filesystem      afero.Fs
}

// StoreConfig holds the stored defaults read on every store operation.
// Configure mutates it; per-call options shadow it for a single call.
type StoreConfig struct {
	// Bucket is the default bucket for operations that don't specify one
	Bucket string

	// KeyPrefix is joined in front of every object key
	KeyPrefix string

	// Format is the serialization format applied to extensionless
	// destination keys
	Format Format

	// Output is the default shape returned by Load for tabular objects
	Output Output

	// Overwrite permits writes to keys that already exist
	Overwrite bool

	// Encoding is the IANA name of the text encoding for CSV content.
	// Empty means UTF-8.
	Encoding string

	// CSVSeparator is the CSV field separator. Zero means ','.
	CSVSeparator rune
}

// CallConfig holds per-call overrides. Zero-valued fields fall through to
// the StoreConfig defaults; pointer fields distinguish "unset" from a
// meaningful false.
type CallConfig struct {
	Bucket    string
	Format    Format
	Output    Output
	Overwrite *bool
	Encoding  string
	Separator rune

	// Limit caps the number of keys a list operation returns. Zero means
	// no limit.
	Limit int32

	// Recursive controls list traversal below the prefix. Unset means
	// recursive.
	Recursive *bool
}

// Option is a functional option for configuring the session client.
type (
	Option func(*ClientConfig)
	// StoreOption is a functional option for Configure, mutating the
	// stored defaults.
	StoreOption func(*StoreConfig)
	// CallOption is a functional option shadowing the stored defaults for
	// a single operation.
	CallOption func(*CallConfig)
)
