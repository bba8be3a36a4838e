// Package errors provides error types and handling for s3kit operations.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed s3kit operation with context about what failed.
// It wraps the underlying AWS SDK or codec error with the operation name and
// the bucket/key it was acting on.
type Error struct {
	// Op is the operation that failed (e.g., "upload", "load", "delete")
	Op string

	// Bucket is the S3 bucket name (if applicable)
	Bucket string

	// Key is the S3 object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3kit.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3kit.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3kit.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3kit.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for the three failure categories: local validation,
// remote/transport failures, and session configuration.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3kit: invalid input")

	// ErrUnsupportedFormat indicates an extension with no registered codec
	ErrUnsupportedFormat = errors.New("s3kit: unsupported format")

	// ErrObjectExists indicates a refusal to overwrite an existing object
	ErrObjectExists = errors.New("s3kit: object already exists")

	// ErrObjectNotFound indicates that the requested object does not exist
	ErrObjectNotFound = errors.New("s3kit: object not found")

	// ErrBucketNotFound indicates that the requested bucket does not exist
	ErrBucketNotFound = errors.New("s3kit: bucket not found")

	// ErrMissingBucket indicates that no bucket was configured or supplied
	ErrMissingBucket = errors.New("s3kit: bucket not set")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("s3kit: access denied")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3kit: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3kit: invalid object key")

	// ErrAmbiguousCredentials indicates more than one credential source was supplied
	ErrAmbiguousCredentials = errors.New("s3kit: ambiguous credential configuration")

	// ErrInvalidCredentials indicates that the credential source is unusable
	ErrInvalidCredentials = errors.New("s3kit: invalid credentials")
)

// IsObjectNotFound checks if an error indicates that an object was not found.
func IsObjectNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsInvalidInput checks if an error indicates invalid input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnsupportedFormat checks if an error indicates an unrecognized file format.
func IsUnsupportedFormat(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat)
}

// IsObjectExists checks if an error indicates an overwrite refusal.
func IsObjectExists(err error) bool {
	return errors.Is(err, ErrObjectExists)
}
