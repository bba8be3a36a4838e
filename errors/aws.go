package errors

import (
	"errors"

	"github.com/aws/smithy-go"
)

// IsAPINotFound reports whether an SDK error carries a not-found API code.
// HeadObject reports missing keys as "NotFound", GetObject as "NoSuchKey".
func IsAPINotFound(err error) bool {
	switch APIErrorCode(err) {
	case "NoSuchKey", "NotFound", "404":
		return true
	}
	return false
}

// IsAPINoSuchBucket reports whether an SDK error names a missing bucket.
func IsAPINoSuchBucket(err error) bool {
	return APIErrorCode(err) == "NoSuchBucket"
}

// IsAPIAccessDenied reports whether an SDK error is an authorization failure.
func IsAPIAccessDenied(err error) bool {
	switch APIErrorCode(err) {
	case "AccessDenied", "Forbidden", "403":
		return true
	}
	return false
}

// APIErrorCode extracts the smithy API error code, or "" for non-API errors.
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
