package aws

import (
	"fmt"
	"strings"
)

// StringValue safely dereferences a string pointer, returning empty string if nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// S3Location splits an s3://bucket/key URL.
func S3Location(url string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(url, "s3://")
	if !ok {
		return "", "", fmt.Errorf("invalid S3 location %q (expected s3://bucket/key)", url)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid S3 location %q (expected s3://bucket/key)", url)
	}

	return bucket, key, nil
}
