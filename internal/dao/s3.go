package dao

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/a1s/gridview/internal/aws"
	"github.com/a1s/gridview/internal/model1"
)

// S3Accessor reads rows from an S3 object.
type S3Accessor struct {
	Factory
	bucket, key string
	format      Format
}

// NewS3Accessor returns an accessor for an s3://bucket/key location.
func NewS3Accessor(f Factory, location string) (*S3Accessor, error) {
	bucket, key, err := aws.S3Location(location)
	if err != nil {
		return nil, err
	}
	format, err := FormatFor(key)
	if err != nil {
		return nil, err
	}

	return &S3Accessor{Factory: f, bucket: bucket, key: key, format: format}, nil
}

// Location returns the S3 URL.
func (s *S3Accessor) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

// List downloads and decodes the object.
func (s *S3Accessor) List(ctx context.Context) (model1.Rows, error) {
	conn := s.Client()
	if conn == nil {
		return nil, aws.ErrNoConnection
	}
	var buff bytes.Buffer
	if err := download(ctx, conn, s.bucket, s.key, &buff); err != nil {
		return nil, err
	}

	return DecodeRows(s.format, buff.Bytes())
}

// S3Store keeps each key as an object under a bucket prefix.
type S3Store struct {
	Factory
	bucket, prefix string
}

// NewS3Store returns a store writing objects to bucket/prefix.
func NewS3Store(f Factory, bucket, prefix string) (*S3Store, error) {
	if bucket == "" {
		return nil, errors.New("s3 store requires a bucket")
	}
	return &S3Store{Factory: f, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (s *S3Store) objectKey(key string) string {
	return path.Join(s.prefix, key+".json")
}

// Get returns the object stored for a key.
func (s *S3Store) Get(key string) (string, bool, error) {
	conn := s.Client()
	if conn == nil {
		return "", false, aws.ErrNoConnection
	}
	ctx, cancel := conn.Context()
	defer cancel()

	var buff bytes.Buffer
	err := download(ctx, conn, s.bucket, s.objectKey(key), &buff)
	if errors.Is(err, aws.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return buff.String(), true, nil
}

// Set uploads the value for a key.
func (s *S3Store) Set(key, value string) error {
	conn := s.Client()
	if conn == nil {
		return aws.ErrNoConnection
	}
	ctx, cancel := conn.Context()
	defer cancel()

	return upload(ctx, conn, s.bucket, s.objectKey(key), strings.NewReader(value))
}

func download(ctx context.Context, conn aws.Connection, bucket, key string, w io.Writer) error {
	client := conn.S3()
	if client == nil {
		return fmt.Errorf("failed to get S3 client")
	}

	output, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return aws.WrapAWSError(err, "get object "+key)
	}
	defer output.Body.Close()

	if _, err := io.Copy(w, output.Body); err != nil {
		return fmt.Errorf("failed to read object data: %w", err)
	}

	return nil
}

func upload(ctx context.Context, conn aws.Connection, bucket, key string, r io.Reader) error {
	client := conn.S3()
	if client == nil {
		return fmt.Errorf("failed to get S3 client")
	}

	contentType := "application/json"
	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		Body:        r,
		ContentType: &contentType,
	})
	if err != nil {
		return aws.WrapAWSError(err, "put object "+key)
	}

	return nil
}
