package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// s3API is the subset of *s3.Client used here.
type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3KV implements KV with one S3 object per key under a prefix.
type S3KV struct {
	bucket string
	prefix string
	s3     s3API
}

func NewS3KV(s3Client s3API, bucket, prefix string) *S3KV {
	return &S3KV{
		bucket: bucket,
		prefix: prefix,
		s3:     s3Client,
	}
}

func (s *S3KV) objectKey(key string) string {
	return s.prefix + strings.ReplaceAll(key, ":", "/") + ".json"
}

func (s *S3KV) Get(ctx context.Context, key string) (string, bool, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s from S3: %w", key, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s from S3: %w", key, err)
	}
	return string(data), true, nil
}

func (s *S3KV) Set(ctx context.Context, key, value string) error {
	_, err := s.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(key)),
		Body:        strings.NewReader(value),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to put %s to S3: %w", key, err)
	}
	return nil
}

// S3Blob is a read-only S3 object.
type S3Blob struct {
	bucket string
	key    string
	s3     s3API
}

func NewS3Blob(s3Client s3API, bucket, key string) *S3Blob {
	return &S3Blob{
		bucket: bucket,
		key:    key,
		s3:     s3Client,
	}
}

func (s *S3Blob) Load(ctx context.Context) ([]byte, error) {
	resp, err := s.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s from S3: %w", s.key, err)
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
