// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/staranto/linkctl/internal/cacheutil"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	GetObject(context.Context, *s3v2.GetObjectInput, ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
	PutObject(context.Context, *s3v2.PutObjectInput, ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
	DeleteObject(context.Context, *s3v2.DeleteObjectInput, ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error)
}

// S3Store keeps one object per cache entry at s3://Bucket/Prefix/<key>.json.
type S3Store struct {
	Ctx    context.Context
	Client S3API
	Bucket string
	Prefix string
}

var _ cacheutil.Store = (*S3Store)(nil)

// NewS3Store returns an S3Store using client.
func NewS3Store(ctx context.Context, client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		Ctx:    ctx,
		Client: client,
		Bucket: bucket,
		Prefix: prefix,
	}
}

// ObjectKey returns the object key for an encoded cache key.
func (s *S3Store) ObjectKey(key string) string {
	return path.Join(s.Prefix, key+cacheutil.Ext)
}

func (s *S3Store) ctx() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// Read implements cacheutil.Store.
func (s *S3Store) Read(key string) ([]byte, bool, error) {
	objKey := s.ObjectKey(key)
	out, err := s.Client.GetObject(s.ctx(), &s3v2.GetObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(objKey),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get s3://%s/%s: %w", s.Bucket, objKey, err)
	}
	defer out.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read s3://%s/%s: %w", s.Bucket, objKey, err)
	}

	log.Debugf("read %d bytes from s3://%s/%s", len(data), s.Bucket, objKey)
	return data, true, nil
}

// Write implements cacheutil.Store.
func (s *S3Store) Write(key string, data []byte) error {
	objKey := s.ObjectKey(key)
	_, err := s.Client.PutObject(s.ctx(), &s3v2.PutObjectInput{
		Bucket:      awsv2.String(s.Bucket),
		Key:         awsv2.String(objKey),
		Body:        bytes.NewReader(data),
		ContentType: awsv2.String("application/json; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("failed to put s3://%s/%s: %w", s.Bucket, objKey, err)
	}
	return nil
}

// Delete implements cacheutil.Store.
func (s *S3Store) Delete(key string) error {
	objKey := s.ObjectKey(key)
	_, err := s.Client.DeleteObject(s.ctx(), &s3v2.DeleteObjectInput{
		Bucket: awsv2.String(s.Bucket),
		Key:    awsv2.String(objKey),
	})
	if err != nil {
		return fmt.Errorf("failed to delete s3://%s/%s: %w", s.Bucket, objKey, err)
	}
	return nil
}
