// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3API keyed by bucket/key.
type fakeS3 struct {
	objects map[string][]byte
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3v2.GetObjectInput, _ ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: awsv2.String("no such key")}
	}
	return &s3v2.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3v2.PutObjectInput, _ ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key)] = data
	return &s3v2.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3v2.DeleteObjectInput, _ ...func(*s3v2.Options)) (*s3v2.DeleteObjectOutput, error) {
	delete(f.objects, awsv2.ToString(in.Bucket)+"/"+awsv2.ToString(in.Key))
	return &s3v2.DeleteObjectOutput{}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Store(context.Background(), fake, "bucket", "links/cache")

	_, ok, err := s.Read("abc")
	assert.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Write("abc", []byte(`[]`)))
	assert.Contains(t, fake.objects, "bucket/links/cache/abc.json")

	data, ok, err := s.Read("abc")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	require.NoError(t, s.Delete("abc"))
	_, ok, _ = s.Read("abc")
	assert.False(t, ok)
}

func TestS3Store_ObjectKey(t *testing.T) {
	assert.Equal(t, "k.json", (&S3Store{}).ObjectKey("k"))
	assert.Equal(t, "p/k.json", (&S3Store{Prefix: "p/"}).ObjectKey("k"))
}

func TestS3Store_ReadError(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("access denied")
	s := &S3Store{Client: fake, Bucket: "bucket"}

	_, ok, err := s.Read("abc")
	assert.False(t, ok)
	assert.ErrorContains(t, err, "s3://bucket/abc.json")
}

func TestCollectOptions(t *testing.T) {
	o := collect([]Option{WithProfile("dev"), WithRegion("us-east-2"), WithEndpoint("http://localhost:9000")})
	assert.Equal(t, options{profile: "dev", region: "us-east-2", endpoint: "http://localhost:9000"}, o)
}
