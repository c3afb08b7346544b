// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// options holds optional overrides for AWS config loading.
type options struct {
	profile  string
	region   string
	endpoint string
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithEndpoint points the S3 client at an S3 compatible endpoint such as
// MinIO. Path style addressing is switched on with it.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// LoadAWSConfig loads AWS SDK v2 config honoring the profile and region
// options.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	o := collect(opts)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}

	return config.LoadDefaultConfig(ctx, loadOpts...)
}

// NewS3Client builds an S3 client from the shell's AWS setup plus opts.
func NewS3Client(ctx context.Context, opts ...Option) (*s3v2.Client, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	o := collect(opts)
	return s3v2.NewFromConfig(cfg, func(so *s3v2.Options) {
		if o.endpoint != "" {
			so.BaseEndpoint = awsv2.String(o.endpoint)
			so.UsePathStyle = true
		}
	}), nil
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
