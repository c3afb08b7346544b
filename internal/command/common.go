// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/linkctl/internal/aws"
	"github.com/staranto/linkctl/internal/cache"
	"github.com/staranto/linkctl/internal/cacheutil"
	"github.com/staranto/linkctl/internal/links"
	"github.com/staranto/linkctl/internal/meta"
)

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildStore returns the S3 store when --s3-bucket is set and the file store
// otherwise.
func BuildStore(ctx context.Context, cmd *cli.Command) (cacheutil.Store, error) {
	if bucket := cmd.String("s3-bucket"); bucket != "" {
		var opts []aws.Option
		if r := cmd.String("region"); r != "" {
			opts = append(opts, aws.WithRegion(r))
		}
		if p := cmd.String("profile"); p != "" {
			opts = append(opts, aws.WithProfile(p))
		}
		if e := cmd.String("s3-endpoint"); e != "" {
			opts = append(opts, aws.WithEndpoint(e))
		}

		client, err := aws.NewS3Client(ctx, opts...)
		if err != nil {
			return nil, err
		}
		log.Debugf("using s3 store s3://%s/%s", bucket, cmd.String("s3-prefix"))
		return aws.NewS3Store(ctx, client, bucket, cmd.String("s3-prefix")), nil
	}

	return fileStore(cmd)
}

func fileStore(cmd *cli.Command) (*cacheutil.FileStore, error) {
	dir := cmd.String("cache-dir")
	if dir == "" {
		d, ok := cacheutil.DefaultDir()
		if !ok {
			return nil, errors.New("cannot resolve a cache directory, set --cache-dir")
		}
		dir = d
	}
	log.Debugf("using file store %s", dir)
	return cacheutil.NewFileStore(dir), nil
}

// BuildCache constructs the link cache from the store and lookup flags.
func BuildCache(ctx context.Context, cmd *cli.Command) (*cache.Cache, error) {
	store, err := BuildStore(ctx, cmd)
	if err != nil {
		return nil, err
	}

	policy, err := cache.ParseCorruptPolicy(cmd.String("on-corrupt"))
	if err != nil {
		return nil, err
	}

	return cache.New(store,
		cache.WithCorruptPolicy(policy),
		cache.WithRand(links.NewRand(cmd.Int64("seed"))),
	), nil
}

// CommandBuilder constructs a cli.Command for linkctl subcommands using a
// consistent pattern. The builder wires metadata and applies the store flags
// every subcommand needs.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags:  append(cb.Flags, NewStoreFlags(cb.Name, cb.Meta.Config.Source)...),
		Action: cb.Action,
	}
}
