// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/md5" //nolint:gosec
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
)

// Ext is appended to the encoded key to form an entry's file or object name.
const Ext = ".json"

// Store persists cache entries by encoded key.
type Store interface {
	// Read returns the entry data and true, or false if no entry exists.
	Read(key string) ([]byte, bool, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// DefaultDir resolves the default cache directory, os.UserCacheDir()/linkctl.
// Returns ("", false) if it cannot be resolved.
func DefaultDir() (string, bool) {
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "linkctl"), true
	}
	return "", false
}

// EncodeKey hashes k with MD5 and returns the hex string.
func EncodeKey(k string) string {
	h := md5.New() //nolint:gosec
	_, _ = h.Write([]byte(k))
	return hex.EncodeToString(h.Sum(nil))
}

// FileStore keeps one file per entry in Dir.
type FileStore struct {
	Dir string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// EnsureDir creates the store directory if needed.
func (s *FileStore) EnsureDir() error {
	if s.Dir == "" {
		return errors.New("cache directory not set")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// EntryPath returns the path where the entry for an encoded key lives and
// whether a file currently exists there.
func (s *FileStore) EntryPath(key string) (string, bool) {
	p := filepath.Join(s.Dir, key+Ext)
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return p, true
	}
	return p, false
}

// Read implements Store.
func (s *FileStore) Read(key string) ([]byte, bool, error) {
	p, ok := s.EntryPath(key)
	if !ok {
		return nil, false, nil
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return b, true, nil
}

// Write implements Store. The data lands in a temp file first and is renamed
// over the entry so readers never see a partial write.
func (s *FileStore) Write(key string, data []byte) error {
	if err := s.EnsureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil { //nolint:mnd
		_ = tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	p, _ := s.EntryPath(key)
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Delete implements Store. Deleting a missing entry is not an error.
func (s *FileStore) Delete(key string) error {
	p, _ := s.EntryPath(key)
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Purge removes entries in dir older than the provided number of hours and
// returns how many were removed. If hours <= 0 it is a no-op.
func Purge(dir string, hours int) (int, error) {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return 0, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}

	removed := 0
	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.HasSuffix(path, Ext) {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				removed++
				log.Debugf("removed cache file %s, written %s", path, humanize.Time(info.ModTime()))
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return removed, fmt.Errorf("failed to purge cache: %w", err)
	}
	return removed, nil
}
