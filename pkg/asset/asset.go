// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asset resolves the responder's asset directory: the name a
// requester sends in a DOWNLOAD or LS request is never trusted as a raw
// filesystem path. This is the Go equivalent of
// original_source/server/src/utils.c (get_asset_path/get_assets_dir),
// hardened against path traversal per SPEC_FULL's supplemented features.
package asset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the asset directory used when none is configured,
// matching the reference's hardcoded ASSETS_PATH.
const DefaultRoot = "./assets/"

// ErrEscapesRoot is returned when a requested name resolves outside Root.
var ErrEscapesRoot = errors.New("asset: name escapes the asset root")

// ErrNotFound is returned by OpenFile when the resolved asset cannot be
// opened or is a directory. List returns os.ReadDir's own error instead.
var ErrNotFound = errors.New("asset: not found")

// Root is an asset directory requests are resolved against.
type Root string

// Resolve joins name onto the root and rejects any result that would
// escape it through ".." components. An absolute name is joined under the
// root like a relative one rather than rejected.
func (r Root) Resolve(name string) (string, error) {
	root, err := filepath.Abs(string(r))
	if err != nil {
		return "", err
	}
	joined := filepath.Join(root, name)
	cleaned := filepath.Clean(joined)
	rel, err := filepath.Rel(root, cleaned)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrEscapesRoot
	}
	return cleaned, nil
}

// OpenFile resolves name and opens it for reading, returning the open file
// and its size, the Go equivalent of download_initial_response's
// fopen+get_file_size pair.
func (r Root) OpenFile(name string) (*os.File, int64, error) {
	path, err := r.Resolve(name)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, ErrNotFound
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, ErrNotFound
	}
	return f, info.Size(), nil
}

// Lister iterates non-directory entries of a Root, the equivalent of the
// reference's get_assets_dir() plus its DT_DIR filter in
// context_ls_update_with_ack().
type Lister struct {
	entries []os.DirEntry
	i       int
}

// List opens r's directory and returns a Lister over its non-directory
// entries.
func (r Root) List() (*Lister, error) {
	entries, err := os.ReadDir(string(r))
	if err != nil {
		return nil, err
	}
	filtered := entries[:0]
	for _, e := range entries {
		if !e.IsDir() {
			filtered = append(filtered, e)
		}
	}
	return &Lister{entries: filtered}, nil
}

// Next returns the next entry name, or ok=false once exhausted.
func (l *Lister) Next() (name string, ok bool) {
	if l.i >= len(l.entries) {
		return "", false
	}
	name = l.entries[l.i].Name()
	l.i++
	return name, true
}
