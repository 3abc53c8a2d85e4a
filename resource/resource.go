// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package resource defines named sources of JSON text.
package resource

import (
	"io"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// A Resource is a named source of bytes. Each call to Open returns a new
// stream positioned at the start of the contents, which the caller must
// close.
type Resource interface {
	Open() (io.ReadCloser, error)
	String() string
}

// String returns a Resource whose contents are s, encoded as UTF-8.
func String(s string) Resource { return stringResource(s) }

type stringResource string

func (s stringResource) Open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(s))), nil
}

func (s stringResource) String() string { return "string" }

// File returns a Resource for the file at path in fsys.
func File(fsys afero.Fs, path string) Resource { return fileResource{fs: fsys, path: path} }

type fileResource struct {
	fs   afero.Fs
	path string
}

func (f fileResource) Open() (io.ReadCloser, error) {
	fd, err := f.fs.Open(f.path)
	if err != nil {
		return nil, errors.Wrapf(err, "open resource %q", f.path)
	}
	return fd, nil
}

func (f fileResource) String() string { return f.path }

// FS returns a Resource for the file with the given name in fsys. This is
// the usual way to refer to files embedded in a program with embed.FS.
func FS(fsys fs.FS, name string) Resource { return fsResource{fs: fsys, name: name} }

type fsResource struct {
	fs   fs.FS
	name string
}

func (f fsResource) Open() (io.ReadCloser, error) {
	fd, err := f.fs.Open(f.name)
	if err != nil {
		return nil, errors.Wrapf(err, "open resource %q", f.name)
	}
	return fd, nil
}

func (f fsResource) String() string { return f.name }
