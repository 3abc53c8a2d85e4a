// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/tailscale/hujson"

	"github.com/creachadair/jason"
)

// A formatter copies JSON documents to an output, reformatting them
// according to its configuration.
type formatter struct {
	fs     afero.Fs
	config jason.Config
	hujson bool // standardize JWCC input before reading
	logger log.Logger
}

// run formats each of the named files to out, or in if there are none.
// Failures are logged; run reports whether every input succeeded.
func (f *formatter) run(in io.Reader, out io.Writer, files []string) bool {
	if len(files) == 0 {
		return f.report("-", f.format(out, in))
	}
	ok := true
	for _, name := range files {
		if !f.report(name, f.formatFile(out, name)) {
			ok = false
		}
	}
	return ok
}

func (f *formatter) report(name string, err error) bool {
	if err != nil {
		level.Error(f.logger).Log("msg", "format failed", "file", name, "err", err)
		return false
	}
	level.Debug(f.logger).Log("msg", "formatted", "file", name)
	return true
}

func (f *formatter) formatFile(out io.Writer, name string) error {
	fd, err := f.fs.Open(name)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer fd.Close()
	return f.format(out, fd)
}

// format copies one JSON value from in to out, followed by a newline.
func (f *formatter) format(out io.Writer, in io.Reader) error {
	if f.hujson {
		data, err := io.ReadAll(in)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return errors.Wrap(err, "standardize input")
		}
		in = bytes.NewReader(std)
	}

	r := f.config.NewReader(in)
	w := f.config.NewWriter(out)
	if err := jason.Copy(w, r); err != nil {
		return err
	}
	if err := w.WriteLayout("\n"); err != nil {
		return err
	}
	return w.Close()
}
