// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jfmt reformats JSON documents.
//
// Usage:
//
//	jfmt [flags] [file...]
//
// Each named file, or standard input if there are none, is read and written
// to standard output in canonical form: indented by default, or compact
// with --compact.
package main

import (
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/afero"

	"github.com/creachadair/jason"
)

func main() {
	app := kingpin.New("jfmt", "Reformat JSON documents.")
	compact := app.Flag("compact", "Write compact output without indentation.").Short('c').Bool()
	charset := app.Flag("charset", "Charset of input without a detectable encoding, and of the output.").Default("UTF-8").String()
	maxDepth := app.Flag("max-depth", "Maximum nesting depth of objects and arrays.").Default("1000").Int()
	hujson := app.Flag("hujson", "Accept comments and trailing commas in the input.").Bool()
	verbose := app.Flag("verbose", "Log debugging details.").Short('v').Bool()
	files := app.Arg("file", "Input files (default: standard input).").Strings()
	kingpin.MustParse(app.Parse(os.Args[1:]))

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	f := &formatter{
		fs: afero.NewOsFs(),
		config: jason.Config{
			Layout:   !*compact,
			Strict:   true,
			Charset:  *charset,
			MaxDepth: *maxDepth,
		},
		hujson: *hujson,
		logger: logger,
	}
	if !f.run(os.Stdin, os.Stdout, *files) {
		os.Exit(1)
	}
}
