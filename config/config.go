// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the configuration state shared by the scanner,
// parser, resolver, evaluator, renderer and transport.
package config // import "numpyviz.dev/npviz/config"

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DebugFlags lists the words accepted by SetDebug, in order.
var DebugFlags = []string{
	"eval",    // Print each computation as it happens.
	"panic",   // Don't catch panics.
	"parse",   // Print the syntax tree of each statement.
	"resolve", // Print each operation node as it is emitted.
	"tokens",  // Print the tokens as they are scanned.
}

type Config struct {
	precision     int
	precisionSet  bool
	aliases       []string
	debug         map[string]bool
	output        io.Writer
	errOutput     io.Writer
	mediaDir      string
	addr          string
	origins       []string
	dbPath        string
	historyTTL    time.Duration
	pruneInterval time.Duration
	maxSource     int
}

// Precision returns the number of decimal places results are rounded to
// for display. The default is 2.
func (c *Config) Precision() int {
	if !c.precisionSet {
		return 2
	}
	return c.precision
}

func (c *Config) SetPrecision(digits int) {
	c.precision = digits
	c.precisionSet = true
}

// Aliases returns the names under which the numeric library may be referenced
// in module-function calls such as np.sum(x). The default is "np".
func (c *Config) Aliases() []string {
	if len(c.aliases) == 0 {
		return []string{"np"}
	}
	return c.aliases
}

func (c *Config) SetAliases(names ...string) {
	c.aliases = append([]string(nil), names...)
}

func (c *Config) Debug(flag string) bool {
	return c.debug[flag]
}

// SetDebug sets the named debug flag. It reports whether the flag is known.
func (c *Config) SetDebug(flag string, state bool) bool {
	i := sort.SearchStrings(DebugFlags, flag)
	if i >= len(DebugFlags) || DebugFlags[i] != flag {
		return false
	}
	if c.debug == nil {
		c.debug = make(map[string]bool)
	}
	c.debug[flag] = state
	return true
}

// Output returns the writer to be used for program output.
func (c *Config) Output() io.Writer {
	if c.output == nil {
		return os.Stdout
	}
	return c.output
}

func (c *Config) SetOutput(output io.Writer) {
	c.output = output
}

// ErrOutput returns the writer to be used for error output.
func (c *Config) ErrOutput() io.Writer {
	if c.errOutput == nil {
		return os.Stderr
	}
	return c.errOutput
}

func (c *Config) SetErrOutput(output io.Writer) {
	c.errOutput = output
}

// MediaDir returns the root directory for rendered artifacts.
// The default is "media" in the working directory.
func (c *Config) MediaDir() string {
	if c.mediaDir == "" {
		return "media"
	}
	return c.mediaDir
}

func (c *Config) SetMediaDir(dir string) {
	c.mediaDir = dir
}

// VideoDir returns the directory holding per-node artifacts.
func (c *Config) VideoDir() string {
	return filepath.Join(c.MediaDir(), "videos")
}

func (c *Config) Addr() string {
	if c.addr == "" {
		return "localhost:5000"
	}
	return c.addr
}

func (c *Config) SetAddr(addr string) {
	c.addr = addr
}

// Origins returns the origins allowed to make cross-origin requests.
func (c *Config) Origins() []string {
	if c.origins == nil {
		return []string{"http://127.0.0.1:3000", "https://numpyviz.vercel.app"}
	}
	return c.origins
}

func (c *Config) SetOrigins(origins ...string) {
	c.origins = append([]string{}, origins...)
}

// DBPath returns the path of the run history database.
// An empty path disables the history.
func (c *Config) DBPath() string {
	return c.dbPath
}

func (c *Config) SetDBPath(path string) {
	c.dbPath = path
}

// HistoryTTL returns how long an unused run stays in the history
// and how long a rendered artifact is kept.
func (c *Config) HistoryTTL() time.Duration {
	if c.historyTTL <= 0 {
		return 24 * time.Hour
	}
	return c.historyTTL
}

func (c *Config) SetHistoryTTL(d time.Duration) {
	c.historyTTL = d
}

func (c *Config) PruneInterval() time.Duration {
	if c.pruneInterval <= 0 {
		return 5 * time.Minute
	}
	return c.pruneInterval
}

func (c *Config) SetPruneInterval(d time.Duration) {
	c.pruneInterval = d
}

// MaxSource returns the largest source text, in bytes, the server accepts.
func (c *Config) MaxSource() int {
	if c.maxSource <= 0 {
		return 64 << 10
	}
	return c.maxSource
}

func (c *Config) SetMaxSource(n int) {
	c.maxSource = n
}
