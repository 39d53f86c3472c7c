// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo implements the I/O for running the demo, a guided tour of
// npviz. The script for the demo is in demo.py in this directory. Its
// content is embedded in this source file.
package demo // import "numpyviz.dev/npviz/demo"

import (
	"bufio"
	"io"
	"strings"

	_ "embed"
)

//go:embed demo.py
var demoText string

// Text returns the input text for the standard demo.
func Text() string {
	return demoText
}

// Programs returns the programs of the demo. Programs are separated by
// blank lines in demo.py and start with a comment describing them.
func Programs() []string {
	var progs []string
	for _, p := range strings.Split(demoText, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			progs = append(progs, p+"\n")
		}
	}
	return progs
}

// Run runs the demo. The arguments are the user's input, a Writer for
// the output and a function that runs one program. When the user hits a
// blank line, the next program is shown and run. If the user's input
// line has text, that is run instead and the script does not advance.
// "quit" terminates. A nil userInput ignores the user and just runs the
// script. An error from step stops the demo.
func Run(userInput io.Reader, output io.Writer, step func(src string) error) error {
	progs := Programs()
	var scan *bufio.Scanner
	if userInput != nil {
		scan = bufio.NewScanner(userInput)
	}
	advance := func() (bool, error) {
		if len(progs) == 0 {
			return false, nil
		}
		p := progs[0]
		progs = progs[1:]
		io.WriteString(output, p)
		return true, step(p)
	}
	// The first program introduces the demo; run it before accepting user input.
	if ok, err := advance(); !ok || err != nil {
		return err
	}
	for userInput == nil || scan.Scan() {
		if userInput != nil && len(scan.Bytes()) > 0 {
			line := strings.TrimSpace(scan.Text())
			if line == "quit" {
				break
			}
			if err := step(line + "\n"); err != nil {
				return err
			}
			continue
		}
		ok, err := advance()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	if scan == nil {
		return nil
	}
	return scan.Err()
}
