// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"numpyviz.dev/npviz/run"
)

const verbose = false

func TestAll(t *testing.T) {
	var err error
	check := func() {
		if err != nil {
			t.Fatal(err)
		}
	}
	media := t.TempDir()
	dir, err := os.Open("testdata")
	check()
	names, err := dir.Readdirnames(0)
	check()
	for _, name := range names {
		if !strings.HasSuffix(name, ".np") {
			continue
		}
		t.Log(name)
		var data []byte
		path := filepath.Join("testdata", name)
		data, err = os.ReadFile(path)
		check()
		text := string(data)
		lines := strings.Split(text, "\n")
		// Will have a trailing empty string.
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			lines = lines[:len(lines)-1]
		}
		lineNum := 1
		errCount := 0
		for len(lines) > 0 {
			// Assemble the input to one example.
			input, output, length := getText(t, path, lineNum, lines)
			if input == nil {
				break
			}
			if verbose {
				fmt.Printf("%s:%d: %s\n", path, lineNum, input)
			}
			if !runTest(t, path, lineNum, media, input, output) {
				errCount++
				if errCount > 3 {
					t.Fatal("too many errors")
				}
			}
			lines = lines[length:]
			lineNum += length
		}
	}
}

func runTest(t *testing.T, name string, lineNum int, media string, input, output []string) bool {
	shouldFail := strings.HasSuffix(name, "_fail.np")
	in := strings.Join(input, "\n")
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	status := npviz([]string{"npviz", "-s", "-m", media, "-e", in}, strings.NewReader(""), stdout, stderr)
	if shouldFail {
		want := strings.Join(output, "\n")
		if status == 0 || !strings.Contains(stderr.String(), want) {
			t.Errorf("\nexpected execution failure at %s:%d:\n%s\ngot (status %d):\n\t%s\nwant:\n\t%s",
				name, lineNum, in, status, stderr, want)
			return false
		}
		return true
	}
	if status != 0 || stderr.Len() != 0 {
		t.Fatalf("\nexecution failure (%s) at %s:%d:\n%s", stderr, name, lineNum, in)
	}
	result := strings.Split(stdout.String(), "\n")
	if !equal(result, output) {
		t.Errorf("\n%s:%d:\n\t%s\ngot:\n\t%s\nwant:\n\t%s",
			name, lineNum,
			strings.Join(input, "\n\t"),
			strings.Join(result, "\n\t"),
			strings.Join(output, "\n\t"))
		return false
	}
	return true
}

func equal(a, b []string) bool {
	// Split leaves an empty trailing line.
	if len(a) > 0 && a[len(a)-1] == "" {
		a = a[:len(a)-1]
	}
	if len(a) != len(b) {
		return false
	}
	for i, s := range a {
		if strings.TrimSpace(s) != strings.TrimSpace(b[i]) {
			return false
		}
	}
	return true
}

func getText(t *testing.T, fileName string, lineNum int, lines []string) (input, output []string, length int) {
	// Skip blank and initial comment lines.
	for _, line := range lines {
		if len(line) > 0 && !strings.HasPrefix(line, "#") {
			break
		}
		length++
	}

	// Input ends at tab-indented line.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if strings.HasPrefix(line, "\t") {
			break
		}
		input = append(input, line)
		length++
	}

	// Output ends at non-blank, non-tab-indented line.
	// Indented "#" is expected blank line in output.
	for _, line := range lines[length:] {
		line = strings.TrimRight(line, " \t")
		if line != "" && !strings.HasPrefix(line, "\t") {
			break
		}
		output = append(output, strings.TrimPrefix(line, "\t"))
		length++
	}
	for len(output) > 0 && output[len(output)-1] == "" {
		output = output[:len(output)-1]
	}
	for i, line := range output {
		if line == "#" {
			output[i] = ""
		}
	}

	return // Will return nil if no more tests exist.
}

func TestJSON(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	status := npviz([]string{"npviz", "-j", "-p", "3", "-e", "a = np.array([1, 2]) / 3"}, strings.NewReader(""), stdout, stderr)
	if status != 0 {
		t.Fatalf("status %d: %s", status, stderr)
	}
	var sums []run.Summary
	if err := json.Unmarshal(stdout.Bytes(), &sums); err != nil {
		t.Fatalf("%v in %s", err, stdout)
	}
	if len(sums) != 1 || sums[0].Output != "[[0.333 0.667]]" || sums[0].Message == "" {
		t.Errorf("got %+v", sums)
	}
}

func TestStdin(t *testing.T) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	src := "import numpy as xp\na = xp.array([1, 2])\nb = a - 1\n"
	if status := npviz([]string{"npviz"}, strings.NewReader(src), stdout, stderr); status != 0 {
		t.Fatalf("status %d: %s", status, stderr)
	}
	if !strings.HasPrefix(stdout.String(), "subtract\n") {
		t.Errorf("got %q", stdout)
	}
}

func TestFlags(t *testing.T) {
	var tests = []struct {
		args   []string
		status int
		out    string
	}{
		{[]string{"npviz", "-h"}, 0, "usage: npviz"},
		{[]string{"npviz", "-d", "nonsense"}, 2, ""},
		{[]string{"npviz", "-p", "x"}, 2, ""},
		{[]string{"npviz", "-a", "numpy", "-e", "b = numpy.exp(numpy.array([0]))"}, 0, "exp\n"},
		{[]string{"npviz", filepath.Join(t.TempDir(), "missing.py")}, 1, ""},
	}
	for _, test := range tests {
		stdout := new(bytes.Buffer)
		stderr := new(bytes.Buffer)
		status := npviz(test.args, strings.NewReader(""), stdout, stderr)
		if status != test.status || !strings.HasPrefix(stdout.String(), test.out) {
			t.Errorf("%q: status %d output %q; want %d %q", test.args, status, stdout, test.status, test.out)
		}
	}
}
