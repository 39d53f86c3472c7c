// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package run provides the execution control for npviz: it takes source
// text through the scanner, parser, resolver, evaluator and renderer and
// reports one summary per operation. It is factored out of main so it
// can be used for tests and by the server.
package run // import "numpyviz.dev/npviz/run"

import (
	"fmt"
	"io"
	"strings"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/exec"
	"numpyviz.dev/npviz/graph"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/parse"
	"numpyviz.dev/npviz/render"
	"numpyviz.dev/npviz/resolve"
	"numpyviz.dev/npviz/scan"
	"numpyviz.dev/npviz/value"
)

// Summary reports one evaluated operation.
type Summary struct {
	Operation string `json:"operation"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	VideoURL  string `json:"video_url,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Runner runs programs. A Runner may be shared; each call to Visualize
// resolves and evaluates its own nodes.
type Runner struct {
	conf     *config.Config
	reg      *ops.Registry
	renderer render.Renderer
}

// New returns a Runner. A nil renderer draws nothing.
func New(conf *config.Config, reg *ops.Registry, renderer render.Renderer) *Runner {
	if renderer == nil {
		renderer = render.None{}
	}
	return &Runner{conf: conf, reg: reg, renderer: renderer}
}

// Nodes parses and resolves the program, returning its operation nodes
// unevaluated. Only a syntax error fails.
func (r *Runner) Nodes(name, src string) (nodes []*graph.Node, err error) {
	defer func() {
		if r.conf.Debug("panic") {
			return
		}
		if e := recover(); e != nil {
			verr, ok := e.(value.Error)
			if !ok {
				panic(e)
			}
			err = verr
		}
	}()
	p := parse.NewParser(r.conf, name, scan.New(r.conf, name, src))
	return resolve.Resolve(r.conf, r.reg, p.Module()), nil
}

// Visualize runs the program and returns a summary of each operation in
// evaluation order. Each node is evaluated and then rendered before the
// next is evaluated. Any failure fails the whole run: the error is
// returned and there are no summaries.
func (r *Runner) Visualize(name, src string) ([]Summary, error) {
	nodes, err := r.Nodes(name, src)
	if err != nil {
		return nil, err
	}
	ev := exec.New(r.conf, r.reg)
	sums := make([]Summary, 0, len(nodes))
	for i, n := range nodes {
		if err := ev.Evaluate(nodes[i : i+1]); err != nil {
			return nil, err
		}
		drawn, err := r.renderer.Render(i, n)
		if err != nil {
			return nil, err
		}
		sums = append(sums, summarize(i, n, drawn))
	}
	return sums, nil
}

func summarize(index int, n *graph.Node, drawn bool) Summary {
	s := Summary{
		Operation: n.Op.String(),
		Input:     fmt.Sprintf("Operands: %s, Keyword Args: %s", value.ListRepr(n.Args()), value.KwargsRepr(n.KwargValues())),
		Output:    n.Result().String(),
	}
	if drawn {
		s.VideoURL = fmt.Sprintf("/video/%d", index)
	} else {
		s.Message = render.NotSupported
	}
	return s
}

// Run visualizes the program and prints the summaries to the configured
// output. It returns the error, if any, without printing it.
func (r *Runner) Run(name, src string) error {
	sums, err := r.Visualize(name, src)
	if err != nil {
		return err
	}
	Print(r.conf.Output(), sums)
	return nil
}

// Print writes the summaries in a readable form: the operation, then
// its inputs, its output and where its artifact is, each indented.
func Print(w io.Writer, sums []Summary) {
	for _, s := range sums {
		fmt.Fprintln(w, s.Operation)
		fmt.Fprintf(w, "\t%s\n", indent(s.Input))
		fmt.Fprintf(w, "\t%s\n", indent(s.Output))
		if s.VideoURL != "" {
			fmt.Fprintf(w, "\t%s\n", s.VideoURL)
		} else {
			fmt.Fprintf(w, "\t%s\n", s.Message)
		}
	}
}

func indent(s string) string {
	return strings.ReplaceAll(s, "\n", "\n\t")
}
