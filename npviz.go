// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main // import "numpyviz.dev/npviz"

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/demo"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/render"
	"numpyviz.dev/npviz/run"
)

var red = color.New(color.FgRed)

func main() {
	log.SetFlags(0)
	log.SetPrefix("npviz: ")
	os.Exit(npviz(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// npviz runs the command with the arguments and returns its exit status.
func npviz(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var conf config.Config
	opts, optind, err := getopt.Getopts(args, "a:d:e:hjm:p:st")
	if err != nil {
		log.Print(err)
		usage(stderr, &conf)
		return 2
	}
	conf.SetOutput(stdout)
	conf.SetErrOutput(stderr)
	var (
		exprs      []string
		asJSON     bool
		storyboard bool
		tour       bool
		aliases    = conf.Aliases()
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'a':
			aliases = append(aliases, opt.Value)
		case 'd':
			for _, flag := range strings.Split(opt.Value, ",") {
				if !conf.SetDebug(flag, true) {
					log.Printf("unknown debug flag %q; known flags: %s", flag, strings.Join(config.DebugFlags, ", "))
					return 2
				}
			}
		case 'e':
			exprs = append(exprs, opt.Value)
		case 'j':
			asJSON = true
		case 'm':
			conf.SetMediaDir(opt.Value)
		case 'p':
			digits, err := strconv.Atoi(opt.Value)
			if err != nil || digits < 0 {
				log.Printf("invalid -p parameter %q", opt.Value)
				return 2
			}
			conf.SetPrecision(digits)
		case 's':
			storyboard = true
		case 't':
			tour = true
		default: // case 'h':
			usage(stdout, &conf)
			return 0
		}
	}
	conf.SetAliases(aliases...)

	reg := ops.Standard()
	var renderer render.Renderer
	if storyboard {
		renderer = render.NewStoryboard(&conf, reg)
	}
	runner := run.New(&conf, reg, renderer)

	show := func(name, src string) bool {
		sums, err := runner.Visualize(name, src)
		if err != nil {
			fmt.Fprintln(stderr, red.Sprint(err))
			return false
		}
		if asJSON {
			data, err := json.MarshalIndent(sums, "", "  ")
			if err != nil {
				fmt.Fprintln(stderr, red.Sprint(err))
				return false
			}
			fmt.Fprintf(stdout, "%s\n", data)
			return true
		}
		run.Print(stdout, sums)
		return true
	}

	if tour {
		err := demo.Run(stdin, stdout, func(src string) error {
			show("<demo>", src)
			fmt.Fprintln(stdout)
			return nil
		})
		if err != nil {
			log.Print(red.Sprint(err))
			return 1
		}
		return 0
	}

	type program struct{ name, src string }
	var progs []program
	for i, e := range exprs {
		progs = append(progs, program{fmt.Sprintf("<arg %d>", i+1), e})
	}
	for _, name := range args[optind:] {
		data, err := os.ReadFile(name)
		if err != nil {
			log.Print(red.Sprint(err))
			return 1
		}
		progs = append(progs, program{name, string(data)})
	}
	if len(progs) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			log.Print(red.Sprint(err))
			return 1
		}
		progs = append(progs, program{"<stdin>", string(data)})
	}

	status := 0
	for _, p := range progs {
		if !show(p.name, p.src) {
			status = 1
		}
	}
	return status
}

func usage(w io.Writer, conf *config.Config) {
	fmt.Fprintf(w, "usage: npviz [options] [file.py ...]\n"+
		"\n"+
		"Evaluates the NumPy operations in the files, or standard input,\n"+
		"and prints each one with its operands and result.\n"+
		"\n"+
		"options:\n"+
		"  -a name    also treat name as the numpy module (default np)\n"+
		"  -d flags   enable debug flags, comma separated: %s\n"+
		"  -e text    evaluate text as a program; may be repeated\n"+
		"  -h         print this message\n"+
		"  -j         print the summaries as JSON\n"+
		"  -m dir     media directory for artifacts (default %s)\n"+
		"  -p digits  round results to digits after the point (default %d)\n"+
		"  -s         write a storyboard for each visualizable operation\n"+
		"  -t         take the guided tour\n",
		strings.Join(config.DebugFlags, ","), conf.MediaDir(), conf.Precision())
}
