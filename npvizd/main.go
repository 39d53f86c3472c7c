// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Npvizd serves npviz over HTTP.
//
// Usage:
//
//	npvizd [-l addr] [-m dir] [-D db] [-t ttl] [-i interval] [-o origin ...] [-p digits] [-v]
//
// POST /visualize with a JSON body {"code": "..."} returns the summary of
// each operation in the program. GET /video/N returns the artifact of
// operation N of the last run. When a database is given with -D, GET
// /history returns the recently run programs, and programs and artifacts
// unused for the ttl are pruned every interval.
package main

import (
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"git.sr.ht/~sircmpwn/getopt"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/ops"
	"numpyviz.dev/npviz/render"
	"numpyviz.dev/npviz/run"
	"numpyviz.dev/npviz/server"
	"numpyviz.dev/npviz/store"
)

func main() {
	var conf config.Config
	level := slog.LevelInfo
	opts, optind, err := getopt.Getopts(os.Args, "D:i:l:m:o:p:t:v")
	if err != nil || optind != len(os.Args) {
		usage()
	}
	var origins []string
	for _, opt := range opts {
		switch opt.Option {
		case 'D':
			conf.SetDBPath(opt.Value)
		case 'i':
			conf.SetPruneInterval(duration(opt.Value))
		case 'l':
			conf.SetAddr(opt.Value)
		case 'm':
			conf.SetMediaDir(opt.Value)
		case 'o':
			origins = append(origins, opt.Value)
		case 'p':
			digits, err := strconv.Atoi(opt.Value)
			if err != nil || digits < 0 {
				usage()
			}
			conf.SetPrecision(digits)
		case 't':
			conf.SetHistoryTTL(duration(opt.Value))
		case 'v':
			level = slog.LevelDebug
		}
	}
	if len(origins) > 0 {
		conf.SetOrigins(origins...)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	if err := os.MkdirAll(conf.VideoDir(), 0o755); err != nil {
		fatal(log, "create video directory", err)
	}
	var st *store.Store
	if path := conf.DBPath(); path != "" {
		st, err = store.Open(path)
		if err != nil {
			fatal(log, "open store", err)
		}
		defer st.Close()
	}
	pruner := store.NewPruner(st, conf.VideoDir(), conf.HistoryTTL(), log)
	if err := pruner.Start(conf.PruneInterval()); err != nil {
		fatal(log, "start pruner", err)
	}
	defer pruner.Stop()

	reg := ops.Standard()
	runner := run.New(&conf, reg, render.NewStoryboard(&conf, reg))
	srv := server.New(&conf, runner, st, log).HTTPServer()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-quit
		log.Info("shutting down", "signal", s.String())
		if err := srv.Shutdown(); err != nil {
			log.Error("shutdown", "err", err)
		}
	}()

	log.Info("listening", "addr", conf.Addr(), "media", conf.MediaDir(), "history", conf.DBPath() != "")
	if err := srv.ListenAndServe(conf.Addr()); err != nil {
		fatal(log, "serve", err)
	}
}

func duration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		usage()
	}
	return d
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}

func usage() {
	os.Stderr.WriteString("usage: npvizd [options]\n" +
		"\n" +
		"options:\n" +
		"  -D path      history database; none by default\n" +
		"  -i interval  how often to prune (default 5m)\n" +
		"  -l addr      listen address (default localhost:5000)\n" +
		"  -m dir       media directory (default media)\n" +
		"  -o origin    allowed CORS origin; may be repeated\n" +
		"  -p digits    round results to digits after the point (default 2)\n" +
		"  -t ttl       prune programs and artifacts unused for ttl (default 24h)\n" +
		"  -v           log debugging detail\n")
	os.Exit(2)
}
