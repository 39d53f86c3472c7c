// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package server is the HTTP front end of npvizd. It visualizes posted
// programs, serves the rendered artifacts and, when a store is
// configured, the run history.
package server // import "numpyviz.dev/npviz/server"

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"numpyviz.dev/npviz/config"
	"numpyviz.dev/npviz/render"
	"numpyviz.dev/npviz/run"
	"numpyviz.dev/npviz/store"
)

const (
	defaultHistory = 20
	maxHistory     = 100
)

// Server handles the requests. Runs are serialized because artifacts
// are named by operation index and so shared between runs.
type Server struct {
	conf    *config.Config
	runner  *run.Runner
	store   *store.Store // May be nil.
	log     *slog.Logger
	origins map[string]bool
	mu      sync.Mutex
}

type request struct {
	Code *string `json:"code"`
}

type failure struct {
	Error string `json:"error"`
}

// New returns a Server. A nil store disables the history.
func New(conf *config.Config, runner *run.Runner, st *store.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		conf:    conf,
		runner:  runner,
		store:   st,
		log:     log,
		origins: make(map[string]bool),
	}
	for _, o := range conf.Origins() {
		s.origins[strings.TrimSuffix(o, "/")] = true
	}
	return s
}

// HTTPServer returns a fasthttp server using the handler.
func (s *Server) HTTPServer() *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            s.Handle,
		Name:               "npvizd",
		ReadTimeout:        time.Minute,
		WriteTimeout:       time.Minute,
		MaxRequestBodySize: s.conf.MaxSource() + 1024,
	}
}

// Handle serves one request.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	id := uuid.NewString()
	ctx.Response.Header.Set("X-Request-Id", id)
	preflight := s.cors(ctx)
	switch path := string(ctx.Path()); {
	case preflight:
		ctx.SetStatusCode(fasthttp.StatusNoContent)
	case path == "/visualize":
		s.visualize(ctx, id)
	case strings.HasPrefix(path, "/video/"):
		s.video(ctx, strings.TrimPrefix(path, "/video/"))
	case path == "/history":
		s.history(ctx)
	default:
		s.fail(ctx, fasthttp.StatusNotFound, "not found")
	}
	s.log.Info("request",
		"id", id,
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"size", humanize.Bytes(uint64(len(ctx.Response.Body()))),
		"elapsed", time.Since(start))
}

// cors sets the CORS headers for an allowed origin and reports whether
// the request is a preflight.
func (s *Server) cors(ctx *fasthttp.RequestCtx) bool {
	origin := strings.TrimSuffix(string(ctx.Request.Header.Peek("Origin")), "/")
	if origin == "" || !s.origins[origin] {
		return false
	}
	h := &ctx.Response.Header
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Vary", "Origin")
	if !ctx.IsOptions() {
		return false
	}
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
	h.Set("Access-Control-Max-Age", "600")
	return true
}

func (s *Server) visualize(ctx *fasthttp.RequestCtx, id string) {
	if !ctx.IsPost() {
		s.fail(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}
	body := ctx.PostBody()
	if len(body) > s.conf.MaxSource() {
		s.fail(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("program too large: %s, limit %s",
			humanize.Bytes(uint64(len(body))), humanize.Bytes(uint64(s.conf.MaxSource()))))
		return
	}
	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		s.fail(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if req.Code == nil {
		s.fail(ctx, fasthttp.StatusBadRequest, "missing code")
		return
	}
	sums, err := s.evaluate(*req.Code)
	if s.store != nil {
		if _, serr := s.store.Record(*req.Code, len(sums), err); serr != nil {
			s.log.Error("record run", "id", id, "err", serr)
		}
	}
	if err != nil {
		s.log.Info("run failed", "id", id, "err", err)
		s.fail(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.reply(ctx, fasthttp.StatusOK, sums)
}

// evaluate visualizes one program at a time.
func (s *Server) evaluate(src string) ([]run.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runner.Visualize("<input>", src)
}

// video serves the artifact of the operation at the index. A rendered
// video is preferred to a storyboard.
func (s *Server) video(ctx *fasthttp.RequestCtx, index string) {
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 || strconv.Itoa(i) != index {
		s.fail(ctx, fasthttp.StatusNotFound, "not found")
		return
	}
	for _, ext := range []string{".mp4", ".txt"} {
		path := filepath.Join(s.conf.VideoDir(), render.ArtifactName(i)+ext)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			ctx.SendFile(path)
			if ext == ".mp4" {
				ctx.SetContentType("video/mp4")
			}
			return
		}
	}
	s.fail(ctx, fasthttp.StatusNotFound, "Video file not found")
}

func (s *Server) history(ctx *fasthttp.RequestCtx) {
	if s.store == nil {
		s.fail(ctx, fasthttp.StatusNotFound, "history is disabled")
		return
	}
	limit := defaultHistory
	if ctx.QueryArgs().Has("limit") {
		n, err := ctx.QueryArgs().GetUint("limit")
		if err != nil || n == 0 {
			s.fail(ctx, fasthttp.StatusBadRequest, "bad limit")
			return
		}
		limit = min(n, maxHistory)
	}
	runs, err := s.store.Recent(limit)
	if err != nil {
		s.fail(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	s.reply(ctx, fasthttp.StatusOK, runs)
}

func (s *Server) fail(ctx *fasthttp.RequestCtx, status int, msg string) {
	s.reply(ctx, status, failure{Error: msg})
}

func (s *Server) reply(ctx *fasthttp.RequestCtx, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		ctx.Error(err.Error(), fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}
