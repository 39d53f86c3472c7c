// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-co-op/gocron/v2"
	"github.com/tevino/abool/v2"
)

// Pruner expires old runs from the history and removes old artifacts
// from the video directory. Either may be absent.
type Pruner struct {
	store   *Store // May be nil.
	dir     string // May be empty.
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time
	running *abool.AtomicBool
	sched   gocron.Scheduler
}

// Stats reports what one pass of the pruner removed.
type Stats struct {
	Runs  int64
	Files int
	Bytes int64
}

func NewPruner(store *Store, dir string, ttl time.Duration, log *slog.Logger) *Pruner {
	if log == nil {
		log = slog.Default()
	}
	return &Pruner{
		store:   store,
		dir:     dir,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		running: abool.NewBool(false),
	}
}

// Start runs Prune every interval until Stop.
func (p *Pruner) Start(interval time.Duration) error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { p.Prune() }),
	)
	if err != nil {
		return err
	}
	s.Start()
	p.sched = s
	p.log.Info("pruner started", "interval", interval, "ttl", p.ttl)
	return nil
}

func (p *Pruner) Stop() error {
	if p.sched == nil {
		return nil
	}
	return p.sched.Shutdown()
}

// Prune makes one pass. A pass that starts while another is running
// does nothing.
func (p *Pruner) Prune() Stats {
	var st Stats
	if !p.running.SetToIf(false, true) {
		p.log.Info("prune skipped, already running")
		return st
	}
	defer p.running.UnSet()
	cutoff := p.now().Add(-p.ttl)
	if p.store != nil {
		n, err := p.store.Expire(cutoff)
		if err != nil {
			p.log.Error("expire runs", "err", err)
		}
		st.Runs = n
	}
	if p.dir != "" {
		st.Files, st.Bytes = p.removeFiles(cutoff)
	}
	if st.Runs > 0 || st.Files > 0 {
		p.log.Info("pruned",
			"runs", st.Runs,
			"files", st.Files,
			"size", humanize.Bytes(uint64(st.Bytes)),
			"older_than", humanize.Time(cutoff))
	}
	return st
}

// removeFiles removes the regular files in the directory last modified
// before the cutoff.
func (p *Pruner) removeFiles(cutoff time.Time) (files int, bytes int64) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Error("read artifact dir", "dir", p.dir, "err", err)
		}
		return 0, 0
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(p.dir, e.Name())
		if err := os.Remove(path); err != nil {
			p.log.Error("remove artifact", "path", path, "err", err)
			continue
		}
		files++
		bytes += info.Size()
	}
	return files, bytes
}
