// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps the history of visualized programs in SQLite.
// A program is keyed by the hash of its source, so running the same
// program again updates its row instead of adding one.
package store // import "numpyviz.dev/npviz/store"

import (
	"encoding/hex"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/zeebo/blake3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/soft_delete"
)

// Run is one program in the history.
type Run struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	SourceHash string `json:"source_hash" gorm:"index:idx_source_hash,unique"`
	Source     string `json:"source"`
	Operations int    `json:"operations"`
	// Error is the failure of the last run, if it failed.
	Error      string `json:"error,omitempty"`
	Hits       int64  `json:"hits"`
	CreatedAt  int64  `json:"created_at"`
	LastAccess int64  `json:"last_access" gorm:"index:idx_last_access"`
	/* 0 false 1 true */
	Deleted soft_delete.DeletedAt `json:"-" gorm:"softDelete:flag;default:0"`
}

func (Run) TableName() string {
	return "run"
}

// Store is the run history.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open opens the database at path, creating it and its table if needed.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Hash returns the key of the source text.
func Hash(src string) string {
	sum := blake3.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Record notes a run of the source that produced the number of
// operations, or failed with runErr. A program already in the history,
// even one that has expired, has its hit count and access time bumped.
func (s *Store) Record(src string, operations int, runErr error) (*Run, error) {
	now := s.now().Unix()
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	hash := Hash(src)
	var run Run
	err := s.db.Unscoped().Where("`source_hash`=?", hash).First(&run).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		run = Run{
			SourceHash: hash,
			Source:     src,
			Operations: operations,
			Error:      msg,
			Hits:       1,
			CreatedAt:  now,
			LastAccess: now,
		}
		if err := s.db.Create(&run).Error; err != nil {
			return nil, err
		}
		return &run, nil
	case err != nil:
		return nil, err
	}
	err = s.db.Unscoped().Model(&run).Updates(map[string]interface{}{
		"hits":        gorm.Expr("`hits`+1"),
		"last_access": now,
		"operations":  operations,
		"error":       msg,
		"deleted":     0,
	}).Error
	if err != nil {
		return nil, err
	}
	if err := s.db.First(&run, run.ID).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Lookup returns the run of the source with the hash. Expired runs are
// not found.
func (s *Store) Lookup(hash string) (*Run, error) {
	var run Run
	if err := s.db.Where("`source_hash`=?", hash).First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// Recent returns up to limit runs, most recently used first.
func (s *Store) Recent(limit int) ([]Run, error) {
	var runs []Run
	if err := s.db.Order("last_access desc, id desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// Expire soft-deletes the runs last used before the time and returns
// how many there were.
func (s *Store) Expire(before time.Time) (int64, error) {
	res := s.db.Where("`last_access` < ?", before.Unix()).Delete(&Run{})
	return res.RowsAffected, res.Error
}
