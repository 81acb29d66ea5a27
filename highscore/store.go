// Package highscore keeps the best completed run and a history of runs.
package highscore

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	recordObject   = "highscore"
	recordProperty = "best"
)

// Record is a completed run. Time is the level time in milliseconds.
type Record struct {
	Score int   `yaml:"score"`
	Time  int64 `yaml:"time"`
}

// Beats reports whether r should replace old: a strictly faster time, or
// the same time with a strictly higher score.
func (r Record) Beats(old Record) bool {
	if r.Time != old.Time {
		return r.Time < old.Time
	}
	return r.Score > old.Score
}

// Store persists the best Record through gdata. With a nil gdata manager
// the record lives in memory for the life of the process.
type Store struct {
	data *gdata.Manager
	log  *zap.Logger
	mem  *Record
}

func NewStore(data *gdata.Manager, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{data: data, log: log}
}

// Best returns the stored record. A missing or unreadable record is
// reported as no record.
func (s *Store) Best() (Record, bool) {
	if s.data == nil {
		if s.mem == nil {
			return Record{}, false
		}
		return *s.mem, true
	}
	if !s.data.ObjectPropExists(recordObject, recordProperty) {
		return Record{}, false
	}
	raw, err := s.data.LoadObjectProp(recordObject, recordProperty)
	if err != nil {
		s.log.Warn("high score unreadable", zap.Error(err))
		return Record{}, false
	}
	var rec Record
	if err := yaml.Unmarshal(raw, &rec); err != nil {
		s.log.Warn("high score corrupt", zap.Error(err))
		return Record{}, false
	}
	return rec, true
}

// SaveHighScore stores (score, timeMs) if it beats the current record and
// reports whether it did.
func (s *Store) SaveHighScore(score int, timeMs int64) (bool, error) {
	rec := Record{Score: score, Time: timeMs}
	if old, ok := s.Best(); ok && !rec.Beats(old) {
		return false, nil
	}
	if s.data == nil {
		s.mem = &rec
		return true, nil
	}
	raw, err := yaml.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("highscore: encode record: %w", err)
	}
	if err := s.data.SaveObjectProp(recordObject, recordProperty, raw); err != nil {
		return false, fmt.Errorf("highscore: save record: %w", err)
	}
	s.log.Info("new high score", zap.Int("score", score), zap.Int64("time_ms", timeMs))
	return true, nil
}
