// Package store archives analysed runs on disk. Each run is a gob file
// named by its uuid; runs.dat indexes them in creation order.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jsphweid/chordal/constants"
	"github.com/jsphweid/chordal/model"
	"github.com/jsphweid/chordal/util"
)

var ErrRunNotFound = errors.New("run not found")

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) (*Store, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) runPath(id string) string {
	return filepath.Join(s.dir, id+".dat")
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, constants.RunIndexFile)
}

// NewRun stamps a fresh id and creation time on an analysed file.
func NewRun(file string, segments []model.Segment, a model.Analysis) model.Run {
	return model.Run{
		ID:        uuid.New().String(),
		File:      file,
		CreatedAt: time.Now().UTC(),
		Segments:  segments,
		Analysis:  a,
	}
}

func (s *Store) Save(run model.Run) error {
	if _, err := uuid.Parse(run.ID); err != nil {
		return fmt.Errorf("run id %q: %w", run.ID, err)
	}
	if err := util.CreateBinary(s.runPath(run.ID), run); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.readIndex()
	if err != nil {
		return err
	}
	index = append(index, run.Overview())
	return util.CreateBinary(s.indexPath(), index)
}

func (s *Store) Load(id string) (model.Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return model.Run{}, fmt.Errorf("%w: %q", ErrRunNotFound, id)
	}
	run, err := util.ReadBinary[model.Run](s.runPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return model.Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

func (s *Store) Index() ([]model.RunOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readIndex()
}

func (s *Store) readIndex() ([]model.RunOverview, error) {
	index, err := util.ReadBinary[[]model.RunOverview](s.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return index, err
}
