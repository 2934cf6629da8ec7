package portfolio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/agenthands/folio/internal/metrics"
	"github.com/agenthands/folio/internal/skills"
)

const (
	ProfileFile     = "profile.json"
	ProjectsFile    = "projects.json"
	SkillsGraphFile = "skills-graph.json"
)

const reloadDelay = 200 * time.Millisecond

var ErrNotLoaded = errors.New("document not loaded")

// Store keeps the last good copy of each document in a data directory.
type Store struct {
	dir     string
	logger  *zap.Logger
	metrics *metrics.Collector

	mu       sync.RWMutex
	profile  *Profile
	projects *Projects
	graph    *skills.Graph
}

// NewStore returns an empty store over dir. collector may be nil.
func NewStore(dir string, logger *zap.Logger, collector *metrics.Collector) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger, metrics: collector}
}

func (s *Store) Dir() string {
	return s.dir
}

// Load reads every document. The profile and projects are required; a
// missing skills graph file only leaves the graph unset.
func (s *Store) Load() error {
	var errs []error
	for _, name := range []string{ProfileFile, ProjectsFile, SkillsGraphFile} {
		err := s.Reload(name)
		if name == SkillsGraphFile && errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("skills graph file not found", zap.String("dir", s.dir))
			continue
		}
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Reload re-reads one document. On failure the previous copy is kept.
func (s *Store) Reload(name string) error {
	err := s.reload(name)
	result := "ok"
	if err != nil {
		result = "error"
	}
	if s.metrics != nil {
		s.metrics.DataReloads.WithLabelValues(name, result).Inc()
	}
	return err
}

func (s *Store) reload(name string) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", documentName(name), err)
	}

	switch name {
	case ProfileFile:
		p, err := DecodeProfile(data)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		s.mu.Lock()
		s.profile = p
		s.mu.Unlock()
	case ProjectsFile:
		p, err := DecodeProjects(data)
		if err != nil {
			return fmt.Errorf("failed to load projects: %w", err)
		}
		s.mu.Lock()
		s.projects = p
		s.mu.Unlock()
	case SkillsGraphFile:
		g, err := skills.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to load skills graph: %w", err)
		}
		s.mu.Lock()
		s.graph = g
		s.mu.Unlock()
	default:
		return fmt.Errorf("unknown document %q", name)
	}
	return nil
}

func documentName(file string) string {
	switch file {
	case ProfileFile:
		return "profile"
	case ProjectsFile:
		return "projects"
	case SkillsGraphFile:
		return "skills graph"
	}
	return file
}

func (s *Store) Profile() (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return nil, fmt.Errorf("profile: %w", ErrNotLoaded)
	}
	return s.profile, nil
}

func (s *Store) Projects() (*Projects, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.projects == nil {
		return nil, fmt.Errorf("projects: %w", ErrNotLoaded)
	}
	return s.projects, nil
}

// SkillsGraph returns a copy of the skills graph.
func (s *Store) SkillsGraph() (*skills.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return nil, fmt.Errorf("skills graph: %w", ErrNotLoaded)
	}
	return s.graph.Clone(), nil
}

// SkillsSource serves the cached skills graph to a skills.State.
func (s *Store) SkillsSource() skills.Source {
	return skills.SourceFunc(func(ctx context.Context) (*skills.Graph, error) {
		return s.SkillsGraph()
	})
}

// Watch reloads documents as they change on disk until ctx is done. Bursts
// of events for one file are coalesced into a single reload.
func (s *Store) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(s.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}
	s.logger.Info("watching portfolio data", zap.String("dir", s.dir))

	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name := filepath.Base(event.Name)
			if name != ProfileFile && name != ProjectsFile && name != SkillsGraphFile {
				continue
			}
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(reloadDelay, func() {
				if err := s.Reload(name); err != nil {
					s.logger.Error("reload failed, keeping previous copy",
						zap.String("file", name), zap.Error(err))
					return
				}
				s.logger.Info("reloaded portfolio data", zap.String("file", name))
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("file watcher error", zap.Error(err))
		}
	}
}
