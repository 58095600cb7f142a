package answers

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/aqscreen/internal/form"
	"github.com/harrison/aqscreen/internal/fsutil"
)

// ErrNoDraft is returned by Load when nothing has been saved.
var ErrNoDraft = errors.New("no saved draft")

// Draft is a partially completed form saved between runs.
type Draft struct {
	SavedAt time.Time         `yaml:"saved_at"`
	Answers map[string]string `yaml:"answers"`
}

// DraftStore keeps a single draft in a YAML file.
type DraftStore struct {
	path     string
	registry *form.Registry
	now      func() time.Time
}

// NewDraftStore creates a store at path.
func NewDraftStore(path string, registry *form.Registry) *DraftStore {
	return &DraftStore{path: path, registry: registry, now: time.Now}
}

// Path returns the draft file location.
func (s *DraftStore) Path() string {
	return s.path
}

// Save replaces the draft with values. Empty values are dropped.
func (s *DraftStore) Save(values map[string]string) error {
	d := Draft{SavedAt: s.now().UTC(), Answers: make(map[string]string, len(values))}
	for k, v := range values {
		if v != "" {
			d.Answers[k] = v
		}
	}

	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return fsutil.WriteFile(s.path, data, 0600)
}

// Load returns the saved draft or ErrNoDraft.
func (s *DraftStore) Load() (*Draft, error) {
	data, err := fsutil.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoDraft
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}

	var d Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse draft %s: %w", s.path, err)
	}
	for name := range d.Answers {
		if _, err := s.registry.Lookup(name); err != nil {
			return nil, fmt.Errorf("draft %s: %w", s.path, err)
		}
	}
	if len(d.Answers) == 0 {
		return nil, ErrNoDraft
	}
	return &d, nil
}

// Clear deletes the draft.
func (s *DraftStore) Clear() error {
	return fsutil.RemoveFile(s.path)
}
