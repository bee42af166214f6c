package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/dylan/spotlight/tour"
)

type fileRecord struct {
	Completed   bool      `toml:"completed"`
	ForceReshow bool      `toml:"force_reshow,omitempty"`
	UpdatedAt   time.Time `toml:"updated_at"`
}

type fileData struct {
	Tours map[string]fileRecord `toml:"tours"`
}

// FileStore keeps flags in a TOML file next to the config.
type FileStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

// NewFileStore uses the DSN option as the file path. The file is created
// on first write.
func NewFileStore(opts ...Option) (*FileStore, error) {
	o := applyOpts(opts)
	if o.DSN == "" {
		return nil, fmt.Errorf("file store: path not set")
	}
	return &FileStore{path: o.DSN, log: o.Logger}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() (fileData, error) {
	d := fileData{Tours: map[string]fileRecord{}}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("reading tour state: %w", err)
	}
	if err := toml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parsing tour state: %w", err)
	}
	if d.Tours == nil {
		d.Tours = map[string]fileRecord{}
	}
	return d, nil
}

func (s *FileStore) save(d fileData) error {
	data, err := toml.Marshal(d)
	if err != nil {
		return fmt.Errorf("marshaling tour state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing tour state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing tour state: %w", err)
	}
	return nil
}

func (s *FileStore) update(fn func(d *fileData)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return err
	}
	fn(&d)
	if err := s.save(d); err != nil {
		s.log.Warn("saving tour state failed", zap.String("path", s.path), zap.Error(err))
		return err
	}
	return nil
}

func (s *FileStore) get(f tour.Feature) (fileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return fileRecord{}, err
	}
	return d.Tours[string(f)], nil
}

func (s *FileStore) HasCompleted(_ context.Context, f tour.Feature) (bool, error) {
	r, err := s.get(f)
	return r.Completed, err
}

func (s *FileStore) ShouldReshow(_ context.Context, f tour.Feature) (bool, error) {
	r, err := s.get(f)
	return r.ForceReshow, err
}

func (s *FileStore) MarkCompleted(_ context.Context, f tour.Feature) error {
	return s.update(func(d *fileData) {
		d.Tours[string(f)] = fileRecord{Completed: true, UpdatedAt: time.Now().UTC()}
	})
}

func (s *FileStore) RequestReshow(_ context.Context, f tour.Feature) error {
	return s.update(func(d *fileData) {
		r := d.Tours[string(f)]
		r.ForceReshow = true
		r.UpdatedAt = time.Now().UTC()
		d.Tours[string(f)] = r
	})
}

func (s *FileStore) Reset(_ context.Context, f tour.Feature) error {
	return s.update(func(d *fileData) {
		delete(d.Tours, string(f))
	})
}

func (s *FileStore) List(context.Context) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(d.Tours))
	for name, r := range d.Tours {
		out = append(out, Record{
			Feature:     tour.Feature(name),
			Completed:   r.Completed,
			ForceReshow: r.ForceReshow,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Feature < out[j].Feature })
	return out, nil
}

func (s *FileStore) Close() error { return nil }
