// Package modelstore loads the pre-trained classifier artifacts from a models
// directory at startup and holds them resident for the process lifetime. A
// missing or unreadable artifact degrades only its own disease: the store
// records the failure and keeps serving the others.
package modelstore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/cliniclab/medscreen/internal/classifier"
	"github.com/cliniclab/medscreen/internal/disease"
)

// ArtifactCandidates lists the filenames probed for a disease's loose
// artifact, in preference order.
func ArtifactCandidates(d disease.Disease) []string {
	return []string{string(d) + ".model", string(d) + ".gob"}
}

// Handle is one loaded model plus its provenance. Handles are never mutated
// after Open returns.
type Handle struct {
	Disease  disease.Disease
	Model    *classifier.LinearModel
	Kind     classifier.Kind
	Created  time.Time
	Source   string // artifact file or pack file path
	FromPack bool
	Size     int64
	Modified time.Time
}

// Status describes one disease's model slot for the status endpoint
type Status struct {
	Disease  disease.Disease `json:"disease"`
	Title    string          `json:"title"`
	Loaded   bool            `json:"loaded"`
	Kind     string          `json:"kind,omitempty"`
	Features int             `json:"features,omitempty"`
	Source   string          `json:"source,omitempty"`
	Size     int64           `json:"size_bytes,omitempty"`
	Modified string          `json:"modified,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// Store holds the loaded models. It is populated once by Open and treated as
// read-only afterwards, so it needs no locking.
type Store struct {
	dir     string
	handles map[disease.Disease]*Handle
	errors  map[disease.Disease]string
}

// Open scans dir for model artifacts and for .pack bundles. Loose artifact
// files win over pack entries for the same disease. Open returns the store
// together with an error when nothing at all could be loaded; the store
// remains usable either way.
func Open(dir string) (*Store, error) {
	store := &Store{
		dir:     dir,
		handles: make(map[disease.Disease]*Handle),
		errors:  make(map[disease.Disease]string),
	}

	for _, d := range disease.All() {
		store.loadArtifact(d)
	}
	store.loadPacks()

	// Any disease still without a handle keeps its most specific failure;
	// fill in a not-found message for the ones never seen on disk.
	for _, d := range disease.All() {
		if _, ok := store.handles[d]; ok {
			delete(store.errors, d)
			continue
		}
		if store.errors[d] == "" {
			store.errors[d] = fmt.Sprintf("model file not found: %s", filepath.Join(dir, ArtifactCandidates(d)[0]))
		}
		log.Printf("Warning: %s model unavailable: %s", d, store.errors[d])
	}

	if len(store.handles) == 0 {
		return store, fmt.Errorf("no model artifacts found in %s", dir)
	}
	return store, nil
}

// loadArtifact tries each candidate filename for one disease
func (s *Store) loadArtifact(d disease.Disease) {
	for _, name := range ArtifactCandidates(d) {
		path := filepath.Join(s.dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}

		artifact, err := classifier.Load(path)
		if err != nil {
			s.errors[d] = err.Error()
			log.Printf("Warning: failed to load %s model from %s: %v", d, path, err)
			continue
		}
		if artifact.Name != string(d) {
			s.errors[d] = fmt.Sprintf("artifact at %s is trained for %q", path, artifact.Name)
			log.Printf("Warning: %s", s.errors[d])
			continue
		}

		s.handles[d] = &Handle{
			Disease:  d,
			Model:    artifact.Model(),
			Kind:     artifact.Kind,
			Created:  artifact.Created,
			Source:   path,
			Size:     info.Size(),
			Modified: info.ModTime(),
		}
		log.Printf("Loaded %s model from %s", d, path)
		return
	}
}

// loadPacks fills remaining slots from .pack bundles found in the directory
func (s *Store) loadPacks() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Printf("Warning: failed to read models directory %s: %v", s.dir, err)
		return
	}

	var packs []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), PackExt) {
			continue
		}
		packs = append(packs, entry.Name())
	}
	sort.Strings(packs)

	for _, name := range packs {
		path := filepath.Join(s.dir, name)
		pack, err := ReadPack(path)
		if err != nil {
			log.Printf("Warning: failed to open model pack %s: %v", path, err)
			continue
		}

		info, statErr := os.Stat(path)
		for _, entry := range pack.Entries {
			d, err := disease.Parse(entry.Artifact.Name)
			if err != nil {
				log.Printf("Warning: pack %s: %v", name, err)
				continue
			}
			if _, exists := s.handles[d]; exists {
				continue
			}

			h := &Handle{
				Disease:  d,
				Model:    entry.Artifact.Model(),
				Kind:     entry.Artifact.Kind,
				Created:  entry.Artifact.Created,
				Source:   path,
				FromPack: true,
				Size:     entry.Size,
			}
			if statErr == nil {
				h.Modified = info.ModTime()
			}
			s.handles[d] = h
			log.Printf("Loaded %s model from pack %s", d, path)
		}
	}
}

// Lookup returns the handle for a disease when its model loaded
func (s *Store) Lookup(d disease.Disease) (*Handle, bool) {
	h, ok := s.handles[d]
	return h, ok
}

// Model returns just the classifier for a disease
func (s *Store) Model(d disease.Disease) (*classifier.LinearModel, bool) {
	h, ok := s.handles[d]
	if !ok {
		return nil, false
	}
	return h.Model, true
}

// Loaded returns how many of the three models are resident
func (s *Store) Loaded() int {
	return len(s.handles)
}

// Dir returns the directory the store was opened on
func (s *Store) Dir() string {
	return s.dir
}

// Statuses reports every disease slot in menu order, loaded or not
func (s *Store) Statuses() []Status {
	return lo.Map(disease.All(), func(d disease.Disease, _ int) Status {
		st := Status{
			Disease: d,
			Title:   d.Title(),
			Error:   s.errors[d],
		}
		if h, ok := s.handles[d]; ok {
			st.Loaded = true
			st.Kind = string(h.Kind)
			st.Features = h.Model.Features()
			st.Source = h.Source
			st.Size = h.Size
			if !h.Modified.IsZero() {
				st.Modified = h.Modified.UTC().Format(time.RFC3339)
			}
		}
		return st
	})
}
