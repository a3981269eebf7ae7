// Package catalog reads the set files written by the offline fetch tool from a data directory.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/malexanderboyd/pwr9-botdr4ft/internal"
	"github.com/malexanderboyd/pwr9-botdr4ft/internal/card"
)

const (
	ManifestFile = "manifest.json"
	// DefaultBonusFile is the conventional name of the bonus-sheet set file.
	DefaultBonusFile = "plst.json"
)

var ErrSetNotFound = errors.New("set not found")

// SetInfo is one entry of the manifest.
type SetInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Store serves set data out of dir. The manifest is cached and refreshed by Watch.
type Store struct {
	dir       string
	bonusFile string

	mu       sync.RWMutex
	manifest []SetInfo
}

func NewStore(dir, bonusFile string) *Store {
	if bonusFile == "" {
		bonusFile = DefaultBonusFile
	}
	return &Store{dir: dir, bonusFile: bonusFile}
}

// LoadSet reads <dir>/<code>.json.
func (s *Store) LoadSet(code string) ([]card.Record, error) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || strings.ContainsAny(code, `/\.`) {
		return nil, fmt.Errorf("%w: %q", ErrSetNotFound, code)
	}
	records, err := readRecords(filepath.Join(s.dir, code+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, code)
	}
	return records, err
}

// LoadBonus reads the bonus sheet. A missing file is not an error; the bonus slot then
// falls back to a common.
func (s *Store) LoadBonus() []card.Record {
	logger := internal.GetLogger()
	path := s.bonusFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	records, err := readRecords(path)
	if err != nil {
		logger.Warnw("bonus cards not loaded", "path", path, "error", err.Error())
		return nil
	}
	return records
}

func readRecords(path string) ([]card.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read set file: %w", err)
	}
	var records []card.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse set file %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// Manifest returns the sets available for drafting.
func (s *Store) Manifest() ([]SetInfo, error) {
	s.mu.RLock()
	cached := s.manifest
	s.mu.RUnlock()
	if cached != nil {
		return append([]SetInfo(nil), cached...), nil
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]SetInfo(nil), s.manifest...), nil
}

// Refresh rereads manifest.json, or lists the set files in dir when there is none.
func (s *Store) Refresh() error {
	manifest, err := s.readManifest()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.manifest = manifest
	s.mu.Unlock()
	return nil
}

func (s *Store) readManifest() ([]SetInfo, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, ManifestFile))
	if err == nil {
		var sets []SetInfo
		if err := json.Unmarshal(data, &sets); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
		return sets, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}
	sets := []SetInfo{}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" || name == ManifestFile || name == filepath.Base(s.bonusFile) {
			continue
		}
		code := strings.TrimSuffix(name, ".json")
		sets = append(sets, SetInfo{Code: code, Name: strings.ToUpper(code)})
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].Code < sets[j].Code })
	return sets, nil
}

var basicLandNames = []string{"Plains", "Island", "Swamp", "Mountain", "Forest"}

// BasicLandTemplates finds the set's record for each basic land type by name.
func BasicLandTemplates(records []card.Record) map[string]card.Record {
	templates := make(map[string]card.Record, len(basicLandNames))
	for _, name := range basicLandNames {
		for _, r := range records {
			if r.Name == name {
				templates[name] = r
				break
			}
		}
	}
	return templates
}
