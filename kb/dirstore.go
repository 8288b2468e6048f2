package kb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// DirStore reads model metadata from a directory holding one YAML file per
// model, named "<model>.yaml".
type DirStore struct {
	dir string
}

func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// modelDoc is the on-disk metadata schema.
type modelDoc struct {
	ItemType      string   `yaml:"item-type"`
	Species       []string `yaml:"species"`
	SimulatorName string   `yaml:"simulator-name"`
	Units         string   `yaml:"units"`
	AtomStyle     string   `yaml:"atom-style"`
	ModelDefn     []string `yaml:"model-defn"`
}

func (s *DirStore) Lookup(name string) (*Model, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
		return nil, fmt.Errorf("kb: reading metadata for %q: %w", name, err)
	}

	var doc modelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrMalformed, name, err)
	}

	m := &Model{
		Name:          name,
		Species:       doc.Species,
		SimulatorName: doc.SimulatorName,
		Units:         doc.Units,
		AtomStyle:     doc.AtomStyle,
		ModelDefn:     doc.ModelDefn,
	}
	switch doc.ItemType {
	case "portable-model":
		m.Type = ItemPortableModel
	case "simulator-model":
		m.Type = ItemSimulatorModel
	default:
		return nil, fmt.Errorf("%w: %q has item-type %q", ErrMalformed, name, doc.ItemType)
	}
	return m, nil
}

func (s *DirStore) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("kb: reading knowledgebase directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names, nil
}
