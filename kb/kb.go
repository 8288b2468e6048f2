package kb

import (
	"errors"
	"fmt"
	"sync"
)

// ItemType classifies a knowledgebase item.
type ItemType int

const (
	ItemUnknown ItemType = iota
	ItemPortableModel
	ItemSimulatorModel
)

func (t ItemType) String() string {
	switch t {
	case ItemPortableModel:
		return "portable-model"
	case ItemSimulatorModel:
		return "simulator-model"
	}
	return "unknown"
}

// Lookup errors.
var (
	// ErrNotFound indicates the model name is unknown to the knowledgebase.
	ErrNotFound = errors.New("kb: model not found in knowledgebase")

	// ErrMalformed indicates the stored metadata is absent or inconsistent.
	ErrMalformed = errors.New("kb: malformed model metadata")

	// ErrClosed indicates a read through an already released handle.
	ErrClosed = errors.New("kb: handle is closed")
)

// Model is the stored metadata record for one knowledgebase item.
// Species order is significant: it fixes type-index assignment downstream.
type Model struct {
	Name          string
	Type          ItemType
	Species       []string
	SimulatorName string   // simulator models only
	Units         string   // simulator models only
	AtomStyle     string   // optional, simulator models only
	ModelDefn     []string // simulator models only
}

func (m *Model) clone() *Model {
	c := *m
	c.Species = append([]string(nil), m.Species...)
	c.ModelDefn = append([]string(nil), m.ModelDefn...)
	return &c
}

// Store is the knowledgebase lookup contract.
type Store interface {
	Lookup(name string) (*Model, error)
}

// Lister is implemented by stores that can enumerate their items.
type Lister interface {
	Names() ([]string, error)
}

var (
	defMu    sync.RWMutex
	defStore Store = NewMemStore()
)

// Default returns the process-wide knowledgebase store.
func Default() Store {
	defMu.RLock()
	defer defMu.RUnlock()
	return defStore
}

// SetDefault replaces the process-wide knowledgebase store.
func SetDefault(s Store) {
	defMu.Lock()
	defer defMu.Unlock()
	defStore = s
}

// Collection is a scoped handle over the knowledgebase used to classify
// items by name.
type Collection struct {
	store  Store
	closed bool
}

// OpenCollection acquires a collection handle on the default store.
func OpenCollection() (*Collection, error) {
	return &Collection{store: Default()}, nil
}

// ItemType reports the classification of the named item.
func (c *Collection) ItemType(name string) (ItemType, error) {
	if c.closed {
		return ItemUnknown, fmt.Errorf("%w: collection", ErrClosed)
	}
	m, err := c.store.Lookup(name)
	if err != nil {
		return ItemUnknown, err
	}
	return m.Type, nil
}

// Close releases the handle. Further reads fail.
func (c *Collection) Close() error {
	c.closed = true
	return nil
}

// SimulatorModel is a scoped handle over one simulator model's metadata.
// Fields are read-only snapshots taken at open time.
type SimulatorModel struct {
	SimulatorName string
	Species       []string
	Units         string
	AtomStyle     string
	ModelDefn     []string

	closed bool
}

// OpenSimulatorModel acquires a metadata handle for the named simulator
// model from the default store. It fails with ErrMalformed when the item is
// not a simulator model or its required fields are missing.
func OpenSimulatorModel(name string) (*SimulatorModel, error) {
	m, err := Default().Lookup(name)
	if err != nil {
		return nil, err
	}
	if m.Type != ItemSimulatorModel {
		return nil, fmt.Errorf("%w: %s is not a simulator model", ErrMalformed, name)
	}
	if m.SimulatorName == "" || len(m.Species) == 0 || m.Units == "" {
		return nil, fmt.Errorf("%w: incomplete simulator model metadata for %s", ErrMalformed, name)
	}
	c := m.clone()
	return &SimulatorModel{
		SimulatorName: c.SimulatorName,
		Species:       c.Species,
		Units:         c.Units,
		AtomStyle:     c.AtomStyle,
		ModelDefn:     c.ModelDefn,
	}, nil
}

// Closed reports whether the handle has been released.
func (sm *SimulatorModel) Closed() bool { return sm.closed }

// Close releases the handle.
func (sm *SimulatorModel) Close() error {
	sm.closed = true
	return nil
}
