// Package kimmodel drives portable models directly through the standard
// model-evaluation interface. This is the default backend for portable
// models.
package kimmodel

import (
	"fmt"
	"sync"

	"github.com/dpalmer-anl/ase/kb"
)

// Handle is an open connection to one portable model. Species queries go
// through an open handle; Close releases it.
type Handle interface {
	SupportedSpecies() ([]string, error)
	Close() error
}

// Driver opens portable models by name. The default driver answers species
// queries from the knowledgebase store; a native model-interface binding can
// install its own driver with SetDriver at program start.
type Driver func(modelName string) (Handle, error)

var (
	driverMu sync.RWMutex
	driver   Driver = kbDriver
)

// SetDriver replaces the portable-model driver.
func SetDriver(d Driver) {
	driverMu.Lock()
	defer driverMu.Unlock()
	driver = d
}

func open(modelName string) (Handle, error) {
	driverMu.RLock()
	d := driver
	driverMu.RUnlock()
	return d(modelName)
}

type kbHandle struct {
	species []string
	closed  bool
}

func kbDriver(modelName string) (Handle, error) {
	m, err := kb.Default().Lookup(modelName)
	if err != nil {
		return nil, err
	}
	return &kbHandle{species: append([]string(nil), m.Species...)}, nil
}

func (h *kbHandle) SupportedSpecies() ([]string, error) {
	if h.closed {
		return nil, fmt.Errorf("%w: portable model", kb.ErrClosed)
	}
	return append([]string(nil), h.species...), nil
}

func (h *kbHandle) Close() error {
	h.closed = true
	return nil
}

// SupportedSpecies opens a scoped handle for the model, reads its species
// list and releases the handle.
func SupportedSpecies(modelName string) (species []string, err error) {
	h, err := open(modelName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := h.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return h.SupportedSpecies()
}

// Calculator is a configured portable-model backend.
type Calculator struct {
	ModelName string
	Debug     bool

	// Neighbor-list tuning, settable through options.
	ASENeigh       bool    // use the host neighbor-list mechanism instead of the native one
	NeighSkinRatio float64 // skin distance as a fraction of the model cutoff
	ReleaseGIL     bool    // allow concurrent evaluation threads

	species []string
}

// New constructs a portable-model calculator. Recognized options are
// "ase_neigh" (bool), "neigh_skin_ratio" (float) and "release_GIL" (bool).
func New(modelName string, debug bool, options map[string]any) (*Calculator, error) {
	c := &Calculator{
		ModelName:      modelName,
		Debug:          debug,
		NeighSkinRatio: 0.2,
	}
	for key, value := range options {
		switch key {
		case "ase_neigh":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("kimmodel: option %q wants a bool, got %T", key, value)
			}
			c.ASENeigh = b
		case "neigh_skin_ratio":
			switch v := value.(type) {
			case float64:
				c.NeighSkinRatio = v
			case int:
				c.NeighSkinRatio = float64(v)
			default:
				return nil, fmt.Errorf("kimmodel: option %q wants a number, got %T", key, value)
			}
		case "release_GIL":
			b, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("kimmodel: option %q wants a bool, got %T", key, value)
			}
			c.ReleaseGIL = b
		default:
			return nil, fmt.Errorf("kimmodel: unknown option %q", key)
		}
	}

	species, err := SupportedSpecies(modelName)
	if err != nil {
		return nil, err
	}
	c.species = species
	return c, nil
}

func (c *Calculator) Name() string { return "kimmodel" }

// SupportedSpecies returns the species list read at construction time.
func (c *Calculator) SupportedSpecies() []string {
	return append([]string(nil), c.species...)
}
