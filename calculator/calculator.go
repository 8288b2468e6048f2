// Package calculator defines the contract shared by every force-calculation
// backend a model can be dispatched to. Concrete backends live in the
// subpackages kimmodel, lammpsrun, lammpslib and asap.
package calculator

// Calculator is a configured force/energy engine. The concrete types expose
// the backend-specific configuration that was generated for them; the
// numerical engines themselves are external to this codebase.
type Calculator interface {
	// Name identifies the backing engine, e.g. "kimmodel" or "lammpsrun".
	Name() string
}
