// Package units handles conversion between the mass unit systems understood
// by the supported simulation engines. ASE quantities carry masses in atomic
// mass units; LAMMPS-style engines declare one of a fixed set of unit systems
// and expect masses expressed in that system.
package units

import (
	"errors"
	"fmt"
)

// Recognized unit systems. ASE is the native system of this codebase;
// the rest are the LAMMPS unit-system vocabulary.
const (
	ASE      = "ase"
	Metal    = "metal"
	Real     = "real"
	SI       = "si"
	CGS      = "cgs"
	Electron = "electron"
	Micro    = "micro"
	Nano     = "nano"
)

// ErrUnknownSystem indicates a unit system outside the recognized vocabulary.
var ErrUnknownSystem = errors.New("units: unknown unit system")

// One atomic mass unit in grams (CODATA 2018).
const amuGrams = 1.66053906660e-24

// massUnitGrams gives each system's mass unit expressed in grams.
var massUnitGrams = map[string]float64{
	ASE:      amuGrams, // amu
	Metal:    amuGrams, // grams/mole
	Real:     amuGrams, // grams/mole
	SI:       1e3,      // kilograms
	CGS:      1.0,      // grams
	Electron: amuGrams, // amu
	Micro:    1e-12,    // picograms
	Nano:     1e-18,    // attograms
}

// Known reports whether system is part of the recognized vocabulary.
func Known(system string) bool {
	_, ok := massUnitGrams[system]
	return ok
}

// ConvertMass converts a mass value between two unit systems.
func ConvertMass(value float64, from, to string) (float64, error) {
	f, ok := massUnitGrams[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, from)
	}
	t, ok := massUnitGrams[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSystem, to)
	}
	return value * (f / t), nil
}
