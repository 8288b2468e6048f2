// Package lammpsrun configures the file-and-script driven LAMMPS backend.
// It generates the kim_init/kim_interactions command lines and the
// per-species mass table the engine needs, leaving the engine itself
// external.
package lammpsrun

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dpalmer-anl/ase/internal/elements"
	"github.com/dpalmer-anl/ase/internal/units"
)

// Parameters is the generated engine configuration.
type Parameters struct {
	// AtomStyle is set when the model metadata supplies one. The engine
	// writes intermediate data files and needs the atom layout to do so.
	AtomStyle string

	// Units is forced to the model's unit system so the engine default
	// cannot silently override it.
	Units string

	// ModelInit holds initialization commands, the first being
	// "kim_init <model> <units>".
	ModelInit []string

	// KimInteractions declares the interaction for every supported
	// species, in metadata order.
	KimInteractions string

	// Masses holds one "<type index> <mass>" line per species, 1-indexed
	// in metadata order, with masses converted to Units.
	Masses []string
}

// BuildParameters translates model metadata into engine parameters.
// Species order is preserved: it fixes the engine's type-index assignment.
func BuildParameters(modelName, supportedUnits string, species []string, atomStyle string) (Parameters, error) {
	p := Parameters{
		AtomStyle: atomStyle,
		Units:     supportedUnits,
		ModelInit: []string{fmt.Sprintf("kim_init %s %s", modelName, supportedUnits)},
	}
	p.KimInteractions = "kim_interactions " + strings.Join(species, " ")

	for i, symbol := range species {
		mass, err := elements.Mass(symbol)
		if err != nil {
			return Parameters{}, err
		}
		converted, err := units.ConvertMass(mass, units.ASE, supportedUnits)
		if err != nil {
			return Parameters{}, err
		}
		p.Masses = append(p.Masses,
			fmt.Sprintf("%d %s", i+1, strconv.FormatFloat(converted, 'g', -1, 64)))
	}
	return p, nil
}

// Calculator is a configured lammpsrun backend.
type Calculator struct {
	ModelName    string
	Parameters   Parameters
	Specorder    []string
	KeepTmpFiles bool
	Options      map[string]any
}

func New(modelName string, params Parameters, specorder []string, keepTmpFiles bool, options map[string]any) *Calculator {
	return &Calculator{
		ModelName:    modelName,
		Parameters:   params,
		Specorder:    append([]string(nil), specorder...),
		KeepTmpFiles: keepTmpFiles,
		Options:      options,
	}
}

func (c *Calculator) Name() string { return "lammpsrun" }
