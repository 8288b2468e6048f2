// Package lammpslib configures the linked-library LAMMPS backend, which
// takes its setup as header command lines and an explicit species-to-type
// mapping instead of input files.
package lammpslib

import (
	"fmt"
	"strings"
)

// Config is the generated engine configuration.
type Config struct {
	// LammpsHeader is scanned by the engine for the units declaration,
	// then executed before any interaction is defined.
	LammpsHeader []string

	// Cmds defines the interactions for every supported species.
	Cmds []string

	// AtomTypes maps each species to its 1-indexed engine type, following
	// metadata species order.
	AtomTypes map[string]int

	LogFile   string
	KeepAlive bool
}

// BuildConfig translates simulator model metadata into engine configuration.
func BuildConfig(modelName, supportedUnits string, species []string) Config {
	// The units line is redundant with kim_init but the engine locates its
	// unit system by scanning the header for it.
	header := []string{
		"units " + supportedUnits,
		fmt.Sprintf("kim_init %s %s", modelName, supportedUnits),
		"atom_modify map array sort 0 0",
	}

	atomTypes := make(map[string]int, len(species))
	for i, symbol := range species {
		atomTypes[symbol] = i + 1
	}

	return Config{
		LammpsHeader: header,
		Cmds:         []string{"kim_interactions " + strings.Join(species, " ")},
		AtomTypes:    atomTypes,
		LogFile:      "lammps.log",
		KeepAlive:    true,
	}
}

// Calculator is a configured lammpslib backend.
type Calculator struct {
	ModelName string
	Config    Config
	Options   map[string]any
}

func New(modelName string, cfg Config, options map[string]any) *Calculator {
	return &Calculator{ModelName: modelName, Config: cfg, Options: options}
}

func (c *Calculator) Name() string { return "lammpslib" }
