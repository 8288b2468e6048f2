// Package asap selects calculators from the embedded ASAP simulation
// library. The library is an optional dependency: its binding registers a
// [Provider] at init time, and every entry point fails with
// [ErrMissingDependency] when none is registered.
package asap

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/dpalmer-anl/ase/calculator"
	"github.com/dpalmer-anl/ase/internal/units"
)

var (
	// ErrMissingDependency indicates no ASAP provider is registered.
	ErrMissingDependency = errors.New("asap: the asap library is not installed")

	// ErrUnitMismatch indicates a simulator model whose units are not "ase",
	// the only unit system the library accepts.
	ErrUnitMismatch = errors.New(`asap: simulator model units must be "ase"`)

	// ErrModelDefn indicates a model definition that is empty, has more
	// than one line, or contains an empty string.
	ErrModelDefn = errors.New("asap: malformed model-defn in simulator model metadata")

	// ErrUnsupportedModel indicates a model definition the library has no
	// built-in potential for.
	ErrUnsupportedModel = errors.New("asap: unsupported model definition")
)

// ParamSet identifies a built-in parameter set for the EMT potential.
type ParamSet int

const (
	ParamsDefault ParamSet = iota
	ParamsRasmussen
	ParamsMetalGlass
)

func (p ParamSet) String() string {
	switch p {
	case ParamsRasmussen:
		return "EMTRasmussenParameters"
	case ParamsMetalGlass:
		return "EMTMetalGlassParameters"
	}
	return "default"
}

// EMTCalculator is the handle returned for the built-in EMT potential.
type EMTCalculator interface {
	calculator.Calculator

	// SetSubtractE0 toggles referencing isolated-atom energy against the
	// crystalline ground state.
	SetSubtractE0(bool)
}

// Provider is the constructor surface of the ASAP library binding.
type Provider interface {
	// OpenKIM wraps a portable model in the library's model interface.
	OpenKIM(modelName string, verbose bool, options map[string]any) (calculator.Calculator, error)

	// EMT constructs the built-in EMT potential with the given parameter set.
	EMT(params ParamSet) (EMTCalculator, error)
}

var (
	providerMu sync.RWMutex
	provider   Provider
)

// Register installs p as the active provider. Register(nil) removes it.
func Register(p Provider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	provider = p
}

func activeProvider() (Provider, error) {
	providerMu.RLock()
	defer providerMu.RUnlock()
	if provider == nil {
		return nil, ErrMissingDependency
	}
	return provider, nil
}

// NewPortable wraps a portable model in the library's own model interface.
func NewPortable(modelName string, verbose bool, options map[string]any) (calculator.Calculator, error) {
	p, err := activeProvider()
	if err != nil {
		return nil, err
	}
	return p.OpenKIM(modelName, verbose, options)
}

// NewSimulatorModel constructs the built-in potential named by a simulator
// model's definition line. The model's units must be "ase" and the
// definition must be exactly one non-empty line.
func NewSimulatorModel(modelName, supportedUnits string, modelDefn []string) (calculator.Calculator, error) {
	p, err := activeProvider()
	if err != nil {
		return nil, err
	}

	if supportedUnits != units.ASE {
		return nil, fmt.Errorf("%w: simulator model %s declares %q", ErrUnitMismatch, modelName, supportedUnits)
	}

	defn, err := singleDefnLine(modelName, modelDefn)
	if err != nil {
		return nil, err
	}

	params, err := parseEMTDefn(defn)
	if err != nil {
		return nil, err
	}

	calc, err := p.EMT(params)
	if err != nil {
		return nil, err
	}

	// Isolated-atom energy is zero in the knowledgebase convention, not
	// referenced against perfect FCC.
	calc.SetSubtractE0(false)

	return calc, nil
}

func singleDefnLine(modelName string, modelDefn []string) (string, error) {
	switch {
	case len(modelDefn) == 0:
		return "", fmt.Errorf("%w: model-defn of %s is empty", ErrModelDefn, modelName)
	case len(modelDefn) > 1:
		return "", fmt.Errorf("%w: model-defn of %s should contain one entry, found %d",
			ErrModelDefn, modelName, len(modelDefn))
	case modelDefn[0] == "":
		return "", fmt.Errorf("%w: model-defn of %s contains an empty string", ErrModelDefn, modelName)
	}
	return strings.TrimSpace(modelDefn[0]), nil
}

var paramSetRe = regexp.MustCompile(`\(([A-Za-z0-9_()]+)\)`)

func parseEMTDefn(defn string) (ParamSet, error) {
	if !strings.HasPrefix(defn, "EMT") {
		return ParamsDefault, fmt.Errorf("%w: %q", ErrUnsupportedModel, defn)
	}

	m := paramSetRe.FindStringSubmatch(defn)
	if m == nil {
		return ParamsDefault, nil
	}
	switch pp := m[1]; {
	case strings.HasPrefix(pp, "EMTRasmussenParameters"):
		return ParamsRasmussen, nil
	case strings.HasPrefix(pp, "EMTMetalGlassParameters"):
		return ParamsMetalGlass, nil
	default:
		return ParamsDefault, fmt.Errorf("%w: %q", ErrUnsupportedModel, defn)
	}
}
