package kim

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/dpalmer-anl/ase/calculator"
	"github.com/dpalmer-anl/ase/calculator/asap"
	"github.com/dpalmer-anl/ase/calculator/kimmodel"
	"github.com/dpalmer-anl/ase/calculator/lammpslib"
	"github.com/dpalmer-anl/ase/calculator/lammpsrun"
	"github.com/dpalmer-anl/ase/internal/units"
	"github.com/dpalmer-anl/ase/kb"
)

// Backend names accepted by Params.Backend.
const (
	BackendKIMModel  = "kimmodel"
	BackendLAMMPSRun = "lammpsrun"
	BackendLAMMPSLib = "lammpslib"
	BackendASAP      = "asap"
)

// Native simulator names found in simulator model metadata.
const (
	simulatorASAP   = "ASAP"
	simulatorLAMMPS = "LAMMPS"
)

// Params configures calculator selection. The zero value picks the default
// backend for the model's classification with no extra options.
type Params struct {
	// Backend picks the engine explicitly. Empty means kimmodel for
	// portable models and the native engine for simulator models.
	Backend string

	// Options are passed through to the resolved backend's constructor.
	// Keys the dispatcher computes itself are rejected.
	Options map[string]any

	// Debug enables verbose logging; the lammpsrun backend additionally
	// keeps its temporary files.
	Debug bool
}

// request carries one dispatch call's state through the builders.
type request struct {
	model   string
	options map[string]any
	debug   bool
	log     zerolog.Logger
	info    *simulatorInfo // nil for portable models
}

type builder func(*request) (calculator.Calculator, error)

// The backend sets are closed: resolution is a table lookup, and a missing
// entry is the only way to get an unknown-backend failure.
var portableBuilders = map[string]builder{
	BackendKIMModel:  buildKIMModel,
	BackendASAP:      buildASAPPortable,
	BackendLAMMPSRun: buildLAMMPSRunPortable,
	BackendLAMMPSLib: rejectLAMMPSLibPortable,
}

var lammpsBuilders = map[string]builder{
	BackendLAMMPSRun: buildLAMMPSRunSM,
	BackendLAMMPSLib: buildLAMMPSLibSM,
}

// NewCalculator returns a calculator configured for the named model.
func NewCalculator(modelName string, p *Params) (calculator.Calculator, error) {
	if p == nil {
		p = &Params{}
	}
	req := &request{
		model:   modelName,
		options: p.Options,
		debug:   p.Debug,
		log:     zerolog.Nop(),
	}
	if req.options == nil {
		req.options = map[string]any{}
	}
	if p.Debug {
		req.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	portable, err := isPortableModel(modelName)
	if err != nil {
		return nil, err
	}

	if portable {
		req.log.Debug().Str("model", modelName).Msg("classified as portable model")
		return dispatchPortable(req, p.Backend)
	}
	req.log.Debug().Str("model", modelName).Msg("classified as simulator model")
	return dispatchSimulatorModel(req, p.Backend)
}

// SupportedSpecies returns the species a model supports, in the order the
// knowledgebase declares them.
func SupportedSpecies(modelName string) ([]string, error) {
	portable, err := isPortableModel(modelName)
	if err != nil {
		return nil, err
	}
	if portable {
		return kimmodel.SupportedSpecies(modelName)
	}
	info, err := simulatorModelInfo(modelName)
	if err != nil {
		return nil, err
	}
	return info.Species, nil
}

func dispatchPortable(req *request, backend string) (calculator.Calculator, error) {
	if backend == "" {
		backend = BackendKIMModel
	}
	build, ok := portableBuilders[backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q requested for portable model %s",
			ErrUnknownBackend, backend, req.model)
	}
	req.log.Debug().Str("backend", backend).Msg("resolved backend")
	return build(req)
}

func dispatchSimulatorModel(req *request, backend string) (calculator.Calculator, error) {
	info, err := simulatorModelInfo(req.model)
	if err != nil {
		return nil, err
	}
	req.info = info
	req.log.Debug().
		Str("simulator", info.SimulatorName).
		Strs("species", info.Species).
		Str("units", info.Units).
		Msg("extracted simulator model metadata")

	switch info.SimulatorName {
	case simulatorASAP:
		if backend == "" {
			backend = BackendASAP
		}
		if err := checkConflictOptions(req.options, asapSMNotAllowed, backend); err != nil {
			return nil, err
		}
		req.log.Debug().Str("backend", BackendASAP).Msg("resolved backend")
		return asap.NewSimulatorModel(req.model, info.Units, info.ModelDefn)

	case simulatorLAMMPS:
		if backend == "" {
			backend = BackendLAMMPSLib
		}
		build, ok := lammpsBuilders[backend]
		if !ok {
			return nil, fmt.Errorf("%w: %q requested for a LAMMPS simulator model",
				ErrUnknownBackend, backend)
		}
		req.log.Debug().Str("backend", backend).Msg("resolved backend")
		return build(req)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSimulator, info.SimulatorName)
	}
}

func buildKIMModel(req *request) (calculator.Calculator, error) {
	if err := checkConflictOptions(req.options, kimmodelNotAllowed, BackendKIMModel); err != nil {
		return nil, err
	}
	return kimmodel.New(req.model, req.debug, req.options)
}

func buildASAPPortable(req *request) (calculator.Calculator, error) {
	if err := checkConflictOptions(req.options, asapPMNotAllowed, BackendASAP); err != nil {
		return nil, err
	}
	return asap.NewPortable(req.model, req.debug, req.options)
}

func buildLAMMPSRunPortable(req *request) (calculator.Calculator, error) {
	if err := checkConflictOptions(req.options, lammpsrunNotAllowed, BackendLAMMPSRun); err != nil {
		return nil, err
	}
	species, err := kimmodel.SupportedSpecies(req.model)
	if err != nil {
		return nil, err
	}
	// Portable models carry no unit metadata; the scripted engine runs
	// them under metal units.
	params, err := lammpsrun.BuildParameters(req.model, units.Metal, species, "")
	if err != nil {
		return nil, err
	}
	return lammpsrun.New(req.model, params, species, req.debug, req.options), nil
}

func rejectLAMMPSLibPortable(req *request) (calculator.Calculator, error) {
	return nil, fmt.Errorf("%w: lammpslib cannot drive portable model %s, use lammpsrun instead",
		ErrUnsupportedCombination, req.model)
}

func buildLAMMPSRunSM(req *request) (calculator.Calculator, error) {
	if err := checkConflictOptions(req.options, lammpsrunNotAllowed, BackendLAMMPSRun); err != nil {
		return nil, err
	}
	params, err := lammpsrun.BuildParameters(req.model, req.info.Units, req.info.Species, req.info.AtomStyle)
	if err != nil {
		return nil, err
	}
	return lammpsrun.New(req.model, params, req.info.Species, req.debug, req.options), nil
}

func buildLAMMPSLibSM(req *request) (calculator.Calculator, error) {
	if err := checkConflictOptions(req.options, lammpslibNotAllowed, BackendLAMMPSLib); err != nil {
		return nil, err
	}
	cfg := lammpslib.BuildConfig(req.model, req.info.Units, req.info.Species)
	return lammpslib.New(req.model, cfg, req.options), nil
}

// isPortableModel classifies the model through a scoped collection handle.
func isPortableModel(modelName string) (portable bool, err error) {
	col, err := kb.OpenCollection()
	if err != nil {
		return false, err
	}
	defer func() {
		if cerr := col.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	typ, err := col.ItemType(modelName)
	if err != nil {
		return false, err
	}
	return typ == kb.ItemPortableModel, nil
}

// simulatorInfo is a per-call snapshot of simulator model metadata.
type simulatorInfo struct {
	SimulatorName string
	Species       []string
	Units         string
	AtomStyle     string
	ModelDefn     []string
}

// simulatorModelInfo reads simulator model metadata through a scoped
// handle, releasing it on every exit path.
func simulatorModelInfo(modelName string) (info *simulatorInfo, err error) {
	sm, err := kb.OpenSimulatorModel(modelName)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sm.Close(); cerr != nil && err == nil {
			err = cerr
			info = nil
		}
	}()

	return &simulatorInfo{
		SimulatorName: sm.SimulatorName,
		Species:       sm.Species,
		Units:         sm.Units,
		AtomStyle:     sm.AtomStyle,
		ModelDefn:     sm.ModelDefn,
	}, nil
}
