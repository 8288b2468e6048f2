package asap

import (
	"errors"
	"testing"

	"github.com/dpalmer-anl/ase/calculator"
)

type stubEMT struct {
	params     ParamSet
	subtractE0 bool
}

func (s *stubEMT) Name() string         { return "asap-emt" }
func (s *stubEMT) SetSubtractE0(v bool) { s.subtractE0 = v }

type stubProvider struct {
	lastEMT  *stubEMT
	openKIMs int
}

func (p *stubProvider) OpenKIM(modelName string, verbose bool, options map[string]any) (calculator.Calculator, error) {
	p.openKIMs++
	return &stubEMT{}, nil
}

func (p *stubProvider) EMT(params ParamSet) (EMTCalculator, error) {
	p.lastEMT = &stubEMT{params: params, subtractE0: true}
	return p.lastEMT, nil
}

func withProvider(t *testing.T) *stubProvider {
	t.Helper()
	p := &stubProvider{}
	Register(p)
	t.Cleanup(func() { Register(nil) })
	return p
}

func TestMissingDependency(t *testing.T) {
	Register(nil)

	if _, err := NewPortable("m", false, nil); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("expected ErrMissingDependency, got %v", err)
	}
	if _, err := NewSimulatorModel("m", "ase", []string{"EMT"}); !errors.Is(err, ErrMissingDependency) {
		t.Errorf("expected ErrMissingDependency, got %v", err)
	}
}

func TestNewPortable(t *testing.T) {
	p := withProvider(t)

	c, err := NewPortable("EAM_Dynamo_X__MO_000000000000_000", true, map[string]any{"x": 1})
	if err != nil {
		t.Fatal(err)
	}
	if c == nil || p.openKIMs != 1 {
		t.Error("provider OpenKIM not invoked")
	}
}

func TestNewSimulatorModelUnitMismatch(t *testing.T) {
	withProvider(t)

	_, err := NewSimulatorModel("m", "metal", []string{"EMT"})
	if !errors.Is(err, ErrUnitMismatch) {
		t.Errorf("expected ErrUnitMismatch, got %v", err)
	}
}

func TestNewSimulatorModelDefnValidation(t *testing.T) {
	withProvider(t)

	tests := []struct {
		name string
		defn []string
	}{
		{"empty list", []string{}},
		{"two entries", []string{"EMT", "EMT"}},
		{"empty string", []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSimulatorModel("m", "ase", tt.defn); !errors.Is(err, ErrModelDefn) {
				t.Errorf("expected ErrModelDefn, got %v", err)
			}
		})
	}
}

func TestNewSimulatorModelParamSets(t *testing.T) {
	tests := []struct {
		defn string
		want ParamSet
	}{
		{"EMT", ParamsDefault},
		{"  EMT  ", ParamsDefault},
		{"EMT(EMTRasmussenParameters)", ParamsRasmussen},
		{"EMT(EMTMetalGlassParameters)", ParamsMetalGlass},
	}
	for _, tt := range tests {
		t.Run(tt.defn, func(t *testing.T) {
			p := withProvider(t)
			c, err := NewSimulatorModel("m", "ase", []string{tt.defn})
			if err != nil {
				t.Fatal(err)
			}
			if c == nil || p.lastEMT.params != tt.want {
				t.Errorf("expected param set %v, got %v", tt.want, p.lastEMT.params)
			}
			if p.lastEMT.subtractE0 {
				t.Error("subtract-E0 should be disabled after construction")
			}
		})
	}
}

func TestNewSimulatorModelUnsupported(t *testing.T) {
	withProvider(t)

	if _, err := NewSimulatorModel("m", "ase", []string{"EMT(MysteryParameters)"}); !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("expected ErrUnsupportedModel, got %v", err)
	}
	if _, err := NewSimulatorModel("m", "ase", []string{"pair_style eam"}); !errors.Is(err, ErrUnsupportedModel) {
		t.Errorf("expected ErrUnsupportedModel, got %v", err)
	}
}
