package units

import (
	"errors"
	"math"
	"testing"
)

func TestConvertMassIdentity(t *testing.T) {
	// metal and real share ASE's mass unit, so values pass through exactly
	for _, sys := range []string{Metal, Real, Electron, ASE} {
		got, err := ConvertMass(26.9815385, ASE, sys)
		if err != nil {
			t.Fatalf("ConvertMass to %s: %v", sys, err)
		}
		if got != 26.9815385 {
			t.Errorf("ConvertMass to %s: expected identity, got %v", sys, got)
		}
	}
}

func TestConvertMassSI(t *testing.T) {
	got, err := ConvertMass(1.0, ASE, SI)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.66053906660e-27 // one amu in kilograms
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("expected %v kg, got %v", want, got)
	}
}

func TestConvertMassCGS(t *testing.T) {
	got, err := ConvertMass(1.0, ASE, CGS)
	if err != nil {
		t.Fatal(err)
	}
	want := 1.66053906660e-24 // grams
	if math.Abs(got-want)/want > 1e-12 {
		t.Errorf("expected %v g, got %v", want, got)
	}
}

func TestConvertMassUnknownSystem(t *testing.T) {
	if _, err := ConvertMass(1.0, ASE, "imperial"); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
	if _, err := ConvertMass(1.0, "imperial", Metal); !errors.Is(err, ErrUnknownSystem) {
		t.Errorf("expected ErrUnknownSystem, got %v", err)
	}
}

func TestKnown(t *testing.T) {
	for _, sys := range []string{ASE, Metal, Real, SI, CGS, Electron, Micro, Nano} {
		if !Known(sys) {
			t.Errorf("%s should be known", sys)
		}
	}
	if Known("lj") {
		t.Error("lj should not be known")
	}
}
