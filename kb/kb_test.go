package kb

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func seedStore(t *testing.T) *MemStore {
	t.Helper()
	s := NewMemStore()
	if err := s.Add(&Model{
		Name:    "EAM_Dynamo_X__MO_000000000000_000",
		Type:    ItemPortableModel,
		Species: []string{"Al"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(&Model{
		Name:          "Sim_LAMMPS_X__SM_000000000000_000",
		Type:          ItemSimulatorModel,
		Species:       []string{"Al", "Ni"},
		SimulatorName: "LAMMPS",
		Units:         "metal",
		ModelDefn:     []string{"pair_style eam/alloy"},
	}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMemStoreLookup(t *testing.T) {
	s := seedStore(t)

	m, err := s.Lookup("Sim_LAMMPS_X__SM_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type != ItemSimulatorModel {
		t.Errorf("expected simulator model, got %v", m.Type)
	}
	if m.SimulatorName != "LAMMPS" {
		t.Errorf("expected LAMMPS, got %s", m.SimulatorName)
	}

	if _, err := s.Lookup("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemStoreLookupReturnsCopy(t *testing.T) {
	s := seedStore(t)
	m, err := s.Lookup("Sim_LAMMPS_X__SM_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	m.Species[0] = "Cu"

	again, err := s.Lookup("Sim_LAMMPS_X__SM_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	if again.Species[0] != "Al" {
		t.Error("lookup should return an independent copy")
	}
}

func TestMemStoreAddValidation(t *testing.T) {
	s := NewMemStore()
	if err := s.Add(&Model{Type: ItemPortableModel}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for nameless model, got %v", err)
	}
	if err := s.Add(&Model{Name: "x"}); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for untyped model, got %v", err)
	}
}

func TestCollectionHandle(t *testing.T) {
	SetDefault(seedStore(t))
	t.Cleanup(func() { SetDefault(NewMemStore()) })

	col, err := OpenCollection()
	if err != nil {
		t.Fatal(err)
	}
	typ, err := col.ItemType("EAM_Dynamo_X__MO_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	if typ != ItemPortableModel {
		t.Errorf("expected portable model, got %v", typ)
	}

	if err := col.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := col.ItemType("EAM_Dynamo_X__MO_000000000000_000"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

func TestOpenSimulatorModel(t *testing.T) {
	SetDefault(seedStore(t))
	t.Cleanup(func() { SetDefault(NewMemStore()) })

	sm, err := OpenSimulatorModel("Sim_LAMMPS_X__SM_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	defer sm.Close()

	if sm.SimulatorName != "LAMMPS" || sm.Units != "metal" {
		t.Errorf("unexpected metadata: %+v", sm)
	}
	if len(sm.Species) != 2 || sm.Species[0] != "Al" || sm.Species[1] != "Ni" {
		t.Errorf("species order not preserved: %v", sm.Species)
	}

	// portable items must not open as simulator models
	if _, err := OpenSimulatorModel("EAM_Dynamo_X__MO_000000000000_000"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestOpenSimulatorModelIncomplete(t *testing.T) {
	s := NewMemStore()
	if err := s.Add(&Model{
		Name:    "Sim_bad__SM_000000000000_000",
		Type:    ItemSimulatorModel,
		Species: []string{"Al"},
		// missing simulator name and units
	}); err != nil {
		t.Fatal(err)
	}
	SetDefault(s)
	t.Cleanup(func() { SetDefault(NewMemStore()) })

	if _, err := OpenSimulatorModel("Sim_bad__SM_000000000000_000"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestDirStore(t *testing.T) {
	dir := t.TempDir()

	portable := "item-type: portable-model\nspecies: [Al]\n"
	sim := `item-type: simulator-model
simulator-name: LAMMPS
species: [Al, Ni]
units: metal
atom-style: atomic
model-defn:
  - pair_style eam/alloy
`
	bad := "item-type: [not, a, string\n"

	writeMeta := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeMeta("EAM_Dynamo_X__MO_000000000000_000", portable)
	writeMeta("Sim_LAMMPS_X__SM_000000000000_000", sim)
	writeMeta("Broken__SM_000000000000_000", bad)

	s := NewDirStore(dir)

	m, err := s.Lookup("Sim_LAMMPS_X__SM_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type != ItemSimulatorModel || m.AtomStyle != "atomic" {
		t.Errorf("unexpected record: %+v", m)
	}
	if len(m.ModelDefn) != 1 || m.ModelDefn[0] != "pair_style eam/alloy" {
		t.Errorf("unexpected model-defn: %v", m.ModelDefn)
	}

	m, err = s.Lookup("EAM_Dynamo_X__MO_000000000000_000")
	if err != nil {
		t.Fatal(err)
	}
	if m.Type != ItemPortableModel {
		t.Errorf("expected portable model, got %v", m.Type)
	}

	if _, err := s.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Lookup("Broken__SM_000000000000_000"); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}

	names, err := s.Names()
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 3 {
		t.Errorf("expected 3 names, got %v", names)
	}
}
