package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats/scalar"
)

func writeDoc(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadFlatSystem(t *testing.T) {
	doc := `
bodies:
  - name: probe
    num: 3
    m: 2.0
    t: {x: 1, y: 1}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  body: probe
`
	path := writeDoc(t, doc)
	bodies, err := Load(path, rand.NewSource(1))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(bodies) != 3 {
		t.Fatalf("Load() returned %d bodies, want 3", len(bodies))
	}
	for _, b := range bodies {
		if b.Mass != 2.0 {
			t.Errorf("mass = %v, want 2.0", b.Mass)
		}
		if b.Position.X != 1 || b.Position.Y != 1 {
			t.Errorf("position = %v, want (1,1)", b.Position)
		}
	}
}

func TestLoadNestedSystemComposesTransforms(t *testing.T) {
	doc := `
bodies:
  - name: moon
    num: 1
    m: 1.0
    t: {x: 1, y: 0}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  t: {x: 10, y: 0}
  systems:
    - body: moon
`
	path := writeDoc(t, doc)
	bodies, err := Load(path, rand.NewSource(1))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(bodies) != 1 {
		t.Fatalf("Load() returned %d bodies, want 1", len(bodies))
	}
	// Parent translation (10,0) with zero rotation, plus the moon's own
	// offset (1,0), composes to an absolute position of (11,0).
	if want := 11.0; !scalar.EqualWithinAbs(bodies[0].Position.X, want, tolerance) {
		t.Errorf("x = %v, want %v", bodies[0].Position.X, want)
	}
}

func TestLoadUsesNamedGenerators(t *testing.T) {
	doc := `
gens:
  - name: masses
    type: mass
    low: 1.0
    high: 2.0

bodies:
  - name: star
    num: 10
    m: masses
    t: {x: 0, y: 0}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  body: star
`
	path := writeDoc(t, doc)
	bodies, err := Load(path, rand.NewSource(7))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if len(bodies) != 10 {
		t.Fatalf("Load() returned %d bodies, want 10", len(bodies))
	}
	for _, b := range bodies {
		if b.Mass < 1.0 || b.Mass > 2.0 {
			t.Errorf("mass = %v, want within [1.0, 2.0]", b.Mass)
		}
	}
}

func TestLoadIsDeterministicForAGivenSeed(t *testing.T) {
	doc := `
gens:
  - name: masses
    type: mass
    low: 1.0
    high: 100.0

bodies:
  - name: star
    num: 5
    m: masses
    t: {x: 0, y: 0}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  body: star
`
	path := writeDoc(t, doc)
	first, err := Load(path, rand.NewSource(42))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	second, err := Load(path, rand.NewSource(42))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	for i := range first {
		if first[i].Mass != second[i].Mass {
			t.Errorf("body %d mass differs between runs with the same seed: %v vs %v", i, first[i].Mass, second[i].Mass)
		}
	}
}

func TestLoadUnknownBodyReferenceFails(t *testing.T) {
	doc := `
bodies:
  - name: probe
    num: 1
    m: 1.0
    t: {x: 0, y: 0}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  body: nonexistent
`
	path := writeDoc(t, doc)
	_, err := Load(path, rand.NewSource(1))
	if !errors.Is(err, ErrUnknownReference) {
		t.Fatalf("Load() error = %v, want ErrUnknownReference", err)
	}
}

func TestLoadNonPositiveMassFails(t *testing.T) {
	doc := `
bodies:
  - name: probe
    num: 1
    m: -1.0
    t: {x: 0, y: 0}
    v: {dx: 0, dy: 0}
    r: 0

systems:
  body: probe
`
	path := writeDoc(t, doc)
	_, err := Load(path, rand.NewSource(1))
	if !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("Load() error = %v, want ErrInvalidValue", err)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), rand.NewSource(1))
	if err == nil {
		t.Fatal("Load() of a missing file should return an error")
	}
}

func TestLoadMalformedYAMLFails(t *testing.T) {
	path := writeDoc(t, "bodies: [this is not, valid: yaml: at all")
	_, err := Load(path, rand.NewSource(1))
	if err == nil {
		t.Fatal("Load() of malformed YAML should return an error")
	}
}
