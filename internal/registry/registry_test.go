package registry_test

import (
	"errors"
	"reflect"
	"testing"

	"lights-assistant/internal/domain"
	"lights-assistant/internal/registry"
)

func newTestRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	r, err := registry.New([]domain.Device{
		{ID: 1, Name: "Table Lamp", IsOn: false},
		{ID: 2, Name: "Porch Light", IsOn: false},
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return r
}

func TestRegistry_SetState(t *testing.T) {
	r := newTestRegistry(t)

	dev, err := r.SetState(1, true)
	if err != nil {
		t.Fatalf("SetState error: %v", err)
	}

	want := domain.Device{ID: 1, Name: "Table Lamp", IsOn: true}
	if dev != want {
		t.Errorf("SetState: got %+v, want %+v", dev, want)
	}

	lights := r.Lights()
	if len(lights) != 2 {
		t.Fatalf("Lights: got %d devices, want 2", len(lights))
	}
	if !lights[0].IsOn {
		t.Errorf("device 1 should be on after SetState(1, true)")
	}
	if lights[1].IsOn {
		t.Errorf("device 2 should be unaffected")
	}

	dev, err = r.SetState(1, false)
	if err != nil {
		t.Fatalf("SetState error: %v", err)
	}
	if dev.IsOn {
		t.Errorf("device 1 should be off after SetState(1, false)")
	}
}

func TestRegistry_SetStateNoop(t *testing.T) {
	r := newTestRegistry(t)

	before := r.Lights()

	dev, err := r.SetState(2, false)
	if err != nil {
		t.Fatalf("SetState to current state should succeed, got %v", err)
	}
	if dev.IsOn {
		t.Errorf("device 2 should still be off")
	}

	if !reflect.DeepEqual(before, r.Lights()) {
		t.Errorf("no-op SetState changed registry state")
	}
}

func TestRegistry_SetStateUnknownDevice(t *testing.T) {
	r := newTestRegistry(t)

	before := r.Lights()

	_, err := r.SetState(99, true)
	if err == nil {
		t.Fatal("SetState with unknown id should fail")
	}
	if !errors.Is(err, registry.ErrDeviceNotFound) {
		t.Errorf("error should wrap ErrDeviceNotFound, got %v", err)
	}

	if !reflect.DeepEqual(before, r.Lights()) {
		t.Errorf("failed SetState changed registry state")
	}
}

func TestRegistry_LightsIdempotent(t *testing.T) {
	r := newTestRegistry(t)

	first := r.Lights()
	for i := 0; i < 3; i++ {
		if !reflect.DeepEqual(first, r.Lights()) {
			t.Fatalf("Lights changed between calls without SetState")
		}
	}

	// Mutating the returned slice must not leak into the registry.
	first[0].IsOn = true
	if r.Lights()[0].IsOn {
		t.Errorf("Lights returned a slice aliasing registry state")
	}
}

func TestRegistry_UniqueStableIDs(t *testing.T) {
	r := newTestRegistry(t)

	seen := make(map[int]bool)
	for _, d := range r.Lights() {
		if seen[d.ID] {
			t.Errorf("duplicate id %d", d.ID)
		}
		seen[d.ID] = true
	}

	if _, err := r.SetState(1, true); err != nil {
		t.Fatalf("SetState error: %v", err)
	}

	for i, d := range r.Lights() {
		if d.ID != i+1 {
			t.Errorf("ids changed after SetState: position %d has id %d", i, d.ID)
		}
	}
}

func TestRegistry_DuplicateIDRejected(t *testing.T) {
	_, err := registry.New([]domain.Device{
		{ID: 1, Name: "A"},
		{ID: 1, Name: "B"},
	})
	if err == nil {
		t.Fatal("New should reject duplicate ids")
	}
}

func TestRegistry_EndToEndScenario(t *testing.T) {
	r := newTestRegistry(t)

	dev, err := r.SetState(1, true)
	if err != nil {
		t.Fatalf("SetState error: %v", err)
	}
	if dev.ID != 1 || dev.Name != "Table Lamp" || !dev.IsOn {
		t.Errorf("SetState result: got %+v", dev)
	}

	want := []domain.Device{
		{ID: 1, Name: "Table Lamp", IsOn: true},
		{ID: 2, Name: "Porch Light", IsOn: false},
	}
	if got := r.Lights(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lights: got %+v, want %+v", got, want)
	}

	if _, err := r.SetState(99, true); err == nil {
		t.Fatal("SetState(99) should fail")
	}
	if got := r.Lights(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lights after failed SetState: got %+v, want %+v", got, want)
	}
}
