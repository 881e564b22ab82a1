package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"lights-assistant/internal/domain"
)

// ErrDeviceNotFound is returned by SetState when no device matches the id.
var ErrDeviceNotFound = errors.New("device not found")

// Registry owns the in-memory device set for the life of the process. The
// set is fixed at construction; only the on/off state of each device mutates,
// and only through SetState.
type Registry struct {
	mu      sync.RWMutex
	devices []domain.Device
	index   map[int]int // device id -> position in devices
}

// DefaultDevices is the device set used when no devices are configured.
func DefaultDevices() []domain.Device {
	return []domain.Device{
		{ID: 1, Name: "Table Lamp", IsOn: false},
		{ID: 2, Name: "Porch Light", IsOn: false},
		{ID: 3, Name: "Chandelier", IsOn: true},
	}
}

// New builds a registry from the given devices. Duplicate ids are rejected.
func New(devices []domain.Device) (*Registry, error) {
	r := &Registry{
		devices: make([]domain.Device, len(devices)),
		index:   make(map[int]int, len(devices)),
	}
	copy(r.devices, devices)

	for i, d := range r.devices {
		if _, dup := r.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate device id %d", d.ID)
		}
		r.index[d.ID] = i
	}

	return r, nil
}

// Lights returns all devices in registration order with their current state.
func (r *Registry) Lights() []domain.Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Device, len(r.devices))
	copy(result, r.devices)
	return result
}

// SetState sets the on/off state of the device with the given id and returns
// the resulting device. Setting a device to its current state is a successful
// no-op. If no device matches, the registry is left unchanged and the error
// wraps ErrDeviceNotFound.
func (r *Registry) SetState(id int, on bool) (domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return domain.Device{}, fmt.Errorf("%w: id %d", ErrDeviceNotFound, id)
	}

	r.devices[i].IsOn = on
	return r.devices[i], nil
}

// Summary renders the device list for the assistant's system prompt.
func (r *Registry) Summary() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sb strings.Builder

	sb.WriteString("## Available lights:\n")
	for _, d := range r.devices {
		state := "off"
		if d.IsOn {
			state = "on"
		}
		sb.WriteString(fmt.Sprintf("- id %d: %s (currently %s)\n", d.ID, d.Name, state))
	}

	return sb.String()
}
