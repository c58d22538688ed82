package mount

import (
	"context"
	"fmt"

	"github.com/tvm-protocol/motionmount-go/pkg/wire"
)

// Preset is a stored mount position.
type Preset struct {
	// Index selects the preset in GoToPreset. Index 0 is the fixed
	// Wall position.
	Index int

	// Name is the user-assigned preset name.
	Name string

	// Extension and Turn are the stored position.
	Extension int
	Turn      int
}

// WallPreset is the fixed preset every device has at index 0.
var WallPreset = Preset{Index: 0, Name: "Wall"}

// Presets fetches the configured presets from the device. Preset values
// are never cached; every call round trips. The fixed Wall preset is
// always first, followed by the user presets in index order.
func (m *Mount) Presets(ctx context.Context) ([]Preset, error) {
	presets := []Preset{WallPreset}

	for n := 1; n <= m.config.MaxPresetIndex; n++ {
		active, err := m.get(ctx, wire.PresetActiveKey(n), wire.ValueBool)
		if err != nil {
			return nil, fmt.Errorf("fetch preset %d: %w", n, err)
		}
		if !active.(bool) {
			continue
		}

		name, err := m.get(ctx, wire.PresetNameKey(n), wire.ValueString)
		if err != nil {
			return nil, fmt.Errorf("fetch preset %d: %w", n, err)
		}
		extension, err := m.get(ctx, wire.PresetExtensionKey(n), wire.ValueInteger)
		if err != nil {
			return nil, fmt.Errorf("fetch preset %d: %w", n, err)
		}
		turn, err := m.get(ctx, wire.PresetTurnKey(n), wire.ValueInteger)
		if err != nil {
			return nil, fmt.Errorf("fetch preset %d: %w", n, err)
		}

		presets = append(presets, Preset{
			Index:     n,
			Name:      name.(string),
			Extension: extension.(int),
			Turn:      turn.(int),
		})
	}
	return presets, nil
}
