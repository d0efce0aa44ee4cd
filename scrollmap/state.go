package scrollmap

import (
	"fmt"
	"os"

	"scroll-map/viewport"

	"gopkg.in/yaml.v3"
)

type PointState struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ViewState is the saved part of a viewport. View and pixels per unit are
// derived on load.
type ViewState struct {
	Focus PointState `yaml:"focus"`
	Scale float64    `yaml:"scale"`
}

func (sm *ScrollMap) SaveState(filename string) error {
	vp := sm.Viewport
	state := ViewState{
		Focus: PointState{X: vp.Focus().X, Y: vp.Focus().Y},
		Scale: vp.Scale(),
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&state); err != nil {
		return err
	}
	return enc.Close()
}

// LoadState restores a saved view. A scale outside the zoom limits is rejected.
func (sm *ScrollMap) LoadState(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	var state ViewState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return err
	}
	if state.Scale < sm.limits.MinScale || state.Scale > sm.limits.MaxScale {
		return fmt.Errorf("saved scale %v outside [%v, %v]", state.Scale, sm.limits.MinScale, sm.limits.MaxScale)
	}

	sm.Viewport.Restore(viewport.Pt(state.Focus.X, state.Focus.Y), state.Scale)
	return nil
}
