package builds

import (
	"github.com/pkg/errors"

	"gear-optimizer/internal/character"
)

var registry = []Build{
	newBuild[VirtConfig]("condi-virt", "condition mirage, projected from a golem sample",
		virtBaseline.Config, func() character.Model[VirtConfig] { return NewCondiVirt() }),
	newBuild[Loadout]("cairn-solo-arcane", "arcane weaver soloing Cairn, projected from a sample",
		arcaneBaseline.Config, func() character.Model[Loadout] { return NewCairnSoloArcane() }),
	newBuild[Loadout]("cairn-solo-air", "air weaver soloing Cairn with enough sustain to outheal agony",
		airBaseline.Config, func() character.Model[Loadout] { return NewCairnSoloAir() }),
	newBuild[Loadout]("cairn-solo-earth", "earth weaver soloing Cairn with enough sustain to outheal agony",
		earthBaseline.Config, func() character.Model[Loadout] { return NewCairnSoloEarth() }),
	newBuild[TankConfig]("mech-tank", "mechanist tank maximizing effective health",
		TankConfig{}, func() character.Model[TankConfig] { return NewMechTank() }),
}

// All returns every registered build in a stable order.
func All() []Build { return registry }

func Names() []string {
	out := make([]string, len(registry))
	for i, b := range registry {
		out[i] = b.Name()
	}
	return out
}

func Lookup(name string) (Build, error) {
	for _, b := range registry {
		if b.Name() == name {
			return b, nil
		}
	}
	return nil, errors.Errorf("unknown build %q", name)
}
