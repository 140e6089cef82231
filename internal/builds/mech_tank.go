package builds

import (
	"gear-optimizer/internal/character"
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/effect"
	"gear-optimizer/internal/stats"
	"gear-optimizer/internal/vary"
)

// TankConfig is the fixed mechanist tank loadout.
type TankConfig struct{ vary.Fixed }

var tankLoadout = Loadout{
	Rune:    effect.RuneMonk,
	Sigil1:  effect.SigilParalyzation,
	Sigil2:  effect.SigilTransference,
	Food:    effect.FoodFruitSaladWithMintGarnish,
	Utility: effect.UtilityBountifulMaintenanceOil,
}

func (*TankConfig) Fields() []Field { return tankLoadout.Fields() }

// MechTank maximizes effective health while holding the healing power and concentration
// the heal rotation needs.
type MechTank struct {
	character.AlwaysValid[TankConfig]
}

const (
	tankMinStat = 864.9
	// Effective health is reported relative to this armor.
	tankArmorScale = 1118 + 1000
)

// NewMechTank returns the tank model. Unlike the damage builds it has no calibration sample,
// but the stat effects of its fixed loadout still count toward the healing and
// concentration requirements.
func NewMechTank() *MechTank { return &MechTank{} }

func (*MechTank) CalcStats(g *stats.Stats, _ *TankConfig) (stats.Stats, stats.Modifiers, combat.Second) {
	l := tankLoadout
	return effect.Apply(l.Effect(), stats.BaseStats.Add(*g), stats.Modifiers{}, combat.Second{})
}

func (*MechTank) Evaluate(_ *TankConfig, s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	if heal := s[stats.HealingPower]; heal < tankMinStat {
		return 20000 + tankMinStat - heal
	}
	if conc := s[stats.Concentration]; conc < tankMinStat {
		return 20000 + tankMinStat - conc
	}
	return -(s.MaxHealth(m, stats.HealthMid) * s.Armor(m, stats.ArmorMedium) / tankArmorScale)
}
