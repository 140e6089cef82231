package character

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

type plainConfig struct{}

// plainModel adds base stats and nothing else.
type plainModel struct {
	AlwaysValid[plainConfig]
	dps DpsModel
}

func (p *plainModel) CalcStats(gear *stats.Stats, _ *plainConfig) (stats.Stats, stats.Modifiers, combat.Second) {
	return stats.BaseStats.Add(*gear), stats.Modifiers{}, combat.Second{}
}

func (p *plainModel) Evaluate(_ *plainConfig, s *stats.Stats, m *stats.Modifiers, _ *combat.Second) float64 {
	return -p.dps.CalcDps(s, m)
}

// procModel gains torment points and might from gear procs on top of a base rotation.
type procModel struct {
	AlwaysValid[plainConfig]
	base combat.Second
}

func (p *procModel) CalcStats(gear *stats.Stats, _ *plainConfig) (stats.Stats, stats.Modifiers, combat.Second) {
	var m stats.Modifiers
	m.ConditionPoints[stats.Torment] = 0.5
	c := p.base
	c.Boon[stats.Might].Strength += 2
	c.Condition[stats.Bleed].Strength += 1
	return stats.BaseStats.Add(*gear), m, c
}

func (p *procModel) Evaluate(_ *plainConfig, s *stats.Stats, m *stats.Modifiers, c *combat.Second) float64 {
	return -c.DPS(s, m)
}

func TestDpsModelConditionOnly(t *testing.T) {
	b := &Baseline[plainConfig]{
		Gear: stats.Stats{stats.Power: 1000, stats.Precision: 1000, stats.ConditionDamage: 1000},
		DPS:  10000,
	}
	b.ConditionPercent[stats.Bleed] = 100

	m := &plainModel{}
	d := NewDpsModel[plainConfig](m, b)
	assert.Zero(t, d.StrikePoints)
	assert.Greater(t, d.ConditionPoints[stats.Bleed], 0.0)

	s, mods, _ := m.CalcStats(&b.Gear, &b.Config)
	assert.InDelta(t, 10000, d.CalcDps(&s, &mods), 0.1)
}

func TestDpsModelRoundTrip(t *testing.T) {
	b := &Baseline[plainConfig]{
		Gear: stats.Stats{stats.Power: 986, stats.Precision: 981, stats.ConditionDamage: 1012, stats.Expertise: 255},
		DPS:  30063,
	}
	b.ConditionPercent[stats.Bleed] = 59.9
	b.ConditionPercent[stats.Torment] = 10.3
	b.ConditionPercent[stats.Confuse] = 1.3
	b.ConditionPercent[stats.Poison] = 0.2
	b.BoonUptime[stats.Might] = 950

	m := &procModel{}
	d := NewDpsModel[plainConfig](m, b)
	s, mods, _ := m.CalcStats(&b.Gear, &b.Config)
	assert.InDelta(t, b.DPS, d.CalcDps(&s, &mods), 1e-6)

	// gear-supplied points are netted out of the calibrated share
	want := b.DPS*b.ConditionPercent[stats.Torment]/100/s.ConditionFactor(&mods, stats.Torment) - 0.5
	assert.InDelta(t, want, d.ConditionPoints[stats.Torment], 1e-9)
	assert.InDelta(t, 9.5, d.BoonPoints[stats.Might]*s.BoonDuration(&mods, stats.Might)/100, 1e-9)
}

func TestDpsModelMoreStatsMoreDamage(t *testing.T) {
	b := &Baseline[plainConfig]{
		Gear: stats.Stats{stats.Power: 1000, stats.Precision: 1000, stats.ConditionDamage: 1000},
		DPS:  20000,
	}
	b.ConditionPercent[stats.Burn] = 50

	m := &plainModel{}
	m.dps = NewDpsModel[plainConfig](m, b)

	base := Evaluate[plainConfig](m, &b.Gear, &b.Config)
	more := b.Gear.Add(stats.Uniform(100))
	assert.Less(t, Evaluate[plainConfig](m, &more, &b.Config), base)
}

func TestZeroDpsModel(t *testing.T) {
	d := ZeroDpsModel()
	s := stats.BaseStats.Add(stats.Uniform(1000))
	assert.Zero(t, d.CalcDps(&s, &stats.Modifiers{}))
}

func TestUpdateBaseCombat(t *testing.T) {
	b := &Baseline[plainConfig]{
		Gear: stats.Stats{stats.Power: 1000, stats.Precision: 900, stats.ConditionDamage: 1200, stats.Concentration: 150},
		DPS:  12000,
	}
	b.ConditionPercent[stats.Bleed] = 40
	b.ConditionPercent[stats.Burn] = 30
	b.BoonUptime[stats.Might] = 1200

	m := &procModel{}
	m.base = b.UpdateBaseCombat(m, m.base)

	s, mods, c := m.CalcStats(&b.Gear, &b.Config)
	assert.InDelta(t, 0.3*b.DPS, c.StrikeDPS(&s, &mods), 1e-6)
	assert.InDelta(t, 0.4*b.DPS, c.ConditionDPS(&s, &mods, stats.Bleed), 1e-6)
	assert.InDelta(t, 0.3*b.DPS, c.ConditionDPS(&s, &mods, stats.Burn), 1e-6)
	assert.InDelta(t, 12.0, c.BoonUptimeRaw(&s, &mods, stats.Might), 1e-9)

	// proc share is subtracted from the rotation
	assert.InDelta(t, c.Boon[stats.Might].Strength-2, m.base.Boon[stats.Might].Strength, 1e-9)
}
