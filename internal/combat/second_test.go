package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gear-optimizer/internal/stats"
)

func TestEventArithmetic(t *testing.T) {
	e := Single(3).Scale(0.5)
	assert.Equal(t, Event{Count: 0.5, Strength: 1.5}, e)
	assert.Equal(t, Event{Count: 1.5, Strength: 4.5}, e.Add(Single(3)))
	assert.Equal(t, Event{}, e.Sub(e))
	assert.InDelta(t, 2.0, e.Interval(), 1e-9)
}

func TestSecondAddSubScale(t *testing.T) {
	var a Second
	a.Strike = NewEvent(2, 3)
	a.Condition[stats.Bleed] = Single(6)
	a.Boon[stats.Might] = Single(10)
	a.WeaponSwap = 0.25

	var b Second
	b.Strike = NewEvent(1, 1)
	b.Cast = 1.2

	sum := a.Add(b)
	assert.Equal(t, NewEvent(3, 4), sum.Strike)
	assert.Equal(t, 1.2, sum.Cast)
	assert.Equal(t, a, sum.Sub(b))

	twice := a.Scale(2)
	assert.Equal(t, Single(6).Scale(2), twice.Condition[stats.Bleed])
	assert.InDelta(t, 0.5, twice.WeaponSwap, 1e-12)
}

func TestUpdateCrit(t *testing.T) {
	c := Second{Strike: NewEvent(4, 0)}
	c.UpdateCrit(25)
	assert.InDelta(t, 1.0, c.Crit, 1e-12)
}

func TestBoonUptimeCapped(t *testing.T) {
	s := stats.Stats{}
	var m stats.Modifiers
	var c Second
	c.Boon[stats.Fury] = Single(3)
	c.Boon[stats.Might] = Single(30)

	assert.InDelta(t, 3.0, c.BoonUptimeRaw(&s, &m, stats.Fury), 1e-12)
	assert.InDelta(t, 1.0, c.BoonUptime(&s, &m, stats.Fury), 1e-12)
	assert.InDelta(t, 25.0, c.BoonUptime(&s, &m, stats.Might), 1e-12)

	s[stats.Concentration] = 1500
	assert.InDelta(t, 6.0, c.BoonUptimeRaw(&s, &m, stats.Fury), 1e-12)
}

func TestDPS(t *testing.T) {
	s := stats.Stats{stats.Power: 1000, stats.Precision: 895, stats.ConditionDamage: 1000}
	var m stats.Modifiers
	var c Second
	c.Strike = NewEvent(1, 2)
	c.StrikeFlat = Single(50)
	c.Condition[stats.Bleed] = Single(10)

	want := 2*s.StrikeFactor(&m) + 50 + 10*s.ConditionFactor(&m, stats.Bleed)
	assert.InDelta(t, want, c.DPS(&s, &m), 1e-9)
}

func TestHealPerSecond(t *testing.T) {
	s := stats.Stats{stats.HealingPower: 800}
	var m stats.Modifiers
	var c Second
	c.HealFlat = Single(100)
	c.Heal = Single(0.5)
	c.Boon[stats.Regeneration] = Single(0.5)

	want := 100 + 0.5*800 + 0.5*(130+0.125*800)
	assert.InDelta(t, want, c.HealPerSecond(&s, &m), 1e-9)
}
