package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCritChanceClamped(t *testing.T) {
	tests := []struct {
		name      string
		precision float64
		bonus     float64
		want      float64
	}{
		{name: "base precision", precision: 1000, bonus: 0, want: 5},
		{name: "huge precision", precision: 1e9, bonus: 0, want: 100},
		{name: "huge modifier", precision: 1000, bonus: 1e6, want: 100},
		{name: "negative modifier", precision: 1000, bonus: -1e6, want: 0},
		{name: "negative precision", precision: -1e9, bonus: 50, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Stats{Precision: tt.precision}
			m := Modifiers{CritChance: tt.bonus}
			got := s.CritChance(&m)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 100.0)
		})
	}
}

func TestDurationsCapped(t *testing.T) {
	s := Stats{Expertise: 15 * 500, Concentration: 15 * 500}
	var m Modifiers
	assert.Equal(t, 200.0, s.ConditionDuration(&m, Bleed))
	assert.Equal(t, 200.0, s.BoonDuration(&m, Might))

	s = Stats{}
	m.ConditionDuration[Burn] = 20
	assert.InDelta(t, 120.0, s.ConditionDuration(&m, Burn), 1e-9)
	assert.InDelta(t, 100.0, s.ConditionDuration(&m, Bleed), 1e-9)
}

func TestStrikeFactor(t *testing.T) {
	// 100% crit, 0 ferocity: crit multiplier 1.5.
	s := Stats{Power: 2000, Precision: 895 + 21*100}
	var m Modifiers
	assert.InDelta(t, 200*1.5, s.StrikeFactor(&m), 1e-9)

	m.StrikeDamage = 10
	assert.InDelta(t, 200*1.1*1.5, s.StrikeFactor(&m), 1e-9)
}

func TestConditionFactor(t *testing.T) {
	s := Stats{ConditionDamage: 1000}
	var m Modifiers
	assert.InDelta(t, 22+60, s.ConditionFactor(&m, Bleed), 1e-9)
	assert.Zero(t, s.ConditionFactor(&m, Weakness))

	m.ConditionDamage[Bleed] = 25
	m.ConditionDuration[Bleed] = 50
	assert.InDelta(t, (22+60)*1.25*1.5, s.ConditionFactor(&m, Bleed), 1e-9)
}

func TestHealthAndArmor(t *testing.T) {
	s := BaseStats
	var m Modifiers
	assert.InDelta(t, 1645+10000, s.MaxHealth(&m, HealthLow), 1e-9)
	assert.InDelta(t, 1118+1000, s.Armor(&m, ArmorMedium), 1e-9)
	m.MaxHealth = 10
	assert.InDelta(t, (9212+10000)*1.1, s.MaxHealth(&m, HealthHigh), 1e-6)
}

func TestStatsArithmetic(t *testing.T) {
	a := Stats{Power: 10, Precision: 4}
	b := Stats{Power: 1, Ferocity: 2}
	assert.Equal(t, Stats{Power: 11, Precision: 4, Ferocity: 2}, a.Add(b))
	assert.Equal(t, Stats{Power: 9, Precision: 4, Ferocity: -2}, a.Sub(b))
	assert.Equal(t, Stats{Power: 20, Precision: 8}, a.Scale(2))
	assert.Equal(t, Stats{Power: 10, Precision: 4, Ferocity: 2}, a.Max(b))
	assert.Equal(t, Stats{Power: 2, Precision: -3}, Stats{Power: 1.5, Precision: -2.5}.Round())
}

func TestParseNames(t *testing.T) {
	st, ok := ParseStat("ConditionDuration")
	assert.True(t, ok)
	assert.Equal(t, Expertise, st)

	_, ok = ParseStat("Agony")
	assert.False(t, ok)

	c, ok := ParseCondition("torment")
	assert.True(t, ok)
	assert.Equal(t, Torment, c)

	b, ok := ParseBoon("MIGHT")
	assert.True(t, ok)
	assert.Equal(t, Might, b)
}
