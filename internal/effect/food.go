package effect

import (
	"gear-optimizer/internal/combat"
	"gear-optimizer/internal/stats"
)

// Food selects a consumable. The zero value is no food.
type Food uint16

const (
	NoFood Food = iota
	FoodPotatoLeekSoup
	FoodFancyPotatoAndLeekSoup
	FoodRedLentilSaobosa
	FoodFireMeatChili
	FoodFruitSaladWithMintGarnish

	NumFoods
)

func foodStats(add stats.Stats, mod func(m *stats.Modifiers)) Effect {
	return Temporary(func(s *stats.Stats, m *stats.Modifiers, _ *combat.Second) {
		*s = s.Add(add)
		if mod != nil {
			mod(m)
		}
	})
}

var foods = []entry{
	NoFood: {name: "None"},
	FoodPotatoLeekSoup: {name: "Potato and Leek Soup", stat: true,
		effect: foodStats(stats.Stats{stats.Precision: 100, stats.ConditionDamage: 70}, nil)},
	FoodFancyPotatoAndLeekSoup: {name: "Fancy Potato and Leek Soup", stat: true,
		effect: foodStats(stats.Stats{stats.Precision: 100, stats.ConditionDamage: 70}, nil)},
	FoodRedLentilSaobosa: {name: "Red Lentil Saobosa", stat: true,
		effect: foodStats(stats.Stats{stats.Expertise: 100, stats.ConditionDamage: 70}, nil)},
	FoodFireMeatChili: {name: "Fire Meat Chili", stat: true,
		effect: foodStats(stats.Stats{stats.ConditionDamage: 70}, func(m *stats.Modifiers) {
			m.ConditionDuration[stats.Burn] += 20
		})},
	FoodFruitSaladWithMintGarnish: {name: "Fruit Salad with Mint Garnish", stat: true,
		effect: foodStats(stats.Stats{stats.HealingPower: 100, stats.Concentration: 70}, nil)},
}

func (f Food) String() string { return nameOf(foods, int(f)) }

// ParseFood looks up a food by name, case-insensitively.
func ParseFood(name string) (Food, bool) {
	i, ok := lookup(foods, name)
	return Food(i), ok
}

func (f Food) effect() Effect { return effectOf(foods, int(f)) }

func (f Food) AddPermanent(s *stats.Stats, m *stats.Modifiers) { f.effect().AddPermanent(s, m) }
func (f Food) Distribute(s *stats.Stats, m *stats.Modifiers) { f.effect().Distribute(s, m) }
func (f Food) AddTemporary(s *stats.Stats, m *stats.Modifiers, c *combat.Second) {
	f.effect().AddTemporary(s, m, c)
}
func (f Food) CombatProcs(events *combat.Second, c *combat.Second) {
	f.effect().CombatProcs(events, c)
}

func (f *Food) NumFields() int { return 1 }
func (f *Food) NumFieldValues(int) uint16 { return uint16(NumFoods) }
func (f *Food) GetField(int) uint16 { return uint16(*f) }
func (f *Food) SetField(_ int, x uint16) { *f = Food(x) }
