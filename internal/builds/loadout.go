package builds

import (
	"gear-optimizer/internal/effect"
	"gear-optimizer/internal/vary"
)

// Field is one named configuration choice, for reports.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Loadout is the usual set of choices: a rune set, two sigils, food and a utility item.
type Loadout struct {
	Rune    effect.Rune
	Sigil1  effect.Sigil
	Sigil2  effect.Sigil
	Food    effect.Food
	Utility effect.Utility
}

func (l *Loadout) tuple() vary.Tuple {
	return vary.Tuple{&l.Rune, &l.Sigil1, &l.Sigil2, &l.Food, &l.Utility}
}

func (l *Loadout) NumFields() int { return l.tuple().NumFields() }
func (l *Loadout) NumFieldValues(i int) uint16 { return l.tuple().NumFieldValues(i) }
func (l *Loadout) GetField(i int) uint16 { return l.tuple().GetField(i) }
func (l *Loadout) SetField(i int, x uint16) { l.tuple().SetField(i, x) }

// Effect chains every item. A second copy of the same sigil does nothing.
func (l *Loadout) Effect() effect.Effect {
	items := []effect.Effect{l.Rune, l.Sigil1}
	if l.Sigil2 != l.Sigil1 {
		items = append(items, l.Sigil2)
	}
	return effect.Chain(append(items, l.Food, l.Utility)...)
}

func (l *Loadout) Fields() []Field {
	return []Field{
		{Name: "rune", Value: l.Rune.String()},
		{Name: "sigil1", Value: l.Sigil1.String()},
		{Name: "sigil2", Value: l.Sigil2.String()},
		{Name: "food", Value: l.Food.String()},
		{Name: "utility", Value: l.Utility.String()},
	}
}
