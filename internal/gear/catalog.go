package gear

import (
	_ "embed"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"gear-optimizer/internal/stats"
)

//go:embed catalog.json
var embeddedCatalog string

// Catalog is the read-only equipment table: every prefix and every slot's budget.
type Catalog struct {
	Prefixes []Prefix
	Slots    [NumSlots]SlotInfo
	// Reference is the index of the prefix whose power output defines slot weights.
	Reference int
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(embeddedCatalog)
})

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// LoadCatalog reads a catalog from a JSON file.
func LoadCatalog(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	c, err := ParseCatalog(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return c, nil
}

// ParseCatalog builds a Catalog from JSON. A missing reference prefix or an unknown slot or
// attribute name is an error.
func ParseCatalog(data string) (*Catalog, error) {
	if !gjson.Valid(data) {
		return nil, errors.New("catalog is not valid JSON")
	}
	c := &Catalog{}

	var err error
	seen := [NumSlots]bool{}
	gjson.Get(data, "slots").ForEach(func(k, v gjson.Result) bool {
		slot, ok := ParseSlot(k.String())
		if !ok {
			err = errors.Errorf("unknown slot %q", k.String())
			return false
		}
		c.Slots[slot] = SlotInfo{
			Points:  parsePerQuality(v.Get("points")),
			AddBase: v.Get("add_base").Bool(),
		}
		seen[slot] = true
		return true
	})
	if err != nil {
		return nil, err
	}
	for s, ok := range seen {
		if !ok {
			return nil, errors.Errorf("slot %s missing from catalog", Slot(s))
		}
	}

	gjson.Get(data, "prefixes").ForEach(func(_, v gjson.Result) bool {
		p := Prefix{Name: v.Get("name").String()}
		if p.Name == "" {
			err = errors.New("prefix without a name")
			return false
		}
		v.Get("attributes").ForEach(func(_, a gjson.Result) bool {
			st, ok := stats.ParseStat(a.Get("attribute").String())
			if !ok {
				err = errors.Errorf("prefix %s: unknown attribute %q", p.Name, a.Get("attribute").String())
				return false
			}
			p.Formulas[st] = StatFormula{
				Factor: a.Get("factor").Float(),
				Base:   parsePerQuality(a.Get("base")),
			}
			return true
		})
		if err != nil {
			return false
		}
		c.Prefixes = append(c.Prefixes, p)
		return true
	})
	if err != nil {
		return nil, err
	}
	if len(c.Prefixes) == 0 {
		return nil, errors.New("catalog has no prefixes")
	}

	ref := gjson.Get(data, "reference_prefix").String()
	idx, ok := c.PrefixIndex(ref)
	if !ok {
		return nil, errors.Errorf("reference prefix %q not in catalog", ref)
	}
	if c.Prefixes[idx].Formulas[stats.Power].Factor <= 0 {
		return nil, errors.Errorf("reference prefix %q has no power", ref)
	}
	c.Reference = idx
	return c, nil
}

func parsePerQuality(v gjson.Result) PerQuality {
	var pq PerQuality
	for q := range NumQualities {
		pq[q] = v.Get(q.String()).Float()
	}
	return pq
}

// PrefixIndex finds a prefix by exact name.
func (c *Catalog) PrefixIndex(name string) (int, bool) {
	for i := range c.Prefixes {
		if c.Prefixes[i].Name == name {
			return i, true
		}
	}
	return 0, false
}

// PrefixIndexes resolves names to indexes, failing on the first unknown name.
func (c *Catalog) PrefixIndexes(names []string) ([]int, error) {
	out := make([]int, 0, len(names))
	for _, n := range names {
		i, ok := c.PrefixIndex(n)
		if !ok {
			return nil, errors.Errorf("unknown prefix %q", n)
		}
		out = append(out, i)
	}
	return out, nil
}

// ItemStats returns the unrounded stats of prefix i in sq.
func (c *Catalog) ItemStats(sq SlotQuality, i int) stats.Stats {
	return c.Slots[sq.Slot].Stats(&c.Prefixes[i], sq.Quality)
}

// SlotWeight measures a slot's stat budget in prefix-weight units: the reference prefix's
// power in that slot divided by its power factor.
func (c *Catalog) SlotWeight(sq SlotQuality) float64 {
	ref := &c.Prefixes[c.Reference]
	return c.ItemStats(sq, c.Reference)[stats.Power] / ref.Formulas[stats.Power].Factor
}

// MaxWeight is the total prefix weight the slots can hold.
func (c *Catalog) MaxWeight(slots []SlotQuality) float64 {
	var acc float64
	for _, sq := range slots {
		acc += c.SlotWeight(sq)
	}
	return acc
}

// GearStats sums the rounded item stats of an assignment of prefixes to slots.
func (c *Catalog) GearStats(slots []SlotQuality, prefixes []int) stats.Stats {
	var s stats.Stats
	for i, sq := range slots {
		s = s.Add(c.ItemStats(sq, prefixes[i]).Round())
	}
	return s
}
