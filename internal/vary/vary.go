// Package vary exposes discrete build choices as an indexed vector of small integers, so
// the optimizers can enumerate and mutate any configuration without knowing its shape.
package vary

// Vary is implemented by configurations the optimizer may change. Field values range over
// [0, NumFieldValues(i)).
type Vary interface {
	NumFields() int
	NumFieldValues(i int) uint16
	GetField(i int) uint16
	SetField(i int, x uint16)
}

// Tuple composes independently varying members. Its fields are the members' fields in
// order.
type Tuple []Vary

func (t Tuple) NumFields() int {
	n := 0
	for _, v := range t {
		n += v.NumFields()
	}
	return n
}

// locate maps a tuple field index to the owning member and its local index.
func (t Tuple) locate(i int) (Vary, int) {
	for _, v := range t {
		n := v.NumFields()
		if i < n {
			return v, i
		}
		i -= n
	}
	panic("vary: field index out of range")
}

func (t Tuple) NumFieldValues(i int) uint16 {
	v, j := t.locate(i)
	return v.NumFieldValues(j)
}

func (t Tuple) GetField(i int) uint16 {
	v, j := t.locate(i)
	return v.GetField(j)
}

func (t Tuple) SetField(i int, x uint16) {
	v, j := t.locate(i)
	v.SetField(j, x)
}

// Fixed is a configuration with no variable fields.
type Fixed struct{}

func (Fixed) NumFields() int { return 0 }
func (Fixed) NumFieldValues(int) uint16 { panic("vary: Fixed has no fields") }
func (Fixed) GetField(int) uint16 { panic("vary: Fixed has no fields") }
func (Fixed) SetField(int, uint16) { panic("vary: Fixed has no fields") }

// Index is a single field choosing one of N values.
type Index struct {
	Value uint16
	N     uint16
}

func (x *Index) NumFields() int { return 1 }
func (x *Index) NumFieldValues(int) uint16 { return x.N }
func (x *Index) GetField(int) uint16 { return x.Value }
func (x *Index) SetField(_ int, v uint16) { x.Value = v }

// Fields lists the current value of every field of v.
func Fields(v Vary) []uint16 {
	out := make([]uint16, v.NumFields())
	for i := range out {
		out[i] = v.GetField(i)
	}
	return out
}
