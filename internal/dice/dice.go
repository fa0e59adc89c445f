// Package dice rolls some count of dice whose faces are decided per call.
//
// Every operation is total: zero dice or a zero-sided die yields 0 instead of
// an error, so callers computing counts dynamically never need a failure path.
package dice

// Roll represents some count of dice being rolled (faces on the die determined later)
type Roll struct {
	// count is how many dice are rolled
	count uint

	source Source
}

// New creates a roll of count dice drawing from the process-wide source
func New(count uint) Roll {
	return Roll{
		count:  count,
		source: globalSource{},
	}
}

// NewWithSource creates a roll of count dice drawing from src.
// A nil src falls back to the process-wide source.
func NewWithSource(count uint, src Source) Roll {
	if src == nil {
		return New(count)
	}

	return Roll{
		count:  count,
		source: src,
	}
}

// Count returns the number of dice in the roll
func (r Roll) Count() uint {
	return r.count
}

// Sum rolls every die with the given number of sides and returns the total.
// The total wraps around if count*sides overflows a uint.
func (r Roll) Sum(sides uint) uint {
	if sides == 0 || r.count == 0 {
		return 0
	}

	src := r.source
	if src == nil {
		src = globalSource{}
	}

	var total uint
	for i := uint(0); i < r.count; i++ {
		total += src.UintN(sides) + 1
	}

	return total
}

// CritSuccess is the highest possible result, every die showing its top face (e.g. 20 on 1d20, 40 on 2d20).
// Like Sum it wraps around once count*sides overflows a uint.
func (r Roll) CritSuccess(sides uint) uint {
	if sides == 0 || r.count == 0 {
		return 0
	}

	return r.count * sides
}

// CritFail is the lowest possible result, every die showing a 1 (e.g. 1 on 1d20, 2 on 2d20).
// sides only matters for the zero check.
func (r Roll) CritFail(sides uint) uint {
	if sides == 0 || r.count == 0 {
		return 0
	}

	return r.count
}

// Advantage rolls twice and keeps the higher total
func (r Roll) Advantage(sides uint) uint {
	if sides == 0 || r.count == 0 {
		return 0
	}

	return max(r.Sum(sides), r.Sum(sides))
}

// Disadvantage rolls twice and keeps the lower total
func (r Roll) Disadvantage(sides uint) uint {
	if sides == 0 || r.count == 0 {
		return 0
	}

	return min(r.Sum(sides), r.Sum(sides))
}

// Bounds returns the closed range every Sum, Advantage and Disadvantage result falls in
func (r Roll) Bounds(sides uint) (lo, hi uint) {
	return r.CritFail(sides), r.CritSuccess(sides)
}

// convenience

func (r Roll) D4() uint { return r.Sum(4) }

func (r Roll) D6() uint { return r.Sum(6) }

func (r Roll) D8() uint { return r.Sum(8) }

func (r Roll) D10() uint { return r.Sum(10) }

func (r Roll) D12() uint { return r.Sum(12) }

func (r Roll) D20() uint { return r.Sum(20) }
