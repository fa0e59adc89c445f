package models

// RollMode represents how a set of dice is resolved
type RollMode string

const (
	// RollModeSum rolls every die once and adds them up
	RollModeSum RollMode = "sum"

	// RollModeCritSuccess returns the highest possible total without rolling
	RollModeCritSuccess RollMode = "crit_success"

	// RollModeCritFail returns the lowest possible total without rolling
	RollModeCritFail RollMode = "crit_fail"

	// RollModeAdvantage rolls twice and keeps the higher total
	RollModeAdvantage RollMode = "advantage"

	// RollModeDisadvantage rolls twice and keeps the lower total
	RollModeDisadvantage RollMode = "disadvantage"
)

// RollModes lists every supported mode in display order
var RollModes = []RollMode{
	RollModeSum,
	RollModeAdvantage,
	RollModeDisadvantage,
	RollModeCritSuccess,
	RollModeCritFail,
}

// StandardDice are the side counts with dedicated shortcuts
var StandardDice = []uint{4, 6, 8, 10, 12, 20}

// IsValid returns true if the mode is one of the supported modes
func (m RollMode) IsValid() bool {
	switch m {
	case RollModeSum, RollModeCritSuccess, RollModeCritFail, RollModeAdvantage, RollModeDisadvantage:
		return true
	}
	return false
}

// IsRandom returns true if the mode draws from a random source
func (m RollMode) IsRandom() bool {
	return m == RollModeSum || m == RollModeAdvantage || m == RollModeDisadvantage
}

// Label returns a human readable name for the mode
func (m RollMode) Label() string {
	switch m {
	case RollModeSum:
		return "Roll"
	case RollModeCritSuccess:
		return "Critical Success"
	case RollModeCritFail:
		return "Critical Fail"
	case RollModeAdvantage:
		return "Advantage"
	case RollModeDisadvantage:
		return "Disadvantage"
	default:
		return "Unknown"
	}
}

// IsStandardDie returns true if sides has a dedicated shortcut
func IsStandardDie(sides uint) bool {
	for _, s := range StandardDice {
		if s == sides {
			return true
		}
	}
	return false
}
