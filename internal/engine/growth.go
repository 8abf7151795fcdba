package engine

import "github.com/shopspring/decimal"

// Growth directions.
const (
	DirectionUp      = "up"
	DirectionDown    = "down"
	DirectionNeutral = "neutral"
)

// GrowthRate compares a current value against the previous period's.
// Rate is an unsigned percentage; Direction carries the sign. IsNew marks
// a metric with no prior history (previous == 0).
type GrowthRate struct {
	Rate      decimal.Decimal `json:"rate"`
	Direction string          `json:"direction"`
	IsNew     bool            `json:"is_new"`
}

// Growth computes the period-over-period change. Division by a zero
// previous value is branched away: a value appearing from nothing reports
// a flat 100% increase, and two zero periods report neutral.
func Growth(current, previous decimal.Decimal) GrowthRate {
	if previous.IsZero() {
		if current.IsZero() {
			return GrowthRate{Rate: decimal.Zero, Direction: DirectionNeutral, IsNew: true}
		}
		direction := DirectionUp
		if current.IsNegative() {
			direction = DirectionDown
		}
		return GrowthRate{Rate: hundred, Direction: direction, IsNew: true}
	}

	rate := current.Sub(previous).Abs().Div(previous.Abs()).Mul(hundred)
	direction := DirectionNeutral
	switch current.Cmp(previous) {
	case 1:
		direction = DirectionUp
	case -1:
		direction = DirectionDown
	}
	return GrowthRate{Rate: rate, Direction: direction}
}

// GrowthStrings parses numeric strings before comparison. Values that do
// not parse are treated as zero, consistent with the rest of the engine's
// handling of malformed amounts.
func GrowthStrings(current, previous string) GrowthRate {
	return Growth(parseOrZero(current), parseOrZero(previous))
}

func parseOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
