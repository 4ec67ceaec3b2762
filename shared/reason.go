package shared

// Reason represents a drop point detection reason.
type Reason int

const (
	DeathCross Reason = iota
	OscillatorDecline
	BearishDivergence
)

// String stringifies the provided reason.
func (r Reason) String() string {
	switch r {
	case DeathCross:
		return "macd death cross"
	case OscillatorDecline:
		return "oscillator decline"
	case BearishDivergence:
		return "bearish divergence"
	default:
		return "unknown"
	}
}
