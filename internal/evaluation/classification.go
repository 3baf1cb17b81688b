package evaluation

// Classification thresholds. Lower bounds are inclusive.
const (
	ExcellentThreshold = 70.0
	PotentialThreshold = 30.0
)

// Classification is the badge assigned to a score.
type Classification int

const (
	LowMatch Classification = iota
	Potential
	ExcellentMatch
)

func (c Classification) String() string {
	switch c {
	case ExcellentMatch:
		return "Excellent Match"
	case Potential:
		return "Potential"
	default:
		return "Low Match"
	}
}

// Classify maps a score to its badge. Scores above 100 still classify as
// ExcellentMatch.
func Classify(score float64) Classification {
	switch {
	case score >= ExcellentThreshold:
		return ExcellentMatch
	case score >= PotentialThreshold:
		return Potential
	default:
		return LowMatch
	}
}
