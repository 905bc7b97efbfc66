package investwise

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is a discrete investor category derived from the risk score.
type Tier int

const (
	TierUnknown Tier = iota
	Conservative
	ModeratelyConservative
	Moderate
	GrowthOriented
	Aggressive
)

// tierDef is one row of the tier table.
type tierDef struct {
	tier        Tier
	name        string
	maxScore    float64 // inclusive
	allocation  Allocation
	description string
}

// tiers is evaluated in order, the first row whose maxScore is not exceeded wins.
var tiers = []tierDef{
	{
		tier:        Conservative,
		name:        "Conservative",
		maxScore:    3,
		allocation:  Allocation{Equity: 20, Bonds: 55, Gold: 15, Crypto: 0, Cash: 10},
		description: "You prioritize capital preservation over growth. Your portfolio focuses on stable, income-generating investments with minimal volatility.",
	},
	{
		tier:        ModeratelyConservative,
		name:        "Moderately Conservative",
		maxScore:    5,
		allocation:  Allocation{Equity: 35, Bonds: 40, Gold: 15, Crypto: 2, Cash: 8},
		description: "You seek modest growth while protecting your capital. Your portfolio has a balanced approach, with a tilt toward safer investments.",
	},
	{
		tier:        Moderate,
		name:        "Moderate",
		maxScore:    7,
		allocation:  Allocation{Equity: 50, Bonds: 30, Gold: 10, Crypto: 5, Cash: 5},
		description: "You balance growth and security. Your portfolio has diversified exposure to both conservative and growth-oriented investments.",
	},
	{
		tier:        GrowthOriented,
		name:        "Growth-Oriented",
		maxScore:    8.5,
		allocation:  Allocation{Equity: 65, Bonds: 15, Gold: 7, Crypto: 10, Cash: 3},
		description: "You prioritize long-term growth and can tolerate market fluctuations. Your portfolio emphasizes equity investments with some diversification.",
	},
	{
		tier:        Aggressive,
		name:        "Aggressive",
		maxScore:    10,
		allocation:  Allocation{Equity: 75, Bonds: 5, Gold: 5, Crypto: 15, Cash: 0},
		description: "You seek maximum growth and can handle significant volatility. Your portfolio focuses predominantly on high-growth investments with minimal stability-focused assets.",
	},
}

// Tiers lists the known tiers from the most cautious to the most aggressive.
var Tiers = []Tier{Conservative, ModeratelyConservative, Moderate, GrowthOriented, Aggressive}

func (t Tier) def() (tierDef, bool) {
	for _, d := range tiers {
		if d.tier == t {
			return d, true
		}
	}
	return tierDef{}, false
}

// String returns the display name of the tier, empty for TierUnknown.
func (t Tier) String() string {
	d, _ := t.def()
	return d.name
}

// Description returns the fixed policy text of the tier.
func (t Tier) Description() string {
	d, _ := t.def()
	return d.description
}

// Allocation returns the default allocation attached to the tier.
func (t Tier) Allocation() Allocation {
	d, _ := t.def()
	return d.allocation
}

// ParseTier parses a tier display name (case insensitive). The empty string
// is TierUnknown.
func ParseTier(s string) (Tier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TierUnknown, nil
	}
	for _, d := range tiers {
		if strings.EqualFold(d.name, s) {
			return d.tier, nil
		}
	}
	return TierUnknown, fmt.Errorf("unknown risk profile %q", s)
}

func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Tier) UnmarshalText(b []byte) (err error) {
	*t, err = ParseTier(string(b))
	return err
}

// tierFor returns the tier for a normalized score.
func tierFor(score float64) tierDef {
	for _, d := range tiers[:len(tiers)-1] {
		if score <= d.maxScore {
			return d
		}
	}
	return tiers[len(tiers)-1]
}

// RiskProfile is the outcome of a risk assessment.
type RiskProfile struct {
	Score       float64    `json:"score"` // within [0,10], one decimal
	Tier        Tier       `json:"tier"`
	Description string     `json:"description"`
	Allocation  Allocation `json:"allocation"`
}

var (
	// ErrIncompleteAnswers is returned when the questionnaire is not fully answered.
	ErrIncompleteAnswers = errors.New("incomplete answers")
	// ErrAnswerOutOfRange is returned when an answer is not a valid option value.
	ErrAnswerOutOfRange = errors.New("answer out of range")
)

// Score computes the risk profile of a complete set of answers.
//
// The normalized score is sum(answers)/(NumQuestions*MaxAnswer)*10 rounded
// half up to one decimal.
func Score(answers []Answer) (RiskProfile, error) {
	if len(answers) != NumQuestions {
		return RiskProfile{}, fmt.Errorf("%w: got %d answers, want %d", ErrIncompleteAnswers, len(answers), NumQuestions)
	}
	total := 0
	for i, a := range answers {
		if a == 0 {
			return RiskProfile{}, fmt.Errorf("%w: question %d is unanswered", ErrIncompleteAnswers, i+1)
		}
		if a < 1 || a > MaxAnswer {
			return RiskProfile{}, fmt.Errorf("%w: question %d has answer %d, want 1-%d", ErrAnswerOutOfRange, i+1, a, MaxAnswer)
		}
		total += int(a)
	}
	maxPossible := NumQuestions * int(MaxAnswer)
	score := round(float64(total)/float64(maxPossible)*10, 1)

	d := tierFor(score)
	return RiskProfile{
		Score:       score,
		Tier:        d.tier,
		Description: d.description,
		Allocation:  d.allocation,
	}, nil
}
