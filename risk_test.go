package investwise

import (
	"errors"
	"testing"
)

func repeat(a Answer) []Answer {
	answers := make([]Answer, NumQuestions)
	for i := range answers {
		answers[i] = a
	}
	return answers
}

func TestScore(t *testing.T) {
	testCases := []struct {
		name    string
		answers []Answer
		score   float64
		tier    Tier
		alloc   Allocation
	}{
		{
			name:    "all cautious",
			answers: repeat(1),
			score:   2.5,
			tier:    Conservative,
			alloc:   Allocation{20, 55, 15, 0, 10},
		},
		{
			name:    "all aggressive",
			answers: repeat(4),
			score:   10,
			tier:    Aggressive,
			alloc:   Allocation{75, 5, 5, 15, 0},
		},
		{
			// 12/32*10 = 3.75 -> 3.8
			name:    "rounds half up",
			answers: []Answer{1, 1, 1, 1, 2, 2, 2, 2},
			score:   3.8,
			tier:    ModeratelyConservative,
			alloc:   Allocation{35, 40, 15, 2, 8},
		},
		{
			// 16/32*10 = 5.0, bounds are inclusive
			name:    "inclusive upper bound",
			answers: repeat(2),
			score:   5,
			tier:    ModeratelyConservative,
			alloc:   Allocation{35, 40, 15, 2, 8},
		},
		{
			// 20/32*10 = 6.25 -> 6.3
			name:    "moderate",
			answers: []Answer{2, 2, 2, 2, 3, 3, 3, 3},
			score:   6.3,
			tier:    Moderate,
			alloc:   Allocation{50, 30, 10, 5, 5},
		},
		{
			// 27/32*10 = 8.4375 -> 8.4
			name:    "growth oriented",
			answers: []Answer{3, 3, 3, 3, 3, 4, 4, 4},
			score:   8.4,
			tier:    GrowthOriented,
			alloc:   Allocation{65, 15, 7, 10, 3},
		},
		{
			// 28/32*10 = 8.75 -> 8.8
			name:    "just above growth",
			answers: []Answer{3, 3, 3, 3, 4, 4, 4, 4},
			score:   8.8,
			tier:    Aggressive,
			alloc:   Allocation{75, 5, 5, 15, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := Score(tc.answers)
			if err != nil {
				t.Fatalf("Score(%v) error = %v", tc.answers, err)
			}
			if p.Score != tc.score {
				t.Errorf("Score(%v).Score = %v, want %v", tc.answers, p.Score, tc.score)
			}
			if p.Tier != tc.tier {
				t.Errorf("Score(%v).Tier = %v, want %v", tc.answers, p.Tier, tc.tier)
			}
			if p.Allocation != tc.alloc {
				t.Errorf("Score(%v).Allocation = %v, want %v", tc.answers, p.Allocation, tc.alloc)
			}
			if p.Description != tc.tier.Description() || p.Description == "" {
				t.Errorf("Score(%v).Description = %q", tc.answers, p.Description)
			}
		})
	}
}

func TestScore_AllAnswerSequencesSumTo100(t *testing.T) {
	// Every total from 8 to 32 is reachable, enumerate them instead of 4^8 sequences.
	for total := NumQuestions; total <= NumQuestions*int(MaxAnswer); total++ {
		answers := repeat(1)
		rest := total - NumQuestions
		for i := range answers {
			add := min(rest, int(MaxAnswer)-1)
			answers[i] += Answer(add)
			rest -= add
		}
		p, err := Score(answers)
		if err != nil {
			t.Fatalf("Score(%v) error = %v", answers, err)
		}
		if err := p.Allocation.Validate(); err != nil {
			t.Errorf("Score(%v).Allocation invalid: %v", answers, err)
		}
		if p.Score < 0 || p.Score > 10 {
			t.Errorf("Score(%v).Score = %v, want within [0,10]", answers, p.Score)
		}
	}
}

func TestScore_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		answers []Answer
		want    error
	}{
		{"nil", nil, ErrIncompleteAnswers},
		{"too short", []Answer{1, 2, 3}, ErrIncompleteAnswers},
		{"too long", append(repeat(1), 1), ErrIncompleteAnswers},
		{"unanswered", []Answer{1, 2, 3, 4, 0, 2, 3, 4}, ErrIncompleteAnswers},
		{"above range", []Answer{1, 2, 3, 4, 5, 2, 3, 4}, ErrAnswerOutOfRange},
		{"negative", []Answer{1, 2, 3, 4, -1, 2, 3, 4}, ErrAnswerOutOfRange},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Score(tc.answers); !errors.Is(err, tc.want) {
				t.Errorf("Score(%v) error = %v, want %v", tc.answers, err, tc.want)
			}
		})
	}
}

func TestTierTableAllocations(t *testing.T) {
	for _, tier := range Tiers {
		if err := tier.Allocation().Validate(); err != nil {
			t.Errorf("%v allocation is invalid: %v", tier, err)
		}
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range Tiers {
		got, err := ParseTier(tier.String())
		if err != nil {
			t.Fatalf("ParseTier(%q) error = %v", tier.String(), err)
		}
		if got != tier {
			t.Errorf("ParseTier(%q) = %v, want %v", tier.String(), got, tier)
		}
	}
	if got, err := ParseTier("growth-oriented"); err != nil || got != GrowthOriented {
		t.Errorf("ParseTier(growth-oriented) = %v, %v", got, err)
	}
	if got, err := ParseTier(""); err != nil || got != TierUnknown {
		t.Errorf("ParseTier(\"\") = %v, %v", got, err)
	}
	if _, err := ParseTier("reckless"); err == nil {
		t.Error("ParseTier(reckless) should fail")
	}
}

func TestParseAnswers(t *testing.T) {
	got, err := ParseAnswers("1, 2,3,4,4,3,2,1")
	if err != nil {
		t.Fatalf("ParseAnswers() error = %v", err)
	}
	want := []Answer{1, 2, 3, 4, 4, 3, 2, 1}
	if len(got) != len(want) {
		t.Fatalf("ParseAnswers() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParseAnswers()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if _, err := ParseAnswers("1,x"); err == nil {
		t.Error("ParseAnswers(1,x) should fail")
	}
}
