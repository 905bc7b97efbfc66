package investwise

import (
	"fmt"
	"strconv"
	"strings"
)

// Answer is the value of the option picked for a question, from 1 (most
// cautious) to MaxAnswer (most risk tolerant). Zero means unanswered.
type Answer int

// MaxAnswer is the value of the most risk tolerant option.
const MaxAnswer Answer = 4

// Question is a single risk tolerance question with its options, ordered by
// increasing risk tolerance: Options[i] is worth Answer(i+1).
type Question struct {
	ID      int
	Text    string
	Options [MaxAnswer]string
}

// Questions is the reference risk tolerance questionnaire.
var Questions = []Question{
	{
		ID:   1,
		Text: "How long do you plan to invest your money before you need it?",
		Options: [MaxAnswer]string{
			"Less than 3 years",
			"3-5 years",
			"5-10 years",
			"10+ years",
		},
	},
	{
		ID:   2,
		Text: "How would you react if your investments lost 20% of their value in a year?",
		Options: [MaxAnswer]string{
			"I would sell everything and move to safer investments",
			"I would sell some investments and move to safer options",
			"I would hold my investments and wait for recovery",
			"I would see it as an opportunity to buy more",
		},
	},
	{
		ID:   3,
		Text: "Which statement best describes your investment experience?",
		Options: [MaxAnswer]string{
			"I have no investment experience",
			"I have some experience with mutual funds or stocks",
			"I am comfortable with various investment types",
			"I actively manage a diverse investment portfolio",
		},
	},
	{
		ID:   4,
		Text: "How important is liquidity (ability to access your money quickly) to you?",
		Options: [MaxAnswer]string{
			"Extremely important - I may need to access all my money at any time",
			"Important - I need to access a portion of my investments on short notice",
			"Somewhat important - I have other emergency funds",
			"Not important - I have sufficient emergency funds elsewhere",
		},
	},
	{
		ID:   5,
		Text: "Which investment approach appeals to you most?",
		Options: [MaxAnswer]string{
			"Low risk, low return investments only",
			"Mostly low risk with some higher risk investments",
			"Balanced mix of low and high risk investments",
			"Mostly high risk, high potential return investments",
		},
	},
	{
		ID:   6,
		Text: "Have you ever invested in cryptocurrency or other volatile assets?",
		Options: [MaxAnswer]string{
			"No, and I'm not interested",
			"No, but I might consider a small allocation",
			"Yes, with a small portion of my portfolio",
			"Yes, I actively trade volatile assets",
		},
	},
	{
		ID:   7,
		Text: "What is your primary financial goal?",
		Options: [MaxAnswer]string{
			"Preserving capital and generating income",
			"Balanced growth with some income",
			"Growth over the long term",
			"Maximum growth, even with significant risk",
		},
	},
	{
		ID:   8,
		Text: "How would you allocate ₹100,000 across these options?",
		Options: [MaxAnswer]string{
			"80% in safe investments, 20% in growth investments",
			"60% in safe investments, 40% in growth investments",
			"40% in safe investments, 60% in growth investments",
			"20% in safe investments, 80% in growth investments",
		},
	},
}

// NumQuestions is the number of questions Score expects answers for.
var NumQuestions = len(Questions)

// ParseAnswers parses a comma separated list of answers like "1,2,3,4,4,3,2,1".
// It does not check the number of answers nor their range, Score does.
func ParseAnswers(s string) ([]Answer, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	answers := make([]Answer, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid answer #%d %q: %w", i+1, f, err)
		}
		answers = append(answers, Answer(n))
	}
	return answers, nil
}
