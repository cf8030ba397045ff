package analysis

import (
	"strings"
	"testing"

	"feasibility-backend/internal/ventures"
)

// richAnswer is long enough for every length tier and carries an
// evidence keyword both scorers recognize.
func richAnswer() string {
	return "יש לנו ניסיון רב בתחום. " + strings.Repeat("פירוט נוסף על המיזם. ", 20)
}

func TestScoreVentureEmptyAnswers(t *testing.T) {
	if got := ScoreVenture([]string{"C1", "C4"}, map[string]string{}); got != 0 {
		t.Fatalf("empty answers should score 0, got %d", got)
	}
}

func TestScoreVentureIgnoresShortAnswers(t *testing.T) {
	answers := map[string]string{"C1": "קצר"}
	if got := ScoreVenture([]string{"C1"}, answers); got != 0 {
		t.Fatalf("answers under 20 characters should score 0, got %d", got)
	}
}

func TestScoreVentureCountsCharactersNotBytes(t *testing.T) {
	// Ten Hebrew characters are twenty UTF-8 bytes but still fall
	// under the 20-character threshold.
	short := map[string]string{"C1": strings.Repeat("א", 10)}
	if got := ScoreVenture([]string{"C1"}, short); got != 0 {
		t.Fatalf("10-character Hebrew answer should score 0, got %d", got)
	}

	hebrew := ScoreVenture([]string{"C1"}, map[string]string{"C1": strings.Repeat("א", 25)})
	latin := ScoreVenture([]string{"C1"}, map[string]string{"C1": strings.Repeat("a", 25)})
	if hebrew != latin {
		t.Fatalf("equal-length answers should score equally: hebrew=%d latin=%d", hebrew, latin)
	}
}

func TestScoreVentureFullRichAnswersReachCeiling(t *testing.T) {
	selected := []string{"A1", "B1", "C1", "D1", "E1", "F1", "G1"}
	answers := make(map[string]string, len(selected))
	for _, id := range selected {
		answers[id] = richAnswer()
	}
	if got := ScoreVenture(selected, answers); got != 100 {
		t.Fatalf("rich answers across every category should score 100, got %d", got)
	}
}

func TestScoreVentureMonotonicInAnswerDepth(t *testing.T) {
	short := map[string]string{"C1": strings.Repeat("a", 25)}
	long := map[string]string{"C1": strings.Repeat("a", 250)}

	shortScore := ScoreVenture([]string{"C1"}, short)
	longScore := ScoreVenture([]string{"C1"}, long)

	if shortScore <= 0 {
		t.Fatalf("short-but-valid answer should score above 0, got %d", shortScore)
	}
	if longScore <= shortScore {
		t.Fatalf("longer answer should score higher: short=%d long=%d", shortScore, longScore)
	}
	if longScore > 20 {
		t.Fatalf("single C-category selection is capped at 20, got %d", longScore)
	}
}

func TestDetailedScoringEmpty(t *testing.T) {
	got := DetailedScoring([]string{"C1"}, map[string]string{})
	if got != (ventures.Breakdown{}) {
		t.Fatalf("expected zero breakdown, got %+v", got)
	}
}

func TestDetailedScoringPricingFeedsBusinessModel(t *testing.T) {
	answers := map[string]string{"E6": richAnswer()}
	got := DetailedScoring([]string{"E6"}, answers)
	if got.BusinessModel <= 1 {
		t.Fatalf("business-model answer should feed businessModel beyond the floor, got %d", got.BusinessModel)
	}
	// Market dimensions get no contribution from E6, only the
	// answered-category floor.
	if got.TamSamSom != 1 || got.MarketTiming != 1 {
		t.Fatalf("market dimensions should sit at the floor, got %+v", got)
	}
}

func TestDetailedScoringFloorsAnsweredDimensions(t *testing.T) {
	// Short enough to earn only the keyword point, so the raw
	// contributions land below 1 and get floored up.
	answers := map[string]string{"C1": "דיברנו עם לקוחות רבים"}
	got := DetailedScoring([]string{"C1"}, answers)
	if got.ProblemClarity != 1 {
		t.Fatalf("problemClarity = %d, want floored 1", got.ProblemClarity)
	}
	if got.SolutionDifferentiation != 1 {
		t.Fatalf("solutionDifferentiation = %d, want floored 1", got.SolutionDifferentiation)
	}
}

func TestDetailedScoringFloorsQualityZeroAnswers(t *testing.T) {
	// 30 characters, no evidence keyword: quality 0, yet the answer is
	// long enough to count as answered, so its dimensions floor at 1
	// rather than reporting the category as a string of zeros.
	answers := map[string]string{"C1": strings.Repeat("x", 30)}
	got := DetailedScoring([]string{"C1"}, answers)
	if got.ProblemClarity != 1 || got.SolutionDifferentiation != 1 {
		t.Fatalf("answered category should floor its dimensions at 1, got %+v", got)
	}
	if score := ScoreVenture([]string{"C1"}, answers); score <= 0 {
		t.Fatalf("the same answer earns a positive total score, got %d", score)
	}
}

func TestDetailedScoringClampsDimensionCeilings(t *testing.T) {
	selected := []string{"C1", "C2", "C3", "C4", "C5"}
	answers := make(map[string]string, len(selected))
	for _, id := range selected {
		answers[id] = richAnswer()
	}
	got := DetailedScoring(selected, answers)
	if got.ProblemClarity != 10 {
		t.Fatalf("problemClarity = %d, want clamped 10", got.ProblemClarity)
	}
	if got.SolutionDifferentiation != 10 {
		t.Fatalf("solutionDifferentiation = %d, want clamped 10", got.SolutionDifferentiation)
	}
}

func TestLegacyScore(t *testing.T) {
	problem := strings.Repeat("a", 150)
	solution := strings.Repeat("b", 150)
	target := strings.Repeat("c", 80)
	if got := LegacyScore(problem, solution, target); got != 60 {
		t.Fatalf("LegacyScore = %d, want 60", got)
	}
	if got := LegacyScore("", "", ""); got != 20 {
		t.Fatalf("LegacyScore of empty input = %d, want base 20", got)
	}
}

func TestLegacyBreakdownDeterministic(t *testing.T) {
	a := LegacyBreakdown(63)
	b := LegacyBreakdown(63)
	if a != b {
		t.Fatal("same score should yield the same breakdown")
	}
	full := LegacyBreakdown(105)
	if full.TeamCapability != 15 || full.MomTest != 5 {
		t.Fatalf("full score should max every dimension, got %+v", full)
	}
	if zero := LegacyBreakdown(0); zero != (ventures.Breakdown{}) {
		t.Fatalf("zero score should zero every dimension, got %+v", zero)
	}
}
