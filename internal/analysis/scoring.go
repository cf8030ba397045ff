package analysis

import (
	"math"
	"strings"
	"unicode/utf8"

	"feasibility-backend/internal/questionnaire"
	"feasibility-backend/internal/ventures"
)

// heuristic total score: rewards answer depth per length tier.
var totalQualityWords = []string{
	"ניסיון", "שנים", "לקוחות", "מכירות", "צמיחה", "פיתוח",
	"הכנסות", "רווח", "השקעה", "שוק", "תחרות", "יתרון",
}

// breakdown quality words: a tighter evidence-oriented subset.
var breakdownQualityWords = []string{"ניסיון", "נתונים", "מחקר", "לקוחות", "מכירות"}

func containsAny(answer string, words []string) bool {
	for _, w := range words {
		if strings.Contains(answer, w) {
			return true
		}
	}
	return false
}

func priorityWeight(p questionnaire.Priority) float64 {
	switch p {
	case questionnaire.PriorityHigh:
		return 2
	case questionnaire.PriorityMedium:
		return 1.5
	default:
		return 1
	}
}

func priorityMultiplier(p questionnaire.Priority) float64 {
	switch p {
	case questionnaire.PriorityHigh:
		return 1.5
	case questionnaire.PriorityMedium:
		return 1.2
	default:
		return 1
	}
}

// ScoreVenture computes the heuristic feasibility score from the
// answers alone, independent of any AI output. Each represented
// category contributes its weight scaled by the normalized quality of
// its answers; answers under 20 characters count as unanswered. The
// result is deterministic and bounded to [0, 105].
func ScoreVenture(selectedQuestions []string, answers map[string]string) int {
	var total float64

	byCategory := questionnaire.SelectedByCategory(selectedQuestions)
	for letter, ids := range byCategory {
		cat, ok := questionnaire.CategoryByLetter(letter)
		if !ok {
			continue
		}

		var categoryScore, totalWeight float64
		for _, id := range ids {
			q, ok := questionnaire.QuestionByID(id)
			if !ok {
				continue
			}
			answer := answers[id]
			length := utf8.RuneCountInString(answer)
			if strings.TrimSpace(answer) == "" || length < 20 {
				continue
			}

			var questionScore float64
			questionScore += 0.2
			if length >= 50 {
				questionScore += 0.3
			}
			if length >= 100 {
				questionScore += 0.3
			}
			if length >= 200 {
				questionScore += 0.2
			}
			if containsAny(answer, totalQualityWords) {
				questionScore += 0.1
			}

			w := priorityWeight(q.Priority)
			categoryScore += questionScore * w
			totalWeight += w
		}

		if totalWeight > 0 {
			normalized := math.Min(categoryScore/totalWeight, 1)
			total += normalized * float64(cat.Weight)
		}
	}

	return int(math.Round(math.Min(total, 105)))
}

// answerQuality grades a single answer 0..4 by depth and evidence.
// Depth is measured in characters, not bytes, so Hebrew answers are
// graded the same as Latin ones.
func answerQuality(answer string) float64 {
	var q float64
	length := utf8.RuneCountInString(answer)
	if length >= 50 {
		q++
	}
	if length >= 150 {
		q++
	}
	if length >= 300 {
		q++
	}
	if containsAny(answer, breakdownQualityWords) {
		q++
	}
	return q
}

// DetailedScoring fans the per-question quality points out into the
// 13-dimension breakdown. Every answered category floors its mapped
// dimensions at 1, so a category is never reported as a string of
// zeros when it was in fact addressed. The breakdown sums are not
// reconciled with the total score.
func DetailedScoring(selectedQuestions []string, answers map[string]string) ventures.Breakdown {
	var (
		b        ventures.Breakdown
		acc      = map[string]float64{}
		answered = map[string]bool{}
	)

	for _, id := range selectedQuestions {
		answer := answers[id]
		if strings.TrimSpace(answer) == "" || utf8.RuneCountInString(answer) < 20 {
			continue
		}
		q, ok := questionnaire.QuestionByID(id)
		if !ok {
			continue
		}

		final := answerQuality(answer) * priorityMultiplier(q.Priority)
		letter := questionnaire.CategoryLetterOf(id)
		answered[letter] = true

		switch letter {
		case "A", "F":
			acc["teamCapability"] += final * 0.8
		case "C":
			acc["problemClarity"] += final * 0.6
			acc["solutionDifferentiation"] += final * 0.4
		case "E":
			if id == "E6" || id == "E7" {
				acc["businessModel"] += final
			} else {
				acc["tamSamSom"] += final * 0.4
				acc["marketTiming"] += final * 0.3
				acc["competitorAwareness"] += final * 0.3
			}
		case "D":
			acc["momTest"] += final * 0.6
			acc["crossValidation"] += final * 0.4
		case "B":
			acc["swotRisk"] += final * 0.5
		}
	}

	floor := func(letter, dim string) {
		if answered[letter] && acc[dim] < 1 {
			acc[dim] = 1
		}
	}
	floor("A", "teamCapability")
	floor("F", "teamCapability")
	floor("C", "problemClarity")
	floor("C", "solutionDifferentiation")
	floor("E", "tamSamSom")
	floor("E", "marketTiming")
	floor("E", "competitorAwareness")
	floor("E", "businessModel")
	floor("D", "momTest")
	floor("D", "crossValidation")
	floor("B", "swotRisk")

	round := func(dim string) int { return int(math.Round(acc[dim])) }
	b.TeamCapability = round("teamCapability")
	b.ProblemClarity = round("problemClarity")
	b.SolutionDifferentiation = round("solutionDifferentiation")
	b.TamSamSom = round("tamSamSom")
	b.MarketTiming = round("marketTiming")
	b.CompetitorAwareness = round("competitorAwareness")
	b.BusinessModel = round("businessModel")
	b.MomTest = round("momTest")
	b.CrossValidation = round("crossValidation")
	b.SwotRisk = round("swotRisk")
	b.Clamp()
	return b
}

// LegacyScore is the three-field fallback used by requests that carry
// free-form problem, solution and target-market text instead of a
// questionnaire.
func LegacyScore(problem, solution, targetMarket string) int {
	score := minInt(15, utf8.RuneCountInString(problem)/10) +
		minInt(15, utf8.RuneCountInString(solution)/10) +
		minInt(10, utf8.RuneCountInString(targetMarket)/8) + 20
	if score > 105 {
		score = 105
	}
	return score
}

// LegacyBreakdown derives a deterministic breakdown from the legacy
// score instead of inventing random sub-scores.
func LegacyBreakdown(score int) ventures.Breakdown {
	frac := float64(score) / 105
	dim := func(max int) int { return int(math.Round(frac * float64(max))) }
	b := ventures.Breakdown{
		TeamCapability:          dim(15),
		ProblemClarity:          dim(10),
		SolutionDifferentiation: dim(10),
		TamSamSom:               dim(10),
		MarketTiming:            dim(10),
		CompetitorAwareness:     dim(10),
		BusinessModel:           dim(10),
		PorterForces:            dim(5),
		SwotRisk:                dim(5),
		CrossValidation:         dim(5),
		AcademicSources:         dim(5),
		VisualsData:             dim(5),
		MomTest:                 dim(5),
	}
	b.Clamp()
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
