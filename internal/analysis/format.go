package analysis

import (
	"time"

	"feasibility-backend/internal/questionnaire"
	"feasibility-backend/internal/ventures"
)

var categoryIDs = []string{
	"A_personal_info",
	"B_commitment_resources",
	"C_problem_solution",
	"D_user_validation",
	"E_market_analysis",
	"F_team_execution",
	"G_experience",
}

// FormatQuestionnaireData groups answered questions under their full
// category ids. Every category appears in the result even when empty,
// and selected questions without an answer are omitted.
func FormatQuestionnaireData(selectedQuestions []string, answers map[string]string) ventures.Questionnaire {
	now := time.Now().UTC()
	q := make(ventures.Questionnaire, len(categoryIDs))

	for _, categoryID := range categoryIDs {
		q[categoryID] = ventures.CategoryResponses{}
		letter := categoryID[:1]
		for _, id := range selectedQuestions {
			if questionnaire.CategoryLetterOf(id) != letter {
				continue
			}
			answer, ok := answers[id]
			if !ok || answer == "" {
				continue
			}
			q[categoryID][id] = ventures.QuestionResponse{
				Selected:   true,
				Answer:     answer,
				AnsweredAt: now,
			}
		}
	}

	return q
}

// LegacyQuestionnaireData folds the three legacy free-form fields into
// pseudo questionnaire entries so legacy ventures share the shape of
// questionnaire ventures.
func LegacyQuestionnaireData(problem, solution, targetMarket string) ventures.Questionnaire {
	now := time.Now().UTC()
	q := make(ventures.Questionnaire, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		q[categoryID] = ventures.CategoryResponses{}
	}

	q["B_commitment_resources"]["legacy_problem"] = ventures.QuestionResponse{
		Selected: true, Answer: problem, AnsweredAt: now,
	}
	q["C_problem_solution"]["legacy_solution"] = ventures.QuestionResponse{
		Selected: true, Answer: solution, AnsweredAt: now,
	}
	q["C_problem_solution"]["legacy_target"] = ventures.QuestionResponse{
		Selected: true, Answer: targetMarket, AnsweredAt: now,
	}

	return q
}
