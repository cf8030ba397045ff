package analysis

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"feasibility-backend/internal/questionnaire"
	"feasibility-backend/internal/shared/metrics"
	"feasibility-backend/internal/shared/telemetry"
	"feasibility-backend/internal/ventures"
)

// EngineRunner produces analysis text for a prompt. Implementations
// never fail outward: on provider failure text holds a displayable
// fallback and ok is false.
type EngineRunner interface {
	Name() string
	RunAnalysis(ctx context.Context, prompt string) (text string, ok bool)
}

// Service orchestrates prompt construction, engine fan-out, score
// extraction and persistence for one analysis request.
type Service struct {
	Repo    ventures.Repo
	Runners map[string]EngineRunner
}

// NewService constructs a Service over the given repo and runners,
// keyed by engine name.
func NewService(repo ventures.Repo, runners ...EngineRunner) *Service {
	m := make(map[string]EngineRunner, len(runners))
	for _, r := range runners {
		m[r.Name()] = r
	}
	return &Service{Repo: repo, Runners: m}
}

// Result is the response payload of a questionnaire analysis.
type Result struct {
	VentureID          string              `json:"ventureId"`
	Score              int                 `json:"score"`
	MaxScore           int                 `json:"maxScore"`
	ProgressPercentage int                 `json:"progressPercentage"`
	Results            map[string]string   `json:"results"`
	Scoring            ResultScoring       `json:"scoring"`
	Comprehensive      *string             `json:"comprehensive"`
	SavedAt            time.Time           `json:"savedAt"`
	AIResults          []ventures.AIResult `json:"-"`
}

// ResultScoring carries the breakdown inside the response envelope.
type ResultScoring struct {
	Breakdown ventures.Breakdown `json:"breakdown"`
}

var scorePattern = `(?i)ציון סופי[:\s]*(\d+)/%d`

// extractScore pulls the engine's self-reported final score out of the
// analysis text. Returns (0, false) when no well-formed score line for
// this denominator is present.
func extractScore(analysis string, maxScore int) (int, bool) {
	re := regexp.MustCompile(fmt.Sprintf(scorePattern, maxScore))
	m := re.FindStringSubmatch(analysis)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func clampScore(score, maxScore int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// runEngines fans the prompt out to the requested engines concurrently
// and collects one AIResult per engine, in request order. Engines with
// no registered runner produce a zero-score result carrying an
// unavailability note.
func (s *Service) runEngines(ctx context.Context, engineNames []string, prompt string, maxScore, heuristicScore int) []ventures.AIResult {
	results := make([]ventures.AIResult, len(engineNames))

	var wg sync.WaitGroup
	for i, name := range engineNames {
		runner, ok := s.Runners[name]
		if !ok {
			results[i] = ventures.AIResult{
				Engine:      name,
				Analysis:    fmt.Sprintf("מנוע הניתוח %s אינו זמין כרגע.", name),
				Score:       0,
				MaxScore:    maxScore,
				GeneratedAt: time.Now().UTC(),
			}
			continue
		}

		wg.Add(1)
		go func(i int, name string, runner EngineRunner) {
			defer wg.Done()

			start := time.Now()
			analysis, ok := runner.RunAnalysis(ctx, prompt)
			elapsed := time.Since(start)

			score := 0
			if ok {
				extracted, found := extractScore(analysis, maxScore)
				if found {
					score = clampScore(extracted, maxScore)
				} else {
					score = clampScore(heuristicScore, maxScore)
				}
			}

			telemetry.Info("analysis.engine_done", map[string]any{
				"engine":      name,
				"ok":          ok,
				"score":       score,
				"duration_ms": elapsed.Milliseconds(),
			})

			tokens := 0
			if ok {
				tokens = len(analysis)
			}
			results[i] = ventures.AIResult{
				Engine:      name,
				Analysis:    analysis,
				Score:       score,
				MaxScore:    maxScore,
				GeneratedAt: time.Now().UTC(),
				TokensUsed:  tokens,
			}
		}(i, name, runner)
	}
	wg.Wait()

	return results
}

// meanScore averages engine scores, failed engines included at zero.
func meanScore(results []ventures.AIResult) int {
	if len(results) == 0 {
		return 0
	}
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	return int(float64(sum)/float64(len(results)) + 0.5)
}

// AnalyzeQuestionnaire runs the full weighted analysis: the venture is
// persisted as submitted before any engine runs, then updated with the
// engine results and the detailed breakdown.
func (s *Service) AnalyzeQuestionnaire(ctx context.Context, req *QuestionnaireRequest) (*Result, error) {
	metrics.IncAnalysisStarted()
	start := time.Now()

	selected := req.SelectedQuestions
	completion := int(float64(len(selected))/float64(questionnaire.TotalQuestions)*100 + 0.5)

	v := ventures.Venture{
		VentureID: ventures.NewVentureID(),
		ClientID:  ventures.NewClientID("CLIENT"),
		BasicInfo: ventures.BasicInfo{
			BusinessName: req.BusinessName,
			Email:        req.Email,
			Phone:        req.Phone,
			City:         req.City,
		},
		Questionnaire: FormatQuestionnaireData(selected, req.Answers),
		Responses: ventures.ResponseStats{
			TotalSelected:        len(selected),
			TotalAvailable:       questionnaire.TotalQuestions,
			CompletionPercentage: completion,
			LastUpdated:          time.Now().UTC(),
		},
		Status:    ventures.StatusSubmitted,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, v); err != nil {
		metrics.IncAnalysisFailed()
		return nil, fmt.Errorf("save venture: %w", err)
	}
	telemetry.Info("analysis.venture_created", map[string]any{
		"venture_id": v.VentureID,
		"questions":  len(selected),
		"engines":    len(req.Engines),
	})

	prompt, maxScore := BuildPrompt(selected, req.Answers, req.BusinessName)
	heuristic := ScoreVenture(selected, req.Answers)

	aiResults := s.runEngines(ctx, req.Engines, prompt, maxScore, heuristic)
	if ctx.Err() != nil {
		metrics.IncAnalysisFailed()
		return nil, ctx.Err()
	}

	finalScore := meanScore(aiResults)
	breakdown := DetailedScoring(selected, req.Answers)
	scoring := ventures.Scoring{
		Total:       finalScore,
		MaxPossible: maxScore,
		Breakdown:   breakdown,
		LastUpdated: time.Now().UTC(),
	}

	if err := s.Repo.UpdateResults(ctx, v.VentureID, aiResults, scoring, ventures.StatusAnalyzed); err != nil {
		metrics.IncAnalysisFailed()
		return nil, fmt.Errorf("update venture results: %w", err)
	}

	resultTexts := make(map[string]string, len(aiResults))
	for _, r := range aiResults {
		resultTexts[r.Engine] = r.Analysis
	}

	var comprehensive *string
	if len(aiResults) >= 2 {
		text := ComprehensiveAnalysis(aiResults)
		comprehensive = &text
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))

	return &Result{
		VentureID:          v.VentureID,
		Score:              finalScore,
		MaxScore:           maxScore,
		ProgressPercentage: completion,
		Results:            resultTexts,
		Scoring:            ResultScoring{Breakdown: breakdown},
		Comprehensive:      comprehensive,
		SavedAt:            scoring.LastUpdated,
		AIResults:          aiResults,
	}, nil
}

// LegacyResult is the response payload of a legacy analysis: the
// venture id plus one entry per engine keyed by engine name.
type LegacyResult struct {
	VentureID string
	Analyses  map[string]string
}

// AnalyzeLegacy runs the quick three-field analysis. The free-form
// answers are folded into pseudo questionnaire entries so history
// queries see a uniform shape.
func (s *Service) AnalyzeLegacy(ctx context.Context, req *LegacyRequest) (*LegacyResult, error) {
	metrics.IncAnalysisStarted()
	start := time.Now()

	engineNames := []string{req.Engine}
	if req.Engine == "" || req.Engine == "both" {
		engineNames = []string{"chatgpt", "gemini"}
	}

	now := time.Now().UTC()
	total := questionnaire.TotalQuestions
	completion := int(float64(3)/float64(total)*100 + 0.5)
	v := ventures.Venture{
		VentureID: ventures.NewVentureID(),
		ClientID:  ventures.NewClientID("LEGACY"),
		BasicInfo: ventures.BasicInfo{
			BusinessName: req.BusinessName,
			Email:        "legacy@methodian.com",
		},
		Questionnaire: LegacyQuestionnaireData(req.Problem, req.Solution, req.TargetMarket),
		Responses: ventures.ResponseStats{
			TotalSelected:        3,
			TotalAvailable:       questionnaire.TotalQuestions,
			CompletionPercentage: completion,
			LastUpdated:          now,
		},
		Status:    ventures.StatusSubmitted,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Repo.Create(ctx, v); err != nil {
		metrics.IncAnalysisFailed()
		return nil, fmt.Errorf("save venture: %w", err)
	}

	prompt := BuildLegacyPrompt(req.BusinessName, req.Problem, req.Solution, req.TargetMarket)
	heuristic := LegacyScore(req.Problem, req.Solution, req.TargetMarket)

	aiResults := s.runEngines(ctx, engineNames, prompt, 105, heuristic)
	if ctx.Err() != nil {
		metrics.IncAnalysisFailed()
		return nil, ctx.Err()
	}

	finalScore := meanScore(aiResults)
	scoring := ventures.Scoring{
		Total:       finalScore,
		MaxPossible: 105,
		Breakdown:   LegacyBreakdown(finalScore),
		LastUpdated: time.Now().UTC(),
	}

	if err := s.Repo.UpdateResults(ctx, v.VentureID, aiResults, scoring, ventures.StatusAnalyzed); err != nil {
		metrics.IncAnalysisFailed()
		return nil, fmt.Errorf("update venture results: %w", err)
	}

	analyses := make(map[string]string, len(aiResults))
	for _, r := range aiResults {
		analyses[r.Engine] = r.Analysis
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))

	return &LegacyResult{VentureID: v.VentureID, Analyses: analyses}, nil
}

// History returns the newest analyses for a venture id or email, at
// most limit entries.
func (s *Service) History(ctx context.Context, ventureID, email string, limit int) ([]ventures.Summary, error) {
	var (
		list []ventures.Venture
		err  error
	)
	if ventureID != "" {
		list, err = s.Repo.ListByVentureID(ctx, ventureID, limit)
	} else {
		list, err = s.Repo.ListByEmail(ctx, email, limit)
	}
	if err != nil && !errors.Is(err, ventures.ErrNotFound) {
		return nil, err
	}

	summaries := make([]ventures.Summary, 0, len(list))
	for _, v := range list {
		summaries = append(summaries, v.Summarize())
	}
	return summaries, nil
}
