// Package ventures persists the analyzable business entity: the
// submitted questionnaire, per-engine AI results and the derived score.
package ventures

import (
	"crypto/rand"
	"fmt"
	"time"
)

// Venture lifecycle states.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusAnalyzed  = "analyzed"
	StatusCompleted = "completed"
)

// QuestionResponse is one answered catalog question.
type QuestionResponse struct {
	Selected   bool      `json:"selected"`
	Answer     string    `json:"answer"`
	AnsweredAt time.Time `json:"answeredAt"`
}

// CategoryResponses maps question id to its response within a category.
type CategoryResponses map[string]QuestionResponse

// Questionnaire groups responses by the full category id, e.g.
// "C_problem_solution".
type Questionnaire map[string]CategoryResponses

// BasicInfo holds founder contact details.
type BasicInfo struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	City         string `json:"city,omitempty"`
}

// ResponseStats summarizes questionnaire completion.
type ResponseStats struct {
	TotalSelected        int       `json:"totalSelected"`
	TotalAvailable       int       `json:"totalAvailable"`
	CompletionPercentage int       `json:"completionPercentage"`
	LastUpdated          time.Time `json:"lastUpdated"`
}

// AIResult is one engine's contribution to an analysis. Created exactly
// once per engine per request and immutable after creation. On engine
// failure Analysis holds the canned fallback text and Score is 0.
type AIResult struct {
	Engine      string    `json:"engine"`
	Analysis    string    `json:"analysis"`
	Score       int       `json:"score"`
	MaxScore    int       `json:"maxScore"`
	GeneratedAt time.Time `json:"generatedAt"`
	TokensUsed  int       `json:"tokensUsed"`
}

// Breakdown is the fixed 13-dimension sub-score decomposition. Each
// dimension has its own upper bound; the sum is not constrained to
// equal Scoring.Total.
type Breakdown struct {
	TeamCapability          int `json:"teamCapability"`
	ProblemClarity          int `json:"problemClarity"`
	SolutionDifferentiation int `json:"solutionDifferentiation"`
	TamSamSom               int `json:"tamSamSom"`
	MarketTiming            int `json:"marketTiming"`
	CompetitorAwareness     int `json:"competitorAwareness"`
	BusinessModel           int `json:"businessModel"`
	PorterForces            int `json:"porterForces"`
	SwotRisk                int `json:"swotRisk"`
	CrossValidation         int `json:"crossValidation"`
	AcademicSources         int `json:"academicSources"`
	VisualsData             int `json:"visualsData"`
	MomTest                 int `json:"momTest"`
}

// Clamp bounds every dimension into its documented range.
func (b *Breakdown) Clamp() {
	b.TeamCapability = clamp(b.TeamCapability, 15)
	b.ProblemClarity = clamp(b.ProblemClarity, 10)
	b.SolutionDifferentiation = clamp(b.SolutionDifferentiation, 10)
	b.TamSamSom = clamp(b.TamSamSom, 10)
	b.MarketTiming = clamp(b.MarketTiming, 10)
	b.CompetitorAwareness = clamp(b.CompetitorAwareness, 10)
	b.BusinessModel = clamp(b.BusinessModel, 10)
	b.PorterForces = clamp(b.PorterForces, 5)
	b.SwotRisk = clamp(b.SwotRisk, 5)
	b.CrossValidation = clamp(b.CrossValidation, 5)
	b.AcademicSources = clamp(b.AcademicSources, 5)
	b.VisualsData = clamp(b.VisualsData, 5)
	b.MomTest = clamp(b.MomTest, 5)
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Scoring is the analysis score attached to a venture.
type Scoring struct {
	Total       int       `json:"total"`
	MaxPossible int       `json:"maxPossible"`
	Breakdown   Breakdown `json:"breakdown"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Venture is the persisted business-analysis record.
type Venture struct {
	VentureID     string        `json:"ventureId"`
	ClientID      string        `json:"clientId"`
	BasicInfo     BasicInfo     `json:"basicInfo"`
	Questionnaire Questionnaire `json:"questionnaire"`
	Responses     ResponseStats `json:"responses"`
	AIResults     []AIResult    `json:"aiResults"`
	Scoring       Scoring       `json:"scoring"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Summary is the list-view projection returned by history queries.
type Summary struct {
	VentureID    string    `json:"ventureId"`
	BusinessName string    `json:"businessName"`
	Score        int       `json:"score"`
	MaxScore     int       `json:"maxScore"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Summarize projects a venture into its list view.
func (v Venture) Summarize() Summary {
	maxScore := v.Scoring.MaxPossible
	if maxScore == 0 {
		maxScore = 105
	}
	return Summary{
		VentureID:    v.VentureID,
		BusinessName: v.BasicInfo.BusinessName,
		Score:        v.Scoring.Total,
		MaxScore:     maxScore,
		Status:       v.Status,
		Progress:     v.Responses.CompletionPercentage,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(buf)
}

// NewVentureID generates a venture id in the VEN_<millis>_<token> format.
func NewVentureID() string {
	return fmt.Sprintf("VEN_%d_%s", time.Now().UnixMilli(), randToken(9))
}

// NewClientID generates a correlation id with the given prefix, e.g.
// CLIENT or LEGACY.
func NewClientID(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), randToken(9))
}
