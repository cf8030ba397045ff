package analysis

import "encoding/json"

// LegacyRequest is the pre-questionnaire three-field submission.
type LegacyRequest struct {
	BusinessName string `json:"businessName"`
	Problem      string `json:"problem"`
	Solution     string `json:"solution"`
	TargetMarket string `json:"targetMarket"`
	Engine       string `json:"engine"`
}

// QuestionnaireRequest is the full weighted-questionnaire submission.
type QuestionnaireRequest struct {
	BusinessName      string            `json:"businessName"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone"`
	City              string            `json:"city"`
	SelectedQuestions []string          `json:"selectedQuestions"`
	Answers           map[string]string `json:"answers"`
	Engines           []string          `json:"engines"`
}

// DecodeRequest discriminates the two accepted request shapes by field
// presence, questionnaire first. A body matching neither shape returns
// (nil, nil, false).
func DecodeRequest(body []byte) (*QuestionnaireRequest, *LegacyRequest, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, nil, false
	}

	has := func(key string) bool {
		_, ok := probe[key]
		return ok
	}

	if has("selectedQuestions") && has("answers") && has("email") {
		var req QuestionnaireRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, nil, false
		}
		return &req, nil, true
	}

	if has("problem") && has("solution") && has("targetMarket") {
		var req LegacyRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, nil, false
		}
		return nil, &req, true
	}

	return nil, nil, false
}
