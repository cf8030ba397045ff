// Package questionnaire holds the static feasibility questionnaire catalog:
// seven lettered categories with fixed score weights and 48 questions.
package questionnaire

// Priority classifies how strongly a question influences category scoring.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// InputType describes the UI input shape for a question.
type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
	InputNumber   InputType = "number"
	InputEmail    InputType = "email"
)

// Question is one immutable catalog entry. The ID is a category letter
// followed by an ordinal, e.g. "C3".
type Question struct {
	ID        string
	Text      string
	Required  bool
	Type      InputType
	MaxLength int
	Priority  Priority
}

// Category groups questions sharing a one-letter code. Weight is the
// category's fixed maximum score contribution.
type Category struct {
	ID            string
	Letter        string
	Title         string
	Description   string
	Weight        int
	EstimatedTime int
	Questions     []Question
}

// TotalQuestions is the number of questions across all categories.
const TotalQuestions = 48

// Catalog is the full questionnaire, loaded once and never mutated.
var Catalog = []Category{
	{
		ID:            "A_personal_info",
		Letter:        "A",
		Title:         "מידע אישי בסיסי",
		Description:   "פרטים אישיים בסיסיים של המייסד",
		Weight:        5,
		EstimatedTime: 3,
		Questions: []Question{
			{ID: "A1", Text: "שם מלא", Required: true, Type: InputText, MaxLength: 100, Priority: PriorityHigh},
			{ID: "A2", Text: "כתובת אימייל", Required: true, Type: InputEmail, MaxLength: 100, Priority: PriorityHigh},
			{ID: "A3", Text: "מספר טלפון", Required: true, Type: InputText, MaxLength: 20, Priority: PriorityHigh},
			{ID: "A4", Text: "באיזו עיר ומדינה אתה נמצא?", Required: true, Type: InputText, MaxLength: 100, Priority: PriorityHigh},
			{ID: "A5", Text: "האם אתה כרגע מועסק?", Required: true, Type: InputText, MaxLength: 10, Priority: PriorityHigh},
			{ID: "A6", Text: "אם כן, איפה אתה עובד, וכמה אתה מרוויח חודשית (בקירוב)?", Type: InputTextarea, MaxLength: 200, Priority: PriorityMedium},
		},
	},
	{
		ID:            "B_commitment_resources",
		Letter:        "B",
		Title:         "מחויבות ומשאבים",
		Description:   "זמן, כסף ומשאבים שהמייסד יכול להשקיע",
		Weight:        15,
		EstimatedTime: 5,
		Questions: []Question{
			{ID: "B1", Text: "כמה שעות בשבוע אתה יכול להשקיע במיזם הזה באופן ריאלי?", Required: true, Type: InputText, MaxLength: 50, Priority: PriorityHigh},
			{ID: "B2", Text: "כמה הון אתה אישית מוכן ויכול להשקיע לפני הפנייה למשקיעים חיצוניים?", Required: true, Type: InputText, MaxLength: 100, Priority: PriorityHigh},
			{ID: "B3", Text: "מה מניע אותך אישית לפתור את הבעיה הזו?", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityHigh},
			{ID: "B4", Text: "האם חווית את הבעיה הזו בעצמך או ראית מישהו קרוב אליך חווה אותה?", Required: true, Type: InputText, MaxLength: 10, Priority: PriorityHigh},
			{ID: "B5", Text: "אם כן, תאר את הרגע הכי כואב או מתסכל הקשור לזה.", Type: InputTextarea, MaxLength: 500, Priority: PriorityMedium},
		},
	},
	{
		ID:            "C_problem_solution",
		Letter:        "C",
		Title:         "הבעיה והפתרון",
		Description:   "הגדרת הבעיה והפתרון המוצע",
		Weight:        20,
		EstimatedTime: 8,
		Questions: []Question{
			{ID: "C1", Text: "מה הבעיה שאתה פותר?", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityHigh},
			{ID: "C2", Text: "מי חווה את הבעיה הזו? תאר אותם בפירוט רב ככל האפשר.", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityHigh},
			{ID: "C3", Text: "באיזו תדירות ועוצמה הם נתקלים בה?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityHigh},
			{ID: "C4", Text: "מה הפתרון שלך (סיכום של 1-2 משפטים)?", Required: true, Type: InputTextarea, MaxLength: 200, Priority: PriorityHigh},
			{ID: "C5", Text: "איזה סוג של אנשים או ארגונים ישלמו על הפתרון הזה?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityHigh},
		},
	},
	{
		ID:            "D_user_validation",
		Letter:        "D",
		Title:         "ולידציה משתמשים",
		Description:   "מחקר וולידציה עם משתמשים פוטנציאליים",
		Weight:        20,
		EstimatedTime: 10,
		Questions: []Question{
			{ID: "D1", Text: "האם דיברת עם משתמשים אמיתיים או לקוחות פוטנציאליים על הבעיה הזו?", Required: true, Type: InputText, MaxLength: 10, Priority: PriorityHigh},
			{ID: "D2", Text: "אם כן, כמה שיחות ניהלת?", Type: InputText, MaxLength: 50, Priority: PriorityHigh},
			{ID: "D3", Text: "מה למדת מהשיחות האלה (ציטוטים ספציפיים, דפוסים, או הפתעות)?", Type: InputTextarea, MaxLength: 1000, Priority: PriorityHigh},
			{ID: "D4", Text: "האם מישהו מהשיחות עמד בסתירה להנחות שלך או גרם לך לשנות כיוון?", Type: InputTextarea, MaxLength: 500, Priority: PriorityMedium},
			{ID: "D5", Text: "האם ניסית לבצע מבחנים כלשהם (סקר, מודעה, אבטיפוס, דף נחיתה, MVP)?", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityHigh},
			{ID: "D6", Text: "מה היו התוצאות של המבחנים האלה?", Type: InputTextarea, MaxLength: 500, Priority: PriorityMedium},
			{ID: "D7", Text: "האם ניסית לבקש כסף? האם מישהו שילם או הראה כוונת קנייה רצינית?", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityHigh},
			{ID: "D8", Text: "האם אתה חושב שמשתמשים יתעצבנו אם הפתרון שלך יעלם מחר? למה?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityMedium},
		},
	},
	{
		ID:            "E_market_analysis",
		Letter:        "E",
		Title:         "ניתוח שוק",
		Description:   "הבנת השוק והתחרות",
		Weight:        15,
		EstimatedTime: 8,
		Questions: []Question{
			{ID: "E1", Text: "באיזו מדינה או אזור אתה מתכנן להשיק את המוצר ראשון?", Required: true, Type: InputText, MaxLength: 100, Priority: PriorityHigh},
			{ID: "E2", Text: "לאילו מדינות או שווקים אתה מתכנן להיכנס מאוחר יותר?", Type: InputTextarea, MaxLength: 200, Priority: PriorityMedium},
			{ID: "E3", Text: "מי 3 המתחרים הישירים העיקריים שלך?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityHigh},
			{ID: "E4", Text: "איך אנשים פותרים את הבעיה היום בלי הפתרון שלך?", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "E5", Text: "מה עושה את הפתרון שלך טוב יותר, מהיר יותר, או זול יותר?", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "E6", Text: "מה המודל העסקי המתוכנן שלך (איך אתה מרוויח כסף)?", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "E7", Text: "איזה מחיר תגבה ולמה?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityHigh},
			{ID: "E8", Text: "מה הTAM (שוק כולל) המוערך שלך?", Type: InputText, MaxLength: 200, Priority: PriorityMedium},
			{ID: "E9", Text: "מה הSAM (שוק נגיש) המוערך שלך?", Type: InputText, MaxLength: 200, Priority: PriorityMedium},
			{ID: "E10", Text: "מה הSOM (שוק בר השגה) המוערך שלך?", Type: InputText, MaxLength: 200, Priority: PriorityMedium},
			{ID: "E11", Text: "אילו מחסומים רגולטוריים או תאימות עשויים להשפיע על הכניסה לשוק שלך?", Type: InputTextarea, MaxLength: 400, Priority: PriorityLow},
		},
	},
	{
		ID:            "F_team_execution",
		Letter:        "F",
		Title:         "צוות וביצוע",
		Description:   "הצוות הנוכחי ויכולות הביצוע",
		Weight:        15,
		EstimatedTime: 8,
		Questions: []Question{
			{ID: "F1", Text: "האם יש לך כרגע צוות? אם כן, פרט את חברי הצוות.", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "F2", Text: "מהן הכישורים והתפקידים העיקריים שלהם?", Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "F3", Text: "האם עבדתם יחד בעבר? באיזה הקשר?", Type: InputTextarea, MaxLength: 300, Priority: PriorityMedium},
			{ID: "F4", Text: "אילו יכולות או כישורים חשובים חסרים בצוות הנוכחי שלכם?", Required: true, Type: InputTextarea, MaxLength: 300, Priority: PriorityHigh},
			{ID: "F5", Text: "מה הדבר הכי מרשים שהצוות שלכם עשה (בנה, פתר, או השיג)?", Type: InputTextarea, MaxLength: 400, Priority: PriorityMedium},
			{ID: "F6", Text: "כמה מהר אתה יכול לבנות MVP או להגיע ללקוח משלם ראשון?", Required: true, Type: InputText, MaxLength: 100, Priority: PriorityHigh},
			{ID: "F7", Text: "מהם 3 אבני הדרך הניתנות למדידה העיקריות שאתה מצפה להשיג ב-6 החודשים הקרובים?", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "F8", Text: "מה החזון לטווח הארוך למיזם הזה?", Required: true, Type: InputTextarea, MaxLength: 500, Priority: PriorityMedium},
			{ID: "F9", Text: "מה יגרום לך לזנוח את הפרויקט?", Type: InputTextarea, MaxLength: 300, Priority: PriorityLow},
			{ID: "F10", Text: "איך נראה הצלחה עבורך ב-12 החודשים הקרובים?", Required: true, Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
			{ID: "F11", Text: "מה הכי מפחיד אותך במיזם הזה?", Type: InputTextarea, MaxLength: 300, Priority: PriorityMedium},
		},
	},
	{
		ID:            "G_experience",
		Letter:        "G",
		Title:         "ניסיון קודם",
		Description:   "רקע יזמי והישגים קודמים",
		Weight:        10,
		EstimatedTime: 5,
		Questions: []Question{
			{ID: "G1", Text: "האם עבדת על רעיונות סטארטאפ אחרים בעבר? מה קרה?", Type: InputTextarea, MaxLength: 500, Priority: PriorityMedium},
			{ID: "G2", Text: "איזה כישור או ניסיון לא ברור מהעבר עושה אותך מתאים באופן יחיד לנצח בתחום הזה?", Type: InputTextarea, MaxLength: 400, Priority: PriorityHigh},
		},
	},
}

// CategoryWeights maps a category letter to its fixed maximum score.
// The weights sum to 100 across all seven categories.
var CategoryWeights = map[string]int{
	"A": 5,
	"B": 15,
	"C": 20,
	"D": 20,
	"E": 15,
	"F": 15,
	"G": 10,
}

var questionIndex = buildQuestionIndex()

func buildQuestionIndex() map[string]Question {
	idx := make(map[string]Question)
	for _, cat := range Catalog {
		for _, q := range cat.Questions {
			idx[q.ID] = q
		}
	}
	return idx
}

// QuestionByID looks up a question by its catalog id.
func QuestionByID(id string) (Question, bool) {
	q, ok := questionIndex[id]
	return q, ok
}

// CategoryByLetter returns the category whose letter code matches.
func CategoryByLetter(letter string) (Category, bool) {
	for _, cat := range Catalog {
		if cat.Letter == letter {
			return cat, true
		}
	}
	return Category{}, false
}

// CategoryLetterOf returns the category letter of a question id.
func CategoryLetterOf(questionID string) string {
	if questionID == "" {
		return ""
	}
	return questionID[:1]
}

// MaxScore sums the fixed weights of exactly the categories represented
// in the selection, independent of how many questions were selected in
// each. Selecting only C and D questions yields 40, not 100.
func MaxScore(selectedQuestions []string) int {
	seen := make(map[string]bool)
	total := 0
	for _, id := range selectedQuestions {
		letter := CategoryLetterOf(id)
		if letter == "" || seen[letter] {
			continue
		}
		seen[letter] = true
		total += CategoryWeights[letter]
	}
	return total
}

// SelectedByCategory groups selected question ids under their category
// letter, preserving selection order within each category.
func SelectedByCategory(selectedQuestions []string) map[string][]string {
	out := make(map[string][]string)
	for _, id := range selectedQuestions {
		letter := CategoryLetterOf(id)
		if letter == "" {
			continue
		}
		out[letter] = append(out[letter], id)
	}
	return out
}
