// Package analysis implements the dual-engine feasibility analysis:
// prompt construction, heuristic scoring, orchestration across AI
// engines and the HTTP surface for running and fetching analyses.
package analysis

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"feasibility-backend/internal/questionnaire"
)

// Answer depth labels derived from answer length.
const (
	depthEmpty    = "ריקה"
	depthShort    = "קצרה"
	depthMedium   = "בינונית"
	depthDetailed = "מפורטת"
)

func answerDepth(answer string) string {
	switch n := utf8.RuneCountInString(answer); {
	case n >= 200:
		return depthDetailed
	case n >= 50:
		return depthMedium
	case n >= 1:
		return depthShort
	default:
		return depthEmpty
	}
}

func priorityMarker(p questionnaire.Priority) string {
	switch p {
	case questionnaire.PriorityHigh:
		return "⭐ עדיפות גבוהה"
	case questionnaire.PriorityMedium:
		return "🔸 עדיפות בינונית"
	default:
		return "🔹 עדיפות נמוכה"
	}
}

// BuildPrompt constructs the category-weighted analysis prompt for the
// selected questions and returns it together with the maximum
// attainable score for this selection. It performs no I/O; an empty
// selection yields a degenerate prompt the caller should have rejected.
func BuildPrompt(selectedQuestions []string, answers map[string]string, businessName string) (string, int) {
	maxScore := questionnaire.MaxScore(selectedQuestions)
	byCategory := questionnaire.SelectedByCategory(selectedQuestions)

	letters := make([]string, 0, len(byCategory))
	for letter := range byCategory {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	var categorized strings.Builder
	var categoryCounts strings.Builder
	var categoryWeightsText strings.Builder
	var summaryScores strings.Builder

	for _, letter := range letters {
		cat, ok := questionnaire.CategoryByLetter(letter)
		if !ok {
			continue
		}
		ids := byCategory[letter]

		fmt.Fprintf(&categoryCounts, "- %s: %d שאלות\n", cat.Title, len(ids))
		fmt.Fprintf(&categoryWeightsText, "- %s: עד %d נקודות\n", cat.Title, cat.Weight)
		fmt.Fprintf(&summaryScores, "- %s: ___/%d\n", cat.Title, cat.Weight)

		fmt.Fprintf(&categorized, "\n### %s (ציון מקסימלי: %d)\n", cat.Title, cat.Weight)
		for _, id := range ids {
			q, ok := questionnaire.QuestionByID(id)
			if !ok {
				continue
			}
			answer := answers[id]
			fmt.Fprintf(&categorized, "\n**שאלה %s: %s**\n%s\nתשובה: %s\nאיכות תשובה: %s\n",
				id, q.Text, priorityMarker(q.Priority), answer, answerDepth(answer))
		}
		fmt.Fprintf(&categorized, `
**הנחיות ניקוד לקטגוריה זו:**
- תן ציון מ-0 עד %d נקודות
- התבסס על איכות התשובות, מלאותן ורלוונטיותן
- שאלות בעדיפות גבוהה ⭐ משפיעות יותר על הציון
- תשובות ריקות או קצרות מדי (פחות מ-20 תווים) = 0 נקודות לשאלה זו
- תשובות איכותיות ומפורטות = חלק גבוה יותר מהציון הקטגוריאלי
`, cat.Weight)
	}

	prompt := fmt.Sprintf(`אתה מומחה בניתוח היתכנות עסקית המבצע ניתוח מקצועי לפי מתודולוגיית Methodian Feasibility.

## פרטי המיזם:
**עסק:** %s
**סך שאלות שנענו:** %d מתוך %d אפשריות
**התפלגות לפי קטגוריות:**
%s
## מערכת הניקוד המדויקת:
**ציון מקסימלי אפשרי:** %d נקודות (בהתבסס על הקטגוריות שנבחרו)
**חלוקת משקלים:**
%s
## תשובות לפי קטגוריות:
%s
## הוראות לניתוח מדויק:

### 1. תקציר מנהלים (200 מילים)
- הערכה כללית של הפוטנציאל
- **ציון סופי מדויק: ___/%d נקודות**
- 3 המלצות עיקריות מבוססות התשובות

### 2. ניתוח מפורט לפי קטגוריות:

עבור כל קטגוריה שנענתה, כתב:

#### [שם הקטגוריה] (ציון: ___/[מקסימום])
- **ציון שנתן:** ___ נקודות מתוך [מקסימום]
- **נימוק מפורט לציון:** הסבר מדוע נתן ציון זה בהתבסס על איכות התשובות
- **נקודות חוזק:** מה עובד טוב בתשובות
- **נקודות לשיפור:** מה חסר או יכול להיות טוב יותר
- **השפעה על ההערכה הכללית:** איך הקטגוריה הזו משפיעה על כדאיות המיזם

### 3. חישוב הציון הסופי:
**חובה לכלול:**
`+"```"+`
סיכום ציונים:
%s
ציון סופי: ___/%d נקודות
`+"```"+`

### 4. ניתוח SWOT מבוסס התשובות
- **חוזקות (5 נקודות):** מבוסס על מה שעולה מהתשובות
- **חולשות (5 נקודות):** מבוסס על חסרים או חולשות בתשובות
- **הזדמנויות (5 נקודות):** מבוסס על הפוטנציאל שמתגלה מהתשובות
- **איומים (5 נקודות):** מבוסס על סיכונים שניתן לזהות מהתשובות

### 5. המלצות אסטרטגיות מבוססות נתונים
- **צעדים מיידיים (30-60 יום):** בהתבסס על הדברים שחסרים או זקוקים לשיפור
- **יעדים לטווח בינוני (3-6 חודשים):** בהתבסס על הפוטנציאל שמתגלה
- **אסטרטגיה ארוכת טווח:** בהתבסס על החזון שמופיע בתשובות

### 6. סיכום והמלצת השקעה
- **המלצה ברורה:** מומלץ/מותנה/לא מומלץ
- **נימוק מבוסס הציון:** הסבר איך הציון ___/%d מוביל להמלצה
- **תנאים להצלחה:** מבוסס על הנתונים שהתקבלו

## כללי ניקוד מחייבים:
1. **התבסס אך ורק על התשובות שנמסרו** - אל תמציא מידע
2. **תשובות ריקות או קצרות מ-20 תווים = 0 נקודות לשאלה זו**
3. **תשובות איכותיות ומפורטות = ציון גבוה יותר**
4. **שאלות עדיפות גבוהה ⭐ משפיעות יותר על הציון הקטגוריאלי**
5. **הציון הסופי חייב להיות מתמטי:** סכום כל הציונים הקטגוריאליים
6. **אל תשתמש בכוכביות (*) - רק תגי <strong> להדגשה**
7. **אם חסר מידע בתחום - ציין זאת במפורש ואל תנחש**

**זכור:** כל ציון חייב להיות מוצדק במפורש ומבוסס על איכות התוכן שסופק בפועל.`,
		businessName,
		len(selectedQuestions), questionnaire.TotalQuestions,
		categoryCounts.String(),
		maxScore,
		categoryWeightsText.String(),
		categorized.String(),
		maxScore,
		summaryScores.String(),
		maxScore,
		maxScore,
	)

	return prompt, maxScore
}

// BuildLegacyPrompt constructs the quick-analysis prompt for the
// three-field legacy form. Legacy analyses always score out of 105.
func BuildLegacyPrompt(businessName, problem, solution, targetMarket string) string {
	return fmt.Sprintf(`אתה מומחה בניתוח היתכנות עסקית המבצע ניתוח מקצועי לפי מתודולוגיית Methodian Feasibility.

## פרטי המיזם (ניתוח מהיר):
**עסק:** %s
**הבעיה:** %s
**הפתרון:** %s
**קהל היעד:** %s

## מערכת הניקוד לניתוח מהיר:
**ציון מקסימלי אפשרי:** 105 נקודות
**חלוקת משקלים:**
- בהירות הבעיה והפתרון: עד 40 נקודות
- הבנת קהל היעד: עד 25 נקודות
- יתרון תחרותי משוער: עד 20 נקודות
- כדאיות עסקית כללית: עד 20 נקודות

## הוראות לניתוח מדויק:

### 1. תקציר מנהלים (200 מילים)
- הערכה כללית של הפוטנציאל
- **ציון סופי מדויק: ___/105 נקודות**
- 3 המלצות עיקריות

### 2. ניתוח מפורט:

#### בהירות הבעיה והפתרון (ציון: ___/40)
- ניתוח הבעיה המתוארת
- הערכת הפתרון המוצע
- בהירות והיגיון הקשר בין הבעיה לפתרון

#### הבנת קהל היעד (ציון: ___/25)
- רמת הבנה של קהל היעד
- ספציפיות התיאור
- פוטנציאל השוק

#### יתרון תחרותי משוער (ציון: ___/20)
- ייחודיות הפתרון
- יתרונות פוטנציאליים על פתרונות קיימים

#### כדאיות עסקית כללית (ציון: ___/20)
- פוטנציאל הכנסות
- מורכבות הביצוע
- כדאיות ההשקעה

### 3. חישוב הציון הסופי:
`+"```"+`
סיכום ציונים:
- בהירות הבעיה והפתרון: ___/40
- הבנת קהל היעד: ___/25
- יתרון תחרותי משוער: ___/20
- כדאיות עסקית כללית: ___/20

ציון סופי: ___/105 נקודות
`+"```"+`

### 4. המלצות אסטרטגיות
- **צעדים מיידיים (30-60 יום):** מה לעשות קודם
- **יעדים לטווח בינוני (3-6 חודשים):** הכיוונים הבאים
- **אסטרטגיה ארוכת טווח:** חזון ויעדים

### 5. סיכום והמלצה
- **המלצה ברורה:** מומלץ/מותנה/לא מומלץ
- **נימוק מבוסס הציון:** הסבר איך הציון ___/105 מוביל להמלצה
- **תנאים להצלחה:** מה נדרש כדי להצליח

## כללי ניקוד מחייבים:
1. **הציון חייב להיות מתמטי:** סכום כל הציונים החלקיים
2. **התבסס על איכות המידע שסופק בלבד**
3. **אל תשתמש בכוכביות (*) - רק תגי <strong> להדגשה**
4. **ציונים נמוכים לתיאורים כלליים, ציונים גבוהים לתיאורים ספציפיים**
5. **הציון הסופי חייב להופיע בפורמט: "ציון סופי: X/105"**

**זכור:** כל ציון חייב להיות מוצדק ומבוסס על איכות התוכן שסופק.`,
		businessName, problem, solution, targetMarket)
}
