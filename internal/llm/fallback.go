package llm

import "fmt"

// displayName maps engine keys to the product names shown to users.
func displayName(engine string) string {
	switch engine {
	case EngineChatGPT:
		return "ChatGPT"
	case EngineGemini:
		return "Gemini Pro"
	case EnginePerplexity:
		return "Perplexity"
	default:
		return engine
	}
}

// otherEngineNote names the engine whose output remains usable when the
// given engine degrades.
func otherEngineNote(engine string) string {
	switch engine {
	case EngineGemini:
		return "הניתוח נוצר באמצעות ChatGPT בלבד."
	case EngineChatGPT:
		return "הניתוח נוצר באמצעות Gemini Pro בלבד."
	default:
		return ""
	}
}

// FallbackMessage converts a classified terminal failure into the canned
// Hebrew message persisted and displayed in place of analysis text.
func FallbackMessage(engine string, kind Kind, err error) string {
	name := displayName(engine)
	other := otherEngineNote(engine)

	switch kind {
	case KindTimeout:
		return fmt.Sprintf(`ניתוח %s הופסק בגלל timeout

הניתוח לקח זמן רב מדי

אנא נסה שוב עם פחות שאלות או עם מנוע יחיד.`, name)
	case KindRateLimit, KindOverloaded:
		return fmt.Sprintf(`ניתוח %s זמנית לא זמין

מערכת %s עמוסה כרגע

%s
תוכל לנסות שוב מאוחר יותר לקבלת ניתוח משולב.`, name, name, other)
	case KindQuota:
		return fmt.Sprintf(`מיצוי מכסת %s

מכסת השימוש ב-%s מוצתה

%s
המכסה תתחדש בהתאם לתוכנית שלך.`, name, name, other)
	case KindSafety:
		return fmt.Sprintf(`ניתוח %s נחסם

התוכן נחסם על ידי מסנני הבטיחות של %s

זה יכול לקרות עם תוכן עסקי מסוים. %s`, name, name, other)
	case KindAPIKey:
		return fmt.Sprintf(`בעיית API Key של %s

API Key לא תקין או חסר

%s
אנא בדוק את הגדרות ה-API Key.`, name, other)
	default:
		detail := "שגיאה לא ידועה"
		if err != nil {
			detail = err.Error()
		}
		return fmt.Sprintf(`שגיאה בניתוח %s

לא הצלחנו להתחבר לשירות %s

שגיאה: %s`, name, name, detail)
	}
}
