package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/kamal845/task-management/pkg/translator"
)

const langCtxKey = "lang"

// LanguageMiddleware stores the requested language for error translation.
// The raw Accept-Language value is used directly, falling back to English.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.GetHeader("Accept-Language")
		if lang == "" {
			lang = translator.LanguageEn
		}
		c.Set(langCtxKey, lang)
		c.Next()
	}
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langCtxKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
