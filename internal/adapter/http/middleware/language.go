package middleware

import (
	"cmms/pkg/translator"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const langKey = "lang"

var supportedLanguages = []string{translator.LanguagePl, translator.LanguageEn}

var languageMatcher = language.NewMatcher([]language.Tag{language.Polish, language.English})

// LanguageMiddleware is a Gin middleware that picks the response language from the Accept-Language header.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langKey, resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func resolveLanguage(header string) string {
	if header == "" {
		return translator.DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.DefaultLanguage
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return translator.DefaultLanguage
	}
	return supportedLanguages[index]
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.DefaultLanguage
}
