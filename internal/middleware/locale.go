package middleware

import (
	"context"

	common_models "patient-reports/internal/common/models"
	"patient-reports/pkg/reportviz"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"
)

// LocaleMiddleware resolves the locale reports are rendered in, from the
// X-Report-Locale header or else Accept-Language, and adds it to the user context.
// The value is always one of reportviz.SupportedLocales. Requests naming no
// parseable locale keep the configured default.
func LocaleMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if locale := requestLocale(c); locale != "" {
			ctx := context.WithValue(c.UserContext(), common_models.LocaleKey, locale)
			c.SetUserContext(ctx)
		}
		return c.Next()
	}
}

func requestLocale(c *fiber.Ctx) string {
	if explicit := c.Get("X-Report-Locale"); explicit != "" {
		if _, err := language.Parse(explicit); err == nil {
			return reportviz.MatchLocale(explicit)
		}
	}
	if header := c.Get(fiber.HeaderAcceptLanguage); header != "" {
		tags, _, err := language.ParseAcceptLanguage(header)
		if err == nil && len(tags) > 0 {
			return reportviz.MatchLocale(header)
		}
	}
	return ""
}
