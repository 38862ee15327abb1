package orchestrator

import (
	"strings"

	"github.com/storefront-ai/assistant-service/internal/pkg/textutil"
	"github.com/storefront-ai/assistant-service/internal/services/answers"
)

// ResolveLanguage picks the reply language: a supported requested value,
// else Arabic when the message is in Arabic script, else English.
func ResolveLanguage(requested, message string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case answers.LangArabic:
		return answers.LangArabic
	case answers.LangEnglish:
		return answers.LangEnglish
	}
	if textutil.HasArabic(message) {
		return answers.LangArabic
	}
	return answers.LangEnglish
}
