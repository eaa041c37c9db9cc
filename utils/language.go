// File: utils/language.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const LanguagePrefix = "guestLang:"

// DefaultLanguage is used whenever no valid preference is stored.
const DefaultLanguage = "ja"

const languageTTL = 30 * 24 * time.Hour

// SupportedLanguages is the fixed display language enumeration.
var SupportedLanguages = map[string]bool{
	"ja": true,
	"en": true,
	"zh": true,
	"ko": true,
	"th": true,
}

// SaveLanguage stores the display language preference for a guest session.
func SaveLanguage(client *redis.Client, sessionID, lang string) error {
	if !SupportedLanguages[lang] {
		return fmt.Errorf("unsupported language code: %q", lang)
	}
	ctx := context.Background()
	if err := client.Set(ctx, LanguagePrefix+sessionID, lang, languageTTL).Err(); err != nil {
		return fmt.Errorf("failed to save language preference: %w", err)
	}
	return nil
}

// GetLanguage returns the stored preference, falling back to the default
// when the record is missing, malformed, or storage is unreachable.
func GetLanguage(client *redis.Client, sessionID string) string {
	ctx := context.Background()
	lang, err := client.Get(ctx, LanguagePrefix+sessionID).Result()
	if err != nil || !SupportedLanguages[lang] {
		return DefaultLanguage
	}
	return lang
}
