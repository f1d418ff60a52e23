package boss

import (
	"errors"
	"fmt"

	"github.com/bossyapp/bossy/internal/validation"
)

var (
	// ErrInvalidPersonality is returned when an unknown personality is provided.
	ErrInvalidPersonality = errors.New("invalid boss personality")

	// ErrInvalidLocale is returned when an unsupported locale is provided.
	ErrInvalidLocale = errors.New("invalid locale")

	// ErrInvalidOutcome is returned when an unknown check-in outcome is provided.
	ErrInvalidOutcome = errors.New("invalid check-in outcome")
)

func formatInvalidPersonalityError(personality Personality) error {
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidPersonality, personality, validation.FormatValidValues(ValidPersonalities()))
}

func formatInvalidLocaleError(locale Locale) error {
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidLocale, locale, validation.FormatValidValues(ValidLocales()))
}
