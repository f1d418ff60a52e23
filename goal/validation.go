package goal

import "fmt"

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidateGoal checks if a goal struct is valid.
func ValidateGoal(g *Goal) error {
	if err := ValidateTitle(g.Title); err != nil {
		return err
	}
	if !g.Intensity.IsValid() {
		return formatInvalidIntensityError(g.Intensity)
	}
	if !g.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, g.Status)
	}
	if !g.BossType.IsValid() {
		return fmt.Errorf("invalid boss personality %q", g.BossType)
	}
	if g.StartDate.IsZero() || g.EndDate.IsZero() {
		return ErrMissingDates
	}
	if g.EndDate.Before(g.StartDate) {
		return fmt.Errorf("%w: %s before %s", ErrInvalidDateRange, g.EndDate.Format(DateFormat), g.StartDate.Format(DateFormat))
	}
	return nil
}
