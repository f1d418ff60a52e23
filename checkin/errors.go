package checkin

import (
	"errors"
	"fmt"

	"github.com/bossyapp/bossy/internal/validation"
)

// ErrInvalidStatus is returned when an unknown check-in status is provided.
var ErrInvalidStatus = errors.New("invalid check-in status")

func formatInvalidStatusError(status Status) error {
	return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidStatus, status, validation.FormatValidValues(ValidStatuses()))
}
