package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/fintrack_app/internal/apperrors"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ParseDate parses an optional YYYY-MM-DD string, returning fallback when raw is empty.
func ParseDate(raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s', expected YYYY-MM-DD", apperrors.ErrValidation, raw)
	}
	return t, nil
}
