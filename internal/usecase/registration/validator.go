package registration

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	appErrors "github.com/Augusto140/Englife-server/pkg/errors"
)

func invalidField(field string, cause error) error {
	return appErrors.Validation(fmt.Sprintf("Campos inválidos: %s inválido", field), cause)
}

func parseID(field, raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, invalidField(field, appErrors.ErrInvalidNumber)
	}
	return uint(id), nil
}

func parseOptionalInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, invalidField(field, appErrors.ErrInvalidNumber)
	}
	return &v, nil
}

// parseDecimal accepts both "12.5" and "12,5".
func parseDecimal(field, raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, invalidField(field, appErrors.ErrInvalidNumber)
	}
	return v, nil
}

func parseOptionalDecimal(field, raw string) (*float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := parseDecimal(field, raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseTimeOfDay reads HH:MM or HH:MM:SS as an offset from midnight.
func ParseTimeOfDay(field, raw string) (*time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	layout := "15:04"
	if strings.Count(raw, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, raw)
	if err != nil {
		return nil, invalidField(field, appErrors.ErrInvalidTime)
	}

	d := time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second
	return &d, nil
}

// FormatTimeOfDay renders an offset from midnight as HH:MM, or "" for nil.
func FormatTimeOfDay(d *time.Duration) string {
	if d == nil {
		return ""
	}
	total := int(d.Minutes())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
