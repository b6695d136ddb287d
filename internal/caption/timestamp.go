package caption

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

var ErrBadTimestamp = errors.New("malformed timestamp")

var (
	anyTimestamp = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})[.,](\d{3})$`)
	vttTimestamp = regexp.MustCompile(`^(\d{2,}):(\d{2}):(\d{2})\.(\d{3})$`)
)

// SRTTimestamp formats seconds as "HH:MM:SS,mmm".
func SRTTimestamp(sec float64) string {
	return timestamp(sec, ',')
}

// VTTTimestamp formats seconds as "HH:MM:SS.mmm".
func VTTTimestamp(sec float64) string {
	return timestamp(sec, '.')
}

// Milliseconds are rounded down, the tiny offset keeps values like 1.001
// (stored as 1.00099999...) from losing a millisecond.
func timestamp(sec float64, sep byte) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}

	total := int64(math.Floor(sec*1000 + 1e-6))
	ms := total % 1000
	whole := total / 1000
	h := whole / 3600
	m := (whole % 3600) / 60
	s := whole % 60

	return fmt.Sprintf("%02d:%02d:%02d%c%03d", h, m, s, sep, ms)
}

// ParseVTTTimestamp is the inverse of VTTTimestamp.
func ParseVTTTimestamp(value string) (float64, error) {
	return parseTimestamp(vttTimestamp, value)
}

// ParseTimestamp accepts both the SRT and the VTT form.
func ParseTimestamp(value string) (float64, error) {
	return parseTimestamp(anyTimestamp, value)
}

func parseTimestamp(re *regexp.Regexp, value string) (float64, error) {
	m := re.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", value, ErrBadTimestamp)
	}

	var parts [4]int
	for i := range parts {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return 0, fmt.Errorf("%q: %w", value, ErrBadTimestamp)
		}
		parts[i] = n
	}

	if parts[1] > 59 || parts[2] > 59 {
		return 0, fmt.Errorf("%q out of range: %w", value, ErrBadTimestamp)
	}

	return float64(parts[0]*3600+parts[1]*60+parts[2]) + float64(parts[3])/1000, nil
}
