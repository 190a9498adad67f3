package assistant

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmount parses a Spanish-style dictated amount. Users mix thousand
// separators freely, so all of "25.000", "25,000" and "25000" mean twenty
// five thousand, while "0,10" and "3.14" are decimals. A trailing "%" marks
// a percentage; the numeric part is returned as written (7% -> 7).
func ParseAmount(raw string) (value float64, isPercent bool, err error) {
	s := strings.TrimSpace(raw)
	if strings.HasSuffix(s, "%") {
		isPercent = true
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}
	if s == "" {
		return 0, false, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "−") {
		neg = true
		s = strings.TrimPrefix(strings.TrimPrefix(s, "-"), "−")
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots > 0 && commas > 0:
		// The rightmost separator is the decimal one.
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case dots > 1:
		s = strings.ReplaceAll(s, ".", "")
	case commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots == 1:
		if isThousandGroup(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
	case commas == 1:
		if isThousandGroup(s, ",") {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.ReplaceAll(s, ",", ".")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, fmt.Errorf("cannot parse amount %q: %w", raw, err)
	}
	if neg {
		v = -v
	}
	return v, isPercent, nil
}

// isThousandGroup reports whether a single separator splits the string into
// a 1-3 digit head and an exactly-3-digit tail, e.g. "25.000".
func isThousandGroup(s, sep string) bool {
	parts := strings.SplitN(s, sep, 2)
	head, tail := parts[0], parts[1]
	if len(head) < 1 || len(head) > 3 || len(tail) != 3 {
		return false
	}
	for _, r := range head + tail {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
