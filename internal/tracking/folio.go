package tracking

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Numeric folio spellings: decimal with optional exponent, a signed
// Infinity, or an unsigned hex, octal or binary integer literal. Anything
// else (underscores, "inf", signed radix literals) is not a number.
var (
	decimalFolio  = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	infinityFolio = regexp.MustCompile(`^[+-]?Infinity$`)
	radixFolio    = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

// ParseFolio validates raw user input. Numeric values that are not exact
// integers cannot match a record and report ErrFolioNotFound.
func ParseFolio(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmptyFolio
	}

	f, ok := folioNumber(s)
	if !ok {
		return 0, ErrFolioNotNumeric
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, ErrFolioNotFound
	}
	return int64(f), nil
}

func folioNumber(s string) (float64, bool) {
	switch {
	case decimalFolio.MatchString(s):
		// The syntax is already valid; out of range values come back as
		// ±Inf or zero, which is what they read as.
		f, _ := strconv.ParseFloat(s, 64)
		return f, true
	case infinityFolio.MatchString(s):
		if s[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	case radixFolio.MatchString(s):
		base := 16
		switch s[1] {
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		n, err := strconv.ParseUint(s[2:], base, 64)
		if err != nil {
			return math.Inf(1), true
		}
		return float64(n), true
	}
	return 0, false
}
