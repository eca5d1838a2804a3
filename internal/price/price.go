// Package price converts localized price strings into decimal amounts. It
// knows nothing about currency symbols beyond discarding them; the cleaning
// rules are pure locale-format-aware numeric parsing.
package price

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrParse = errors.New("unparseable amount")

// Locale carries the number-format conventions of one market plus the
// minor-unit factor used when prices are rendered in bani/cents.
type Locale struct {
	DecimalSep         rune
	ThousandsSep       rune
	CurrencyWord       string
	MinorUnitsPerMajor int
}

// RON is the Romanian convention: "1.234,56 lei".
var RON = Locale{
	DecimalSep:         ',',
	ThousandsSep:       '.',
	CurrencyWord:       "Lei",
	MinorUnitsPerMajor: 100,
}

// ParseAmount strips everything except digits and separators, drops the
// thousands separators, canonicalizes the decimal separator and parses the
// remainder. A string with nothing numeric left after cleaning fails with
// ErrParse.
func (l Locale) ParseAmount(text string) (float64, error) {
	var cleaned strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' || r == l.DecimalSep || r == l.ThousandsSep {
			cleaned.WriteRune(r)
		}
	}

	s := cleaned.String()
	s = strings.ReplaceAll(s, string(l.ThousandsSep), "")
	s = strings.Replace(s, string(l.DecimalSep), ".", 1)

	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrParse, text)
	}

	return amount, nil
}

// FromMinorUnits converts an amount rendered in the smallest currency
// subdivision (bani) to major units.
func (l Locale) FromMinorUnits(n int) float64 {
	return float64(n) / float64(l.MinorUnitsPerMajor)
}
