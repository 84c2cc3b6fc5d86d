// internal/app/relay/extract.go
package relay

import (
	"regexp"
	"strconv"
	"strings"
)

// percentRe matches a numeric token followed by optional ASCII or ideographic
// (U+3000) spaces and a half- or full-width percent sign. The token keeps any
// sign and decimal part so that ExtractPercent can reject them as a whole.
var percentRe = regexp.MustCompile(`(?:^|[^0-9.+\-])([+\-]?[0-9][0-9.]*)[\s\x{3000}]*[%％]`)

// ExtractPercent returns the first percentage in text if it is a whole
// number of at most three ASCII digits in 0..100. Only the first match is
// considered: a signed, fractional or out-of-range first match yields false
// even if a later one would be valid.
func ExtractPercent(text string) (int, bool) {
	m := percentRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	tok := m[1]
	if len(tok) > 3 || strings.ContainsAny(tok, "+-.") {
		return 0, false
	}
	v, err := strconv.Atoi(tok)
	if err != nil || v < 0 || v > 100 {
		return 0, false
	}
	return v, true
}
