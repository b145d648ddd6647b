// internal/price/parse.go
package price

import (
	"regexp"
	"strconv"
	"strings"
)

var numberRun = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// Parse extracts the first numeric run from a loosely formatted price string
// ("€ 12,34", "12,34 €", "1.299") and returns it as a float. A comma decimal
// separator is normalized to a period. The second return is false when the
// input holds no digits or the run does not parse; parsing never fails
// outward, it degrades to "unknown price".
func Parse(s string) (float64, bool) {
	run := numberRun.FindString(s)
	if run == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(run, ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
