package utils

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

func ReplaceQueryParams(namedQuery string, params map[string]interface{}) (string, []interface{}) {
	var (
		i    int = 1
		args []interface{}
	)

	for k, v := range params {
		if k != "" {
			namedQuery = strings.ReplaceAll(namedQuery, ":"+k, "$"+strconv.Itoa(i))

			args = append(args, v)
			i++
		}
	}

	return namedQuery, args
}

func FCurrency(n float64) string {
	if n == 0 {
		return ""
	}

	rounded := math.Round(n*100) / 100
	formatted := humanize.CommafWithDigits(rounded, 2)

	if !strings.Contains(formatted, ".") {
		formatted += " "
	}

	return formatted
}

func StrEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RemoveSpecialChars2 collapses whitespace runs so multi-line SQL logs fit
// on one line.
func RemoveSpecialChars2(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func Marshal(value interface{}) []byte {
	b, _ := json.Marshal(value)
	return b
}

func Unmarshal(data []byte, value interface{}) error {
	return json.Unmarshal(data, value)
}
