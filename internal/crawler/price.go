package crawler

import (
	"regexp"
	"strconv"
	"strings"

	apperrors "sjsage522/pricecompare/pkg/errors"
)

// amountPattern matches the first amount in a price label, thousands separators included
var amountPattern = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// ParsePrice normalizes a price label such as "₹79,999" or "Rs. 1,299.00"
// into a number. Currency glyphs, labels and separators are ignored.
func ParsePrice(text string) (float64, error) {
	match := amountPattern.FindString(text)
	if match == "" {
		return 0, apperrors.NewPrice(text)
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", ""), 64)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrorTypePrice, "", "parse amount "+match, err)
	}
	return value, nil
}

// priceFromText converts a label to a Price, unknown when it holds no amount
func priceFromText(text string) Price {
	if strings.TrimSpace(text) == "" {
		return UnknownPrice
	}
	value, err := ParsePrice(text)
	if err != nil {
		return UnknownPrice
	}
	return KnownPrice(value)
}
