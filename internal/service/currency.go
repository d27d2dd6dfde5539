package service

import (
	"regexp"
	"strconv"
	"strings"
)

// currencyRate pairs a currency symbol with its USD conversion rate.
type currencyRate struct {
	symbol string
	rate   float64
}

// Fixed average rates for the 2018-2019 catalog window. This is an
// ordered table: when a string carries more than one symbol, the first
// entry found here wins, regardless of position in the text.
var exchangeRates = []currencyRate{
	{"$", 1.0},
	{"€", 1.12},
	{"£", 1.28},
}

var nonAmountChars = regexp.MustCompile(`[^\d.,]`)

// ParseAmount extracts a monetary value from free text and converts it
// to whole USD. Commas are treated purely as thousands separators.
// Returns nil for empty input or anything that does not parse; it never
// fails loudly, a bad amount just degrades the field.
//
//	ParseAmount("$10,000,000") == 10000000
//	ParseAmount("€8,000,000")  == 8960000
//	ParseAmount("£5,000,000")  == 6400000
func ParseAmount(text string) *int64 {
	if text == "" {
		return nil
	}

	rate := 1.0
	for _, c := range exchangeRates {
		if strings.Contains(text, c.symbol) {
			rate = c.rate
			break
		}
	}

	cleaned := nonAmountChars.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	usd := int64(value * rate)
	return &usd
}
