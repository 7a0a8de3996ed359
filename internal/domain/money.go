package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyExponents lists the ISO 4217 currencies whose minor unit is not
// two digits. Everything else uses the default exponent of 2.
var currencyExponents = map[string]int32{
	"BIF": 0, "CLP": 0, "DJF": 0, "GNF": 0, "ISK": 0, "JPY": 0,
	"KMF": 0, "KRW": 0, "PYG": 0, "RWF": 0, "UGX": 0, "UYI": 0,
	"VND": 0, "VUV": 0, "XAF": 0, "XOF": 0, "XPF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

func exponent(currency string) int32 {
	if exp, ok := currencyExponents[strings.ToUpper(currency)]; ok {
		return exp
	}
	return 2
}

// ToMinorUnits converts a major-unit amount to the gateway's integer minor
// units, truncating any sub-minor precision.
func ToMinorUnits(currency string, amount decimal.Decimal) int64 {
	return amount.Shift(exponent(currency)).IntPart()
}

// FromMinorUnits converts gateway minor units back to a major-unit amount.
func FromMinorUnits(currency string, minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-exponent(currency))
}
