package accounting

import "github.com/florianilch/merge-accounting/codec"

// CurrencyEnum is an ISO 4217 currency code. Only commonly used codes are
// listed; others still round-trip unchanged.
type CurrencyEnum string

const (
	CurrencyEnumUSD CurrencyEnum = "USD"
	CurrencyEnumEUR CurrencyEnum = "EUR"
	CurrencyEnumGBP CurrencyEnum = "GBP"
	CurrencyEnumCAD CurrencyEnum = "CAD"
	CurrencyEnumAUD CurrencyEnum = "AUD"
	CurrencyEnumNZD CurrencyEnum = "NZD"
	CurrencyEnumJPY CurrencyEnum = "JPY"
	CurrencyEnumCNY CurrencyEnum = "CNY"
	CurrencyEnumHKD CurrencyEnum = "HKD"
	CurrencyEnumSGD CurrencyEnum = "SGD"
	CurrencyEnumINR CurrencyEnum = "INR"
	CurrencyEnumCHF CurrencyEnum = "CHF"
	CurrencyEnumSEK CurrencyEnum = "SEK"
	CurrencyEnumNOK CurrencyEnum = "NOK"
	CurrencyEnumDKK CurrencyEnum = "DKK"
	CurrencyEnumPLN CurrencyEnum = "PLN"
	CurrencyEnumMXN CurrencyEnum = "MXN"
	CurrencyEnumBRL CurrencyEnum = "BRL"
	CurrencyEnumZAR CurrencyEnum = "ZAR"
	CurrencyEnumILS CurrencyEnum = "ILS"
	CurrencyEnumAED CurrencyEnum = "AED"
	CurrencyEnumKRW CurrencyEnum = "KRW"
)

var currencies = codec.NewEnumSet(
	CurrencyEnumUSD,
	CurrencyEnumEUR,
	CurrencyEnumGBP,
	CurrencyEnumCAD,
	CurrencyEnumAUD,
	CurrencyEnumNZD,
	CurrencyEnumJPY,
	CurrencyEnumCNY,
	CurrencyEnumHKD,
	CurrencyEnumSGD,
	CurrencyEnumINR,
	CurrencyEnumCHF,
	CurrencyEnumSEK,
	CurrencyEnumNOK,
	CurrencyEnumDKK,
	CurrencyEnumPLN,
	CurrencyEnumMXN,
	CurrencyEnumBRL,
	CurrencyEnumZAR,
	CurrencyEnumILS,
	CurrencyEnumAED,
	CurrencyEnumKRW,
)

func (e CurrencyEnum) IsKnown() bool   { return currencies.Contains(e) }
func (e CurrencyEnum) Known() []string { return currencies.Strings() }
