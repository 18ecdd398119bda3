package accounting

import "github.com/florianilch/merge-accounting/codec"

// CountryEnum is an ISO 3166-1 alpha-2 country code.
type CountryEnum string

const (
	CountryEnumUS CountryEnum = "US"
	CountryEnumCA CountryEnum = "CA"
	CountryEnumMX CountryEnum = "MX"
	CountryEnumBR CountryEnum = "BR"
	CountryEnumGB CountryEnum = "GB"
	CountryEnumIE CountryEnum = "IE"
	CountryEnumDE CountryEnum = "DE"
	CountryEnumFR CountryEnum = "FR"
	CountryEnumES CountryEnum = "ES"
	CountryEnumIT CountryEnum = "IT"
	CountryEnumNL CountryEnum = "NL"
	CountryEnumCH CountryEnum = "CH"
	CountryEnumSE CountryEnum = "SE"
	CountryEnumAU CountryEnum = "AU"
	CountryEnumNZ CountryEnum = "NZ"
	CountryEnumJP CountryEnum = "JP"
	CountryEnumIN CountryEnum = "IN"
	CountryEnumSG CountryEnum = "SG"
	CountryEnumZA CountryEnum = "ZA"
)

var countries = codec.NewEnumSet(
	CountryEnumUS,
	CountryEnumCA,
	CountryEnumMX,
	CountryEnumBR,
	CountryEnumGB,
	CountryEnumIE,
	CountryEnumDE,
	CountryEnumFR,
	CountryEnumES,
	CountryEnumIT,
	CountryEnumNL,
	CountryEnumCH,
	CountryEnumSE,
	CountryEnumAU,
	CountryEnumNZ,
	CountryEnumJP,
	CountryEnumIN,
	CountryEnumSG,
	CountryEnumZA,
)

func (e CountryEnum) IsKnown() bool   { return countries.Contains(e) }
func (e CountryEnum) Known() []string { return countries.Strings() }
