package accounting

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// CompanyInfoService lists and retrieves the companies of a linked account.
type CompanyInfoService struct {
	readService[CompanyInfo, ListParams]
}

// NewCompanyInfoService applies opts to each request, after the client's.
func NewCompanyInfoService(opts ...RequestOption) CompanyInfoService {
	return CompanyInfoService{readService[CompanyInfo, ListParams]{Options: opts, path: "company-info"}}
}

// CompanyInfo describes a company whose books are kept in the linked
// platform.
type CompanyInfo struct {
	codec.Extras
	Record
	Name               nullable.Nullable[string]       `json:"name,omitempty"`
	LegalName          nullable.Nullable[string]       `json:"legal_name,omitempty"`
	TaxNumber          nullable.Nullable[string]       `json:"tax_number,omitempty"`
	FiscalYearEndMonth nullable.Nullable[int]          `json:"fiscal_year_end_month,omitempty"`
	FiscalYearEndDay   nullable.Nullable[int]          `json:"fiscal_year_end_day,omitempty"`
	Currency           nullable.Nullable[CurrencyEnum] `json:"currency,omitempty"`
	RemoteCreatedAt    *time.Time                      `json:"remote_created_at,omitempty"`
	URLs               []string                        `json:"urls,omitempty"`
	Addresses          []Address                       `json:"addresses,omitempty"`
	PhoneNumbers       []AccountingPhoneNumber         `json:"phone_numbers,omitempty"`
}

func (r CompanyInfo) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *CompanyInfo) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
