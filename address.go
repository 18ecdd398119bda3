package accounting

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// Address is a postal address of a contact or company.
type Address struct {
	codec.Extras
	CreatedAt          *time.Time                         `json:"created_at,omitempty"`
	ModifiedAt         *time.Time                         `json:"modified_at,omitempty"`
	Type               nullable.Nullable[AddressTypeEnum] `json:"type,omitempty"`
	Street1            nullable.Nullable[string]          `json:"street_1,omitempty"`
	Street2            nullable.Nullable[string]          `json:"street_2,omitempty"`
	City               nullable.Nullable[string]          `json:"city,omitempty"`
	State              nullable.Nullable[string]          `json:"state,omitempty"`
	CountrySubdivision nullable.Nullable[string]          `json:"country_subdivision,omitempty"`
	Country            nullable.Nullable[CountryEnum]     `json:"country,omitempty"`
	ZipCode            nullable.Nullable[string]          `json:"zip_code,omitempty"`
}

func (r Address) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Address) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// AccountingPhoneNumber is a phone number of a contact or company.
type AccountingPhoneNumber struct {
	codec.Extras
	CreatedAt  *time.Time                `json:"created_at,omitempty"`
	ModifiedAt *time.Time                `json:"modified_at,omitempty"`
	Number     nullable.Nullable[string] `json:"number,omitempty"`
	Type       nullable.Nullable[string] `json:"type,omitempty"`
}

func (r AccountingPhoneNumber) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *AccountingPhoneNumber) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}
