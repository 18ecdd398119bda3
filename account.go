package accounting

import (
	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// AccountService lists and retrieves ledger accounts.
type AccountService struct {
	readService[Account, ListParams]
}

// NewAccountService applies opts to each request, after the client's.
func NewAccountService(opts ...RequestOption) AccountService {
	return AccountService{readService[Account, ListParams]{Options: opts, path: "accounts"}}
}

// Account is a ledger account from the chart of accounts.
type Account struct {
	codec.Extras
	Record
	Name        nullable.Nullable[string] `json:"name,omitempty"`
	Description nullable.Nullable[string] `json:"description,omitempty"`
	// Classification is the normalized ledger classification.
	Classification nullable.Nullable[ClassificationEnum] `json:"classification,omitempty"`
	// Type is the account type as named by the third-party platform.
	Type           nullable.Nullable[string]            `json:"type,omitempty"`
	AccountType    nullable.Nullable[AccountTypeEnum]   `json:"account_type,omitempty"`
	Status         nullable.Nullable[AccountStatusEnum] `json:"status,omitempty"`
	CurrentBalance nullable.Nullable[float64]           `json:"current_balance,omitempty"`
	Currency       nullable.Nullable[CurrencyEnum]      `json:"currency,omitempty"`
	AccountNumber  nullable.Nullable[string]            `json:"account_number,omitempty"`
	ParentAccount  nullable.Nullable[string]            `json:"parent_account,omitempty"`
	Company        nullable.Nullable[string]            `json:"company,omitempty"`
}

func (r Account) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Account) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
