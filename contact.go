package accounting

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// ContactService manages customers and suppliers.
type ContactService struct {
	readService[Contact, ContactListParams]
}

// NewContactService applies opts to each request, after the client's.
func NewContactService(opts ...RequestOption) ContactService {
	return ContactService{readService[Contact, ContactListParams]{Options: opts, path: "contacts"}}
}

// New creates a contact in the linked platform.
func (r *ContactService) New(ctx context.Context, body ContactRequest, params WriteParams, opts ...RequestOption) (res *ContactResponse, err error) {
	opts = slices.Concat(r.Options, params.options(), opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "contacts", writeRequest[ContactRequest]{Model: &body}, &res, opts...)
	return
}

// Meta describes the fields the linked platform accepts for New.
func (r *ContactService) Meta(ctx context.Context, opts ...RequestOption) (res *MetaResponse, err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "contacts/meta/post", nil, &res, opts...)
	return
}

// Contact is a customer or supplier.
type Contact struct {
	codec.Extras
	Record
	Name         nullable.Nullable[string]            `json:"name,omitempty"`
	IsSupplier   nullable.Nullable[bool]              `json:"is_supplier,omitempty"`
	IsCustomer   nullable.Nullable[bool]              `json:"is_customer,omitempty"`
	EmailAddress nullable.Nullable[string]            `json:"email_address,omitempty"`
	TaxNumber    nullable.Nullable[string]            `json:"tax_number,omitempty"`
	Status       nullable.Nullable[ContactStatusEnum] `json:"status,omitempty"`
	// Currency is free text here, unlike the CurrencyEnum used elsewhere.
	Currency        nullable.Nullable[string]   `json:"currency,omitempty"`
	RemoteUpdatedAt *time.Time                  `json:"remote_updated_at,omitempty"`
	Company         nullable.Nullable[string]   `json:"company,omitempty"`
	Addresses       []codec.Expandable[Address] `json:"addresses,omitempty"`
	PhoneNumbers    []AccountingPhoneNumber     `json:"phone_numbers,omitempty"`
}

func (r Contact) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Contact) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// ContactRequest is the body of ContactService.New.
type ContactRequest struct {
	codec.Extras
	Name                nullable.Nullable[string]            `json:"name,omitempty"`
	IsSupplier          nullable.Nullable[bool]              `json:"is_supplier,omitempty"`
	IsCustomer          nullable.Nullable[bool]              `json:"is_customer,omitempty"`
	EmailAddress        nullable.Nullable[string]            `json:"email_address,omitempty"`
	TaxNumber           nullable.Nullable[string]            `json:"tax_number,omitempty"`
	Status              nullable.Nullable[ContactStatusEnum] `json:"status,omitempty"`
	Currency            nullable.Nullable[string]            `json:"currency,omitempty"`
	Company             nullable.Nullable[string]            `json:"company,omitempty"`
	Addresses           []string                             `json:"addresses,omitempty"`
	PhoneNumbers        []AccountingPhoneNumber              `json:"phone_numbers,omitempty"`
	IntegrationParams   map[string]any                       `json:"integration_params,omitempty"`
	LinkedAccountParams map[string]any                       `json:"linked_account_params,omitempty"`
}

func (r ContactRequest) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *ContactRequest) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
