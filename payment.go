package accounting

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// PaymentService manages payments made against invoices.
type PaymentService struct {
	readService[Payment, PaymentListParams]
}

// NewPaymentService applies opts to each request, after the client's.
func NewPaymentService(opts ...RequestOption) PaymentService {
	return PaymentService{readService[Payment, PaymentListParams]{Options: opts, path: "payments"}}
}

// New records a payment in the linked platform.
func (r *PaymentService) New(ctx context.Context, body PaymentRequest, params WriteParams, opts ...RequestOption) (res *PaymentResponse, err error) {
	opts = slices.Concat(r.Options, params.options(), opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "payments", writeRequest[PaymentRequest]{Model: &body}, &res, opts...)
	return
}

// Update changes the fields set in body and leaves the rest alone. Fields
// set to null are cleared.
func (r *PaymentService) Update(ctx context.Context, id string, body PatchedPaymentRequest, params WriteParams, opts ...RequestOption) (res *PaymentResponse, err error) {
	opts = slices.Concat(r.Options, params.options(), opts)
	if id == "" {
		err = errors.New("missing required id parameter")
		return
	}
	path := "payments/" + url.PathEscape(id)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodPatch, path, writeRequest[PatchedPaymentRequest]{Model: &body}, &res, opts...)
	return
}

// Meta describes the fields the linked platform accepts for New.
func (r *PaymentService) Meta(ctx context.Context, opts ...RequestOption) (res *MetaResponse, err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "payments/meta/post", nil, &res, opts...)
	return
}

// Payment is money paid to a supplier or received from a customer.
type Payment struct {
	codec.Extras
	Record
	TransactionDate    nullable.Nullable[time.Time]         `json:"transaction_date,omitempty"`
	Contact            codec.Expandable[Contact]            `json:"contact,omitempty"`
	Account            codec.Expandable[Account]            `json:"account,omitempty"`
	PaymentMethod      codec.Expandable[PaymentMethod]      `json:"payment_method,omitempty"`
	Currency           nullable.Nullable[CurrencyEnum]      `json:"currency,omitempty"`
	ExchangeRate       nullable.Nullable[string]            `json:"exchange_rate,omitempty"`
	Company            codec.Expandable[CompanyInfo]        `json:"company,omitempty"`
	TotalAmount        nullable.Nullable[float64]           `json:"total_amount,omitempty"`
	Type               nullable.Nullable[PaymentTypeEnum]   `json:"type,omitempty"`
	TrackingCategories []codec.Expandable[TrackingCategory] `json:"tracking_categories,omitempty"`
	AccountingPeriod   nullable.Nullable[string]            `json:"accounting_period,omitempty"`
	AppliedToLines     []PaymentLineItem                    `json:"applied_to_lines,omitempty"`
	RemoteUpdatedAt    *time.Time                           `json:"remote_updated_at,omitempty"`
}

func (r Payment) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Payment) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// PaymentLineItem applies part of a payment to an invoice or other
// transaction.
type PaymentLineItem struct {
	codec.Extras
	Record
	// AppliedAmount is a decimal string.
	AppliedAmount     nullable.Nullable[string]    `json:"applied_amount,omitempty"`
	AppliedDate       nullable.Nullable[time.Time] `json:"applied_date,omitempty"`
	RelatedObjectID   nullable.Nullable[string]    `json:"related_object_id,omitempty"`
	RelatedObjectType nullable.Nullable[string]    `json:"related_object_type,omitempty"`
}

func (r PaymentLineItem) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *PaymentLineItem) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// PaymentRequest is the body of PaymentService.New. Related objects are
// referenced by ID.
type PaymentRequest struct {
	codec.Extras
	TransactionDate     nullable.Nullable[time.Time]       `json:"transaction_date,omitempty"`
	Contact             nullable.Nullable[string]          `json:"contact,omitempty"`
	Account             nullable.Nullable[string]          `json:"account,omitempty"`
	PaymentMethod       nullable.Nullable[string]          `json:"payment_method,omitempty"`
	Currency            nullable.Nullable[CurrencyEnum]    `json:"currency,omitempty"`
	ExchangeRate        nullable.Nullable[string]          `json:"exchange_rate,omitempty"`
	Company             nullable.Nullable[string]          `json:"company,omitempty"`
	TotalAmount         nullable.Nullable[float64]         `json:"total_amount,omitempty"`
	Type                nullable.Nullable[PaymentTypeEnum] `json:"type,omitempty"`
	TrackingCategories  []string                           `json:"tracking_categories,omitempty"`
	AccountingPeriod    nullable.Nullable[string]          `json:"accounting_period,omitempty"`
	AppliedToLines      []PaymentLineItemRequest           `json:"applied_to_lines,omitempty"`
	IntegrationParams   map[string]any                     `json:"integration_params,omitempty"`
	LinkedAccountParams map[string]any                     `json:"linked_account_params,omitempty"`
}

func (r PaymentRequest) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *PaymentRequest) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// PatchedPaymentRequest is the body of PaymentService.Update. Unset fields
// are left out of the request.
type PatchedPaymentRequest struct {
	codec.Extras
	TransactionDate     nullable.Nullable[time.Time]       `json:"transaction_date,omitempty"`
	Contact             nullable.Nullable[string]          `json:"contact,omitempty"`
	Account             nullable.Nullable[string]          `json:"account,omitempty"`
	PaymentMethod       nullable.Nullable[string]          `json:"payment_method,omitempty"`
	Currency            nullable.Nullable[CurrencyEnum]    `json:"currency,omitempty"`
	ExchangeRate        nullable.Nullable[string]          `json:"exchange_rate,omitempty"`
	Company             nullable.Nullable[string]          `json:"company,omitempty"`
	TotalAmount         nullable.Nullable[float64]         `json:"total_amount,omitempty"`
	Type                nullable.Nullable[PaymentTypeEnum] `json:"type,omitempty"`
	TrackingCategories  []string                           `json:"tracking_categories,omitempty"`
	AccountingPeriod    nullable.Nullable[string]          `json:"accounting_period,omitempty"`
	AppliedToLines      []PaymentLineItemRequest           `json:"applied_to_lines,omitempty"`
	IntegrationParams   map[string]any                     `json:"integration_params,omitempty"`
	LinkedAccountParams map[string]any                     `json:"linked_account_params,omitempty"`
}

func (r PatchedPaymentRequest) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *PatchedPaymentRequest) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}

// PaymentLineItemRequest is one entry of PaymentRequest.AppliedToLines.
type PaymentLineItemRequest struct {
	codec.Extras
	RemoteID          nullable.Nullable[string]    `json:"remote_id,omitempty"`
	AppliedAmount     nullable.Nullable[string]    `json:"applied_amount,omitempty"`
	AppliedDate       nullable.Nullable[time.Time] `json:"applied_date,omitempty"`
	RelatedObjectID   nullable.Nullable[string]    `json:"related_object_id,omitempty"`
	RelatedObjectType nullable.Nullable[string]    `json:"related_object_type,omitempty"`
}

func (r PaymentLineItemRequest) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *PaymentLineItemRequest) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}
