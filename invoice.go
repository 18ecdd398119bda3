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

// InvoiceService manages receivable and payable invoices.
type InvoiceService struct {
	readService[Invoice, InvoiceListParams]
}

// NewInvoiceService applies opts to each request, after the client's.
func NewInvoiceService(opts ...RequestOption) InvoiceService {
	return InvoiceService{readService[Invoice, InvoiceListParams]{Options: opts, path: "invoices"}}
}

// New creates an invoice in the linked platform.
func (r *InvoiceService) New(ctx context.Context, body InvoiceRequest, params WriteParams, opts ...RequestOption) (res *InvoiceResponse, err error) {
	opts = slices.Concat(r.Options, params.options(), opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "invoices", writeRequest[InvoiceRequest]{Model: &body}, &res, opts...)
	return
}

// Meta describes the fields the linked platform accepts for New.
func (r *InvoiceService) Meta(ctx context.Context, opts ...RequestOption) (res *MetaResponse, err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "invoices/meta/post", nil, &res, opts...)
	return
}

// Invoice is a bill sent to a customer or received from a supplier.
type Invoice struct {
	codec.Extras
	Record
	Type       nullable.Nullable[InvoiceTypeEnum] `json:"type,omitempty"`
	Contact    codec.Expandable[Contact]          `json:"contact,omitempty"`
	Number     nullable.Nullable[string]          `json:"number,omitempty"`
	IssueDate  nullable.Nullable[time.Time]       `json:"issue_date,omitempty"`
	DueDate    nullable.Nullable[time.Time]       `json:"due_date,omitempty"`
	PaidOnDate nullable.Nullable[time.Time]       `json:"paid_on_date,omitempty"`
	Memo       nullable.Nullable[string]          `json:"memo,omitempty"`
	Company    codec.Expandable[CompanyInfo]      `json:"company,omitempty"`
	Employee   codec.Expandable[Employee]         `json:"employee,omitempty"`
	Currency   nullable.Nullable[CurrencyEnum]    `json:"currency,omitempty"`
	// ExchangeRate is a decimal string.
	ExchangeRate       nullable.Nullable[string]            `json:"exchange_rate,omitempty"`
	TotalDiscount      nullable.Nullable[float64]           `json:"total_discount,omitempty"`
	SubTotal           nullable.Nullable[float64]           `json:"sub_total,omitempty"`
	Status             nullable.Nullable[InvoiceStatusEnum] `json:"status,omitempty"`
	TotalTaxAmount     nullable.Nullable[float64]           `json:"total_tax_amount,omitempty"`
	TotalAmount        nullable.Nullable[float64]           `json:"total_amount,omitempty"`
	Balance            nullable.Nullable[float64]           `json:"balance,omitempty"`
	RemoteUpdatedAt    *time.Time                           `json:"remote_updated_at,omitempty"`
	TrackingCategories []codec.Expandable[TrackingCategory] `json:"tracking_categories,omitempty"`
	Payments           []codec.Expandable[Payment]          `json:"payments,omitempty"`
	LineItems          []InvoiceLineItem                    `json:"line_items,omitempty"`
}

func (r Invoice) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Invoice) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// InvoiceLineItem is one line of an [Invoice].
type InvoiceLineItem struct {
	codec.Extras
	Record
	Description        nullable.Nullable[string]            `json:"description,omitempty"`
	UnitPrice          nullable.Nullable[float64]           `json:"unit_price,omitempty"`
	Quantity           nullable.Nullable[float64]           `json:"quantity,omitempty"`
	TotalAmount        nullable.Nullable[float64]           `json:"total_amount,omitempty"`
	Currency           nullable.Nullable[CurrencyEnum]      `json:"currency,omitempty"`
	ExchangeRate       nullable.Nullable[string]            `json:"exchange_rate,omitempty"`
	Item               nullable.Nullable[string]            `json:"item,omitempty"`
	Account            codec.Expandable[Account]            `json:"account,omitempty"`
	TrackingCategories []codec.Expandable[TrackingCategory] `json:"tracking_categories,omitempty"`
	Company            nullable.Nullable[string]            `json:"company,omitempty"`
}

func (r InvoiceLineItem) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *InvoiceLineItem) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// InvoiceRequest is the body of InvoiceService.New. Related objects are
// referenced by ID.
type InvoiceRequest struct {
	codec.Extras
	Type                nullable.Nullable[InvoiceTypeEnum]   `json:"type,omitempty"`
	Contact             nullable.Nullable[string]            `json:"contact,omitempty"`
	Number              nullable.Nullable[string]            `json:"number,omitempty"`
	IssueDate           nullable.Nullable[time.Time]         `json:"issue_date,omitempty"`
	DueDate             nullable.Nullable[time.Time]         `json:"due_date,omitempty"`
	PaidOnDate          nullable.Nullable[time.Time]         `json:"paid_on_date,omitempty"`
	Memo                nullable.Nullable[string]            `json:"memo,omitempty"`
	Status              nullable.Nullable[InvoiceStatusEnum] `json:"status,omitempty"`
	Company             nullable.Nullable[string]            `json:"company,omitempty"`
	Employee            nullable.Nullable[string]            `json:"employee,omitempty"`
	Currency            nullable.Nullable[CurrencyEnum]      `json:"currency,omitempty"`
	ExchangeRate        nullable.Nullable[string]            `json:"exchange_rate,omitempty"`
	TotalDiscount       nullable.Nullable[float64]           `json:"total_discount,omitempty"`
	SubTotal            nullable.Nullable[float64]           `json:"sub_total,omitempty"`
	TotalTaxAmount      nullable.Nullable[float64]           `json:"total_tax_amount,omitempty"`
	TotalAmount         nullable.Nullable[float64]           `json:"total_amount,omitempty"`
	Balance             nullable.Nullable[float64]           `json:"balance,omitempty"`
	Payments            []string                             `json:"payments,omitempty"`
	TrackingCategories  []string                             `json:"tracking_categories,omitempty"`
	LineItems           []InvoiceLineItemRequest             `json:"line_items,omitempty"`
	IntegrationParams   map[string]any                       `json:"integration_params,omitempty"`
	LinkedAccountParams map[string]any                       `json:"linked_account_params,omitempty"`
}

func (r InvoiceRequest) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *InvoiceRequest) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// InvoiceLineItemRequest is one line of an [InvoiceRequest].
type InvoiceLineItemRequest struct {
	codec.Extras
	RemoteID           nullable.Nullable[string]       `json:"remote_id,omitempty"`
	Description        nullable.Nullable[string]       `json:"description,omitempty"`
	UnitPrice          nullable.Nullable[float64]      `json:"unit_price,omitempty"`
	Quantity           nullable.Nullable[float64]      `json:"quantity,omitempty"`
	TotalAmount        nullable.Nullable[float64]      `json:"total_amount,omitempty"`
	Currency           nullable.Nullable[CurrencyEnum] `json:"currency,omitempty"`
	ExchangeRate       nullable.Nullable[string]       `json:"exchange_rate,omitempty"`
	Item               nullable.Nullable[string]       `json:"item,omitempty"`
	Account            nullable.Nullable[string]       `json:"account,omitempty"`
	TrackingCategories []string                        `json:"tracking_categories,omitempty"`
	Company            nullable.Nullable[string]       `json:"company,omitempty"`
}

func (r InvoiceLineItemRequest) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *InvoiceLineItemRequest) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}
