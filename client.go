package accounting

import (
	"os"

	"github.com/florianilch/merge-accounting/internal/apierror"
)

// APIError is returned for 4xx and 5xx responses. Use errors.As to inspect
// it.
type APIError = apierror.Error

// Client talks to the Merge Unified Accounting API. Methods are safe for
// concurrent use.
type Client struct {
	Options            []RequestOption
	Accounts           AccountService
	Contacts           ContactService
	Employees          EmployeeService
	Invoices           InvoiceService
	Payments           PaymentService
	PaymentMethods     PaymentMethodService
	TrackingCategories TrackingCategoryService
	CompanyInfo        CompanyInfoService
	AccountDetails     AccountDetailsService
	SyncStatus         SyncStatusService
}

// DefaultClientOptions reads MERGE_API_KEY, MERGE_ACCOUNT_TOKEN and
// MERGE_BASE_URL from the environment.
func DefaultClientOptions() []RequestOption {
	var defaults []RequestOption
	if v, ok := os.LookupEnv("MERGE_BASE_URL"); ok {
		defaults = append(defaults, WithBaseURL(v))
	}
	if v, ok := os.LookupEnv("MERGE_API_KEY"); ok {
		defaults = append(defaults, WithAPIKey(v))
	}
	if v, ok := os.LookupEnv("MERGE_ACCOUNT_TOKEN"); ok {
		defaults = append(defaults, WithAccountToken(v))
	}
	return defaults
}

// NewClient creates a client. The environment defaults from
// DefaultClientOptions are applied first, then opts.
func NewClient(opts ...RequestOption) *Client {
	opts = append(DefaultClientOptions(), opts...)

	return &Client{
		Options:            opts,
		Accounts:           NewAccountService(opts...),
		Contacts:           NewContactService(opts...),
		Employees:          NewEmployeeService(opts...),
		Invoices:           NewInvoiceService(opts...),
		Payments:           NewPaymentService(opts...),
		PaymentMethods:     NewPaymentMethodService(opts...),
		TrackingCategories: NewTrackingCategoryService(opts...),
		CompanyInfo:        NewCompanyInfoService(opts...),
		AccountDetails:     NewAccountDetailsService(opts...),
		SyncStatus:         NewSyncStatusService(opts...),
	}
}
