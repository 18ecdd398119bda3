package accounting

import (
	"strings"

	"github.com/florianilch/merge-accounting/codec"
)

// Enum types below mirror the Merge controlled vocabularies. Values outside
// the listed members still decode and encode unchanged; codec.Validate
// reports them.

// AccountStatusEnum is the status of an [Account].
type AccountStatusEnum string

const (
	AccountStatusEnumActive   AccountStatusEnum = "ACTIVE"
	AccountStatusEnumPending  AccountStatusEnum = "PENDING"
	AccountStatusEnumInactive AccountStatusEnum = "INACTIVE"
)

var accountStatuses = codec.NewEnumSet(
	AccountStatusEnumActive,
	AccountStatusEnumPending,
	AccountStatusEnumInactive,
)

func (e AccountStatusEnum) IsKnown() bool   { return accountStatuses.Contains(e) }
func (e AccountStatusEnum) Known() []string { return accountStatuses.Strings() }

// ClassificationEnum is the ledger classification of an [Account].
type ClassificationEnum string

const (
	ClassificationEnumAsset     ClassificationEnum = "ASSET"
	ClassificationEnumEquity    ClassificationEnum = "EQUITY"
	ClassificationEnumExpense   ClassificationEnum = "EXPENSE"
	ClassificationEnumLiability ClassificationEnum = "LIABILITY"
	ClassificationEnumRevenue   ClassificationEnum = "REVENUE"
)

var classifications = codec.NewEnumSet(
	ClassificationEnumAsset,
	ClassificationEnumEquity,
	ClassificationEnumExpense,
	ClassificationEnumLiability,
	ClassificationEnumRevenue,
)

func (e ClassificationEnum) IsKnown() bool   { return classifications.Contains(e) }
func (e ClassificationEnum) Known() []string { return classifications.Strings() }

// AccountTypeEnum is the normalized type of an [Account].
type AccountTypeEnum string

const (
	AccountTypeEnumBank                  AccountTypeEnum = "BANK"
	AccountTypeEnumCreditCard            AccountTypeEnum = "CREDIT_CARD"
	AccountTypeEnumAccountsPayable       AccountTypeEnum = "ACCOUNTS_PAYABLE"
	AccountTypeEnumAccountsReceivable    AccountTypeEnum = "ACCOUNTS_RECEIVABLE"
	AccountTypeEnumFixedAsset            AccountTypeEnum = "FIXED_ASSET"
	AccountTypeEnumOtherAsset            AccountTypeEnum = "OTHER_ASSET"
	AccountTypeEnumOtherCurrentAsset     AccountTypeEnum = "OTHER_CURRENT_ASSET"
	AccountTypeEnumOtherExpense          AccountTypeEnum = "OTHER_EXPENSE"
	AccountTypeEnumOtherIncome           AccountTypeEnum = "OTHER_INCOME"
	AccountTypeEnumCostOfGoodsSold       AccountTypeEnum = "COST_OF_GOODS_SOLD"
	AccountTypeEnumOtherCurrentLiability AccountTypeEnum = "OTHER_CURRENT_LIABILITY"
	AccountTypeEnumLongTermLiability     AccountTypeEnum = "LONG_TERM_LIABILITY"
	AccountTypeEnumNonPosting            AccountTypeEnum = "NON_POSTING"
)

var accountTypes = codec.NewEnumSet(
	AccountTypeEnumBank,
	AccountTypeEnumCreditCard,
	AccountTypeEnumAccountsPayable,
	AccountTypeEnumAccountsReceivable,
	AccountTypeEnumFixedAsset,
	AccountTypeEnumOtherAsset,
	AccountTypeEnumOtherCurrentAsset,
	AccountTypeEnumOtherExpense,
	AccountTypeEnumOtherIncome,
	AccountTypeEnumCostOfGoodsSold,
	AccountTypeEnumOtherCurrentLiability,
	AccountTypeEnumLongTermLiability,
	AccountTypeEnumNonPosting,
)

func (e AccountTypeEnum) IsKnown() bool   { return accountTypes.Contains(e) }
func (e AccountTypeEnum) Known() []string { return accountTypes.Strings() }

// ContactStatusEnum is the status of a [Contact].
type ContactStatusEnum string

const (
	ContactStatusEnumActive   ContactStatusEnum = "ACTIVE"
	ContactStatusEnumArchived ContactStatusEnum = "ARCHIVED"
)

var contactStatuses = codec.NewEnumSet(ContactStatusEnumActive, ContactStatusEnumArchived)

func (e ContactStatusEnum) IsKnown() bool   { return contactStatuses.Contains(e) }
func (e ContactStatusEnum) Known() []string { return contactStatuses.Strings() }

// EmployeeStatusEnum is the status of an [Employee].
type EmployeeStatusEnum string

const (
	EmployeeStatusEnumActive   EmployeeStatusEnum = "ACTIVE"
	EmployeeStatusEnumInactive EmployeeStatusEnum = "INACTIVE"
)

var employeeStatuses = codec.NewEnumSet(EmployeeStatusEnumActive, EmployeeStatusEnumInactive)

func (e EmployeeStatusEnum) IsKnown() bool   { return employeeStatuses.Contains(e) }
func (e EmployeeStatusEnum) Known() []string { return employeeStatuses.Strings() }

// InvoiceTypeEnum tells receivables from payables.
type InvoiceTypeEnum string

const (
	InvoiceTypeEnumAccountsReceivable InvoiceTypeEnum = "ACCOUNTS_RECEIVABLE"
	InvoiceTypeEnumAccountsPayable    InvoiceTypeEnum = "ACCOUNTS_PAYABLE"
)

var invoiceTypes = codec.NewEnumSet(InvoiceTypeEnumAccountsReceivable, InvoiceTypeEnumAccountsPayable)

func (e InvoiceTypeEnum) IsKnown() bool   { return invoiceTypes.Contains(e) }
func (e InvoiceTypeEnum) Known() []string { return invoiceTypes.Strings() }

// InvoiceStatusEnum is the lifecycle status of an [Invoice].
type InvoiceStatusEnum string

const (
	InvoiceStatusEnumPaid          InvoiceStatusEnum = "PAID"
	InvoiceStatusEnumDraft         InvoiceStatusEnum = "DRAFT"
	InvoiceStatusEnumSubmitted     InvoiceStatusEnum = "SUBMITTED"
	InvoiceStatusEnumPartiallyPaid InvoiceStatusEnum = "PARTIALLY_PAID"
	InvoiceStatusEnumOpen          InvoiceStatusEnum = "OPEN"
	InvoiceStatusEnumVoid          InvoiceStatusEnum = "VOID"
)

var invoiceStatuses = codec.NewEnumSet(
	InvoiceStatusEnumPaid,
	InvoiceStatusEnumDraft,
	InvoiceStatusEnumSubmitted,
	InvoiceStatusEnumPartiallyPaid,
	InvoiceStatusEnumOpen,
	InvoiceStatusEnumVoid,
)

func (e InvoiceStatusEnum) IsKnown() bool   { return invoiceStatuses.Contains(e) }
func (e InvoiceStatusEnum) Known() []string { return invoiceStatuses.Strings() }

// MethodTypeEnum is the kind of a [PaymentMethod].
type MethodTypeEnum string

const (
	MethodTypeEnumCreditCard MethodTypeEnum = "CREDIT_CARD"
	MethodTypeEnumDebitCard  MethodTypeEnum = "DEBIT_CARD"
	MethodTypeEnumACH        MethodTypeEnum = "ACH"
	MethodTypeEnumCash       MethodTypeEnum = "CASH"
	MethodTypeEnumCheck      MethodTypeEnum = "CHECK"
)

var methodTypes = codec.NewEnumSet(
	MethodTypeEnumCreditCard,
	MethodTypeEnumDebitCard,
	MethodTypeEnumACH,
	MethodTypeEnumCash,
	MethodTypeEnumCheck,
)

func (e MethodTypeEnum) IsKnown() bool   { return methodTypes.Contains(e) }
func (e MethodTypeEnum) Known() []string { return methodTypes.Strings() }

// PaymentTypeEnum tells incoming from outgoing payments.
type PaymentTypeEnum string

const (
	PaymentTypeEnumAccountsPayable    PaymentTypeEnum = "ACCOUNTS_PAYABLE"
	PaymentTypeEnumAccountsReceivable PaymentTypeEnum = "ACCOUNTS_RECEIVABLE"
)

var paymentTypes = codec.NewEnumSet(PaymentTypeEnumAccountsPayable, PaymentTypeEnumAccountsReceivable)

func (e PaymentTypeEnum) IsKnown() bool   { return paymentTypes.Contains(e) }
func (e PaymentTypeEnum) Known() []string { return paymentTypes.Strings() }

// AddressTypeEnum is the purpose of an [Address].
type AddressTypeEnum string

const (
	AddressTypeEnumBilling  AddressTypeEnum = "BILLING"
	AddressTypeEnumShipping AddressTypeEnum = "SHIPPING"
)

var addressTypes = codec.NewEnumSet(AddressTypeEnumBilling, AddressTypeEnumShipping)

func (e AddressTypeEnum) IsKnown() bool   { return addressTypes.Contains(e) }
func (e AddressTypeEnum) Known() []string { return addressTypes.Strings() }

// TrackingCategoryStatusEnum is the status of a [TrackingCategory].
type TrackingCategoryStatusEnum string

const (
	TrackingCategoryStatusEnumActive   TrackingCategoryStatusEnum = "ACTIVE"
	TrackingCategoryStatusEnumArchived TrackingCategoryStatusEnum = "ARCHIVED"
)

var trackingCategoryStatuses = codec.NewEnumSet(
	TrackingCategoryStatusEnumActive,
	TrackingCategoryStatusEnumArchived,
)

func (e TrackingCategoryStatusEnum) IsKnown() bool { return trackingCategoryStatuses.Contains(e) }
func (e TrackingCategoryStatusEnum) Known() []string {
	return trackingCategoryStatuses.Strings()
}

// CategoryTypeEnum is the dimension a [TrackingCategory] tracks.
type CategoryTypeEnum string

const (
	CategoryTypeEnumClass      CategoryTypeEnum = "CLASS"
	CategoryTypeEnumDepartment CategoryTypeEnum = "DEPARTMENT"
)

var categoryTypes = codec.NewEnumSet(CategoryTypeEnumClass, CategoryTypeEnumDepartment)

func (e CategoryTypeEnum) IsKnown() bool   { return categoryTypes.Contains(e) }
func (e CategoryTypeEnum) Known() []string { return categoryTypes.Strings() }

// SyncStatusStatusEnum is the state of a model's sync.
type SyncStatusStatusEnum string

const (
	SyncStatusStatusEnumSyncing         SyncStatusStatusEnum = "SYNCING"
	SyncStatusStatusEnumDone            SyncStatusStatusEnum = "DONE"
	SyncStatusStatusEnumFailed          SyncStatusStatusEnum = "FAILED"
	SyncStatusStatusEnumDisabled        SyncStatusStatusEnum = "DISABLED"
	SyncStatusStatusEnumPaused          SyncStatusStatusEnum = "PAUSED"
	SyncStatusStatusEnumPartiallySynced SyncStatusStatusEnum = "PARTIALLY_SYNCED"
)

var syncStatuses = codec.NewEnumSet(
	SyncStatusStatusEnumSyncing,
	SyncStatusStatusEnumDone,
	SyncStatusStatusEnumFailed,
	SyncStatusStatusEnumDisabled,
	SyncStatusStatusEnumPaused,
	SyncStatusStatusEnumPartiallySynced,
)

func (e SyncStatusStatusEnum) IsKnown() bool   { return syncStatuses.Contains(e) }
func (e SyncStatusStatusEnum) Known() []string { return syncStatuses.Strings() }

// WebhookEventEnum names the events Merge delivers to webhook receivers.
// Common model events are "<Model>.<action>".
type WebhookEventEnum string

const (
	WebhookEventEnumInvoiceAdded          WebhookEventEnum = "Invoice.added"
	WebhookEventEnumInvoiceChanged        WebhookEventEnum = "Invoice.changed"
	WebhookEventEnumInvoiceRemoved        WebhookEventEnum = "Invoice.removed"
	WebhookEventEnumPaymentAdded          WebhookEventEnum = "Payment.added"
	WebhookEventEnumPaymentChanged        WebhookEventEnum = "Payment.changed"
	WebhookEventEnumPaymentRemoved        WebhookEventEnum = "Payment.removed"
	WebhookEventEnumContactAdded          WebhookEventEnum = "Contact.added"
	WebhookEventEnumContactChanged        WebhookEventEnum = "Contact.changed"
	WebhookEventEnumContactRemoved        WebhookEventEnum = "Contact.removed"
	WebhookEventEnumAccountAdded          WebhookEventEnum = "Account.added"
	WebhookEventEnumAccountChanged        WebhookEventEnum = "Account.changed"
	WebhookEventEnumAccountRemoved        WebhookEventEnum = "Account.removed"
	WebhookEventEnumLinkedAccountSynced   WebhookEventEnum = "LinkedAccount.sync_completed"
	WebhookEventEnumLinkedAccountLinked   WebhookEventEnum = "LinkedAccount.linked"
	WebhookEventEnumLinkedAccountDeleted  WebhookEventEnum = "LinkedAccount.deleted"
	WebhookEventEnumLinkedAccountRelinked WebhookEventEnum = "LinkedAccount.account_relinked"
)

var webhookEvents = codec.NewEnumSet(
	WebhookEventEnumInvoiceAdded,
	WebhookEventEnumInvoiceChanged,
	WebhookEventEnumInvoiceRemoved,
	WebhookEventEnumPaymentAdded,
	WebhookEventEnumPaymentChanged,
	WebhookEventEnumPaymentRemoved,
	WebhookEventEnumContactAdded,
	WebhookEventEnumContactChanged,
	WebhookEventEnumContactRemoved,
	WebhookEventEnumAccountAdded,
	WebhookEventEnumAccountChanged,
	WebhookEventEnumAccountRemoved,
	WebhookEventEnumLinkedAccountSynced,
	WebhookEventEnumLinkedAccountLinked,
	WebhookEventEnumLinkedAccountDeleted,
	WebhookEventEnumLinkedAccountRelinked,
)

func (e WebhookEventEnum) IsKnown() bool   { return webhookEvents.Contains(e) }
func (e WebhookEventEnum) Known() []string { return webhookEvents.Strings() }

// Model returns the common model an event is about, e.g. "Invoice" for
// "Invoice.changed".
func (e WebhookEventEnum) Model() string {
	model, _, _ := strings.Cut(string(e), ".")
	return model
}

var (
	_ codec.Enum = AccountStatusEnum("")
	_ codec.Enum = ClassificationEnum("")
	_ codec.Enum = AccountTypeEnum("")
	_ codec.Enum = ContactStatusEnum("")
	_ codec.Enum = EmployeeStatusEnum("")
	_ codec.Enum = InvoiceTypeEnum("")
	_ codec.Enum = InvoiceStatusEnum("")
	_ codec.Enum = MethodTypeEnum("")
	_ codec.Enum = PaymentTypeEnum("")
	_ codec.Enum = AddressTypeEnum("")
	_ codec.Enum = TrackingCategoryStatusEnum("")
	_ codec.Enum = CategoryTypeEnum("")
	_ codec.Enum = SyncStatusStatusEnum("")
	_ codec.Enum = WebhookEventEnum("")
	_ codec.Enum = CurrencyEnum("")
	_ codec.Enum = CountryEnum("")
)
