package accounting

import (
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// PaymentMethodService lists and retrieves payment methods.
type PaymentMethodService struct {
	readService[PaymentMethod, ListParams]
}

// NewPaymentMethodService applies opts to each request, after the client's.
func NewPaymentMethodService(opts ...RequestOption) PaymentMethodService {
	return PaymentMethodService{readService[PaymentMethod, ListParams]{Options: opts, path: "payment-methods"}}
}

// PaymentMethod is a way a payment can be made, such as a card or a bank
// transfer.
type PaymentMethod struct {
	codec.Extras
	Record
	MethodType      MethodTypeEnum          `json:"method_type"`
	Name            string                  `json:"name"`
	IsActive        nullable.Nullable[bool] `json:"is_active,omitempty"`
	RemoteUpdatedAt *time.Time              `json:"remote_updated_at,omitempty"`
}

func (r PaymentMethod) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *PaymentMethod) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
