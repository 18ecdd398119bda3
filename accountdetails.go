package accounting

import (
	"context"
	"net/http"
	"slices"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
	"github.com/florianilch/merge-accounting/internal/requestconfig"
)

// AccountDetailsService describes the linked account the client acts for.
type AccountDetailsService struct {
	Options []RequestOption
}

// NewAccountDetailsService applies opts to each request, after the client's.
func NewAccountDetailsService(opts ...RequestOption) AccountDetailsService {
	return AccountDetailsService{Options: opts}
}

// Get returns the details of the linked account selected by the account
// token.
func (r *AccountDetailsService) Get(ctx context.Context, opts ...RequestOption) (res *AccountDetails, err error) {
	opts = slices.Concat(r.Options, opts)
	err = requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "account-details", nil, &res, opts...)
	return
}

// AccountDetails describes a linked account.
type AccountDetails struct {
	codec.Extras
	ID                      nullable.Nullable[string] `json:"id,omitempty"`
	Integration             nullable.Nullable[string] `json:"integration,omitempty"`
	IntegrationSlug         nullable.Nullable[string] `json:"integration_slug,omitempty"`
	Category                nullable.Nullable[string] `json:"category,omitempty"`
	EndUserOriginID         nullable.Nullable[string] `json:"end_user_origin_id,omitempty"`
	EndUserOrganizationName nullable.Nullable[string] `json:"end_user_organization_name,omitempty"`
	EndUserEmailAddress     nullable.Nullable[string] `json:"end_user_email_address,omitempty"`
	Status                  nullable.Nullable[string] `json:"status,omitempty"`
	WebhookListenerURL      nullable.Nullable[string] `json:"webhook_listener_url,omitempty"`
	IsDuplicate             nullable.Nullable[bool]   `json:"is_duplicate,omitempty"`
	AccountType             nullable.Nullable[string] `json:"account_type,omitempty"`
}

func (r AccountDetails) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *AccountDetails) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
