package accounting

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ListParams are the query parameters every list endpoint accepts.
type ListParams struct {
	// Cursor is the page to fetch, as returned in Paginated.Next.
	Cursor string
	// PageSize is the number of results per page, 1 to 100.
	PageSize       int `validate:"omitempty,min=1,max=100"`
	CreatedAfter   *time.Time
	CreatedBefore  *time.Time
	ModifiedAfter  *time.Time
	ModifiedBefore *time.Time
	// RemoteID filters on the third-party ID.
	RemoteID string
	// Expand names related objects to return in full instead of by ID.
	Expand             []string `validate:"dive,required"`
	IncludeDeletedData bool
	IncludeRemoteData  bool
}

func (p ListParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	p.addTo(&q)
	return q.values, q.err
}

func (p ListParams) addTo(q *query) {
	q.add("cursor", p.Cursor)
	q.add("page_size", p.PageSize)
	q.addTime("created_after", p.CreatedAfter)
	q.addTime("created_before", p.CreatedBefore)
	q.addTime("modified_after", p.ModifiedAfter)
	q.addTime("modified_before", p.ModifiedBefore)
	q.add("remote_id", p.RemoteID)
	q.addList("expand", p.Expand)
	q.add("include_deleted_data", p.IncludeDeletedData)
	q.add("include_remote_data", p.IncludeRemoteData)
}

// GetParams are the query parameters every retrieve endpoint accepts.
type GetParams struct {
	Expand            []string `validate:"dive,required"`
	IncludeRemoteData bool
}

func (p GetParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	q.addList("expand", p.Expand)
	q.add("include_remote_data", p.IncludeRemoteData)
	return q.values, q.err
}

// InvoiceListParams filter the invoice list.
type InvoiceListParams struct {
	ListParams
	ContactID       string
	Type            InvoiceTypeEnum
	IssueDateAfter  *time.Time
	IssueDateBefore *time.Time
}

func (p InvoiceListParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	p.addTo(&q)
	q.add("contact_id", p.ContactID)
	q.add("type", string(p.Type))
	q.addTime("issue_date_after", p.IssueDateAfter)
	q.addTime("issue_date_before", p.IssueDateBefore)
	return q.values, q.err
}

// PaymentListParams filter the payment list.
type PaymentListParams struct {
	ListParams
	AccountID string
	ContactID string
}

func (p PaymentListParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	p.addTo(&q)
	q.add("account_id", p.AccountID)
	q.add("contact_id", p.ContactID)
	return q.values, q.err
}

// ContactListParams filter the contact list.
type ContactListParams struct {
	ListParams
	Name         string
	EmailAddress string `validate:"omitempty,email"`
	IsCustomer   *bool
	IsSupplier   *bool
}

func (p ContactListParams) URLQuery() (url.Values, error) {
	if err := validateParams(p); err != nil {
		return nil, err
	}
	var q query
	p.addTo(&q)
	q.add("name", p.Name)
	q.add("email_address", p.EmailAddress)
	if p.IsCustomer != nil {
		q.add("is_customer", fmt.Sprint(*p.IsCustomer))
	}
	if p.IsSupplier != nil {
		q.add("is_supplier", fmt.Sprint(*p.IsSupplier))
	}
	return q.values, q.err
}

func validateParams(p any) error {
	err := validate.Struct(p)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag()+paramSuffix(fe.Param()), fe.Value()))
		}
		return fmt.Errorf("invalid parameters: %s", strings.Join(msgs, "; "))
	}
	return err
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

// query renders parameters in OpenAPI form style. Zero values are skipped.
type query struct {
	values url.Values
	err    error
}

func (q *query) add(name string, value any) {
	switch v := value.(type) {
	case string:
		if v == "" {
			return
		}
	case int:
		if v == 0 {
			return
		}
	case bool:
		if !v {
			return
		}
	}
	q.style(name, value, true)
}

func (q *query) addTime(name string, t *time.Time) {
	if t == nil {
		return
	}
	q.style(name, t.UTC(), true)
}

// addList renders lists comma-separated, as Merge expects for expand.
func (q *query) addList(name string, values []string) {
	if len(values) == 0 {
		return
	}
	q.style(name, values, false)
}

func (q *query) style(name string, value any, explode bool) {
	if q.err != nil {
		return
	}
	styled, err := runtime.StyleParamWithLocation("form", explode, name, runtime.ParamLocationQuery, value)
	if err != nil {
		q.err = fmt.Errorf("rendering query parameter %s: %w", name, err)
		return
	}
	parsed, err := url.ParseQuery(styled)
	if err != nil {
		q.err = fmt.Errorf("rendering query parameter %s: %w", name, err)
		return
	}
	if q.values == nil {
		q.values = url.Values{}
	}
	for k, vs := range parsed {
		q.values[k] = append(q.values[k], vs...)
	}
}
