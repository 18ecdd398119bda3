package accounting

import (
	"encoding/json"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/florianilch/merge-accounting/codec"
)

// Record is the header every common model object starts with. It is embedded
// and its fields are flattened into the enclosing object.
type Record struct {
	// Merge's ID for the object.
	ID nullable.Nullable[string] `json:"id,omitempty"`
	// The third-party API ID of the matching object.
	RemoteID nullable.Nullable[string] `json:"remote_id,omitempty"`
	// When this object was created by Merge.
	CreatedAt *time.Time `json:"created_at,omitempty"`
	// When one or more of this object's fields were last changed by Merge.
	ModifiedAt *time.Time `json:"modified_at,omitempty"`
	// Whether the object was deleted in the third-party platform.
	RemoteWasDeleted nullable.Nullable[bool] `json:"remote_was_deleted,omitempty"`
	FieldMappings    map[string]any          `json:"field_mappings,omitempty"`
	RemoteData       []RemoteData            `json:"remote_data,omitempty"`
}

// GetID returns the object's ID, or "" when none was sent.
func (r Record) GetID() string {
	id, _ := r.ID.Get()
	return id
}

// IsRemoteDeleted reports whether the payload marked the object deleted in
// the third-party platform.
func (r Record) IsRemoteDeleted() bool {
	deleted, _ := r.RemoteWasDeleted.Get()
	return deleted
}

// Header returns the record header. It is promoted to every object that
// embeds Record.
func (r Record) Header() Record {
	return r
}

// Object is implemented by every common model object.
type Object interface {
	Header() Record
}

// RemoteData is a raw third-party payload attached to an object when the
// request asked for include_remote_data.
type RemoteData struct {
	codec.Extras
	Path string          `json:"path"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (r RemoteData) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *RemoteData) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// ValidationProblemSource points at the request field a problem is about.
type ValidationProblemSource struct {
	codec.Extras
	Pointer string `json:"pointer"`
}

func (r ValidationProblemSource) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *ValidationProblemSource) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}

// ErrorValidationProblem is a blocking problem Merge found in a write request.
type ErrorValidationProblem struct {
	codec.Extras
	SourceField *ValidationProblemSource `json:"source,omitempty"`
	Title       string                   `json:"title"`
	Detail      string                   `json:"detail"`
	ProblemType string                   `json:"problem_type"`
}

func (r ErrorValidationProblem) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *ErrorValidationProblem) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}

// WarningValidationProblem is a non-blocking problem Merge found in a write
// request.
type WarningValidationProblem struct {
	codec.Extras
	SourceField *ValidationProblemSource `json:"source,omitempty"`
	Title       string                   `json:"title"`
	Detail      string                   `json:"detail"`
	ProblemType string                   `json:"problem_type"`
}

func (r WarningValidationProblem) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *WarningValidationProblem) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}

// DebugModeLog describes a third-party call Merge made while serving a write
// request in debug mode.
type DebugModeLog struct {
	codec.Extras
	LogID         string                `json:"log_id"`
	DashboardView string                `json:"dashboard_view"`
	LogSummary    *DebugModelLogSummary `json:"log_summary"`
}

func (r DebugModeLog) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *DebugModeLog) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// DebugModelLogSummary is the request line and response status of a logged
// third-party call.
type DebugModelLogSummary struct {
	codec.Extras
	URL        string `json:"url"`
	Method     string `json:"method"`
	StatusCode int    `json:"status_code"`
}

func (r DebugModelLogSummary) MarshalJSON() ([]byte, error) { return codec.Marshal(r) }
func (r *DebugModelLogSummary) UnmarshalJSON(data []byte) error {
	return codec.Unmarshal(data, r)
}

// ObjectResponse is the envelope write endpoints answer with.
type ObjectResponse[T any] struct {
	codec.Extras
	Model    *T                         `json:"model"`
	Warnings []WarningValidationProblem `json:"warnings"`
	Errors   []ErrorValidationProblem   `json:"errors"`
	Logs     []DebugModeLog             `json:"logs,omitempty"`
}

func (r ObjectResponse[T]) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *ObjectResponse[T]) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

type (
	InvoiceResponse = ObjectResponse[Invoice]
	PaymentResponse = ObjectResponse[Payment]
	ContactResponse = ObjectResponse[Contact]
)

// MetaResponse describes the fields a linked account accepts for a write.
type MetaResponse struct {
	codec.Extras
	RequestSchema                  map[string]any `json:"request_schema"`
	RemoteFieldClasses             map[string]any `json:"remote_field_classes,omitempty"`
	HasConditionalFields           bool           `json:"has_conditional_fields"`
	HasRequiredLinkedAccountParams bool           `json:"has_required_linked_account_params"`
}

func (r MetaResponse) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *MetaResponse) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }
