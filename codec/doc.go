// Package codec converts between JSON and the typed models of the Merge
// Accounting API.
//
// A model is any struct that embeds [Extras]. Its json struct tags are the
// only schema the codec needs: each model type is reflected once into a table
// of field descriptors (JSON key, declared kind, required or optional) and the
// table is cached for the lifetime of the process.
//
// # Optional fields
//
// A field whose json tag carries omitempty is optional. Optional fields are
// never emitted when they were not provided. Scalars and enums use
// [github.com/oapi-codegen/nullable] to tell "not provided" apart from an
// explicit null:
//
//	type Contact struct {
//	    Name         nullable.Nullable[string] `json:"name,omitempty"`
//	    EmailAddress nullable.Nullable[string] `json:"email_address,omitempty"`
//	    Addresses    []Address                 `json:"addresses,omitempty"`
//	    Company      *Company                  `json:"company,omitempty"`
//	    codec.Extras
//	}
//
// Date-times (*time.Time), nested models (*T) and lists ([]T) treat null the
// same as absence: the field stays nil. An optional field of any other plain
// type cannot tell a sent zero value from absence, so the schema rejects it.
// A required plain value rejects null unless decoding is [Lenient].
//
// Decoded date-times that are not changed are encoded back in the layout they
// arrived in.
//
// # Extras
//
// Keys that the model does not declare are preserved verbatim in the
// embedded [Extras]. [Marshal] emits declared fields only; [MarshalLossless]
// merges the extras back in, with declared fields winning on collision.
//
// # Validation
//
// [Validate] checks a typed instance (required values, enum membership,
// nested models). [ValidateRaw] checks an untyped JSON object against a
// model's field table and is what [DecodeOneOf] and [Expandable] use to pick
// between candidate shapes. Both stop at the first violation.
//
// # Concurrency
//
// All functions are safe for concurrent use. Model values are plain data and
// follow the usual rules for concurrent reads and writes.
package codec
