package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/oapi-codegen/nullable"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/codec"
)

// Hook identifies the subscription a delivery belongs to.
type Hook struct {
	codec.Extras
	ID     nullable.Nullable[string]   `json:"id,omitempty"`
	Event  accounting.WebhookEventEnum `json:"event"`
	Target nullable.Nullable[string]   `json:"target,omitempty"`
}

func (r Hook) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Hook) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// Envelope is the body Merge posts to a webhook receiver.
type Envelope struct {
	codec.Extras
	Hook          Hook                       `json:"hook"`
	LinkedAccount *accounting.AccountDetails `json:"linked_account,omitempty"`
	Data          json.RawMessage            `json:"data,omitempty"`
}

func (r Envelope) MarshalJSON() ([]byte, error)     { return codec.Marshal(r) }
func (r *Envelope) UnmarshalJSON(data []byte) error { return codec.Unmarshal(data, r) }

// Event is a decoded delivery. Object holds the typed payload of common model
// events and is nil when the payload is not a common model. LinkedAccount
// events carry the account in Account.
type Event struct {
	Envelope
	Object  accounting.Object
	Account *accounting.AccountDetails
}

// DecodeEvent decodes a delivery body. The payload type is chosen by the
// model named in the event; payloads of unknown events are matched against
// the common models in turn.
func DecodeEvent(body []byte) (*Event, error) {
	var ev Event
	if err := codec.Unmarshal(body, &ev.Envelope); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	if len(ev.Data) == 0 {
		return &ev, nil
	}

	var err error
	switch ev.Hook.Event.Model() {
	case "Invoice":
		ev.Object, err = decodeObject[accounting.Invoice](ev.Data)
	case "Payment":
		ev.Object, err = decodeObject[accounting.Payment](ev.Data)
	case "Contact":
		ev.Object, err = decodeObject[accounting.Contact](ev.Data)
	case "Account":
		ev.Object, err = decodeObject[accounting.Account](ev.Data)
	case "LinkedAccount":
		var details accounting.AccountDetails
		err = codec.Unmarshal(ev.Data, &details)
		ev.Account = &details
	default:
		ev.Object = matchObject(ev.Data)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s payload: %w", ev.Hook.Event, err)
	}
	return &ev, nil
}

func decodeObject[T any, P interface {
	*T
	accounting.Object
}](data []byte) (accounting.Object, error) {
	obj := P(new(T))
	if err := codec.Unmarshal(data, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// matchObject returns the first common model the payload fits, or nil.
func matchObject(data []byte) accounting.Object {
	v, err := codec.DecodeOneOf(data,
		&accounting.Invoice{},
		&accounting.Payment{},
		&accounting.Contact{},
		&accounting.Account{},
	)
	if err != nil {
		return nil
	}
	return v.(accounting.Object)
}
