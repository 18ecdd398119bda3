package accounting_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accounting "github.com/florianilch/merge-accounting"
	"github.com/florianilch/merge-accounting/codec"
)

func TestPaymentMethod_RoundTrip(t *testing.T) {
	in := `{"method_type":"ACH","name":"Wire"}`

	var pm accounting.PaymentMethod
	require.NoError(t, json.Unmarshal([]byte(in), &pm))

	assert.Equal(t, accounting.MethodTypeEnumACH, pm.MethodType)
	assert.Equal(t, "Wire", pm.Name)
	assert.False(t, pm.IsActive.IsSpecified())
	assert.Nil(t, pm.RemoteUpdatedAt)
	assert.False(t, pm.ID.IsSpecified())
	assert.Empty(t, pm.ExtraKeys())

	out, err := json.Marshal(pm)
	require.NoError(t, err)
	assert.Equal(t, in, string(out))
}

func TestPaymentMethod_MissingRequiredField(t *testing.T) {
	var pm accounting.PaymentMethod
	err := json.Unmarshal([]byte(`{"name":"Wire"}`), &pm)

	var verr *codec.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "PaymentMethod", verr.Model)
	assert.Equal(t, "method_type", verr.Field)
}

func TestUnexpectedField_KeptAsExtra(t *testing.T) {
	in := []byte(`{"name":"Wire","unexpected_field":42}`)

	t.Run("optional fields only", func(t *testing.T) {
		var tc accounting.TrackingCategory
		require.NoError(t, json.Unmarshal(in, &tc))

		raw, ok := tc.Extra("unexpected_field")
		require.True(t, ok)
		assert.JSONEq(t, `42`, string(raw))

		out, err := json.Marshal(tc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Wire"}`, string(out))

		lossless, err := codec.MarshalLossless(tc)
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Wire","unexpected_field":42}`, string(lossless))
	})

	t.Run("lenient payment method", func(t *testing.T) {
		var pm accounting.PaymentMethod
		require.NoError(t, codec.Unmarshal(in, &pm, codec.Lenient()))

		assert.Equal(t, []string{"unexpected_field"}, pm.ExtraKeys())
		out, err := json.Marshal(pm)
		require.NoError(t, err)
		assert.NotContains(t, string(out), "unexpected_field")
	})
}

func TestEmployee_UnknownStatus(t *testing.T) {
	in := `{"id":"e1","first_name":"Ada","status":"ON_LEAVE"}`

	var e accounting.Employee
	require.NoError(t, json.Unmarshal([]byte(in), &e))

	status, err := e.Status.Get()
	require.NoError(t, err)
	assert.Equal(t, accounting.EmployeeStatusEnum("ON_LEAVE"), status)
	assert.False(t, status.IsKnown())

	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	err = codec.Validate(e)
	var verr *codec.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
	assert.Equal(t, `"ON_LEAVE"`, verr.Got)
	assert.Contains(t, verr.Expected, "ACTIVE")

	e.Status = nullable.NewNullableWithValue(accounting.EmployeeStatusEnumActive)
	assert.NoError(t, codec.Validate(e))
}

func TestEmployee_FullName(t *testing.T) {
	tests := []struct {
		name  string
		first nullable.Nullable[string]
		last  nullable.Nullable[string]
		want  string
	}{
		{"both", nullable.NewNullableWithValue("Ada"), nullable.NewNullableWithValue("Lovelace"), "Ada Lovelace"},
		{"first only", nullable.NewNullableWithValue("Ada"), nullable.NewNullNullable[string](), "Ada"},
		{"last only", nil, nullable.NewNullableWithValue("Lovelace"), "Lovelace"},
		{"none", nil, nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := accounting.Employee{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, e.FullName())
		})
	}
}

func TestInvoice_MalformedDate(t *testing.T) {
	var inv accounting.Invoice
	err := json.Unmarshal([]byte(`{"id":"i1","issue_date":"31/12/2024"}`), &inv)

	var ferr *codec.FormatError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "Invoice", ferr.Model)
	assert.Equal(t, "issue_date", ferr.Field)
	assert.Equal(t, "31/12/2024", ferr.Value)
}

func TestInvoice_Decode(t *testing.T) {
	in := `{
		"id": "i1",
		"remote_id": null,
		"type": "ACCOUNTS_RECEIVABLE",
		"contact": {"id": "c1", "name": "Acme", "is_customer": true},
		"issue_date": "2024-03-01T00:00:00Z",
		"currency": "EUR",
		"total_amount": 119.5,
		"payments": ["p1", "p2"],
		"line_items": [{"id": "l1", "unit_price": 100, "account": "a1"}],
		"remote_data": [{"path": "/invoices", "data": {"Id": 7}}],
		"x_custom": true
	}`

	var inv accounting.Invoice
	require.NoError(t, json.Unmarshal([]byte(in), &inv))

	assert.Equal(t, "i1", inv.Header().GetID())
	assert.True(t, inv.RemoteID.IsNull())

	contact, ok := inv.Contact.Object()
	require.True(t, ok)
	name, _ := contact.Name.Get()
	assert.Equal(t, "Acme", name)

	issued, err := inv.IssueDate.Get()
	require.NoError(t, err)
	assert.True(t, issued.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))

	require.Len(t, inv.Payments, 2)
	id, ok := inv.Payments[1].ID()
	require.True(t, ok)
	assert.Equal(t, "p2", id)

	require.Len(t, inv.LineItems, 1)
	account, ok := inv.LineItems[0].Account.ID()
	require.True(t, ok)
	assert.Equal(t, "a1", account)

	require.Len(t, inv.RemoteData, 1)
	assert.JSONEq(t, `{"Id":7}`, string(inv.RemoteData[0].Data))
	assert.Equal(t, []string{"x_custom"}, inv.ExtraKeys())

	assert.NoError(t, codec.Validate(inv))
}

func TestCurrency_UnknownCodeRoundTrips(t *testing.T) {
	in := `{"currency":"XBT","name":"Crypto float"}`

	var a accounting.Account
	require.NoError(t, json.Unmarshal([]byte(in), &a))

	cur, err := a.Currency.Get()
	require.NoError(t, err)
	assert.False(t, cur.IsKnown())

	out, err := json.Marshal(a)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))

	var verr *codec.ValidationError
	require.ErrorAs(t, codec.Validate(a), &verr)
	assert.Equal(t, "currency", verr.Field)
}

func TestWebhookEventEnum_Model(t *testing.T) {
	assert.Equal(t, "Invoice", accounting.WebhookEventEnumInvoiceAdded.Model())
	assert.Equal(t, "LinkedAccount", accounting.WebhookEventEnum("LinkedAccount.sync_completed").Model())
	assert.Equal(t, "ping", accounting.WebhookEventEnum("ping").Model())
}

func TestPatchedPaymentRequest_ExplicitNull(t *testing.T) {
	body := accounting.PatchedPaymentRequest{
		Currency:         nullable.NewNullableWithValue(accounting.CurrencyEnumUSD),
		AccountingPeriod: nullable.NewNullNullable[string](),
	}

	out, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD","accounting_period":null}`, string(out))
}

func TestRecord_KeepsSentZeroValues(t *testing.T) {
	in := `{"id":"a1","remote_was_deleted":false,"name":"Cash"}`

	var inv accounting.Invoice
	require.NoError(t, json.Unmarshal([]byte(in), &inv))
	assert.Equal(t, "a1", inv.GetID())
	assert.True(t, inv.RemoteWasDeleted.IsSpecified())
	assert.False(t, inv.IsRemoteDeleted())

	out, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a1","remote_was_deleted":false}`, string(out))

	lossless, err := codec.MarshalLossless(inv)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(lossless))

	t.Run("empty strings", func(t *testing.T) {
		in := `{"id":"","integration":"","status":"","is_duplicate":false}`
		var details accounting.AccountDetails
		require.NoError(t, json.Unmarshal([]byte(in), &details))

		out, err := json.Marshal(details)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	})

	t.Run("sync status", func(t *testing.T) {
		in := `{"model_name":"Invoice","model_id":"accounting.Invoice","last_sync_result":"","status":"SYNCING","is_initial_sync":false}`
		var status accounting.SyncStatus
		require.NoError(t, json.Unmarshal([]byte(in), &status))

		out, err := json.Marshal(status)
		require.NoError(t, err)
		assert.JSONEq(t, in, string(out))
	})
}

// withExtra adds an undeclared vendor key to a JSON object.
func withExtra(payload string) string {
	payload = strings.TrimSpace(payload)
	return strings.TrimSuffix(payload, "}") + `,"x_vendor":{"source":"sandbox","rev":3}}`
}

func TestModels_RoundTripMergePayloads(t *testing.T) {
	const fieldMappings = `"field_mappings":{"organization_defined_targets":{"custom_key":"custom_value"},"linked_account_defined_targets":{}}`

	tests := []struct {
		name     string
		newModel func() any
		payload  string
	}{
		{
			name:     "Account",
			newModel: func() any { return new(accounting.Account) },
			payload: `{"id":"0958cbc6-6040-430a-848e-aafacbadf4ae","remote_id":"11","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00.000000Z",
				"name":"Cash","description":"Cash","classification":"ASSET","type":"Asset","account_type":"BANK","status":"ACTIVE",
				"current_balance":0,"currency":"USD","account_number":"X12Y9AB","parent_account":null,
				"company":"595c8f97-2ac4-45b7-b000-41bdf43240b5","remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "Contact",
			newModel: func() any { return new(accounting.Contact) },
			payload: `{"id":"c6f3c8a3-2c6a-4a0e-9bb2-7a1f4f1e6c1e","remote_id":"21","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"name":"Gil Feig's pickleball store","is_supplier":true,"is_customer":false,"email_address":"pickleball@merge.dev",
				"tax_number":"12-3456789","status":"ACTIVE","currency":"USD","remote_updated_at":"2020-03-31T00:00:00Z",
				"company":null,"addresses":["ed7b9a4e-1d2a-4b51-9c0e-3f2e1d6a8b7c"],
				"phone_numbers":[{"created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z","number":"+3198675309","type":"Mobile"}],
				"remote_was_deleted":false,` + fieldMappings + `,"remote_data":[{"path":"/contacts","data":{"Id":21}}]}`,
		},
		{
			name:     "Invoice",
			newModel: func() any { return new(accounting.Invoice) },
			payload: `{"id":"9871b4a9-f5d2-4f3b-a66b-dfedbed42c46","remote_id":"990110","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"type":"ACCOUNTS_RECEIVABLE","contact":"022a2bef-57e5-4def-8ed2-7c41bd9a5ed8","number":"AIQ12546",
				"issue_date":"2020-03-31","due_date":"2020-04-15T00:00:00Z","paid_on_date":null,"memo":"Weekly Payment",
				"company":"595c8f97-2ac4-45b7-b000-41bdf43240b5","employee":"f7c8b9a0-1b2c-4d3e-8f9a-0b1c2d3e4f5a","currency":"USD",
				"exchange_rate":"2.9","total_discount":0,"sub_total":100,"status":"PAID","total_tax_amount":5,"total_amount":105,"balance":0,
				"remote_updated_at":"2020-04-01T00:00:00Z","tracking_categories":["b38c59b0-a9d7-4740-b1ee-5436c6751e3d"],
				"payments":["b26fd49a-cbae-470a-a8f8-bcbc119e0390"],
				"line_items":[{"id":"2f5e1a3b-9c8d-4e7f-a6b5-c4d3e2f1a0b9","remote_id":"8765432","description":"Pickleball lessons",
					"unit_price":50,"quantity":2,"total_amount":100,"currency":"USD","exchange_rate":"2.9","item":null,
					"account":"cd0f32d4-3e4d-4d6e-9d8d-2b3d8e4c8b2f","tracking_categories":[],"company":null,"remote_was_deleted":false}],
				"remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "Payment",
			newModel: func() any { return new(accounting.Payment) },
			payload: `{"id":"b26fd49a-cbae-470a-a8f8-bcbc119e0390","remote_id":"987300","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"transaction_date":"2020-03-31T00:00:00Z","contact":"4e5d6c7b-8a9b-4c0d-9e1f-2a3b4c5d6e7f","account":"d6e687d6-0c36-48a1-8114-35324b5cb38f",
				"currency":"USD","exchange_rate":"2.9","company":"595c8f97-2ac4-45b7-b000-41bdf43240b5",
				"total_amount":50,"type":"ACCOUNTS_RECEIVABLE","tracking_categories":[],"accounting_period":null,
				"applied_to_lines":[{"remote_id":"8492","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
					"applied_amount":"50.00","applied_date":"2020-03-31","related_object_id":"9871b4a9-f5d2-4f3b-a66b-dfedbed42c46",
					"related_object_type":"INVOICE","remote_was_deleted":false}],
				"remote_updated_at":"2020-03-31T00:00:00Z","remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "PaymentMethod",
			newModel: func() any { return new(accounting.PaymentMethod) },
			payload: `{"id":"a4e2c1b0-9f8e-4d7c-b6a5-4f3e2d1c0b9a","remote_id":"12","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"method_type":"CREDIT_CARD","name":"Business Visa","is_active":false,"remote_updated_at":"2024-05-02T11:59:00.000000Z",
				"remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "TrackingCategory",
			newModel: func() any { return new(accounting.TrackingCategory) },
			payload: `{"id":"b38c59b0-a9d7-4740-b1ee-5436c6751e3d","remote_id":"948201","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"name":"Marketing","status":"ACTIVE","category_type":"DEPARTMENT","parent_category":null,
				"company":"595c8f97-2ac4-45b7-b000-41bdf43240b5","remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "Employee",
			newModel: func() any { return new(accounting.Employee) },
			payload: `{"id":"f7c8b9a0-1b2c-4d3e-8f9a-0b1c2d3e4f5a","remote_id":"19202938","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"employee_number":"","company":"595c8f97-2ac4-45b7-b000-41bdf43240b5","first_name":"Greg","last_name":"Hirsch",
				"is_contractor":false,"employee_email":"greg@merge.dev","status":"ACTIVE","remote_was_deleted":false,` + fieldMappings + `}`,
		},
		{
			name:     "CompanyInfo",
			newModel: func() any { return new(accounting.CompanyInfo) },
			payload: `{"id":"595c8f97-2ac4-45b7-b000-41bdf43240b5","remote_id":"1234","created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z",
				"name":"Merge Pickleball Company","legal_name":"Merge Pickleball Company, Inc.","tax_number":"12-3456789",
				"fiscal_year_end_month":12,"fiscal_year_end_day":31,"currency":"USD","remote_created_at":"2021-09-01",
				"urls":["https://merge.dev"],
				"addresses":[{"created_at":"2021-09-15T00:00:00Z","modified_at":"2021-10-16T00:00:00Z","type":"BILLING",
					"street_1":"2920 Broadway","street_2":"","city":"New York","state":"NY","country_subdivision":"NY","country":"US","zip_code":"10027"}],
				"phone_numbers":[],"remote_was_deleted":false,` + fieldMappings + `}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := withExtra(tt.payload)
			model := tt.newModel()
			require.NoError(t, json.Unmarshal([]byte(in), model))

			out, err := json.Marshal(model)
			require.NoError(t, err)
			assert.JSONEq(t, tt.payload, string(out))

			lossless, err := codec.MarshalLossless(model)
			require.NoError(t, err)
			assert.JSONEq(t, in, string(lossless))

			obj, ok := model.(accounting.Object)
			require.True(t, ok)
			assert.NotEmpty(t, obj.Header().GetID())
			assert.False(t, obj.Header().IsRemoteDeleted())
		})
	}
}
