package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

var (
	invoiceDescriptor        = billomat.NewDescriptor("Invoice")
	invoiceItemDescriptor    = billomat.NewSubDescriptor(invoiceDescriptor, "InvoiceItem")
	invoicePaymentDescriptor = billomat.NewSubDescriptor(invoiceDescriptor, "InvoicePayment")
)

func newInvoiceFake(t *testing.T) (*Client, *FakeBillomat, int) {
	t.Helper()

	client, fake := newFakeClient(t)
	fake.Register(invoiceDescriptor, invoiceItemDescriptor, invoicePaymentDescriptor)

	id := fake.Seed(invoiceDescriptor, map[string]interface{}{
		"client_id":     7,
		"status":        "DRAFT",
		"payment_types": "CASH,BANK_TRANSFER",
		"total_gross":   "119.00",
	})

	return client, fake, id
}

func TestInvoicesClient_Get(t *testing.T) {
	t.Parallel()

	client, _, id := newInvoiceFake(t)

	invoice, found, err := client.Invoices().Get(context.Background(), id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 7, invoice.ClientID)
	assert.Equal(t, billomat.InvoiceStatus("DRAFT"), invoice.Status)
	assert.InDelta(t, 119.0, invoice.TotalGross, 0.001)
	assert.True(t, invoice.PaymentTypes.Contains(billomat.PaymentBankTransfer))
}

func TestInvoicesClient_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		run    func(ctx context.Context, client *Client, id int) error
		method string
		action string
		body   string
	}{
		{
			name: "complete with default template",
			run: func(ctx context.Context, client *Client, id int) error {
				return client.Invoices().Complete(ctx, id, 0)
			},
			method: http.MethodPut,
			action: "complete",
			body:   `{"complete":{}}`,
		},
		{
			name: "complete with template",
			run: func(ctx context.Context, client *Client, id int) error {
				return client.Invoices().Complete(ctx, id, 12)
			},
			method: http.MethodPut,
			action: "complete",
			body:   `{"complete":{"template_id":12}}`,
		},
		{
			name: "cancel",
			run: func(ctx context.Context, client *Client, id int) error {
				return client.Invoices().Cancel(ctx, id)
			},
			method: http.MethodPut,
			action: "cancel",
		},
		{
			name: "uncancel",
			run: func(ctx context.Context, client *Client, id int) error {
				return client.Invoices().Uncancel(ctx, id)
			},
			method: http.MethodPut,
			action: "uncancel",
		},
		{
			name: "email",
			run: func(ctx context.Context, client *Client, id int) error {
				return client.Invoices().SendEmail(ctx, id, &billomat.Email{
					Subject:    "Your invoice",
					Recipients: &billomat.EmailRecipients{To: []string{"customer@example.test"}},
				})
			},
			method: http.MethodPost,
			action: "email",
			body:   `{"email":{"recipients":{"to":["customer@example.test"]},"subject":"Your invoice"}}`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, fake, id := newInvoiceFake(t)

			require.NoError(t, testCase.run(context.Background(), client, id))

			requests := fake.Requests()
			require.Len(t, requests, 1)
			assert.Equal(t, testCase.method, requests[0].Method)
			assert.Equal(t, "/api/invoices/"+itoa(id)+"/"+testCase.action, requests[0].Path)

			if testCase.body != "" {
				assert.JSONEq(t, testCase.body, string(requests[0].Body))
			} else {
				assert.Empty(t, requests[0].Body)
			}
		})
	}
}

func TestInvoicesClient_ActionsRequireID(t *testing.T) {
	t.Parallel()

	client, fake, _ := newInvoiceFake(t)
	ctx := context.Background()

	assert.Error(t, client.Invoices().Complete(ctx, 0, 0))
	assert.Error(t, client.Invoices().Cancel(ctx, 0))
	assert.Error(t, client.Invoices().SendEmail(ctx, 0, nil))

	_, err := client.Invoices().PDF(ctx, 0)
	require.Error(t, err)

	invalid := &billomat.InvalidStateError{}
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, fake.RequestCount())
}

func TestInvoicesClient_ActionOnMissingInvoice(t *testing.T) {
	t.Parallel()

	client, _, _ := newInvoiceFake(t)

	err := client.Invoices().Complete(context.Background(), 999, 0)
	require.Error(t, err)
	assert.True(t, billomat.IsNotFound(err))
}

func TestInvoicesClient_PDF(t *testing.T) {
	t.Parallel()

	client, fake, id := newInvoiceFake(t)
	content := []byte("%PDF-1.4 fake")

	fake.SetSingleton("/api/invoices/"+itoa(id)+"/pdf", `{"pdf":{"id":"3","created":"2026-01-02T10:00:00+01:00",`+
		`"filename":"RE-1.pdf","mimetype":"application/pdf","filesize":"13","invoice_id":"`+itoa(id)+`",`+
		`"base64file":"`+base64.StdEncoding.EncodeToString(content)+`"}}`)

	pdf, err := client.Invoices().PDF(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "RE-1.pdf", pdf.Filename)
	assert.Equal(t, 13, pdf.Filesize)
	assert.Equal(t, id, pdf.InvoiceID)
	assert.Equal(t, content, pdf.Content)
}

func TestInvoicesClient_PDFInvalidPayload(t *testing.T) {
	t.Parallel()

	client, fake, id := newInvoiceFake(t)
	fake.SetSingleton("/api/invoices/"+itoa(id)+"/pdf", `{"pdf":{"base64file":"***"}}`)

	_, err := client.Invoices().PDF(context.Background(), id)
	require.Error(t, err)

	decodeErr := &billomat.DecodeError{}
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "base64file", decodeErr.Field)
}

func TestInvoicesClient_ItemLifecycle(t *testing.T) {
	t.Parallel()

	client, fake, id := newInvoiceFake(t)
	ctx := context.Background()
	items := client.Invoices().Items()

	taxRate := 19.0
	item := &billomat.Item{
		Owned:     billomat.Owned{OwnerID: id},
		Title:     "Consulting",
		Quantity:  2,
		UnitPrice: 50,
		TaxRate:   &taxRate,
	}

	require.NoError(t, items.Create(ctx, item))
	assert.Positive(t, item.ID)

	requests := fake.Requests()
	assert.Equal(t, "/api/invoices/"+itoa(id)+"/items", requests[0].Path)
	assert.JSONEq(t, `{"invoice-item":{"invoice_id":`+itoa(id)+`,"quantity":2,"tax_rate":19,"title":"Consulting","unit_price":50}}`,
		string(requests[0].Body))

	item.Quantity = 3
	require.NoError(t, items.Update(ctx, item))

	fetched, found, err := items.Get(ctx, id, item.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 3.0, fetched.Quantity, 0.001)
	require.NotNil(t, fetched.TaxRate)
	assert.InDelta(t, 19.0, *fetched.TaxRate, 0.001)
	assert.Equal(t, id, fetched.OwnerID)

	require.NoError(t, items.Delete(ctx, id, item.ID))

	_, found, err = items.Get(ctx, id, item.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvoicesClient_Payments(t *testing.T) {
	t.Parallel()

	client, fake, id := newInvoiceFake(t)
	ctx := context.Background()

	paid := true
	payment := &billomat.Payment{
		Owned:             billomat.Owned{OwnerID: id},
		Date:              billomat.NewDate(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)),
		Amount:            119,
		Type:              billomat.PaymentBankTransfer,
		MarkInvoiceAsPaid: &paid,
	}

	require.NoError(t, client.Invoices().Payments().Create(ctx, payment))

	requests := fake.Requests()
	assert.Equal(t, "/api/invoices/"+itoa(id)+"/payments", requests[0].Path)
	assert.JSONEq(t, `{"invoice-payment":{"amount":119,"date":"2026-03-01","invoice_id":`+itoa(id)+
		`,"mark_invoice_as_paid":true,"type":"BANK_TRANSFER"}}`, string(requests[0].Body))

	payments, err := client.Invoices().Payments().All(ctx, id, nil)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	require.NotNil(t, payments[0].Date)
	assert.Equal(t, "2026-03-01", payments[0].Date.String())
	require.NotNil(t, payments[0].MarkInvoiceAsPaid)
	assert.True(t, *payments[0].MarkInvoiceAsPaid)
}

func TestInvoicesClient_CompleteChecksIDFirst(t *testing.T) {
	t.Parallel()

	client := New(billomat.NewConfig("", ""))

	err := client.Invoices().Complete(context.Background(), 0, 0)
	require.Error(t, err)

	invalid := &billomat.InvalidStateError{}
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 0, client.Configuration().Builds())
}
