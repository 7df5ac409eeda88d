package billomat_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

func TestFilter_Set(t *testing.T) {
	t.Parallel()

	filter := billomat.NewFilter().
		Set("name", "ACME").
		Set("tags", "vip", "berlin").
		Set("name", "Globex")

	assert.Equal(t, 2, filter.Len())
	assert.Equal(t, []string{"name", "tags"}, filter.Keys())

	name, ok := filter.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "Globex", name)

	values := filter.Values()
	assert.Equal(t, "vip,berlin", values.Get("tags"))

	filter.Set("tags")
	assert.False(t, filter.Has("tags"))
	assert.Equal(t, []string{"name"}, filter.Keys())

	_, ok = filter.Get("tags")
	assert.False(t, ok)
	require.NoError(t, filter.Err())
}

func TestClientFilter(t *testing.T) {
	t.Parallel()

	filter := billomat.NewClientFilter().
		ByName("ACME").
		ByCountryCode("DE").
		ByTags("vip").
		ByInvoiceID(12)

	require.NoError(t, filter.Err())

	values := filter.Values()
	assert.Equal(t, "ACME", values.Get("name"))
	assert.Equal(t, "DE", values.Get("country_code"))
	assert.Equal(t, "vip", values.Get("tags"))
	assert.Equal(t, "12", values.Get("invoice_id"))

	var query billomat.Query = filter
	assert.Len(t, query.Values(), 4)
}

func TestInvoiceFilter(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, time.January, 1, 15, 30, 0, 0, time.UTC)
	to := time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)

	filter := billomat.NewInvoiceFilter().
		ByStatus(billomat.InvoiceOpen, billomat.InvoiceOverdue).
		ByPaymentType(billomat.PaymentCash).
		ByDateRange(from, to).
		ByInvoiceNumber("RE-1001")

	require.NoError(t, filter.Err())

	values := filter.Values()
	assert.Equal(t, "OPEN,OVERDUE", values.Get("status"))
	assert.Equal(t, "CASH", values.Get("payment_type"))
	assert.Equal(t, "2026-01-01", values.Get("from"))
	assert.Equal(t, "2026-03-31", values.Get("to"))
	assert.Equal(t, "RE-1001", values.Get("invoice_number"))
}

func TestFilter_OpenDateRange(t *testing.T) {
	t.Parallel()

	filter := billomat.NewOfferFilter().ByDateRange(time.Time{}, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, filter.Err())
	assert.False(t, filter.Has("from"))
	assert.True(t, filter.Has("to"))
}

func TestFilter_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		filter billomat.Query
	}{
		{"zero client id", billomat.NewInvoiceFilter().ByClientID(0)},
		{"negative article id", billomat.NewOfferFilter().ByArticleID(-4)},
		{"empty name", billomat.NewClientFilter().ByName("")},
		{"zero date", billomat.NewCreditNoteFilter().ByFrom(time.Time{})},
		{"reversed range", billomat.NewDeliveryNoteFilter().ByDateRange(
			time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
		)},
		{"empty email", billomat.NewUserFilter().ByEmail("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.filter.Err()
			require.ErrorIs(t, err, billomat.ErrInvalidFilter)
			assert.Empty(t, tt.filter.Values())
		})
	}
}

func TestFilter_CollectsEveryError(t *testing.T) {
	t.Parallel()

	filter := billomat.NewArticleFilter().ByTitle("").ByUnitID(0).ByCurrencyCode("EUR")

	err := filter.Err()
	require.ErrorIs(t, err, billomat.ErrInvalidFilter)
	assert.Contains(t, err.Error(), "title")
	assert.Contains(t, err.Error(), "unit_id")
	assert.Equal(t, "EUR", filter.Values().Get("currency_code"))
}

func TestFilter_ZeroValues(t *testing.T) {
	t.Parallel()

	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		build func() billomat.Query
		want  map[string]string
	}{
		{"client", func() billomat.Query {
			return (&billomat.ClientFilter{}).ByTags("vip").ByName("ACME")
		}, map[string]string{"tags": "vip", "name": "ACME"}},
		{"article", func() billomat.Query {
			return (&billomat.ArticleFilter{}).ByTags("service").ByTitle("Consulting")
		}, map[string]string{"tags": "service", "title": "Consulting"}},
		{"invoice", func() billomat.Query {
			return (&billomat.InvoiceFilter{}).ByClientID(5).ByInvoiceNumber("RE1")
		}, map[string]string{"client_id": "5", "invoice_number": "RE1"}},
		{"offer", func() billomat.Query {
			return (&billomat.OfferFilter{}).ByDateRange(from, to).ByStatus(billomat.OfferDraft)
		}, map[string]string{"from": "2026-01-01", "to": "2026-06-30", "status": "DRAFT"}},
		{"credit note", func() billomat.Query {
			return (&billomat.CreditNoteFilter{}).ByArticleID(3).ByCreditNoteNumber("GS1")
		}, map[string]string{"article_id": "3", "credit_note_number": "GS1"}},
		{"delivery note", func() billomat.Query {
			return (&billomat.DeliveryNoteFilter{}).ByContactID(8).ByDeliveryNoteNumber("LS1")
		}, map[string]string{"contact_id": "8", "delivery_note_number": "LS1"}},
		{"confirmation", func() billomat.Query {
			return (&billomat.ConfirmationFilter{}).ByIntro("Thanks").ByConfirmationNumber("AB1")
		}, map[string]string{"intro": "Thanks", "confirmation_number": "AB1"}},
		{"recurring", func() billomat.Query {
			return (&billomat.RecurringFilter{}).ByClientID(5).ByName("Hosting")
		}, map[string]string{"client_id": "5", "name": "Hosting"}},
		{"user", func() billomat.Query {
			return (&billomat.UserFilter{}).ByEmail("jane@example.com").ByLastName("Doe")
		}, map[string]string{"email": "jane@example.com", "last_name": "Doe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var query billomat.Query

			require.NotPanics(t, func() { query = tt.build() })
			require.NoError(t, query.Err())

			values := query.Values()
			assert.Len(t, values, len(tt.want))

			for key, value := range tt.want {
				assert.Equal(t, value, values.Get(key), key)
			}
		})
	}
}

func TestFilter_ReplacesInvalidInput(t *testing.T) {
	t.Parallel()

	filter := billomat.NewClientFilter().ByInvoiceID(0).ByInvoiceID(5)
	require.NoError(t, filter.Err())
	assert.Equal(t, "5", filter.Values().Get("invoice_id"))

	filter.ByInvoiceID(-1)
	require.ErrorIs(t, filter.Err(), billomat.ErrInvalidFilter)
	assert.False(t, filter.Has("invoice_id"))

	filter.Set("invoice_id", "7")
	require.NoError(t, filter.Err())

	invoices := billomat.NewInvoiceFilter().ByDateRange(
		time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
	)
	require.ErrorIs(t, invoices.Err(), billomat.ErrInvalidFilter)

	invoices.ByDateRange(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), time.Time{})
	require.NoError(t, invoices.Err())
	assert.Equal(t, "2026-04-01", invoices.Values().Get("from"))
	assert.False(t, invoices.Has("to"))
}

func TestFilter_DocumentKeysOnlyOnDocuments(t *testing.T) {
	t.Parallel()

	documentOnly := []string{"ByClientID", "ByContactID", "ByArticleID", "ByFrom", "ByTo", "ByDateRange", "ByIntro"}

	for _, filter := range []interface{}{&billomat.ClientFilter{}, &billomat.ArticleFilter{}, &billomat.UserFilter{}} {
		filterType := reflect.TypeOf(filter)

		for _, method := range documentOnly {
			_, ok := filterType.MethodByName(method)
			assert.False(t, ok, "%s should not offer %s", filterType.Elem().Name(), method)
		}
	}

	for _, filter := range []interface{}{&billomat.InvoiceFilter{}, &billomat.OfferFilter{}, &billomat.ConfirmationFilter{}} {
		filterType := reflect.TypeOf(filter)

		for _, method := range documentOnly {
			_, ok := filterType.MethodByName(method)
			assert.True(t, ok, "%s should offer %s", filterType.Elem().Name(), method)
		}
	}
}
