package billomat_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

func TestParsePaymentTypes(t *testing.T) {
	t.Parallel()

	types := billomat.ParsePaymentTypes("CASH, BANK_TRANSFER,,PAYPAL ")

	assert.Equal(t, billomat.PaymentTypes{billomat.PaymentCash, billomat.PaymentBankTransfer, billomat.PaymentPaypal}, types)
	assert.True(t, types.Contains(billomat.PaymentBankTransfer))
	assert.False(t, types.Contains(billomat.PaymentDebit))
	assert.Equal(t, "CASH,BANK_TRANSFER,PAYPAL", types.String())
	assert.Empty(t, billomat.ParsePaymentTypes(""))
}

func TestDate(t *testing.T) {
	t.Parallel()

	t.Run("new date drops the time of day", func(t *testing.T) {
		t.Parallel()

		berlin := time.FixedZone("CET", 3600)
		date := billomat.NewDate(time.Date(2026, time.March, 1, 23, 30, 0, 0, berlin))
		assert.Equal(t, "2026-03-01", date.String())
	})

	t.Run("marshal", func(t *testing.T) {
		t.Parallel()

		date, err := billomat.ParseDate("2026-02-28")
		require.NoError(t, err)

		data, err := json.Marshal(date)
		require.NoError(t, err)
		assert.JSONEq(t, `"2026-02-28"`, string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			input string
			want  string
			zero  bool
		}{
			{`"2026-03-01"`, "2026-03-01", false},
			{`"2026-03-01 10:15:00"`, "2026-03-01", false},
			{`""`, "", true},
			{`null`, "", true},
		}

		for _, tt := range tests {
			var date billomat.Date

			require.NoError(t, json.Unmarshal([]byte(tt.input), &date), tt.input)

			if tt.zero {
				assert.True(t, date.IsZero(), tt.input)
			} else {
				assert.Equal(t, tt.want, date.String(), tt.input)
			}
		}
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		var date billomat.Date

		require.Error(t, json.Unmarshal([]byte(`"01.03.2026"`), &date))

		_, err := billomat.ParseDate("tomorrow")
		require.Error(t, err)
	})
}
