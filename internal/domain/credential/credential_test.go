package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCredential(t *testing.T) {
	addr := &Address{
		Country:     "IN",
		AddressLine: []string{"1 MG Road"},
		City:        "Bengaluru",
		Recipient:   "Ravi Kumar",
	}
	details := map[string]interface{}{
		"txnId":  "UPI123456",
		"status": "SUCCESS",
	}

	cred := NewCredential(
		"https://tez.google.com/pay",
		details,
		addr,
		"standard",
		"Ravi Kumar",
		"+911234567890",
		"ravi@example.com",
	)

	assert.Equal(t, "https://tez.google.com/pay", cred.MethodName())
	assert.Equal(t, details, cred.Details())
	assert.Equal(t, addr, cred.ShippingAddress())
	assert.Equal(t, "standard", cred.ShippingOption())
	assert.Equal(t, "Ravi Kumar", cred.PayerName())
	assert.Equal(t, "+911234567890", cred.PayerPhone())
	assert.Equal(t, "ravi@example.com", cred.PayerEmail())
}

func TestNewCredential_NilDetails(t *testing.T) {
	cred := NewCredential("https://tez.google.com/pay", nil, nil, "", "", "", "")

	// nilのdetailsは空のマップに補われる
	assert.NotNil(t, cred.Details())
	assert.Empty(t, cred.Details())
	assert.Nil(t, cred.ShippingAddress())
}
