package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMerchantData() MerchantData {
	return MerchantData{
		PayeeAddress:    "merchant@okbank",
		PayeeName:       "Demo Merchant",
		TransactionRef:  "tr-12345",
		CallbackURL:     "https://merchant.example.com/callback",
		MerchantCode:    "5411",
		TransactionNote: "Purchase at Demo Merchant",
	}
}

func TestNewPaymentRequestSpec(t *testing.T) {
	tests := []struct {
		name            string
		supportedMethod string
		merchantData    MerchantData
		total           TotalSpec
		wantError       error
	}{
		{
			name:            "正常系: 有効な仕様の作成",
			supportedMethod: "https://tez.google.com/pay",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Label:    "Total",
				Currency: "INR",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: nil,
		},
		{
			name:            "正常系: ラベル未指定時はデフォルトが補われる",
			supportedMethod: "https://tez.google.com/pay",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Currency: "INR",
				Amount:   MustParseAmount("10"),
			},
			wantError: nil,
		},
		{
			name:            "異常系: 決済方式が未指定",
			supportedMethod: "",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Currency: "INR",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: ErrMissingSupportedMethod,
		},
		{
			name:            "異常系: 受取人VPAが未指定",
			supportedMethod: "https://tez.google.com/pay",
			merchantData: MerchantData{
				PayeeName:      "Demo Merchant",
				TransactionRef: "tr-12345",
			},
			total: TotalSpec{
				Currency: "INR",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: ErrMissingPayeeAddress,
		},
		{
			name:            "異常系: 取引参照番号が未指定",
			supportedMethod: "https://tez.google.com/pay",
			merchantData: MerchantData{
				PayeeAddress: "merchant@okbank",
				PayeeName:    "Demo Merchant",
			},
			total: TotalSpec{
				Currency: "INR",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: ErrMissingTransactionRef,
		},
		{
			name:            "異常系: 通貨コードが小文字",
			supportedMethod: "https://tez.google.com/pay",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Currency: "inr",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: ErrInvalidCurrencyCode,
		},
		{
			name:            "異常系: 通貨コードが3文字でない",
			supportedMethod: "https://tez.google.com/pay",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Currency: "RUPEES",
				Amount:   MustParseAmount("199.00"),
			},
			wantError: ErrInvalidCurrencyCode,
		},
		{
			name:            "異常系: 金額が未設定",
			supportedMethod: "https://tez.google.com/pay",
			merchantData:    validMerchantData(),
			total: TotalSpec{
				Currency: "INR",
			},
			wantError: ErrNonPositiveAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPaymentRequestSpec(tt.supportedMethod, tt.merchantData, tt.total)

			if tt.wantError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantError, err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.supportedMethod, got.SupportedMethod())
				assert.Equal(t, tt.merchantData, got.MerchantData())
				assert.Equal(t, tt.total.Currency, got.Total().Currency)
				assert.Equal(t, tt.total.Amount.String(), got.Total().Amount.String())
			}
		})
	}
}

func TestNewPaymentRequestSpec_DefaultLabel(t *testing.T) {
	spec, err := NewPaymentRequestSpec("https://tez.google.com/pay", validMerchantData(), TotalSpec{
		Currency: "INR",
		Amount:   MustParseAmount("199.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultTotalLabel, spec.Total().Label)
}

func TestMustNewPaymentRequestSpec(t *testing.T) {
	assert.Panics(t, func() {
		MustNewPaymentRequestSpec("", validMerchantData(), TotalSpec{
			Currency: "INR",
			Amount:   MustParseAmount("1"),
		})
	})
}
