package checkout

import (
	"regexp"
)

const (
	// DefaultTotalLabel 合計金額表示のデフォルトラベル
	DefaultTotalLabel = "Total"
)

var currencyCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// MerchantData UPI決済に必要な加盟店情報
type MerchantData struct {
	PayeeAddress    string // 受取人のVPA (pa)
	PayeeName       string // 受取人名 (pn)
	TransactionRef  string // 取引参照番号 (tr)
	CallbackURL     string // コールバックURL (url)
	MerchantCode    string // 加盟店カテゴリコード (mc)
	TransactionNote string // 取引メモ (tn)
}

// TotalSpec 合計金額の表示仕様
type TotalSpec struct {
	Label    string
	Currency string
	Amount   Amount
}

// PaymentRequestSpec 1回のチェックアウト試行ごとに構築される決済リクエスト仕様
// ネイティブ決済APIへ渡した後は変更しない
type PaymentRequestSpec struct {
	supportedMethod string
	merchantData    MerchantData
	total           TotalSpec
}

// NewPaymentRequestSpec 新しいPaymentRequestSpecを作成
func NewPaymentRequestSpec(supportedMethod string, merchantData MerchantData, total TotalSpec) (*PaymentRequestSpec, error) {
	if supportedMethod == "" {
		return nil, ErrMissingSupportedMethod
	}
	if merchantData.PayeeAddress == "" {
		return nil, ErrMissingPayeeAddress
	}
	if merchantData.TransactionRef == "" {
		return nil, ErrMissingTransactionRef
	}
	if !currencyCodeRegex.MatchString(total.Currency) {
		return nil, ErrInvalidCurrencyCode
	}
	if total.Amount.Decimal().Sign() <= 0 {
		return nil, ErrNonPositiveAmount
	}
	if total.Label == "" {
		total.Label = DefaultTotalLabel
	}
	return &PaymentRequestSpec{
		supportedMethod: supportedMethod,
		merchantData:    merchantData,
		total:           total,
	}, nil
}

// SupportedMethod 対応する決済方式の識別子を返す
func (s *PaymentRequestSpec) SupportedMethod() string {
	return s.supportedMethod
}

// MerchantData 加盟店情報を返す
func (s *PaymentRequestSpec) MerchantData() MerchantData {
	return s.merchantData
}

// Total 合計金額の表示仕様を返す
func (s *PaymentRequestSpec) Total() TotalSpec {
	return s.total
}

// MustNewPaymentRequestSpec テスト用ヘルパー: NewPaymentRequestSpecを呼び出し、エラーが発生した場合はpanicする
func MustNewPaymentRequestSpec(supportedMethod string, merchantData MerchantData, total TotalSpec) *PaymentRequestSpec {
	s, err := NewPaymentRequestSpec(supportedMethod, merchantData, total)
	if err != nil {
		panic(err)
	}
	return s
}
