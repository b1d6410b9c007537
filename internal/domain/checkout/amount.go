package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount 決済金額を表す値オブジェクト
// 正の小数のみを許可し、送信時は常に小数点以下2桁で表現する
type Amount struct {
	value decimal.Decimal
}

// ParseAmount 文字列から新しいAmountを作成
// 数値として解釈できない場合はErrInvalidAmount、0以下の場合はErrNonPositiveAmountを返す
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	if d.Sign() <= 0 {
		return Amount{}, ErrNonPositiveAmount
	}
	return Amount{value: d}, nil
}

// String 小数点以下2桁に整形した文字列表現を返す
func (a Amount) String() string {
	return a.value.StringFixed(2)
}

// Decimal 内部のdecimal値を返す
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// IsZero ゼロ値（未設定）かどうかを返す
func (a Amount) IsZero() bool {
	return a.value.IsZero()
}

// MustParseAmount テスト用ヘルパー: ParseAmountを呼び出し、エラーが発生した場合はpanicする
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}
