package checkout

import "errors"

var (
	// ErrInvalidAmount 金額が数値として解釈できないエラー
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount 金額が0以下エラー
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrMissingSupportedMethod 決済方式が未指定エラー
	ErrMissingSupportedMethod = errors.New("supported method is required")
	// ErrMissingPayeeAddress 受取人VPAが未指定エラー
	ErrMissingPayeeAddress = errors.New("payee address is required")
	// ErrMissingTransactionRef 取引参照番号が未指定エラー
	ErrMissingTransactionRef = errors.New("transaction reference is required")
	// ErrInvalidCurrencyCode 通貨コードが不正エラー
	ErrInvalidCurrencyCode = errors.New("invalid currency code")
	// ErrCartTotalUnavailable カート合計の取得に失敗したエラー
	ErrCartTotalUnavailable = errors.New("cart total unavailable")
)
