package sheet

import "errors"

var (
	// ErrAppUnavailable ネイティブ決済APIが利用できないエラー
	ErrAppUnavailable = errors.New("payment app unavailable")
	// ErrPaymentNotReady 能力チェックの結果が決済不可エラー
	ErrPaymentNotReady = errors.New("payment not ready")
	// ErrSheetDismissed ユーザーが決済シートを閉じたエラー
	ErrSheetDismissed = errors.New("payment sheet dismissed")
	// ErrSheetTimedOut 決済シートがタイムアウトしたエラー
	ErrSheetTimedOut = errors.New("payment sheet timed out")
	// ErrCannotAbort ユーザーが決済操作中のため中断できないエラー
	ErrCannotAbort = errors.New("cannot abort, user is mid-payment")
	// ErrAlreadyCompleted 完了通知が既に送信されているエラー
	ErrAlreadyCompleted = errors.New("payment already completed")
)
