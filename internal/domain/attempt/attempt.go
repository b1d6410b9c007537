package attempt

import (
	"time"
)

// Attempt 1回のチェックアウト試行エンティティ
// トリガーからシート・購入送信・完了通知までの進行状況をセッション単位で記録する
type Attempt struct {
	attemptID      string
	sessionID      string
	amount         string // 検証済み金額（小数点以下2桁整形済み）
	currency       string
	transactionRef string
	status         AttemptStatus
	failureReason  string
	verdictStatus  string
	verdictMessage string
	createdAt      time.Time
	updatedAt      time.Time
}

// NewAttempt 新しいAttemptエンティティを作成
func NewAttempt(attemptID string, sessionID string) (*Attempt, error) {
	if attemptID == "" {
		return nil, ErrInvalidAttemptID
	}
	if sessionID == "" {
		return nil, ErrInvalidSessionID
	}
	now := time.Now()
	return &Attempt{
		attemptID: attemptID,
		sessionID: sessionID,
		status:    AttemptStatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// AttemptID Attempt IDを返す
func (a *Attempt) AttemptID() string {
	return a.attemptID
}

// SessionID セッションIDを返す
func (a *Attempt) SessionID() string {
	return a.sessionID
}

// Amount 検証済み金額を返す（未設定の場合は空文字列）
func (a *Attempt) Amount() string {
	return a.amount
}

// Currency 通貨コードを返す
func (a *Attempt) Currency() string {
	return a.currency
}

// TransactionRef 取引参照番号を返す
func (a *Attempt) TransactionRef() string {
	return a.transactionRef
}

// Status ステータスを返す
func (a *Attempt) Status() AttemptStatus {
	return a.status
}

// FailureReason 失敗理由を返す
func (a *Attempt) FailureReason() string {
	return a.failureReason
}

// VerdictStatus サーバー判定のステータスを返す
func (a *Attempt) VerdictStatus() string {
	return a.verdictStatus
}

// VerdictMessage サーバー判定のメッセージを返す
func (a *Attempt) VerdictMessage() string {
	return a.verdictMessage
}

// CreatedAt 作成日時を返す
func (a *Attempt) CreatedAt() time.Time {
	return a.createdAt
}

// UpdatedAt 更新日時を返す
func (a *Attempt) UpdatedAt() time.Time {
	return a.updatedAt
}

// SetTotal 検証済みの合計金額を設定
func (a *Attempt) SetTotal(amount string, currency string) {
	a.amount = amount
	a.currency = currency
	a.updatedAt = time.Now()
}

// SetTransactionRef 取引参照番号を設定
func (a *Attempt) SetTransactionRef(ref string) {
	a.transactionRef = ref
	a.updatedAt = time.Now()
}

// SetVerdict サーバー判定を記録
func (a *Attempt) SetVerdict(status string, message string) {
	a.verdictStatus = status
	a.verdictMessage = message
	a.updatedAt = time.Now()
}

// MarkShown 決済シート表示中に遷移
func (a *Attempt) MarkShown() error {
	if a.status != AttemptStatusPending {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusShown
	a.updatedAt = time.Now()
	return nil
}

// MarkNotReady 能力チェック不合格として終了
func (a *Attempt) MarkNotReady() error {
	if a.status != AttemptStatusPending {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusNotReady
	a.updatedAt = time.Now()
	return nil
}

// MarkCompleted ユーザー承認済みに遷移
func (a *Attempt) MarkCompleted() error {
	if a.status != AttemptStatusShown {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusCompleted
	a.updatedAt = time.Now()
	return nil
}

// MarkCancelled ユーザーによるキャンセルとして終了
func (a *Attempt) MarkCancelled() error {
	if a.status != AttemptStatusShown {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusCancelled
	a.updatedAt = time.Now()
	return nil
}

// MarkTimedOut タイムアウトとして終了
func (a *Attempt) MarkTimedOut() error {
	if a.status != AttemptStatusShown {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusTimedOut
	a.updatedAt = time.Now()
	return nil
}

// MarkAborted タイムアウト後の中断成功を記録
// 中断はベストエフォートのため、タイムアウト済みの試行からのみ遷移できる
func (a *Attempt) MarkAborted() error {
	if a.status != AttemptStatusTimedOut {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusAborted
	a.updatedAt = time.Now()
	return nil
}

// MarkFailed 失敗として終了し、理由を記録
func (a *Attempt) MarkFailed(reason string) error {
	if a.status != AttemptStatusPending && a.status != AttemptStatusShown {
		return ErrInvalidTransition
	}
	a.status = AttemptStatusFailed
	a.failureReason = reason
	a.updatedAt = time.Now()
	return nil
}

// MustNewAttempt テスト用ヘルパー: NewAttemptを呼び出し、エラーが発生した場合はpanicする
func MustNewAttempt(attemptID string, sessionID string) *Attempt {
	a, err := NewAttempt(attemptID, sessionID)
	if err != nil {
		panic(err)
	}
	return a
}
