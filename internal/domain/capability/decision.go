package capability

// Decision 能力チェックの判定を表す値オブジェクト
// ネイティブチェックのtrue/falseに加え、チェック失敗時の不定値を第3の状態として持つ
type Decision string

const (
	DecisionReady    Decision = "ready"     // 決済可能
	DecisionNotReady Decision = "not_ready" // 決済不可
	DecisionUnknown  Decision = "unknown"   // チェック失敗により不明
)

// DecisionFromBool bool値からDecisionを作成
func DecisionFromBool(canMakePayment bool) Decision {
	if canMakePayment {
		return DecisionReady
	}
	return DecisionNotReady
}

// String 文字列表現を返す
func (d Decision) String() string {
	return string(d)
}

// CanPay 決済シートを表示してよいかどうかを返す
// 不明(Unknown)は決済不可として扱う
func (d Decision) CanPay() bool {
	return d == DecisionReady
}
