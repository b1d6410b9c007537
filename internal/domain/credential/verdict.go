package credential

import (
	"fmt"
)

// VerdictStatus 購入エンドポイントが返す判定ステータスを表す値オブジェクト
type VerdictStatus string

const (
	VerdictStatusSuccess VerdictStatus = "success" // 決済成立
	VerdictStatusFail    VerdictStatus = "fail"    // 決済不成立
)

// NewVerdictStatus 新しいVerdictStatusを作成
func NewVerdictStatus(s string) (VerdictStatus, error) {
	switch s {
	case "success", "fail":
		return VerdictStatus(s), nil
	default:
		return "", fmt.Errorf("invalid verdict status: %s", s)
	}
}

// String 文字列表現を返す
func (vs VerdictStatus) String() string {
	return string(vs)
}

// Valid 有効な判定ステータスかどうかを返す
func (vs VerdictStatus) Valid() bool {
	switch vs {
	case VerdictStatusSuccess, VerdictStatusFail:
		return true
	default:
		return false
	}
}

// IsSuccess 決済成立かどうかを返す
func (vs VerdictStatus) IsSuccess() bool {
	return vs == VerdictStatusSuccess
}

// Verdict 購入エンドポイントの判定結果
type Verdict struct {
	Status  VerdictStatus
	Message string
}
