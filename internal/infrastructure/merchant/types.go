package merchant

import (
	"encoding/json"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
)

// cartTotalResponse カート合計エンドポイントのレスポンス
// dataは成功時は{total: "..."}のオブジェクト、失敗時はエラーメッセージ文字列
type cartTotalResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// cartTotalData カート合計レスポンスの成功時data
type cartTotalData struct {
	Total string `json:"total"`
}

// verdictResponse 購入エンドポイントのレスポンス
type verdictResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// addressPayload 配送先住所のワイヤ表現
type addressPayload struct {
	Country           string   `json:"country"`
	AddressLine       []string `json:"addressLine"`
	Region            string   `json:"region"`
	City              string   `json:"city"`
	DependentLocality string   `json:"dependentLocality"`
	PostalCode        string   `json:"postalCode"`
	SortingCode       string   `json:"sortingCode"`
	LanguageCode      string   `json:"languageCode"`
	Organization      string   `json:"organization"`
	Recipient         string   `json:"recipient"`
	Phone             string   `json:"phone"`
}

// credentialPayload 決済クレデンシャルのワイヤ表現
// フィールド順は購入エンドポイントとの互換性のため固定
type credentialPayload struct {
	MethodName      string                 `json:"methodName"`
	Details         map[string]interface{} `json:"details"`
	ShippingAddress *addressPayload        `json:"shippingAddress"`
	ShippingOption  string                 `json:"shippingOption"`
	PayerName       string                 `json:"payerName"`
	PayerPhone      string                 `json:"payerPhone"`
	PayerEmail      string                 `json:"payerEmail"`
}

// newCredentialPayload ドメインのCredentialからワイヤ表現を組み立てる
func newCredentialPayload(c *credential.Credential) *credentialPayload {
	return &credentialPayload{
		MethodName:      c.MethodName(),
		Details:         c.Details(),
		ShippingAddress: newAddressPayload(c.ShippingAddress()),
		ShippingOption:  c.ShippingOption(),
		PayerName:       c.PayerName(),
		PayerPhone:      c.PayerPhone(),
		PayerEmail:      c.PayerEmail(),
	}
}

// newAddressPayload ドメインのAddressからワイヤ表現を組み立てる
// 住所がない場合はnilを返し、JSONではnullとして出力される
func newAddressPayload(a *credential.Address) *addressPayload {
	if a == nil {
		return nil
	}
	return &addressPayload{
		Country:           a.Country,
		AddressLine:       a.AddressLine,
		Region:            a.Region,
		City:              a.City,
		DependentLocality: a.DependentLocality,
		PostalCode:        a.PostalCode,
		SortingCode:       a.SortingCode,
		LanguageCode:      a.LanguageCode,
		Organization:      a.Organization,
		Recipient:         a.Recipient,
		Phone:             a.Phone,
	}
}
