package credential

// Credential ネイティブ決済APIが返す決済クレデンシャル
// 完了通知を送るまでネイティブ側が所有し、エージェントは読み取りと転送のみを行う
type Credential struct {
	methodName      string
	details         map[string]interface{} // 決済方式固有の詳細（そのまま転送する）
	shippingAddress *Address
	shippingOption  string
	payerName       string
	payerPhone      string
	payerEmail      string
}

// NewCredential 新しいCredentialを作成
func NewCredential(
	methodName string,
	details map[string]interface{},
	shippingAddress *Address,
	shippingOption string,
	payerName string,
	payerPhone string,
	payerEmail string,
) *Credential {
	if details == nil {
		details = make(map[string]interface{})
	}
	return &Credential{
		methodName:      methodName,
		details:         details,
		shippingAddress: shippingAddress,
		shippingOption:  shippingOption,
		payerName:       payerName,
		payerPhone:      payerPhone,
		payerEmail:      payerEmail,
	}
}

// MethodName 決済方式の識別子を返す
func (c *Credential) MethodName() string {
	return c.methodName
}

// Details 決済方式固有の詳細を返す
func (c *Credential) Details() map[string]interface{} {
	return c.details
}

// ShippingAddress 配送先住所を返す（存在しない場合はnil）
func (c *Credential) ShippingAddress() *Address {
	return c.shippingAddress
}

// ShippingOption 配送オプションを返す
func (c *Credential) ShippingOption() string {
	return c.shippingOption
}

// PayerName 支払者名を返す
func (c *Credential) PayerName() string {
	return c.payerName
}

// PayerPhone 支払者の電話番号を返す
func (c *Credential) PayerPhone() string {
	return c.payerPhone
}

// PayerEmail 支払者のメールアドレスを返す
func (c *Credential) PayerEmail() string {
	return c.payerEmail
}
