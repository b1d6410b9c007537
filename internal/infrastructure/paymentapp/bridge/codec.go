package bridge

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/checkout"
	"github.com/kamesh07032005/Gpaydynamic/internal/domain/credential"
)

// specToStruct PaymentRequestSpecをブリッジRPCのリクエスト形式へ変換する
// methodDataとdetailsはネイティブ決済APIのコンストラクタ引数と同じ構造を取る
func specToStruct(spec *checkout.PaymentRequestSpec) (*structpb.Struct, error) {
	merchantData := spec.MerchantData()
	total := spec.Total()

	return structpb.NewStruct(map[string]interface{}{
		"methodData": []interface{}{
			map[string]interface{}{
				"supportedMethods": spec.SupportedMethod(),
				"data": map[string]interface{}{
					"pa":  merchantData.PayeeAddress,
					"pn":  merchantData.PayeeName,
					"tr":  merchantData.TransactionRef,
					"url": merchantData.CallbackURL,
					"mc":  merchantData.MerchantCode,
					"tn":  merchantData.TransactionNote,
				},
			},
		},
		"details": map[string]interface{}{
			"total": map[string]interface{}{
				"label": total.Label,
				"amount": map[string]interface{}{
					"currency": total.Currency,
					"value":    total.Amount.String(),
				},
			},
		},
	})
}

// credentialFromStruct Show RPCのレスポンスからCredentialを復元する
func credentialFromStruct(s *structpb.Struct) (*credential.Credential, error) {
	if s == nil {
		return nil, fmt.Errorf("empty payment response")
	}
	fields := s.GetFields()

	methodName := stringField(fields, "methodName")
	if methodName == "" {
		return nil, fmt.Errorf("payment response missing methodName")
	}

	var details map[string]interface{}
	if v, ok := fields["details"]; ok {
		if sv := v.GetStructValue(); sv != nil {
			details = sv.AsMap()
		}
	}

	addr, err := addressFromValue(fields["shippingAddress"])
	if err != nil {
		return nil, err
	}

	return credential.NewCredential(
		methodName,
		details,
		addr,
		stringField(fields, "shippingOption"),
		stringField(fields, "payerName"),
		stringField(fields, "payerPhone"),
		stringField(fields, "payerEmail"),
	), nil
}

// addressFromValue shippingAddressフィールドからAddressを復元する
// null・未設定の場合はnilを返す
func addressFromValue(v *structpb.Value) (*credential.Address, error) {
	if v == nil {
		return nil, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, nil
	}

	sv := v.GetStructValue()
	if sv == nil {
		return nil, fmt.Errorf("shippingAddress is not an object")
	}

	fields := sv.GetFields()
	return &credential.Address{
		Country:           stringField(fields, "country"),
		AddressLine:       stringSliceField(fields, "addressLine"),
		Region:            stringField(fields, "region"),
		City:              stringField(fields, "city"),
		DependentLocality: stringField(fields, "dependentLocality"),
		PostalCode:        stringField(fields, "postalCode"),
		SortingCode:       stringField(fields, "sortingCode"),
		LanguageCode:      stringField(fields, "languageCode"),
		Organization:      stringField(fields, "organization"),
		Recipient:         stringField(fields, "recipient"),
		Phone:             stringField(fields, "phone"),
	}, nil
}

// stringField 文字列フィールドを取得する（未設定は空文字）
func stringField(fields map[string]*structpb.Value, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	return v.GetStringValue()
}

// stringSliceField 文字列リストのフィールドを取得する
func stringSliceField(fields map[string]*structpb.Value, key string) []string {
	v, ok := fields[key]
	if !ok {
		return nil
	}
	lv := v.GetListValue()
	if lv == nil {
		return nil
	}

	var result []string
	for _, item := range lv.GetValues() {
		result = append(result, item.GetStringValue())
	}
	return result
}
