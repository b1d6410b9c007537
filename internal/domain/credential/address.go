package credential

// Address クレデンシャルに付随する配送先住所
type Address struct {
	Country           string
	AddressLine       []string
	Region            string
	City              string
	DependentLocality string
	PostalCode        string
	SortingCode       string
	LanguageCode      string
	Organization      string
	Recipient         string
	Phone             string
}
