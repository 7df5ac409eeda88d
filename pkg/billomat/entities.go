package billomat

import "time"

// Client is a customer of the account.
type Client struct {
	Resource

	Archived            *bool        `json:",omitempty"`
	ClientNumber        string       `json:",omitempty"`
	Number              *int         `json:",omitempty"`
	NumberPre           string       `json:",omitempty"`
	NumberLength        *int         `json:",omitempty"`
	Name                string       `json:",omitempty"`
	Salutation          string       `json:",omitempty"`
	FirstName           string       `json:",omitempty"`
	LastName            string       `json:",omitempty"`
	Street              string       `json:",omitempty"`
	Zip                 string       `json:",omitempty"`
	City                string       `json:",omitempty"`
	State               string       `json:",omitempty"`
	CountryCode         string       `json:",omitempty"`
	Address             string       `json:",omitempty" view:"readonly"`
	Phone               string       `json:",omitempty"`
	Fax                 string       `json:",omitempty"`
	Mobile              string       `json:",omitempty"`
	Email               string       `json:",omitempty"`
	Www                 string       `json:",omitempty"`
	TaxNumber           string       `json:",omitempty"`
	VatNumber           string       `json:",omitempty"`
	BankAccountOwner    string       `json:",omitempty"`
	BankNumber          string       `json:",omitempty"`
	BankName            string       `json:",omitempty"`
	BankAccountNumber   string       `json:",omitempty"`
	BankSwift           string       `json:",omitempty"`
	BankIban            string       `json:",omitempty"`
	SepaMandate         string       `json:",omitempty"`
	SepaMandateDate     *Date        `json:",omitempty"`
	TaxRule             string       `json:",omitempty"`
	NetGross            NetGross     `json:",omitempty"`
	DefaultPaymentTypes PaymentTypes `json:",omitempty"`
	DiscountRateType    string       `json:",omitempty"`
	DiscountRate        *float64     `json:",omitempty"`
	DiscountDaysType    string       `json:",omitempty"`
	DiscountDays        *int         `json:",omitempty"`
	DueDaysType         string       `json:",omitempty"`
	DueDays             *int         `json:",omitempty"`
	ReminderDueDaysType string       `json:",omitempty"`
	ReminderDueDays     *int         `json:",omitempty"`
	OfferValidityDays   *int         `json:",omitempty"`
	CurrencyCode        string       `json:",omitempty"`
	PriceGroup          *int         `json:",omitempty"`
	Locale              string       `json:",omitempty"`
	Note                string       `json:",omitempty"`
	RevenueGross        float64      `json:",omitempty" view:"readonly"`
	RevenueNet          float64      `json:",omitempty" view:"readonly"`
	CustomerPortalURL   string       `json:",omitempty" view:"readonly"`
}

// Article is a product or service that can be put on documents.
type Article struct {
	Resource

	Archived              *bool    `json:",omitempty"`
	ArticleNumber         string   `json:",omitempty"`
	Number                *int     `json:",omitempty"`
	NumberPre             string   `json:",omitempty"`
	NumberLength          *int     `json:",omitempty"`
	Type                  ItemType `json:",omitempty"`
	Title                 string   `json:",omitempty"`
	Description           string   `json:",omitempty"`
	SalesPrice            *float64 `json:",omitempty"`
	SalesPrice2           *float64 `json:"sales_price2,omitempty"`
	SalesPrice3           *float64 `json:"sales_price3,omitempty"`
	SalesPrice4           *float64 `json:"sales_price4,omitempty"`
	SalesPrice5           *float64 `json:"sales_price5,omitempty"`
	CurrencyCode          string   `json:",omitempty"`
	UnitID                int      `json:",omitempty"`
	TaxID                 int      `json:",omitempty"`
	PurchasePrice         *float64 `json:",omitempty"`
	PurchasePriceNetGross NetGross `json:",omitempty"`
	SupplierID            int      `json:",omitempty"`
}

// User is a member of the account. Users are managed in the web interface;
// the API exposes them read mostly.
type User struct {
	Resource

	Updated    *time.Time `json:",omitempty" view:"readonly"`
	Email      string     `json:",omitempty"`
	FirstName  string     `json:",omitempty"`
	LastName   string     `json:",omitempty"`
	Salutation string     `json:",omitempty"`
	Phone      string     `json:",omitempty"`
	Fax        string     `json:",omitempty"`
	Mobile     string     `json:",omitempty"`
	RoleID     int        `json:",omitempty"`
}

// Settings is the account wide configuration singleton.
type Settings struct {
	Created *time.Time `json:",omitempty" view:"readonly"`
	Updated *time.Time `json:",omitempty" view:"readonly"`

	CurrencyCode         string   `json:",omitempty"`
	Locale               string   `json:",omitempty"`
	NetGross             NetGross `json:",omitempty"`
	NumberRangeMode      string   `json:",omitempty"`
	ArticleNumberPre     string   `json:",omitempty"`
	ArticleNumberLength  *int     `json:",omitempty"`
	ArticleNumberNext    *int     `json:",omitempty"`
	ClientNumberPre      string   `json:",omitempty"`
	ClientNumberLength   *int     `json:",omitempty"`
	ClientNumberNext     *int     `json:",omitempty"`
	InvoiceNumberPre     string   `json:",omitempty"`
	InvoiceNumberLength  *int     `json:",omitempty"`
	InvoiceNumberNext    *int     `json:",omitempty"`
	OfferNumberPre       string   `json:",omitempty"`
	OfferNumberLength    *int     `json:",omitempty"`
	OfferNumberNext      *int     `json:",omitempty"`
	CreditNoteNumberPre  string   `json:",omitempty"`
	CreditNoteNumberNext *int     `json:",omitempty"`
	InvoiceIntro         string   `json:",omitempty"`
	InvoiceNote          string   `json:",omitempty"`
	InvoiceLabel         string   `json:",omitempty"`
	OfferIntro           string   `json:",omitempty"`
	OfferNote            string   `json:",omitempty"`
	OfferValidityDays    *int     `json:",omitempty"`
	DiscountRate         *float64 `json:",omitempty"`
	DiscountDays         *int     `json:",omitempty"`
	DueDays              *int     `json:",omitempty"`
	ReminderDueDays      *int     `json:",omitempty"`
	PrintVersion         *bool    `json:",omitempty"`
	DefaultEmailSender   string   `json:",omitempty"`
	BccAddressee         string   `json:",omitempty"`
	TemplateEngine       string   `json:",omitempty"`
}

// Property defines a custom field that can be attached to clients, articles
// or users.
type Property struct {
	Resource

	Name         string       `json:",omitempty"`
	Type         PropertyType `json:",omitempty"`
	DefaultValue string       `json:",omitempty"`
	IsNumeric    *bool        `json:",omitempty"`
}

// ClientProperty defines a custom client field.
type ClientProperty = Property

// ArticleProperty defines a custom article field.
type ArticleProperty = Property

// UserProperty defines a custom user field.
type UserProperty = Property

// ClientPropertyValue is the value of a ClientProperty for one client.
type ClientPropertyValue struct {
	Owned

	ClientPropertyID int          `json:",omitempty"`
	Type             PropertyType `json:",omitempty" view:"readonly"`
	Name             string       `json:",omitempty" view:"readonly"`
	Value            string       `json:",omitempty"`
}

// ArticlePropertyValue is the value of an ArticleProperty for one article.
type ArticlePropertyValue struct {
	Owned

	ArticlePropertyID int          `json:",omitempty"`
	Type              PropertyType `json:",omitempty" view:"readonly"`
	Name              string       `json:",omitempty" view:"readonly"`
	Value             string       `json:",omitempty"`
}

// UserPropertyValue is the value of a UserProperty for one user.
type UserPropertyValue struct {
	Owned

	UserPropertyID int          `json:",omitempty"`
	Type           PropertyType `json:",omitempty" view:"readonly"`
	Name           string       `json:",omitempty" view:"readonly"`
	Value          string       `json:",omitempty"`
}
