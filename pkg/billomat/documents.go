package billomat

// Document holds the fields shared by invoices, offers, credit notes,
// delivery notes, confirmations and recurring invoices.
type Document struct {
	Resource

	ClientID       int      `json:",omitempty"`
	ContactID      int      `json:",omitempty"`
	Address        string   `json:",omitempty"`
	Number         *int     `json:",omitempty"`
	NumberPre      string   `json:",omitempty"`
	NumberLength   *int     `json:",omitempty"`
	Date           *Date    `json:",omitempty"`
	Title          string   `json:",omitempty"`
	Label          string   `json:",omitempty"`
	Intro          string   `json:",omitempty"`
	Note           string   `json:",omitempty"`
	CurrencyCode   string   `json:",omitempty"`
	Quote          *float64 `json:",omitempty"`
	NetGross       NetGross `json:",omitempty"`
	Reduction      string   `json:",omitempty"`
	TemplateID     int      `json:",omitempty"`
	TotalGross     float64  `json:",omitempty" view:"readonly"`
	TotalNet       float64  `json:",omitempty" view:"readonly"`
	TotalReduction float64  `json:",omitempty" view:"readonly"`
}

// Invoice is an outgoing invoice.
type Invoice struct {
	Document

	InvoiceNumber  string        `json:",omitempty"`
	Status         InvoiceStatus `json:",omitempty" view:"readonly"`
	SupplyDate     string        `json:",omitempty"`
	SupplyDateType string        `json:",omitempty"`
	DueDate        *Date         `json:",omitempty"`
	DueDays        *int          `json:",omitempty"`
	DiscountRate   *float64      `json:",omitempty"`
	DiscountDate   *Date         `json:",omitempty"`
	DiscountDays   *int          `json:",omitempty"`
	DiscountAmount float64       `json:",omitempty" view:"readonly"`
	PaymentTypes   PaymentTypes  `json:",omitempty"`
	InvoiceID      int           `json:",omitempty"`
	OfferID        int           `json:",omitempty"`
	ConfirmationID int           `json:",omitempty"`
	RecurringID    int           `json:",omitempty"`
	PaidAmount     float64       `json:",omitempty" view:"readonly"`
	OpenAmount     float64       `json:",omitempty" view:"readonly"`
	CustomerPortal string        `json:"customerportal_url,omitempty" view:"readonly"`
}

// Offer is a quote sent to a client.
type Offer struct {
	Document

	OfferNumber  string      `json:",omitempty"`
	Status       OfferStatus `json:",omitempty" view:"readonly"`
	ValidityDate *Date       `json:",omitempty"`
	ValidityDays *int        `json:",omitempty"`
}

// CreditNote reverses all or part of an invoice.
type CreditNote struct {
	Document

	CreditNoteNumber string           `json:",omitempty"`
	Status           CreditNoteStatus `json:",omitempty" view:"readonly"`
	InvoiceID        int              `json:",omitempty"`
	PaymentTypes     PaymentTypes     `json:",omitempty"`
	PaidAmount       float64          `json:",omitempty" view:"readonly"`
	OpenAmount       float64          `json:",omitempty" view:"readonly"`
}

// DeliveryNote accompanies shipped goods.
type DeliveryNote struct {
	Document

	DeliveryNoteNumber string             `json:",omitempty"`
	Status             DeliveryNoteStatus `json:",omitempty" view:"readonly"`
	InvoiceID          int                `json:",omitempty"`
	OfferID            int                `json:",omitempty"`
}

// Confirmation is an order confirmation.
type Confirmation struct {
	Document

	ConfirmationNumber string             `json:",omitempty"`
	Status             ConfirmationStatus `json:",omitempty" view:"readonly"`
	InvoiceID          int                `json:",omitempty"`
	OfferID            int                `json:",omitempty"`
}

// Recurring creates invoices on a schedule.
type Recurring struct {
	Document

	Name             string       `json:",omitempty"`
	Cycle            string       `json:",omitempty"`
	CycleNumber      *int         `json:",omitempty"`
	Action           string       `json:",omitempty"`
	Hour             *int         `json:",omitempty"`
	StartDate        *Date        `json:",omitempty"`
	EndDate          *Date        `json:",omitempty"`
	NextCreationDate *Date        `json:",omitempty"`
	LastCreationDate *Date        `json:",omitempty" view:"readonly"`
	Iterations       *int         `json:",omitempty"`
	CounterVar       int          `json:",omitempty" view:"readonly"`
	DueDays          *int         `json:",omitempty"`
	DiscountRate     *float64     `json:",omitempty"`
	DiscountDays     *int         `json:",omitempty"`
	PaymentTypes     PaymentTypes `json:",omitempty"`
	EmailSender      string       `json:",omitempty"`
	EmailSubject     string       `json:",omitempty"`
	EmailMessage     string       `json:",omitempty"`
	EmailFilename    string       `json:",omitempty"`
	OfferID          int          `json:",omitempty"`
	ConfirmationID   int          `json:",omitempty"`
}

// Tag is a free text label on a client or document.
type Tag struct {
	Owned

	Name string `json:",omitempty"`
}

// Tag aliases per owner.
type (
	ClientTag       = Tag
	InvoiceTag      = Tag
	OfferTag        = Tag
	CreditNoteTag   = Tag
	DeliveryNoteTag = Tag
	ConfirmationTag = Tag
	RecurringTag    = Tag
)

// ActionKey classifies comments created by the service.
type ActionKey string

// Comment action keys. COMMENT is the only one clients create.
const (
	ActionComment  ActionKey = "COMMENT"
	ActionCreate   ActionKey = "CREATE"
	ActionComplete ActionKey = "COMPLETE"
	ActionCancel   ActionKey = "CANCEL"
	ActionEmail    ActionKey = "EMAIL"
	ActionMail     ActionKey = "MAIL"
	ActionPrint    ActionKey = "PRINT"
	ActionPayment  ActionKey = "PAYMENT"
	ActionPDF      ActionKey = "PDF"
)

// Comment is a history entry of a document.
type Comment struct {
	Owned

	Comment   string    `json:",omitempty"`
	ActionKey ActionKey `json:",omitempty"`
	Public    *bool     `json:",omitempty"`
	ByClient  bool      `json:",omitempty" view:"readonly"`
	UserID    int       `json:",omitempty" view:"readonly"`
	EmailID   int       `json:",omitempty" view:"readonly"`
	ClientID  int       `json:",omitempty" view:"readonly"`
}

// Comment aliases per owner.
type (
	InvoiceComment      = Comment
	OfferComment        = Comment
	CreditNoteComment   = Comment
	DeliveryNoteComment = Comment
	ConfirmationComment = Comment
)

// Item is a line of a document.
type Item struct {
	Owned

	ArticleID   int      `json:",omitempty"`
	Type        ItemType `json:",omitempty"`
	Position    int      `json:",omitempty" view:"readonly"`
	Unit        string   `json:",omitempty"`
	Quantity    float64  `json:",omitempty"`
	UnitPrice   float64  `json:",omitempty"`
	TaxName     string   `json:",omitempty"`
	TaxRate     *float64 `json:",omitempty"`
	Title       string   `json:",omitempty"`
	Description string   `json:",omitempty"`
	Reduction   string   `json:",omitempty"`
	TotalGross  float64  `json:",omitempty" view:"readonly"`
	TotalNet    float64  `json:",omitempty" view:"readonly"`
}

// Item aliases per owner.
type (
	InvoiceItem      = Item
	OfferItem        = Item
	CreditNoteItem   = Item
	DeliveryNoteItem = Item
	ConfirmationItem = Item
	RecurringItem    = Item
)

// Payment records money received for an invoice or paid out for a credit
// note.
type Payment struct {
	Owned

	Date               *Date       `json:",omitempty"`
	Amount             float64     `json:",omitempty"`
	Comment            string      `json:",omitempty"`
	TransactionPurpose string      `json:",omitempty"`
	Type               PaymentType `json:",omitempty"`
	MarkInvoiceAsPaid  *bool       `json:",omitempty"`
	UserID             int         `json:",omitempty" view:"readonly"`
}

// Payment aliases per owner.
type (
	InvoicePayment    = Payment
	CreditNotePayment = Payment
)

// RecurringEmailReceiver is an address a recurring invoice is mailed to.
type RecurringEmailReceiver struct {
	Owned

	Type    string `json:",omitempty"`
	Address string `json:",omitempty"`
}

// EmailRecipients lists the addresses of an Email.
type EmailRecipients struct {
	To  []string `json:",omitempty"`
	Cc  []string `json:",omitempty"`
	Bcc []string `json:",omitempty"`
}

// Email sends a document to its client.
type Email struct {
	From            string           `json:",omitempty"`
	Recipients      *EmailRecipients `json:",omitempty"`
	Subject         string           `json:",omitempty"`
	Body            string           `json:",omitempty"`
	Filename        string           `json:",omitempty"`
	EmailTemplateID int              `json:",omitempty"`
}

// PDF is a rendered document. Content holds the decoded file.
type PDF struct {
	Resource

	Filename       string `json:",omitempty"`
	Mimetype       string `json:",omitempty"`
	Filesize       int    `json:",omitempty"`
	Base64File     string `json:"base64file,omitempty"`
	InvoiceID      int    `json:",omitempty"`
	OfferID        int    `json:",omitempty"`
	CreditNoteID   int    `json:",omitempty"`
	DeliveryNoteID int    `json:",omitempty"`
	ConfirmationID int    `json:",omitempty"`
	Content        []byte `json:"-"`
}

// Attachment is a file stored with a client or a document. Content holds the
// decoded file; Create encodes it when Base64File is empty.
type Attachment struct {
	Owned

	Filename   string `json:",omitempty"`
	Mimetype   string `json:",omitempty"`
	Filesize   int    `json:",omitempty" view:"readonly"`
	Base64File string `json:"base64file,omitempty"`
	Content    []byte `json:"-"`
}

// Attachment aliases per owner.
type (
	ClientAttachment       = Attachment
	InvoiceAttachment      = Attachment
	OfferAttachment        = Attachment
	CreditNoteAttachment   = Attachment
	DeliveryNoteAttachment = Attachment
	ConfirmationAttachment = Attachment
)

// Completion finalizes a draft document with an optional template.
type Completion struct {
	TemplateID int `json:",omitempty"`
}
