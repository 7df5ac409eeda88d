package billomat

import "time"

// ClientFilter narrows client lists.
type ClientFilter struct {
	Filter
}

// NewClientFilter returns an empty client filter.
func NewClientFilter() *ClientFilter {
	return &ClientFilter{}
}

// ByNote matches the note text.
func (f *ClientFilter) ByNote(note string) *ClientFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *ClientFilter) ByTags(tags ...string) *ClientFilter {
	f.Set("tags", tags...)

	return f
}

// ByName matches the company name.
func (f *ClientFilter) ByName(name string) *ClientFilter {
	f.setText("name", name)

	return f
}

// ByClientNumber matches the client number.
func (f *ClientFilter) ByClientNumber(clientNumber string) *ClientFilter {
	f.setText("client_number", clientNumber)

	return f
}

// ByEmail matches the email address.
func (f *ClientFilter) ByEmail(email string) *ClientFilter {
	f.setText("email", email)

	return f
}

// ByFirstName matches the contact first name.
func (f *ClientFilter) ByFirstName(firstName string) *ClientFilter {
	f.setText("first_name", firstName)

	return f
}

// ByLastName matches the contact last name.
func (f *ClientFilter) ByLastName(lastName string) *ClientFilter {
	f.setText("last_name", lastName)

	return f
}

// ByCountryCode matches the ISO country code.
func (f *ClientFilter) ByCountryCode(countryCode string) *ClientFilter {
	f.setText("country_code", countryCode)

	return f
}

// ByInvoiceID returns the client of an invoice.
func (f *ClientFilter) ByInvoiceID(invoiceID int) *ClientFilter {
	f.setID("invoice_id", invoiceID)

	return f
}

// ArticleFilter narrows article lists.
type ArticleFilter struct {
	Filter
}

// NewArticleFilter returns an empty article filter.
func NewArticleFilter() *ArticleFilter {
	return &ArticleFilter{}
}

// ByTags matches entries carrying any of the tags.
func (f *ArticleFilter) ByTags(tags ...string) *ArticleFilter {
	f.Set("tags", tags...)

	return f
}

// ByArticleNumber matches the article number.
func (f *ArticleFilter) ByArticleNumber(articleNumber string) *ArticleFilter {
	f.setText("article_number", articleNumber)

	return f
}

// ByTitle matches the title.
func (f *ArticleFilter) ByTitle(title string) *ArticleFilter {
	f.setText("title", title)

	return f
}

// ByDescription matches the description.
func (f *ArticleFilter) ByDescription(description string) *ArticleFilter {
	f.setText("description", description)

	return f
}

// ByCurrencyCode matches the currency.
func (f *ArticleFilter) ByCurrencyCode(currencyCode string) *ArticleFilter {
	f.setText("currency_code", currencyCode)

	return f
}

// ByUnitID matches the unit.
func (f *ArticleFilter) ByUnitID(unitID int) *ArticleFilter {
	f.setID("unit_id", unitID)

	return f
}

// BySupplierID matches the supplier.
func (f *ArticleFilter) BySupplierID(supplierID int) *ArticleFilter {
	f.setID("supplier_id", supplierID)

	return f
}

// InvoiceFilter narrows invoice lists.
type InvoiceFilter struct {
	Filter
}

// NewInvoiceFilter returns an empty invoice filter.
func NewInvoiceFilter() *InvoiceFilter {
	return &InvoiceFilter{}
}

// ByClientID restricts results to one client.
func (f *InvoiceFilter) ByClientID(clientID int) *InvoiceFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *InvoiceFilter) ByContactID(contactID int) *InvoiceFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByArticleID restricts results to documents containing an article.
func (f *InvoiceFilter) ByArticleID(articleID int) *InvoiceFilter {
	f.setID("article_id", articleID)

	return f
}

// ByFrom restricts results to dates on or after from.
func (f *InvoiceFilter) ByFrom(from time.Time) *InvoiceFilter {
	f.setDate("from", from)

	return f
}

// ByTo restricts results to dates on or before to.
func (f *InvoiceFilter) ByTo(to time.Time) *InvoiceFilter {
	f.setDate("to", to)

	return f
}

// ByDateRange sets both date bounds. A zero bound is left open.
func (f *InvoiceFilter) ByDateRange(from, to time.Time) *InvoiceFilter {
	f.setDateRange(from, to)

	return f
}

// ByIntro matches the intro text.
func (f *InvoiceFilter) ByIntro(intro string) *InvoiceFilter {
	f.setText("intro", intro)

	return f
}

// ByNote matches the note text.
func (f *InvoiceFilter) ByNote(note string) *InvoiceFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *InvoiceFilter) ByTags(tags ...string) *InvoiceFilter {
	f.Set("tags", tags...)

	return f
}

// ByInvoiceNumber matches the invoice number.
func (f *InvoiceFilter) ByInvoiceNumber(invoiceNumber string) *InvoiceFilter {
	f.setText("invoice_number", invoiceNumber)

	return f
}

// ByStatus matches invoices in any of the states.
func (f *InvoiceFilter) ByStatus(status ...InvoiceStatus) *InvoiceFilter {
	f.Set("status", joinValues(status)...)

	return f
}

// ByPaymentType matches invoices paid with any of the types.
func (f *InvoiceFilter) ByPaymentType(paymentType ...PaymentType) *InvoiceFilter {
	f.Set("payment_type", joinValues(paymentType)...)

	return f
}

// OfferFilter narrows offer lists.
type OfferFilter struct {
	Filter
}

// NewOfferFilter returns an empty offer filter.
func NewOfferFilter() *OfferFilter {
	return &OfferFilter{}
}

// ByClientID restricts results to one client.
func (f *OfferFilter) ByClientID(clientID int) *OfferFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *OfferFilter) ByContactID(contactID int) *OfferFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByArticleID restricts results to documents containing an article.
func (f *OfferFilter) ByArticleID(articleID int) *OfferFilter {
	f.setID("article_id", articleID)

	return f
}

// ByFrom restricts results to dates on or after from.
func (f *OfferFilter) ByFrom(from time.Time) *OfferFilter {
	f.setDate("from", from)

	return f
}

// ByTo restricts results to dates on or before to.
func (f *OfferFilter) ByTo(to time.Time) *OfferFilter {
	f.setDate("to", to)

	return f
}

// ByDateRange sets both date bounds. A zero bound is left open.
func (f *OfferFilter) ByDateRange(from, to time.Time) *OfferFilter {
	f.setDateRange(from, to)

	return f
}

// ByIntro matches the intro text.
func (f *OfferFilter) ByIntro(intro string) *OfferFilter {
	f.setText("intro", intro)

	return f
}

// ByNote matches the note text.
func (f *OfferFilter) ByNote(note string) *OfferFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *OfferFilter) ByTags(tags ...string) *OfferFilter {
	f.Set("tags", tags...)

	return f
}

// ByOfferNumber matches the offer number.
func (f *OfferFilter) ByOfferNumber(offerNumber string) *OfferFilter {
	f.setText("offer_number", offerNumber)

	return f
}

// ByStatus matches offers in any of the states.
func (f *OfferFilter) ByStatus(status ...OfferStatus) *OfferFilter {
	f.Set("status", joinValues(status)...)

	return f
}

// CreditNoteFilter narrows credit note lists.
type CreditNoteFilter struct {
	Filter
}

// NewCreditNoteFilter returns an empty credit note filter.
func NewCreditNoteFilter() *CreditNoteFilter {
	return &CreditNoteFilter{}
}

// ByClientID restricts results to one client.
func (f *CreditNoteFilter) ByClientID(clientID int) *CreditNoteFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *CreditNoteFilter) ByContactID(contactID int) *CreditNoteFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByArticleID restricts results to documents containing an article.
func (f *CreditNoteFilter) ByArticleID(articleID int) *CreditNoteFilter {
	f.setID("article_id", articleID)

	return f
}

// ByFrom restricts results to dates on or after from.
func (f *CreditNoteFilter) ByFrom(from time.Time) *CreditNoteFilter {
	f.setDate("from", from)

	return f
}

// ByTo restricts results to dates on or before to.
func (f *CreditNoteFilter) ByTo(to time.Time) *CreditNoteFilter {
	f.setDate("to", to)

	return f
}

// ByDateRange sets both date bounds. A zero bound is left open.
func (f *CreditNoteFilter) ByDateRange(from, to time.Time) *CreditNoteFilter {
	f.setDateRange(from, to)

	return f
}

// ByIntro matches the intro text.
func (f *CreditNoteFilter) ByIntro(intro string) *CreditNoteFilter {
	f.setText("intro", intro)

	return f
}

// ByNote matches the note text.
func (f *CreditNoteFilter) ByNote(note string) *CreditNoteFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *CreditNoteFilter) ByTags(tags ...string) *CreditNoteFilter {
	f.Set("tags", tags...)

	return f
}

// ByCreditNoteNumber matches the credit note number.
func (f *CreditNoteFilter) ByCreditNoteNumber(creditNoteNumber string) *CreditNoteFilter {
	f.setText("credit_note_number", creditNoteNumber)

	return f
}

// ByStatus matches credit notes in any of the states.
func (f *CreditNoteFilter) ByStatus(status ...CreditNoteStatus) *CreditNoteFilter {
	f.Set("status", joinValues(status)...)

	return f
}

// DeliveryNoteFilter narrows delivery note lists.
type DeliveryNoteFilter struct {
	Filter
}

// NewDeliveryNoteFilter returns an empty delivery note filter.
func NewDeliveryNoteFilter() *DeliveryNoteFilter {
	return &DeliveryNoteFilter{}
}

// ByClientID restricts results to one client.
func (f *DeliveryNoteFilter) ByClientID(clientID int) *DeliveryNoteFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *DeliveryNoteFilter) ByContactID(contactID int) *DeliveryNoteFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByArticleID restricts results to documents containing an article.
func (f *DeliveryNoteFilter) ByArticleID(articleID int) *DeliveryNoteFilter {
	f.setID("article_id", articleID)

	return f
}

// ByFrom restricts results to dates on or after from.
func (f *DeliveryNoteFilter) ByFrom(from time.Time) *DeliveryNoteFilter {
	f.setDate("from", from)

	return f
}

// ByTo restricts results to dates on or before to.
func (f *DeliveryNoteFilter) ByTo(to time.Time) *DeliveryNoteFilter {
	f.setDate("to", to)

	return f
}

// ByDateRange sets both date bounds. A zero bound is left open.
func (f *DeliveryNoteFilter) ByDateRange(from, to time.Time) *DeliveryNoteFilter {
	f.setDateRange(from, to)

	return f
}

// ByIntro matches the intro text.
func (f *DeliveryNoteFilter) ByIntro(intro string) *DeliveryNoteFilter {
	f.setText("intro", intro)

	return f
}

// ByNote matches the note text.
func (f *DeliveryNoteFilter) ByNote(note string) *DeliveryNoteFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *DeliveryNoteFilter) ByTags(tags ...string) *DeliveryNoteFilter {
	f.Set("tags", tags...)

	return f
}

// ByDeliveryNoteNumber matches the delivery note number.
func (f *DeliveryNoteFilter) ByDeliveryNoteNumber(deliveryNoteNumber string) *DeliveryNoteFilter {
	f.setText("delivery_note_number", deliveryNoteNumber)

	return f
}

// ByStatus matches delivery notes in any of the states.
func (f *DeliveryNoteFilter) ByStatus(status ...DeliveryNoteStatus) *DeliveryNoteFilter {
	f.Set("status", joinValues(status)...)

	return f
}

// ConfirmationFilter narrows confirmation lists.
type ConfirmationFilter struct {
	Filter
}

// NewConfirmationFilter returns an empty confirmation filter.
func NewConfirmationFilter() *ConfirmationFilter {
	return &ConfirmationFilter{}
}

// ByClientID restricts results to one client.
func (f *ConfirmationFilter) ByClientID(clientID int) *ConfirmationFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *ConfirmationFilter) ByContactID(contactID int) *ConfirmationFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByArticleID restricts results to documents containing an article.
func (f *ConfirmationFilter) ByArticleID(articleID int) *ConfirmationFilter {
	f.setID("article_id", articleID)

	return f
}

// ByFrom restricts results to dates on or after from.
func (f *ConfirmationFilter) ByFrom(from time.Time) *ConfirmationFilter {
	f.setDate("from", from)

	return f
}

// ByTo restricts results to dates on or before to.
func (f *ConfirmationFilter) ByTo(to time.Time) *ConfirmationFilter {
	f.setDate("to", to)

	return f
}

// ByDateRange sets both date bounds. A zero bound is left open.
func (f *ConfirmationFilter) ByDateRange(from, to time.Time) *ConfirmationFilter {
	f.setDateRange(from, to)

	return f
}

// ByIntro matches the intro text.
func (f *ConfirmationFilter) ByIntro(intro string) *ConfirmationFilter {
	f.setText("intro", intro)

	return f
}

// ByNote matches the note text.
func (f *ConfirmationFilter) ByNote(note string) *ConfirmationFilter {
	f.setText("note", note)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *ConfirmationFilter) ByTags(tags ...string) *ConfirmationFilter {
	f.Set("tags", tags...)

	return f
}

// ByConfirmationNumber matches the confirmation number.
func (f *ConfirmationFilter) ByConfirmationNumber(confirmationNumber string) *ConfirmationFilter {
	f.setText("confirmation_number", confirmationNumber)

	return f
}

// ByStatus matches confirmations in any of the states.
func (f *ConfirmationFilter) ByStatus(status ...ConfirmationStatus) *ConfirmationFilter {
	f.Set("status", joinValues(status)...)

	return f
}

// RecurringFilter narrows recurring invoice lists.
type RecurringFilter struct {
	Filter
}

// NewRecurringFilter returns an empty recurring filter.
func NewRecurringFilter() *RecurringFilter {
	return &RecurringFilter{}
}

// ByClientID restricts results to one client.
func (f *RecurringFilter) ByClientID(clientID int) *RecurringFilter {
	f.setID("client_id", clientID)

	return f
}

// ByContactID restricts results to one contact of a client.
func (f *RecurringFilter) ByContactID(contactID int) *RecurringFilter {
	f.setID("contact_id", contactID)

	return f
}

// ByTags matches entries carrying any of the tags.
func (f *RecurringFilter) ByTags(tags ...string) *RecurringFilter {
	f.Set("tags", tags...)

	return f
}

// ByName matches the recurring name.
func (f *RecurringFilter) ByName(name string) *RecurringFilter {
	f.setText("name", name)

	return f
}

// ByPaymentType matches recurrings with any of the payment types.
func (f *RecurringFilter) ByPaymentType(paymentType ...PaymentType) *RecurringFilter {
	f.Set("payment_type", joinValues(paymentType)...)

	return f
}

// UserFilter narrows user lists.
type UserFilter struct {
	Filter
}

// NewUserFilter returns an empty user filter.
func NewUserFilter() *UserFilter {
	return &UserFilter{}
}

// ByEmail matches the email address.
func (f *UserFilter) ByEmail(email string) *UserFilter {
	f.setText("email", email)

	return f
}

// ByFirstName matches the first name.
func (f *UserFilter) ByFirstName(firstName string) *UserFilter {
	f.setText("first_name", firstName)

	return f
}

// ByLastName matches the last name.
func (f *UserFilter) ByLastName(lastName string) *UserFilter {
	f.setText("last_name", lastName)

	return f
}
