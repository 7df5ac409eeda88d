package billomat

import (
	"context"
	"iter"
)

// ResourceService is the contract every top level resource follows.
type ResourceService[E any] interface {
	// List lazily fetches pages starting at page one. Iteration stops after a
	// short page, an empty page or once page*perPage reaches the total. Each
	// call of the returned sequence starts over with fresh requests.
	List(ctx context.Context, filter Query) iter.Seq2[*Page[E], error]
	// ListPage fetches a single page.
	ListPage(ctx context.Context, filter Query, page, perPage int) (*Page[E], error)
	// All collects the entries of every page.
	All(ctx context.Context, filter Query) ([]E, error)
	// Get returns false with a nil error when the entity does not exist.
	Get(ctx context.Context, id int) (*E, bool, error)
	// Create sends the non-empty fields of entity and decodes the response
	// into entity, assigning its id and server computed fields.
	Create(ctx context.Context, entity *E) error
	// Update sends the non-empty fields of entity. The entity must have an id.
	Update(ctx context.Context, entity *E) error
	// Delete removes the entity. A missing id is reported as a 404
	// TransportError.
	Delete(ctx context.Context, id int) error
}

// SubResourceService is the contract of collections owned by another entity.
// Every operation requires a positive owner id; Create and Update read it
// from the entity.
type SubResourceService[E any] interface {
	List(ctx context.Context, ownerID int, filter Query) iter.Seq2[*Page[E], error]
	ListPage(ctx context.Context, ownerID int, filter Query, page, perPage int) (*Page[E], error)
	All(ctx context.Context, ownerID int, filter Query) ([]E, error)
	Get(ctx context.Context, ownerID, id int) (*E, bool, error)
	Create(ctx context.Context, entity *E) error
	Update(ctx context.Context, entity *E) error
	Delete(ctx context.Context, ownerID, id int) error
}

// CustomFieldService reads and writes the free custom field of an entity.
type CustomFieldService interface {
	Get(ctx context.Context, ownerID int) (string, error)
	Set(ctx context.Context, ownerID int, value string) error
}

// DocumentService adds the document workflow to a resource service.
type DocumentService[E any] interface {
	ResourceService[E]

	// Complete turns a draft into an open document, rendering it with the
	// given template (zero selects the default template).
	Complete(ctx context.Context, id, templateID int) error
	// PDF fetches the rendered document.
	PDF(ctx context.Context, id int) (*PDF, error)
	// SendEmail mails the document.
	SendEmail(ctx context.Context, id int, email *Email) error

	Items() SubResourceService[Item]
	Comments() SubResourceService[Comment]
	Tags() SubResourceService[Tag]
	Attachments() SubResourceService[Attachment]
	CustomField() CustomFieldService
}

// Cancelable documents can be canceled and restored.
type Cancelable interface {
	Cancel(ctx context.Context, id int) error
	Uncancel(ctx context.Context, id int) error
}

// ClientsService manages clients.
type ClientsService interface {
	ResourceService[Client]

	// Myself returns the client record of the account owner.
	Myself(ctx context.Context) (*Client, error)
	Tags() SubResourceService[Tag]
	Attachments() SubResourceService[Attachment]
	PropertyValues() SubResourceService[ClientPropertyValue]
	CustomField() CustomFieldService
}

// ArticlesService manages articles.
type ArticlesService interface {
	ResourceService[Article]

	PropertyValues() SubResourceService[ArticlePropertyValue]
	CustomField() CustomFieldService
}

// InvoicesService manages invoices.
type InvoicesService interface {
	DocumentService[Invoice]
	Cancelable

	Payments() SubResourceService[Payment]
}

// OffersService manages offers.
type OffersService interface {
	DocumentService[Offer]
	Cancelable
}

// CreditNotesService manages credit notes.
type CreditNotesService interface {
	DocumentService[CreditNote]

	Payments() SubResourceService[Payment]
}

// DeliveryNotesService manages delivery notes.
type DeliveryNotesService interface {
	DocumentService[DeliveryNote]
}

// ConfirmationsService manages confirmations.
type ConfirmationsService interface {
	DocumentService[Confirmation]
	Cancelable
}

// RecurringsService manages recurring invoices.
type RecurringsService interface {
	ResourceService[Recurring]

	Items() SubResourceService[Item]
	Tags() SubResourceService[Tag]
	EmailReceivers() SubResourceService[RecurringEmailReceiver]
	CustomField() CustomFieldService
}

// UsersService manages users.
type UsersService interface {
	ResourceService[User]

	// Myself returns the user the API key belongs to.
	Myself(ctx context.Context) (*User, error)
	PropertyValues() SubResourceService[UserPropertyValue]
	CustomField() CustomFieldService
}

// SettingsService reads and writes the account settings.
type SettingsService interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, settings *Settings) error
}

// API is the entry point to every resource of one account. The underlying
// configuration is validated and the transport built on first use.
type API interface {
	Clients() ClientsService
	Articles() ArticlesService
	Invoices() InvoicesService
	Offers() OffersService
	CreditNotes() CreditNotesService
	DeliveryNotes() DeliveryNotesService
	Confirmations() ConfirmationsService
	Recurrings() RecurringsService
	Users() UsersService
	Settings() SettingsService

	ClientProperties() ResourceService[Property]
	ArticleProperties() ResourceService[Property]
	UserProperties() ResourceService[Property]

	// Init validates the configuration and builds the transport. Services
	// call it implicitly; calling it early surfaces configuration errors.
	Init() error
	// Close releases background resources such as the rate limiter.
	Close() error
}
