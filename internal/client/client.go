package client

import (
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// Client implements the billomat.API interface.
type Client struct {
	config *Configuration

	// Resource clients
	clients           *ClientsClient
	articles          *ArticlesClient
	invoices          *InvoicesClient
	offers            *OffersClient
	creditNotes       *CreditNotesClient
	deliveryNotes     *DeliveryNotesClient
	confirmations     *ConfirmationsClient
	recurrings        *RecurringsClient
	users             *UsersClient
	settings          *SettingsClient
	clientProperties  *ResourceClient[billomat.Property, *billomat.Property]
	articleProperties *ResourceClient[billomat.Property, *billomat.Property]
	userProperties    *ResourceClient[billomat.Property, *billomat.Property]
}

// New creates a client for config. Validation and transport setup happen on
// first use or on an explicit Init.
func New(config *billomat.Config) *Client {
	client := &Client{
		config: NewConfiguration(config),
	}

	client.initializeResourceClients()

	return client
}

func (c *Client) initializeResourceClients() {
	c.clients = NewClientsClient(c.config)
	c.articles = NewArticlesClient(c.config)
	c.invoices = NewInvoicesClient(c.config)
	c.offers = NewOffersClient(c.config)
	c.creditNotes = NewCreditNotesClient(c.config)
	c.deliveryNotes = NewDeliveryNotesClient(c.config)
	c.confirmations = NewConfirmationsClient(c.config)
	c.recurrings = NewRecurringsClient(c.config)
	c.users = NewUsersClient(c.config)
	c.settings = NewSettingsClient(c.config)
	c.clientProperties = NewResourceClient[billomat.Property](c.config, billomat.NewDescriptor("ClientProperty"))
	c.articleProperties = NewResourceClient[billomat.Property](c.config, billomat.NewDescriptor("ArticleProperty"))
	c.userProperties = NewResourceClient[billomat.Property](c.config, billomat.NewDescriptor("UserProperty"))
}

// Configuration returns the lazily initialized configuration.
func (c *Client) Configuration() *Configuration {
	return c.config
}

// Init implements billomat.API.Init.
func (c *Client) Init() error {
	return c.config.Init()
}

// Close implements billomat.API.Close.
func (c *Client) Close() error {
	return c.config.Close()
}

// Resource client accessors

// Clients implements billomat.API.Clients.
func (c *Client) Clients() billomat.ClientsService {
	return c.clients
}

// Articles implements billomat.API.Articles.
func (c *Client) Articles() billomat.ArticlesService {
	return c.articles
}

// Invoices implements billomat.API.Invoices.
func (c *Client) Invoices() billomat.InvoicesService {
	return c.invoices
}

// Offers implements billomat.API.Offers.
func (c *Client) Offers() billomat.OffersService {
	return c.offers
}

// CreditNotes implements billomat.API.CreditNotes.
func (c *Client) CreditNotes() billomat.CreditNotesService {
	return c.creditNotes
}

// DeliveryNotes implements billomat.API.DeliveryNotes.
func (c *Client) DeliveryNotes() billomat.DeliveryNotesService {
	return c.deliveryNotes
}

// Confirmations implements billomat.API.Confirmations.
func (c *Client) Confirmations() billomat.ConfirmationsService {
	return c.confirmations
}

// Recurrings implements billomat.API.Recurrings.
func (c *Client) Recurrings() billomat.RecurringsService {
	return c.recurrings
}

// Users implements billomat.API.Users.
func (c *Client) Users() billomat.UsersService {
	return c.users
}

// Settings implements billomat.API.Settings.
func (c *Client) Settings() billomat.SettingsService {
	return c.settings
}

// ClientProperties implements billomat.API.ClientProperties.
func (c *Client) ClientProperties() billomat.ResourceService[billomat.Property] {
	return c.clientProperties
}

// ArticleProperties implements billomat.API.ArticleProperties.
func (c *Client) ArticleProperties() billomat.ResourceService[billomat.Property] {
	return c.articleProperties
}

// UserProperties implements billomat.API.UserProperties.
func (c *Client) UserProperties() billomat.ResourceService[billomat.Property] {
	return c.userProperties
}

var _ billomat.API = (*Client)(nil)
