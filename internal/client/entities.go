package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// ClientsClient implements billomat.ClientsService.
type ClientsClient struct {
	*ResourceClient[billomat.Client, *billomat.Client]

	tags           *SubResourceClient[billomat.Tag, *billomat.Tag]
	attachments    *AttachmentClient
	propertyValues *SubResourceClient[billomat.ClientPropertyValue, *billomat.ClientPropertyValue]
	customField    *CustomFieldClient
}

// NewClientsClient creates the clients client.
func NewClientsClient(config *Configuration) *ClientsClient {
	descriptor := billomat.NewDescriptor("Client")

	return &ClientsClient{
		ResourceClient: NewResourceClient[billomat.Client](config, descriptor),
		tags:           NewSubResourceClient[billomat.Tag](config, billomat.NewSubDescriptor(descriptor, "ClientTag")),
		attachments:    NewAttachmentClient(config, descriptor, "ClientAttachment"),
		propertyValues: NewSubResourceClient[billomat.ClientPropertyValue](config, billomat.NewSubDescriptor(descriptor, "ClientPropertyValue")),
		customField:    NewCustomFieldClient(config, descriptor),
	}
}

// Myself implements billomat.ClientsService.Myself.
func (c *ClientsClient) Myself(ctx context.Context) (*billomat.Client, error) {
	return c.myself(ctx)
}

// Tags implements billomat.ClientsService.Tags.
func (c *ClientsClient) Tags() billomat.SubResourceService[billomat.Tag] {
	return c.tags
}

// Attachments implements billomat.ClientsService.Attachments.
func (c *ClientsClient) Attachments() billomat.SubResourceService[billomat.Attachment] {
	return c.attachments
}

// PropertyValues implements billomat.ClientsService.PropertyValues.
func (c *ClientsClient) PropertyValues() billomat.SubResourceService[billomat.ClientPropertyValue] {
	return c.propertyValues
}

// CustomField implements billomat.ClientsService.CustomField.
func (c *ClientsClient) CustomField() billomat.CustomFieldService {
	return c.customField
}

// ArticlesClient implements billomat.ArticlesService.
type ArticlesClient struct {
	*ResourceClient[billomat.Article, *billomat.Article]

	propertyValues *SubResourceClient[billomat.ArticlePropertyValue, *billomat.ArticlePropertyValue]
	customField    *CustomFieldClient
}

// NewArticlesClient creates the articles client.
func NewArticlesClient(config *Configuration) *ArticlesClient {
	descriptor := billomat.NewDescriptor("Article")

	return &ArticlesClient{
		ResourceClient: NewResourceClient[billomat.Article](config, descriptor),
		propertyValues: NewSubResourceClient[billomat.ArticlePropertyValue](config, billomat.NewSubDescriptor(descriptor, "ArticlePropertyValue")),
		customField:    NewCustomFieldClient(config, descriptor),
	}
}

// PropertyValues implements billomat.ArticlesService.PropertyValues.
func (c *ArticlesClient) PropertyValues() billomat.SubResourceService[billomat.ArticlePropertyValue] {
	return c.propertyValues
}

// CustomField implements billomat.ArticlesService.CustomField.
func (c *ArticlesClient) CustomField() billomat.CustomFieldService {
	return c.customField
}

// RecurringsClient implements billomat.RecurringsService.
type RecurringsClient struct {
	*ResourceClient[billomat.Recurring, *billomat.Recurring]

	items          *SubResourceClient[billomat.Item, *billomat.Item]
	tags           *SubResourceClient[billomat.Tag, *billomat.Tag]
	emailReceivers *SubResourceClient[billomat.RecurringEmailReceiver, *billomat.RecurringEmailReceiver]
	customField    *CustomFieldClient
}

// NewRecurringsClient creates the recurring invoices client.
func NewRecurringsClient(config *Configuration) *RecurringsClient {
	descriptor := billomat.NewDescriptor("Recurring")

	return &RecurringsClient{
		ResourceClient: NewResourceClient[billomat.Recurring](config, descriptor),
		items:          NewSubResourceClient[billomat.Item](config, billomat.NewSubDescriptor(descriptor, "RecurringItem")),
		tags:           NewSubResourceClient[billomat.Tag](config, billomat.NewSubDescriptor(descriptor, "RecurringTag")),
		emailReceivers: NewSubResourceClient[billomat.RecurringEmailReceiver](config, billomat.NewSubDescriptor(descriptor, "RecurringEmailReceiver")),
		customField:    NewCustomFieldClient(config, descriptor),
	}
}

// Items implements billomat.RecurringsService.Items.
func (c *RecurringsClient) Items() billomat.SubResourceService[billomat.Item] {
	return c.items
}

// Tags implements billomat.RecurringsService.Tags.
func (c *RecurringsClient) Tags() billomat.SubResourceService[billomat.Tag] {
	return c.tags
}

// EmailReceivers implements billomat.RecurringsService.EmailReceivers.
func (c *RecurringsClient) EmailReceivers() billomat.SubResourceService[billomat.RecurringEmailReceiver] {
	return c.emailReceivers
}

// CustomField implements billomat.RecurringsService.CustomField.
func (c *RecurringsClient) CustomField() billomat.CustomFieldService {
	return c.customField
}

// UsersClient implements billomat.UsersService.
type UsersClient struct {
	*ResourceClient[billomat.User, *billomat.User]

	propertyValues *SubResourceClient[billomat.UserPropertyValue, *billomat.UserPropertyValue]
	customField    *CustomFieldClient
}

// NewUsersClient creates the users client.
func NewUsersClient(config *Configuration) *UsersClient {
	descriptor := billomat.NewDescriptor("User")

	return &UsersClient{
		ResourceClient: NewResourceClient[billomat.User](config, descriptor),
		propertyValues: NewSubResourceClient[billomat.UserPropertyValue](config, billomat.NewSubDescriptor(descriptor, "UserPropertyValue")),
		customField:    NewCustomFieldClient(config, descriptor),
	}
}

// Myself implements billomat.UsersService.Myself.
func (c *UsersClient) Myself(ctx context.Context) (*billomat.User, error) {
	return c.myself(ctx)
}

// PropertyValues implements billomat.UsersService.PropertyValues.
func (c *UsersClient) PropertyValues() billomat.SubResourceService[billomat.UserPropertyValue] {
	return c.propertyValues
}

// CustomField implements billomat.UsersService.CustomField.
func (c *UsersClient) CustomField() billomat.CustomFieldService {
	return c.customField
}

const (
	settingsRoot = "settings"
	settingsPath = "/api/settings"
)

// SettingsClient implements billomat.SettingsService.
type SettingsClient struct {
	config *Configuration
}

// NewSettingsClient creates the settings client.
func NewSettingsClient(config *Configuration) *SettingsClient {
	return &SettingsClient{config: config}
}

// Get implements billomat.SettingsService.Get.
func (c *SettingsClient) Get(ctx context.Context) (*billomat.Settings, error) {
	state, err := c.config.ensure()
	if err != nil {
		return nil, err
	}

	resp, err := state.transport.Get(ctx, settingsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	var settings billomat.Settings

	err = state.codec.Decode(settingsRoot, resp.Body, &settings)
	if err != nil {
		return nil, fmt.Errorf("parsing settings response: %w", err)
	}

	return &settings, nil
}

// Update implements billomat.SettingsService.Update.
func (c *SettingsClient) Update(ctx context.Context, settings *billomat.Settings) error {
	if settings == nil {
		return &billomat.InvalidStateError{Resource: settingsRoot, Reason: "settings are required"}
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.Encode(settingsRoot, settings)
	if err != nil {
		return err
	}

	_, err = state.transport.Put(ctx, settingsPath, body)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}

	return nil
}
