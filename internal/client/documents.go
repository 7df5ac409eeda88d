package client

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// Document action roots and path segments.
const (
	completeRoot = "complete"
	emailRoot    = "email"
	pdfRoot      = "pdf"

	cancelAction   = "cancel"
	uncancelAction = "uncancel"
)

// DocumentClient implements billomat.DocumentService: CRUD plus the document
// workflow and the sub-resources of each document.
type DocumentClient[E any, P entity[E]] struct {
	*ResourceClient[E, P]

	items       *SubResourceClient[billomat.Item, *billomat.Item]
	comments    *SubResourceClient[billomat.Comment, *billomat.Comment]
	tags        *SubResourceClient[billomat.Tag, *billomat.Tag]
	attachments *AttachmentClient
	customField *CustomFieldClient
}

// NewDocumentClient creates a document client for the resource called name,
// e.g. "Invoice".
func NewDocumentClient[E any, P entity[E]](config *Configuration, name string) *DocumentClient[E, P] {
	descriptor := billomat.NewDescriptor(name)

	return &DocumentClient[E, P]{
		ResourceClient: NewResourceClient[E, P](config, descriptor),
		items:          NewSubResourceClient[billomat.Item](config, billomat.NewSubDescriptor(descriptor, name+"Item")),
		comments:       NewSubResourceClient[billomat.Comment](config, billomat.NewSubDescriptor(descriptor, name+"Comment")),
		tags:           NewSubResourceClient[billomat.Tag](config, billomat.NewSubDescriptor(descriptor, name+"Tag")),
		attachments:    NewAttachmentClient(config, descriptor, name+"Attachment"),
		customField:    NewCustomFieldClient(config, descriptor),
	}
}

// Items implements billomat.DocumentService.Items.
func (c *DocumentClient[E, P]) Items() billomat.SubResourceService[billomat.Item] {
	return c.items
}

// Comments implements billomat.DocumentService.Comments.
func (c *DocumentClient[E, P]) Comments() billomat.SubResourceService[billomat.Comment] {
	return c.comments
}

// Tags implements billomat.DocumentService.Tags.
func (c *DocumentClient[E, P]) Tags() billomat.SubResourceService[billomat.Tag] {
	return c.tags
}

// Attachments implements billomat.DocumentService.Attachments.
func (c *DocumentClient[E, P]) Attachments() billomat.SubResourceService[billomat.Attachment] {
	return c.attachments
}

// CustomField implements billomat.DocumentService.CustomField.
func (c *DocumentClient[E, P]) CustomField() billomat.CustomFieldService {
	return c.customField
}

func (c *DocumentClient[E, P]) actionPath(id int, action string) string {
	return c.descriptor.EntityPath(id) + "/" + action
}

// action sends PUT /<plural>/<id>/<action> with an optional body.
func (c *DocumentClient[E, P]) action(ctx context.Context, id int, action string, body []byte) error {
	if id <= 0 {
		return c.invalid(fmt.Sprintf("cannot %s a %s without id", action, c.descriptor.Root))
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	_, err = state.transport.Put(ctx, c.actionPath(id, action), body)
	if err != nil {
		return fmt.Errorf("%s %s %d: %w", action, c.descriptor.Root, id, err)
	}

	c.publish(ctx, billomat.EventUpdated, id, 0)

	return nil
}

// Complete implements billomat.DocumentService.Complete.
func (c *DocumentClient[E, P]) Complete(ctx context.Context, id, templateID int) error {
	if id <= 0 {
		return c.invalid("cannot complete a document without id")
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.Encode(completeRoot, &billomat.Completion{TemplateID: templateID})
	if err != nil {
		return err
	}

	return c.action(ctx, id, completeRoot, body)
}

// PDF implements billomat.DocumentService.PDF. The base64 payload is decoded
// into Content.
func (c *DocumentClient[E, P]) PDF(ctx context.Context, id int) (*billomat.PDF, error) {
	if id <= 0 {
		return nil, c.invalid("cannot render a document without id")
	}

	state, err := c.config.ensure()
	if err != nil {
		return nil, err
	}

	resp, err := state.transport.Get(ctx, c.actionPath(id, pdfRoot), nil)
	if err != nil {
		return nil, fmt.Errorf("getting pdf of %s %d: %w", c.descriptor.Root, id, err)
	}

	var pdf billomat.PDF

	err = state.codec.Decode(pdfRoot, resp.Body, &pdf)
	if err != nil {
		return nil, fmt.Errorf("parsing pdf response: %w", err)
	}

	pdf.Content, err = base64.StdEncoding.DecodeString(pdf.Base64File)
	if err != nil {
		return nil, &billomat.DecodeError{Resource: pdfRoot, Field: "base64file", Err: err}
	}

	return &pdf, nil
}

// SendEmail implements billomat.DocumentService.SendEmail.
func (c *DocumentClient[E, P]) SendEmail(ctx context.Context, id int, email *billomat.Email) error {
	if id <= 0 {
		return c.invalid("cannot mail a document without id")
	}

	if email == nil {
		email = &billomat.Email{}
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.Encode(emailRoot, email)
	if err != nil {
		return err
	}

	_, err = state.transport.Post(ctx, c.actionPath(id, emailRoot), body)
	if err != nil {
		return fmt.Errorf("mailing %s %d: %w", c.descriptor.Root, id, err)
	}

	return nil
}

// InvoicesClient implements billomat.InvoicesService.
type InvoicesClient struct {
	*DocumentClient[billomat.Invoice, *billomat.Invoice]

	payments *SubResourceClient[billomat.Payment, *billomat.Payment]
}

// NewInvoicesClient creates the invoices client.
func NewInvoicesClient(config *Configuration) *InvoicesClient {
	documents := NewDocumentClient[billomat.Invoice](config, "Invoice")

	return &InvoicesClient{
		DocumentClient: documents,
		payments:       NewSubResourceClient[billomat.Payment](config, billomat.NewSubDescriptor(documents.descriptor, "InvoicePayment")),
	}
}

// Payments implements billomat.InvoicesService.Payments.
func (c *InvoicesClient) Payments() billomat.SubResourceService[billomat.Payment] {
	return c.payments
}

// Cancel implements billomat.Cancelable.Cancel.
func (c *InvoicesClient) Cancel(ctx context.Context, id int) error {
	return c.action(ctx, id, cancelAction, nil)
}

// Uncancel implements billomat.Cancelable.Uncancel.
func (c *InvoicesClient) Uncancel(ctx context.Context, id int) error {
	return c.action(ctx, id, uncancelAction, nil)
}

// OffersClient implements billomat.OffersService.
type OffersClient struct {
	*DocumentClient[billomat.Offer, *billomat.Offer]
}

// NewOffersClient creates the offers client.
func NewOffersClient(config *Configuration) *OffersClient {
	return &OffersClient{DocumentClient: NewDocumentClient[billomat.Offer](config, "Offer")}
}

// Cancel implements billomat.Cancelable.Cancel.
func (c *OffersClient) Cancel(ctx context.Context, id int) error {
	return c.action(ctx, id, cancelAction, nil)
}

// Uncancel implements billomat.Cancelable.Uncancel.
func (c *OffersClient) Uncancel(ctx context.Context, id int) error {
	return c.action(ctx, id, uncancelAction, nil)
}

// CreditNotesClient implements billomat.CreditNotesService.
type CreditNotesClient struct {
	*DocumentClient[billomat.CreditNote, *billomat.CreditNote]

	payments *SubResourceClient[billomat.Payment, *billomat.Payment]
}

// NewCreditNotesClient creates the credit notes client.
func NewCreditNotesClient(config *Configuration) *CreditNotesClient {
	documents := NewDocumentClient[billomat.CreditNote](config, "CreditNote")

	return &CreditNotesClient{
		DocumentClient: documents,
		payments:       NewSubResourceClient[billomat.Payment](config, billomat.NewSubDescriptor(documents.descriptor, "CreditNotePayment")),
	}
}

// Payments implements billomat.CreditNotesService.Payments.
func (c *CreditNotesClient) Payments() billomat.SubResourceService[billomat.Payment] {
	return c.payments
}

// DeliveryNotesClient implements billomat.DeliveryNotesService.
type DeliveryNotesClient struct {
	*DocumentClient[billomat.DeliveryNote, *billomat.DeliveryNote]
}

// NewDeliveryNotesClient creates the delivery notes client.
func NewDeliveryNotesClient(config *Configuration) *DeliveryNotesClient {
	return &DeliveryNotesClient{DocumentClient: NewDocumentClient[billomat.DeliveryNote](config, "DeliveryNote")}
}

// ConfirmationsClient implements billomat.ConfirmationsService.
type ConfirmationsClient struct {
	*DocumentClient[billomat.Confirmation, *billomat.Confirmation]
}

// NewConfirmationsClient creates the confirmations client.
func NewConfirmationsClient(config *Configuration) *ConfirmationsClient {
	return &ConfirmationsClient{DocumentClient: NewDocumentClient[billomat.Confirmation](config, "Confirmation")}
}

// Cancel implements billomat.Cancelable.Cancel.
func (c *ConfirmationsClient) Cancel(ctx context.Context, id int) error {
	return c.action(ctx, id, cancelAction, nil)
}

// Uncancel implements billomat.Cancelable.Uncancel.
func (c *ConfirmationsClient) Uncancel(ctx context.Context, id int) error {
	return c.action(ctx, id, uncancelAction, nil)
}
