package client

import (
	"context"
	"encoding/base64"
	"iter"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// AttachmentClient implements billomat.SubResourceService for attachments.
// The base64 payload is decoded into Content on read and encoded from it on
// Create.
type AttachmentClient struct {
	*SubResourceClient[billomat.Attachment, *billomat.Attachment]
}

// NewAttachmentClient creates the attachments client of the resource
// described by parent, e.g. "ClientAttachment" below clients.
func NewAttachmentClient(config *Configuration, parent billomat.Descriptor, name string) *AttachmentClient {
	return &AttachmentClient{
		SubResourceClient: NewSubResourceClient[billomat.Attachment](config, billomat.NewSubDescriptor(parent, name)),
	}
}

func (c *AttachmentClient) decode(attachment *billomat.Attachment) error {
	if attachment.Base64File == "" {
		return nil
	}

	content, err := base64.StdEncoding.DecodeString(attachment.Base64File)
	if err != nil {
		return &billomat.DecodeError{Resource: c.descriptor.Root, Field: "base64file", Err: err}
	}

	attachment.Content = content

	return nil
}

// List implements billomat.SubResourceService.List.
func (c *AttachmentClient) List(ctx context.Context, ownerID int, filter billomat.Query) iter.Seq2[*billomat.Page[billomat.Attachment], error] {
	return paginate(func(number int) (*billomat.Page[billomat.Attachment], error) {
		return c.ListPage(ctx, ownerID, filter, number, billomat.DefaultPerPage)
	})
}

// ListPage implements billomat.SubResourceService.ListPage.
func (c *AttachmentClient) ListPage(ctx context.Context, ownerID int, filter billomat.Query, page, perPage int) (*billomat.Page[billomat.Attachment], error) {
	result, err := c.SubResourceClient.ListPage(ctx, ownerID, filter, page, perPage)
	if err != nil {
		return nil, err
	}

	for index := range result.Entries {
		err = c.decode(&result.Entries[index])
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// All implements billomat.SubResourceService.All.
func (c *AttachmentClient) All(ctx context.Context, ownerID int, filter billomat.Query) ([]billomat.Attachment, error) {
	return collect(c.List(ctx, ownerID, filter))
}

// Get implements billomat.SubResourceService.Get.
func (c *AttachmentClient) Get(ctx context.Context, ownerID, id int) (*billomat.Attachment, bool, error) {
	attachment, found, err := c.SubResourceClient.Get(ctx, ownerID, id)
	if err != nil || !found {
		return nil, found, err
	}

	err = c.decode(attachment)
	if err != nil {
		return nil, false, err
	}

	return attachment, true, nil
}

// Create implements billomat.SubResourceService.Create.
func (c *AttachmentClient) Create(ctx context.Context, attachment *billomat.Attachment) error {
	if attachment.Base64File == "" && len(attachment.Content) > 0 {
		attachment.Base64File = base64.StdEncoding.EncodeToString(attachment.Content)
	}

	err := c.SubResourceClient.Create(ctx, attachment)
	if err != nil {
		return err
	}

	return c.decode(attachment)
}
