package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const customFieldSegment = "/customfield"

// customField is the body of /<plural>/<id>/customfield, wrapped in the
// owner's singular root.
type customField struct {
	ID    int    `json:"id,omitempty" view:"readonly"`
	Value string `json:"customfield"`
}

// CustomFieldClient implements billomat.CustomFieldService for one resource.
type CustomFieldClient struct {
	service
}

// NewCustomFieldClient creates a custom field client for the entities
// described by owner.
func NewCustomFieldClient(config *Configuration, owner billomat.Descriptor) *CustomFieldClient {
	return &CustomFieldClient{service: service{config: config, descriptor: owner}}
}

func (c *CustomFieldClient) path(ownerID int) string {
	return c.descriptor.EntityPath(ownerID) + customFieldSegment
}

// Get implements billomat.CustomFieldService.Get.
func (c *CustomFieldClient) Get(ctx context.Context, ownerID int) (string, error) {
	if ownerID <= 0 {
		return "", c.invalid(fmt.Sprintf("owner id must be positive, got %d", ownerID))
	}

	state, err := c.config.ensure()
	if err != nil {
		return "", err
	}

	resp, err := state.transport.Get(ctx, c.path(ownerID), nil)
	if err != nil {
		return "", fmt.Errorf("getting custom field of %s %d: %w", c.descriptor.Root, ownerID, err)
	}

	var field customField

	err = state.codec.Decode(c.descriptor.Root, resp.Body, &field)
	if err != nil {
		return "", fmt.Errorf("parsing custom field response: %w", err)
	}

	return field.Value, nil
}

// Set implements billomat.CustomFieldService.Set.
func (c *CustomFieldClient) Set(ctx context.Context, ownerID int, value string) error {
	if ownerID <= 0 {
		return c.invalid(fmt.Sprintf("owner id must be positive, got %d", ownerID))
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.Encode(c.descriptor.Root, &customField{Value: value})
	if err != nil {
		return err
	}

	_, err = state.transport.Put(ctx, c.path(ownerID), body)
	if err != nil {
		return fmt.Errorf("setting custom field of %s %d: %w", c.descriptor.Root, ownerID, err)
	}

	c.publish(ctx, billomat.EventUpdated, ownerID, 0)

	return nil
}
