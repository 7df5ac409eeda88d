package client

import (
	"context"
	"fmt"
	"iter"

	"github.com/fivetwenty-io/billomat/internal/codec"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// ResourceClient implements billomat.ResourceService for any top level
// resource described by a descriptor.
type ResourceClient[E any, P entity[E]] struct {
	service
}

// NewResourceClient creates a client for the resource described by descriptor.
func NewResourceClient[E any, P entity[E]](config *Configuration, descriptor billomat.Descriptor) *ResourceClient[E, P] {
	return &ResourceClient[E, P]{service: service{config: config, descriptor: descriptor}}
}

// Descriptor returns the descriptor the client addresses.
func (c *ResourceClient[E, P]) Descriptor() billomat.Descriptor {
	return c.descriptor
}

// List implements billomat.ResourceService.List.
func (c *ResourceClient[E, P]) List(ctx context.Context, filter billomat.Query) iter.Seq2[*billomat.Page[E], error] {
	return paginate(func(number int) (*billomat.Page[E], error) {
		return c.ListPage(ctx, filter, number, billomat.DefaultPerPage)
	})
}

// ListPage implements billomat.ResourceService.ListPage.
func (c *ResourceClient[E, P]) ListPage(ctx context.Context, filter billomat.Query, page, perPage int) (*billomat.Page[E], error) {
	query, err := c.listQuery(filter, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.descriptor.PluralRoot, err)
	}

	state, err := c.config.ensure()
	if err != nil {
		return nil, err
	}

	resp, err := state.transport.Get(ctx, c.descriptor.Path, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.descriptor.PluralRoot, err)
	}

	result, err := codec.DecodePage[E](state.codec, c.descriptor, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.descriptor.PluralRoot, err)
	}

	return fillPage(result, page, perPage), nil
}

// All implements billomat.ResourceService.All.
func (c *ResourceClient[E, P]) All(ctx context.Context, filter billomat.Query) ([]E, error) {
	return collect(c.List(ctx, filter))
}

// Get implements billomat.ResourceService.Get.
func (c *ResourceClient[E, P]) Get(ctx context.Context, id int) (*E, bool, error) {
	state, err := c.config.ensure()
	if err != nil {
		return nil, false, err
	}

	resp, err := state.transport.Get(ctx, c.descriptor.EntityPath(id), nil)
	if billomat.IsNotFound(err) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("getting %s %d: %w", c.descriptor.Root, id, err)
	}

	var result E

	err = state.codec.DecodeEntity(c.descriptor, resp.Body, P(&result))
	if err != nil {
		return nil, false, fmt.Errorf("parsing %s response: %w", c.descriptor.Root, err)
	}

	return &result, true, nil
}

// Create implements billomat.ResourceService.Create. The response is decoded
// into entity.
func (c *ResourceClient[E, P]) Create(ctx context.Context, entity *E) error {
	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.EncodeEntity(c.descriptor, P(entity))
	if err != nil {
		return err
	}

	resp, err := state.transport.Post(ctx, c.descriptor.Path, body)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.descriptor.Root, err)
	}

	err = state.codec.DecodeEntity(c.descriptor, resp.Body, P(entity))
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", c.descriptor.Root, err)
	}

	c.publish(ctx, billomat.EventCreated, P(entity).Identity().ID, 0)

	return nil
}

// Update implements billomat.ResourceService.Update. The entity is not
// refreshed from the response.
func (c *ResourceClient[E, P]) Update(ctx context.Context, entity *E) error {
	id := P(entity).Identity().ID
	if id == 0 {
		return c.invalid("cannot update an entity without id")
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.EncodeEntity(c.descriptor, P(entity))
	if err != nil {
		return err
	}

	_, err = state.transport.Put(ctx, c.descriptor.EntityPath(id), body)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", c.descriptor.Root, id, err)
	}

	c.publish(ctx, billomat.EventUpdated, id, 0)

	return nil
}

// Delete implements billomat.ResourceService.Delete.
func (c *ResourceClient[E, P]) Delete(ctx context.Context, id int) error {
	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	_, err = state.transport.Delete(ctx, c.descriptor.EntityPath(id))
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", c.descriptor.Root, id, err)
	}

	c.publish(ctx, billomat.EventDeleted, id, 0)

	return nil
}

// myself fetches a singleton below the collection path, e.g.
// /api/users/myself.
func (c *ResourceClient[E, P]) myself(ctx context.Context) (*E, error) {
	state, err := c.config.ensure()
	if err != nil {
		return nil, err
	}

	resp, err := state.transport.Get(ctx, c.descriptor.Path+"/myself", nil)
	if err != nil {
		return nil, fmt.Errorf("getting own %s: %w", c.descriptor.Root, err)
	}

	var result E

	err = state.codec.DecodeEntity(c.descriptor, resp.Body, P(&result))
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", c.descriptor.Root, err)
	}

	return &result, nil
}

// SubResourceClient implements billomat.SubResourceService for collections
// owned by another entity.
type SubResourceClient[E any, P ownedEntity[E]] struct {
	service
}

// NewSubResourceClient creates a client for the sub-resource described by
// descriptor.
func NewSubResourceClient[E any, P ownedEntity[E]](config *Configuration, descriptor billomat.Descriptor) *SubResourceClient[E, P] {
	return &SubResourceClient[E, P]{service: service{config: config, descriptor: descriptor}}
}

// Descriptor returns the descriptor the client addresses.
func (c *SubResourceClient[E, P]) Descriptor() billomat.Descriptor {
	return c.descriptor
}

func (c *SubResourceClient[E, P]) checkOwner(ownerID int) error {
	if ownerID <= 0 {
		return c.invalid(fmt.Sprintf("owner id must be positive, got %d", ownerID))
	}

	return nil
}

// List implements billomat.SubResourceService.List.
func (c *SubResourceClient[E, P]) List(ctx context.Context, ownerID int, filter billomat.Query) iter.Seq2[*billomat.Page[E], error] {
	return paginate(func(number int) (*billomat.Page[E], error) {
		return c.ListPage(ctx, ownerID, filter, number, billomat.DefaultPerPage)
	})
}

// ListPage implements billomat.SubResourceService.ListPage.
func (c *SubResourceClient[E, P]) ListPage(ctx context.Context, ownerID int, filter billomat.Query, page, perPage int) (*billomat.Page[E], error) {
	err := c.checkOwner(ownerID)
	if err != nil {
		return nil, err
	}

	query, err := c.listQuery(filter, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", c.descriptor.PluralRoot, err)
	}

	state, err := c.config.ensure()
	if err != nil {
		return nil, err
	}

	resp, err := state.transport.Get(ctx, c.descriptor.CollectionPath(ownerID), query)
	if err != nil {
		return nil, fmt.Errorf("listing %s of %d: %w", c.descriptor.PluralRoot, ownerID, err)
	}

	result, err := codec.DecodePage[E](state.codec, c.descriptor, resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.descriptor.PluralRoot, err)
	}

	for index := range result.Entries {
		owned := P(&result.Entries[index]).Ownership()
		if owned.OwnerID == 0 {
			owned.OwnerID = ownerID
		}
	}

	return fillPage(result, page, perPage), nil
}

// All implements billomat.SubResourceService.All.
func (c *SubResourceClient[E, P]) All(ctx context.Context, ownerID int, filter billomat.Query) ([]E, error) {
	return collect(c.List(ctx, ownerID, filter))
}

// Get implements billomat.SubResourceService.Get.
func (c *SubResourceClient[E, P]) Get(ctx context.Context, ownerID, id int) (*E, bool, error) {
	err := c.checkOwner(ownerID)
	if err != nil {
		return nil, false, err
	}

	state, err := c.config.ensure()
	if err != nil {
		return nil, false, err
	}

	resp, err := state.transport.Get(ctx, c.descriptor.SubEntityPath(ownerID, id), nil)
	if billomat.IsNotFound(err) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, fmt.Errorf("getting %s %d: %w", c.descriptor.Root, id, err)
	}

	var result E

	err = state.codec.DecodeEntity(c.descriptor, resp.Body, P(&result))
	if err != nil {
		return nil, false, fmt.Errorf("parsing %s response: %w", c.descriptor.Root, err)
	}

	if P(&result).Ownership().OwnerID == 0 {
		P(&result).Ownership().OwnerID = ownerID
	}

	return &result, true, nil
}

// Create implements billomat.SubResourceService.Create. The owner is read
// from the entity and the response is decoded into it.
func (c *SubResourceClient[E, P]) Create(ctx context.Context, entity *E) error {
	ownerID := P(entity).Ownership().OwnerID

	err := c.checkOwner(ownerID)
	if err != nil {
		return err
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.EncodeEntity(c.descriptor, P(entity))
	if err != nil {
		return err
	}

	resp, err := state.transport.Post(ctx, c.descriptor.CollectionPath(ownerID), body)
	if err != nil {
		return fmt.Errorf("creating %s: %w", c.descriptor.Root, err)
	}

	err = state.codec.DecodeEntity(c.descriptor, resp.Body, P(entity))
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", c.descriptor.Root, err)
	}

	if P(entity).Ownership().OwnerID == 0 {
		P(entity).Ownership().OwnerID = ownerID
	}

	c.publish(ctx, billomat.EventCreated, P(entity).Identity().ID, ownerID)

	return nil
}

// Update implements billomat.SubResourceService.Update.
func (c *SubResourceClient[E, P]) Update(ctx context.Context, entity *E) error {
	owned := P(entity).Ownership()

	err := c.checkOwner(owned.OwnerID)
	if err != nil {
		return err
	}

	if owned.ID == 0 {
		return c.invalid("cannot update an entity without id")
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	body, err := state.codec.EncodeEntity(c.descriptor, P(entity))
	if err != nil {
		return err
	}

	_, err = state.transport.Put(ctx, c.descriptor.SubEntityPath(owned.OwnerID, owned.ID), body)
	if err != nil {
		return fmt.Errorf("updating %s %d: %w", c.descriptor.Root, owned.ID, err)
	}

	c.publish(ctx, billomat.EventUpdated, owned.ID, owned.OwnerID)

	return nil
}

// Delete implements billomat.SubResourceService.Delete.
func (c *SubResourceClient[E, P]) Delete(ctx context.Context, ownerID, id int) error {
	err := c.checkOwner(ownerID)
	if err != nil {
		return err
	}

	state, err := c.config.ensure()
	if err != nil {
		return err
	}

	_, err = state.transport.Delete(ctx, c.descriptor.SubEntityPath(ownerID, id))
	if err != nil {
		return fmt.Errorf("deleting %s %d: %w", c.descriptor.Root, id, err)
	}

	c.publish(ctx, billomat.EventDeleted, id, ownerID)

	return nil
}
