package client

import (
	"context"
	"iter"
	"net/url"
	"strconv"
	"time"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const (
	pageParameter    = "page"
	perPageParameter = "per_page"
)

// entity constrains P to the pointer type of an entity E.
type entity[E any] interface {
	*E
	billomat.Identified
}

// ownedEntity constrains P to the pointer type of a sub-resource E.
type ownedEntity[E any] interface {
	*E
	billomat.OwnedEntity
}

// service holds what every resource client shares: the lazily initialized
// configuration and the descriptor of its resource.
type service struct {
	config     *Configuration
	descriptor billomat.Descriptor
}

func (s *service) invalid(reason string) error {
	return &billomat.InvalidStateError{Resource: s.descriptor.Root, Reason: reason}
}

// publish reports a successful mutation. Publisher failures are logged only.
func (s *service) publish(ctx context.Context, eventType billomat.EventType, id, ownerID int) {
	publisher := s.config.Events()
	if publisher == nil {
		return
	}

	event := billomat.Event{
		Type:     eventType,
		Resource: s.descriptor.Root,
		ID:       id,
		OwnerID:  ownerID,
		At:       time.Now().UTC(),
	}

	err := publisher.Publish(ctx, event)
	if err != nil {
		s.config.Logger().Warn("Failed to publish mutation event", map[string]interface{}{
			"resource": event.Resource,
			"type":     string(event.Type),
			"id":       event.ID,
			"error":    err.Error(),
		})
	}
}

// listQuery validates filter and adds the paging parameters.
func (s *service) listQuery(filter billomat.Query, page, perPage int) (url.Values, error) {
	if page < 1 {
		return nil, s.invalid("page must be at least 1")
	}

	if perPage < 1 || perPage > billomat.MaxPerPage {
		return nil, s.invalid("per page must be between 1 and " + strconv.Itoa(billomat.MaxPerPage))
	}

	query := url.Values{}

	if filter != nil {
		err := filter.Err()
		if err != nil {
			return nil, err
		}

		for key, values := range filter.Values() {
			query[key] = append([]string(nil), values...)
		}
	}

	query.Set(pageParameter, strconv.Itoa(page))
	query.Set(perPageParameter, strconv.Itoa(perPage))

	return query, nil
}

// fillPage defaults paging attributes the response left out to the request.
func fillPage[E any](page *billomat.Page[E], number, perPage int) *billomat.Page[E] {
	if page.Page == 0 {
		page.Page = number
	}

	if page.PerPage == 0 {
		page.PerPage = perPage
	}

	return page
}

// paginate yields pages from fetch starting at one until a page is the last.
// The first page is always yielded, so callers can read Total; later empty
// pages are not.
func paginate[E any](fetch func(number int) (*billomat.Page[E], error)) iter.Seq2[*billomat.Page[E], error] {
	return func(yield func(*billomat.Page[E], error) bool) {
		for number := 1; ; number++ {
			page, err := fetch(number)
			if err != nil {
				yield(nil, err)

				return
			}

			if number > 1 && len(page.Entries) == 0 {
				return
			}

			if !yield(page, nil) || page.IsLast() {
				return
			}
		}
	}
}

// collect concatenates the entries of every page.
func collect[E any](pages iter.Seq2[*billomat.Page[E], error]) ([]E, error) {
	var entries []E

	for page, err := range pages {
		if err != nil {
			return nil, err
		}

		entries = append(entries, page.Entries...)
	}

	return entries, nil
}
