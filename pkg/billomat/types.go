package billomat

import (
	"net/url"
	"time"
)

// Resource is embedded by every entity. ID is zero until the entity has been
// created remotely; Created is assigned by the server and never sent.
type Resource struct {
	ID      int        `json:",omitempty"`
	Created *time.Time `json:",omitempty" view:"readonly"`
}

// Identity returns the embedded resource header. It lets generic services read
// and assign ids on any entity type.
func (r *Resource) Identity() *Resource {
	return r
}

// Identified is implemented by pointers to every entity type.
type Identified interface {
	Identity() *Resource
}

// Owned is embedded by sub-resources. The owner id is written to and read from
// the field named by the sub-resource descriptor (client_id, invoice_id, ...).
type Owned struct {
	Resource

	OwnerID int `json:"-"`
}

// Ownership returns the embedded owner header.
func (o *Owned) Ownership() *Owned {
	return o
}

// OwnedEntity is implemented by pointers to every sub-resource type.
type OwnedEntity interface {
	Identified
	Ownership() *Owned
}

// Page is one fetched slice of a list endpoint. Total is the remote count of
// all entries, not the size of this page.
type Page[E any] struct {
	Page    int
	PerPage int
	Total   int
	Entries []E
}

// IsLast reports whether no further page needs to be requested.
func (p *Page[E]) IsLast() bool {
	if len(p.Entries) == 0 {
		return true
	}

	if p.PerPage > 0 && len(p.Entries) < p.PerPage {
		return true
	}

	return p.PerPage > 0 && p.Page*p.PerPage >= p.Total
}

// Query is anything that can render itself as list query parameters.
// Every filter in this package implements it.
type Query interface {
	Values() url.Values
	Err() error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
