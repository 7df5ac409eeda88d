package billomat

import (
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

const apiPrefix = "/api/"

// Descriptor declares how a resource type is addressed and wrapped on the
// wire. It is derived from the CamelCase resource name:
//
//	NewDescriptor("CreditNote")  -> /api/credit-notes, root credit-note, plural root credit-notes
//	NewSubDescriptor(invoice, "InvoiceItem") -> /api/invoices/{id}/items, owner field invoice_id
type Descriptor struct {
	// Name is the CamelCase resource name, e.g. "ClientTag".
	Name string
	// Root is the singular kebab-case root element.
	Root string
	// PluralRoot is the root element of list responses.
	PluralRoot string
	// Path is the collection path of top level resources.
	Path string
	// Parent is set for sub-resources.
	Parent *Descriptor
	// Segment is the path segment below the owner, e.g. "tags".
	Segment string
	// OwnerField is the wire name of the owner id, e.g. "client_id".
	OwnerField string
}

// NewDescriptor derives a top level resource descriptor from its name.
func NewDescriptor(name string) Descriptor {
	root := strcase.ToKebab(name)
	plural := inflection.Plural(root)

	return Descriptor{
		Name:       name,
		Root:       root,
		PluralRoot: plural,
		Path:       apiPrefix + plural,
	}
}

// NewSubDescriptor derives a sub-resource descriptor. The path segment is the
// pluralized name without the parent prefix ("InvoiceItem" below "Invoice"
// becomes "items").
func NewSubDescriptor(parent Descriptor, name string) Descriptor {
	descriptor := NewDescriptor(name)
	descriptor.Path = ""
	descriptor.Parent = &parent
	descriptor.OwnerField = strcase.ToSnake(parent.Name) + "_id"

	local := strings.TrimPrefix(name, parent.Name)
	if local == "" {
		local = name
	}

	descriptor.Segment = inflection.Plural(strcase.ToKebab(local))

	return descriptor
}

// WithPlural overrides the derived plural root and path for names that do not
// pluralize regularly.
func (d Descriptor) WithPlural(plural string) Descriptor {
	d.PluralRoot = plural
	if d.Parent == nil {
		d.Path = apiPrefix + plural
	}

	return d
}

// IsSubResource reports whether the descriptor is scoped by an owner.
func (d Descriptor) IsSubResource() bool {
	return d.Parent != nil
}

// CollectionPath returns the list/create path. ownerID is ignored for top
// level resources.
func (d Descriptor) CollectionPath(ownerID int) string {
	if d.Parent == nil {
		return d.Path
	}

	return d.Parent.EntityPath(ownerID) + "/" + d.Segment
}

// EntityPath returns the path of a single entity.
func (d Descriptor) EntityPath(id int) string {
	return d.Path + "/" + strconv.Itoa(id)
}

// SubEntityPath returns the path of a single sub-resource entity.
func (d Descriptor) SubEntityPath(ownerID, id int) string {
	return d.CollectionPath(ownerID) + "/" + strconv.Itoa(id)
}
