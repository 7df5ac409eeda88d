// Package codec maps entities to and from the Billomat JSON dialect: snake
// case names, a root element around every body, numbers and booleans sent as
// strings, and list envelopes carrying paging attributes.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/iancoleman/strcase"
	jsoniter "github.com/json-iterator/go"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const unknownFieldMessage = "found unknown field: "

// Paging attributes of list envelopes.
const (
	PageAttribute    = "@page"
	PerPageAttribute = "@per_page"
	TotalAttribute   = "@total"
)

// Static errors for err113 compliance.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrNotOwned     = errors.New("entity has no owner")
)

var unknownFieldPattern = regexp.MustCompile(unknownFieldMessage + `([^,\s]+)`)

// Options configures a Codec.
type Options struct {
	// IgnoreUnknownProperties skips fields the target type does not declare.
	IgnoreUnknownProperties bool
	// Naming translates Go field names without an explicit json name.
	// Defaults to lower snake case.
	Naming func(string) string
}

// Codec encodes requests and decodes responses. It is safe for concurrent
// use. Reader and writer are separate configurations: only the writer hides
// read-only fields.
type Codec struct {
	reader  jsoniter.API
	writer  jsoniter.API
	display jsoniter.API
	strict  bool
}

// New builds a codec. Extensions are registered on the codec's own
// configurations, so codecs with different options can coexist.
func New(options Options) *Codec {
	naming := options.Naming
	if naming == nil {
		naming = strcase.ToSnake
	}

	reader := jsoniter.Config{
		DisallowUnknownFields: !options.IgnoreUnknownProperties,
	}.Froze()
	reader.RegisterExtension(&namingExtension{naming: naming})
	reader.RegisterExtension(&lenientExtension{})

	writer := jsoniter.Config{
		SortMapKeys: true,
	}.Froze()
	writer.RegisterExtension(&namingExtension{naming: naming})
	writer.RegisterExtension(&viewExtension{})

	display := jsoniter.Config{
		SortMapKeys: true,
	}.Froze()
	display.RegisterExtension(&namingExtension{naming: naming})

	return &Codec{
		reader:  reader,
		writer:  writer,
		display: display,
		strict:  !options.IgnoreUnknownProperties,
	}
}

// Strict reports whether unknown fields fail decoding.
func (c *Codec) Strict() bool {
	return c.strict
}

// Encode wraps v in a root element: {"<root>": v}.
func (c *Codec) Encode(root string, v interface{}) ([]byte, error) {
	data, err := c.writer.Marshal(map[string]interface{}{root: v})
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", root, err)
	}

	return data, nil
}

// Decode unwraps the root element and decodes its content into v.
func (c *Codec) Decode(root string, data []byte, v interface{}) error {
	inner, err := c.unwrap(root, data)
	if err != nil {
		return err
	}

	return c.decodeValue(root, inner, v)
}

// Render encodes v without root and with read-only fields, for display.
func (c *Codec) Render(v interface{}) ([]byte, error) {
	data, err := c.display.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	return data, nil
}

// EncodeEntity encodes a resource under its descriptor's root. Owned entities
// carry their owner id under the descriptor's owner field.
func (c *Codec) EncodeEntity(descriptor billomat.Descriptor, entity interface{}) ([]byte, error) {
	if descriptor.OwnerField == "" {
		return c.Encode(descriptor.Root, entity)
	}

	owned, ok := entity.(billomat.OwnedEntity)
	if !ok {
		return nil, fmt.Errorf("encoding %s: %w", descriptor.Root, ErrNotOwned)
	}

	body, err := c.writer.Marshal(entity)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", descriptor.Root, err)
	}

	fields := map[string]jsoniter.RawMessage{}

	err = c.writer.Unmarshal(body, &fields)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", descriptor.Root, err)
	}

	fields[descriptor.OwnerField] = jsoniter.RawMessage(strconv.Itoa(owned.Ownership().OwnerID))

	return c.Encode(descriptor.Root, fields)
}

// DecodeEntity decodes a single entity response into entity.
func (c *Codec) DecodeEntity(descriptor billomat.Descriptor, data []byte, entity interface{}) error {
	inner, err := c.unwrap(descriptor.Root, data)
	if err != nil {
		return err
	}

	return c.decodeEntry(descriptor, inner, entity)
}

// DecodePage decodes a list envelope:
//
//	{"<plural>": {"@page": "1", "@per_page": "100", "@total": "2", "<root>": [...]}}
//
// The entry key may hold a single object instead of an array, or be missing
// when the page is empty.
func DecodePage[E any](c *Codec, descriptor billomat.Descriptor, data []byte) (*billomat.Page[E], error) {
	inner, err := c.unwrap(descriptor.PluralRoot, data)
	if err != nil {
		return nil, err
	}

	page := &billomat.Page[E]{}

	if isEmptyValue(inner) {
		return page, nil
	}

	var body map[string]jsoniter.RawMessage

	err = c.reader.Unmarshal(inner, &body)
	if err != nil {
		return nil, &billomat.DecodeError{Resource: descriptor.PluralRoot, Value: abbreviate(inner), Err: err}
	}

	for key, raw := range body {
		switch key {
		case PageAttribute:
			err = c.decodeValue(descriptor.PluralRoot, raw, &page.Page)
		case PerPageAttribute:
			err = c.decodeValue(descriptor.PluralRoot, raw, &page.PerPage)
		case TotalAttribute:
			err = c.decodeValue(descriptor.PluralRoot, raw, &page.Total)
		case descriptor.Root:
			page.Entries, err = decodeEntries[E](c, descriptor, raw)
		default:
			if c.strict {
				err = &billomat.DecodeError{
					Resource: descriptor.PluralRoot,
					Field:    key,
					Value:    abbreviate(raw),
					Err:      ErrUnknownField,
				}
			}
		}

		if err != nil {
			return nil, err
		}
	}

	return page, nil
}

func decodeEntries[E any](c *Codec, descriptor billomat.Descriptor, raw []byte) ([]E, error) {
	trimmed := bytes.TrimSpace(raw)

	if isEmptyValue(trimmed) {
		return nil, nil
	}

	if trimmed[0] != '[' {
		entries := make([]E, 1)

		err := c.decodeEntry(descriptor, trimmed, &entries[0])
		if err != nil {
			return nil, err
		}

		return entries, nil
	}

	var items []jsoniter.RawMessage

	err := c.reader.Unmarshal(trimmed, &items)
	if err != nil {
		return nil, &billomat.DecodeError{Resource: descriptor.PluralRoot, Field: descriptor.Root, Value: abbreviate(trimmed), Err: err}
	}

	entries := make([]E, len(items))

	for index, item := range items {
		err = c.decodeEntry(descriptor, item, &entries[index])
		if err != nil {
			return nil, err
		}
	}

	return entries, nil
}

func (c *Codec) decodeEntry(descriptor billomat.Descriptor, raw []byte, entity interface{}) error {
	if descriptor.OwnerField == "" {
		return c.decodeValue(descriptor.Root, raw, entity)
	}

	owned, ok := entity.(billomat.OwnedEntity)
	if !ok {
		return fmt.Errorf("decoding %s: %w", descriptor.Root, ErrNotOwned)
	}

	fields := map[string]jsoniter.RawMessage{}

	err := c.reader.Unmarshal(raw, &fields)
	if err != nil {
		return &billomat.DecodeError{Resource: descriptor.Root, Value: abbreviate(raw), Err: err}
	}

	ownerRaw, present := fields[descriptor.OwnerField]
	if present {
		delete(fields, descriptor.OwnerField)

		err = c.decodeValue(descriptor.Root, ownerRaw, &owned.Ownership().OwnerID)
		if err != nil {
			return err
		}
	}

	stripped, err := c.writer.Marshal(fields)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", descriptor.Root, err)
	}

	return c.decodeValue(descriptor.Root, stripped, entity)
}

func (c *Codec) unwrap(root string, data []byte) ([]byte, error) {
	var envelope map[string]jsoniter.RawMessage

	err := c.reader.Unmarshal(data, &envelope)
	if err != nil {
		return nil, &billomat.DecodeError{Resource: root, Value: abbreviate(data), Err: err}
	}

	inner, ok := envelope[root]
	if !ok {
		return nil, &billomat.DecodeError{Resource: root, Field: root, Err: billomat.ErrMissingRootElement}
	}

	if c.strict && len(envelope) > 1 {
		for key, raw := range envelope {
			if key != root {
				return nil, &billomat.DecodeError{Resource: root, Field: key, Value: abbreviate(raw), Err: ErrUnknownField}
			}
		}
	}

	return inner, nil
}

func (c *Codec) decodeValue(resource string, data []byte, v interface{}) error {
	iter := c.reader.BorrowIterator(data)
	defer c.reader.ReturnIterator(iter)

	state := &failure{}
	iter.Attachment = state

	iter.ReadVal(v)

	if iter.Error == nil || errors.Is(iter.Error, io.EOF) {
		return nil
	}

	decodeErr := &billomat.DecodeError{
		Resource: resource,
		Field:    state.field,
		Value:    state.value,
		Err:      iter.Error,
	}

	match := unknownFieldPattern.FindStringSubmatch(iter.Error.Error())
	if match != nil {
		decodeErr.Field = match[1]
		decodeErr.Err = fmt.Errorf("%w: %s", ErrUnknownField, match[1])

		value := c.reader.Get(data, match[1])
		if value.LastError() == nil {
			decodeErr.Value = abbreviate([]byte(value.ToString()))
		}
	}

	return decodeErr
}

func isEmptyValue(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)

	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`))
}

const maxValueLength = 64

func abbreviate(raw []byte) string {
	if len(raw) <= maxValueLength {
		return string(raw)
	}

	return string(raw[:maxValueLength]) + "..."
}
