package codec

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

const (
	viewTag      = "view"
	readOnlyView = "readonly"
)

var paymentTypesType = reflect.TypeOf(billomat.PaymentTypes(nil))

// failure is attached to the top level iterator and collects where decoding
// went wrong.
type failure struct {
	field string
	value string
}

func reportInvalid(iter *jsoniter.Iterator, kind, raw string) {
	if iter.Error != nil {
		return
	}

	if state, ok := iter.Attachment.(*failure); ok && state.value == "" {
		state.value = raw
	}

	iter.ReportError("decode "+kind, fmt.Sprintf("invalid value %s", raw))
}

// namingExtension translates Go field names without an explicit json name.
type namingExtension struct {
	jsoniter.DummyExtension

	naming func(string) string
}

func (e *namingExtension) UpdateStructDescriptor(structDescriptor *jsoniter.StructDescriptor) {
	for _, binding := range structDescriptor.Fields {
		if len(binding.FromNames) == 0 {
			continue
		}

		name := strings.Split(binding.Field.Tag().Get("json"), ",")[0]
		if name == "" {
			name = e.naming(binding.Field.Name())
			binding.FromNames = []string{name}
			binding.ToNames = []string{name}
		}

		binding.Decoder = &fieldDecoder{name: name, inner: binding.Decoder}
	}
}

// fieldDecoder names the innermost field whose value failed to decode.
type fieldDecoder struct {
	name  string
	inner jsoniter.ValDecoder
}

func (d *fieldDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	before := iter.Error

	d.inner.Decode(ptr, iter)

	if before != nil || iter.Error == nil || iter.Error == io.EOF {
		return
	}

	if strings.Contains(iter.Error.Error(), unknownFieldMessage) {
		return
	}

	if state, ok := iter.Attachment.(*failure); ok && state.field == "" {
		state.field = d.name
	}
}

// viewExtension drops read-only fields from encoded output.
type viewExtension struct {
	jsoniter.DummyExtension
}

func (e *viewExtension) UpdateStructDescriptor(structDescriptor *jsoniter.StructDescriptor) {
	for _, binding := range structDescriptor.Fields {
		if binding.Field.Tag().Get(viewTag) == readOnlyView {
			binding.ToNames = []string{}
		}
	}
}

// lenientExtension accepts the loose scalar encodings the service produces.
type lenientExtension struct {
	jsoniter.DummyExtension
}

func (e *lenientExtension) CreateDecoder(typ reflect2.Type) jsoniter.ValDecoder {
	if typ.Type1() == paymentTypesType {
		return &paymentTypesDecoder{}
	}

	return nil
}

func (e *lenientExtension) DecorateDecoder(typ reflect2.Type, decoder jsoniter.ValDecoder) jsoniter.ValDecoder {
	switch typ.Kind() {
	case reflect.Bool:
		return &boolDecoder{}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &numberDecoder{typ: typ, inner: decoder, kind: kindInt}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &numberDecoder{typ: typ, inner: decoder, kind: kindUint}
	case reflect.Float32, reflect.Float64:
		return &numberDecoder{typ: typ, inner: decoder, kind: kindFloat}
	case reflect.Ptr:
		ptrType, ok := typ.(reflect2.PtrType)
		if ok && ptrType.Elem().Kind() != reflect.String {
			return &emptyAsNilDecoder{inner: decoder}
		}
	default:
	}

	return decoder
}

// boolDecoder accepts true/false, 0/1 and their string forms. An empty
// string or null is false.
type boolDecoder struct{}

func (d *boolDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.BoolValue:
		*(*bool)(ptr) = iter.ReadBool()
	case jsoniter.NilValue:
		iter.ReadNil()

		*(*bool)(ptr) = false
	case jsoniter.NumberValue:
		number := iter.ReadNumber()
		d.set(ptr, iter, string(number), string(number))
	case jsoniter.StringValue:
		raw := iter.ReadString()
		d.set(ptr, iter, raw, strconv.Quote(raw))
	default:
		reportInvalid(iter, "bool", string(iter.SkipAndReturnBytes()))
	}
}

func (d *boolDecoder) set(ptr unsafe.Pointer, iter *jsoniter.Iterator, value, raw string) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "0", "false":
		*(*bool)(ptr) = false
	case "1", "true":
		*(*bool)(ptr) = true
	default:
		reportInvalid(iter, "bool", raw)
	}
}

type numberKind int

const (
	kindInt numberKind = iota
	kindUint
	kindFloat
)

// numberDecoder accepts numbers sent as strings. An empty string is zero.
type numberDecoder struct {
	typ   reflect2.Type
	inner jsoniter.ValDecoder
	kind  numberKind
}

func (d *numberDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	switch iter.WhatIsNext() {
	case jsoniter.NumberValue, jsoniter.NilValue:
		d.inner.Decode(ptr, iter)

		return
	case jsoniter.StringValue:
	default:
		reportInvalid(iter, d.typ.String(), string(iter.SkipAndReturnBytes()))

		return
	}

	raw := iter.ReadString()
	value := strings.TrimSpace(raw)

	if value == "" {
		d.typ.UnsafeSet(ptr, d.typ.UnsafeNew())

		return
	}

	normalized, ok := d.normalize(value)
	if !ok {
		reportInvalid(iter, d.typ.String(), strconv.Quote(raw))

		return
	}

	sub := iter.Pool().BorrowIterator([]byte(normalized))
	defer iter.Pool().ReturnIterator(sub)

	d.inner.Decode(ptr, sub)

	if sub.Error != nil && sub.Error != io.EOF {
		reportInvalid(iter, d.typ.String(), strconv.Quote(raw))
	}
}

// normalize validates value and rewrites integral floats ("3.0") for integer
// targets.
func (d *numberDecoder) normalize(value string) (string, bool) {
	if d.kind == kindFloat {
		_, err := strconv.ParseFloat(value, 64)

		return value, err == nil
	}

	_, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return value, true
	}

	if d.kind == kindUint {
		_, err = strconv.ParseUint(value, 10, 64)
		if err == nil {
			return value, true
		}
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed != math.Trunc(parsed) || math.IsInf(parsed, 0) {
		return "", false
	}

	return strconv.FormatFloat(parsed, 'f', 0, 64), true
}

// emptyAsNilDecoder decodes "" into a nil pointer.
type emptyAsNilDecoder struct {
	inner jsoniter.ValDecoder
}

func (d *emptyAsNilDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	if iter.WhatIsNext() != jsoniter.StringValue {
		d.inner.Decode(ptr, iter)

		return
	}

	raw := iter.SkipAndReturnBytes()
	if string(raw) == `""` {
		*(*unsafe.Pointer)(ptr) = nil

		return
	}

	sub := iter.Pool().BorrowIterator(raw)
	defer iter.Pool().ReturnIterator(sub)

	sub.Attachment = iter.Attachment

	d.inner.Decode(ptr, sub)

	if sub.Error != nil && sub.Error != io.EOF {
		reportInvalid(iter, "pointer", string(raw))
	}
}

// paymentTypesDecoder accepts a single value, a comma separated string, an
// array or null.
type paymentTypesDecoder struct{}

func (d *paymentTypesDecoder) Decode(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var types billomat.PaymentTypes

	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
	case jsoniter.StringValue:
		types = billomat.ParsePaymentTypes(iter.ReadString())
	case jsoniter.ArrayValue:
		for iter.ReadArray() {
			if iter.WhatIsNext() != jsoniter.StringValue {
				reportInvalid(iter, "payment type", string(iter.SkipAndReturnBytes()))

				return
			}

			types = append(types, billomat.ParsePaymentTypes(iter.ReadString())...)
		}
	default:
		reportInvalid(iter, "payment types", string(iter.SkipAndReturnBytes()))

		return
	}

	*(*billomat.PaymentTypes)(ptr) = types
}
