package billomat

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Filter accumulates list query parameters. Keys are unique: setting a key
// again replaces its values and any earlier invalid input for it. Several
// values of one key are sent joined by "," and match any of them. The zero
// value is an empty filter.
type Filter struct {
	keys   []string
	values map[string][]string
	errs   []keyError
}

type keyError struct {
	key string
	err error
}

// NewFilter returns an empty filter.
func NewFilter() *Filter {
	return &Filter{}
}

// Set replaces the values of key. Setting no values removes the key.
func (f *Filter) Set(key string, values ...string) *Filter {
	f.clearError(key)

	if f.values == nil {
		f.values = make(map[string][]string)
	}

	_, exists := f.values[key]

	if len(values) == 0 {
		if exists {
			delete(f.values, key)
			f.keys = removeKey(f.keys, key)
		}

		return f
	}

	if !exists {
		f.keys = append(f.keys, key)
	}

	f.values[key] = append([]string(nil), values...)

	return f
}

// Get returns the rendered value of key.
func (f *Filter) Get(key string) (string, bool) {
	values, ok := f.values[key]
	if !ok {
		return "", false
	}

	return strings.Join(values, ","), true
}

// Has reports whether key is set.
func (f *Filter) Has(key string) bool {
	_, ok := f.values[key]

	return ok
}

// Len returns the number of keys.
func (f *Filter) Len() int {
	return len(f.keys)
}

// Keys returns the keys in insertion order.
func (f *Filter) Keys() []string {
	return append([]string(nil), f.keys...)
}

// Values renders the filter as query parameters.
func (f *Filter) Values() url.Values {
	query := make(url.Values, len(f.keys))

	for _, key := range f.keys {
		query.Set(key, strings.Join(f.values[key], ","))
	}

	return query
}

// Err returns the invalid inputs of the keys not set again since, wrapped in
// ErrInvalidFilter.
func (f *Filter) Err() error {
	if len(f.errs) == 0 {
		return nil
	}

	errs := make([]error, 0, len(f.errs))
	for _, rejected := range f.errs {
		errs = append(errs, fmt.Errorf("%s: %w", rejected.key, rejected.err))
	}

	return fmt.Errorf("%w: %w", ErrInvalidFilter, errors.Join(errs...))
}

// reject drops the current values of key and records why the new input was
// refused.
func (f *Filter) reject(key string, err error) {
	f.Set(key)
	f.errs = append(f.errs, keyError{key: key, err: err})
}

func (f *Filter) clearError(key string) {
	f.errs = slices.DeleteFunc(f.errs, func(rejected keyError) bool {
		return rejected.key == key
	})
}

func (f *Filter) setID(key string, id int) {
	err := validation.Validate(id, validation.Required, validation.Min(1))
	if err != nil {
		f.reject(key, err)

		return
	}

	f.Set(key, strconv.Itoa(id))
}

func (f *Filter) setText(key, value string) {
	err := validation.Validate(value, validation.Required)
	if err != nil {
		f.reject(key, err)

		return
	}

	f.Set(key, value)
}

func (f *Filter) setDate(key string, date time.Time) {
	if date.IsZero() {
		f.reject(key, validation.ErrRequired)

		return
	}

	f.Set(key, date.Format(DateLayout))
}

func (f *Filter) setDateRange(from, to time.Time) {
	f.Set("from")
	f.Set("to")

	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		f.reject("to", fmt.Errorf("%s is before from %s", to.Format(DateLayout), from.Format(DateLayout)))

		return
	}

	if !from.IsZero() {
		f.Set("from", from.Format(DateLayout))
	}

	if !to.IsZero() {
		f.Set("to", to.Format(DateLayout))
	}
}

func removeKey(keys []string, key string) []string {
	for index, existing := range keys {
		if existing == key {
			return append(keys[:index], keys[index+1:]...)
		}
	}

	return keys
}

func joinValues[V ~string](values []V) []string {
	joined := make([]string, 0, len(values))
	for _, value := range values {
		joined = append(joined, string(value))
	}

	return joined
}
