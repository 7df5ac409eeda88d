package client

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/fivetwenty-io/billomat/internal/constants"
	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

// FakeCreated is the creation timestamp the fake assigns to every entity.
const FakeCreated = "2026-01-02T10:00:00+01:00"

var fakeJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordedRequest is one request received by a FakeBillomat.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
}

type fakeFailure struct {
	status  int
	message string
}

// FakeBillomat is an in-memory Billomat account served over httptest. It
// serves the collections registered with Register and answers the way the
// service does: scalars come back as strings, booleans as "1"/"0", a list
// holding one entry carries an object instead of an array, and list
// envelopes carry @page, @per_page and @total.
type FakeBillomat struct {
	Server *httptest.Server
	APIKey string

	mu          sync.Mutex
	collections map[string]billomat.Descriptor
	records     map[string]map[int]map[string]interface{}
	singletons  map[string][]byte
	extra       map[string]interface{}
	failures    []fakeFailure
	requests    []RecordedRequest
	nextID      int
}

// NewFakeBillomat starts a fake account. The server is closed when the test
// ends.
func NewFakeBillomat(t *testing.T) *FakeBillomat {
	t.Helper()

	fake := &FakeBillomat{
		APIKey:      "fake-api-key",
		collections: make(map[string]billomat.Descriptor),
		records:     make(map[string]map[int]map[string]interface{}),
		singletons:  make(map[string][]byte),
		extra:       make(map[string]interface{}),
	}

	fake.Server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.Server.Close)

	return fake
}

// URL returns the base URL of the fake.
func (f *FakeBillomat) URL() string {
	return f.Server.URL
}

// Config returns a client configuration pointing at the fake.
func (f *FakeBillomat) Config() *billomat.Config {
	config := billomat.NewConfig("fake", f.APIKey)
	config.BaseURL = f.Server.URL

	return config
}

// Register serves the collections of the given descriptors.
func (f *FakeBillomat) Register(descriptors ...billomat.Descriptor) *FakeBillomat {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, descriptor := range descriptors {
		f.collections[collectionKey(descriptor)] = descriptor
	}

	return f
}

// SetSingleton serves body for GET path and accepts PUT path.
func (f *FakeBillomat) SetSingleton(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.singletons[path] = []byte(body)
}

// Singleton returns the current body stored for path.
func (f *FakeBillomat) Singleton(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return string(f.singletons[path])
}

// AddResponseField adds a field to every entity the fake returns.
func (f *FakeBillomat) AddResponseField(name string, value interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.extra[name] = value
}

// FailNext answers the next request with status and an error message.
func (f *FakeBillomat) FailNext(status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.failures = append(f.failures, fakeFailure{status: status, message: message})
}

// Seed stores fields as an entity of the collection served for descriptor
// and returns its id.
func (f *FakeBillomat) Seed(descriptor billomat.Descriptor, fields map[string]interface{}) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.store(collectionKey(descriptor), fields)
}

// Count returns how many entities a collection holds.
func (f *FakeBillomat) Count(descriptor billomat.Descriptor) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.records[collectionKey(descriptor)])
}

// Requests returns the requests received so far.
func (f *FakeBillomat) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	return slices.Clone(f.requests)
}

// RequestCount returns how many requests were received.
func (f *FakeBillomat) RequestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.requests)
}

func collectionKey(descriptor billomat.Descriptor) string {
	if descriptor.Parent == nil {
		return strings.TrimPrefix(descriptor.Path, "/api/")
	}

	return collectionKey(*descriptor.Parent) + "/" + descriptor.Segment
}

func (f *FakeBillomat) store(key string, fields map[string]interface{}) int {
	f.nextID++

	record := make(map[string]interface{}, len(fields)+2)
	for name, value := range fields {
		record[name] = value
	}

	record["id"] = f.nextID
	record["created"] = FakeCreated

	if f.records[key] == nil {
		f.records[key] = make(map[int]map[string]interface{})
	}

	f.records[key][f.nextID] = record

	return f.nextID
}

func (f *FakeBillomat) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, RecordedRequest{
		Method: request.Method,
		Path:   request.URL.Path,
		Query:  request.URL.Query(),
		Body:   body,
	})

	if request.Header.Get(constants.APIKeyHeader) != f.APIKey {
		writeError(writer, http.StatusUnauthorized, "Unauthorized")

		return
	}

	if len(f.failures) > 0 {
		failure := f.failures[0]
		f.failures = f.failures[1:]
		writeError(writer, failure.status, failure.message)

		return
	}

	if singleton, ok := f.singletons[request.URL.Path]; ok {
		if request.Method == http.MethodPut {
			f.singletons[request.URL.Path] = body
		}

		writeJSON(writer, http.StatusOK, singleton)

		return
	}

	parts := strings.Split(strings.Trim(request.URL.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "api" {
		writeError(writer, http.StatusNotFound, "Not found")

		return
	}

	f.route(writer, request, parts[1:], body)
}

func (f *FakeBillomat) route(writer http.ResponseWriter, request *http.Request, parts []string, body []byte) {
	key := parts[0]
	ownerID := 0
	id := 0

	switch len(parts) {
	case 1:
	case 2:
		id, _ = strconv.Atoi(parts[1])
	case 3, 4:
		ownerID, _ = strconv.Atoi(parts[1])
		key += "/" + parts[2]

		if len(parts) == 4 {
			id, _ = strconv.Atoi(parts[3])
		}
	default:
		writeError(writer, http.StatusNotFound, "Not found")

		return
	}

	descriptor, ok := f.collections[key]
	if !ok {
		f.action(writer, request, parts, body)

		return
	}

	switch {
	case request.Method == http.MethodGet && id == 0:
		f.list(writer, request, key, descriptor, ownerID)
	case request.Method == http.MethodPost && id == 0:
		f.create(writer, key, descriptor, ownerID, body)
	case request.Method == http.MethodGet:
		f.get(writer, key, descriptor, ownerID, id)
	case request.Method == http.MethodPut:
		f.update(writer, key, descriptor, ownerID, id, body)
	case request.Method == http.MethodDelete:
		f.delete(writer, key, descriptor, ownerID, id)
	default:
		writeError(writer, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// action accepts document actions such as /invoices/1/complete.
func (f *FakeBillomat) action(writer http.ResponseWriter, request *http.Request, parts []string, body []byte) {
	if len(parts) != 3 {
		writeError(writer, http.StatusNotFound, "Not found")

		return
	}

	owner, ok := f.collections[parts[0]]
	if !ok {
		writeError(writer, http.StatusNotFound, "Not found")

		return
	}

	id, _ := strconv.Atoi(parts[1])
	if _, exists := f.records[collectionKey(owner)][id]; !exists {
		writeError(writer, http.StatusNotFound, "Not found")

		return
	}

	switch parts[2] {
	case "complete", "cancel", "uncancel", "email":
		writer.WriteHeader(http.StatusOK)
	case "customfield":
		path := request.URL.Path
		if request.Method == http.MethodPut {
			f.singletons[path] = body
		}

		stored, exists := f.singletons[path]
		if !exists {
			stored = []byte(`{"` + owner.Root + `":{"id":"` + parts[1] + `","customfield":""}}`)
		}

		writeJSON(writer, http.StatusOK, stored)
	default:
		writeError(writer, http.StatusNotFound, "Not found")
	}
}

func (f *FakeBillomat) owns(descriptor billomat.Descriptor, record map[string]interface{}, ownerID int) bool {
	if descriptor.OwnerField == "" {
		return true
	}

	return stringify(record[descriptor.OwnerField]) == strconv.Itoa(ownerID)
}

func (f *FakeBillomat) list(writer http.ResponseWriter, request *http.Request, key string, descriptor billomat.Descriptor, ownerID int) {
	query := request.URL.Query()

	page, _ := strconv.Atoi(query.Get("page"))
	if page < 1 {
		page = 1
	}

	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage < 1 {
		perPage = billomat.DefaultPerPage
	}

	ids := make([]int, 0, len(f.records[key]))

	for id, record := range f.records[key] {
		if f.owns(descriptor, record, ownerID) && matches(record, query) {
			ids = append(ids, id)
		}
	}

	sort.Ints(ids)

	envelope := map[string]interface{}{
		"@page":     strconv.Itoa(page),
		"@per_page": strconv.Itoa(perPage),
		"@total":    strconv.Itoa(len(ids)),
	}

	start := min((page-1)*perPage, len(ids))
	end := min(start+perPage, len(ids))

	entries := make([]interface{}, 0, end-start)
	for _, id := range ids[start:end] {
		entries = append(entries, f.render(f.records[key][id]))
	}

	switch len(entries) {
	case 0:
	case 1:
		envelope[descriptor.Root] = entries[0]
	default:
		envelope[descriptor.Root] = entries
	}

	f.respond(writer, http.StatusOK, descriptor.PluralRoot, envelope)
}

func matches(record map[string]interface{}, query url.Values) bool {
	for name := range query {
		if name == "page" || name == "per_page" {
			continue
		}

		value, ok := record[name]
		if !ok || !slices.Contains(strings.Split(query.Get(name), ","), stringify(value)) {
			return false
		}
	}

	return true
}

func (f *FakeBillomat) create(writer http.ResponseWriter, key string, descriptor billomat.Descriptor, ownerID int, body []byte) {
	fields, ok := decodeRoot(writer, descriptor, body)
	if !ok {
		return
	}

	if descriptor.OwnerField != "" {
		fields[descriptor.OwnerField] = ownerID
	}

	id := f.store(key, fields)

	f.respond(writer, http.StatusCreated, descriptor.Root, f.render(f.records[key][id]))
}

func (f *FakeBillomat) lookup(writer http.ResponseWriter, key string, descriptor billomat.Descriptor, ownerID, id int) (map[string]interface{}, bool) {
	record, ok := f.records[key][id]
	if !ok || !f.owns(descriptor, record, ownerID) {
		writeError(writer, http.StatusNotFound, "Not found")

		return nil, false
	}

	return record, true
}

func (f *FakeBillomat) get(writer http.ResponseWriter, key string, descriptor billomat.Descriptor, ownerID, id int) {
	record, ok := f.lookup(writer, key, descriptor, ownerID, id)
	if !ok {
		return
	}

	f.respond(writer, http.StatusOK, descriptor.Root, f.render(record))
}

func (f *FakeBillomat) update(writer http.ResponseWriter, key string, descriptor billomat.Descriptor, ownerID, id int, body []byte) {
	record, ok := f.lookup(writer, key, descriptor, ownerID, id)
	if !ok {
		return
	}

	fields, ok := decodeRoot(writer, descriptor, body)
	if !ok {
		return
	}

	for name, value := range fields {
		if name != "id" && name != "created" {
			record[name] = value
		}
	}

	f.respond(writer, http.StatusOK, descriptor.Root, f.render(record))
}

func (f *FakeBillomat) delete(writer http.ResponseWriter, key string, descriptor billomat.Descriptor, ownerID, id int) {
	_, ok := f.lookup(writer, key, descriptor, ownerID, id)
	if !ok {
		return
	}

	delete(f.records[key], id)
	writer.WriteHeader(http.StatusOK)
}

// render converts a record to the service's string-typed representation.
func (f *FakeBillomat) render(record map[string]interface{}) map[string]interface{} {
	rendered := make(map[string]interface{}, len(record)+len(f.extra))

	for name, value := range record {
		switch value.(type) {
		case map[string]interface{}, []interface{}, nil:
			rendered[name] = value
		default:
			rendered[name] = stringify(value)
		}
	}

	for name, value := range f.extra {
		rendered[name] = value
	}

	return rendered
}

func (f *FakeBillomat) respond(writer http.ResponseWriter, status int, root string, value interface{}) {
	body, err := fakeJSON.Marshal(map[string]interface{}{root: value})
	if err != nil {
		writeError(writer, http.StatusInternalServerError, err.Error())

		return
	}

	writeJSON(writer, status, body)
}

func decodeRoot(writer http.ResponseWriter, descriptor billomat.Descriptor, body []byte) (map[string]interface{}, bool) {
	var envelope map[string]map[string]interface{}

	err := fakeJSON.Unmarshal(body, &envelope)
	if err != nil {
		writeError(writer, http.StatusBadRequest, "Invalid body")

		return nil, false
	}

	fields, ok := envelope[descriptor.Root]
	if !ok {
		writeError(writer, http.StatusBadRequest, "Missing root "+descriptor.Root)

		return nil, false
	}

	if fields == nil {
		fields = make(map[string]interface{})
	}

	return fields, true
}

func stringify(value interface{}) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		if typed {
			return "1"
		}

		return "0"
	case int:
		return strconv.Itoa(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case nil:
		return ""
	default:
		encoded, _ := fakeJSON.Marshal(typed)

		return string(encoded)
	}
}

func writeJSON(writer http.ResponseWriter, status int, body []byte) {
	writer.Header().Set("Content-Type", constants.ContentTypeJSON)
	writer.WriteHeader(status)
	_, _ = writer.Write(body)
}

func writeError(writer http.ResponseWriter, status int, message string) {
	body, _ := fakeJSON.Marshal(map[string]interface{}{
		"errors": map[string]interface{}{"error": message},
	})

	writeJSON(writer, status, body)
}
