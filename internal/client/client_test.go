package client

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/billomat/pkg/billomat"
)

var (
	clientDescriptor    = billomat.NewDescriptor("Client")
	clientTagDescriptor = billomat.NewSubDescriptor(clientDescriptor, "ClientTag")
	userDescriptor      = billomat.NewDescriptor("User")
)

// Test static errors.
var (
	ErrTestPublish = errors.New("broker down")
)

func newFakeClient(t *testing.T, configure ...func(*billomat.Config)) (*Client, *FakeBillomat) {
	t.Helper()

	fake := NewFakeBillomat(t).Register(clientDescriptor, clientTagDescriptor, userDescriptor)

	config := fake.Config()
	for _, apply := range configure {
		apply(config)
	}

	client := New(config)
	t.Cleanup(func() { _ = client.Close() })

	return client, fake
}

func itoa(value int) string {
	return strconv.Itoa(value)
}

func boolPtr(value bool) *bool {
	return &value
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []billomat.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event billomat.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

// MockLogger for testing.
type MockLogger struct {
	mu   sync.Mutex
	logs []string
}

func (l *MockLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logs = append(l.logs, level+": "+msg)
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg) }
func (l *MockLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg) }
func (l *MockLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg) }
func (l *MockLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg) }

func TestClientsClient_CreateThenGet(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()

	created := &billomat.Client{Name: "ACME GmbH", Email: "billing@acme.test", Archived: boolPtr(false)}

	err := client.Clients().Create(ctx, created)
	require.NoError(t, err)
	assert.Positive(t, created.ID)
	require.NotNil(t, created.Created)
	assert.Equal(t, 2026, created.Created.Year())

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.Equal(t, "/api/clients", requests[0].Path)
	assert.JSONEq(t, `{"client":{"archived":false,"email":"billing@acme.test","name":"ACME GmbH"}}`, string(requests[0].Body))

	fetched, found, err := client.Clients().Get(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "ACME GmbH", fetched.Name)
	assert.Equal(t, "billing@acme.test", fetched.Email)
	require.NotNil(t, fetched.Archived)
	assert.False(t, *fetched.Archived)
}

func TestResourceClient_GetMissing(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t)

	entity, found, err := client.Clients().Get(context.Background(), 4711)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, entity)
}

func TestResourceClient_Update(t *testing.T) {
	t.Parallel()

	t.Run("without id makes no request", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)

		err := client.Clients().Update(context.Background(), &billomat.Client{Name: "nameless"})
		require.Error(t, err)

		invalid := &billomat.InvalidStateError{}
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "client", invalid.Resource)
		assert.Equal(t, 0, fake.RequestCount())
	})

	t.Run("sends only set fields", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		id := fake.Seed(clientDescriptor, map[string]interface{}{"name": "Old", "city": "Berlin"})

		update := &billomat.Client{Resource: billomat.Resource{ID: id}, Name: "New"}

		err := client.Clients().Update(context.Background(), update)
		require.NoError(t, err)
		assert.Nil(t, update.Created)

		requests := fake.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, http.MethodPut, requests[0].Method)
		assert.JSONEq(t, `{"client":{"id":`+itoa(id)+`,"name":"New"}}`, string(requests[0].Body))

		fetched, found, err := client.Clients().Get(context.Background(), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "New", fetched.Name)
		assert.Equal(t, "Berlin", fetched.City)
	})
}

func TestResourceClient_Delete(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()
	id := fake.Seed(clientDescriptor, map[string]interface{}{"name": "Short lived"})

	require.NoError(t, client.Clients().Delete(ctx, id))
	assert.Equal(t, 0, fake.Count(clientDescriptor))

	err := client.Clients().Delete(ctx, id)
	require.Error(t, err)
	assert.True(t, billomat.IsNotFound(err))
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestResourceClient_List(t *testing.T) {
	t.Parallel()

	seed := func(fake *FakeBillomat, count int) {
		for index := range count {
			fake.Seed(clientDescriptor, map[string]interface{}{"name": "client " + itoa(index)})
		}
	}

	tests := []struct {
		name     string
		count    int
		pages    int
		requests int
	}{
		{name: "empty", count: 0, pages: 1, requests: 1},
		{name: "single entry as object", count: 1, pages: 1, requests: 1},
		{name: "short last page", count: 250, pages: 3, requests: 3},
		{name: "total is a multiple of the page size", count: 200, pages: 2, requests: 2},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			client, fake := newFakeClient(t)
			seed(fake, testCase.count)

			pages := 0
			entries := 0

			for page, err := range client.Clients().List(context.Background(), nil) {
				require.NoError(t, err)
				assert.Equal(t, testCase.count, page.Total)

				pages++
				entries += len(page.Entries)
			}

			assert.Equal(t, testCase.pages, pages)
			assert.Equal(t, testCase.count, entries)
			assert.Equal(t, testCase.requests, fake.RequestCount())
		})
	}

	t.Run("stops when the consumer stops", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		seed(fake, 150)

		for page, err := range client.Clients().List(context.Background(), nil) {
			require.NoError(t, err)
			assert.Equal(t, 1, page.Page)

			break
		}

		assert.Equal(t, 1, fake.RequestCount())
	})

	t.Run("restarts on every iteration", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		seed(fake, 3)

		first, err := client.Clients().All(context.Background(), nil)
		require.NoError(t, err)

		second, err := client.Clients().All(context.Background(), nil)
		require.NoError(t, err)

		assert.Len(t, first, 3)
		assert.Equal(t, first, second)
		assert.Equal(t, 2, fake.RequestCount())
	})

	t.Run("single page", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		seed(fake, 5)

		page, err := client.Clients().ListPage(context.Background(), nil, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.PerPage)
		assert.Equal(t, 5, page.Total)
		require.Len(t, page.Entries, 2)
		assert.Equal(t, "client 2", page.Entries[0].Name)
		assert.False(t, page.IsLast())

		requests := fake.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "2", requests[0].Query.Get("page"))
		assert.Equal(t, "2", requests[0].Query.Get("per_page"))
	})

	t.Run("rejects invalid paging", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)

		_, err := client.Clients().ListPage(context.Background(), nil, 0, 10)
		require.Error(t, err)

		_, err = client.Clients().ListPage(context.Background(), nil, 1, billomat.MaxPerPage+1)
		require.Error(t, err)

		invalid := &billomat.InvalidStateError{}
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, 0, fake.RequestCount())
	})

	t.Run("propagates errors", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		fake.FailNext(http.StatusInternalServerError, "maintenance")

		entries, err := client.Clients().All(context.Background(), nil)
		require.Error(t, err)
		assert.Nil(t, entries)
		assert.True(t, billomat.IsStatus(err, http.StatusInternalServerError))
	})
}

func TestResourceClient_ListWithFilter(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	fake.Seed(clientDescriptor, map[string]interface{}{"name": "ACME", "country_code": "DE"})
	fake.Seed(clientDescriptor, map[string]interface{}{"name": "Globex", "country_code": "US"})

	clients, err := client.Clients().All(context.Background(), billomat.NewClientFilter().ByCountryCode("DE"))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, "ACME", clients[0].Name)

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "DE", requests[0].Query.Get("country_code"))
}

func TestResourceClient_RejectsInvalidFilter(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)

	_, err := client.Clients().All(context.Background(), billomat.NewClientFilter().ByInvoiceID(0))
	require.Error(t, err)
	require.ErrorIs(t, err, billomat.ErrInvalidFilter)
	assert.Equal(t, 0, fake.RequestCount())
}

func TestClientTags_EndToEnd(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()

	owner := &billomat.Client{Name: "Tagged Ltd"}
	require.NoError(t, client.Clients().Create(ctx, owner))

	tag := &billomat.Tag{Owned: billomat.Owned{OwnerID: owner.ID}, Name: "vip"}
	require.NoError(t, client.Clients().Tags().Create(ctx, tag))
	assert.Positive(t, tag.ID)
	assert.Equal(t, owner.ID, tag.OwnerID)

	requests := fake.Requests()
	assert.Equal(t, "/api/clients/"+itoa(owner.ID)+"/tags", requests[len(requests)-1].Path)
	assert.JSONEq(t, `{"client-tag":{"client_id":`+itoa(owner.ID)+`,"name":"vip"}}`, string(requests[len(requests)-1].Body))

	tags, err := client.Clients().Tags().All(ctx, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "vip", tags[0].Name)
	assert.Equal(t, owner.ID, tags[0].OwnerID)

	fetched, found, err := client.Clients().Tags().Get(ctx, owner.ID, tag.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, tag.ID, fetched.ID)

	require.NoError(t, client.Clients().Tags().Delete(ctx, owner.ID, tag.ID))

	tags, err = client.Clients().Tags().All(ctx, owner.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, tags)
}

func TestSubResourceClient_RequiresOwner(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()
	tags := client.Clients().Tags()

	_, err := tags.All(ctx, 0, nil)
	assert.Error(t, err)

	_, _, err = tags.Get(ctx, -1, 1)
	assert.Error(t, err)

	err = tags.Create(ctx, &billomat.Tag{Name: "orphan"})
	assert.Error(t, err)

	err = tags.Update(ctx, &billomat.Tag{Owned: billomat.Owned{OwnerID: 3}, Name: "no id"})
	assert.Error(t, err)

	err = tags.Delete(ctx, 0, 1)
	require.Error(t, err)

	invalid := &billomat.InvalidStateError{}
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "client-tag", invalid.Resource)
	assert.Equal(t, 0, fake.RequestCount())
}

func TestResourceClient_UnknownProperties(t *testing.T) {
	t.Parallel()

	t.Run("ignored by default", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t)
		id := fake.Seed(clientDescriptor, map[string]interface{}{"name": "ACME"})
		fake.AddResponseField("loyalty_level", "gold")

		fetched, found, err := client.Clients().Get(context.Background(), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "ACME", fetched.Name)
	})

	t.Run("rejected in strict mode", func(t *testing.T) {
		t.Parallel()

		client, fake := newFakeClient(t, func(config *billomat.Config) {
			config.IgnoreUnknownProperties = false
		})
		id := fake.Seed(clientDescriptor, map[string]interface{}{"name": "ACME"})
		fake.AddResponseField("loyalty_level", "gold")

		_, _, err := client.Clients().Get(context.Background(), id)
		require.Error(t, err)

		decodeErr := &billomat.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "loyalty_level", decodeErr.Field)
		assert.Contains(t, decodeErr.Value, "gold")
	})
}

func TestResourceClient_LenientBooleans(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)

	tests := []struct {
		value    interface{}
		expected bool
	}{
		{value: "1", expected: true},
		{value: "0", expected: false},
		{value: "true", expected: true},
		{value: true, expected: true},
		{value: false, expected: false},
	}

	for _, testCase := range tests {
		id := fake.Seed(clientDescriptor, map[string]interface{}{"name": "flagged", "archived": testCase.value})

		fetched, found, err := client.Clients().Get(context.Background(), id)
		require.NoError(t, err)
		require.True(t, found)
		require.NotNil(t, fetched.Archived)
		assert.Equal(t, testCase.expected, *fetched.Archived, "archived=%v", testCase.value)
	}
}

func TestResourceClient_TransportErrors(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	fake.FailNext(http.StatusBadRequest, "Name is missing")

	err := client.Clients().Create(context.Background(), &billomat.Client{})
	require.Error(t, err)

	transportErr := &billomat.TransportError{}
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadRequest, transportErr.StatusCode)
	assert.Equal(t, []string{"Name is missing"}, transportErr.Messages)
}

func TestResourceClient_WrongAPIKey(t *testing.T) {
	t.Parallel()

	client, _ := newFakeClient(t, func(config *billomat.Config) {
		config.APIKey = "wrong"
	})

	_, _, err := client.Clients().Get(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, billomat.IsStatus(err, http.StatusUnauthorized))
}

func TestResourceClient_PublishesEvents(t *testing.T) {
	t.Parallel()

	publisher := &recordingPublisher{}
	client, _ := newFakeClient(t, func(config *billomat.Config) {
		config.Events = publisher
	})
	ctx := context.Background()

	entity := &billomat.Client{Name: "Evented"}
	require.NoError(t, client.Clients().Create(ctx, entity))

	entity.Name = "Renamed"
	require.NoError(t, client.Clients().Update(ctx, entity))

	tag := &billomat.Tag{Owned: billomat.Owned{OwnerID: entity.ID}, Name: "x"}
	require.NoError(t, client.Clients().Tags().Create(ctx, tag))
	require.NoError(t, client.Clients().Delete(ctx, entity.ID))

	require.Len(t, publisher.events, 4)
	assert.Equal(t, billomat.EventCreated, publisher.events[0].Type)
	assert.Equal(t, "client", publisher.events[0].Resource)
	assert.Equal(t, entity.ID, publisher.events[0].ID)
	assert.Equal(t, billomat.EventUpdated, publisher.events[1].Type)
	assert.Equal(t, "client-tag", publisher.events[2].Resource)
	assert.Equal(t, entity.ID, publisher.events[2].OwnerID)
	assert.Equal(t, billomat.EventDeleted, publisher.events[3].Type)
}

func TestResourceClient_PublishFailureIsLogged(t *testing.T) {
	t.Parallel()

	logger := &MockLogger{}
	client, _ := newFakeClient(t, func(config *billomat.Config) {
		config.Events = &recordingPublisher{err: ErrTestPublish}
		config.Logger = logger
	})

	entity := &billomat.Client{Name: "Still created"}
	require.NoError(t, client.Clients().Create(context.Background(), entity))
	assert.Positive(t, entity.ID)
	assert.Contains(t, logger.logs, "warn: Failed to publish mutation event")
}

func TestUsersClient_MyselfAndCustomField(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()

	id := fake.Seed(userDescriptor, map[string]interface{}{"email": "me@example.test"})
	fake.SetSingleton("/api/users/myself", `{"user":{"id":"`+itoa(id)+`","email":"me@example.test","first_name":"Ada"}}`)

	me, err := client.Users().Myself(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "Ada", me.FirstName)

	value, err := client.Users().CustomField().Get(ctx, me.ID)
	require.NoError(t, err)
	assert.Empty(t, value)

	require.NoError(t, client.Users().CustomField().Set(ctx, me.ID, "team-a"))

	value, err = client.Users().CustomField().Get(ctx, me.ID)
	require.NoError(t, err)
	assert.Equal(t, "team-a", value)

	requests := fake.Requests()
	assert.JSONEq(t, `{"user":{"customfield":"team-a"}}`, string(requests[2].Body))

	_, err = client.Users().CustomField().Get(ctx, 0)
	assert.Error(t, err)
}

func TestSettingsClient(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()

	fake.SetSingleton("/api/settings", `{"settings":{"currency_code":"EUR","due_days":"14","print_version":"1","created":"2020-01-01T00:00:00+01:00"}}`)

	settings, err := client.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings.CurrencyCode)
	require.NotNil(t, settings.DueDays)
	assert.Equal(t, 14, *settings.DueDays)
	require.NotNil(t, settings.PrintVersion)
	assert.True(t, *settings.PrintVersion)

	dueDays := 30
	require.NoError(t, client.Settings().Update(ctx, &billomat.Settings{DueDays: &dueDays}))
	assert.JSONEq(t, `{"settings":{"due_days":30}}`, fake.Singleton("/api/settings"))

	assert.Error(t, client.Settings().Update(ctx, nil))
}

func TestPropertyDefinitions(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	fake.Register(billomat.NewDescriptor("ClientProperty"))

	property := &billomat.Property{Name: "Segment", Type: billomat.PropertyTextfield}
	require.NoError(t, client.ClientProperties().Create(context.Background(), property))
	assert.Positive(t, property.ID)

	requests := fake.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/client-properties", requests[0].Path)
}

func TestBatchHelpers(t *testing.T) {
	t.Parallel()

	client, fake := newFakeClient(t)
	ctx := context.Background()

	entities := []*billomat.Client{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	require.NoError(t, billomat.CreateAll[billomat.Client](ctx, client.Clients(), entities, 2))
	assert.Equal(t, 3, fake.Count(clientDescriptor))

	ids := []int{entities[0].ID, entities[1].ID, 9999}
	err := billomat.DeleteAll(ctx, client.Clients(), ids, 2)
	require.Error(t, err)
	assert.True(t, billomat.IsNotFound(err))
	assert.Equal(t, 1, fake.Count(clientDescriptor))
}
