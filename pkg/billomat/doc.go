// Package billomat provides types, interfaces, and helpers for working with the
// Billomat invoicing API.
//
// # Overview
//
// The billomat package defines the domain types (e.g., Client, Invoice,
// Article, Tag, Item) and the service interfaces every resource follows
// (ResourceService, SubResourceService). A concrete implementation is provided
// by the bmclient package, which wires configuration, transport and the JSON
// codec. Most consumers should import bmclient to construct an API and then
// use the services exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/billomat/pkg/billomat"
//	  "github.com/fivetwenty-io/billomat/pkg/bmclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  api, err := bmclient.New(billomat.NewConfig("mycompany", "api-key"))
//	  if err != nil { log.Fatal(err) }
//
//	  client := &billomat.Client{Name: "ACME"}
//	  if err := api.Clients().Create(ctx, client); err != nil { log.Fatal(err) }
//
//	  tag := &billomat.Tag{Name: "wholesale"}
//	  tag.OwnerID = client.ID
//	  if err := api.Clients().Tags().Create(ctx, tag); err != nil { log.Fatal(err) }
//	}
//
// Configuration is validated lazily: the first call of any service (or an
// explicit Init) reports a *ConfigurationError if the account id or API key
// is missing.
//
// # Filters and pagination
//
// Lists take a Query. The per-resource filters (NewInvoiceFilter,
// NewClientFilter, ...) build one fluently; multiple values of a key match
// any of them:
//
//	filter := billomat.NewInvoiceFilter().
//	  ByClientID(42).
//	  ByStatus(billomat.InvoiceOpen, billomat.InvoiceOverdue)
//
//	for page, err := range api.Invoices().List(ctx, filter) {
//	  if err != nil { break }
//	  _ = page.Entries
//	}
//
// # Errors
//
// Failures are typed: *ConfigurationError, *DecodeError, *TransportError,
// *NetworkError and *InvalidStateError. IsNotFound, IsStatus and IsTemporary
// help branching. The client never retries; wrap calls yourself if needed.
package billomat
