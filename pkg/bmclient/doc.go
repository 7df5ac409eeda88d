// Package bmclient provides the primary entry point for constructing a
// Billomat API client that implements the billomat.API interface.
//
// It layers configuration, HTTP transport and the JSON codec on top of the
// service interfaces and entity types defined in the billomat package. Most
// applications import bmclient to build a client, then use the returned
// billomat.API to reach the resource services, for example Clients(),
// Invoices() or Settings().
//
// Quick start
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
//
//	  // Account name and API key; everything else has defaults.
//	  api, err := bmclient.NewWithAPIKey("mycompany", "api-key")
//	  if err != nil { log.Fatal(err) }
//	  defer api.Close()
//
//	  // Or from a map, e.g. read by viper from a config file.
//	  api, err = bmclient.NewFromMap(map[string]interface{}{
//	    "billomat_id":  "mycompany",
//	    "api_key":      "api-key",
//	    "http_timeout": "10s",
//	  })
//
//	  me, err := api.Users().Myself(ctx)
//	  if err != nil { log.Fatal(err) }
//	  log.Println(me.Email)
//	}
//
// # Initialization
//
// The configuration is validated and the transport built on first use. Call
// Init to surface configuration errors early; concurrent first calls are
// safe and build the transport once.
//
// # Options
//
// Functional options adjust the configuration before the client is built:
// WithLogger, WithDebug, WithHTTPTimeout, WithRateLimit, WithStrictDecoding,
// WithEvents and WithInterceptors.
package bmclient
