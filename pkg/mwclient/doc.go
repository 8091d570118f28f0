// Package mwclient provides the primary entry point for constructing a
// MediaWiki bot session that implements the mwapi.Client interface.
//
// It layers configuration, HTTP transport, XML parsing and the article
// cache on top of the action protocol defined in the mwapi package. Most
// applications should import mwclient to build a client, then use the
// returned mwapi.Client for page operations.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/mwbot-io/mwapi/pkg/mwapi"
//	  "github.com/mwbot-io/mwapi/pkg/mwclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  bot, err := mwclient.New(&mwapi.Config{
//	    Endpoint: "https://wiki.example.org/w",
//	    Username: "ExampleBot",
//	    Password: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  if err := bot.Login(ctx); err != nil { log.Fatal(err) }
//
//	  if _, err := bot.Delete(ctx, "Sandbox", "cleanup"); err != nil {
//	    log.Fatal(err)
//	  }
//	}
package mwclient
