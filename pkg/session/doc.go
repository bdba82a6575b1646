// Package session provides cookie-backed, server-side sessions for net/http
// handlers. The session id travels in a cookie; the session data lives in a
// kv.Store under the key "{prefix}:{id}" as a JSON object.
//
// # Architecture
//
// A Manager holds the long-lived configuration. For every request it
// resolves a datastore and builds an Engine, which
//
//  1. reads the session cookie, adopting its value as the id or generating
//     a new 64-char hex id when the cookie is absent;
//  2. rewrites the cookie (HttpOnly, Path=/, and Expires=now+TTL when the
//     TTL is at least 60 seconds), sliding the expiry window forward;
//  3. lazily loads the data when Load is called. New sessions never touch
//     the datastore.
//
//	┌────────┐  cookie   ┌──────────┐  Load / Save / Destroy  ┌──────────┐
//	│ Client │ ◄───────► │  Engine  │ ──────────────────────► │ kv.Store │
//	└────────┘           └──────────┘                         └──────────┘
//
// The Session handle returned by Load is what handlers see. They mutate
// Session.Data and call Save; Destroy clears the handle, expires the cookie
// and deletes the record.
//
// # Usage
//
//	store := memory.New()
//	manager := session.New(session.WithStore(store), session.WithTTL(3600))
//
//	mux.Handle("/", manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    sess := session.MustFromContext(r.Context())
//	    visits, _ := sess.GetInt("visits")
//	    sess.Set("visits", visits+1)
//	    if !sess.Save(r.Context()) {
//	        // not persisted; the failure is already logged
//	    }
//	})))
//
// Datastores can also be resolved by name, which is how one binary serves
// several stores:
//
//	bindings := kv.Bindings{"SESSION_DATASTORE": redisStore}
//	handler := bindings.Middleware(manager.Middleware(app))
//
// # Configuration
//
// Defaults: cookie "__session", prefix "session", TTL 2592000 seconds (30
// days), binding name "SESSION_DATASTORE". A TTL between 1 and 59 seconds
// disables expiration: the cookie becomes a browser-session cookie and the
// record never expires. Config carries env tags for github.com/caarlos0/env.
//
// # Error Handling
//
// Only configuration problems are surfaced: the middleware answers 500 when
// no datastore resolves (ErrNoStore). Datastore failures are logged and
// degrade gracefully: Load yields empty data, Save and Destroy return false.
package session
