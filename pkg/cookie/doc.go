// Package cookie provides a small HTTP cookie manager for Go applications.
//
// It wraps Go's net/http `http.Cookie` type with helpers for creating, reading and deleting
// cookies with a shared set of default attributes.
//
// # Overview
//
// The `Manager` type is the entry point. It is initialised with a set of default cookie
// `Options` (Path "/", HttpOnly, SameSite=Lax unless overridden). Every call may override
// the defaults per cookie:
//
//   - Set(), Get(), Delete() – operate on an explicit ResponseWriter / Request
//   - Jar() – binds the manager to one request/response pair
//
// Writing a cookie that was already written during the same response replaces the
// earlier Set-Cookie directive instead of appending a second one.
//
// # Usage
//
//	import "github.com/dmitrymomot/kvsession/pkg/cookie"
//
//	man := cookie.New(cookie.WithSecure(true))
//
//	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
//	    jar := man.Jar(w, r)
//	    if _, ok := jar.Get("visited"); !ok {
//	        _ = jar.Set("visited", "1", cookie.WithExpires(time.Now().Add(time.Hour)))
//	    }
//	})
//
// # Configuration
//
// The `Config` struct allows the manager to be constructed from environment variables via
// github.com/caarlos0/env.
//
//	cfg := cookie.DefaultConfig()
//	_ = env.Parse(&cfg)
//	man := cookie.NewFromConfig(cfg)
//
// # Error Handling
//
// `ErrCookieNotFound` is returned by Get when the request does not carry the cookie and
// `ErrInvalidCookie` by Set when the name, value or attributes cannot be serialized.
package cookie
