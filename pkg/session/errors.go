package session

import "errors"

var (
	// ErrNoStore indicates no datastore could be resolved for the session
	ErrNoStore = errors.New("session.no_store")

	// ErrNoCookies indicates the engine was built without a cookie adapter
	ErrNoCookies = errors.New("session.no_cookies")

	// ErrCookieWrite indicates the session cookie could not be written
	ErrCookieWrite = errors.New("session.cookie_write_failed")
)
