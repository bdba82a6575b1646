package cookie

import "errors"

var (
	ErrCookieNotFound = errors.New("cookie.not_found")
	ErrInvalidCookie  = errors.New("cookie.invalid")
)
