package jsoncache

import "errors"

// Common errors returned by the cache. Callers should match them with errors.Is;
// the returned errors usually wrap one of these with extra context.
var (
	ErrInvalidJSON    = errors.New("invalid json document")
	ErrPathNotFound   = errors.New("path not found in document")
	ErrInvalidPattern = errors.New("invalid pattern")
	ErrReservedName   = errors.New("capture into reserved name")
	ErrMatcherBuild   = errors.New("matcher build failed")
)
