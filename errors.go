package ftsearch

import "errors"

// ErrNoFields is returned when a search has no fields to match.
var ErrNoFields = errors.New("no search fields")

// ErrPathDepth is returned for field paths with more than one relation hop.
var ErrPathDepth = errors.New("field path crosses more than one relation")

// ErrInvalidMode is returned for modes outside the known set.
var ErrInvalidMode = errors.New("invalid search mode")
