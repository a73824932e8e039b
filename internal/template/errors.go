package template

import "errors"

var (
	ErrUnresolvedVariable   = errors.New("unresolved template variable")
	ErrUnknownFilter        = errors.New("unknown template filter")
	ErrMalformedPlaceholder = errors.New("malformed template placeholder")
)
