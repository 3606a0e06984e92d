package client

import "errors"

// ErrNilParam indicates a required parameter was nil.
var ErrNilParam = errors.New("client: nil parameter")
