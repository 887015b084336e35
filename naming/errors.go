package naming

import "errors"

var ErrInvalidTemplate = errors.New("invalid name template")
