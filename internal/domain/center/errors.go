package center

import "errors"

var ErrNotFound = errors.New("center not found")
