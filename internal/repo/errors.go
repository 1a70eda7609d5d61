package repo

import "errors"

// ErrProductNotFound is returned when a product id resolves to no record.
var ErrProductNotFound = errors.New("product not found")
