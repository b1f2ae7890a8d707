// Package storage provides the string-keyed stores that hold serialized session state.
package storage

import "errors"

var ErrKeyNotFound = errors.New("key not found")
