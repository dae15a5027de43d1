package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned by the store when a lookup matches nothing.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no %s with %s", e.Entity, e.Key)
}

func IsNotFoundError(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}

func ListNotFound(slug string) NotFoundError {
	return NotFoundError{Entity: "list", Key: fmt.Sprintf("slug '%s'", slug)}
}

func TaskNotFound(hashID string) NotFoundError {
	return NotFoundError{Entity: "task", Key: fmt.Sprintf("hash '%s'", hashID)}
}
