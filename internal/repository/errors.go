package repository

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when the requested document does not exist.
// Handlers translate it into a 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// document they do not own.
var ErrForbidden = errors.New("forbidden")

// notFound maps the Firestore NotFound status onto ErrNotFound and leaves
// every other error untouched.
func notFound(err error) error {
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}
