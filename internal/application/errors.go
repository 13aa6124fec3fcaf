package application

import (
	"errors"

	"cryptoswap-service/internal/domain"
)

var ErrNotFound = domain.ErrNotFound
var ErrConflict = errors.New("conflict")
var ErrBadRequest = errors.New("bad request")
var ErrSessionStopped = errors.New("session stopped")
