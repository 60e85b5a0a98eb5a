package caja

import "errors"

var (
	ErrSessionClosed = errors.New("caja session is closed")
	ErrSessionOpen   = errors.New("caja session is already open")
	ErrNoSession     = errors.New("no caja session exists yet")
)
