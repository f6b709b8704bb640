package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("invalid parameter")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrBeerNotFound    = errors.New("beer not found or not owned by user")
	ErrMonthInvalid    = errors.New("invalid year or month")
	UnExpectedError    = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrUnauthorized:    Unauthorized,
	ErrInvalidQuantity: BadRequest,
	ErrBeerNotFound:    NotFound,
	ErrMonthInvalid:    BadRequest,
	UnExpectedError:    InternalServerError,
}
