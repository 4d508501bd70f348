// Package errors provides custom error types for inventory and sales operations.
package errors

import "errors"

var ErrProductNotFound = errors.New("product not found")
var ErrSaleNotFound = errors.New("sale not found")

var ErrInsufficientStock = errors.New("insufficient stock")

var ErrValidation = errors.New("validation failed")
var ErrInvalidStatus = errors.New("invalid status")
var ErrInvalidDraft = errors.New("invalid form input")
