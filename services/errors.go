package services

import "errors"

type errorKind int

const (
	kindInvalid errorKind = iota + 1
	kindNotFound
	kindUnauthorized
)

// Error carries a client-facing message and the class of failure; the HTTP
// layer maps the class onto a status code.
type Error struct {
	kind errorKind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func invalid(msg string) *Error      { return &Error{kind: kindInvalid, msg: msg} }
func notFound(msg string) *Error     { return &Error{kind: kindNotFound, msg: msg} }
func unauthorized(msg string) *Error { return &Error{kind: kindUnauthorized, msg: msg} }

var (
	ErrInvalidProductID   = invalid("Invalid or missing productId")
	ErrInvalidQuantity    = invalid("Quantity must be a non-negative integer")
	ErrEmptyProducts      = invalid("Invalid or empty products array")
	ErrInvalidLineItem    = invalid("Line items need a non-negative price and quantity")
	ErrInvalidSession     = invalid("Invalid checkout session")
	ErrSessionOwner       = invalid("Checkout session belongs to another user")
	ErrTooManyImages      = invalid("Maximum 3 images allowed per product")
	ErrNoImages           = invalid("At least one image is required")
	ErrInvalidPrice       = invalid("Price must be a non-negative number")
	ErrMissingFields      = invalid("Name, description, price and category are required")
	ErrEmailTaken         = invalid("User already exists")
	ErrInvalidCredentials = invalid("Invalid email or password")

	ErrProductNotFound  = notFound("Product not found")
	ErrCartItemNotFound = notFound("Product not found in cart")
	ErrCouponNotFound   = notFound("Coupon not found")
	ErrCouponExpired    = notFound("Coupon expired")
	ErrOrderNotFound    = notFound("Order not found")
	ErrUserNotFound     = unauthorized("User not found")
)

func kindOf(err error) errorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return 0
}

func IsInvalid(err error) bool      { return kindOf(err) == kindInvalid }
func IsNotFound(err error) bool     { return kindOf(err) == kindNotFound }
func IsUnauthorized(err error) bool { return kindOf(err) == kindUnauthorized }
