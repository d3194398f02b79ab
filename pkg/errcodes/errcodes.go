package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Sessions.
	AccessTokenExpired failure.ErrorCode = "AccessTokenExpired"
	AccessTokenInvalid failure.ErrorCode = "AccessTokenInvalid"
	GoogleAuthFailed   failure.ErrorCode = "GoogleAuthFailed"

	// Catalog.
	ProductNotFound    failure.ErrorCode = "ProductNotFound"
	InvalidProductSlug failure.ErrorCode = "InvalidProductSlug"
	InvalidPaging      failure.ErrorCode = "InvalidPaging"
	ProductOutOfStock  failure.ErrorCode = "ProductOutOfStock"

	// Reviews.
	ReviewNotFound     failure.ErrorCode = "ReviewNotFound"
	InvalidReview      failure.ErrorCode = "InvalidReview"
	InvalidReviewScore failure.ErrorCode = "InvalidReviewScore"

	// Customers.
	CustomerNotFound failure.ErrorCode = "CustomerNotFound"
)
