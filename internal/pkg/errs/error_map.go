/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// A zero Status means the default status of the error's Kind applies.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:         {Code: ErrInvalidParams, Kind: KindValidation, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType:  {Code: ErrUnsupportedMediaType, Kind: KindValidation, Message: "Unsupported request format."},
	ErrInvalidJSONFormat:     {Code: ErrInvalidJSONFormat, Kind: KindValidation, Message: "Unsupported request format."},
	ErrExtraContentInBody:    {Code: ErrExtraContentInBody, Kind: KindValidation, Message: "Request contains unexpected data."},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Kind: KindValidation, Message: "Request size is too large.", Status: http.StatusRequestEntityTooLarge},
	ErrRateLimitExceeded:     {Code: ErrRateLimitExceeded, Kind: KindValidation, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Account, Media and Message Business Logic Errors
	ErrMissingSignupFields:    {Code: ErrMissingSignupFields, Kind: KindValidation, Message: "All fields are required."},
	ErrPasswordTooShort:       {Code: ErrPasswordTooShort, Kind: KindValidation, Message: "Password must be at least 6 characters."},
	ErrPasswordTooLong:        {Code: ErrPasswordTooLong, Kind: KindValidation, Message: "Password is too long."},
	ErrEmailAlreadyExists:     {Code: ErrEmailAlreadyExists, Kind: KindConflict, Message: "E-mail already exists."},
	ErrImageRequired:          {Code: ErrImageRequired, Kind: KindValidation, Message: "Profile pic is required."},
	ErrImageInvalidFormat:     {Code: ErrImageInvalidFormat, Kind: KindValidation, Message: "Invalid image format."},
	ErrImageTooLarge:          {Code: ErrImageTooLarge, Kind: KindValidation, Message: "Image size exceeds the 9.5MB limit."},
	ErrImageUploadFailed:      {Code: ErrImageUploadFailed, Kind: KindUpload, Message: "Image upload failed."},
	ErrMediaHostMisconfigured: {Code: ErrMediaHostMisconfigured, Kind: KindConfiguration, Message: "Image uploads are temporarily unavailable."},
	ErrEmptyMessage:           {Code: ErrEmptyMessage, Kind: KindValidation, Message: "Message must contain text or an image."},
	ErrMessageContentTooLong:  {Code: ErrMessageContentTooLong, Kind: KindValidation, Message: "Message is too long."},
	ErrInvalidUserID:          {Code: ErrInvalidUserID, Kind: KindValidation, Message: "Invalid user id."},
	ErrReceiverNotFound:       {Code: ErrReceiverNotFound, Kind: KindValidation, Message: "Receiver not found."},

	// 3xxx: Session and Security Errors
	ErrInvalidCredentials: {Code: ErrInvalidCredentials, Kind: KindAuthentication, Message: "Invalid credentials.", Status: http.StatusBadRequest},
	ErrUnauthorized:       {Code: ErrUnauthorized, Kind: KindAuthentication, Message: "Please sign in to continue."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Kind: KindInternal, Message: "Internal Server Error."},
}
