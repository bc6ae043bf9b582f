/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect (e.g., syntax error).
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRequestEntityTooLarge indicates that the request body size exceeded the server limit.
	ErrRequestEntityTooLarge = 1006

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Account, Media and Message Business Logic Errors
const (
	// ErrMissingSignupFields indicates that fullName, email or password was empty.
	ErrMissingSignupFields = 2001

	// ErrPasswordTooShort indicates that the password is shorter than the minimum length.
	ErrPasswordTooShort = 2002

	// ErrPasswordTooLong indicates that the password exceeds what the hasher accepts.
	ErrPasswordTooLong = 2003

	// ErrEmailAlreadyExists indicates that another account is registered with the same email.
	ErrEmailAlreadyExists = 2004

	// ErrImageRequired indicates that an image payload was expected but not supplied.
	ErrImageRequired = 2101

	// ErrImageInvalidFormat indicates that the payload is not inline image data.
	ErrImageInvalidFormat = 2102

	// ErrImageTooLarge indicates that the estimated decoded image size exceeds the ceiling.
	ErrImageTooLarge = 2103

	// ErrImageUploadFailed indicates that the media host rejected or failed the upload.
	ErrImageUploadFailed = 2104

	// ErrMediaHostMisconfigured indicates that the media host refused the request because of operator configuration.
	ErrMediaHostMisconfigured = 2105

	// ErrEmptyMessage indicates that a message carried neither text nor image.
	ErrEmptyMessage = 2201

	// ErrMessageContentTooLong indicates that the user's message content exceeded the maximum length limit.
	ErrMessageContentTooLong = 2202

	// ErrInvalidUserID indicates that a user id in the request path is malformed.
	ErrInvalidUserID = 2203

	// ErrReceiverNotFound indicates that the message receiver does not exist.
	ErrReceiverNotFound = 2204
)

// 3xxx: Session and Security Errors
const (
	// ErrInvalidCredentials indicates that the email/password pair did not match an account.
	ErrInvalidCredentials = 3001

	// ErrUnauthorized indicates a missing, invalid, expired or revoked session.
	ErrUnauthorized = 3002
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
