package apierror

// Error type URIs following the urn:wellness:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:wellness:error:validation"

	// TypeBadRequest indicates a malformed request (400)
	TypeBadRequest = "urn:wellness:error:bad_request"

	// TypeInvalidUUID indicates a client id that is not a UUIDv7 (400)
	TypeInvalidUUID = "urn:wellness:error:invalid_uuid"

	// TypeFutureTimestamp indicates a client id minted too far in the future (400)
	TypeFutureTimestamp = "urn:wellness:error:future_timestamp"

	// TypeUnauthorized indicates missing or invalid authentication (401)
	TypeUnauthorized = "urn:wellness:error:unauthorized"

	// TypeNotFound indicates an unknown route or resource (404)
	TypeNotFound = "urn:wellness:error:not_found"

	// TypeConflict indicates a check-in id that already exists (409)
	TypeConflict = "urn:wellness:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:wellness:error:rate_limit"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:wellness:error:internal"

	// TypeUnavailable indicates the event store could not be reached (503)
	TypeUnavailable = "urn:wellness:error:unavailable"
)

// Titles for each error type
const (
	TitleValidation      = "Validation Error"
	TitleBadRequest      = "Bad Request"
	TitleInvalidUUID     = "Invalid UUID Format"
	TitleFutureTimestamp = "Future Timestamp Not Allowed"
	TitleUnauthorized    = "Authentication Required"
	TitleNotFound        = "Resource Not Found"
	TitleConflict        = "Resource Conflict"
	TitleRateLimit       = "Rate Limit Exceeded"
	TitleInternal        = "Internal Server Error"
	TitleUnavailable     = "Service Unavailable"
)
