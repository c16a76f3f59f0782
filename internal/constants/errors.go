package constants

// Error codes for request-boundary classification. Client input problems
// map to 400, everything surfaced by the archive or the gateway itself
// maps to 500; the HTTP envelope is always {"error": message}.

const (
	CodeSuccess = 0

	// Client input errors (400)
	CodeBadRequest             = 40000
	CodeInvalidJSON            = 40001
	CodeMissingParameter       = 40002
	CodeMissingSearchCriterion = 40003
	CodeInvalidFields          = 40004
	CodeInvalidCountries       = 40005
	CodeValidationFailed       = 40006

	// Routing errors
	CodeNotFound         = 44000
	CodeMethodNotAllowed = 44001

	// Server-side errors (500)
	CodeInternalError   = 50000
	CodeUpstreamFailure = 50001
)

// errorMessages holds fallback messages for codes without a dynamic one.
var errorMessages = map[int]string{
	CodeSuccess:                "Success",
	CodeBadRequest:             "Bad request",
	CodeInvalidJSON:            "Invalid JSON payload",
	CodeMissingParameter:       "Required parameter missing",
	CodeMissingSearchCriterion: "At least one of search_term or search_page_ids must be provided",
	CodeInvalidFields:          "Invalid fields",
	CodeInvalidCountries:       "Invalid/unsupported country codes",
	CodeValidationFailed:       "Validation failed",
	CodeNotFound:               "Not found",
	CodeMethodNotAllowed:       "Method not allowed",
	CodeInternalError:          "Internal server error",
	CodeUpstreamFailure:        "Upstream archive failure",
}

// GetErrorMessage returns the standard message for an error code.
func GetErrorMessage(code int) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "Unknown error"
}

// GetHTTPStatusFromCode maps an error code to its HTTP status.
func GetHTTPStatusFromCode(code int) int {
	switch {
	case code == CodeSuccess:
		return 200
	case code >= 40000 && code < 41000:
		return 400
	case code == CodeNotFound:
		return 404
	case code == CodeMethodNotAllowed:
		return 405
	default:
		return 500
	}
}
