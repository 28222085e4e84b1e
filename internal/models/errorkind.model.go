package models

// ErrorKind is the closed set of business-rule outcomes. Rule failures are
// values handed back to the caller, never panics or control-flow errors.
type ErrorKind int

const (
	CheckOK ErrorKind = iota
	Success
	// NotFound signals that the referenced report does not exist.
	NotFound
	// Forbidden signals that the acting employee does not own the report.
	Forbidden
	// HalfsizeError signals a password containing non-alphanumeric characters.
	HalfsizeError
	// RangecheckError signals a password outside the 8-16 character range.
	RangecheckError
)

// errorNames keys the handler response field each kind renders under.
var errorNames = map[ErrorKind]string{
	NotFound:        "notFoundError",
	Forbidden:       "forbiddenError",
	HalfsizeError:   "passwordError",
	RangecheckError: "passwordError",
}

var errorMessages = map[ErrorKind]string{
	NotFound:        "the requested report was not found",
	Forbidden:       "you are not authorized to modify this report",
	HalfsizeError:   "password must contain only half-width letters and digits",
	RangecheckError: "password must be between 8 and 16 characters",
}

// IsError reports whether the kind denotes a failure outcome.
func (k ErrorKind) IsError() bool {
	_, ok := errorMessages[k]
	return ok
}

func (k ErrorKind) ErrorName() string {
	return errorNames[k]
}

func (k ErrorKind) ErrorMessage() string {
	return errorMessages[k]
}
