package apperr

import "errors"

// error kinds used by services; controllers map them to HTTP statuses

type Kind string

const (
	NotFound        Kind = "NOT_FOUND"
	Forbidden       Kind = "FORBIDDEN"
	InvalidArgument Kind = "INVALID_ARGUMENT"
	Conflict        Kind = "CONFLICT"
)

type coded struct {
	kind Kind
	msg  string
}

func (e coded) Error() string { return e.msg }
func (e coded) Kind() Kind    { return e.kind }

func New(k Kind, msg string) error { return coded{kind: k, msg: msg} }

// KindOf extracts the kind, "" for plain errors.
func KindOf(err error) Kind {
	var ce interface{ Kind() Kind }
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return ""
}
