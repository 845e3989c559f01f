package httperr

import "errors"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// IsAnyBusiness reports whether err carries a business code at all, as
// opposed to a store or infrastructure failure passed through verbatim.
func IsAnyBusiness(err error) bool {
	var be BusinessError
	return errors.As(err, &be)
}
