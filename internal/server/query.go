package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/propscout/hmo-app/internal/article4"
)

type QueryParameterError struct {
	Msg string
	Err error
}

func (p *QueryParameterError) Error() string {
	return p.Err.Error()
}

func (p *QueryParameterError) ServerErrorResponse() (int, string) {
	return http.StatusBadRequest, p.Msg
}

// ParsePostcode validates the postcode query parameter against
// the compatibility regex. Malformed input is an input error; no
// fallback is attempted for it.
func ParsePostcode(postcode string) (string, error) {
	if !article4.ValidPostcode(postcode) {
		return "", &QueryParameterError{
			Msg: "Invalid postcode",
			Err: fmt.Errorf("postcode %q failed validation", postcode),
		}
	}

	return postcode, nil
}

// ParseOptionalInt parses an optional integer query parameter,
// returning 0 when absent.
func ParseOptionalInt(name, value string) (int, error) {
	if value == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, &QueryParameterError{
			Msg: fmt.Sprintf("Invalid %s", name),
			Err: fmt.Errorf("failed to parse %s=%q", name, value),
		}
	}

	return n, nil
}
