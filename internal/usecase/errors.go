package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrFeatureDisabled       = errors.New("feature disabled")
	ErrWomenTeamOnly         = errors.New("only women's team found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// UpstreamStatusError carries a non-2xx status returned by an external API so
// the HTTP layer can pass it through unchanged.
type UpstreamStatusError struct {
	Status int
	Body   string
}

func (e *UpstreamStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream status=%d", e.Status)
	}
	return fmt.Sprintf("upstream status=%d body=%s", e.Status, e.Body)
}

// UpstreamHTTPStatus lets metrics label a failed call by its status code.
func (e *UpstreamStatusError) UpstreamHTTPStatus() int {
	return e.Status
}

// UpstreamStatus returns the pass-through status carried by err, if any.
func UpstreamStatus(err error) (int, bool) {
	var statusErr *UpstreamStatusError
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	if statusErr.Status < 100 || statusErr.Status > 599 {
		return http.StatusBadGateway, true
	}
	return statusErr.Status, true
}
