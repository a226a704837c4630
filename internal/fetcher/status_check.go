package fetcher

import (
	"net/http"

	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
)

// checkResponseStatus 2xx 응답이면 nil을, 그 외에는 상태 코드에 맞는 ErrorType으로 감싼 *HTTPStatusError를 반환합니다.
func checkResponseStatus(resp *http.Response, req *http.Request, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	statusErr := &HTTPStatusError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		URL:        redactURL(req.URL),
		Header:     redactHeaders(resp.Header),
		Body:       body,
	}

	return apperrors.Wrapf(statusErr, ErrorTypeForStatus(resp.StatusCode), "HTTP 요청이 실패했습니다 (%s %s)", req.Method, statusErr.URL)
}

// ErrorTypeForStatus HTTP 상태 코드에 대응하는 ErrorType을 반환합니다.
func ErrorTypeForStatus(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusBadRequest:
		return apperrors.InvalidInput
	case code == http.StatusUnauthorized:
		return apperrors.Unauthorized
	case code == http.StatusForbidden:
		return apperrors.Forbidden
	case code == http.StatusNotFound:
		return apperrors.NotFound
	case code == http.StatusConflict:
		return apperrors.Conflict
	case code == http.StatusRequestTimeout, code == http.StatusTooManyRequests, code >= 500:
		return apperrors.Unavailable
	default:
		return apperrors.ExecutionFailed
	}
}
