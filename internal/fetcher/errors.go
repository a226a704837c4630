package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	"github.com/darkkaiser/allotment-probe/pkg/strutil"
)

func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "응답 본문이 허용된 최대 크기(%s 바이트)를 초과했습니다", strutil.FormatCommas(limit))
}

func newErrResponseBodyTooLargeByContentLength(contentLength, limit int64) error {
	return apperrors.Newf(apperrors.ExecutionFailed, "응답 본문 크기(%s 바이트)가 허용된 최대 크기(%s 바이트)를 초과합니다", strutil.FormatCommas(contentLength), strutil.FormatCommas(limit))
}

// newTransportError 전송 단계의 에러를 Timeout 또는 Unavailable로 분류합니다.
// 이미 분류된 AppError(응답 크기 초과 등)는 그대로 반환합니다.
func newTransportError(err error, req *http.Request) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	err = redactURLError(err)

	errType := apperrors.Unavailable
	if isTimeout(err) {
		errType = apperrors.Timeout
	}

	return apperrors.Wrapf(err, errType, "HTTP 요청 전송에 실패했습니다 (%s %s)", req.Method, redactURL(req.URL))
}

// redactURLError *url.Error에 포함된 URL의 민감 정보를 마스킹합니다.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = redactRawURL(urlErr.URL)
	}
	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
