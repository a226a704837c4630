package fetcher

import (
	"fmt"
	"net/http"

	"github.com/darkkaiser/allotment-probe/pkg/strutil"
)

// HTTPStatusError 2xx 이외의 상태 코드를 받았을 때 반환되는 에러입니다.
//
// Body에는 응답 본문 전체가(응답 크기 제한 범위 내에서) 그대로 담기므로,
// 서버가 돌려준 에러 메시지를 가공 없이 출력할 수 있습니다.
type HTTPStatusError struct {
	// StatusCode HTTP 상태 코드 (예: 409)
	StatusCode int

	// Status 상태 문자열 (예: "409 Conflict")
	Status string

	// URL 민감 정보가 마스킹된 요청 URL
	URL string

	// Header 민감 헤더가 마스킹된 응답 헤더
	Header http.Header

	// Body 응답 본문 원문
	Body []byte

	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += fmt.Sprintf(" URL: %s", e.URL)
	}
	if snippet := e.bodySnippet(); snippet != "" {
		msg += fmt.Sprintf(", Body: %s", snippet)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// maxErrorBodySnippet 에러 메시지에 포함할 본문의 최대 길이
const maxErrorBodySnippet = 512

func (e *HTTPStatusError) bodySnippet() string {
	return strutil.Truncate(string(e.Body), maxErrorBodySnippet)
}
