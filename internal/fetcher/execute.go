package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
)

// Request Execute로 전송할 요청입니다.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Response 본문까지 모두 읽힌 응답입니다.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Execute 요청을 전송하고 응답 본문을 모두 읽은 뒤 닫습니다.
//
// 반환되는 에러의 분류:
//   - 요청 생성 실패: Internal
//   - 전송 실패: Timeout 또는 Unavailable
//   - 본문 읽기 실패: Timeout, Unavailable 또는 (크기 초과 시) ExecutionFailed
//   - 2xx 이외의 상태 코드: 상태 코드별 ErrorType으로 감싼 *HTTPStatusError
func Execute(ctx context.Context, f Fetcher, r Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL, body)
	if err != nil {
		return nil, apperrors.Wrapf(redactURLError(err), apperrors.Internal, "HTTP 요청 생성에 실패했습니다 (%s %s)", r.Method, redactRawURL(r.URL))
	}
	for key, values := range r.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, newTransportError(err, req)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError(err, req)
	}

	if statusErr := checkResponseStatus(resp, req, data); statusErr != nil {
		return nil, statusErr
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
