package fetcher

import (
	"net/http"
	"time"

	"github.com/darkkaiser/allotment-probe/internal/pkg/version"
)

const (
	// defaultTimeout 요청 하나에 허용되는 전체 시간 (연결부터 본문 수신까지)
	defaultTimeout = 30 * time.Second

	userAgentProduct = "allotment-probe"
)

// HTTPFetcher 타임아웃과 기본 User-Agent가 적용된 http.Client 기반 Fetcher입니다.
type HTTPFetcher struct {
	client *http.Client

	defaultUA string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 설정 함수입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체 타임아웃을 설정합니다. 0이면 타임아웃이 없습니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		h.client.Timeout = timeout
	}
}

// WithUserAgent 요청에 User-Agent가 없을 때 사용할 값을 설정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		h.defaultUA = ua
	}
}

// NewHTTPFetcher 기본 타임아웃(30초)과 User-Agent("allotment-probe/<버전>")가 설정된 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		defaultUA: version.UserAgent(userAgentProduct),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Do 요청을 실행합니다. User-Agent가 없으면 복제한 요청에 기본값을 설정하여 전송합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if h.defaultUA != "" && req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", h.defaultUA)
	}

	return h.client.Do(req)
}

// Timeout 설정된 요청 타임아웃을 반환합니다.
func (h *HTTPFetcher) Timeout() time.Duration {
	return h.client.Timeout
}
