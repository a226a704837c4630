package fetcher

import (
	"time"
)

// Config Fetcher 체인 구성을 위한 설정입니다.
type Config struct {
	// Timeout 요청 전체 타임아웃 (nil: 기본값 30초, 0: 무제한)
	Timeout *time.Duration

	// UserAgent 기본 User-Agent (빈 문자열: "allotment-probe/<버전>")
	UserAgent string

	// MaxBytes 응답 본문 최대 크기 (0: 기본값 10MB, NoLimit(-1): 무제한)
	MaxBytes int64

	// DisableLogging 요청 로깅 비활성화 여부
	DisableLogging bool
}

// NewFromConfig 설정에 따라 Fetcher 체인을 조립합니다.
//
//	HTTPFetcher → MaxBytesFetcher → LoggingFetcher
func NewFromConfig(cfg Config, opts ...Option) Fetcher {
	var mergedOpts []Option
	if cfg.Timeout != nil {
		mergedOpts = append(mergedOpts, WithTimeout(*cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		mergedOpts = append(mergedOpts, WithUserAgent(cfg.UserAgent))
	}
	mergedOpts = append(mergedOpts, opts...)

	var f Fetcher = NewHTTPFetcher(mergedOpts...)

	f = NewMaxBytesFetcher(f, cfg.MaxBytes)

	if !cfg.DisableLogging {
		f = NewLoggingFetcher(f)
	}

	return f
}
