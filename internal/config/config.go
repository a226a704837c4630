// Package config allotment-probe의 실행 설정을 로드하고 검증합니다.
//
// 설정은 아래 순서로 병합되며, 뒤에 오는 값이 앞의 값을 덮어씁니다.
//
//  1. 기본값 (newDefaultConfig)
//  2. JSON 설정 파일 (기본: ./allotment-probe.json, 없으면 건너뜀)
//  3. 환경 변수 (ALLOTMENT_PROBE_ 접두사, 중첩 키는 "__"로 구분. 예: ALLOTMENT_PROBE_API__BASE_URL)
//  4. 명령행 플래그로 지정된 값 (LoadOptions.Overrides)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/darkkaiser/allotment-probe/internal/ipo"
	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 이름
	AppName string = "allotment-probe"

	// DefaultFilename 기본 설정 파일 이름
	DefaultFilename = AppName + ".json"

	// EnvPrefix 설정을 덮어쓸 환경 변수의 접두사
	EnvPrefix = "ALLOTMENT_PROBE_"
)

const (
	DefaultBaseURL          = "http://localhost:8080/api"
	DefaultEmail            = "106"
	DefaultPassword         = "123456"
	DefaultQuantity         = 10
	DefaultTimeout          = 30 * time.Second
	DefaultMaxResponseBytes = 10 * 1024 * 1024
)

// AppConfig 애플리케이션 전체 설정입니다.
type AppConfig struct {
	Debug       bool              `json:"debug"`
	API         APIConfig         `json:"api"`
	Credentials CredentialsConfig `json:"credentials"`
	Allotment   AllotmentConfig   `json:"allotment"`
	Session     SessionConfig     `json:"session"`
	HTTP        HTTPConfig        `json:"http"`
	Log         LogConfig         `json:"log"`
}

// APIConfig 대상 IPO 서비스 접속 정보
type APIConfig struct {
	BaseURL   string `json:"base_url" validate:"required,http_url"`
	TenantKey string `json:"tenant_key"`
}

// CredentialsConfig 로그인 자격증명
type CredentialsConfig struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AllotmentConfig 배정 처리 요청 설정
type AllotmentConfig struct {
	// ApplicationID 대상 청약 ID (0: 목록의 첫 번째 청약)
	ApplicationID int64  `json:"application_id" validate:"gte=0"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	Status        string `json:"status" validate:"required,allotment_status"`
}

// SessionConfig 세션 종료 처리 설정
type SessionConfig struct {
	// Logout 실행 마지막에 /auth/logout 호출 여부
	Logout bool `json:"logout"`
}

// HTTPConfig HTTP 클라이언트 설정
type HTTPConfig struct {
	// Timeout 요청 하나의 전체 타임아웃 (0: 무제한)
	Timeout time.Duration `json:"timeout" validate:"gte=0"`

	// MaxResponseBytes 응답 본문 최대 크기 (-1: 무제한)
	MaxResponseBytes int64 `json:"max_response_bytes" validate:"gte=-1"`
}

// LogConfig 로그 파일 설정
type LogConfig struct {
	// Dir 로그 파일 디렉토리 (빈 문자열: ./logs)
	Dir string `json:"dir"`

	// Level 로그 레벨 (trace, debug, info, warn, error 등). 비어 있으면 debug 설정에 따른 기본값을 사용합니다.
	Level string `json:"level" validate:"omitempty,log_level"`
}

func newDefaultConfig() AppConfig {
	return AppConfig{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
		},
		Credentials: CredentialsConfig{
			Email:    DefaultEmail,
			Password: DefaultPassword,
		},
		Allotment: AllotmentConfig{
			Quantity: DefaultQuantity,
			Status:   ipo.AllotmentStatusAllotted,
		},
		HTTP: HTTPConfig{
			Timeout:          DefaultTimeout,
			MaxResponseBytes: DefaultMaxResponseBytes,
		},
	}
}

// LoadOptions Load 동작을 제어합니다.
type LoadOptions struct {
	// File 설정 파일 경로. 비어 있으면 DefaultFilename을 사용하며, 이 경우 파일이 없어도 에러가 아닙니다.
	// 명시적으로 지정한 파일이 없으면 에러를 반환합니다.
	File string

	// Overrides 가장 높은 우선순위로 적용할 값 ("api.base_url" 형태의 키)
	Overrides map[string]any
}

// Load 설정을 병합하여 로드한 뒤 검증합니다.
func Load(opts LoadOptions) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	filename, explicit := opts.File, true
	if filename == "" {
		filename, explicit = DefaultFilename, false
	}
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// 기본 설정 파일은 없어도 된다.
		case errors.Is(err, fs.ErrNotExist):
			return nil, apperrors.Wrapf(err, apperrors.System, "설정 파일을 찾을 수 없습니다: '%s'", filename)
		default:
			return nil, apperrors.Wrapf(err, apperrors.InvalidInput, "설정 파일 로드 중 오류가 발생했습니다: '%s'", filename)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, apperrors.Wrapf(err, apperrors.Internal, "설정 값 적용에 실패했습니다: '%s'", key)
		}
	}

	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}

	var appConfig AppConfig
	unmarshalConf.DecoderConfig.Result = &appConfig
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(); err != nil {
		return nil, err
	}

	return &appConfig, nil
}

// normalizeEnvKey 환경 변수 이름을 설정 키로 변환합니다.
// (예: ALLOTMENT_PROBE_HTTP__MAX_RESPONSE_BYTES → http.max_response_bytes)
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

func (c *AppConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		return newValidationError(err)
	}
	return nil
}

// String 비밀번호를 가린 설정 요약을 반환합니다.
func (c *AppConfig) String() string {
	return fmt.Sprintf("base_url=%s tenant_key_set=%t email=%s application_id=%d quantity=%d status=%s logout=%t timeout=%s",
		c.API.BaseURL, c.API.TenantKey != "", c.Credentials.Email, c.Allotment.ApplicationID,
		c.Allotment.Quantity, c.Allotment.Status, c.Session.Logout, c.HTTP.Timeout)
}
