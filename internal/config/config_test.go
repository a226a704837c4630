package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Helpers
// =============================================================================

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// loadIsolated 현재 디렉토리의 기본 설정 파일이 영향을 주지 않도록 빈 임시 디렉토리에서 Load를 호출합니다.
func loadIsolated(t *testing.T, opts LoadOptions) (*AppConfig, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	return Load(opts)
}

func TestNormalizeEnvKey(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"ALLOTMENT_PROBE_DEBUG", "debug"},
		{"ALLOTMENT_PROBE_API__BASE_URL", "api.base_url"},
		{"ALLOTMENT_PROBE_HTTP__MAX_RESPONSE_BYTES", "http.max_response_bytes"},
		{"ALLOTMENT_PROBE_Mixed_Case__Key", "mixed_case.key"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeEnvKey(tt.input), "Input: %s", tt.input)
	}
}

// =============================================================================
// Load
// =============================================================================

func TestLoad_Defaults(t *testing.T) {
	cfg, err := loadIsolated(t, LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, newDefaultConfig(), *cfg)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, "106", cfg.Credentials.Email)
	assert.Equal(t, "123456", cfg.Credentials.Password)
	assert.Equal(t, 10, cfg.Allotment.Quantity)
	assert.Equal(t, "ALLOTTED", cfg.Allotment.Status)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout)
	assert.False(t, cfg.Session.Logout)
}

func TestLoad_DefaultFileInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFilename), []byte(`{"allotment":{"quantity":5}}`), 0o600))
	t.Chdir(dir)

	cfg, err := Load(LoadOptions{})

	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Allotment.Quantity)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfigFile(t, `{
		"api": {"base_url": "http://file.example.com/api"},
		"allotment": {"quantity": 20, "status": "NOT_ALLOTTED"},
		"http": {"timeout": "5s"}
	}`)

	t.Setenv("ALLOTMENT_PROBE_ALLOTMENT__QUANTITY", "30")
	t.Setenv("ALLOTMENT_PROBE_HTTP__TIMEOUT", "7s")
	t.Setenv("ALLOTMENT_PROBE_SESSION__LOGOUT", "true")

	cfg, err := loadIsolated(t, LoadOptions{
		File: path,
		Overrides: map[string]any{
			"http.timeout": 9 * time.Second,
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "http://file.example.com/api", cfg.API.BaseURL, "파일 값이 기본값을 덮어씁니다")
	assert.Equal(t, "NOT_ALLOTTED", cfg.Allotment.Status)
	assert.Equal(t, 30, cfg.Allotment.Quantity, "환경 변수가 파일 값을 덮어씁니다")
	assert.True(t, cfg.Session.Logout)
	assert.Equal(t, 9*time.Second, cfg.HTTP.Timeout, "플래그 값이 환경 변수를 덮어씁니다")
	assert.Equal(t, "106", cfg.Credentials.Email, "지정하지 않은 값은 기본값을 유지합니다")
}

func TestLoad_FileErrors(t *testing.T) {
	t.Run("명시한 파일이 없음", func(t *testing.T) {
		_, err := loadIsolated(t, LoadOptions{File: filepath.Join(t.TempDir(), "missing.json")})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.System))
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		_, err := loadIsolated(t, LoadOptions{File: writeConfigFile(t, `{"api": `)})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("알 수 없는 키", func(t *testing.T) {
		_, err := loadIsolated(t, LoadOptions{File: writeConfigFile(t, `{"api": {"base_uri": "http://x"}}`)})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})

	t.Run("잘못된 기간 형식", func(t *testing.T) {
		_, err := loadIsolated(t, LoadOptions{File: writeConfigFile(t, `{"http": {"timeout": "soon"}}`)})

		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
	})
}

// =============================================================================
// Validation
// =============================================================================

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*AppConfig)
		wantMsg string
	}{
		{"정상", func(*AppConfig) {}, ""},
		{"빈 주소", func(c *AppConfig) { c.API.BaseURL = "" }, "api.base_url"},
		{"http가 아닌 주소", func(c *AppConfig) { c.API.BaseURL = "localhost:8080" }, "http 또는 https"},
		{"빈 이메일", func(c *AppConfig) { c.Credentials.Email = "" }, "credentials.email"},
		{"빈 비밀번호", func(c *AppConfig) { c.Credentials.Password = "" }, "credentials.password"},
		{"허용되지 않는 상태", func(c *AppConfig) { c.Allotment.Status = "PENDING" }, "ALLOTTED, NOT_ALLOTTED"},
		{"음수 수량", func(c *AppConfig) { c.Allotment.Quantity = -5 }, "allotment.quantity"},
		{"음수 청약 ID", func(c *AppConfig) { c.Allotment.ApplicationID = -1 }, "allotment.application_id"},
		{"음수 타임아웃", func(c *AppConfig) { c.HTTP.Timeout = -time.Second }, "http.timeout"},
		{"무제한 응답 크기", func(c *AppConfig) { c.HTTP.MaxResponseBytes = -1 }, ""},
		{"잘못된 응답 크기", func(c *AppConfig) { c.HTTP.MaxResponseBytes = -2 }, "http.max_response_bytes"},
		{"로그 레벨", func(c *AppConfig) { c.Log.Level = "warn" }, ""},
		{"잘못된 로그 레벨", func(c *AppConfig) { c.Log.Level = "verbose" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newDefaultConfig()
			tt.modify(&cfg)

			err := cfg.validate()
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAppConfig_String_HidesPassword(t *testing.T) {
	cfg := newDefaultConfig()
	cfg.Credentials.Password = "super-secret"
	cfg.API.TenantKey = "tenant-key-value"

	s := cfg.String()

	assert.NotContains(t, s, "super-secret")
	assert.NotContains(t, s, "tenant-key-value")
	assert.Contains(t, s, "tenant_key_set=true")
}

func Test_configKey(t *testing.T) {
	assert.Equal(t, "api.base_url", configKey("AppConfig.api.base_url"))
	assert.Equal(t, "debug", configKey("debug"))
}
