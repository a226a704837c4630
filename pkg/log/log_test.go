package log

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetForTest 전역 로거 상태를 초기화합니다.
func resetForTest(t *testing.T) {
	t.Helper()

	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func newEntry(level Level, msg string) *Entry {
	e := logrus.NewEntry(logrus.New())
	e.Level = level
	e.Message = msg
	return e
}

// =============================================================================
// hook
// =============================================================================

func TestHook_Routing(t *testing.T) {
	tests := []struct {
		name         string
		level        Level
		withVerbose  bool
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{"Error는 main과 critical", ErrorLevel, true, true, true, false},
		{"Info는 main", InfoLevel, true, true, false, false},
		{"Warn은 main", WarnLevel, true, true, false, false},
		{"Debug는 verbose만", DebugLevel, true, false, false, true},
		{"Trace는 verbose만", TraceLevel, true, false, false, true},
		{"verbose가 없으면 Debug도 main", DebugLevel, false, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mainBuf, criticalBuf, verboseBuf, consoleBuf bytes.Buffer
			h := &hook{
				mainWriter:     &mainBuf,
				criticalWriter: &criticalBuf,
				consoleWriter:  &consoleBuf,
				formatter:      &logrus.TextFormatter{DisableColors: true},
			}
			if tt.withVerbose {
				h.verboseWriter = &verboseBuf
			}

			require.NoError(t, h.Fire(newEntry(tt.level, "hello")))

			assert.Equal(t, tt.wantMain, mainBuf.Len() > 0, "main")
			assert.Equal(t, tt.wantCritical, criticalBuf.Len() > 0, "critical")
			assert.Equal(t, tt.wantVerbose, verboseBuf.Len() > 0, "verbose")
			assert.Contains(t, consoleBuf.String(), "hello", "console는 모든 레벨을 받아야 합니다")
		})
	}
}

func TestHook_WriteFailureDoesNotStopOthers(t *testing.T) {
	var mainBuf bytes.Buffer
	h := &hook{
		mainWriter:     &mainBuf,
		criticalWriter: failingWriter{},
		formatter:      &logrus.TextFormatter{DisableColors: true},
	}

	err := h.Fire(newEntry(ErrorLevel, "boom"))

	require.Error(t, err)
	assert.Contains(t, mainBuf.String(), "boom")
}

func TestHook_ClosedIgnoresEntries(t *testing.T) {
	var mainBuf bytes.Buffer
	h := &hook{mainWriter: &mainBuf, formatter: &logrus.TextFormatter{}}

	require.NoError(t, h.Close())
	require.NoError(t, h.Fire(newEntry(InfoLevel, "ignored")))

	assert.Zero(t, mainBuf.Len())
}

// =============================================================================
// closer
// =============================================================================

type countingCloser struct {
	closed int
	err    error
}

func (c *countingCloser) Close() error {
	c.closed++
	return c.err
}

func TestCloser_ClosesAllAndIsIdempotent(t *testing.T) {
	first := &countingCloser{err: errors.New("close failed")}
	second := &countingCloser{}
	h := &hook{}

	c := &closer{closers: []io.Closer{first, nil, second}, hook: h}

	err := c.Close()
	require.Error(t, err)
	assert.Equal(t, 1, first.closed)
	assert.Equal(t, 1, second.closed, "앞선 Close 실패와 관계없이 나머지도 닫아야 합니다")
	assert.True(t, h.closed)

	assert.NoError(t, c.Close())
	assert.Equal(t, 1, first.closed)
}

// =============================================================================
// Options / profiles
// =============================================================================

func TestOptions_Validate(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(tmpFile, []byte("x"), 0o600))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"정상", Options{Name: "app", EnableFileLog: true}, false},
		{"Name 누락", Options{}, true},
		{"Dir이 파일", Options{Name: "app", Dir: tmpFile}, true},
		{"음수 MaxAge", Options{Name: "app", MaxAge: -1}, true},
		{"음수 MaxSizeMB", Options{Name: "app", MaxSizeMB: -1}, true},
		{"음수 MaxBackups", Options{Name: "app", MaxBackups: -1}, true},
		{"파일 로그 없이 Critical 분리", Options{Name: "app", EnableCriticalLog: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProfiles(t *testing.T) {
	prod := NewProductionOptions("probe")
	assert.Equal(t, "probe", prod.Name)
	assert.Equal(t, InfoLevel, prod.Level)
	assert.False(t, prod.EnableConsoleLog, "운영 설정은 콘솔에 로그를 남기지 않습니다")
	assert.NoError(t, prod.Validate())

	dev := NewDevelopmentOptions("probe")
	assert.Equal(t, TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)
	assert.NoError(t, dev.Validate())
}

// =============================================================================
// Setup
// =============================================================================

func TestSetup_WritesFilesAndConsole(t *testing.T) {
	resetForTest(t)
	t.Cleanup(func() { resetForTest(t) })

	dir := t.TempDir()
	var console bytes.Buffer

	opts := NewProductionOptions("probe")
	opts.Dir = dir
	opts.EnableConsoleLog = true
	opts.ConsoleWriter = &console

	c, err := Setup(opts)
	require.NoError(t, err)

	WithComponent("test").Info("info message")
	WithComponent("test").Error("error message")
	WithComponent("test").Debug("debug message")

	require.NoError(t, c.Close())

	mainLog, err := os.ReadFile(filepath.Join(dir, "probe.log"))
	require.NoError(t, err)
	assert.Contains(t, string(mainLog), "info message")
	assert.Contains(t, string(mainLog), "component=test")
	assert.NotContains(t, string(mainLog), "debug message", "Info 레벨에서는 Debug가 기록되지 않습니다")

	criticalLog, err := os.ReadFile(filepath.Join(dir, "probe.critical.log"))
	require.NoError(t, err)
	assert.Contains(t, string(criticalLog), "error message")
	assert.NotContains(t, string(criticalLog), "info message")

	assert.Contains(t, console.String(), "info message")
}

func TestSetup_OnlyOnce(t *testing.T) {
	resetForTest(t)
	t.Cleanup(func() { resetForTest(t) })

	_, err := Setup(Options{})
	require.Error(t, err)

	// 두 번째 호출은 최초 결과를 그대로 반환한다.
	_, err2 := Setup(Options{Name: "probe"})
	assert.Equal(t, err, err2)
}

func TestSetup_ConsoleOnly(t *testing.T) {
	resetForTest(t)
	t.Cleanup(func() { resetForTest(t) })

	var console bytes.Buffer
	c, err := Setup(Options{Name: "probe", Level: DebugLevel, EnableConsoleLog: true, ConsoleWriter: &console})
	require.NoError(t, err)
	defer c.Close()

	WithComponentAndFields("fetcher", Fields{"url": "http://x"}).Debug("fetching")

	assert.Contains(t, console.String(), "fetching")
	assert.Contains(t, console.String(), "component=fetcher")
	assert.Contains(t, console.String(), "url=")
}

// =============================================================================
// helpers
// =============================================================================

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"abc", "***"},
		{"abcdef", "abcd***"},
		{"eyJhbGciOiJIUzI1NiJ9.payload", "eyJh***load"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskSensitiveData(tt.in), tt.in)
	}
}

func TestWithComponentAndFields_DoesNotMutateInput(t *testing.T) {
	fields := Fields{"a": 1}
	entry := WithComponentAndFields("probe", fields)

	assert.Equal(t, "probe", entry.Data["component"])
	assert.Equal(t, 1, entry.Data["a"])
	_, ok := fields["component"]
	assert.False(t, ok)
}
