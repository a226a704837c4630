package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
)

var (
	setupOnce sync.Once

	// 최초 Setup 호출의 결과를 보관하여, 재호출 시 동일한 결과를 반환합니다.
	globalCloser   io.Closer
	globalSetupErr error
)

// Setup 전역 로거를 초기화합니다. 프로세스 생명주기 동안 한 번만 적용되며,
// 반환된 Closer는 프로그램 종료 전에 반드시 닫아야 합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setupInternal(opts)
	})

	return globalCloser, globalSetupErr
}

func setupInternal(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	logrus.SetLevel(opts.Level)
	logrus.SetReportCaller(opts.ReportCaller)
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	textFormatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
		CallerPrettyfier: func(frame *runtime.Frame) (function string, file string) {
			function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
			if opts.CallerPathPrefix != "" {
				if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
					function = "..." + cut
				}
			}
			return
		},
	}

	h := &hook{formatter: textFormatter}

	if opts.EnableConsoleLog {
		h.consoleWriter = opts.ConsoleWriter
		if h.consoleWriter == nil {
			h.consoleWriter = os.Stderr
		}
	}

	var closers []io.Closer
	if opts.EnableFileLog {
		logDir := opts.Dir
		if logDir == "" {
			logDir = defaultDir
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
		}

		newLogger := func(suffix string) *lumberjack.Logger {
			name := opts.Name + "." + fileExt
			if suffix != "" {
				name = opts.Name + "." + suffix + "." + fileExt
			}
			l := &lumberjack.Logger{
				Filename:   filepath.Join(logDir, name),
				MaxSize:    valueOrDefault(opts.MaxSizeMB, defaultMaxSizeMB),
				MaxBackups: valueOrDefault(opts.MaxBackups, defaultMaxBackups),
				MaxAge:     opts.MaxAge,
				LocalTime:  true,
			}
			closers = append(closers, l)
			return l
		}

		h.mainWriter = newLogger("")
		if opts.EnableCriticalLog {
			h.criticalWriter = newLogger("critical")
		}
		if opts.EnableVerboseLog {
			h.verboseWriter = newLogger("verbose")
		}
	}

	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 인한 os.Exit 직전에 파일 버퍼를 비운다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}

func valueOrDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
