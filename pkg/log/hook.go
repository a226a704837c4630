package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 단일 로그 이벤트를 여러 Writer로 분배합니다.
//
// 라우팅 규칙:
//   - console: 레벨과 무관하게 모든 로그 (디버그 실행 시 표준 에러)
//   - critical: ERROR 이상
//   - verbose: DEBUG 이하 (verbose가 설정되면 main에는 기록하지 않음)
//   - main: INFO 이상, verbose가 없으면 DEBUG 이하도 포함
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

// Fire 포맷팅은 한 번만 수행하고, 각 Writer의 쓰기 실패는 나머지 Writer의 기록을 막지 않습니다.
// 반환값은 처음 발생한 파일 쓰기 에러입니다.
func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	var firstErr error
	write := func(w io.Writer, name string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 쓰기 실패: %v\n", name, err)
		}
	}

	if h.consoleWriter != nil {
		// 콘솔 출력 실패는 파일 로그에 영향을 주지 않는다.
		_, _ = h.consoleWriter.Write(msg)
	}

	if entry.Level <= ErrorLevel {
		write(h.criticalWriter, "Critical")
	}

	if entry.Level >= DebugLevel && h.verboseWriter != nil {
		write(h.verboseWriter, "Verbose")
		return firstErr
	}

	write(h.mainWriter, "Main")

	return firstErr
}

// Close 이후의 모든 Fire 호출을 무시하도록 전환합니다. 진행 중인 Fire가 끝날 때까지 대기합니다.
func (h *hook) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true

	return nil
}
