// Package strutil은 로그와 에러 메시지를 구성할 때 쓰는 문자열 유틸리티를 제공합니다.
package strutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Integer 모든 정수 타입을 포괄하는 제네릭 인터페이스
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// FormatCommas 숫자를 천 단위 구분 기호(,)가 포함된 문자열로 변환합니다.
// 예: 10485760 -> "10,485,760"
func FormatCommas[T Integer](num T) string {
	var str string
	if num < 0 {
		str = strconv.FormatInt(int64(num), 10)
	} else {
		str = strconv.FormatUint(uint64(num), 10)
	}

	startOffset := 0
	if strings.HasPrefix(str, "-") {
		startOffset = 1
	}

	if len(str)-startOffset <= 3 {
		return str
	}

	var builder strings.Builder

	commaCount := (len(str) - startOffset - 1) / 3
	builder.Grow(len(str) + commaCount)

	if startOffset == 1 {
		builder.WriteByte('-')
		str = str[1:]
	}

	// 첫 번째 그룹 (1~3자리)
	firstGroupLen := len(str) % 3
	if firstGroupLen == 0 {
		firstGroupLen = 3
	}

	builder.WriteString(str[:firstGroupLen])

	for i := firstGroupLen; i < len(str); i += 3 {
		builder.WriteByte(',')
		builder.WriteString(str[i : i+3])
	}

	return builder.String()
}

// TruncateSuffix Truncate가 잘라낸 문자열 끝에 덧붙이는 표식
const TruncateSuffix = "...(truncated)"

// Truncate s를 최대 maxBytes 바이트까지 잘라내고 TruncateSuffix를 덧붙입니다.
// 멀티바이트 문자가 중간에서 끊기지 않도록 룬 경계에 맞춰 자릅니다.
// maxBytes가 0 이하이거나 s가 충분히 짧으면 s를 그대로 반환합니다.
func Truncate(s string, maxBytes int) string {
	if maxBytes <= 0 || len(s) <= maxBytes {
		return s
	}

	cut := maxBytes
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + TruncateSuffix
}
