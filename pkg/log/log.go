// Package log logrus 기반의 전역 로거 설정과 도메인 공통 로깅 헬퍼를 제공합니다.
//
// 모든 로그는 hook을 통해 파일(lumberjack 로테이션)과 표준 에러로 분배되며,
// 표준 출력은 실행 결과 보고 전용으로 남겨 둡니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// MaskSensitiveData 토큰, 비밀번호 등을 로그에 남길 때 일부만 노출되도록 가립니다.
func MaskSensitiveData(data string) string {
	if data == "" {
		return ""
	}

	if len(data) <= 3 {
		return "***"
	}

	if len(data) <= 12 {
		return data[:4] + "***"
	}

	return data[:4] + "***" + data[len(data)-4:]
}

// WithComponent component 필드가 설정된 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField("component", component)
}

// WithComponentAndFields component 필드와 추가 필드가 설정된 Entry를 반환합니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["component"] = component
	return logrus.WithFields(merged)
}
