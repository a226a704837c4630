// Package testutil 테스트 전반에서 공유하는 도우미 함수를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

// GetFreePort 테스트용으로 사용 가능한 임의의 포트를 반환합니다.
func GetFreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// UnreachableBaseURL 리스닝 중인 서버가 없는 주소를 API 기준 주소 형태로 반환합니다.
// 연결 거부 시나리오를 재현할 때 사용합니다.
func UnreachableBaseURL(t testing.TB) string {
	t.Helper()
	return fmt.Sprintf("http://127.0.0.1:%d/api", GetFreePort(t))
}
