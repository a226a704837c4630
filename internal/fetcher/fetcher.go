// Package fetcher IPO API 호출에 사용하는 HTTP 전송 계층을 제공합니다.
//
// 실제 전송은 Fetcher 구현체들을 데코레이터로 조합하여 수행합니다.
//
//	HTTPFetcher (타임아웃, User-Agent)
//	  └─ MaxBytesFetcher (응답 본문 크기 제한)
//	       └─ LoggingFetcher (요청/응답 로깅, URL 마스킹)
//
// 호출자는 Execute를 통해 요청을 보내고, 본문이 모두 읽혀 닫힌 Response 또는
// 분류된 에러(apperrors.AppError, 비정상 상태 코드의 경우 *HTTPStatusError 포함)를 받습니다.
package fetcher

import (
	"net/http"
)

// component 로깅용 컴포넌트 이름
const component = "fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 구현 시 주의사항:
//   - 반환된 응답 객체의 Body는 호출자가 닫아야 합니다.
//   - 전달받은 요청 객체를 수정해서는 안 됩니다. 헤더를 바꿔야 한다면 복제본을 사용합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}
