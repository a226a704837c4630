package ipo

import "slices"

// 배정 처리 요청에 사용할 수 있는 상태 값
const (
	AllotmentStatusAllotted    = "ALLOTTED"
	AllotmentStatusNotAllotted = "NOT_ALLOTTED"
)

// 청약 상태 (applicationStatus)
const (
	ApplicationStatusPending  = "PENDING"
	ApplicationStatusApproved = "APPROVED"
	ApplicationStatusRejected = "REJECTED"
	ApplicationStatusAllotted = "ALLOTTED"
)

var allotmentStatuses = []string{AllotmentStatusAllotted, AllotmentStatusNotAllotted}

// AllotmentStatuses 배정 처리 요청에 허용되는 상태 값 목록을 반환합니다.
func AllotmentStatuses() []string {
	return slices.Clone(allotmentStatuses)
}

// IsValidAllotmentStatus s가 배정 처리 요청에 허용되는 상태 값인지 확인합니다.
func IsValidAllotmentStatus(s string) bool {
	return slices.Contains(allotmentStatuses, s)
}

// Credentials 로그인 자격증명
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session 로그인으로 얻은 세션 정보. 한 번의 실행 동안 메모리에만 보관됩니다.
type Session struct {
	Token string

	// TenantKey 로그인 응답의 tenant.tenantKey (없으면 빈 문자열)
	TenantKey string
}

// Application 청약 목록의 항목입니다. 서버가 보내지 않은 선택 필드는 zero value로 남습니다.
type Application struct {
	ID                int64  `json:"id"`
	ApplicationStatus string `json:"applicationStatus"`
	ApplicationNumber string `json:"applicationNumber,omitempty"`
	CustomerName      string `json:"customerName,omitempty"`
	IPOCompanyName    string `json:"ipoCompanyName,omitempty"`
	Quantity          int    `json:"quantity,omitempty"`
	AllotmentQuantity int    `json:"allotmentQuantity,omitempty"`
	AllotmentStatus   string `json:"allotmentStatus,omitempty"`
}

// AllotmentRequest 배정 처리(PUT /ipo-applications/mark-allotment) 요청 본문입니다.
// 값은 검증 없이 그대로 전송되며, 판단은 전적으로 서버에 맡깁니다.
type AllotmentRequest struct {
	ApplicationID int64  `json:"applicationId"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`
}
