package probe

import (
	"encoding/json"

	"github.com/iancoleman/strcase"
)

// Stage 실행 단계
type Stage int

const (
	StageLogin Stage = iota
	StageListApplications
	StageMarkAllotment
	StageLogout
)

var stageNames = [...]string{
	StageLogin:            "Login",
	StageListApplications: "ListApplications",
	StageMarkAllotment:    "MarkAllotment",
	StageLogout:           "Logout",
}

// String 로그 필드와 보고서에 사용하는 snake_case 이름을 반환합니다. (예: mark_allotment)
func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return strcase.ToSnake(stageNames[s])
}

// Outcome 단계의 처리 결과
type Outcome int

const (
	OutcomeSkipped Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// StageResult 단계 하나의 결과
type StageResult struct {
	Stage   Stage
	Outcome Outcome
	Err     error
}

// Report 한 번의 실행 결과입니다.
type Report struct {
	Stages []StageResult

	// ApplicationID 배정 처리 대상으로 선택된 청약 ID (선택되지 않았으면 0)
	ApplicationID int64

	// NoApplications 청약 목록이 비어 있어 정상 종료했는지 여부
	NoApplications bool

	// Response 배정 처리 성공 시 서버 응답 원문
	Response json.RawMessage
}

// Err 로그인, 목록 조회, 배정 처리 중 처음 실패한 단계의 에러를 반환합니다.
// 로그아웃 실패는 실행 결과에 영향을 주지 않으므로 제외됩니다.
func (r *Report) Err() error {
	for _, sr := range r.Stages {
		if sr.Stage == StageLogout {
			continue
		}
		if sr.Outcome == OutcomeFailed {
			return sr.Err
		}
	}
	return nil
}

// Result stage의 결과를 반환합니다.
func (r *Report) Result(stage Stage) (StageResult, bool) {
	for _, sr := range r.Stages {
		if sr.Stage == stage {
			return sr, true
		}
	}
	return StageResult{}, false
}

func (r *Report) record(stage Stage, outcome Outcome, err error) {
	r.Stages = append(r.Stages, StageResult{Stage: stage, Outcome: outcome, Err: err})
}

func (r *Report) skip(stages ...Stage) {
	for _, s := range stages {
		r.record(s, OutcomeSkipped, nil)
	}
}
