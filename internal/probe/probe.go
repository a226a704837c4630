// Package probe 로그인, 청약 목록 조회, 배정 처리 요청을 차례로 수행하여
// 배정 처리 API의 동작을 재현하고 그 결과를 사람이 읽을 수 있는 형태로 출력합니다.
//
// 각 단계는 이전 단계가 성공한 경우에만 실행되며, 어떤 요청도 재시도하지 않습니다.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/darkkaiser/allotment-probe/internal/fetcher"
	"github.com/darkkaiser/allotment-probe/internal/ipo"
	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	applog "github.com/darkkaiser/allotment-probe/pkg/log"
)

const component = "probe"

// API Runner가 호출하는 원격 API (*ipo.Client가 구현)
type API interface {
	Login(ctx context.Context, creds ipo.Credentials) (*ipo.Session, error)
	ListApplications(ctx context.Context, token string) ([]ipo.Application, error)
	MarkAllotment(ctx context.Context, token string, req ipo.AllotmentRequest) (json.RawMessage, error)
	Logout(ctx context.Context, token string) error
}

// Config 실행 매개변수
type Config struct {
	Credentials ipo.Credentials

	// ApplicationID 대상 청약 ID (0: 목록의 첫 번째 청약)
	ApplicationID int64

	Quantity int
	Status   string

	// Logout 마지막에 로그아웃 요청을 보낼지 여부
	Logout bool
}

// Runner 실행 스크립트
type Runner struct {
	api API
	cfg Config
	out io.Writer
}

// NewRunner 결과 메시지를 out에 출력하는 Runner를 생성합니다.
func NewRunner(api API, cfg Config, out io.Writer) *Runner {
	return &Runner{
		api: api,
		cfg: cfg,
		out: out,
	}
}

// Run 전체 단계를 한 번 실행합니다. 실패는 출력과 Report에 기록되며, 실행 자체는 항상 Report를 반환합니다.
func (r *Runner) Run(ctx context.Context) *Report {
	report := &Report{}

	session, err := r.api.Login(ctx, r.cfg.Credentials)
	if err != nil {
		r.printf("Login failed: %s\n", reason(err))
		r.fail(report, StageLogin, err)
		report.skip(StageListApplications, StageMarkAllotment)
		return report
	}
	r.printf("Login Successful. Token obtained.\n")
	r.succeed(report, StageLogin)

	defer r.logout(ctx, report, session.Token)

	target, ok := r.selectApplication(ctx, report, session.Token)
	if !ok {
		report.skip(StageMarkAllotment)
		return report
	}
	report.ApplicationID = target.ID

	r.markAllotment(ctx, report, session.Token, target.ID)

	return report
}

func (r *Runner) selectApplication(ctx context.Context, report *Report, token string) (ipo.Application, bool) {
	apps, err := r.api.ListApplications(ctx, token)
	if err != nil {
		r.printf("Failed to list apps: %s\n", reason(err))
		r.fail(report, StageListApplications, err)
		return ipo.Application{}, false
	}

	if len(apps) == 0 {
		r.printf("No applications found.\n")
		report.NoApplications = true
		r.succeed(report, StageListApplications)
		return ipo.Application{}, false
	}

	target, found := apps[0], true
	if r.cfg.ApplicationID != 0 {
		found = false
		for _, app := range apps {
			if app.ID == r.cfg.ApplicationID {
				target, found = app, true
				break
			}
		}
	}
	if !found {
		r.printf("Application ID %d not found.\n", r.cfg.ApplicationID)
		r.fail(report, StageListApplications, apperrors.Newf(apperrors.NotFound, "청약 목록(%d건)에 ID %d가 없습니다", len(apps), r.cfg.ApplicationID))
		return ipo.Application{}, false
	}

	r.printf("Found application ID: %d, Status: %s\n", target.ID, target.ApplicationStatus)
	r.succeed(report, StageListApplications)

	return target, true
}

func (r *Runner) markAllotment(ctx context.Context, report *Report, token string, applicationID int64) {
	r.printf("\nAttempting to mark allotment for Application ID: %d\n", applicationID)

	raw, err := r.api.MarkAllotment(ctx, token, ipo.AllotmentRequest{
		ApplicationID: applicationID,
		Quantity:      r.cfg.Quantity,
		Status:        r.cfg.Status,
	})
	if err != nil {
		var statusErr *fetcher.HTTPStatusError
		if apperrors.As(err, &statusErr) {
			r.printf("Failed with status: %d\n", statusErr.StatusCode)
			r.printf("Response: %s\n", statusErr.Body)
		} else {
			r.printf("Request failed: %s\n", reason(err))
		}
		r.fail(report, StageMarkAllotment, err)
		return
	}

	r.printf("Success!\n")

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimSpace(raw), "", "  "); err != nil {
		err = apperrors.Wrap(err, apperrors.ParsingFailed, "배정 처리 응답이 올바른 JSON이 아닙니다")
		r.printf("Request failed: %s\n", reason(err))
		r.fail(report, StageMarkAllotment, err)
		return
	}
	r.printf("%s\n", pretty.Bytes())

	report.Response = raw
	r.succeed(report, StageMarkAllotment)
}

// logout 설정된 경우에만 로그아웃을 요청합니다. 결과는 기록만 하고 실행 결과에는 반영하지 않습니다.
func (r *Runner) logout(ctx context.Context, report *Report, token string) {
	if !r.cfg.Logout {
		return
	}

	if err := r.api.Logout(ctx, token); err != nil {
		r.printf("Logout failed: %s\n", reason(err))
		r.fail(report, StageLogout, err)
		return
	}

	r.printf("Logged out.\n")
	r.succeed(report, StageLogout)
}

func (r *Runner) succeed(report *Report, stage Stage) {
	report.record(stage, OutcomeSucceeded, nil)

	applog.WithComponentAndFields(component, applog.Fields{
		"stage":   stage.String(),
		"outcome": OutcomeSucceeded.String(),
	}).Info("단계 완료")
}

func (r *Runner) fail(report *Report, stage Stage, err error) {
	report.record(stage, OutcomeFailed, err)

	applog.WithComponentAndFields(component, applog.Fields{
		"stage":      stage.String(),
		"outcome":    OutcomeFailed.String(),
		"error_type": apperrors.UnderlyingType(err).String(),
		"error":      err,
	}).Error("단계 실패")
}

func (r *Runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// reason 콘솔에 출력할 실패 사유를 만듭니다.
// HTTP 상태 코드 에러는 상태 문자열만, 그 외에는 에러 메시지 전체를 사용합니다.
func reason(err error) string {
	var statusErr *fetcher.HTTPStatusError
	if apperrors.As(err, &statusErr) {
		return "HTTP " + statusErr.Status
	}
	return err.Error()
}
