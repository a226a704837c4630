package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/darkkaiser/allotment-probe/internal/config"
	"github.com/darkkaiser/allotment-probe/internal/fetcher"
	"github.com/darkkaiser/allotment-probe/internal/ipo"
	"github.com/darkkaiser/allotment-probe/internal/pkg/version"
	"github.com/darkkaiser/allotment-probe/internal/probe"
	applog "github.com/darkkaiser/allotment-probe/pkg/log"
	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitFailure = 1

	callerPathPrefix = "github.com/darkkaiser/allotment-probe"
)

// errRunFailed 실패 내용이 이미 출력된 경우에 RunE가 반환하는 에러
var errRunFailed = errors.New("run failed")

type rootFlags struct {
	configFile    string
	baseURL       string
	email         string
	password      string
	applicationID int64
	quantity      int
	status        string
	timeout       time.Duration
	logout        bool
	debug         bool
}

// overrides 명령행에서 명시적으로 지정된 플래그만 설정 키로 변환합니다.
func (f *rootFlags) overrides(cmd *cobra.Command) map[string]any {
	values := map[string]struct {
		key   string
		value any
	}{
		"base-url":       {"api.base_url", f.baseURL},
		"email":          {"credentials.email", f.email},
		"password":       {"credentials.password", f.password},
		"application-id": {"allotment.application_id", f.applicationID},
		"quantity":       {"allotment.quantity", f.quantity},
		"status":         {"allotment.status", f.status},
		"timeout":        {"http.timeout", f.timeout},
		"logout":         {"session.logout", f.logout},
		"debug":          {"debug", f.debug},
	}

	overrides := make(map[string]any)
	for name, v := range values {
		if cmd.Flags().Changed(name) {
			overrides[v.key] = v.value
		}
	}
	return overrides
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "IPO 청약 배정 처리 API 재현 도구",
		Long: `로그인 후 청약 목록을 조회하고, 첫 번째(또는 지정한) 청약에 대해
배정 처리(PUT /ipo-applications/mark-allotment)를 요청하여 서버 응답을 출력합니다.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runProbe(cmd.Context(), flags.configFile, flags.overrides(cmd), stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.Flags()
	fs.StringVar(&flags.configFile, "config", "", "JSON 설정 파일 경로 (기본: ./"+config.DefaultFilename+", 없으면 무시)")
	fs.StringVar(&flags.baseURL, "base-url", config.DefaultBaseURL, "API 기준 주소")
	fs.StringVar(&flags.email, "email", config.DefaultEmail, "로그인 ID")
	fs.StringVar(&flags.password, "password", "", "로그인 비밀번호")
	fs.Int64Var(&flags.applicationID, "application-id", 0, "배정 처리할 청약 ID (0: 목록의 첫 번째 청약)")
	fs.IntVar(&flags.quantity, "quantity", config.DefaultQuantity, "배정 수량")
	fs.StringVar(&flags.status, "status", ipo.AllotmentStatusAllotted, "배정 상태 (ALLOTTED | NOT_ALLOTTED)")
	fs.DurationVar(&flags.timeout, "timeout", config.DefaultTimeout, "요청별 HTTP 타임아웃 (0: 무제한)")
	fs.BoolVar(&flags.logout, "logout", false, "마지막에 /auth/logout 호출")
	fs.BoolVar(&flags.debug, "debug", false, "상세 로그를 표준 에러로 출력")

	cmd.AddCommand(newVersionCommand(stdout))

	return cmd
}

func newVersionCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "빌드 정보 출력",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "%s %s\n", config.AppName, version.Get())
		},
	}
}

// execute 명령을 실행하고 프로세스 종료 코드를 반환합니다.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitFailure
	}

	return exitOK
}

func runProbe(ctx context.Context, configFile string, overrides map[string]any, stdout, stderr io.Writer) error {
	appConfig, err := config.Load(config.LoadOptions{
		File:      configFile,
		Overrides: overrides,
	})
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		return errRunFailed
	}

	var logOpts applog.Options
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}
	logOpts.Dir = appConfig.Log.Dir
	// log.level이 비어 있으면 프로필의 기본 레벨을 그대로 사용한다.
	if level, err := applog.ParseLevel(appConfig.Log.Level); err == nil {
		logOpts.Level = level
	}
	logOpts.ConsoleWriter = stderr
	logOpts.CallerPathPrefix = callerPathPrefix

	logCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(stderr, "[FATAL] 로그 시스템 초기화 실패: %v\n", err)
		return errRunFailed
	}
	defer logCloser.Close()

	applog.WithComponentAndFields("main", applog.Fields(version.Get().Fields())).
		WithField("config", appConfig.String()).
		Info("실행 시작")

	timeout := appConfig.HTTP.Timeout
	f := fetcher.NewFromConfig(fetcher.Config{
		Timeout:  &timeout,
		MaxBytes: appConfig.HTTP.MaxResponseBytes,
	})
	client := ipo.NewClient(appConfig.API.BaseURL, f, ipo.WithTenantKey(appConfig.API.TenantKey))

	runner := probe.NewRunner(client, probe.Config{
		Credentials: ipo.Credentials{
			Email:    appConfig.Credentials.Email,
			Password: appConfig.Credentials.Password,
		},
		ApplicationID: appConfig.Allotment.ApplicationID,
		Quantity:      appConfig.Allotment.Quantity,
		Status:        appConfig.Allotment.Status,
		Logout:        appConfig.Session.Logout,
	}, stdout)

	report := runner.Run(ctx)

	if err := report.Err(); err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": fmt.Sprintf("%+v", err),
		}).Error("실행 실패")
		return errRunFailed
	}

	applog.WithComponentAndFields("main", applog.Fields{
		"application_id":  report.ApplicationID,
		"no_applications": report.NoApplications,
	}).Info("실행 완료")

	return nil
}
