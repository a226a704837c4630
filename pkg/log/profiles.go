package log

// NewProductionOptions 일반 실행에 사용하는 로그 설정을 반환합니다.
// 로그는 파일에만 기록되며, 콘솔에는 실행 결과 보고만 출력됩니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     7,
		MaxSizeMB:  10,
		MaxBackups: 5,

		EnableFileLog:     true,
		EnableCriticalLog: true,
		EnableVerboseLog:  false,
		EnableConsoleLog:  false,

		ReportCaller: true,
	}
}

// NewDevelopmentOptions 디버그 실행(--debug)에 사용하는 로그 설정을 반환합니다.
// 모든 레벨의 로그를 파일과 표준 에러에 함께 출력합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  10,
		MaxBackups: 2,

		EnableFileLog:     true,
		EnableCriticalLog: false,
		EnableVerboseLog:  false,
		EnableConsoleLog:  true,

		ReportCaller: true,
	}
}
