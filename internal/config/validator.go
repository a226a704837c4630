package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/darkkaiser/allotment-probe/internal/ipo"
	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	applog "github.com/darkkaiser/allotment-probe/pkg/log"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 설정 파일의 키 이름이 나오도록 한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("allotment_status", validateAllotmentStatus); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'allotment_status' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	if err := v.RegisterValidation("log_level", validateLogLevel); err != nil {
		panic(fmt.Sprintf("초기화 치명적 오류: 'log_level' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateAllotmentStatus(fl validator.FieldLevel) bool {
	return ipo.IsValidAllotmentStatus(fl.Field().String())
}

func validateLogLevel(fl validator.FieldLevel) bool {
	_, err := applog.ParseLevel(fl.Field().String())
	return err == nil
}

// newValidationError validator 에러를 사용자에게 보여줄 InvalidInput 에러로 변환합니다.
// 여러 필드가 실패한 경우 첫 번째 필드만 보고합니다.
func newValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "설정 검증 중 알 수 없는 오류가 발생했습니다")
	}

	fieldErr := validationErrors[0]
	key := configKey(fieldErr.Namespace())

	switch fieldErr.StructField() {
	case "BaseURL":
		if fieldErr.Tag() == "required" {
			return apperrors.New(apperrors.InvalidInput, "API 주소(api.base_url)가 설정되지 않았습니다")
		}
		return apperrors.Newf(apperrors.InvalidInput, "API 주소(api.base_url)는 http 또는 https URL이어야 합니다: '%v'", fieldErr.Value())
	case "Email", "Password":
		return apperrors.Newf(apperrors.InvalidInput, "로그인 자격증명(%s)이 설정되지 않았습니다", key)
	case "Status":
		return apperrors.Newf(apperrors.InvalidInput, "배정 상태(allotment.status)는 %s 중 하나여야 합니다: '%v'", strings.Join(ipo.AllotmentStatuses(), ", "), fieldErr.Value())
	case "Quantity":
		return apperrors.Newf(apperrors.InvalidInput, "배정 수량(allotment.quantity)은 0 이상이어야 합니다: %v", fieldErr.Value())
	case "ApplicationID":
		return apperrors.Newf(apperrors.InvalidInput, "대상 청약 ID(allotment.application_id)는 0 이상이어야 합니다: %v", fieldErr.Value())
	case "Timeout":
		return apperrors.Newf(apperrors.InvalidInput, "HTTP 타임아웃(http.timeout)은 0 이상이어야 합니다: %v", fieldErr.Value())
	case "Level":
		return apperrors.Newf(apperrors.InvalidInput, "로그 레벨(log.level)이 올바르지 않습니다: '%v'", fieldErr.Value())
	case "MaxResponseBytes":
		return apperrors.Newf(apperrors.InvalidInput, "응답 최대 크기(http.max_response_bytes)는 -1(무제한) 이상이어야 합니다: %v", fieldErr.Value())
	}

	return apperrors.Newf(apperrors.InvalidInput, "설정이 올바르지 않습니다: %s (조건: %s)", key, fieldErr.Tag())
}

// configKey "AppConfig.api.base_url" 형태의 네임스페이스에서 최상위 구조체 이름을 제거합니다.
func configKey(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}
