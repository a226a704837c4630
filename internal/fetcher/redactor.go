package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"
)

var (
	// sensitiveExactKeys 값이 마스킹되어야 하는 쿼리 파라미터 이름 (대소문자 무시)
	sensitiveExactKeys = []string{
		"token", "auth", "key", "secret", "pass", "password", "passwd", "credential", "signature",
		"access_token", "refresh_token", "id_token", "api_key", "client_secret", "tenant_key", "tenantkey",
	}

	// sensitiveSuffixes 이 접미사로 끝나는 쿼리 파라미터도 마스킹합니다.
	sensitiveSuffixes = []string{
		"_token", "_secret", "_key", "_password",
	}

	sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie", "X-Tenant-Key"}
)

// redactHeaders 민감 헤더 값을 "***"로 바꾼 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}

	return masked
}

// redactURL 사용자 정보와 민감한 쿼리 파라미터를 마스킹한 URL 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	ru := *u

	if u.User != nil {
		if _, has := u.User.Password(); has {
			ru.User = url.UserPassword(u.User.Username(), "xxxxx")
		} else if u.User.Username() != "" {
			ru.User = url.User("xxxxx")
		}
	}

	if u.RawQuery != "" {
		query := ru.Query()
		for key := range query {
			if isSensitiveKey(key) {
				query.Set(key, "xxxxx")
			}
		}
		ru.RawQuery = query.Encode()
	}

	return ru.String()
}

// redactRawURL 파싱에 실패한 URL은 "@" 앞의 사용자 정보만 가립니다.
func redactRawURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		limit := len(rawURL)
		if idx := strings.IndexAny(rawURL, "?#"); idx != -1 {
			limit = idx
		}
		if at := strings.LastIndex(rawURL[:limit], "@"); at != -1 {
			if scheme := strings.Index(rawURL[:at], "://"); scheme != -1 {
				return rawURL[:scheme+3] + "xxxxx:xxxxx" + rawURL[at:]
			}
			return "xxxxx:xxxxx" + rawURL[at:]
		}
		return rawURL
	}

	return redactURL(u)
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)

	if slices.Contains(sensitiveExactKeys, lowerKey) {
		return true
	}

	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(lowerKey, suffix) {
			return true
		}
	}

	return false
}
