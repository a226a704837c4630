// Package ipo IPO 청약 관리 API의 클라이언트입니다.
package ipo

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/darkkaiser/allotment-probe/internal/fetcher"
	apperrors "github.com/darkkaiser/allotment-probe/internal/pkg/errors"
	applog "github.com/darkkaiser/allotment-probe/pkg/log"
	"github.com/tidwall/gjson"
)

const component = "ipo.client"

const (
	pathLogin           = "/auth/login"
	pathLogout          = "/auth/logout"
	pathApplications    = "/ipo-applications"
	pathMarkAllotment   = "/ipo-applications/mark-allotment"
	headerTenantKey     = "X-Tenant-Key"
	contentTypeJSON     = "application/json"
	authorizationBearer = "Bearer "
)

// Client IPO 청약 관리 API 클라이언트
type Client struct {
	baseURL   string
	fetcher   fetcher.Fetcher
	tenantKey string
}

// Option Client 설정 함수
type Option func(*Client)

// WithTenantKey 모든 요청에 X-Tenant-Key 헤더를 추가합니다. 빈 문자열이면 헤더를 보내지 않습니다.
func WithTenantKey(key string) Option {
	return func(c *Client) {
		c.tenantKey = key
	}
}

// NewClient baseURL(예: http://localhost:8080/api)을 기준으로 요청하는 클라이언트를 생성합니다.
func NewClient(baseURL string, f fetcher.Fetcher, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		fetcher: f,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login 자격증명으로 로그인하여 세션 토큰을 얻습니다.
// 응답에 비어 있지 않은 token 필드가 없으면 ParsingFailed 에러를 반환합니다.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Session, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "로그인 요청 본문 생성에 실패했습니다")
	}

	resp, err := c.do(ctx, http.MethodPost, pathLogin, "", body)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(resp.Body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "로그인 응답이 올바른 JSON이 아닙니다")
	}

	token := gjson.GetBytes(resp.Body, "token")
	if token.Type != gjson.String || token.String() == "" {
		return nil, apperrors.New(apperrors.ParsingFailed, "로그인 응답에 token 값이 없습니다")
	}

	session := &Session{
		Token:     token.String(),
		TenantKey: gjson.GetBytes(resp.Body, "tenant.tenantKey").String(),
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"email":      creds.Email,
		"token":      applog.MaskSensitiveData(session.Token),
		"tenant_key": applog.MaskSensitiveData(session.TenantKey),
	}).Info("로그인 성공")

	return session, nil
}

// ListApplications 청약 목록을 서버가 보낸 순서대로 반환합니다.
// 응답 본문이 JSON 배열이 아니면 ParsingFailed 에러를 반환합니다.
func (c *Client) ListApplications(ctx context.Context, token string) ([]Application, error) {
	resp, err := c.do(ctx, http.MethodGet, pathApplications, token, nil)
	if err != nil {
		return nil, err
	}

	if !gjson.ValidBytes(resp.Body) || !gjson.ParseBytes(resp.Body).IsArray() {
		return nil, apperrors.New(apperrors.ParsingFailed, "청약 목록 응답이 JSON 배열이 아닙니다")
	}

	var apps []Application
	if err := json.Unmarshal(resp.Body, &apps); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "청약 목록 응답을 해석할 수 없습니다")
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"count": len(apps),
	}).Info("청약 목록 조회 완료")

	return apps, nil
}

// MarkAllotment 청약의 배정 결과를 기록하고, 서버 응답 본문을 그대로 반환합니다.
// 2xx 이외의 응답은 *fetcher.HTTPStatusError를 포함한 에러로 반환되며, 재시도하지 않습니다.
func (c *Client) MarkAllotment(ctx context.Context, token string, req AllotmentRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "배정 요청 본문 생성에 실패했습니다")
	}

	resp, err := c.do(ctx, http.MethodPut, pathMarkAllotment, token, body)
	if err != nil {
		return nil, err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"application_id": req.ApplicationID,
		"quantity":       req.Quantity,
		"status":         req.Status,
		"status_code":    resp.StatusCode,
	}).Info("배정 처리 요청 성공")

	return json.RawMessage(resp.Body), nil
}

// Logout 세션을 종료합니다. 응답 본문은 사용하지 않습니다.
func (c *Client) Logout(ctx context.Context, token string) error {
	if _, err := c.do(ctx, http.MethodPost, pathLogout, token, nil); err != nil {
		return err
	}

	applog.WithComponent(component).Info("로그아웃 완료")

	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body []byte) (*fetcher.Response, error) {
	header := http.Header{}
	header.Set("Accept", contentTypeJSON)
	if body != nil {
		header.Set("Content-Type", contentTypeJSON)
	}
	if token != "" {
		header.Set("Authorization", authorizationBearer+token)
	}
	if c.tenantKey != "" {
		header.Set(headerTenantKey, c.tenantKey)
	}

	return fetcher.Execute(ctx, c.fetcher, fetcher.Request{
		Method: method,
		URL:    c.baseURL + path,
		Header: header,
		Body:   body,
	})
}
