// Package fakeapi 테스트에서 사용하는 IPO 청약 관리 API의 인메모리 가짜 서버입니다.
//
// 각 엔드포인트의 응답(상태 코드, 본문)을 테스트마다 지정할 수 있으며,
// 수신한 모든 요청을 순서대로 기록합니다.
package fakeapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// Route 가짜 서버가 제공하는 엔드포인트
type Route string

const (
	RouteLogin         Route = "POST /api/auth/login"
	RouteLogout        Route = "POST /api/auth/logout"
	RouteApplications  Route = "GET /api/ipo-applications"
	RouteMarkAllotment Route = "PUT /api/ipo-applications/mark-allotment"
)

// 기본 응답 본문
const (
	DefaultLoginBody        = `{"token":"abc123","user":{"id":1,"email":"106"},"tenant":{"id":1,"tenantKey":"tenant-1"}}`
	DefaultApplicationsBody = `[{"id":42,"applicationStatus":"PENDING"}]`
	DefaultMarkBody         = `{"result":"ok"}`
)

// Response 엔드포인트가 돌려줄 응답
type Response struct {
	Status int
	Body   string
}

// Request 가짜 서버가 수신한 요청
type Request struct {
	Route  Route
	Header http.Header
	Body   []byte
}

// Server 가짜 API 서버
type Server struct {
	srv *httptest.Server

	mu        sync.Mutex
	responses map[Route]Response
	requests  []Request
}

// New 가짜 서버를 시작합니다. 서버는 테스트 종료 시 자동으로 닫힙니다.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		responses: map[Route]Response{
			RouteLogin:         {Status: http.StatusOK, Body: DefaultLoginBody},
			RouteLogout:        {Status: http.StatusOK, Body: `{}`},
			RouteApplications:  {Status: http.StatusOK, Body: DefaultApplicationsBody},
			RouteMarkAllotment: {Status: http.StatusOK, Body: DefaultMarkBody},
		},
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetOutput(io.Discard)

	api := e.Group("/api")
	api.POST("/auth/login", s.handle(RouteLogin))
	api.POST("/auth/logout", s.handle(RouteLogout))
	api.GET("/ipo-applications", s.handle(RouteApplications))
	api.PUT("/ipo-applications/mark-allotment", s.handle(RouteMarkAllotment))

	s.srv = httptest.NewServer(e)
	t.Cleanup(s.srv.Close)

	return s
}

// BaseURL 클라이언트가 사용할 API 기준 주소 (".../api")
func (s *Server) BaseURL() string {
	return s.srv.URL + "/api"
}

// Close 서버를 즉시 닫습니다. 연결 실패 시나리오를 만들 때 사용합니다.
func (s *Server) Close() {
	s.srv.Close()
}

// Respond route의 응답을 지정합니다.
func (s *Server) Respond(route Route, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[route] = Response{Status: status, Body: body}
}

// Requests 수신한 모든 요청을 순서대로 반환합니다.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// RequestsTo route로 수신한 요청만 반환합니다.
func (s *Server) RequestsTo(route Route) []Request {
	var matched []Request
	for _, r := range s.Requests() {
		if r.Route == route {
			matched = append(matched, r)
		}
	}
	return matched
}

func (s *Server) handle(route Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return err
		}

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:  route,
			Header: c.Request().Header.Clone(),
			Body:   body,
		})
		resp := s.responses[route]
		s.mu.Unlock()

		return c.Blob(resp.Status, echo.MIMEApplicationJSON, []byte(resp.Body))
	}
}
