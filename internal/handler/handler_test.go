package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shiftpay/backend/internal/config"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.InitialAdmin.Username = "admin"
	cfg.InitialAdmin.Password = "test-password"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600
	cfg.Payroll.DefaultRank = "Standard"

	adminPasswordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.InitialAdmin.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("无法生成测试密码哈希: %v", err)
	}

	h, err := NewHandler(cfg, nil, nil, adminPasswordHash)
	if err != nil {
		t.Fatalf("NewHandler 应成功: %v", err)
	}
	h.RegisterRoutes()

	return h
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("响应应是合法的 JSON: %v", err)
	}
	return resp
}

func loginCookie(t *testing.T, h *Handler) *http.Cookie {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"test-password"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName {
			return cookie
		}
	}
	t.Fatal("登录成功后应设置认证 cookie")
	return nil
}

// ── 认证测试 ──

func TestLogin_Success(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"test-password"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Errorf("正确的用户名密码应登录成功，实际 message=%s", resp.Message)
	}

	found := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" && cookie.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Error("登录成功后应设置 http-only 的认证 cookie")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("错误的密码不应登录成功")
	}
	if resp.Message != "用户名不存在或密码错误" {
		t.Errorf("期望统一的登录失败消息，实际=%s", resp.Message)
	}
}

func TestLogin_UnknownUsername(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"nobody","password":"test-password"}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("未知用户不应登录成功")
	}
}

func TestAuth_JSONRouteRequiresLogin(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/delete_shift", strings.NewReader(`{"shift_id":1}`))
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("未登录时不应允许调用 JSON 接口")
	}
	if resp.Message != "用户未登录" {
		t.Errorf("期望提示用户未登录，实际=%s", resp.Message)
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/delete_shift", strings.NewReader(`{"shift_id":1}`))
	req.AddCookie(&http.Cookie{Name: authCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("非法令牌不应通过认证")
	}
	if resp.Message != "无效的令牌" {
		t.Errorf("期望提示无效的令牌，实际=%s", resp.Message)
	}
}

func TestAuthPage_RedirectsToLogin(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("未登录访问页面应重定向，实际状态码=%d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("应重定向到登录页，实际=%s", loc)
	}
}

func TestLogout_ClearsCookie(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("登出应成功")
	}

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == authCookieName && cookie.Value == "" {
			cleared = true
		}
	}
	if !cleared {
		t.Error("登出后应清空认证 cookie")
	}
}

func TestLoginPage_Renders(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("登录页应返回 200，实际=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "登录") {
		t.Error("登录页应包含登录表单")
	}
}

// ── 请求校验测试（在进入仓库层之前就应被拦下） ──

func TestAddShift_MalformedJSON(t *testing.T) {
	h := newTestHandler(t)
	cookie := loginCookie(t, h)

	req := httptest.NewRequest(http.MethodPost, "/add_shift", strings.NewReader(`{`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("残缺的 JSON 不应成功")
	}
}

func TestAddShift_BadTimeFormat(t *testing.T) {
	h := newTestHandler(t)
	cookie := loginCookie(t, h)

	body := `{"worker_id":1,"date":"2026-08-01","start_time":"八点","end_time":"17:00"}`
	req := httptest.NewRequest(http.MethodPost, "/add_shift", strings.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("非法的时间格式不应通过校验")
	}
}

func TestEditShift_MissingShiftID(t *testing.T) {
	h := newTestHandler(t)
	cookie := loginCookie(t, h)

	body := `{"date":"2026-08-01","start_time":"09:00","end_time":"17:00"}`
	req := httptest.NewRequest(http.MethodPost, "/edit_shift", strings.NewReader(body))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("缺少 shift_id 不应通过校验")
	}
}

func TestDeleteWorker_MissingWorkerID(t *testing.T) {
	h := newTestHandler(t)
	cookie := loginCookie(t, h)

	req := httptest.NewRequest(http.MethodPost, "/delete_worker", strings.NewReader(`{}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("缺少 worker_id 不应通过校验")
	}
}

func TestPublishMonthlyReport_BadMonth(t *testing.T) {
	h := newTestHandler(t)
	cookie := loginCookie(t, h)

	req := httptest.NewRequest(http.MethodPost, "/reports/monthly", strings.NewReader(`{"month":"2026/08"}`))
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.Mux.ServeHTTP(rec, req)

	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("非法的月份格式不应通过校验")
	}
}
