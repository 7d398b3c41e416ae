package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("已处理请求", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // 这里如果用 slog 的话会很乱
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w, StatusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		// 用路由模式而不是原始路径作为标签，避免指标基数爆炸
		path := chi.RouteContext(r.Context()).RoutePattern()
		requestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rw.StatusCode)).Inc()
		requestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// verifyToken 校验请求中的登录 cookie
func (h *Handler) verifyToken(r *http.Request) error {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		return err
	}

	claims := &AuthClaims{}
	if _, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	}); err != nil {
		return err
	}

	return nil
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.verifyToken(r); err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "用户未登录")
			default:
				h.errorResponse(w, r, "无效的令牌")
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// authPage 与 auth 的区别在于页面路由未登录时重定向到登录页而不是返回 JSON
func (h *Handler) authPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h.verifyToken(r); err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// workerInfo 在进入页面 handler 之前加载路径参数指向的员工，
// 员工不存在时重定向回列表页
func (h *Handler) workerInfo(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			workerIDParam := chi.URLParam(r, param)
			workerID, err := strconv.ParseInt(workerIDParam, 10, 64)
			if err != nil {
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}

			worker, err := h.repository.GetWorkerByID(workerID)
			if err != nil {
				switch {
				case errors.Is(err, sql.ErrNoRows):
					http.Redirect(w, r, "/", http.StatusSeeOther)
				default:
					h.pageError(w, r, err)
				}
				return
			}

			ctx := context.WithValue(r.Context(), WorkerInfoCtx, worker)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
