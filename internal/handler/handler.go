package handler

import (
	"embed"
	"html/template"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftpay/backend/internal/config"
	"github.com/shiftpay/backend/internal/domain"
	"github.com/shiftpay/backend/internal/repository"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Handler struct {
	validate          *validator.Validate
	config            *config.Config
	repository        *repository.Repository
	translator        ut.Translator
	mailChannel       *amqp.Channel
	templates         *template.Template
	adminPasswordHash []byte

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailCh *amqp.Channel, adminPasswordHash []byte) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zhLocale := zh.New()
	uni := ut.New(zhLocale, zhLocale)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:          validate,
		config:            cfg,
		repository:        repo,
		translator:        trans,
		mailChannel:       mailCh,
		templates:         templates,
		adminPasswordHash: adminPasswordHash,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.metrics)

	h.Mux.Handle("/metrics", promhttp.Handler())

	// 认证相关
	h.Mux.Get("/login", h.LoginPage)
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 页面路由，未登录时重定向到登录页
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.authPage)

		r.Get("/", h.Index)
		r.Get("/add_worker", h.AddWorkerPage)
		r.Post("/add_worker", h.AddWorker)
		r.Route("/edit_worker/{id}", func(r chi.Router) {
			r.Use(h.workerInfo("id"))
			r.Get("/", h.EditWorkerPage)
			r.Post("/", h.EditWorker)
		})
		r.With(h.workerInfo("worker_id")).Get("/calendar/{worker_id}", h.CalendarPage)
		r.Get("/export", h.ExportMonthlyPayroll)
	})

	// JSON 接口，未登录时返回错误响应
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/delete_worker", h.DeleteWorker)
		r.Get("/get_shifts/{worker_id}", h.GetShifts)
		r.Post("/add_shift", h.AddShift)
		r.Post("/edit_shift", h.EditShift)
		r.Post("/delete_shift", h.DeleteShift)
		r.Post("/reports/monthly", h.PublishMonthlyReport)
	})
}

// defaultRank 是找不到员工或者班次时采用的兜底级别
func (h *Handler) defaultRank() domain.Rank {
	return domain.Rank(h.config.Payroll.DefaultRank)
}
