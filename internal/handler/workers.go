package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shiftpay/backend/internal/domain"
	"github.com/shiftpay/backend/internal/payroll"
)

// collectPayrolls 汇总所有员工在指定月份（空串表示全部时间）的工时和工资
func (h *Handler) collectPayrolls(month string) ([]domain.WorkerPayroll, error) {
	workers, err := h.repository.GetAllWorkers()
	if err != nil {
		return nil, err
	}

	payrolls := make([]domain.WorkerPayroll, 0, len(workers))
	for _, worker := range workers {
		standardHours, overtimeHours, workDays, err := h.repository.SummarizeWorkerHours(worker.ID, month)
		if err != nil {
			return nil, err
		}

		payrolls = append(payrolls, domain.WorkerPayroll{
			Worker:     *worker,
			SalaryData: payroll.Summarize(worker, standardHours, overtimeHours, workDays),
		})
	}

	return payrolls, nil
}

func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	payrolls, err := h.collectPayrolls(month)
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	currentMonth := month
	if currentMonth == "" {
		currentMonth = time.Now().Format("2006-01")
	}

	h.renderPage(w, r, "index.html", struct {
		Workers      []domain.WorkerPayroll
		CurrentMonth string
	}{
		Workers:      payrolls,
		CurrentMonth: currentMonth,
	})
}

func (h *Handler) AddWorkerPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "add_worker.html", nil)
}

func (h *Handler) AddWorker(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	worker := &domain.Worker{
		Name: name,
	}
	if err := h.repository.CreateWorker(worker); err != nil {
		h.pageError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) EditWorkerPage(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.renderPage(w, r, "edit_worker.html", worker)
}

func (h *Handler) EditWorker(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)

	name := strings.TrimSpace(r.FormValue("name"))
	if name != "" {
		worker.Name = name
	}

	rank := domain.Rank(r.FormValue("rank"))
	if rank != domain.RankStandard && rank != domain.RankSpecial {
		rank = h.defaultRank()
	}
	worker.Rank = rank

	worker.SpecialRate = 50
	if rate, err := strconv.ParseFloat(r.FormValue("special_rate"), 64); err == nil && rate >= 0 {
		worker.SpecialRate = rate
	}

	// 级别变更不会重算已落库的历史班次
	if err := h.repository.UpdateWorker(worker); err != nil {
		h.pageError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID int64 `json:"worker_id" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 外键级联会把该员工的班次一并删除
	if err := h.repository.DeleteWorker(req.WorkerID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除员工成功", nil)
}

func (h *Handler) CalendarPage(w http.ResponseWriter, r *http.Request) {
	worker := r.Context().Value(WorkerInfoCtx).(*domain.Worker)
	h.renderPage(w, r, "calendar.html", worker)
}
