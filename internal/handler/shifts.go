package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shiftpay/backend/internal/domain"
	"github.com/shiftpay/backend/internal/payroll"
)

// shiftEvent 是日历前端使用的事件格式，title 为标准工时
type shiftEvent struct {
	ID            int64   `json:"id"`
	Title         float64 `json:"title"`
	Start         string  `json:"start"`
	End           string  `json:"end"`
	AllDay        bool    `json:"allDay"`
	ExtendedProps struct {
		Overtime  float64 `json:"overtime"`
		StartTime string  `json:"start_time"`
		EndTime   string  `json:"end_time"`
	} `json:"extendedProps"`
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	workerIDParam := chi.URLParam(r, "worker_id")
	workerID, err := strconv.ParseInt(workerIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "员工ID无效")
		return
	}

	shifts, err := h.repository.GetShiftsByWorker(workerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	events := make([]shiftEvent, 0, len(shifts))
	for _, shift := range shifts {
		event := shiftEvent{
			ID:     shift.ID,
			Title:  shift.StandardHours,
			Start:  fmt.Sprintf("%sT%s", shift.Date, shift.StartTime),
			End:    fmt.Sprintf("%sT%s", shift.Date, shift.EndTime),
			AllDay: false,
		}
		event.ExtendedProps.Overtime = shift.Overtime
		event.ExtendedProps.StartTime = shift.StartTime
		event.ExtendedProps.EndTime = shift.EndTime
		events = append(events, event)
	}

	// 日历前端要求裸数组而不是统一响应格式
	h.writeJSON(w, r, http.StatusOK, events)
}

func (h *Handler) AddShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkerID  int64  `json:"worker_id" validate:"required"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"start_time" validate:"required,datetime=15:04"`
		EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 用员工当前的级别计算工时，员工不存在时采用配置的兜底级别
	rank, err := h.repository.GetWorkerRank(req.WorkerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rank = h.defaultRank()
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	standardHours, overtime, err := payroll.ComputeHours(req.StartTime, req.EndTime, rank)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		WorkerID:      req.WorkerID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StandardHours: standardHours,
		Overtime:      overtime,
	}

	if err := h.repository.CreateShift(shift); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "shifts_worker_id_fkey":
			h.errorResponse(w, r, "员工不存在")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "添加班次成功", shift)
}

func (h *Handler) EditShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftID   int64  `json:"shift_id" validate:"required"`
		Date      string `json:"date" validate:"required,datetime=2006-01-02"`
		StartTime string `json:"start_time" validate:"required,datetime=15:04"`
		EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 用班次当前所属员工的级别重新计算工时，班次不存在时采用配置的兜底级别
	rank, err := h.repository.GetWorkerRankForShift(req.ShiftID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rank = h.defaultRank()
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	standardHours, overtime, err := payroll.ComputeHours(req.StartTime, req.EndTime, rank)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift := &domain.Shift{
		ID:            req.ShiftID,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		StandardHours: standardHours,
		Overtime:      overtime,
	}

	if err := h.repository.UpdateShift(shift); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "更新班次成功", shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShiftID int64 `json:"shift_id" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.DeleteShift(req.ShiftID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "删除班次成功", nil)
}
