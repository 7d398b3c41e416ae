package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shiftpay/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// ExportMonthlyPayroll 把工资汇总导出为 xlsx 文件，month 为空时导出全部时间
func (h *Handler) ExportMonthlyPayroll(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	payrolls, err := h.collectPayrolls(month)
	if err != nil {
		h.pageError(w, r, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	headers := []string{"ID", "姓名", "级别", "标准工时", "加班工时", "出勤天数", "标准工资", "加班工资", "工资合计"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			h.pageError(w, r, err)
			return
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			h.pageError(w, r, err)
			return
		}
	}

	for row, wp := range payrolls {
		values := []any{
			wp.ID,
			wp.Name,
			string(wp.Rank),
			wp.SalaryData.StandardHours,
			wp.SalaryData.OvertimeHours,
			wp.SalaryData.WorkDays,
			wp.SalaryData.SalaryStandard,
			wp.SalaryData.SalaryOvertime,
			wp.SalaryData.SalaryTotal,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				h.pageError(w, r, err)
				return
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				h.pageError(w, r, err)
				return
			}
		}
	}

	filename := "payroll.xlsx"
	if month != "" {
		filename = fmt.Sprintf("payroll_%s.xlsx", month)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	if err := f.Write(w); err != nil {
		h.logInternalServerError(r, err)
	}
}

// PublishMonthlyReport 把某个月的工资报表投递到邮件队列，由 mail worker 渲染并发送
func (h *Handler) PublishMonthlyReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string `json:"month" validate:"required,datetime=2006-01"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	payrolls, err := h.collectPayrolls(req.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 准备邮件
	mailMessage := domain.MailMessage{
		Type: "monthly_report",
		To:   h.config.Payroll.ReportRecipient,
		Data: domain.MonthlyReportMailData{
			Month:   req.Month,
			Workers: payrolls,
		},
	}

	// 对邮件进行序列化
	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// 将邮件发送到消息队列
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"report_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "报表已进入发送队列", nil)
}
