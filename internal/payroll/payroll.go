package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/shiftpay/backend/internal/domain"
)

const (
	timeLayout = "15:04"

	// 工作满 6 小时扣除 1 小时无薪休息
	breakThresholdHours = 6.0
	breakHours          = 1.0

	// 标准级别每天的标准工时上限，超出部分计为加班
	standardDailyCap = 8.0

	standardHourlyRate = 10.0
	overtimeHourlyRate = 10.5
)

// ComputeHours 根据上下班时间和员工级别计算 (标准工时, 加班工时)。
// 下班时间小于等于上班时间视为跨午夜，往后顺延一天。
// 结果先舍入到最近的分钟（1/60 小时），再保留两位小数。
func ComputeHours(startTime, endTime string, rank domain.Rank) (float64, float64, error) {
	start, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return 0, 0, fmt.Errorf("开始时间格式错误: %w", err)
	}
	end, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return 0, 0, fmt.Errorf("结束时间格式错误: %w", err)
	}

	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	worked := end.Sub(start).Hours()

	deducted := 0.0
	if worked >= breakThresholdHours {
		deducted = breakHours
	}
	paid := math.Max(worked-deducted, 0)

	var standard, overtime float64
	switch rank {
	case domain.RankSpecial:
		// 特殊级别按日薪折算，没有加班的概念
		standard = paid
		overtime = 0
	default:
		standard = math.Min(paid, standardDailyCap)
		overtime = math.Max(paid-standardDailyCap, 0)
	}

	return roundToMinute(standard), roundToMinute(overtime), nil
}

// ComputeSalary 根据级别和工时计算 (标准工资, 加班工资)，均保留两位小数。
// 标准级别按小时计费，特殊级别按 8 小时一天的日薪比例折算。
func ComputeSalary(rank domain.Rank, specialRate, standardHours, overtimeHours float64) (float64, float64) {
	if rank == domain.RankSpecial {
		return round2(standardHours / standardDailyCap * specialRate), 0
	}
	return round2(standardHours * standardHourlyRate), round2(overtimeHours * overtimeHourlyRate)
}

// Summarize 将仓库层汇总出来的工时套用工资政策，得到完整的汇总数据。
// 注意这里是对「汇总后的工时」计价，而不是逐班次计价后再求和，
// 两种算法在费率为员工级属性时结果一致
func Summarize(w *domain.Worker, standardHours, overtimeHours float64, workDays int) domain.SalaryData {
	salaryStandard, salaryOvertime := ComputeSalary(w.Rank, w.SpecialRate, standardHours, overtimeHours)
	return domain.SalaryData{
		StandardHours:  round2(standardHours),
		OvertimeHours:  round2(overtimeHours),
		WorkDays:       workDays,
		SalaryStandard: salaryStandard,
		SalaryOvertime: salaryOvertime,
		SalaryTotal:    round2(salaryStandard + salaryOvertime),
	}
}

func roundToMinute(hours float64) float64 {
	return round2(math.Round(hours*60) / 60)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
