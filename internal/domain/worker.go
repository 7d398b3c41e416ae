package domain

type Rank string

const (
	RankStandard Rank = "Standard"
	RankSpecial  Rank = "Special"
)

type Worker struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Rank        Rank    `json:"rank"`
	SpecialRate float64 `json:"special_rate"`
}

// SalaryData 是某个员工在一段时间内（某个月或全部时间）的工时与工资汇总
type SalaryData struct {
	StandardHours  float64 `json:"standard_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	WorkDays       int     `json:"work_days"`
	SalaryStandard float64 `json:"salary_standard"`
	SalaryOvertime float64 `json:"salary_overtime"`
	SalaryTotal    float64 `json:"salary_total"`
}

type WorkerPayroll struct {
	Worker
	SalaryData SalaryData `json:"salary_data"`
}
