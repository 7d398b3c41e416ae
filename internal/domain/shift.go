package domain

// Shift 的 standard_hours 和 overtime 在添加或者编辑班次时按员工当时的级别计算并落库，
// 后续修改员工级别不会重算历史班次
type Shift struct {
	ID            int64   `json:"id"`
	WorkerID      int64   `json:"worker_id"`
	Date          string  `json:"date"`       // YYYY-MM-DD
	StartTime     string  `json:"start_time"` // HH:MM
	EndTime       string  `json:"end_time"`   // HH:MM
	StandardHours float64 `json:"standard_hours"`
	Overtime      float64 `json:"overtime"`
}
