package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type MonthlyReportMailData struct {
	Month   string          `json:"month"`
	Workers []WorkerPayroll `json:"workers"`
}
