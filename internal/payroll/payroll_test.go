package payroll

import (
	"math"
	"testing"
	"time"

	"github.com/shiftpay/backend/internal/domain"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// ── ComputeHours 测试 ──

func TestComputeHours_Standard(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		wantStandard float64
		wantOvertime float64
	}{
		{"不足6小时无休息", "09:00", "13:00", 4.0, 0.0},
		{"恰好6小时扣1小时休息", "08:00", "14:00", 5.0, 0.0},
		{"9小时扣休息后恰好满标准工时", "08:00", "17:00", 8.0, 0.0},
		{"12小时扣休息后产生3小时加班", "08:00", "20:00", 8.0, 3.0},
		{"跨午夜班次", "22:00", "06:00", 7.0, 0.0},
		{"开始等于结束视为完整24小时", "08:00", "08:00", 8.0, 15.0},
		{"半小时粒度", "09:00", "12:30", 3.5, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standard, overtime, err := ComputeHours(tt.start, tt.end, domain.RankStandard)
			if err != nil {
				t.Fatalf("ComputeHours 应成功: %v", err)
			}
			if !almostEqual(standard, tt.wantStandard) {
				t.Errorf("期望标准工时=%v，实际=%v", tt.wantStandard, standard)
			}
			if !almostEqual(overtime, tt.wantOvertime) {
				t.Errorf("期望加班工时=%v，实际=%v", tt.wantOvertime, overtime)
			}
		})
	}
}

func TestComputeHours_Special(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		wantStandard float64
	}{
		{"半天班", "09:00", "13:00", 4.0},
		{"长班同样扣休息", "08:00", "20:00", 11.0},
		{"跨午夜班次", "22:00", "06:00", 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			standard, overtime, err := ComputeHours(tt.start, tt.end, domain.RankSpecial)
			if err != nil {
				t.Fatalf("ComputeHours 应成功: %v", err)
			}
			if !almostEqual(standard, tt.wantStandard) {
				t.Errorf("期望标准工时=%v，实际=%v", tt.wantStandard, standard)
			}
			if overtime != 0 {
				t.Errorf("特殊级别不应产生加班工时，实际=%v", overtime)
			}
		})
	}
}

// 时长不足 6 小时时不扣休息也不产生加班，标准工时等于实际时长
func TestComputeHours_ShortShiftsNoBreakNoOvertime(t *testing.T) {
	for minutes := 15; minutes < 360; minutes += 15 {
		start := "06:00"
		end := addMinutes(t, start, minutes)
		standard, overtime, err := ComputeHours(start, end, domain.RankStandard)
		if err != nil {
			t.Fatalf("ComputeHours(%s, %s) 应成功: %v", start, end, err)
		}
		want := math.Round(float64(minutes) / 60 * 100) / 100
		if !almostEqual(standard, want) {
			t.Errorf("时长 %d 分钟: 期望标准工时=%v，实际=%v", minutes, want, standard)
		}
		if overtime != 0 {
			t.Errorf("时长 %d 分钟: 不应产生加班工时，实际=%v", minutes, overtime)
		}
	}
}

// 时长大于等于 6 小时时，标准工时 + 加班工时 == min(时长-1, 8) + max(时长-1-8, 0)
func TestComputeHours_LongShiftsSplitInvariant(t *testing.T) {
	for minutes := 360; minutes <= 24*60; minutes += 30 {
		start := "00:00"
		end := addMinutes(t, start, minutes)
		standard, overtime, err := ComputeHours(start, end, domain.RankStandard)
		if err != nil {
			t.Fatalf("ComputeHours(%s, %s) 应成功: %v", start, end, err)
		}
		paid := float64(minutes)/60 - 1
		want := math.Min(paid, 8) + math.Max(paid-8, 0)
		want = math.Round(want*60) / 60
		if !almostEqual(standard+overtime, math.Round(want*100)/100) {
			t.Errorf("时长 %d 分钟: 期望总工时=%v，实际=%v", minutes, want, standard+overtime)
		}
	}
}

func TestComputeHours_BadInput(t *testing.T) {
	if _, _, err := ComputeHours("8点", "17:00", domain.RankStandard); err == nil {
		t.Error("非法开始时间应返回错误")
	}
	if _, _, err := ComputeHours("08:00", "下午五点", domain.RankStandard); err == nil {
		t.Error("非法结束时间应返回错误")
	}
}

// ── ComputeSalary 测试 ──

func TestComputeSalary_Standard(t *testing.T) {
	salaryStandard, salaryOvertime := ComputeSalary(domain.RankStandard, 50, 8.0, 3.0)
	if !almostEqual(salaryStandard, 80.0) {
		t.Errorf("期望标准工资=80.0，实际=%v", salaryStandard)
	}
	if !almostEqual(salaryOvertime, 31.5) {
		t.Errorf("期望加班工资=31.5，实际=%v", salaryOvertime)
	}
}

func TestComputeSalary_Special(t *testing.T) {
	salaryStandard, salaryOvertime := ComputeSalary(domain.RankSpecial, 50, 4.0, 0)
	if !almostEqual(salaryStandard, 25.0) {
		t.Errorf("期望标准工资=25.0，实际=%v", salaryStandard)
	}
	if salaryOvertime != 0 {
		t.Errorf("特殊级别不应有加班工资，实际=%v", salaryOvertime)
	}
}

// ── Summarize 测试 ──

func TestSummarize_ZeroShifts(t *testing.T) {
	w := &domain.Worker{ID: 1, Name: "张伟", Rank: domain.RankStandard, SpecialRate: 50}
	data := Summarize(w, 0, 0, 0)
	if data.StandardHours != 0 || data.OvertimeHours != 0 || data.WorkDays != 0 || data.SalaryTotal != 0 {
		t.Errorf("没有班次时所有汇总值都应为 0，实际=%+v", data)
	}
}

func TestSummarize_Standard(t *testing.T) {
	w := &domain.Worker{ID: 1, Name: "张伟", Rank: domain.RankStandard, SpecialRate: 50}
	data := Summarize(w, 16.0, 3.0, 2)
	if !almostEqual(data.SalaryStandard, 160.0) {
		t.Errorf("期望标准工资=160.0，实际=%v", data.SalaryStandard)
	}
	if !almostEqual(data.SalaryOvertime, 31.5) {
		t.Errorf("期望加班工资=31.5，实际=%v", data.SalaryOvertime)
	}
	if !almostEqual(data.SalaryTotal, 191.5) {
		t.Errorf("期望工资合计=191.5，实际=%v", data.SalaryTotal)
	}
	if data.WorkDays != 2 {
		t.Errorf("期望出勤天数=2，实际=%d", data.WorkDays)
	}
}

// 标准级别工资是线性的，对汇总工时计价与逐班次计价后求和应一致
func TestSummarize_AggregateThenPriceEqualsPriceThenAggregate(t *testing.T) {
	w := &domain.Worker{ID: 1, Name: "李强", Rank: domain.RankStandard, SpecialRate: 50}
	shifts := [][2]float64{{8.0, 3.0}, {4.5, 0}, {8.0, 1.25}}

	var sumStandard, sumOvertime float64
	var priced float64
	for _, s := range shifts {
		sumStandard += s[0]
		sumOvertime += s[1]
		ps, po := ComputeSalary(w.Rank, w.SpecialRate, s[0], s[1])
		priced += ps + po
	}

	data := Summarize(w, sumStandard, sumOvertime, len(shifts))
	if !almostEqual(data.SalaryTotal, math.Round(priced*100)/100) {
		t.Errorf("汇总后计价=%v，逐班次计价求和=%v，两者应一致", data.SalaryTotal, priced)
	}
}

func addMinutes(t *testing.T, start string, minutes int) string {
	t.Helper()
	parsed, err := time.Parse("15:04", start)
	if err != nil {
		t.Fatalf("非法的测试起始时间 %q: %v", start, err)
	}
	return parsed.Add(time.Duration(minutes) * time.Minute).Format("15:04")
}
