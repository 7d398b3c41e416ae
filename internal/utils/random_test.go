package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateRandomShiftTimes(t *testing.T) {
	for i := 0; i < 100; i++ {
		start, end := GenerateRandomShiftTimes()
		if _, err := time.Parse("15:04", start); err != nil {
			t.Fatalf("开始时间 %q 应是合法的 HH:MM: %v", start, err)
		}
		if _, err := time.Parse("15:04", end); err != nil {
			t.Fatalf("结束时间 %q 应是合法的 HH:MM: %v", end, err)
		}
	}
}

func TestGenerateRandomDateInMonth(t *testing.T) {
	for i := 0; i < 100; i++ {
		date, err := GenerateRandomDateInMonth("2026-02")
		if err != nil {
			t.Fatalf("生成随机日期应成功: %v", err)
		}
		if !strings.HasPrefix(date, "2026-02-") {
			t.Fatalf("随机日期 %q 应落在指定月份内", date)
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			t.Fatalf("随机日期 %q 应是合法日期: %v", date, err)
		}
	}
}

func TestGenerateRandomDateInMonth_BadMonth(t *testing.T) {
	if _, err := GenerateRandomDateInMonth("2026年2月"); err == nil {
		t.Error("非法的月份格式应返回错误")
	}
}

func TestGenerateRandomChineseName(t *testing.T) {
	for i := 0; i < 20; i++ {
		name := []rune(GenerateRandomChineseName())
		if len(name) < 2 || len(name) > 3 {
			t.Fatalf("随机姓名 %q 应是 2 到 3 个字", string(name))
		}
	}
}
