package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shiftpay/backend/internal/domain"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var ranks = []domain.Rank{
	domain.RankStandard,
	domain.RankSpecial,
}

func GenerateRandomRank() domain.Rank {
	return ranks[rand.Intn(len(ranks))]
}

// GenerateRandomShiftTimes 生成一段 4 到 12 小时的班次，结束时间可能跨午夜
func GenerateRandomShiftTimes() (string, string) {
	startHour := rand.Intn(18)
	startMinute := rand.Intn(4) * 15
	durationMinutes := (rand.Intn(17) + 8) * 30 // 4 到 12 小时

	totalStart := startHour*60 + startMinute
	totalEnd := (totalStart + durationMinutes) % (24 * 60)

	start := fmt.Sprintf("%02d:%02d", totalStart/60, totalStart%60)
	end := fmt.Sprintf("%02d:%02d", totalEnd/60, totalEnd%60)
	return start, end
}

// GenerateRandomDateInMonth 在指定月份中随机取一天，month 格式为 YYYY-MM
func GenerateRandomDateInMonth(month string) (string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", fmt.Errorf("月份格式错误: %w", err)
	}

	daysInMonth := first.AddDate(0, 1, -1).Day()
	day := rand.Intn(daysInMonth) + 1
	return fmt.Sprintf("%s-%02d", month, day), nil
}
