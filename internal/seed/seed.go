package seed

import (
	"log/slog"
	"math/rand"

	"github.com/shiftpay/backend/internal/domain"
	"github.com/shiftpay/backend/internal/payroll"
	"github.com/shiftpay/backend/internal/repository"
	"github.com/shiftpay/backend/internal/utils"
)

// SeedRandomWorkers 插入 n 个随机员工，其中随机一部分是特殊级别
func SeedRandomWorkers(r *repository.Repository, n int) []*domain.Worker {
	workers := make([]*domain.Worker, 0, n)

	for i := 0; i < n; i++ {
		worker := &domain.Worker{
			Name: utils.GenerateRandomChineseName(),
		}
		if err := r.CreateWorker(worker); err != nil {
			slog.Error("无法插入随机员工", "error", err)
			continue
		}

		// 建库时默认级别是 Standard，这里再随机改一部分员工的级别
		rank := utils.GenerateRandomRank()
		if rank != worker.Rank {
			worker.Rank = rank
			worker.SpecialRate = float64(rand.Intn(10)+5) * 10
			if err := r.UpdateWorker(worker); err != nil {
				slog.Error("无法更新随机员工级别", "error", err)
				continue
			}
		}

		workers = append(workers, worker)
		slog.Info("已插入随机员工", "id", worker.ID, "name", worker.Name, "rank", worker.Rank)
	}

	return workers
}

// SeedRandomShifts 为每个员工在指定月份插入 n 个随机班次，
// 工时和正式接口一样按员工当前级别计算后落库
func SeedRandomShifts(r *repository.Repository, month string, n int) {
	workers, err := r.GetAllWorkers()
	if err != nil {
		slog.Error("无法获取员工列表", "error", err)
		return
	}

	for _, worker := range workers {
		for i := 0; i < n; i++ {
			date, err := utils.GenerateRandomDateInMonth(month)
			if err != nil {
				slog.Error("无法生成随机日期", "error", err)
				return
			}
			startTime, endTime := utils.GenerateRandomShiftTimes()

			standardHours, overtime, err := payroll.ComputeHours(startTime, endTime, worker.Rank)
			if err != nil {
				slog.Error("无法计算随机班次工时", "error", err)
				continue
			}

			shift := &domain.Shift{
				WorkerID:      worker.ID,
				Date:          date,
				StartTime:     startTime,
				EndTime:       endTime,
				StandardHours: standardHours,
				Overtime:      overtime,
			}
			if err := r.CreateShift(shift); err != nil {
				slog.Error("无法插入随机班次", "error", err)
				continue
			}
		}
		slog.Info("已为员工插入随机班次", "workerID", worker.ID, "name", worker.Name, "count", n)
	}
}
