package repository

import (
	"context"
	"time"

	"github.com/shiftpay/backend/internal/domain"
)

func (r *Repository) CreateWorker(worker *domain.Worker) error {
	query := `
		INSERT INTO workers (name)
		VALUES ($1)
		RETURNING id, rank, special_rate
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, worker.Name).Scan(&worker.ID, &worker.Rank, &worker.SpecialRate); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetWorkerByID(id int64) (*domain.Worker, error) {
	query := `
		SELECT name, rank, special_rate
		FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	worker := &domain.Worker{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&worker.Name, &worker.Rank, &worker.SpecialRate); err != nil {
		return nil, err
	}

	return worker, nil
}

func (r *Repository) GetAllWorkers() ([]*domain.Worker, error) {
	query := `
		SELECT id, name, rank, special_rate FROM workers ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker := &domain.Worker{}
		if err := rows.Scan(&worker.ID, &worker.Name, &worker.Rank, &worker.SpecialRate); err != nil {
			return nil, err
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return workers, nil
}

// UpdateWorker 采用 last-write-wins 语义，两个并发编辑之间没有冲突检测
func (r *Repository) UpdateWorker(worker *domain.Worker) error {
	query := `
		UPDATE workers
		SET
			name = $1,
			rank = $2,
			special_rate = $3
		WHERE id = $4
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{worker.Name, worker.Rank, worker.SpecialRate, worker.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&worker.ID); err != nil {
		return err
	}

	return nil
}

// DeleteWorker 通过外键级联把该员工的所有班次一并删除
func (r *Repository) DeleteWorker(id int64) error {
	query := `
		DELETE FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

// GetWorkerRank 返回员工当前的级别，员工不存在时返回 sql.ErrNoRows，由调用方决定兜底行为
func (r *Repository) GetWorkerRank(id int64) (domain.Rank, error) {
	query := `
		SELECT rank FROM workers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var rank domain.Rank
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&rank); err != nil {
		return "", err
	}

	return rank, nil
}

// SummarizeWorkerHours 汇总某个员工的已落库工时。
// month 为 YYYY-MM 格式时只统计当月，为空串时统计全部时间。
// 出勤天数按至少有一个班次的日历日去重统计。没有任何班次时返回全 0 而不是错误。
func (r *Repository) SummarizeWorkerHours(workerID int64, month string) (float64, float64, int, error) {
	query := `
		SELECT COALESCE(SUM(standard_hours), 0), COALESCE(SUM(overtime), 0), COUNT(DISTINCT date)
		FROM shifts
		WHERE worker_id = $1
	`
	args := []any{workerID}

	if month != "" {
		query += ` AND to_char(date, 'YYYY-MM') = $2`
		args = append(args, month)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var standardHours, overtimeHours float64
	var workDays int
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&standardHours, &overtimeHours, &workDays); err != nil {
		return 0, 0, 0, err
	}

	return standardHours, overtimeHours, workDays, nil
}
