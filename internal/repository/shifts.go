package repository

import (
	"context"
	"time"

	"github.com/shiftpay/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (worker_id, date, start_time, end_time, standard_hours, overtime)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.WorkerID, shift.Date, shift.StartTime, shift.EndTime, shift.StandardHours, shift.Overtime}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftsByWorker(workerID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, to_char(date, 'YYYY-MM-DD'), start_time, end_time, standard_hours, overtime
		FROM shifts
		WHERE worker_id = $1
		ORDER BY date, start_time
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, workerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{
			WorkerID: workerID,
		}
		dst := []any{&shift.ID, &shift.Date, &shift.StartTime, &shift.EndTime, &shift.StandardHours, &shift.Overtime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// GetWorkerRankForShift 返回某个班次所属员工当前的级别，
// 班次不存在时返回 sql.ErrNoRows，由调用方决定兜底行为
func (r *Repository) GetWorkerRankForShift(shiftID int64) (domain.Rank, error) {
	query := `
		SELECT w.rank
		FROM workers w
		JOIN shifts s ON w.id = s.worker_id
		WHERE s.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var rank domain.Rank
	if err := r.dbpool.QueryRowContext(ctx, query, shiftID).Scan(&rank); err != nil {
		return "", err
	}

	return rank, nil
}

// UpdateShift 采用 last-write-wins 语义，两个并发编辑之间没有冲突检测
func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			date = $1,
			start_time = $2,
			end_time = $3,
			standard_hours = $4,
			overtime = $5
		WHERE id = $6
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.Date, shift.StartTime, shift.EndTime, shift.StandardHours, shift.Overtime, shift.ID}
	if _, err := r.dbpool.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
