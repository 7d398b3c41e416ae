package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/shiftpay/backend/internal/config"
	"github.com/shiftpay/backend/internal/repository"
	"github.com/shiftpay/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var month string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机员工, 2: 插入随机班次)")
	flag.IntVar(&n, "n", 0, "要插入的记录数量（缺省时取配置中的默认值）")
	flag.StringVar(&month, "month", time.Now().Format("2006-01"), "随机班次所在的月份 (YYYY-MM)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 确保表结构存在
	if err := repository.Migrate(dbpool); err != nil {
		logger.Error("无法执行数据库迁移", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 1:
		if n <= 0 {
			n = cfg.Seed.Workers
		}
		seed.SeedRandomWorkers(repo, n)
	case 2:
		if n <= 0 {
			n = cfg.Seed.ShiftsPerWorker
		}
		seed.SeedRandomShifts(repo, month, n)
	default:
		slog.Error("未指定操作")
	}
}
