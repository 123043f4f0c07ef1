package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/dianchu-dev/menu-backoffice/backend/internal/config"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/repository"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/seed"
	"github.com/dianchu-dev/menu-backoffice/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var branchID int64

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机分店经理, 2: 插入随机产品, 3: 插入随机时段, 4: 随机分配产品到时段, 5: 插入演示数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Int64Var(&branchID, "branch-id", 0, "随机分店经理所属的分店 ID")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

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

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
			return
		}
		if branchID <= 0 {
			slog.Error("请输入合法的分店 ID")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			user, err := utils.GenerateRandomManager(cfg.Seed.Manager.Password, cfg.Email.UserDomain, branchID)
			if err != nil {
				slog.Error("无法生成随机分店经理", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateUser(user); err != nil {
				slog.Error("无法插入用户", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入分店经理成功", slog.Int("count", n-cnt))
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的产品数量")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			product := utils.GenerateRandomProduct()
			if err := repo.CreateProduct(product); err != nil {
				slog.Error("无法插入产品", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入产品成功", slog.Int("count", n-cnt))
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的时段数量")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			schedule := utils.GenerateRandomSchedule()
			if err := repo.CreateSchedule(schedule); err != nil {
				slog.Error("无法插入时段", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入时段成功", slog.Int("count", n-cnt))
	case 4:
		// 先获取已有的时段和产品
		schedules, err := repo.GetAllSchedules(repository.ScheduleFilter{})
		if err != nil {
			slog.Error("无法获取时段列表", slog.String("error", err.Error()))
			return
		}
		products, err := repo.GetAllProducts(repository.ProductFilter{})
		if err != nil {
			slog.Error("无法获取产品列表", slog.String("error", err.Error()))
			return
		}
		if len(schedules) == 0 || len(products) == 0 {
			slog.Error("数据库中没有可用的时段或产品")
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			schedule := schedules[rand.Intn(len(schedules))]
			product := products[rand.Intn(len(products))]

			if _, err := repo.AddScheduleItems(schedule.ID, []int64{product.ID}, int32(rand.Intn(5)), rand.Intn(4) == 0); err != nil {
				// 随机抽到的产品可能已经在时段里，跳过即可
				continue
			}

			cnt++
		}

		slog.Info("随机分配产品成功", slog.Int("count", cnt))
	case 5:
		seed.SeedDemoData(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
