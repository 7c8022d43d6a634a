// 手动触发测验聚合字段重算脚本
//
// 聚合字段（totalMarks/passMarks/timeLimit）随题目变更在事务内维护。
// 此脚本用于手动兜底重算，例如批量导入题库或历史数据修复之后。
//
// 用法: go run scripts/recompute_aggregates.go

package main

import (
	"log"

	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	questionSvc := service.NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewQuizRepository(db),
		db,
	)

	var quizIDs []uint
	if err := db.Model(&model.Quiz{}).Pluck("id", &quizIDs).Error; err != nil {
		log.Fatalf("读取测验列表失败: %v", err)
	}

	for _, id := range quizIDs {
		if err := questionSvc.RecomputeQuizAggregates(db, id); err != nil {
			log.Printf("测验 %d 重算失败: %v", id, err)
			continue
		}
	}

	log.Printf("聚合重算完成，共 %d 个测验", len(quizIDs))
}
