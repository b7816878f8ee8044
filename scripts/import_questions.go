// 题库批量导入脚本
//
// 从 YAML 文件批量导入某课程的模拟测试题目，适用于首次部署
// 或大规模更新题库。日常单题维护走管理后台接口。
//
// 用法: go run scripts/import_questions.go -course <课程ID> -file questions.yaml
//
// YAML 格式:
//
//	- text: "What is the SI unit of force?"
//	  options: ["Newton", "Joule", "Watt", "Pascal"]
//	  answer: 0
//	  section: Physics
//	  explanation: "Force is measured in newtons."
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"odigyan_backend/internal/config"
	"odigyan_backend/internal/model"
	"odigyan_backend/pkg/database"
	"odigyan_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

type questionEntry struct {
	Text        string   `yaml:"text"`
	Options     []string `yaml:"options"`
	Answer      int      `yaml:"answer"`
	Section     string   `yaml:"section"`
	Explanation string   `yaml:"explanation"`
}

func main() {
	courseID := flag.String("course", "", "目标课程ID")
	file := flag.String("file", "questions.yaml", "题目YAML文件路径")
	flag.Parse()

	if *courseID == "" {
		log.Fatal("必须指定 -course")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var course model.Course
	if err := db.First(&course, "id = ?", *courseID).Error; err != nil {
		log.Fatalf("课程不存在: %v", err)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题目文件: %v", err)
	}

	var entries []questionEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		log.Fatalf("解析题目文件失败: %v", err)
	}

	imported := 0
	for i, entry := range entries {
		if entry.Text == "" || len(entry.Options) < 2 {
			log.Printf("跳过第 %d 题: 题干为空或选项不足", i+1)
			continue
		}
		if entry.Answer < 0 || entry.Answer >= len(entry.Options) {
			log.Printf("跳过第 %d 题: 答案下标越界", i+1)
			continue
		}

		options, err := json.Marshal(entry.Options)
		if err != nil {
			log.Printf("跳过第 %d 题: %v", i+1, err)
			continue
		}

		question := &model.MockQuestion{
			CourseID:    *courseID,
			Text:        entry.Text,
			Options:     options,
			Answer:      entry.Answer,
			Section:     entry.Section,
			Explanation: entry.Explanation,
			Order:       i,
		}
		if err := db.Create(question).Error; err != nil {
			log.Printf("第 %d 题写入失败: %v", i+1, err)
			continue
		}
		imported++
	}

	log.Printf("导入完成: %d/%d 题", imported, len(entries))
}
