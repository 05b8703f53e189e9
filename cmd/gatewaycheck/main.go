package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/leon37/EduConsult/internal/config"
	"github.com/leon37/EduConsult/internal/infrastructure/llm"
	"github.com/leon37/EduConsult/internal/model"
)

// 手动联调工具：对着真实网关跑一遍沟通分析和反馈生成，肉眼检查输出质量。
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	apiKey := conf.Gemini.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("EDUCONSULT_GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("请设置环境变量 EDUCONSULT_GEMINI_API_KEY")
	}
	client := llm.NewGeminiClient(llm.Config{
		APIKey:  apiKey,
		BaseURL: conf.Gemini.BaseURL,
		Model:   conf.Gemini.Model,
		Timeout: 120 * time.Second,
	})

	ctx := context.Background()
	profile := model.SeedProfiles()[0]

	fmt.Println("-------- 测试1: 沟通分析 (家长消息) --------")
	start := time.Now()
	analysis, err := client.AnalyzeInteraction(ctx, llm.InteractionRequest{
		Text:        "老师，孩子最近总说不想练琴，是不是没天赋啊？要不先停一段时间？",
		Profile:     profile,
		Perspective: model.PerspectiveParent,
	})
	if err != nil {
		log.Fatalf("❌ 调用失败: %v", err)
	}
	fmt.Printf("✅ 调用成功 (耗时 %v)\n", time.Since(start))
	fmt.Printf("情绪判断: %s\n", analysis.EmotionalTone)
	fmt.Printf("互动摘要: %s\n", analysis.InteractionSummary)
	fmt.Printf("详细回复: %s\n", analysis.ReplySuggestions.Detailed)
	fmt.Printf("简短回复: %s\n", analysis.ReplySuggestions.Brief)

	fmt.Println("\n-------- 测试2: 课后反馈 --------")
	start = time.Now()
	feedback, err := client.GenerateClassFeedback(ctx, llm.FeedbackRequest{
		Profile:         profile,
		Course:          profile.Course,
		LearningContent: "车尔尼599第20条，重点练习左手伴奏音型",
		Metrics:         model.DefaultPerformanceMetrics(profile.Course),
		Homework:        "每天慢练20分钟，注意拍子",
		StudentName:     profile.ChildName,
		TargetMode:      model.AudienceChild,
	})
	if err != nil {
		log.Fatalf("❌ 调用失败: %v", err)
	}
	fmt.Printf("✅ 调用成功 (耗时 %v)\n", time.Since(start))
	fmt.Printf("内容摘要: %s\n", feedback.LearningContentSummary)
	for _, v := range feedback.Variations {
		fmt.Printf("\n[%s]\n%s\n", v.Style, v.Content)
	}
}
