package model

import "time"

// SeedProfiles 固定的演示数据集。
// 存储缺失或解析失败时作为兜底档案，保证系统永远能启动出一份可用列表。
func SeedProfiles() []ClientProfile {
	now := time.Now().UnixMilli()
	age1, childAge1 := 35, 6
	age2 := 28
	age3, childAge3 := 32, 5
	age4, childAge4 := 40, 8

	return []ClientProfile{
		{
			ID:               "1",
			Name:             "陈妈妈",
			ClientType:       ClientTypeParent,
			Status:           StatusRegular,
			Age:              &age1,
			Gender:           "女",
			Occupation:       "会计",
			ChildName:        "轩轩",
			ChildAge:         &childAge1,
			ChildGender:      "男",
			Address:          "阳光花园一期",
			Course:           CoursePiano,
			CurrentPackage:   PackageStandard,
			RemainingLessons: 3,
			WeeklyFrequency:  "2",
			OtherPackages:    "声乐课剩余 5 节",

			StudentPersonality: []string{"外向活泼", "容易分心"},
			LearningState:      []string{"瓶颈期", "需家长督促"},
			ParentFocus:        []string{"兴趣培养", "注重服务"},
			OtherInfo:          "平时比较忙，一般晚上回复",
			HistorySummary:     "[10/12] 家长反馈练习时间少，建议制定时间表。\n[10/25] 孩子回课有进步，家长很高兴。",
			AddDate:            now - 100000000,
			PersonalityAnalysis: &PersonalityAnalysisResult{
				Summary:            "典型的责任心强、关注细节的家长。",
				Tags:               []string{"严谨", "负责", "焦虑"},
				CommunicationStyle: "注重逻辑和结果，喜欢直接反馈",
				MBTI: &MBTIAnalysis{
					Type:           "ESTJ",
					Description:    "总经理型 - 注重效率与规则",
					CognitiveStyle: "偏好具体事实(S)和逻辑判断(T)，希望看到清晰的练习计划。",
					TeachingAdvice: "给她看详细的课程大纲和阶段性成果数据，不要谈空泛的理念。",
				},
				Dos:             []string{"提供数据支持", "按时反馈", "指令清晰"},
				Donts:           []string{"迟到", "含糊其辞", "随意更改计划"},
				ClosingStrategy: "展示课程的长期规划和性价比分析",
				ChildInteractionGuide: &ChildInteractionGuide{
					PersonalityAnalysis: "活泼好动，坐不住",
					MBTI: &MBTIAnalysis{
						Type:           "ESFP",
						Description:    "表演者型 - 天生的艺人",
						CognitiveStyle: "喜欢动手操作，活在当下(S)，反感枯燥理论。",
						TeachingAdvice: "使用游戏化教学，多给上台展示机会，减少长时间说教。",
					},
					RewardMechanisms: []string{"积分兑换礼物"},
					ToyTypes:         []string{"奥特曼"},
					Dos:              []string{"多鼓励", "游戏化教学"},
					Donts:            []string{"长时间说教"},
					WinningStrategy:  "带他玩5分钟游戏再开始上课",
				},
			},
		},
		{
			ID:                 "2",
			Name:               "李先生",
			ClientType:         ClientTypeAdultStudent,
			Status:             StatusRegular,
			Age:                &age2,
			Gender:             "男",
			Occupation:         "程序员",
			Address:            "科技园",
			Course:             CourseGuitar,
			CurrentPackage:     PackagePremium,
			RemainingLessons:   12,
			WeeklyFrequency:    "1",
			StudentPersonality: []string{"专注力高", "内向害羞"},
			LearningState:      []string{"兴趣浓厚"},
			ParentFocus:        []string{"提升气质"},
			AddDate:            now - 50000000,
		},
		{
			ID:                    "3",
			Name:                  "张女士",
			ClientType:            ClientTypeParent,
			Status:                StatusTrial,
			Age:                   &age3,
			Gender:                "女",
			ChildName:             "小宝",
			ChildAge:              &childAge3,
			ChildGender:           "女",
			Address:               "御景湾",
			Course:                CourseUkulele,
			CurrentPackage:        PackageStandard,
			RemainingLessons:      0,
			TrialRemainingLessons: 2,
			WeeklyFrequency:       "1",
			StudentPersonality:    []string{"需要鼓励"},
			LearningState:         []string{"体验良好", "对比价格"},
			ParentFocus:           []string{"价格敏感"},
			OtherInfo:             "第一次试听很开心，但觉得价格偏高",
			HistorySummary:        "[11/01] 第一次试听结束，孩子很喜欢老师。",
			AddDate:               now - 2000000,
		},
		{
			ID:                 "4",
			Name:               "刘爸爸",
			ClientType:         ClientTypeParent,
			Status:             StatusLead,
			Age:                &age4,
			Gender:             "男",
			Occupation:         "企业主",
			ChildName:          "浩浩",
			ChildAge:           &childAge4,
			ChildGender:        "男",
			Address:            "未知",
			Course:             CoursePiano,
			CurrentPackage:     PackageStandard,
			StudentPersonality: []string{},
			LearningState:      []string{"初次接触"},
			ParentFocus:        []string{"考级证书"},
			OtherInfo:          "朋友圈咨询，想了解考级路线",
			AddDate:            now,
		},
	}
}
