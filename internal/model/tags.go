package model

import "strings"

// 固定标签词表，作为 UI 多选和 AI 建议的参考；允许自由追加词表之外的标签。

var PersonalityTags = []string{
	"内向害羞", "外向活泼", "敏感细腻", "好胜心强", "专注力高", "容易分心", "需要鼓励", "抗压能力弱",
}

var LearningStateTags = []string{
	"兴趣浓厚", "瓶颈期", "产生厌学", "考级冲刺", "回课质量高", "练习频率低",
	"需家长督促", "即将结课", "初次接触", "犹豫不决", "对比价格", "体验良好",
}

var ParentFocusTags = []string{
	"考级证书", "兴趣培养", "提升气质", "价格敏感", "重视师资", "距离远近",
	"注重服务", "升学加分", "上课时间", "退费政策",
}

// 统一评级量表
var RatingScales = map[string][]string{
	"GENERAL_LEVEL": {"优秀 (S)", "良好 (A)", "合格 (B)", "需加油 (C)"},
	"MASTERY":       {"完全掌握", "基本掌握", "熟练度不足", "未掌握"},
	"FREQUENCY":     {"总是", "经常", "偶尔", "从不"},
	"INTONATION":    {"音准完美", "基本准确", "偶有跑调", "音准偏差大", "找不到调"},
	"RHYTHM":        {"节奏精准", "基本稳定", "忽快忽慢", "卡顿严重", "完全错乱"},
	"HAND_SHAPE":    {"手型标准", "较为放松", "偶有折指", "手腕僵硬", "手型塌陷"},
	"EMOTION":       {"情感充沛", "自然流畅", "略显平淡", "机械生硬"},
	"ATTITUDE":      {"非常积极", "配合度高", "注意力分散", "抗拒练习"},
	"HOMEWORK":      {"高质量完成", "按时完成", "完成度一般", "未完成"},
	"READING":       {"视奏流畅", "读谱较快", "读谱吃力", "不识谱"},
}

// DefaultPerformanceMetrics 按课程给出默认的课堂表现维度
func DefaultPerformanceMetrics(course CourseType) []PerformanceMetric {
	switch course {
	case CourseVocal:
		return []PerformanceMetric{
			{ID: "v1", Name: "音准音高", Value: "基本准确", Options: RatingScales["INTONATION"]},
			{ID: "v2", Name: "气息支撑", Value: "基本掌握", Options: RatingScales["MASTERY"]},
			{ID: "v3", Name: "咬字吐字", Value: "良好 (A)", Options: RatingScales["GENERAL_LEVEL"]},
			{ID: "v4", Name: "节奏律动", Value: "基本稳定", Options: RatingScales["RHYTHM"]},
			{ID: "v5", Name: "舞台表现", Value: "自然流畅", Options: RatingScales["EMOTION"]},
		}
	case CourseGuitar:
		return []PerformanceMetric{
			{ID: "g1", Name: "左手按弦", Value: "基本掌握", Options: RatingScales["MASTERY"]},
			{ID: "g2", Name: "右手拨弦/扫弦", Value: "基本稳定", Options: RatingScales["RHYTHM"]},
			{ID: "g3", Name: "和弦转换", Value: "熟练度不足", Options: RatingScales["MASTERY"]},
			{ID: "g4", Name: "节奏感", Value: "基本稳定", Options: RatingScales["RHYTHM"]},
			{ID: "g5", Name: "读谱能力", Value: "读谱较快", Options: RatingScales["READING"]},
		}
	case CourseUkulele:
		return []PerformanceMetric{
			{ID: "u1", Name: "扫弦节奏", Value: "轻快", Options: []string{"富有弹性", "轻快", "准确", "僵硬", "节奏乱"}},
			{ID: "u2", Name: "左手按弦", Value: "清晰", Options: []string{"清晰", "适中", "虚按", "杂音较多"}},
			{ID: "u3", Name: "弹唱配合", Value: "基本掌握", Options: RatingScales["MASTERY"]},
			{ID: "u4", Name: "课堂状态", Value: "非常积极", Options: RatingScales["ATTITUDE"]},
		}
	case CoursePianoPractice:
		return []PerformanceMetric{
			{ID: "pp1", Name: "识谱准确度", Value: "基本准确", Options: RatingScales["INTONATION"]},
			{ID: "pp2", Name: "练习效率", Value: "良好 (A)", Options: RatingScales["GENERAL_LEVEL"]},
			{ID: "pp3", Name: "错音纠正", Value: "基本掌握", Options: RatingScales["MASTERY"]},
			{ID: "pp4", Name: "手型保持", Value: "较为放松", Options: RatingScales["HAND_SHAPE"]},
		}
	case CoursePianoSinging:
		return []PerformanceMetric{
			{ID: "ps1", Name: "弹唱协调性", Value: "基本掌握", Options: RatingScales["MASTERY"]},
			{ID: "ps2", Name: "音准", Value: "基本准确", Options: RatingScales["INTONATION"]},
			{ID: "ps3", Name: "伴奏稳定性", Value: "基本稳定", Options: RatingScales["RHYTHM"]},
			{ID: "ps4", Name: "情感投入", Value: "自然流畅", Options: RatingScales["EMOTION"]},
		}
	default: // 钢琴
		return []PerformanceMetric{
			{ID: "p1", Name: "手型状态", Value: "较为放松", Options: RatingScales["HAND_SHAPE"]},
			{ID: "p2", Name: "识谱能力", Value: "读谱较快", Options: RatingScales["READING"]},
			{ID: "p3", Name: "音准控制", Value: "基本准确", Options: RatingScales["INTONATION"]},
			{ID: "p4", Name: "节奏稳定性", Value: "基本稳定", Options: RatingScales["RHYTHM"]},
			{ID: "p5", Name: "音乐表现力", Value: "自然流畅", Options: RatingScales["EMOTION"]},
			{ID: "p6", Name: "练琴态度", Value: "配合度高", Options: RatingScales["ATTITUDE"]},
		}
	}
}

// 活动策划的主题备选
var Festivals = []string{
	"春节", "元宵节", "妇女节", "母亲节", "儿童节", "父亲节", "端午节",
	"教师节", "中秋节", "国庆节", "万圣节", "感恩节", "圣诞节", "元旦",
}

var RoutineThemes = []string{
	"月度生日会", "季度汇演", "开学典礼", "结课仪式", "家长开放日",
	"户外研学", "老带新推荐礼", "续费大转盘", "考级模拟考", "大师班",
}

// TagVocabularyPrompt 生成 Prompt 用的标签词表提示
func TagVocabularyPrompt() string {
	return "性格: " + strings.Join(PersonalityTags, ",") +
		"; 学习状态: " + strings.Join(LearningStateTags, ",") +
		"; 关注点: " + strings.Join(ParentFocusTags, ",")
}
