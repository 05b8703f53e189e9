package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/leon37/EduConsult/internal/model"
)

// Prompt 构造。文案分版本维护在这里，和 schema 定义紧挨着，修改时对照。

func priceListContext() string {
	data, _ := json.MarshalIndent(model.PackageData, "", "  ")
	return string(data)
}

func personalityContext(p model.ClientProfile) string {
	pa := p.PersonalityAnalysis
	if pa == nil {
		return fmt.Sprintf("暂无深度性格画像，请根据现有标签(%s)推断。", strings.Join(p.StudentPersonality, ","))
	}
	var b strings.Builder
	b.WriteString("**【重要】已有的AI性格深度画像**:\n")
	fmt.Fprintf(&b, "- 性格总结: %s\n", pa.Summary)
	if pa.MBTI != nil {
		fmt.Fprintf(&b, "- MBTI类型: %s (%s)\n", pa.MBTI.Type, pa.MBTI.CognitiveStyle)
	}
	fmt.Fprintf(&b, "- 沟通风格: %s\n", pa.CommunicationStyle)
	fmt.Fprintf(&b, "- 推荐做法: %s\n", strings.Join(pa.Dos, ", "))
	fmt.Fprintf(&b, "- 禁忌雷区: %s\n", strings.Join(pa.Donts, ", "))
	fmt.Fprintf(&b, "- 成交策略: %s\n", pa.ClosingStrategy)
	fmt.Fprintf(&b, "- 补充备注: %s\n", orUnknown(p.PersonalityNotes, "无"))
	if g := pa.ChildInteractionGuide; g != nil {
		if g.MBTI != nil {
			fmt.Fprintf(&b, "- 孩子MBTI: %s\n", g.MBTI.Type)
		}
		fmt.Fprintf(&b, "- 孩子性格: %s\n", g.PersonalityAnalysis)
	}
	return b.String()
}

func buildInteractionPrompt(req InteractionRequest) string {
	p := req.Profile

	perspectiveInstruction := `**当前输入视角**: 【家长/学员发来的消息】
- 场景: 顾问收到了家长的消息/截图。
- 任务: 分析家长的言外之意、情绪和诉求，并生成顾问的【回复策略】。
- 策略方向: 解释、安抚、回答问题、处理异议。`
	if req.Perspective == model.PerspectiveTeacher {
		perspectiveInstruction = `**当前输入视角**: 【老师提出的问题 或 老师的草稿】
- 场景: 老师遇到了教学困难，询问"如何教学？"、"如何相处？"，或者老师想给家长发一段话请求润色。
- 角色设定: 你是该老师的**高级督导/教育心理学顾问**。
- 任务: 提问则结合档案中的 MBTI 分析和性格画像给出具体教学方法；草稿则润色成高情商、符合家长性格的话术。
- 策略方向: 教学指导、心理分析、沟通润色、专业建议。`
	}

	var b strings.Builder
	b.WriteString("你是一位世界级的教育咨询顾问和销售专家，深谙《演讲的艺术》、《影响力》和《先发制人》等书中的沟通心理学。\n\n")
	fmt.Fprintf(&b, "**识别身份与目标**: 当前客户身份是【%s】。\n", p.Status)
	b.WriteString("- 正课学员: 目标是续费、消课或解决教学问题。\n")
	fmt.Fprintf(&b, "- 试听学员: 目标是转化成正课，根据试听剩余课时(%d)制造紧迫感。\n", p.TrialRemainingLessons)
	fmt.Fprintf(&b, "- 咨询学员: 目标是邀约试听或直接成单，根据添加时间(%s)判断跟进节奏。\n",
		time.UnixMilli(p.AddDate).Format("2006-01-02"))
	b.WriteString("- 流失学员: 目标是召回/复购，了解流失原因，提供回流优惠或新活动。\n\n")
	b.WriteString(perspectiveInstruction)
	b.WriteString("\n\n**结合档案与历史**:\n")
	fmt.Fprintf(&b, "- 客户基本面: %s, %s %s, 职业: %s。\n", p.Name, formatAge(p.Age), p.Gender, orUnknown(p.Occupation, "未知"))
	fmt.Fprintf(&b, "- 深度性格画像: %s\n", personalityContext(p))
	fmt.Fprintf(&b, "- 关注点: %s\n", strings.Join(p.ParentFocus, ", "))
	fmt.Fprintf(&b, "- 历史摘要: %s\n\n", orUnknown(p.HistorySummary, "暂无"))
	b.WriteString("**销售预测与课包推荐**: 结合价格表逻辑推荐课包；对价格敏感家长重点推算单价和赠课；对注重效果家长强调进阶包/尊享包的长期规划价值；结合职业特点调整话术。\n\n")
	b.WriteString("**生成输出**: 3种回复/发送策略原则，以及两个版本的具体回复文案（详细建议版：寒暄+共情+解释逻辑+方案+结尾升华；简短建议版：直击要点、不失礼貌）。\n\n")
	fmt.Fprintf(&b, "**价格表参考 (JSON)**:\n%s\n\n", priceListContext())
	b.WriteString("**学员档案详情**:\n")
	fmt.Fprintf(&b, "- 称呼: %s (%s)\n- 状态: %s\n", p.Name, p.ClientType, p.Status)
	fmt.Fprintf(&b, "- 孩子: %s (年龄: %s)\n", orUnknown(p.ChildName, "无"), formatAge(p.ChildAge))
	fmt.Fprintf(&b, "- 课程: %s\n- 剩余正课: %d\n- 剩余试听: %d\n", p.Course, p.RemainingLessons, p.TrialRemainingLessons)
	if p.RenewalAlert() {
		b.WriteString("- ⚠️ 续费预警: 剩余正课不足4节，本次沟通应自然铺垫续费\n")
	}
	fmt.Fprintf(&b, "- 上课频率: %s\n- 其他课包: %s\n", orUnknown(p.WeeklyFrequency, "未知"), orUnknown(p.OtherPackages, "无"))
	fmt.Fprintf(&b, "- 学习状态: %s\n- 其他备注: %s\n\n", strings.Join(p.LearningState, ", "), p.OtherInfo)
	if req.Text != "" {
		fmt.Fprintf(&b, "**本次输入内容**:\n老师输入: \"%s\"\n\n", req.Text)
	}
	fmt.Fprintf(&b, "**档案更新建议**: 如果对话暴露了新的标签信息，放进 profileUpdateSuggestion。优先从这份词表里选: %s。词表覆盖不了的可以自拟。\n\n", model.TagVocabularyPrompt())
	b.WriteString("**回复要求**: 策略必须符合《影响力》原则（互惠、承诺一致、社会认同、喜好、权威、稀缺）；语气必须严格贴合深度性格画像中的建议；提问教学方法时直接引用 MBTI 理论给出建议；语气自然、专业、绝不尴尬。")
	return b.String()
}

func buildPersonalityPrompt(req PersonalityRequest) string {
	p := req.Profile

	targetFocus := `**【成人学员档案】**:
这是一个成人学员。重点关注自我提升、解压、社交或专业技能。
- 推荐 (Do's): 如何让学员感到专业、放松或有成就感。
- 禁忌 (Don'ts): 避免让学员感到压力、尴尬或枯燥。
- 成交必杀技: 强调课程带来的生活品质改变或技能变现。`
	if p.ClientType == model.ClientTypeParent {
		targetFocus = fmt.Sprintf(`**【关键核心：家长档案 - 必须以孩子为绝对中心】**:
1. 分析家长: 基于《天资差异》分析家长的MBTI；生成推荐(Do's)、禁忌(Don'ts)和成交必杀技，必须强关联孩子的利益。
2. 分析孩子: 综合聊天记录中的孩子行为、家长描述以及孩子基本信息(%s, %s, 性别:%s)；推断孩子的MBTI类型；生成孩子MBTI深度分析、性格画像、推荐奖励机制、推荐玩具/IP、对孩子的Do's/Don'ts和搞定孩子的必杀技。`,
			p.ChildName, formatAge(p.ChildAge), orUnknown(p.ChildGender, "未知"))
	}

	var b strings.Builder
	b.WriteString("你是一位顶尖的心理分析师和教育咨询专家，熟读《天资差异》(Gifts Differing, 1980) by Isabel Briggs Myers。\n\n")
	fmt.Fprintf(&b, "请根据提供的【朋友圈/个人资料截图】(如果有) 和【聊天记录/文本描述】，深度分析这位%s的性格画像。\n\n", p.ClientType)
	b.WriteString(`**分析任务**:
1. MBTI 深度分析 (基于荣格心理类型理论): 判断 E/I、S/N、T/F、J/P，推断MBTI类型，描述认知风格和教学/相处建议。
2. 性格画像: 一句话概括性格核心；3-5个形容词标签；沟通风格。
3. 行为指南 (Do's & Don'ts): 顾问在销售/服务过程中必须遵守的行为准则；成交必杀技。

`)
	b.WriteString(targetFocus)
	b.WriteString("\n\n**输入素材**:\n")
	fmt.Fprintf(&b, "- 个人资料/朋友圈截图: %d 张\n- 聊天记录截图: %d 张\n", len(req.ProfileImages), len(req.ChatImages))
	fmt.Fprintf(&b, "- 文本备注/聊天内容: \"%s %s\"\n", req.Notes, req.ChatText)
	fmt.Fprintf(&b, "- 学员信息: %s, %s, 职业:%s, 关注点:%s\n", p.Name, formatAge(p.Age), orUnknown(p.Occupation, "未知"), strings.Join(p.ParentFocus, ","))
	b.WriteString("\n请直接返回 JSON 对象，不要包含 markdown 格式标记。")
	return b.String()
}

func buildFeedbackPrompt(req FeedbackRequest) string {
	name := req.StudentName
	if name == "" {
		name = "学员"
	}

	var modeInstruction string
	switch req.TargetMode {
	case model.AudienceChild:
		modeInstruction = fmt.Sprintf("**模式: 儿童/青少年 (汇报给家长)**: 反馈主体是孩子\"%s\"，接收者是家长。语气要热情、详细，多夸奖孩子的具体进步，增强家长的自豪感。", name)
	case model.AudienceTeen:
		modeInstruction = fmt.Sprintf("**模式: 青少年 (成熟鼓励)**: 反馈主体是\"%s\"。语气要平等、尊重，既有鼓励也要有具体的专业建议，不要太幼稚。", name)
	case model.AudienceAdult:
		modeInstruction = fmt.Sprintf("**模式: 成人 (专业直接)**: 反馈主体是\"%s\"(学员本人)。语气要专业、尊重、客观，指出问题时委婉且给出解决方案，强调技能的掌握。", name)
	default:
		if req.Profile.IsAdultSubject() {
			modeInstruction = "**模式: 成人**: 目标受众是学员本人，语气专业严谨。"
		} else {
			modeInstruction = fmt.Sprintf("**模式: 儿童**: 目标受众是家长，汇报\"%s\"的表现，语气热情鼓励。", name)
		}
	}

	var perf strings.Builder
	for _, m := range req.Metrics {
		fmt.Fprintf(&perf, "- %s: %s\n", m.Name, m.Value)
	}

	personality := fmt.Sprintf("**性格标签**: %s (请根据这些标签推断语气)", strings.Join(req.Profile.StudentPersonality, ", "))
	if pa := req.Profile.PersonalityAnalysis; pa != nil {
		mbtiType := "未知"
		if pa.MBTI != nil {
			mbtiType = pa.MBTI.Type
		}
		personality = fmt.Sprintf(`**目标受众性格/沟通偏好 (非常重要)**:
- 深度画像: %s
- 沟通风格: %s
- MBTI: %s
- 建议做法: %s`, pa.Summary, pa.CommunicationStyle, mbtiType, strings.Join(pa.Dos, ", "))
	}

	layout := `**无模板时的默认排版 (必须强制双换行)**:
必须分段清晰，不同大板块之间必须使用双换行符 (\n\n) 隔开，形成明显的视觉空行。
参考结构: [热情开场/今日总结] / 🌈 学习内容 / 🎹 课堂点评 / 🏠 课后作业 / [结尾鼓励]，各板块之间空行。`
	if req.PreviousTemplate != "" {
		layout = fmt.Sprintf(`**用户给出了【上节课反馈模板】(Template Reference)**:
-------------
%s
-------------
**执行要求 (全维克隆)**: 必须提取并复用模板中的 Emoji；复刻模板中的空行位置（双换行 \n\n）；列表格式与模板保持一致。`, req.PreviousTemplate)
	}

	var b strings.Builder
	b.WriteString("角色：你是一位资深的真人教师，擅长用最自然、最接地气的方式与家长/学员沟通。你非常懂心理学，但绝不掉书袋，写出的反馈就像微信上发给朋友的一样自然。\n\n")
	b.WriteString("**核心任务**: 为学员生成课后反馈文案。\n\n")
	fmt.Fprintf(&b, `**关键指令: 去主语化 & 结构克隆 (Strict Rules)**
1. 严禁主语: 严禁在句子开头使用 "%s"、"你"、"他/她"、"学生"；必须直接以动词或描述性词语开头。
   ❌ "%s今天音准控制得很好..." ✅ "今天音准控制得非常稳，特别是高音区..."
2. 像真人一样说话: 严禁 "综上所述"、"首先/其次"、"总体来说" 这类论文腔；严禁死板的 "1. 音准: 良好" 列表格式 (除非模板就是这样)；使用专业口语。
3. 性格适配: 严谨/逻辑型家长给干货和练习建议；情感/鼓励型家长突出感染力和自信。

`, name, name)
	b.WriteString(layout)
	b.WriteString("\n\n**学员具体信息**:\n")
	fmt.Fprintf(&b, "- 姓名: %s\n- 年龄: %d岁\n- 性别: %s\n- %s\n\n", name, req.StudentAge, orUnknown(req.StudentGender, "未知"), modeInstruction)
	b.WriteString(personality)
	b.WriteString("\n\n**课程信息**:\n")
	fmt.Fprintf(&b, "- 课程: %s\n- 本节课内容: \"%s\"\n- 课后作业: \"%s\"\n- 详细表现:\n%s\n", req.Course, req.LearningContent, req.Homework, perf.String())
	b.WriteString("\n**输出目标**: 生成 5 个不同风格的文案 (鼓励型、指导型、专业型等)，并附带本节课的学习内容摘要。")
	return b.String()
}

func buildActivityPrompt(req ActivityPlanRequest) string {
	var profileCtx strings.Builder
	for _, p := range req.Profiles {
		fmt.Fprintf(&profileCtx, "- %s (%s): %s, 剩余%d课时, 关注:%s\n",
			p.Name, p.ClientType, p.Course, p.RemainingLessons, strings.Join(p.ParentFocus, ","))
	}

	historyCtx := "无历史对话"
	if len(req.ChatHistory) > 0 {
		var h strings.Builder
		for _, msg := range req.ChatHistory {
			fmt.Fprintf(&h, "%s: %s\n", msg.Role, msg.Content)
		}
		historyCtx = h.String()
	}

	cc := req.CostConfig
	var costCtx strings.Builder
	fmt.Fprintf(&costCtx, "- 底价: ¥%.2f, 预算上限: 售价的 %.0f%% (即最多 ¥%.2f), 偏好风格: %s\n",
		cc.FloorPrice, cc.BudgetCapPercent, cc.MaxBudget(), cc.PreferredStyle)
	if len(cc.Gifts) > 0 {
		costCtx.WriteString("- 可选礼物库存: ")
		for i, g := range cc.Gifts {
			if i > 0 {
				costCtx.WriteString(", ")
			}
			fmt.Fprintf(&costCtx, "%s(¥%.2f)", g.Name, g.Price)
		}
		costCtx.WriteString("\n")
	}
	if len(cc.Materials) > 0 {
		costCtx.WriteString("- 可选材料库存: ")
		for i, m := range cc.Materials {
			if i > 0 {
				costCtx.WriteString(", ")
			}
			fmt.Fprintf(&costCtx, "%s(¥%.2f)", m.Name, m.Price)
		}
		costCtx.WriteString("\n")
	}

	profiles := profileCtx.String()
	if len(profiles) > 3000 {
		profiles = profiles[:3000]
	}

	return fmt.Sprintf(`你是一位专业的教育机构活动策划师。请根据以下学员画像和要求，策划一个具体的活动方案。

**学员画像样本**:
%s
**指令/要求**: %s

**成本约束 (硬性)**:
%s
礼物和材料组合的总成本不得超过预算上限，并在财务分析的 breakdown 中列出具体选用项和价格。

**历史上下文**:
%s

**策划要求**:
1. 主题鲜明，有吸引力。
2. 针对学员特点设计转化/续费钩子。
3. 提供财务估算 (建议定价、成本、利润)。
4. 生成SOP和话术。`,
		profiles, req.Instructions, costCtx.String(), historyCtx)
}

func orUnknown(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func formatAge(age *int) string {
	if age == nil {
		return "未知"
	}
	return fmt.Sprintf("%d岁", *age)
}
