package llm

import "github.com/sashabaranov/go-openai/jsonschema"

// 四种请求形状的输出 schema 定义。
// 字段必须与 model 包里对应结构体的 json tag 保持一致。

func interactionSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"emotionalTone": {
				Type:        jsonschema.String,
				Description: "家长/学员当前的情绪状态 (或老师当前面临的问题本质)",
			},
			"keyConcerns": {
				Type:        jsonschema.Array,
				Items:       &jsonschema.Definition{Type: jsonschema.String},
				Description: "最关心的3个核心点",
			},
			"suggestedPackage": {
				Type:        jsonschema.String,
				Description: "推荐的课程包名称 (标准包/优享包/进阶包/尊享包)，无推荐时返回空字符串",
			},
			"strategies": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":     {Type: jsonschema.String, Description: "策略名称 (例如: 互惠式开场 / 针对INFP的教学调整)"},
						"content":   {Type: jsonschema.String, Description: "生成的具体话术内容或教学建议，不要带引号"},
						"principle": {Type: jsonschema.String, Description: "使用的心理学原理或MBTI认知功能"},
					},
					Required: []string{"title", "content", "principle"},
				},
			},
			"replySuggestions": {
				Type:        jsonschema.Object,
				Description: "提供两个版本的回复建议供老师选择",
				Properties: map[string]jsonschema.Definition{
					"detailed": {Type: jsonschema.String, Description: "完整、详尽的回复建议，包含寒暄、共情、解释和结尾"},
					"brief":    {Type: jsonschema.String, Description: "简短、高效的回复建议，适用于快速响应"},
				},
				Required: []string{"detailed", "brief"},
			},
			"profileUpdateSuggestion": {
				Type:        jsonschema.Object,
				Description: "基于对话和资料截图，建议更新的档案字段",
				Properties: map[string]jsonschema.Definition{
					"learningState":      {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"parentFocus":        {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"studentPersonality": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "从截图推断出的新性格标签"},
					"otherInfo":          {Type: jsonschema.String},
				},
			},
			"interactionSummary": {
				Type:        jsonschema.String,
				Description: "本次互动的简要记录，将自动追加到历史摘要中",
			},
		},
		Required: []string{"emotionalTone", "keyConcerns", "strategies", "replySuggestions", "interactionSummary"},
	}
}

func mbtiSchema(desc string) jsonschema.Definition {
	return jsonschema.Definition{
		Type:        jsonschema.Object,
		Description: desc,
		Properties: map[string]jsonschema.Definition{
			"type":           {Type: jsonschema.String, Description: "MBTI类型代码 (如 ENFP)"},
			"description":    {Type: jsonschema.String, Description: "该类型的简要描述 (如 '充满热情的竞选者')"},
			"cognitiveStyle": {Type: jsonschema.String, Description: "认知/学习风格分析"},
			"teachingAdvice": {Type: jsonschema.String, Description: "针对该类型的教学/相处建议"},
		},
		Required: []string{"type", "description", "cognitiveStyle", "teachingAdvice"},
	}
}

func personalitySchema(includeChildGuide bool) jsonschema.Definition {
	def := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"summary":            {Type: jsonschema.String, Description: "性格核心总结"},
			"tags":               {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"communicationStyle": {Type: jsonschema.String},
			"mbti":               mbtiSchema("基于《天资差异》的家长/学员MBTI分析"),
			"dos":                {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "顾问对客户的推荐做法"},
			"donts":              {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "顾问对客户的禁忌"},
			"closingStrategy":    {Type: jsonschema.String, Description: "促单策略核心"},
		},
		Required: []string{"summary", "tags", "communicationStyle", "mbti", "dos", "donts", "closingStrategy"},
	}
	if includeChildGuide {
		def.Properties["childInteractionGuide"] = jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"personalityAnalysis": {Type: jsonschema.String, Description: "孩子性格简要画像"},
				"mbti":                mbtiSchema("基于《天资差异》的孩子MBTI分析"),
				"rewardMechanisms":    {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "推荐的奖励机制/激励手段"},
				"toyTypes":            {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "推荐的破冰玩具类型或话题IP"},
				"dos":                 {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "老师对孩子的推荐做法"},
				"donts":               {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}, Description: "老师对孩子的禁忌"},
				"winningStrategy":     {Type: jsonschema.String, Description: "搞定孩子的必杀技"},
			},
			Required: []string{"personalityAnalysis", "mbti", "rewardMechanisms", "toyTypes", "dos", "donts", "winningStrategy"},
		}
		def.Required = append(def.Required, "childInteractionGuide")
	}
	return def
}

func feedbackSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"learningContentSummary": {Type: jsonschema.String, Description: "本节课学习内容的简要、专业概述"},
			"variations": {
				Type:        jsonschema.Array,
				Description: "5个不同风格的反馈文案",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"style":   {Type: jsonschema.String, Description: "风格名称 (如: 鼓励型, 指导型, 专业型, 亲切型, 严厉型)"},
						"content": {Type: jsonschema.String, Description: "完整的反馈文案内容 (务必包含 \\n\\n 双换行符以确保板块间有空行)"},
					},
					Required: []string{"style", "content"},
				},
			},
		},
		Required: []string{"learningContentSummary", "variations"},
	}
}

func inventorySchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Array,
		Items: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"name":  {Type: jsonschema.String},
				"price": {Type: jsonschema.Number},
			},
			Required: []string{"name", "price"},
		},
	}
}

func activityPlanSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"theme":               {Type: jsonschema.String},
			"personaSummary":      {Type: jsonschema.String},
			"smartStrategy":       {Type: jsonschema.String},
			"marketOpportunities": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"successProbability":  {Type: jsonschema.String},
			"financialAnalysis": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"suggestedPrice": {Type: jsonschema.Number},
					"totalCost":      {Type: jsonschema.Number},
					"profit":         {Type: jsonschema.Number},
					"breakdown": {
						Type: jsonschema.Object,
						Properties: map[string]jsonschema.Definition{
							"gifts":     inventorySchema(),
							"materials": inventorySchema(),
						},
						Required: []string{"gifts", "materials"},
					},
				},
				Required: []string{"suggestedPrice", "totalCost", "profit", "breakdown"},
			},
			"contentDesign": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"highlights":       {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"parentAppeal":     {Type: jsonschema.String},
					"renewalMechanism": {Type: jsonschema.String},
				},
				Required: []string{"highlights", "parentAppeal", "renewalMechanism"},
			},
			"operationalSOP": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"preEvent":    {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"duringEvent": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
					"postEvent":   {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
				},
				Required: []string{"preEvent", "duringEvent", "postEvent"},
			},
			"reusableTemplates": {
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"privateMessageTemplate": {Type: jsonschema.String},
				},
				Required: []string{"privateMessageTemplate"},
			},
		},
		Required: []string{"theme", "personaSummary", "smartStrategy", "financialAnalysis", "contentDesign", "operationalSOP", "reusableTemplates"},
	}
}
