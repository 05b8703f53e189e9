package model

// 本文件是四类 AI 输出的结构化映射。
// 字段与 infrastructure/llm 里的 responseSchema 一一对应，改动时必须对照修改。

// Strategy 一条沟通/教学策略
type Strategy struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Principle string `json:"principle"` // 心理学原理或 MBTI 认知功能
}

// ReplySuggestions 两个版本的回复文案
type ReplySuggestions struct {
	Detailed string `json:"detailed"` // 寒暄+共情+解释+方案的完整版
	Brief    string `json:"brief"`    // 微信快速回复版
}

// ProfileUpdateSuggestion 模型基于对话建议补充的档案标签/备注。
// 合并时只做并集追加，绝不覆盖已有标签。
type ProfileUpdateSuggestion struct {
	LearningState      []string `json:"learningState,omitempty"`
	ParentFocus        []string `json:"parentFocus,omitempty"`
	StudentPersonality []string `json:"studentPersonality,omitempty"`
	OtherInfo          string   `json:"otherInfo,omitempty"`
}

// AnalysisResult 沟通分析的完整输出
type AnalysisResult struct {
	EmotionalTone           string                   `json:"emotionalTone"`
	KeyConcerns             []string                 `json:"keyConcerns"`
	SuggestedPackage        string                   `json:"suggestedPackage,omitempty"`
	Strategies              []Strategy               `json:"strategies"`
	ReplySuggestions        ReplySuggestions         `json:"replySuggestions"`
	ProfileUpdateSuggestion *ProfileUpdateSuggestion `json:"profileUpdateSuggestion,omitempty"`

	// 本次互动一句话摘要，由编排层追加进历史日志
	InteractionSummary string `json:"interactionSummary"`
}

// MBTIAnalysis 基于《天资差异》的四维分类
type MBTIAnalysis struct {
	Type           string `json:"type"`        // 如 "ENFP"
	Description    string `json:"description"` // 如 "充满热情的竞选者"
	CognitiveStyle string `json:"cognitiveStyle"`
	TeachingAdvice string `json:"teachingAdvice"`
}

// ChildInteractionGuide 孩子相处指南，仅家长档案的画像里出现
type ChildInteractionGuide struct {
	PersonalityAnalysis string        `json:"personalityAnalysis"`
	MBTI                *MBTIAnalysis `json:"mbti,omitempty"`
	RewardMechanisms    []string      `json:"rewardMechanisms"`
	ToyTypes            []string      `json:"toyTypes"`
	Dos                 []string      `json:"dos"`
	Donts               []string      `json:"donts"`
	WinningStrategy     string        `json:"winningStrategy"`
}

// PersonalityAnalysisResult 性格深度画像，每次重新生成时整体覆盖
type PersonalityAnalysisResult struct {
	Summary               string                 `json:"summary"`
	Tags                  []string               `json:"tags"`
	CommunicationStyle    string                 `json:"communicationStyle"`
	MBTI                  *MBTIAnalysis          `json:"mbti,omitempty"`
	Dos                   []string               `json:"dos"`
	Donts                 []string               `json:"donts"`
	ClosingStrategy       string                 `json:"closingStrategy"`
	ChildInteractionGuide *ChildInteractionGuide `json:"childInteractionGuide,omitempty"`
}

// FeedbackVariation 单条风格化反馈文案
type FeedbackVariation struct {
	Style   string `json:"style"`
	Content string `json:"content"`
}

// FeedbackResult 课后反馈输出：内容摘要 + 5 条风格变体
type FeedbackResult struct {
	LearningContentSummary string              `json:"learningContentSummary"`
	Variations             []FeedbackVariation `json:"variations"`
}

// --- 活动策划 ---

type ActivityStyle string

const (
	StyleRitual ActivityStyle = "RITUAL"
	StyleFun    ActivityStyle = "FUN"
	StyleSkill  ActivityStyle = "SKILL"
	StyleStage  ActivityStyle = "STAGE"
)

// InventoryItem 礼物/材料清单项，name 不要求唯一
type InventoryItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ActivityCostConfig 活动成本约束，由操作者编辑，不随档案持久化
type ActivityCostConfig struct {
	FloorPrice       float64         `json:"floorPrice"`
	BudgetCapPercent float64         `json:"budgetCapPercent"`
	PreferredStyle   ActivityStyle   `json:"preferredStyle"`
	Gifts            []InventoryItem `json:"gifts"`
	Materials        []InventoryItem `json:"materials"`
}

// MaxBudget 预算上限 = 底价 × 预算比例
func (c ActivityCostConfig) MaxBudget() float64 {
	return c.FloorPrice * c.BudgetCapPercent / 100
}

// DefaultActivityCostConfig 成本设置的初始值
func DefaultActivityCostConfig() ActivityCostConfig {
	return ActivityCostConfig{
		FloorPrice:       99,
		BudgetCapPercent: 30,
		PreferredStyle:   StyleFun,
		Gifts:            []InventoryItem{},
		Materials:        []InventoryItem{},
	}
}

type FinancialBreakdown struct {
	Gifts     []InventoryItem `json:"gifts"`
	Materials []InventoryItem `json:"materials"`
}

type FinancialAnalysis struct {
	SuggestedPrice float64            `json:"suggestedPrice"`
	TotalCost      float64            `json:"totalCost"`
	Profit         float64            `json:"profit"`
	Breakdown      FinancialBreakdown `json:"breakdown"`
}

type ContentDesign struct {
	Highlights       []string `json:"highlights"`
	ParentAppeal     string   `json:"parentAppeal"`
	RenewalMechanism string   `json:"renewalMechanism"`
}

// OperationalSOP 预热/当天/跟进三阶段清单
type OperationalSOP struct {
	PreEvent    []string `json:"preEvent"`
	DuringEvent []string `json:"duringEvent"`
	PostEvent   []string `json:"postEvent"`
}

type ReusableTemplates struct {
	PrivateMessageTemplate string `json:"privateMessageTemplate"`
}

// ActivityPlan 活动策划方案
type ActivityPlan struct {
	Theme               string            `json:"theme"`
	PersonaSummary      string            `json:"personaSummary"`
	SmartStrategy       string            `json:"smartStrategy"`
	MarketOpportunities []string          `json:"marketOpportunities"`
	SuccessProbability  string            `json:"successProbability"`
	FinancialAnalysis   FinancialAnalysis `json:"financialAnalysis"`
	ContentDesign       ContentDesign     `json:"contentDesign"`
	OperationalSOP      OperationalSOP    `json:"operationalSOP"`
	ReusableTemplates   ReusableTemplates `json:"reusableTemplates"`
}

// ActivityChatMessage 策划会话里的一条消息
type ActivityChatMessage struct {
	Role    string        `json:"role"` // user / model
	Content string        `json:"content"`
	Files   []string      `json:"files,omitempty"`
	Plan    *ActivityPlan `json:"plan,omitempty"`
}
