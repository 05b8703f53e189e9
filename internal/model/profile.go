package model

// ClientType 客户身份：家长代孩子学，或成人自己学
type ClientType string

const (
	ClientTypeParent       ClientType = "家长"
	ClientTypeAdultStudent ClientType = "成人学员"
)

// ClientStatus 学员状态分类，互斥，决定列表分组和排序规则
type ClientStatus string

const (
	StatusRegular ClientStatus = "正课学员"
	StatusTrial   ClientStatus = "试听学员"
	StatusLead    ClientStatus = "咨询学员"
	StatusChurned ClientStatus = "流失学员"
)

// StatusOrder 列表分组的展示顺序
var StatusOrder = []ClientStatus{StatusRegular, StatusTrial, StatusLead, StatusChurned}

type CourseType string

const (
	CoursePiano         CourseType = "钢琴"
	CourseVocal         CourseType = "声乐"
	CourseGuitar        CourseType = "吉他"
	CourseUkulele       CourseType = "尤克里里"
	CoursePianoPractice CourseType = "钢琴陪练"
	CoursePianoSinging  CourseType = "钢琴弹唱"
)

var CourseOptions = []CourseType{
	CoursePiano, CourseVocal, CourseGuitar,
	CourseUkulele, CoursePianoPractice, CoursePianoSinging,
}

// PackageLevel 课包档位，取值与门店价目表一致
type PackageLevel string

const (
	PackageStandard PackageLevel = "标准包 (16课时)"
	PackagePremium  PackageLevel = "优享包 (26+2课时)"
	PackageAdvanced PackageLevel = "进阶包 (30+2课时)"
	PackageSupreme  PackageLevel = "尊享包 (42+6课时)"
)

// PackageDetails 单个课包的价目信息
type PackageDetails struct {
	Name        string  `json:"name"`
	Lessons     int     `json:"lessons"`
	Bonus       int     `json:"bonus"`
	PriceOnSite float64 `json:"priceOnSite"`
	UnitPrice   float64 `json:"unitPrice"`
}

// PackageData 价目表，同时作为 Prompt 的价格参考上下文
var PackageData = map[PackageLevel]PackageDetails{
	PackageStandard: {Name: "标准包", Lessons: 16, Bonus: 0, PriceOnSite: 2860, UnitPrice: 178},
	PackagePremium:  {Name: "优享包", Lessons: 26, Bonus: 2, PriceOnSite: 4800, UnitPrice: 171.4},
	PackageAdvanced: {Name: "进阶包", Lessons: 30, Bonus: 2, PriceOnSite: 5200, UnitPrice: 165},
	PackageSupreme:  {Name: "尊享包", Lessons: 42, Bonus: 6, PriceOnSite: 7200, UnitPrice: 150},
}

// TargetAudienceMode 课后反馈的目标受众模式
type TargetAudienceMode string

const (
	AudienceChild TargetAudienceMode = "儿童模式 (向家长汇报)"
	AudienceTeen  TargetAudienceMode = "青少年模式 (成熟鼓励)"
	AudienceAdult TargetAudienceMode = "成人模式 (专业直接)"
)

// InputPerspective 沟通分析的输入视角：家长发来的消息，还是老师的提问/草稿
type InputPerspective string

const (
	PerspectiveParent  InputPerspective = "PARENT"
	PerspectiveTeacher InputPerspective = "TEACHER"
)

// PerformanceMetric 课堂表现维度。Options 非空时 Value 必须取自 Options。
type PerformanceMetric struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Value   string   `json:"value"`
	Options []string `json:"options,omitempty"`
}

// ValueAllowed 校验 Value 是否落在评级选项内（无选项时视为自由填写）
func (m PerformanceMetric) ValueAllowed() bool {
	if len(m.Options) == 0 {
		return true
	}
	for _, opt := range m.Options {
		if opt == m.Value {
			return true
		}
	}
	return false
}

// FeedbackConfig 反馈生成器的持久化偏好，保存时整体覆盖
type FeedbackConfig struct {
	TargetMode               TargetAudienceMode  `json:"targetMode,omitempty"`
	PreviousFeedbackTemplate string              `json:"previousFeedbackTemplate,omitempty"`
	CustomMetrics            []PerformanceMetric `json:"customMetrics,omitempty"`
}

// ClientProfile 学员档案，系统的核心实体。
// JSON 字段名与持久化的档案 blob 保持一致（camelCase），不要改动。
type ClientProfile struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	ClientType ClientType   `json:"clientType"`
	Status     ClientStatus `json:"status"`

	// 人口属性：空值表示"未知"而非零
	Age        *int   `json:"age,omitempty"`
	Gender     string `json:"gender,omitempty"`
	Occupation string `json:"occupation,omitempty"`

	// 孩子信息，仅家长档案有意义
	ChildName   string `json:"childName,omitempty"`
	ChildAge    *int   `json:"childAge,omitempty"`
	ChildGender string `json:"childGender,omitempty"`

	Address string     `json:"address"`
	Course  CourseType `json:"course"`
	AddDate int64      `json:"addDate"` // 建档时间戳(ms)，不可变，咨询/流失分组的排序键

	// 商务状态
	CurrentPackage        PackageLevel `json:"currentPackage"`
	RemainingLessons      int          `json:"remainingLessons"`                // 仅正课状态有意义
	TrialRemainingLessons int          `json:"trialRemainingLessons,omitempty"` // 仅试听状态有意义
	OtherPackages         string       `json:"otherPackages,omitempty"`
	WeeklyFrequency       string       `json:"weeklyFrequency,omitempty"`

	// 标签集：语义上是集合（无重复），展示顺序 = 插入顺序
	StudentPersonality []string `json:"studentPersonality"`
	LearningState      []string `json:"learningState"`
	ParentFocus        []string `json:"parentFocus"`

	OtherInfo string `json:"otherInfo"`

	// 只追加的历史日志，按行分隔，除人工直接编辑外任何路径不得改写旧行
	HistorySummary string `json:"historySummary"`

	// 媒体与深度分析
	ProfileScreenshots  []string                   `json:"profileScreenshots,omitempty"`
	PersonalityNotes    string                     `json:"personalityNotes,omitempty"`
	PersonalityAnalysis *PersonalityAnalysisResult `json:"personalityAnalysis,omitempty"`

	FeedbackConfig *FeedbackConfig `json:"feedbackConfig,omitempty"`
}

// IsAdultSubject 反馈/画像的主体是否是学员本人。
// 家长档案的主体永远是孩子，跟家长自己的年龄无关。
func (p ClientProfile) IsAdultSubject() bool {
	return p.ClientType == ClientTypeAdultStudent
}

// RenewalAlert 续费预警：正课剩余不足 4 节
func (p ClientProfile) RenewalAlert() bool {
	return p.Status == StatusRegular && p.RemainingLessons < 4
}

// NewProfileTemplate 新建档案的默认形状：正课/标准包/满课时，空标签与历史
func NewProfileTemplate(now int64) ClientProfile {
	childAge := 6
	return ClientProfile{
		Name:               "新学员",
		ClientType:         ClientTypeParent,
		Status:             StatusRegular,
		ChildAge:           &childAge,
		Course:             CoursePiano,
		CurrentPackage:     PackageStandard,
		RemainingLessons:   PackageData[PackageStandard].Lessons,
		WeeklyFrequency:    "1",
		StudentPersonality: []string{},
		LearningState:      []string{},
		ParentFocus:        []string{},
		AddDate:            now,
	}
}
