package model

import (
	"strings"

	"github.com/samber/lo"
)

// ProfilePatch 部分更新结构：nil 字段表示"不改动"。
// id 和 addDate 不可变，因此没有对应字段；边界层用 DisallowUnknownFields
// 拒绝未知字段，而不是静默吞掉。
type ProfilePatch struct {
	Name       *string       `json:"name,omitempty"`
	ClientType *ClientType   `json:"clientType,omitempty"`
	Status     *ClientStatus `json:"status,omitempty"`

	Age        *int    `json:"age,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	Occupation *string `json:"occupation,omitempty"`

	ChildName   *string `json:"childName,omitempty"`
	ChildAge    *int    `json:"childAge,omitempty"`
	ChildGender *string `json:"childGender,omitempty"`

	Address *string     `json:"address,omitempty"`
	Course  *CourseType `json:"course,omitempty"`

	CurrentPackage        *PackageLevel `json:"currentPackage,omitempty"`
	RemainingLessons      *int          `json:"remainingLessons,omitempty"`
	TrialRemainingLessons *int          `json:"trialRemainingLessons,omitempty"`
	OtherPackages         *string       `json:"otherPackages,omitempty"`
	WeeklyFrequency       *string       `json:"weeklyFrequency,omitempty"`

	StudentPersonality *[]string `json:"studentPersonality,omitempty"`
	LearningState      *[]string `json:"learningState,omitempty"`
	ParentFocus        *[]string `json:"parentFocus,omitempty"`

	OtherInfo *string `json:"otherInfo,omitempty"`
	// 历史日志的人工编辑入口，是唯一允许改写旧行的路径
	HistorySummary *string `json:"historySummary,omitempty"`

	ProfileScreenshots  *[]string                  `json:"profileScreenshots,omitempty"`
	PersonalityNotes    *string                    `json:"personalityNotes,omitempty"`
	PersonalityAnalysis *PersonalityAnalysisResult `json:"personalityAnalysis,omitempty"`
	FeedbackConfig      *FeedbackConfig            `json:"feedbackConfig,omitempty"`
}

// ApplyPatch 把 patch 浅合并进档案并返回新档案。
// 状态切换的补默认规则以合并前的 status 为"from"、合并后的为"to"：
//   - 切入正课且剩余正课为 0：补满标准包课时并重置档位为标准包
//   - 切入试听且剩余试听为 0：补 1 节试听
//
// 规则单向生效，只在零值边界上抬高课时，从不减少，切回去也不会回退。
func ApplyPatch(p ClientProfile, patch ProfilePatch) ClientProfile {
	from := p.Status

	setString(&p.Name, patch.Name)
	if patch.ClientType != nil {
		p.ClientType = *patch.ClientType
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Age != nil {
		p.Age = patch.Age
	}
	setString(&p.Gender, patch.Gender)
	setString(&p.Occupation, patch.Occupation)
	setString(&p.ChildName, patch.ChildName)
	if patch.ChildAge != nil {
		p.ChildAge = patch.ChildAge
	}
	setString(&p.ChildGender, patch.ChildGender)
	setString(&p.Address, patch.Address)
	if patch.Course != nil {
		p.Course = *patch.Course
	}
	if patch.CurrentPackage != nil {
		p.CurrentPackage = *patch.CurrentPackage
	}
	if patch.RemainingLessons != nil {
		p.RemainingLessons = *patch.RemainingLessons
	}
	if patch.TrialRemainingLessons != nil {
		p.TrialRemainingLessons = *patch.TrialRemainingLessons
	}
	setString(&p.OtherPackages, patch.OtherPackages)
	setString(&p.WeeklyFrequency, patch.WeeklyFrequency)
	if patch.StudentPersonality != nil {
		p.StudentPersonality = *patch.StudentPersonality
	}
	if patch.LearningState != nil {
		p.LearningState = *patch.LearningState
	}
	if patch.ParentFocus != nil {
		p.ParentFocus = *patch.ParentFocus
	}
	setString(&p.OtherInfo, patch.OtherInfo)
	setString(&p.HistorySummary, patch.HistorySummary)
	if patch.ProfileScreenshots != nil {
		p.ProfileScreenshots = *patch.ProfileScreenshots
	}
	setString(&p.PersonalityNotes, patch.PersonalityNotes)
	if patch.PersonalityAnalysis != nil {
		p.PersonalityAnalysis = patch.PersonalityAnalysis
	}
	if patch.FeedbackConfig != nil {
		p.FeedbackConfig = patch.FeedbackConfig
	}

	if patch.Status != nil && *patch.Status != from {
		applyStatusDefaults(&p)
	}
	return p
}

// applyStatusDefaults 零值边界上的单向补默认。
// 切入咨询/流失不做任何重置，保留课时现场。
func applyStatusDefaults(p *ClientProfile) {
	switch p.Status {
	case StatusRegular:
		if p.RemainingLessons == 0 {
			p.RemainingLessons = PackageData[PackageStandard].Lessons
			p.CurrentPackage = PackageStandard
		}
	case StatusTrial:
		if p.TrialRemainingLessons == 0 {
			p.TrialRemainingLessons = 1
		}
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// MergeSuggestedTags 把 AI 建议的标签并入三个标签集。
// 结果是保序并集：已有标签顺序不变，新标签按建议顺序追加，不产生重复。
// 幂等：同一建议合并两次与一次结果相同。
func MergeSuggestedTags(p ClientProfile, s ProfileUpdateSuggestion) ClientProfile {
	if len(s.LearningState) > 0 {
		p.LearningState = lo.Union(p.LearningState, s.LearningState)
	}
	if len(s.ParentFocus) > 0 {
		p.ParentFocus = lo.Union(p.ParentFocus, s.ParentFocus)
	}
	if len(s.StudentPersonality) > 0 {
		p.StudentPersonality = lo.Union(p.StudentPersonality, s.StudentPersonality)
	}
	return p
}

// AppendHistory 向历史日志追加一行。已有内容时用单个换行分隔，空行忽略。
func AppendHistory(p ClientProfile, line string) ClientProfile {
	line = strings.TrimSpace(line)
	if line == "" {
		return p
	}
	if p.HistorySummary == "" {
		p.HistorySummary = line
		return p
	}
	p.HistorySummary = p.HistorySummary + "\n" + line
	return p
}
