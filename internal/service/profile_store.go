package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/repository"
)

var ErrProfileNotFound = errors.New("客户档案不存在")

// ProfileStore 客户档案的内存主副本，所有读写经过它，每次变更整体落库。
// 档案总量是单个机构的客户规模，整块序列化的开销可以接受。
type ProfileStore struct {
	mu       sync.Mutex
	repo     repository.KVRepo
	profiles []model.ClientProfile
}

func NewProfileStore(repo repository.KVRepo) *ProfileStore {
	return &ProfileStore{repo: repo}
}

// Load 启动时调用一次。存储缺失或数据损坏都不报错，回退到种子数据并记日志，
// 保证服务总能起来。
func (s *ProfileStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, found, err := s.repo.Get(ctx, model.ProfilesKey)
	if err != nil {
		slog.Warn("读取客户档案失败，使用种子数据", "error", err)
		s.profiles = model.SeedProfiles()
		return
	}
	if !found {
		slog.Info("客户档案为空，使用种子数据初始化")
		s.profiles = model.SeedProfiles()
		return
	}
	var profiles []model.ClientProfile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		slog.Warn("客户档案数据损坏，使用种子数据", "error", err)
		s.profiles = model.SeedProfiles()
		return
	}
	s.profiles = profiles
}

func (s *ProfileStore) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(s.profiles)
	if err != nil {
		return fmt.Errorf("序列化客户档案失败: %w", err)
	}
	if err := s.repo.Put(ctx, model.ProfilesKey, string(data)); err != nil {
		return fmt.Errorf("保存客户档案失败: %w", err)
	}
	return nil
}

// Save 把当前内存列表整体落库。常规变更路径已经随提交落库，
// 这里是给前端"保存"动作留的显式入口。
func (s *ProfileStore) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// List 按状态页签过滤并排序，search 非空时做模糊匹配。
// 正课按剩余课时升序(催续费)，试听按剩余试听升序(催转化)，其余按添加时间倒序。
func (s *ProfileStore) List(status model.ClientStatus, search string) []model.ClientProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.ClientProfile
	for _, p := range s.profiles {
		if status != "" && p.Status != status {
			continue
		}
		if search != "" && !matchProfile(p, search) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Status == model.StatusRegular && b.Status == model.StatusRegular:
			return a.RemainingLessons < b.RemainingLessons
		case a.Status == model.StatusTrial && b.Status == model.StatusTrial:
			return a.TrialRemainingLessons < b.TrialRemainingLessons
		case a.Status == b.Status:
			return a.AddDate > b.AddDate
		default:
			return statusRank(a.Status) < statusRank(b.Status)
		}
	})
	return out
}

func statusRank(s model.ClientStatus) int {
	for i, v := range model.StatusOrder {
		if v == s {
			return i
		}
	}
	return len(model.StatusOrder)
}

func matchProfile(p model.ClientProfile, search string) bool {
	target := strings.ToLower(search)
	for _, field := range []string{p.Name, p.ChildName, string(p.Course)} {
		if fuzzy.Match(target, strings.ToLower(field)) {
			return true
		}
	}
	return false
}

// Get 返回档案副本
func (s *ProfileStore) Get(id string) (model.ClientProfile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return model.ClientProfile{}, false
}

// Create 用默认模板新建档案，插到列表头部
func (s *ProfileStore) Create(ctx context.Context) (model.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.NewProfileTemplate(time.Now().UnixMilli())
	id, err := uuid.NewV7()
	if err != nil {
		return model.ClientProfile{}, fmt.Errorf("生成档案ID失败: %w", err)
	}
	p.ID = id.String()
	s.profiles = append([]model.ClientProfile{p}, s.profiles...)
	if err := s.persistLocked(ctx); err != nil {
		return model.ClientProfile{}, err
	}
	return p, nil
}

// Update 对指定档案应用局部更新，整体作为一次提交落库
func (s *ProfileStore) Update(ctx context.Context, id string, patch model.ProfilePatch) (model.ClientProfile, error) {
	return s.Mutate(ctx, id, func(p *model.ClientProfile) {
		*p = model.ApplyPatch(*p, patch)
	})
}

// Mutate 在锁内对单个档案执行一次复合变更并落库。
// 一次网关结果产生的多处字段改动(历史+标签)必须通过同一次 Mutate 提交。
func (s *ProfileStore) Mutate(ctx context.Context, id string, fn func(p *model.ClientProfile)) (model.ClientProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID != id {
			continue
		}
		fn(&s.profiles[i])
		if err := s.persistLocked(ctx); err != nil {
			return model.ClientProfile{}, err
		}
		return s.profiles[i], nil
	}
	return model.ClientProfile{}, ErrProfileNotFound
}

// Delete 删除档案并立即落库
func (s *ProfileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.profiles {
		if s.profiles[i].ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return s.persistLocked(ctx)
		}
	}
	return ErrProfileNotFound
}
