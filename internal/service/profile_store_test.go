package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/leon37/EduConsult/internal/model"
	"github.com/leon37/EduConsult/internal/service"
)

// fakeKV 内存版键值存储，记录 Put 次数
type fakeKV struct {
	data map[string]string
	puts int
	fail bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeKV) Put(_ context.Context, key, value string) error {
	if f.fail {
		return errors.New("disk full")
	}
	f.puts++
	f.data[key] = value
	return nil
}

func newStore(t *testing.T, kv *fakeKV) *service.ProfileStore {
	t.Helper()
	s := service.NewProfileStore(kv)
	s.Load(context.Background())
	return s
}

func TestLoadFallsBackToSeedWhenEmpty(t *testing.T) {
	t.Parallel()

	s := newStore(t, newFakeKV())
	all := s.List("", "")
	if len(all) != len(model.SeedProfiles()) {
		t.Fatalf("expected seed profiles, got %d", len(all))
	}
}

func TestLoadFallsBackToSeedWhenCorrupt(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	kv.data[model.ProfilesKey] = "{not json"
	s := newStore(t, kv)
	if got := len(s.List("", "")); got != len(model.SeedProfiles()) {
		t.Fatalf("expected seed profiles after corrupt blob, got %d", got)
	}
}

func TestLoadUsesStoredProfiles(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	stored := []model.ClientProfile{{ID: "p1", Name: "测试客户", Status: model.StatusRegular}}
	raw, _ := json.Marshal(stored)
	kv.data[model.ProfilesKey] = string(raw)

	s := newStore(t, kv)
	p, ok := s.Get("p1")
	if !ok || p.Name != "测试客户" {
		t.Fatalf("expected stored profile, got %+v ok=%v", p, ok)
	}
}

func TestCreatePrependsAndPersists(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	s := newStore(t, kv)

	p, err := s.Create(context.Background())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected generated id")
	}
	if p.Status != model.StatusRegular || p.RemainingLessons != 16 {
		t.Fatalf("template defaults wrong: %+v", p)
	}
	if kv.puts != 1 {
		t.Fatalf("expected 1 persist, got %d", kv.puts)
	}
	// 新档案排在正课页签里
	regulars := s.List(model.StatusRegular, "")
	found := false
	for _, q := range regulars {
		if q.ID == p.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("created profile missing from list")
	}
}

func TestDeletePersistsImmediately(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	s := newStore(t, kv)
	target := s.List("", "")[0]

	if err := s.Delete(context.Background(), target.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if kv.puts != 1 {
		t.Fatalf("expected immediate persist, puts = %d", kv.puts)
	}
	if _, ok := s.Get(target.ID); ok {
		t.Fatalf("profile still present after delete")
	}
	// 落库内容里也不能再有
	var persisted []model.ClientProfile
	if err := json.Unmarshal([]byte(kv.data[model.ProfilesKey]), &persisted); err != nil {
		t.Fatalf("unmarshal persisted blob: %v", err)
	}
	for _, q := range persisted {
		if q.ID == target.ID {
			t.Fatalf("deleted profile still in persisted blob")
		}
	}

	if err := s.Delete(context.Background(), "no-such-id"); !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("Delete(missing) error = %v, want ErrProfileNotFound", err)
	}
}

func TestUpdateMissingProfile(t *testing.T) {
	t.Parallel()

	s := newStore(t, newFakeKV())
	_, err := s.Update(context.Background(), "no-such-id", model.ProfilePatch{})
	if !errors.Is(err, service.ErrProfileNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrProfileNotFound", err)
	}
}

func TestListSortingPerStatus(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	profiles := []model.ClientProfile{
		{ID: "r1", Name: "正课多", Status: model.StatusRegular, RemainingLessons: 20},
		{ID: "r2", Name: "正课少", Status: model.StatusRegular, RemainingLessons: 2},
		{ID: "t1", Name: "试听多", Status: model.StatusTrial, TrialRemainingLessons: 3},
		{ID: "t2", Name: "试听少", Status: model.StatusTrial, TrialRemainingLessons: 1},
		{ID: "l1", Name: "老咨询", Status: model.StatusLead, AddDate: 100},
		{ID: "l2", Name: "新咨询", Status: model.StatusLead, AddDate: 200},
	}
	raw, _ := json.Marshal(profiles)
	kv.data[model.ProfilesKey] = string(raw)
	s := newStore(t, kv)

	regulars := s.List(model.StatusRegular, "")
	if regulars[0].ID != "r2" {
		t.Fatalf("regular sort: want r2 first, got %s", regulars[0].ID)
	}
	trials := s.List(model.StatusTrial, "")
	if trials[0].ID != "t2" {
		t.Fatalf("trial sort: want t2 first, got %s", trials[0].ID)
	}
	leads := s.List(model.StatusLead, "")
	if leads[0].ID != "l2" {
		t.Fatalf("lead sort: want l2 first (newest), got %s", leads[0].ID)
	}
}

func TestListFuzzySearch(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	profiles := []model.ClientProfile{
		{ID: "a", Name: "陈妈妈", ChildName: "陈小宝", Status: model.StatusRegular, Course: model.CoursePiano},
		{ID: "b", Name: "李先生", Status: model.StatusRegular, Course: model.CourseGuitar},
	}
	raw, _ := json.Marshal(profiles)
	kv.data[model.ProfilesKey] = string(raw)
	s := newStore(t, kv)

	if got := s.List("", "小宝"); len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("search by child name = %+v", got)
	}
	if got := s.List("", "吉他"); len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("search by course = %+v", got)
	}
	if got := s.List("", "不存在"); len(got) != 0 {
		t.Fatalf("search miss = %+v", got)
	}
}

func TestMutatePersistFailureSurfacesError(t *testing.T) {
	t.Parallel()

	kv := newFakeKV()
	s := newStore(t, kv)
	target := s.List("", "")[0]

	kv.fail = true
	_, err := s.Update(context.Background(), target.ID, model.ProfilePatch{})
	if err == nil {
		t.Fatalf("expected persist error")
	}
}
