package service

import (
	"context"
	"errors"
	"time"

	"salesboard/internal/model"
)

var errStore = errors.New("store down")

type fakeStreakStore struct {
	st      model.StreakState
	getErr  error
	saveErr error
	saves   int
}

func (f *fakeStreakStore) Get(ctx context.Context) (model.StreakState, error) {
	return f.st, f.getErr
}

func (f *fakeStreakStore) Save(ctx context.Context, st model.StreakState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.st = st
	f.saves++
	return nil
}

type fakeBestStore struct {
	bests map[string]model.PersonalBest
}

func newFakeBestStore() *fakeBestStore {
	return &fakeBestStore{bests: make(map[string]model.PersonalBest)}
}

func (f *fakeBestStore) Get(ctx context.Context, salespersonID string) (*model.PersonalBest, error) {
	pb, ok := f.bests[salespersonID]
	if !ok {
		return nil, nil
	}
	return &pb, nil
}

func (f *fakeBestStore) Upsert(ctx context.Context, pb model.PersonalBest) error {
	f.bests[pb.SalespersonID] = pb
	return nil
}

type fakeSettings struct {
	values map[string]int
	getErr error
	setErr error
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]int)}
}

func (f *fakeSettings) GetInt(ctx context.Context, key string, def int) (int, error) {
	if f.getErr != nil {
		return 0, f.getErr
	}
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	f.values[key] = def
	return def, nil
}

func (f *fakeSettings) SetInt(ctx context.Context, key string, value int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

type fakeAchievementStore struct {
	unlocked map[string]time.Time

	// listStale makes ListUnlocked return nothing, simulating a racing
	// evaluator that inserted after our list query.
	listStale bool
}

func newFakeAchievementStore() *fakeAchievementStore {
	return &fakeAchievementStore{unlocked: make(map[string]time.Time)}
}

func (f *fakeAchievementStore) InsertIfAbsent(ctx context.Context, ruleID string) (bool, error) {
	if _, ok := f.unlocked[ruleID]; ok {
		return false, nil
	}
	f.unlocked[ruleID] = time.Now()
	return true, nil
}

func (f *fakeAchievementStore) ListUnlocked(ctx context.Context) ([]model.Achievement, error) {
	if f.listStale {
		return nil, nil
	}
	out := make([]model.Achievement, 0, len(f.unlocked))
	for id, at := range f.unlocked {
		out = append(out, model.Achievement{RuleID: id, UnlockedAt: at})
	}
	return out, nil
}

type fakeGuard struct {
	deny  map[string]bool
	calls []string
}

func (f *fakeGuard) AcquireOnce(ctx context.Context, scope, key string) bool {
	k := scope + ":" + key
	f.calls = append(f.calls, k)
	return !f.deny[k]
}

type fakeProjects struct {
	events      []model.ProjectEvent
	nextID      int64
	listErr     error
	insertErr   error
	monthCounts map[string]int
	deleted     int64
}

func (f *fakeProjects) Insert(ctx context.Context, ev *model.ProjectEvent) (int64, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.nextID++
	ev.ID = f.nextID
	if ev.LoggedAt.IsZero() {
		ev.LoggedAt = time.Now()
	}
	f.events = append(f.events, *ev)
	return ev.ID, nil
}

func (f *fakeProjects) ListLive(ctx context.Context) ([]model.ProjectEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.ProjectEvent, len(f.events))
	copy(out, f.events)
	return out, nil
}

func (f *fakeProjects) CountBySalespersonBetween(ctx context.Context, from, to time.Time) (map[string]int, error) {
	return f.monthCounts, nil
}

func (f *fakeProjects) DeleteAll(ctx context.Context) (int64, error) {
	f.deleted = int64(len(f.events))
	f.events = nil
	return f.deleted, nil
}

type fakeCommitter struct {
	err      error
	rec      model.WeeklyRecord
	ids      []int64
	calls    int
	archived int64
}

func (f *fakeCommitter) CommitWeek(ctx context.Context, rec *model.WeeklyRecord, snapshotIDs []int64) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	rec.ID = 1
	rec.LoggedAt = time.Now()
	f.rec = *rec
	f.ids = append([]int64(nil), snapshotIDs...)
	f.archived = int64(len(snapshotIDs))
	return f.archived, nil
}

type fakeChampions struct {
	ch  *model.MonthlyChampion
	err error
}

func (f *fakeChampions) Upsert(ctx context.Context, ch model.MonthlyChampion) error {
	if f.err != nil {
		return f.err
	}
	f.ch = &ch
	return nil
}

type fakeBackup struct {
	label  string
	events []model.ProjectEvent
	err    error
	calls  int
}

func (f *fakeBackup) BackupWeek(ctx context.Context, weekLabel string, events []model.ProjectEvent) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.label = weekLabel
	f.events = events
	return nil
}

type published struct {
	key     string
	payload any
}

type fakePublisher struct {
	msgs []published
}

func (f *fakePublisher) Publish(routingKey string, payload any) error {
	f.msgs = append(f.msgs, published{key: routingKey, payload: payload})
	return nil
}

func (f *fakePublisher) keys() []string {
	out := make([]string, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, m.key)
	}
	return out
}

type fakeHub struct {
	broadcasts []any
}

func (f *fakeHub) BroadcastJSON(v any) {
	f.broadcasts = append(f.broadcasts, v)
}
