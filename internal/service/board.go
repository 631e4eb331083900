package service

import (
	"context"
	"fmt"
	"time"

	contracts "salesboard/contracts/mq"
	"salesboard/internal/model"
	"salesboard/internal/repository"
	"salesboard/internal/stats"
	"salesboard/internal/week"
	"salesboard/pkg/metrics"

	"go.uber.org/zap"
)

type projectStore interface {
	Insert(ctx context.Context, ev *model.ProjectEvent) (int64, error)
	ListLive(ctx context.Context) ([]model.ProjectEvent, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type eventPublisher interface {
	Publish(routingKey string, payload any) error
}

type broadcaster interface {
	BroadcastJSON(v any)
}

// Snapshot is the full board state pushed to websocket clients after every
// change and served on the board read endpoint. It is recomputed from the
// live event set each time, never patched incrementally.
type Snapshot struct {
	WeekDisplay    string                   `json:"week_display"`
	Completed      int                      `json:"completed"`
	Target         int                      `json:"target"`
	Percent        int                      `json:"percent"`
	Events         []model.ProjectEvent     `json:"events"`
	Leaderboard    []stats.LeaderboardEntry `json:"leaderboard"`
	LocationTotals []stats.LocationTotal    `json:"location_totals"`
	Popularity     []stats.TypeCount        `json:"popularity"`
	Streak         model.StreakState        `json:"streak"`
}

// BoardService is the write path of the live board. Logging a project is
// the one durable write; everything after it (trackers, achievements,
// milestone, events, broadcast) is side-state that must not undo a logged
// project, so those failures are logged and swallowed.
type BoardService struct {
	projects     projectStore
	streaks      *StreakTracker
	bests        *PersonalBestTracker
	achievements *AchievementEvaluator
	milestones   *MilestoneTrigger
	settings     settingsStore
	publisher    eventPublisher
	hub          broadcaster
	now          func() time.Time
	logger       *zap.Logger
}

func NewBoardService(
	projects projectStore,
	streaks *StreakTracker,
	bests *PersonalBestTracker,
	achievements *AchievementEvaluator,
	milestones *MilestoneTrigger,
	settings settingsStore,
	publisher eventPublisher,
	hub broadcaster,
	logger *zap.Logger,
) *BoardService {
	return &BoardService{
		projects:     projects,
		streaks:      streaks,
		bests:        bests,
		achievements: achievements,
		milestones:   milestones,
		settings:     settings,
		publisher:    publisher,
		hub:          hub,
		now:          time.Now,
		logger:       logger,
	}
}

// LogProject appends one event to the live board. All three ids must come
// from the static catalogs; anything else is rejected before any write.
// The streak update runs before return, so a read right after a successful
// log already sees the new streak.
func (s *BoardService) LogProject(ctx context.Context, salespersonID, projectTypeID, locationID string) (*model.ProjectEvent, error) {
	sp, ok := model.SalespersonByID(salespersonID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown salesperson %q", ErrValidation, salespersonID)
	}
	pt, ok := model.ProjectTypeByID(projectTypeID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown project type %q", ErrValidation, projectTypeID)
	}
	loc, ok := model.LocationByID(locationID)
	if !ok {
		return nil, fmt.Errorf("%w: unknown location %q", ErrValidation, locationID)
	}

	ev := &model.ProjectEvent{
		SalespersonID:       sp.ID,
		SalespersonName:     sp.Name,
		SalespersonInitials: sp.Initials,
		ProjectTypeID:       pt.ID,
		ProjectName:         pt.Name,
		ProjectIcon:         pt.Icon,
		Location:            loc.ID,
	}
	if _, err := s.projects.Insert(ctx, ev); err != nil {
		return nil, err
	}
	metrics.RecordProjectLogged(loc.ID, sp.ID)

	s.publish(contracts.RoutingProjectLogged, contracts.ProjectLoggedPayload{
		ProjectID:       ev.ID,
		SalespersonID:   sp.ID,
		SalespersonName: sp.Name,
		ProjectTypeID:   pt.ID,
		ProjectName:     pt.Name,
		Location:        loc.ID,
		LoggedAt:        ev.LoggedAt,
	})

	streak, err := s.streaks.RecordActivity(ctx, s.now())
	if err != nil {
		s.logger.Error("Streak update failed", zap.Error(err))
	}

	events, err := s.projects.ListLive(ctx)
	if err != nil {
		// The event itself is durable; the views will catch up on the
		// next successful read.
		s.logger.Error("Failed to reload board after log", zap.Error(err))
		return ev, nil
	}
	clean := s.sanitized(events)

	goal, err := s.settings.GetInt(ctx, repository.SettingWeeklyGoal, model.DefaultWeeklyGoal)
	if err != nil {
		s.logger.Error("Failed to read weekly goal", zap.Error(err))
		goal = model.DefaultWeeklyGoal
	}

	s.trackPersonalBest(ctx, sp, clean)
	s.evaluateAchievements(ctx, clean, goal)
	s.checkMilestone(ctx, len(clean), goal)
	s.broadcast(clean, goal, streak)

	return ev, nil
}

// Board returns the current snapshot.
func (s *BoardService) Board(ctx context.Context) (Snapshot, error) {
	events, err := s.projects.ListLive(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	clean := s.sanitized(events)

	goal, err := s.settings.GetInt(ctx, repository.SettingWeeklyGoal, model.DefaultWeeklyGoal)
	if err != nil {
		return Snapshot{}, err
	}

	streak, err := s.streaks.Current(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	return s.buildSnapshot(clean, goal, streak), nil
}

// Goal returns the current weekly goal, seeding the default on first read.
func (s *BoardService) Goal(ctx context.Context) (int, error) {
	return s.settings.GetInt(ctx, repository.SettingWeeklyGoal, model.DefaultWeeklyGoal)
}

// UpdateGoal replaces the weekly goal. The new goal applies to the live
// week immediately; already-fired milestones are not re-evaluated.
func (s *BoardService) UpdateGoal(ctx context.Context, goal int) error {
	if goal <= 0 {
		return fmt.Errorf("%w: goal must be positive, got %d", ErrValidation, goal)
	}
	if err := s.settings.SetInt(ctx, repository.SettingWeeklyGoal, goal); err != nil {
		return err
	}
	s.rebroadcast(ctx)
	return nil
}

// ResetBoard hard-deletes every live event. Admin escape hatch only; it
// makes no durability promise and skips the archive machinery entirely.
func (s *BoardService) ResetBoard(ctx context.Context) (int64, error) {
	n, err := s.projects.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.rebroadcast(ctx)
	return n, nil
}

// Rebroadcast recomputes and pushes the snapshot, for callers that changed
// board state outside this service (rollover, admin paths).
func (s *BoardService) Rebroadcast(ctx context.Context) {
	s.rebroadcast(ctx)
}

func (s *BoardService) trackPersonalBest(ctx context.Context, sp model.Salesperson, events []model.ProjectEvent) {
	bounds := week.BoundsFor(s.now())
	weekCount := 0
	for _, ev := range events {
		if ev.SalespersonID == sp.ID && bounds.Contains(ev.LoggedAt) {
			weekCount++
		}
	}

	newBest, previous, err := s.bests.RecordActivity(ctx, sp, weekCount, s.now())
	if err != nil {
		s.logger.Error("Personal best update failed",
			zap.String("salesperson_id", sp.ID),
			zap.Error(err),
		)
		return
	}
	if newBest {
		s.publish(contracts.RoutingPersonalBestSet, contracts.PersonalBestSetPayload{
			SalespersonID:   sp.ID,
			SalespersonName: sp.Name,
			WeeklyBest:      weekCount,
			PreviousBest:    previous,
		})
	}
}

func (s *BoardService) evaluateAchievements(ctx context.Context, events []model.ProjectEvent, goal int) {
	inst := stats.InstantStats(events, model.Salespersons, model.ProjectTypes)
	newly, err := s.achievements.Evaluate(ctx, inst, goal)
	if err != nil {
		s.logger.Error("Achievement evaluation failed", zap.Error(err))
	}
	for _, rule := range newly {
		s.publish(contracts.RoutingAchievementUnlocked, contracts.AchievementUnlockedPayload{
			RuleID:     rule.ID,
			Title:      rule.Title,
			UnlockedAt: s.now(),
		})
	}
}

func (s *BoardService) checkMilestone(ctx context.Context, completed, goal int) {
	milestone, fired, err := s.milestones.Check(ctx, completed, goal)
	if err != nil {
		s.logger.Error("Milestone check failed", zap.Error(err))
		return
	}
	if fired {
		s.publish(contracts.RoutingMilestoneReached, contracts.MilestoneReachedPayload{
			Milestone: milestone,
			Completed: completed,
			Target:    goal,
		})
	}
}

func (s *BoardService) sanitized(events []model.ProjectEvent) []model.ProjectEvent {
	clean, dropped := stats.Sanitize(events)
	if dropped > 0 {
		metrics.RecordDroppedEvents(dropped)
		s.logger.Warn("Dropped malformed live events", zap.Int("dropped", dropped))
	}
	return clean
}

func (s *BoardService) buildSnapshot(events []model.ProjectEvent, goal int, streak model.StreakState) Snapshot {
	percent := 0
	if goal > 0 {
		percent = len(events) * 100 / goal
	}
	return Snapshot{
		WeekDisplay:    week.BoundsFor(s.now()).Display(),
		Completed:      len(events),
		Target:         goal,
		Percent:        percent,
		Events:         events,
		Leaderboard:    stats.Leaderboard(events, model.Salespersons),
		LocationTotals: stats.LocationTotals(events, model.Locations),
		Popularity:     stats.ProjectTypePopularity(events, model.ProjectTypes),
		Streak:         streak,
	}
}

func (s *BoardService) broadcast(events []model.ProjectEvent, goal int, streak model.StreakState) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastJSON(s.buildSnapshot(events, goal, streak))
}

func (s *BoardService) rebroadcast(ctx context.Context) {
	if s.hub == nil {
		return
	}
	snap, err := s.Board(ctx)
	if err != nil {
		s.logger.Error("Failed to rebuild snapshot for broadcast", zap.Error(err))
		return
	}
	s.hub.BroadcastJSON(snap)
}

func (s *BoardService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.logger.Error("Failed to publish event",
			zap.String("routing_key", routingKey),
			zap.Error(err),
		)
	}
}
