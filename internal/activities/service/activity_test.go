package service

import (
	"context"
	"testing"
	"time"

	"careconnect/internal/activities/repository"
	usererrors "careconnect/internal/users/errors"
	"careconnect/pkg/config"
	apperrors "careconnect/pkg/errors"
	"careconnect/pkg/logger"
	"careconnect/pkg/model"
)

const (
	testActivityID = "507f191e810c19729de860ea"
	testUserID     = "507f1f77bcf86cd799439011"
)

type mockActivityRepo struct {
	createFunc   func(ctx context.Context, activity *model.Activity) error
	findByIDFunc func(ctx context.Context, id string) (*model.Activity, error)
	findAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error)
}

func (m *mockActivityRepo) Create(ctx context.Context, activity *model.Activity) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, activity)
	}
	activity.ID = testActivityID
	return nil
}

func (m *mockActivityRepo) FindByID(ctx context.Context, id string) (*model.Activity, error) {
	return m.findByIDFunc(ctx, id)
}

func (m *mockActivityRepo) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error) {
	return m.findAllFunc(ctx, limit, offset)
}

type mockLedger struct {
	participantsFunc func(ctx context.Context, activityID string) (int, error)
	volunteersFunc   func(ctx context.Context, activityID string) (int, error)
	byActivityFunc   func(ctx context.Context, activityID string) ([]*model.Booking, error)
}

func (m *mockLedger) CountConfirmedParticipants(ctx context.Context, activityID string) (int, error) {
	if m.participantsFunc != nil {
		return m.participantsFunc(ctx, activityID)
	}
	return 0, nil
}

func (m *mockLedger) CountConfirmedVolunteers(ctx context.Context, activityID string) (int, error) {
	if m.volunteersFunc != nil {
		return m.volunteersFunc(ctx, activityID)
	}
	return 0, nil
}

func (m *mockLedger) FindConfirmedByActivity(ctx context.Context, activityID string) ([]*model.Booking, error) {
	if m.byActivityFunc != nil {
		return m.byActivityFunc(ctx, activityID)
	}
	return nil, nil
}

type mockDirectory struct {
	findByIDFunc  func(ctx context.Context, id string) (*model.User, error)
	findByIDsFunc func(ctx context.Context, ids []string) (map[string]*model.User, error)
}

func (m *mockDirectory) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, usererrors.ErrNotFound
}

func (m *mockDirectory) FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return map[string]*model.User{}, nil
}

func newTestService(repo repository.ActivityRepository, ledger BookingLedger, users UserDirectory) *activityService {
	cfg := &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return &activityService{
		repo:   repo,
		ledger: ledger,
		users:  users,
		cfg:    cfg,
	}
}

func TestList_DerivesCapacityFigures(t *testing.T) {
	repo := &mockActivityRepo{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error) {
			return []*model.Activity{
				{ID: testActivityID, Title: "Art Workshop", BaseCapacity: 10, VolunteerSlots: 2},
			}, 1, nil
		},
	}
	ledger := &mockLedger{
		participantsFunc: func(ctx context.Context, activityID string) (int, error) { return 7, nil },
		volunteersFunc:   func(ctx context.Context, activityID string) (int, error) { return 1, nil },
	}
	svc := newTestService(repo, ledger, &mockDirectory{})

	summaries, total, err := svc.List(context.Background(), 10, 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 1 || len(summaries) != 1 {
		t.Fatalf("expected one activity, got %d (total %d)", len(summaries), total)
	}

	s := summaries[0]
	if s.EffectiveCap != 12 {
		t.Errorf("expected effective capacity 12, got %d", s.EffectiveCap)
	}
	if s.AvailableSlots != 5 {
		t.Errorf("expected 5 available slots, got %d", s.AvailableSlots)
	}
	if s.ConfirmedVols != 1 || s.AvailableVolSlots != 1 {
		t.Errorf("expected volunteer figures 1/1, got %d/%d", s.ConfirmedVols, s.AvailableVolSlots)
	}
}

func TestList_FiltersByAccessibility(t *testing.T) {
	repo := &mockActivityRepo{
		findAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Activity, int64, error) {
			return []*model.Activity{
				{ID: "a1", Title: "Pool Session", BaseCapacity: 5, Requirements: map[string]bool{"accessible": true}},
				{ID: "a2", Title: "Hill Walk", BaseCapacity: 5},
			}, 2, nil
		},
	}
	users := &mockDirectory{
		findByIDFunc: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{
				ID:           id,
				Role:         model.RoleParticipant,
				MedicalFlags: map[string]bool{"wheelchair": true},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLedger{}, users)

	summaries, _, err := svc.List(context.Background(), 10, 0, testUserID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected inaccessible activity to be filtered, got %d entries", len(summaries))
	}
	if summaries[0].Title != "Pool Session" {
		t.Errorf("expected the accessible activity, got %q", summaries[0].Title)
	}
}

func TestList_UnknownFilterUser(t *testing.T) {
	svc := newTestService(&mockActivityRepo{}, &mockLedger{}, &mockDirectory{})

	_, _, err := svc.List(context.Background(), 10, 0, testUserID)
	if err == nil {
		t.Fatal("expected an error")
	}
	if code := apperrors.AsAppError(err).Code; code != apperrors.CodeNotFound {
		t.Errorf("expected %s, got %s", apperrors.CodeNotFound, code)
	}
}

func TestGetDetail_BuildsRoster(t *testing.T) {
	bookedAt := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	repo := &mockActivityRepo{
		findByIDFunc: func(ctx context.Context, id string) (*model.Activity, error) {
			return &model.Activity{ID: id, Title: "Choir", BaseCapacity: 10}, nil
		},
	}
	ledger := &mockLedger{
		participantsFunc: func(ctx context.Context, activityID string) (int, error) { return 1, nil },
		byActivityFunc: func(ctx context.Context, activityID string) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: "b1", UserID: testUserID, ActivityID: activityID,
					Status: model.StatusConfirmed, UserRole: model.RoleParticipant, CreatedAt: bookedAt},
			}, nil
		},
	}
	users := &mockDirectory{
		findByIDsFunc: func(ctx context.Context, ids []string) (map[string]*model.User, error) {
			return map[string]*model.User{
				testUserID: {ID: testUserID, Name: "Dana"},
			}, nil
		},
	}
	svc := newTestService(repo, ledger, users)

	detail, err := svc.GetDetail(context.Background(), testActivityID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(detail.Roster) != 1 {
		t.Fatalf("expected 1 roster entry, got %d", len(detail.Roster))
	}
	entry := detail.Roster[0]
	if entry.UserName != "Dana" || entry.BookingID != "b1" || !entry.BookedAt.Equal(bookedAt) {
		t.Errorf("unexpected roster entry: %+v", entry)
	}
}
