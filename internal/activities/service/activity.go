package service

import (
	"context"
	"errors"

	activityerrors "careconnect/internal/activities/errors"
	"careconnect/internal/activities/repository"
	"careconnect/internal/activities/validator"
	bookingsvc "careconnect/internal/bookings/service"
	usererrors "careconnect/internal/users/errors"
	"careconnect/pkg/config"
	apperrors "careconnect/pkg/errors"
	"careconnect/pkg/model"
	"careconnect/pkg/sanitizer"
)

// BookingLedger is the read-only view of confirmed bookings used to derive
// capacity figures and rosters.
type BookingLedger interface {
	CountConfirmedParticipants(ctx context.Context, activityID string) (int, error)
	CountConfirmedVolunteers(ctx context.Context, activityID string) (int, error)
	FindConfirmedByActivity(ctx context.Context, activityID string) ([]*model.Booking, error)
}

type UserDirectory interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*model.User, error)
}

type ActivityService interface {
	Create(ctx context.Context, activity *model.Activity) error
	List(ctx context.Context, limit int, offset int64, forUserID string) ([]*model.ActivitySummary, int64, error)
	GetDetail(ctx context.Context, id string) (*model.ActivityDetail, error)
}

type activityService struct {
	repo      repository.ActivityRepository
	ledger    BookingLedger
	users     UserDirectory
	validator *validator.ActivityValidator
	cfg       *config.Config
}

func NewActivityService(
	repo repository.ActivityRepository,
	ledger BookingLedger,
	users UserDirectory,
	activityValidator *validator.ActivityValidator,
	cfg *config.Config,
) ActivityService {
	return &activityService{
		repo:      repo,
		ledger:    ledger,
		users:     users,
		validator: activityValidator,
		cfg:       cfg,
	}
}

func (s *activityService) Create(ctx context.Context, activity *model.Activity) error {
	activity.ID = ""
	activity.Title = sanitizer.SanitizeText(activity.Title)
	activity.Description = sanitizer.SanitizeText(activity.Description)
	activity.Location = sanitizer.SanitizeText(activity.Location)
	activity.Requirements = sanitizer.SanitizeFlagMap(activity.Requirements)

	if err := s.validator.Validate(activity); err != nil {
		s.cfg.Log.Warn("Activity validation failed", "error", err)
		return apperrors.Validation("Invalid activity data", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, activity); err != nil {
		s.cfg.Log.Error("Failed to create activity", "error", err)
		return apperrors.Internal("Failed to create activity", err)
	}

	s.cfg.Log.Info("Activity created",
		"id", activity.ID,
		"title", activity.Title,
		"base_capacity", activity.BaseCapacity,
		"volunteer_slots", activity.VolunteerSlots,
	)
	return nil
}

// List returns activities with live capacity figures. When forUserID is set,
// activities the user's accessibility needs rule out are filtered from the
// page rather than shown as unbookable.
func (s *activityService) List(ctx context.Context, limit int, offset int64, forUserID string) ([]*model.ActivitySummary, int64, error) {
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var forUser *model.User
	if forUserID != "" {
		user, err := s.users.FindByID(ctx, forUserID)
		if err != nil {
			if errors.Is(err, usererrors.ErrNotFound) {
				return nil, 0, apperrors.NotFoundWithID("User", forUserID)
			}
			if errors.Is(err, usererrors.ErrInvalidID) {
				return nil, 0, apperrors.InvalidInput("Invalid user ID format")
			}
			return nil, 0, apperrors.Internal("Failed to retrieve user", err)
		}
		forUser = user
	}

	activities, total, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list activities", "error", err)
		return nil, 0, apperrors.Internal("Failed to list activities", err)
	}

	summaries := make([]*model.ActivitySummary, 0, len(activities))
	for _, activity := range activities {
		if forUser != nil && !bookingsvc.Compatible(forUser, activity) {
			continue
		}
		summary, err := s.summarize(ctx, activity)
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, total, nil
}

func (s *activityService) GetDetail(ctx context.Context, id string) (*model.ActivityDetail, error) {
	activity, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Activity", id)
		}
		if errors.Is(err, activityerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid activity ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve activity", err)
	}

	summary, err := s.summarize(ctx, activity)
	if err != nil {
		return nil, err
	}

	bookings, err := s.ledger.FindConfirmedByActivity(ctx, activity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		userIDs = append(userIDs, b.UserID)
	}
	attendees, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperrors.Internal("Failed to load attendees", err)
	}

	roster := make([]model.RosterEntry, 0, len(bookings))
	for _, b := range bookings {
		entry := model.RosterEntry{
			BookingID: b.ID,
			UserID:    b.UserID,
			UserRole:  b.UserRole,
			BookedAt:  b.CreatedAt,
		}
		if u, ok := attendees[b.UserID]; ok {
			entry.UserName = u.Name
		}
		roster = append(roster, entry)
	}

	return &model.ActivityDetail{
		ActivitySummary: *summary,
		Roster:          roster,
	}, nil
}

func (s *activityService) summarize(ctx context.Context, activity *model.Activity) (*model.ActivitySummary, error) {
	volunteers, err := s.ledger.CountConfirmedVolunteers(ctx, activity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to count volunteers", err)
	}
	participants, err := s.ledger.CountConfirmedParticipants(ctx, activity.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to count attendees", err)
	}

	effective := activity.EffectiveCapacity(volunteers)
	return &model.ActivitySummary{
		Activity:          *activity,
		EffectiveCap:      effective,
		ConfirmedCount:    participants,
		AvailableSlots:    max(0, effective-participants),
		ConfirmedVols:     volunteers,
		AvailableVolSlots: max(0, activity.VolunteerSlots-volunteers),
	}, nil
}
