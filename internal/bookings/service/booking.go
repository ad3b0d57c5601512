package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	activityerrors "careconnect/internal/activities/errors"
	bookingserrors "careconnect/internal/bookings/errors"
	"careconnect/internal/bookings/repository"
	"careconnect/internal/bookings/validator"
	"careconnect/internal/payments"
	usererrors "careconnect/internal/users/errors"
	"careconnect/pkg/config"
	apperrors "careconnect/pkg/errors"
	"careconnect/pkg/events"
	"careconnect/pkg/keylock"
	"careconnect/pkg/model"
)

// UserReader and ActivityReader are the read-only views the engine needs
// from the other domains.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

type ActivityReader interface {
	FindByID(ctx context.Context, id string) (*model.Activity, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID string) (*model.Booking, error)
	TokenBalance(ctx context.Context, userID string) (*model.TokenBalance, error)
}

type bookingService struct {
	repo       repository.BookingRepository
	users      UserReader
	activities ActivityReader
	gate       payments.Gate
	publisher  events.Publisher
	locks      *keylock.Registry
	validator  *validator.BookingValidator
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	users UserReader,
	activities ActivityReader,
	gate payments.Gate,
	publisher events.Publisher,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		users:      users,
		activities: activities,
		gate:       gate,
		publisher:  publisher,
		locks:      keylock.NewRegistry(),
		validator:  bookingValidator,
		cfg:        cfg,
	}
}

// Create runs the admission gates in their fixed order and commits on
// success. The capacity read and the insert happen inside one Mongo
// transaction while the per-user and per-activity locks are held, so two
// racing requests for the last open slot resolve to exactly one winner.
func (s *bookingService) Create(ctx context.Context, req *model.BookingRequest) (*model.Booking, error) {
	if err := s.validator.Validate(req); err != nil {
		s.cfg.Log.Warn("Booking request validation failed", "error", err)
		return nil, apperrors.Validation("Invalid booking request", map[string]any{"error": err.Error()})
	}

	user, err := s.loadUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	activity, err := s.loadActivity(ctx, req.ActivityID)
	if err != nil {
		return nil, err
	}

	policy := policyFor(user)

	// The payment gate call is the only slow, external step. It runs before
	// the critical section so one user's charge does not serialize every
	// booking on the activity. A cheap unlocked capacity precheck keeps the
	// gate order observable: a full activity reports ACTIVITY_FULL before
	// anyone is charged. A charge that then loses the capacity race is
	// reversed by the payment collaborator, not here.
	paymentConfirmed := false
	if !policy.unlimited && user.MembershipTier == model.TierAdhoc {
		if err := s.precheckCapacity(ctx, user, activity); err != nil {
			return nil, err
		}
		charged, err := s.charge(ctx, user, activity)
		if err != nil {
			return nil, err
		}
		paymentConfirmed = charged
	}

	// Lock ordering is fixed (user before activity) so concurrent requests
	// can never deadlock.
	releaseUser := s.locks.Lock("user:" + user.ID)
	defer releaseUser()
	releaseActivity := s.locks.Lock("activity:" + activity.ID)
	defer releaseActivity()

	booking := &model.Booking{
		UserID:     user.ID,
		ActivityID: activity.ID,
		UserRole:   user.Role,
		Status:     model.StatusConfirmed,
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		return s.decideAndCommit(sessCtx, user, activity, policy, paymentConfirmed, booking)
	})
	if err != nil {
		if apperrors.IsRejection(err) {
			s.cfg.Log.Info("Booking rejected",
				"user_id", user.ID,
				"activity_id", activity.ID,
				"code", apperrors.AsAppError(err).Code,
			)
			return nil, err
		}
		if apperrors.IsAppError(err) {
			return nil, err
		}
		s.cfg.Log.Error("Failed to commit booking", "error", err)
		return nil, apperrors.Unavailable("booking store")
	}

	s.cfg.Log.Info("Booking confirmed",
		"id", booking.ID,
		"user_id", user.ID,
		"activity_id", activity.ID,
		"user_role", user.Role,
	)

	if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "id", booking.ID, "error", err)
	}

	return booking, nil
}

// decideAndCommit evaluates all four gates against counts read inside the
// transaction, then inserts. Gate order is fixed and short-circuits.
func (s *bookingService) decideAndCommit(
	ctx context.Context,
	user *model.User,
	activity *model.Activity,
	policy tokenPolicy,
	paymentConfirmed bool,
	booking *model.Booking,
) error {
	if _, err := s.repo.FindConfirmed(ctx, user.ID, activity.ID); err == nil {
		return apperrors.Rejection(apperrors.CodeAlreadyBooked, "You have already booked this activity")
	} else if !errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.Internal("Failed to check existing booking", err)
	}

	volunteers, err := s.repo.CountConfirmedVolunteers(ctx, activity.ID)
	if err != nil {
		return apperrors.Internal("Failed to count volunteers", err)
	}

	// Gate 1: capacity. Volunteers expand capacity rather than consume it,
	// so they pass through to their own allotment gate below.
	if user.Role != model.RoleVolunteer {
		participants, err := s.repo.CountConfirmedParticipants(ctx, activity.ID)
		if err != nil {
			return apperrors.Internal("Failed to count attendees", err)
		}
		if !hasOpenSlot(activity, participants, volunteers) {
			return apperrors.Rejection(apperrors.CodeActivityFull, fmt.Sprintf(
				"Activity at capacity (%d/%d attendees)",
				participants, activity.EffectiveCapacity(volunteers),
			))
		}
	}

	// Gate 2: entitlement. Ad-hoc admission rides on the payment outcome
	// alone; weekly tiers consume tokens counted from confirmed history.
	if !policy.unlimited {
		if user.MembershipTier == model.TierAdhoc {
			if !paymentConfirmed {
				return apperrors.Rejection(apperrors.CodePaymentRequired,
					"Ad-hoc members must complete payment before booking")
			}
		} else {
			from, to := weekWindow(time.Now())
			used, err := s.repo.CountConfirmedByUserBetween(ctx, user.ID, from, to)
			if err != nil {
				return apperrors.Internal("Failed to count weekly bookings", err)
			}
			if used >= policy.limit {
				return apperrors.Rejection(apperrors.CodeTokenLimitReached, fmt.Sprintf(
					"Weekly token limit reached (%d/%d tokens used this week)",
					used, policy.limit,
				))
			}
		}
	}

	// Gate 3: accessibility.
	if !Compatible(user, activity) {
		return apperrors.Rejection(apperrors.CodeAccessibilityMismatch,
			"This activity does not meet your accessibility requirements. Please contact staff for assistance.")
	}

	// Gate 4: volunteer allotment.
	if user.Role == model.RoleVolunteer && !hasVolunteerSlot(activity, volunteers) {
		return apperrors.Rejection(apperrors.CodeVolunteerSlotsFull, fmt.Sprintf(
			"All volunteer slots are filled (%d/%d)",
			volunteers, activity.VolunteerSlots,
		))
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingserrors.ErrDuplicate) {
			return apperrors.Rejection(apperrors.CodeAlreadyBooked, "You have already booked this activity")
		}
		return apperrors.Internal("Failed to create booking", err)
	}

	return nil
}

// Cancel flips a booking to Cancelled under the same activity lock used by
// Create, so the freed slot is never observed half-released. Cancelling an
// unknown or already-cancelled booking is NOT_FOUND, not a no-op.
func (s *bookingService) Cancel(ctx context.Context, bookingID string) (*model.Booking, error) {
	if bookingID == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	releaseUser := s.locks.Lock("user:" + existing.UserID)
	defer releaseUser()
	releaseActivity := s.locks.Lock("activity:" + existing.ActivityID)
	defer releaseActivity()

	cancelled, err := s.repo.CancelConfirmed(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", bookingID, "error", err)
		return nil, apperrors.Unavailable("booking store")
	}

	s.cfg.Log.Info("Booking cancelled",
		"id", cancelled.ID,
		"user_id", cancelled.UserID,
		"activity_id", cancelled.ActivityID,
		"user_role", cancelled.UserRole,
	)

	if err := s.publisher.PublishBookingCancelled(ctx, cancelled); err != nil {
		s.cfg.Log.Warn("Failed to publish booking event", "id", cancelled.ID, "error", err)
	}

	return cancelled, nil
}

func (s *bookingService) loadUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}
	return user, nil
}

func (s *bookingService) loadActivity(ctx context.Context, id string) (*model.Activity, error) {
	activity, err := s.activities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, activityerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Activity", id)
		}
		if errors.Is(err, activityerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid activity ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve activity", err)
	}
	return activity, nil
}

// precheckCapacity is an advisory read outside the critical section; the
// authoritative check re-runs inside the transaction.
func (s *bookingService) precheckCapacity(ctx context.Context, user *model.User, activity *model.Activity) error {
	if user.Role == model.RoleVolunteer {
		return nil
	}
	volunteers, err := s.repo.CountConfirmedVolunteers(ctx, activity.ID)
	if err != nil {
		return apperrors.Internal("Failed to count volunteers", err)
	}
	participants, err := s.repo.CountConfirmedParticipants(ctx, activity.ID)
	if err != nil {
		return apperrors.Internal("Failed to count attendees", err)
	}
	if !hasOpenSlot(activity, participants, volunteers) {
		return apperrors.Rejection(apperrors.CodeActivityFull, fmt.Sprintf(
			"Activity at capacity (%d/%d attendees)",
			participants, activity.EffectiveCapacity(volunteers),
		))
	}
	return nil
}

// charge returns (true, nil) when the gateway confirms payment, (false, nil)
// never: a decline is reported as PAYMENT_REQUIRED and a gateway outage as
// SERVICE_UNAVAILABLE, keeping the two failure classes apart.
func (s *bookingService) charge(ctx context.Context, user *model.User, activity *model.Activity) (bool, error) {
	err := s.gate.Charge(ctx, user.ID, activity.ID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, payments.ErrDeclined) {
		return false, apperrors.Rejection(apperrors.CodePaymentRequired,
			"Ad-hoc members must complete payment before booking")
	}
	s.cfg.Log.Error("Payment gateway call failed",
		"user_id", user.ID,
		"activity_id", activity.ID,
		"error", err,
	)
	return false, apperrors.Unavailable("payment gateway")
}
