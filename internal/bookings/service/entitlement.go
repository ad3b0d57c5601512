package service

import (
	"context"
	"errors"
	"time"

	usererrors "careconnect/internal/users/errors"
	apperrors "careconnect/pkg/errors"
	"careconnect/pkg/model"
)

// The accounting week runs Monday 00:00 UTC to the next Monday 00:00 UTC.
// The same window is used when counting at commit time and when reporting a
// balance, so a booking can never straddle two views of the same week.
func weekWindow(asOf time.Time) (time.Time, time.Time) {
	asOf = asOf.UTC()
	daysSinceMonday := (int(asOf.Weekday()) + 6) % 7
	start := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -daysSinceMonday)
	return start, start.AddDate(0, 0, 7)
}

// tokenPolicy is the entitlement strategy for one request, resolved once
// from the requester's tier and role.
type tokenPolicy struct {
	unlimited bool
	limit     int
}

func policyFor(user *model.User) tokenPolicy {
	// Volunteers never consume tokens regardless of their tier on file.
	if user.Role == model.RoleVolunteer {
		return tokenPolicy{unlimited: true}
	}
	limit, unlimited := user.MembershipTier.TokenLimit()
	return tokenPolicy{unlimited: unlimited, limit: limit}
}

// remainingTokens floors at zero; the ledger never reports a negative
// balance even if historical data overshoots a tier limit.
func (p tokenPolicy) remainingTokens(used int) int {
	if p.unlimited {
		return 0
	}
	return max(0, p.limit-used)
}

func (s *bookingService) TokenBalance(ctx context.Context, userID string) (*model.TokenBalance, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("User ID cannot be empty")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, usererrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", userID)
		}
		if errors.Is(err, usererrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid user ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve user", err)
	}

	from, to := weekWindow(time.Now())
	used, err := s.repo.CountConfirmedByUserBetween(ctx, userID, from, to)
	if err != nil {
		return nil, apperrors.Internal("Failed to count weekly bookings", err)
	}

	policy := policyFor(user)
	return &model.TokenBalance{
		UserID:    user.ID,
		Tier:      user.MembershipTier,
		Role:      user.Role,
		Unlimited: policy.unlimited,
		Limit:     policy.limit,
		Used:      used,
		Remaining: policy.remainingTokens(used),
	}, nil
}
