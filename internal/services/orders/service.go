package orders

import (
	"context"
	"errors"
	"time"

	"golden-fork/internal/logger"
	"golden-fork/internal/models"
)

// Source fetches a user's full order collection
type Source interface {
	ListOrdersByUser(ctx context.Context, userID string) ([]models.RawOrder, error)
}

// UserFinder resolves a session mobile to a user
type UserFinder interface {
	FindUserByMobile(ctx context.Context, mobile string) (*models.User, error)
}

// Service lists a user's orders for the history screen
type Service struct {
	source Source
	users  UserFinder
	logger *logger.Logger
	now    func() time.Time
}

func NewService(source Source, users UserFinder, log *logger.Logger) *Service {
	return &Service{source: source, users: users, logger: log, now: time.Now}
}

// List fetches every order of the user behind mobile and filters them
// locally. Store failures come back as a RemoteError.
func (s *Service) List(ctx context.Context, mobile string, criteria models.FilterCriteria) ([]models.OrderView, error) {
	if mobile == "" {
		return nil, models.ErrNotLoggedIn
	}

	user, err := s.users.FindUserByMobile(ctx, mobile)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, models.NewRemoteError("find user", err)
	}

	raw, err := s.source.ListOrdersByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error("orders_fetch_failed", "Failed to fetch orders", "", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, models.NewRemoteError("list orders", err)
	}

	records := Query(Normalize(raw), criteria, s.now())
	views := make([]models.OrderView, 0, len(records))
	for _, r := range records {
		views = append(views, View(r))
	}

	s.logger.Debug("orders_listed", "Orders listed", "", map[string]interface{}{
		"user_id": user.ID,
		"fetched": len(raw),
		"matched": len(views),
	})
	return views, nil
}
