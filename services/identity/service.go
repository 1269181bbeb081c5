package identity

import (
	"context"

	userRepo "lingkod/database/repository/user"
	"lingkod/models"
	"lingkod/utils"

	"go.uber.org/zap"
)

// DefaultIdentityService resolves identities from the users collection.
type DefaultIdentityService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultIdentityService) Resolve(ctx context.Context, userID string) models.Identity {
	if userID == "" {
		return models.Identity{}
	}

	user, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		utils.GetLogger().Debug("identity: lookup failed, leaving denormalized fields empty",
			zap.String("userID", userID), zap.Error(err))
		return models.Identity{}
	}

	return models.Identity{
		DisplayName: user.DisplayName(),
		BarangayID:  user.BarangayID,
	}
}
