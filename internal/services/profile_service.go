package services

import (
	"context"

	"github.com/anonto42/heritage-feed/backend/internal/cache"
	"github.com/anonto42/heritage-feed/backend/internal/models"
	"github.com/anonto42/heritage-feed/backend/internal/repositories"
	"github.com/anonto42/heritage-feed/backend/pkg/logger"
)

// ProfileService manages profiles and their status flags.
type ProfileService interface {
	Create(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error)
	Get(ctx context.Context, id uint) (*models.Profile, error)
	List(ctx context.Context, page models.Page) ([]models.Profile, error)
	Search(ctx context.Context, query string) ([]models.Profile, error)
	Update(ctx context.Context, id uint, req *models.UpdateProfileRequest) (*models.Profile, error)
	Delete(ctx context.Context, id uint) error
	Activate(ctx context.Context, id uint) (*models.Profile, error)
	Deactivate(ctx context.Context, id uint) (*models.Profile, error)
	Verify(ctx context.Context, id uint) (*models.Profile, error)
	Deverify(ctx context.Context, id uint) (*models.Profile, error)
}

type profileService struct {
	store  *repositories.Store
	counts cache.CounterCache
}

func NewProfileService(store *repositories.Store, counts cache.CounterCache) ProfileService {
	return &profileService{store: store, counts: counts}
}

func (s *profileService) Create(ctx context.Context, req *models.CreateProfileRequest) (*models.Profile, error) {
	profile := &models.Profile{
		Username:      req.Username,
		Country:       req.Country,
		Facebook:      req.Facebook,
		Twitter:       req.Twitter,
		Google:        req.Google,
		RememberToken: req.RememberToken,
		IsActive:      true,
	}
	if err := s.store.Profiles().Create(ctx, profile); err != nil {
		return nil, err
	}

	l := logger.Ctx(ctx)
	l.Info().Uint(logger.FieldProfileID, profile.ID).Msg("profile created")
	return profile, nil
}

func (s *profileService) Get(ctx context.Context, id uint) (*models.Profile, error) {
	return s.store.Profiles().GetByID(ctx, id)
}

func (s *profileService) List(ctx context.Context, page models.Page) ([]models.Profile, error) {
	return s.store.Profiles().List(ctx, page)
}

func (s *profileService) Search(ctx context.Context, query string) ([]models.Profile, error) {
	return s.store.Profiles().Search(ctx, query)
}

func (s *profileService) Update(ctx context.Context, id uint, req *models.UpdateProfileRequest) (*models.Profile, error) {
	var profile *models.Profile
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		profile, err = tx.Profiles().GetByID(ctx, id)
		if err != nil {
			return err
		}

		var columns []string
		if req.Username != nil {
			profile.Username = *req.Username
			columns = append(columns, "username")
		}
		if req.Country != nil {
			profile.Country = *req.Country
			columns = append(columns, "country")
		}
		if req.Facebook != nil {
			profile.Facebook = req.Facebook
			columns = append(columns, "facebook")
		}
		if req.Twitter != nil {
			profile.Twitter = req.Twitter
			columns = append(columns, "twitter")
		}
		if req.Google != nil {
			profile.Google = req.Google
			columns = append(columns, "google")
		}
		if req.RememberToken != nil {
			profile.RememberToken = *req.RememberToken
			columns = append(columns, "remember_token")
		}
		if len(columns) == 0 {
			return nil
		}

		// Only the named columns are written. Status flags belong to setFlag.
		if err := tx.Profiles().Update(ctx, profile, columns...); err != nil {
			return err
		}
		profile, err = tx.Profiles().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// Delete removes the profile with its posts, likes and follow edges. Unknown
// ids are a no-op.
func (s *profileService) Delete(ctx context.Context, id uint) error {
	l := logger.Ctx(ctx)
	var peers []uint
	var deleted bool
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		followers, err := tx.Follows().Followers(ctx, id, models.Page{})
		if err != nil {
			return err
		}
		following, err := tx.Follows().FollowingIDs(ctx, id)
		if err != nil {
			return err
		}
		for _, p := range followers {
			peers = append(peers, p.ID)
		}
		peers = append(peers, following...)

		deleted, err = tx.Profiles().Delete(ctx, id)
		return err
	})
	if err != nil {
		l.Error().Err(err).Uint(logger.FieldProfileID, id).Msg("failed to delete profile")
		return err
	}
	if !deleted {
		return nil
	}

	// Posts are gone with their likes, so their like counters are left to expire.
	keys := []string{cache.FollowersCountKey(id), cache.FollowingCountKey(id)}
	for _, peer := range peers {
		keys = append(keys, cache.FollowersCountKey(peer), cache.FollowingCountKey(peer))
	}
	invalidate(ctx, s.counts, keys...)

	l.Info().Uint(logger.FieldProfileID, id).Msg("profile deleted")
	return nil
}

func (s *profileService) Activate(ctx context.Context, id uint) (*models.Profile, error) {
	return s.setFlag(ctx, id, repositories.FlagActive, true)
}

func (s *profileService) Deactivate(ctx context.Context, id uint) (*models.Profile, error) {
	return s.setFlag(ctx, id, repositories.FlagActive, false)
}

func (s *profileService) Verify(ctx context.Context, id uint) (*models.Profile, error) {
	return s.setFlag(ctx, id, repositories.FlagVerified, true)
}

func (s *profileService) Deverify(ctx context.Context, id uint) (*models.Profile, error) {
	return s.setFlag(ctx, id, repositories.FlagVerified, false)
}

// setFlag writes one flag and leaves the other untouched.
func (s *profileService) setFlag(ctx context.Context, id uint, flag repositories.ProfileFlag, value bool) (*models.Profile, error) {
	var profile *models.Profile
	err := s.store.Transaction(ctx, func(tx *repositories.Store) error {
		if err := tx.Profiles().SetFlag(ctx, id, flag, value); err != nil {
			return err
		}
		var err error
		profile, err = tx.Profiles().GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return profile, nil
}
