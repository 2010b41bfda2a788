package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/errs"
	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// ProfileRepository defines the interface for profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id uint) (*models.Profile, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, page models.Page) ([]models.Profile, error)
	Search(ctx context.Context, query string) ([]models.Profile, error)
	Update(ctx context.Context, profile *models.Profile, columns ...string) error
	SetFlag(ctx context.Context, id uint, flag ProfileFlag, value bool) error
	Delete(ctx context.Context, id uint) (bool, error)
}

// ProfileFlag names one of the independent boolean columns of a profile.
type ProfileFlag string

const (
	FlagActive   ProfileFlag = "is_active"
	FlagVerified ProfileFlag = "is_verified"
)

// GormProfileRepository implements ProfileRepository with GORM
type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
	return errs.FromDB("create", "profile", err)
}

func (r *GormProfileRepository) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, errs.FromDB("load", "profile", err)
	}
	return &profile, nil
}

func (r *GormProfileRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errs.FromDB("load", "profile", err)
	}
	return count > 0, nil
}

func (r *GormProfileRepository) List(ctx context.Context, page models.Page) ([]models.Profile, error) {
	var profiles []models.Profile
	q := paginate(r.db.WithContext(ctx).Order("id ASC"), page)
	if err := q.Find(&profiles).Error; err != nil {
		return nil, errs.FromDB("list", "profiles", err)
	}
	return profiles, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches usernames containing query, case-insensitively. LIKE
// wildcards in query match literally.
func (r *GormProfileRepository) Search(ctx context.Context, query string) ([]models.Profile, error) {
	var profiles []models.Profile
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	err := r.db.WithContext(ctx).
		Where(`LOWER(username) LIKE ? ESCAPE '\'`, pattern).
		Order("username ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, errs.FromDB("search", "profiles", err)
	}
	return profiles, nil
}

// Update writes the named columns of the profile, or every column when none
// are named. Columns left out keep whatever another writer stored.
func (r *GormProfileRepository) Update(ctx context.Context, profile *models.Profile, columns ...string) error {
	db := r.db.WithContext(ctx).Omit(clause.Associations)
	var err error
	if len(columns) == 0 {
		err = db.Save(profile).Error
	} else {
		err = db.Model(profile).Select(columns).Updates(profile).Error
	}
	return errs.FromDB("update", "profile", err)
}

func (r *GormProfileRepository) SetFlag(ctx context.Context, id uint, flag ProfileFlag, value bool) error {
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Update(string(flag), value)
	if res.Error != nil {
		return errs.FromDB("update", "profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NotFound("profile")
	}
	return nil
}

// Delete removes the profile and everything it owns. Run it inside a
// transaction. It reports whether the profile existed.
func (r *GormProfileRepository) Delete(ctx context.Context, id uint) (bool, error) {
	db := r.db.WithContext(ctx)
	ownPosts := db.Model(&models.Post{}).Select("id").Where("profile_id = ?", id)

	steps := []struct {
		entity string
		run    func() error
	}{
		{"likes", func() error {
			return db.Where("profile_id = ? OR post_id IN (?)", id, ownPosts).Delete(&models.Like{}).Error
		}},
		{"comments", func() error {
			return db.Where("post_id IN (?)", ownPosts).Delete(&models.Comment{}).Error
		}},
		{"post tags", func() error {
			return db.Where("post_id IN (?)", ownPosts).Delete(&models.PostTagging{}).Error
		}},
		{"posts", func() error {
			return db.Where("profile_id = ?", id).Delete(&models.Post{}).Error
		}},
		{"follow edges", func() error {
			return db.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return false, errs.FromDB("delete", step.entity, err)
		}
	}

	res := db.Delete(&models.Profile{}, id)
	if res.Error != nil {
		return false, errs.FromDB("delete", "profile", res.Error)
	}
	return res.RowsAffected > 0, nil
}

var _ ProfileRepository = (*GormProfileRepository)(nil)
