package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/heritage-feed/backend/internal/models"
)

// Store hands out repositories bound to one *gorm.DB, which is either the
// connection pool or an open transaction.
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store on top of the connection pool.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn inside a database transaction. The transaction is
// committed when fn returns nil and rolled back on error or panic.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) Profiles() ProfileRepository { return NewGormProfileRepository(s.db) }
func (s *Store) Follows() FollowRepository   { return NewGormFollowRepository(s.db) }
func (s *Store) Posts() PostRepository       { return NewGormPostRepository(s.db) }
func (s *Store) Tags() TagRepository         { return NewGormTagRepository(s.db) }
func (s *Store) Comments() CommentRepository { return NewGormCommentRepository(s.db) }
func (s *Store) Likes() LikeRepository       { return NewGormLikeRepository(s.db) }

// newestFirst orders posts by timestamp, ties broken by id, both descending.
var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Table: "posts", Name: "timestamp"}, Desc: true},
	{Column: clause.Column{Table: "posts", Name: "id"}, Desc: true},
}}

// paginate applies the page bounds. Offset is only honoured with a limit.
func paginate(q *gorm.DB, page models.Page) *gorm.DB {
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
		if page.Offset > 0 {
			q = q.Offset(page.Offset)
		}
	}
	return q
}
