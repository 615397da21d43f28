package repositories

import (
	"github.com/tastebook/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	DeleteFollow(userID, followingID uint) error
	IsFollowing(userID, followingID uint) (bool, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowingFlags(userID uint, targetIDs []uint) (map[uint]bool, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// CreateFollow inserts a follow edge. The unique index on
// (user_id, following_id) is the duplicate guard; a second identical insert
// fails with gorm.ErrDuplicatedKey.
func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) DeleteFollow(userID, followingID uint) error {
	res := r.db.Where("user_id = ? AND following_id = ?", userID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresFollowRepository) IsFollowing(userID, followingID uint) (bool, error) {
	if userID == 0 {
		return false, nil
	}
	var count int64
	if err := r.db.Model(&models.Follow{}).Where("user_id = ? AND following_id = ?", userID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowing returns every author the user follows, ordered by follow id.
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("user_id = ?", userID),
	).Order("id").Find(&users).Error
	return users, err
}

// GetFollowingFlags reports, for each target id, whether the user follows it.
// An anonymous user (id 0) follows nobody.
func (r *PostgresFollowRepository) GetFollowingFlags(userID uint, targetIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if userID == 0 || len(targetIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND following_id IN ?", userID, targetIDs).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
