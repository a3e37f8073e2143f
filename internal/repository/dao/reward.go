package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPoints struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false"`
	Points    int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (UserPoints) TableName() string {
	return "user_points"
}

type RewardTier struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"type:varchar(64);not null;uniqueIndex"`
	PointsRequired int64  `gorm:"not null;index"`
}

type UserReward struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uni_user_rewards_user_tier,priority:1"`
	TierID    uint      `gorm:"not null;uniqueIndex:uni_user_rewards_user_tier,priority:2"`
	AwardedAt time.Time `gorm:"not null"`
}

type RewardDAO struct {
	db *gorm.DB
}

func NewRewardDAO(db *gorm.DB) *RewardDAO {
	return &RewardDAO{
		db: db,
	}
}

// AddPoints upserts the user's balance and returns the new total.
func (d *RewardDAO) AddPoints(ctx context.Context, userID uint, delta int64) (int64, error) {
	row := UserPoints{UserID: userID, Points: delta}

	result := d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"points":     gorm.Expr("user_points.points + ?", delta),
			"updated_at": gorm.Expr("NOW()"),
		}),
	}).Create(&row)
	if result.Error != nil {
		return 0, result.Error
	}

	var current UserPoints
	if result := d.db.WithContext(ctx).First(&current, "user_id = ?", userID); result.Error != nil {
		return 0, result.Error
	}

	return current.Points, nil
}

func (d *RewardDAO) FindTiers(ctx context.Context) ([]RewardTier, error) {
	var tiers []RewardTier

	if result := d.db.WithContext(ctx).Order("points_required").Find(&tiers); result.Error != nil {
		return nil, result.Error
	}

	return tiers, nil
}

func (d *RewardDAO) InsertTier(ctx context.Context, tier RewardTier) (RewardTier, error) {
	if result := d.db.WithContext(ctx).Create(&tier); result.Error != nil {
		return RewardTier{}, result.Error
	}

	return tier, nil
}

// Grant reports false when the user already holds the tier.
func (d *RewardDAO) Grant(ctx context.Context, reward UserReward) (bool, error) {
	result := d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&reward)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
