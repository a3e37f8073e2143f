package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTemplateNotFound   = errors.New("recurring template not found")
	ErrTemplateNameExists = errors.New("recurring template name already exists")
)

type RecurringTemplate struct {
	ID                  uint            `gorm:"primaryKey"`
	Name                string          `gorm:"type:varchar(100);not null;uniqueIndex:uni_recurring_templates_name"`
	Active              bool            `gorm:"not null;default:true"`
	FrequencyValue      int             `gorm:"not null"`
	FrequencyUnit       string          `gorm:"type:varchar(16);not null"`
	TicketPrice         decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	DurationValue       int             `gorm:"not null"`
	DurationUnit        string          `gorm:"type:varchar(16);not null"`
	WinnerCount         int             `gorm:"not null"`
	WinnersDistribution datatypes.JSON  `gorm:"type:jsonb;not null"`
	MaxTicketsPerUser   *int            `gorm:"default:null"`
	PaymentReceiverID   int64           `gorm:"not null"`
	LastRunAt           *time.Time      `gorm:"default:null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

type TemplateDAO struct {
	db *gorm.DB
}

func NewTemplateDAO(db *gorm.DB) *TemplateDAO {
	return &TemplateDAO{
		db: db,
	}
}

func (d *TemplateDAO) Insert(ctx context.Context, template RecurringTemplate) (RecurringTemplate, error) {
	result := d.db.WithContext(ctx).Create(&template)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_recurring_templates_name") {
			return RecurringTemplate{}, ErrTemplateNameExists
		}

		return RecurringTemplate{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) FindByID(ctx context.Context, id uint) (RecurringTemplate, error) {
	var template RecurringTemplate

	result := d.db.WithContext(ctx).First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RecurringTemplate{}, ErrTemplateNotFound
		}

		return RecurringTemplate{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) FindAll(ctx context.Context, activeOnly bool) ([]RecurringTemplate, error) {
	var templates []RecurringTemplate

	query := d.db.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	if result := query.Find(&templates); result.Error != nil {
		return nil, result.Error
	}

	return templates, nil
}

func (d *TemplateDAO) Update(ctx context.Context, template RecurringTemplate) (RecurringTemplate, error) {
	existing, err := d.FindByID(ctx, template.ID)
	if err != nil {
		return RecurringTemplate{}, err
	}
	template.CreatedAt = existing.CreatedAt

	result := d.db.WithContext(ctx).Save(&template)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_recurring_templates_name") {
			return RecurringTemplate{}, ErrTemplateNameExists
		}

		return RecurringTemplate{}, result.Error
	}

	return template, nil
}

func (d *TemplateDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&RecurringTemplate{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}

func (d *TemplateDAO) UpdateLastRun(ctx context.Context, id uint, at time.Time) error {
	result := d.db.WithContext(ctx).Model(&RecurringTemplate{}).Where("id = ?", id).Update("last_run_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}

	return nil
}
