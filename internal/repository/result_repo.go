package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/academic-voice-hub/avh-go-api/internal/models"
)

// ResultFilter narrows result queries. Empty fields are ignored and the
// active ones are AND-combined, mirroring the in-memory analytics filter.
type ResultFilter struct {
	StudentID    string
	Subject      string
	AcademicYear string
	Semester     string
}

// ResultRepository provides access to result records. Listing always
// returns insertion order so reports and narration read results back in
// the order teachers entered them.
type ResultRepository interface {
	Create(ctx context.Context, result *models.Result) error
	GetByID(ctx context.Context, id string) (models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ResultFilter) ([]models.Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository constructs a result repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *resultRepository) GetByID(ctx context.Context, id string) (models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return models.Result{}, err
	}

	return result, nil
}

func (r *resultRepository) Update(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Save(result).Error
}

// Delete removes the record if present and reports whether a row was
// deleted. Absent ids are not an error.
func (r *resultRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Result{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *resultRepository) List(ctx context.Context, filter ResultFilter) ([]models.Result, error) {
	query := r.db.WithContext(ctx).Model(&models.Result{})

	if filter.StudentID != "" {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.AcademicYear != "" {
		query = query.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Semester != "" {
		query = query.Where("semester = ?", filter.Semester)
	}

	var results []models.Result
	if err := query.Order("created_at ASC, id ASC").Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
