package startups

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/arkadem/startup-board/database/models"
)

// ErrStartupNotFound is returned when no startup matches the lookup.
var ErrStartupNotFound = errors.New("startup not found")

// Repository owns all reads and writes of startup records.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new startup record.
func (r *Repository) Create(ctx context.Context, startup *models.Startup) error {
	return r.db.WithContext(ctx).Create(startup).Error
}

// GetByID looks a startup up by primary key.
func (r *Repository) GetByID(ctx context.Context, id uint) (*models.Startup, error) {
	var startup models.Startup
	err := r.db.WithContext(ctx).First(&startup, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStartupNotFound
		}
		return nil, err
	}
	return &startup, nil
}

// ListAll returns every startup in insertion order.
func (r *Repository) ListAll(ctx context.Context) ([]*models.Startup, error) {
	var startups []*models.Startup
	err := r.db.WithContext(ctx).Order("id asc").Find(&startups).Error
	return startups, err
}

// Search returns startups whose name or description contains query as a
// case-insensitive substring. lower(...) LIKE is used instead of ILIKE so
// the same statement works on SQLite and PostgreSQL.
func (r *Repository) Search(ctx context.Context, query string) ([]*models.Startup, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var startups []*models.Startup
	err := r.db.WithContext(ctx).
		Where("lower(name) LIKE ? OR lower(description) LIKE ?", pattern, pattern).
		Order("id asc").
		Find(&startups).Error
	return startups, err
}
