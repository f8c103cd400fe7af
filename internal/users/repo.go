package users

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/pagination"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID loads a user by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs loads the users matching the given ids, skipping misses.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []models.User
	if err := r.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FindByLogin resolves the login identifier as a username first, then as an
// email address.
func (r *Repository) FindByLogin(ctx context.Context, identifier string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", identifier).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Where("email = ?", identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether another account already owns the username.
func (r *Repository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username)
	if excludeID > 0 {
		query = query.Where("user_id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailTaken reports whether another account already owns the email.
func (r *Repository) EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	if email == "" {
		return false, nil
	}
	var count int64
	query := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("user_id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns users matching the filter, newest accounts first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.User, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if filter.ActiveOnly {
		query = query.Where("status = ?", enums.UserStatusActive)
	}
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.Q != nil && strings.TrimSpace(*filter.Q) != "" {
		pattern := "%" + strings.ToLower(strings.TrimSpace(*filter.Q)) + "%"
		query = query.Where(
			"(LOWER(username) LIKE ? OR LOWER(name) LIKE ? OR LOWER(email) LIKE ?)",
			pattern, pattern, pattern,
		)
	}

	page := pagination.Normalize(filter.Pagination)
	var users []models.User
	err := query.Order("user_id DESC").
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Count tallies accounts, optionally restricted to active ones, grouped by
// role for the dashboard summary.
func (r *Repository) Count(ctx context.Context, activeOnly bool) (*CountSummary, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})
	if activeOnly {
		query = query.Where("status = ?", enums.UserStatusActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	rows := []struct {
		Role  string
		Count int64
	}{}
	group := r.db.WithContext(ctx).Model(&models.User{}).
		Select("role, COUNT(user_id) AS count").
		Group("role")
	if activeOnly {
		group = group.Where("status = ?", enums.UserStatusActive)
	}
	if err := group.Scan(&rows).Error; err != nil {
		return nil, err
	}

	byRole := make(map[string]int64, len(rows))
	for _, row := range rows {
		byRole[strings.ToUpper(row.Role)] = row.Count
	}
	return &CountSummary{Total: total, ByRole: byRole}, nil
}

// Save persists field changes on an existing user.
func (r *Repository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
