package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/users"
	pkgauth "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/auth"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db/models"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/security"
)

const (
	incorrectCredentialsMessage = "Incorrect username or password"
	inactiveUserMessage         = "Inactive user"
)

// Service covers authentication, profile management, and admin account
// administration.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Me(ctx context.Context, userID int64) (*users.UserDTO, error)
	UpdateMe(ctx context.Context, userID int64, req UpdateProfileRequest) (*users.UserDTO, error)

	RegisterClient(ctx context.Context, req RegisterClientRequest) (*RegisterResponse, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*RegisterResponse, error)

	AdminCreateStaff(ctx context.Context, adminID int64, req AdminCreateUserRequest) (*RegisterResponse, error)
	AdminUpdateUser(ctx context.Context, adminID, targetID int64, req AdminUpdateUserRequest) (*users.UserDTO, error)
	ListUsers(ctx context.Context, filter users.ListFilter) ([]users.UserDTO, error)
	CountUsers(ctx context.Context, activeOnly bool) (*users.CountSummary, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// userRepository is the slice of users.Repository the auth flows need.
type userRepository interface {
	Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByLogin(ctx context.Context, identifier string) (*models.User, error)
	UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	List(ctx context.Context, filter users.ListFilter) ([]models.User, error)
	Count(ctx context.Context, activeOnly bool) (*users.CountSummary, error)
	Save(ctx context.Context, user *models.User) error
}

// verificationConsumer claims a single-use email verification token inside
// the registration transaction.
type verificationConsumer interface {
	ConsumeVerificationToken(ctx context.Context, tx *gorm.DB, token string) (string, error)
}

// ServiceParams bundles the dependencies required to build the auth service.
// UserRepoFactory must return a repository bound to the given transaction,
// or the root repository when tx is nil.
type ServiceParams struct {
	TxRunner        txRunner
	UserRepoFactory func(tx *gorm.DB) userRepository
	Verifications   verificationConsumer
	JWTConfig       config.JWTConfig
	PasswordConfig  config.PasswordConfig
	AdminConfig     config.AdminConfig
}

type service struct {
	tx          txRunner
	userRepo    func(tx *gorm.DB) userRepository
	verifier    verificationConsumer
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	adminCfg    config.AdminConfig
}

// NewService constructs the auth service.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.UserRepoFactory == nil {
		return nil, fmt.Errorf("user repository factory required")
	}
	if params.Verifications == nil {
		return nil, fmt.Errorf("verification consumer required")
	}
	return &service{
		tx:          params.TxRunner,
		userRepo:    params.UserRepoFactory,
		verifier:    params.Verifications,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		adminCfg:    params.AdminConfig,
	}, nil
}

// UserRepoProvider builds the ServiceParams factory from the shared handle.
// Inside a registration transaction the repository binds to tx; everywhere
// else it reads through the root connection.
func UserRepoProvider(root *gorm.DB) func(tx *gorm.DB) userRepository {
	return func(tx *gorm.DB) userRepository {
		if tx != nil {
			return users.NewRepository(tx)
		}
		return users.NewRepository(root)
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	identifier := strings.TrimSpace(req.Username)
	if identifier == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, incorrectCredentialsMessage)
	}

	user, err := s.userRepo(nil).FindByLogin(ctx, identifier)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, incorrectCredentialsMessage)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}

	ok, err := security.VerifyPassword(req.Password, user.HashedPassword)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, incorrectCredentialsMessage)
	}
	if user.Status != enums.UserStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, inactiveUserMessage)
	}

	token, err := pkgauth.MintAccessToken(s.jwtCfg, time.Now().UTC(), pkgauth.AccessTokenPayload{
		UserID: user.ID,
		Role:   user.Role,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	return &LoginResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*users.UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return users.FromModel(user), nil
}

func (s *service) UpdateMe(ctx context.Context, userID int64, req UpdateProfileRequest) (*users.UserDTO, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	// Staff accounts other than the administrator are managed through the
	// admin endpoint.
	if user.Role != enums.UserRoleAdmin && user.Role != enums.UserRoleClient {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Not enough permissions")
	}

	if err := s.applyEmailChange(ctx, user, req.Email); err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfilePictureURL != nil {
		user.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.HashedPassword = hashed
	}

	if err := s.userRepo(nil).Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save profile")
	}
	return users.FromModel(user), nil
}

func (s *service) ListUsers(ctx context.Context, filter users.ListFilter) ([]users.UserDTO, error) {
	rows, err := s.userRepo(nil).List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return users.FromModels(rows), nil
}

func (s *service) CountUsers(ctx context.Context, activeOnly bool) (*users.CountSummary, error) {
	summary, err := s.userRepo(nil).Count(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	return summary, nil
}

func (s *service) loadUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo(nil).FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}

// applyEmailChange validates uniqueness before adopting a new address.
func (s *service) applyEmailChange(ctx context.Context, user *models.User, email *string) error {
	if email == nil {
		return nil
	}
	next := strings.ToLower(strings.TrimSpace(*email))
	if next == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email cannot be empty").
			WithDetails(map[string]any{"field": "email"})
	}
	if user.Email != nil && *user.Email == next {
		return nil
	}
	taken, err := s.userRepo(nil).EmailTaken(ctx, next, user.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, "Email already in use")
	}
	user.Email = &next
	return nil
}
