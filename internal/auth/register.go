package auth

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/internal/users"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/enums"
	pkgerrors "github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/errors"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/security"
)

// RegisterClient opens a customer account. The email verification token is
// consumed and the user inserted in one transaction so a token can never be
// spent without its account existing.
func (s *service) RegisterClient(ctx context.Context, req RegisterClientRequest) (*RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	hashed, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		verifiedEmail, err := s.verifier.ConsumeVerificationToken(ctx, tx, req.EmailVerificationToken)
		if err != nil {
			return err
		}
		if verifiedEmail != email {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "Invalid or expired verification token").
				WithDetails(map[string]any{"reason": "verification_token_invalid"})
		}

		repo := s.userRepo(tx)
		if err := ensureUnique(ctx, repo, username, email); err != nil {
			return err
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Name:           derefName(req.Name),
			Username:       username,
			Email:          &email,
			HashedPassword: hashed,
			Role:           enums.UserRoleClient,
			Status:         enums.UserStatusActive,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create client account")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{UserID: created.ID, Role: created.Role, Status: created.Status}, nil
}

// RegisterAdmin bootstraps an administrator, guarded by the signup code. An
// unset code disables the endpoint entirely.
func (s *service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*RegisterResponse, error) {
	if s.adminCfg.SignupCode == "" || req.Code != s.adminCfg.SignupCode {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Invalid admin signup code")
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	hashed, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.userRepo(tx)
		if err := ensureUnique(ctx, repo, username, email); err != nil {
			return err
		}

		user, err := repo.Create(ctx, users.CreateUserDTO{
			Name:           derefName(req.Name),
			Username:       username,
			Email:          &email,
			HashedPassword: hashed,
			Role:           enums.UserRoleAdmin,
			Status:         enums.UserStatusActive,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create admin account")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{UserID: created.ID, Role: created.Role, Status: created.Status}, nil
}

func ensureUnique(ctx context.Context, repo userRepository, username, email string) error {
	taken, err := repo.UsernameTaken(ctx, username, 0)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, "Username already taken")
	}

	taken, err = repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if taken {
		return pkgerrors.New(pkgerrors.CodeConflict, "Email already registered")
	}
	return nil
}

func derefName(name *string) string {
	if name == nil {
		return ""
	}
	return strings.TrimSpace(*name)
}
