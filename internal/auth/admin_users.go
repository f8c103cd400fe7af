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

// allowedStaffRoles are the roles an administrator may hand out when
// creating or reassigning staff accounts.
var allowedStaffRoles = map[enums.UserRole]bool{
	enums.UserRoleSales:       true,
	enums.UserRoleProcurement: true,
	enums.UserRoleCaretaker:   true,
}

// AdminCreateStaff opens a staff account on behalf of an administrator.
func (s *service) AdminCreateStaff(ctx context.Context, adminID int64, req AdminCreateUserRequest) (*RegisterResponse, error) {
	if !allowedStaffRoles[req.Role] {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Role not allowed for this endpoint").
			WithDetails(map[string]any{"field": "role"})
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
			Role:           req.Role,
			Status:         enums.UserStatusActive,
			UpdatedBy:      &adminID,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create staff account")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{UserID: created.ID, Role: created.Role, Status: created.Status}, nil
}

// AdminUpdateUser edits a staff account, or the administrator's own record.
// Other administrator accounts are off limits, and nobody can be promoted
// to ADMIN.
func (s *service) AdminUpdateUser(ctx context.Context, adminID, targetID int64, req AdminUpdateUserRequest) (*users.UserDTO, error) {
	target, err := s.loadUser(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if target.Role == enums.UserRoleAdmin {
		if target.ID != adminID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Cannot modify another admin account")
		}
	} else if !allowedStaffRoles[target.Role] {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Only staff accounts can be modified by admin")
	}

	if err := s.applyEmailChange(ctx, target, req.Email); err != nil {
		return nil, err
	}
	if req.Name != nil {
		target.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfilePictureURL != nil {
		target.ProfilePictureURL = req.ProfilePictureURL
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := security.HashPassword(*req.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		target.HashedPassword = hashed
	}

	if req.Role != nil {
		next := *req.Role
		if next == enums.UserRoleAdmin && target.ID != adminID {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Cannot promote another account to ADMIN")
		}
		if next != enums.UserRoleAdmin && !allowedStaffRoles[next] {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Role not allowed for this endpoint").
				WithDetails(map[string]any{"field": "role"})
		}
		target.Role = next
	}

	if req.Status != nil {
		if !req.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
				WithDetails(map[string]any{"field": "status"})
		}
		target.Status = *req.Status
	}

	target.UpdatedBy = &adminID
	if err := s.userRepo(nil).Save(ctx, target); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save user")
	}
	return users.FromModel(target), nil
}
