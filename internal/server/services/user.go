// Package services contains server-side business logic. This file implements
// UserService, which handles signup, signin and user/profile lookups.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"
	"github.com/dmitrijs2005/blogql/internal/common"
	"github.com/dmitrijs2005/blogql/internal/cryptox"
	"github.com/dmitrijs2005/blogql/internal/dbx"
	"github.com/dmitrijs2005/blogql/internal/server/auth"
	"github.com/dmitrijs2005/blogql/internal/server/config"
	"github.com/dmitrijs2005/blogql/internal/server/models"
	"github.com/dmitrijs2005/blogql/internal/server/repositories/repomanager"
)

const minPasswordLength = 5

// SignupInput carries the arguments of the signup mutation.
type SignupInput struct {
	Name     string
	Bio      string
	Email    string
	Password string
}

// UserService provides account operations:
// - Signup: validate, create user and profile, mint a session token
// - Signin: verify credentials and mint a session token
// - Me, GetUser, Profile: read-only lookups
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	passwordHashCost      int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		passwordHashCost:      cfg.PasswordHashCost,
	}
}

// Signup validates in, stores the user together with its profile in one
// transaction and returns a session token. Validation failures are reported
// in the payload and nothing is written.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*AuthPayload, error) {
	if !govalidator.IsEmail(in.Email) {
		return authFailure(MsgInvalidEmail), nil
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		return authFailure(MsgInvalidPassword), nil
	}
	if in.Name == "" || in.Bio == "" {
		return authFailure(MsgInvalidNameOrBio), nil
	}

	hash, err := cryptox.HashPassword(in.Password, s.passwordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		user, err = s.repomanager.Users(tx).Create(ctx, &models.User{Name: in.Name, Email: in.Email, Password: hash})
		if err != nil {
			return err
		}
		_, err = s.repomanager.Profiles(tx).Create(ctx, &models.Profile{Bio: in.Bio, UserID: user.ID})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return authFailure(MsgEmailTaken), nil
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return authSuccess(token), nil
}

// Signin checks email and password and returns a session token. Unknown
// e-mail and wrong password are indistinguishable to the caller.
func (s *UserService) Signin(ctx context.Context, email, password string) (*AuthPayload, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return authFailure(MsgInvalidCredentials), nil
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := cryptox.ComparePassword(user.Password, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return authFailure(MsgInvalidCredentials), nil
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return authSuccess(token), nil
}

// Me returns the caller's own user record, or nil for anonymous callers.
func (s *UserService) Me(ctx context.Context, id auth.Identity) (*models.User, error) {
	userID, ok := id.UserID()
	if !ok {
		return nil, nil
	}
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// GetUser returns user userID; a missing user is an error
// (common.ErrorNotFound).
func (s *UserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// Profile returns the profile of userID as seen by id, or nil if the user
// has none.
func (s *UserService) Profile(ctx context.Context, id auth.Identity, userID int64) (*ProfileView, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ProfileView{Profile: profile, IsMyProfile: id.Is(profile.UserID)}, nil
}

func (s *UserService) generateToken(userID int64) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}
	return token, nil
}
