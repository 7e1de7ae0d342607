package services

import (
	"context"
	"crypto/subtle"
	"kinstore/internal/apperr"
	"kinstore/internal/models"
	"kinstore/internal/providers"
	"kinstore/internal/storage"
	"kinstore/internal/structures"
	"strings"

	"github.com/gookit/validate"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, user *models.User) error
	Login(ctx context.Context, creds *models.Credentials) (*models.User, error)
	AuthenticateAdmin(creds *models.Credentials) error
}

type AuthService struct {
	store         storage.StoreInterface
	hasher        PasswordHasherInterface
	metrics       providers.MetricsProviderInterface
	adminUsername string
	adminPassword string
}

func NewAuthService(conf *structures.Config, store storage.StoreInterface, hasher PasswordHasherInterface, metrics providers.MetricsProviderInterface) AuthServiceInterface {
	return &AuthService{
		store:         store,
		hasher:        hasher,
		metrics:       metrics,
		adminUsername: conf.Auth.AdminUsername,
		adminPassword: conf.Auth.AdminPassword,
	}
}

func validationError(v *validate.Validation) error {
	return apperr.BadRequest(v.Errors.One(), nil)
}

func (s *AuthService) Register(ctx context.Context, user *models.User) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return apperr.BadRequest("username, email and password are required", nil)
	}
	if v := validate.Struct(user); !v.Validate() {
		return validationError(v)
	}

	users, err := storage.ReadList[*models.User](ctx, s.store, storage.Users)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return apperr.Conflict("username or email already registered")
		}
	}

	stored := *user
	if stored.Password, err = s.hasher.Hash(user.Password); err != nil {
		return apperr.Internal("unable to register user", err)
	}
	users = append(users, &stored)

	if err = storage.WriteList(ctx, s.store, storage.Users, users); err != nil {
		return err
	}
	s.metrics.SetRecordsTotal(string(storage.Users), len(users))
	return nil
}

func (s *AuthService) Login(ctx context.Context, creds *models.Credentials) (*models.User, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if v := validate.Struct(creds); !v.Validate() {
		return nil, apperr.BadRequest("username and password are required", nil)
	}

	users, err := storage.ReadList[*models.User](ctx, s.store, storage.Users)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == creds.Username && s.hasher.Compare(u.Password, creds.Password) {
			return u, nil
		}
	}
	return nil, apperr.Unauthorized("invalid credentials")
}

func (s *AuthService) AuthenticateAdmin(creds *models.Credentials) error {
	userOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(s.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		return apperr.Unauthorized("invalid credentials")
	}
	return nil
}
