package authenticating

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/vfg2006/backoffice-api/infrastructure/repository"
	"github.com/vfg2006/backoffice-api/infrastructure/settings"
	"github.com/vfg2006/backoffice-api/internal/config"
	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
	"github.com/vfg2006/backoffice-api/pkg/utils"
)

const defaultTokenTTL = 24 * time.Hour

type Authenticator interface {
	LoginUser(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context, claims *domain.Claims) error
	GetUserProfile(ctx context.Context, userID int) (*domain.User, error)
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}

type Service struct {
	userRepo repository.UserRepository
	settings settings.Store
	cfg      *config.Config
	now      func() time.Time
}

func NewService(userRepo repository.UserRepository, settingsStore settings.Store, cfg *config.Config) Authenticator {
	return &Service{
		userRepo: userRepo,
		settings: settingsStore,
		cfg:      cfg,
		now:      time.Now,
	}
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}

func (s *Service) LoginUser(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Email e senha são obrigatórios")
	}

	email = handleEmail(email)

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", NewAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	if user == nil {
		return "", NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if !user.Active {
		return "", NewUserAuthError(ErrUserDisabled, apiErrors.ErrUserDisabled, user.ID, "Conta desativada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.ID, "Senha incorreta")
	}

	tokenID, err := utils.GenerateID()
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar identificador do token")
	}

	token, err := s.generateJWT(user, tokenID)
	if err != nil {
		return "", NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	flags := domain.AuthFlags{
		Authenticated:   true,
		AuthenticatedAt: s.now().UTC(),
		TokenID:         tokenID,
	}
	if err := s.settings.Set(ctx, domain.SessionIDForUser(user.ID), settings.KeyAuth, flags); err != nil {
		return "", NewUserAuthError(ErrSettingsStore, apiErrors.ErrInternalServer, user.ID, err.Error())
	}

	logrus.WithField("user_id", user.ID).Info("auth: login realizado")

	return token, nil
}

// Logout limpa as flags de autenticação; tokens emitidos antes deixam de valer
func (s *Service) Logout(ctx context.Context, claims *domain.Claims) error {
	if claims == nil {
		return NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	if err := s.settings.Clear(ctx, claims.SessionID(), settings.KeyAuth); err != nil {
		return NewUserAuthError(ErrSettingsStore, apiErrors.ErrInternalServer, claims.UserID, err.Error())
	}

	logrus.WithField("user_id", claims.UserID).Info("auth: logout realizado")

	return nil
}

func (s *Service) GetUserProfile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		logrus.Error(err)
		return nil, NewUserAuthError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, userID, err.Error())
	}
	if user == nil {
		return nil, NewUserAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, userID, "")
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *Service) generateJWT(user *domain.User, tokenID string) (string, error) {
	ttl := s.cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	now := s.now()
	claims := domain.Claims{
		UserID:     user.ID,
		UserName:   user.Name,
		UserEmail:  user.Email,
		UserRoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

// ValidateToken verifica assinatura e expiração do token e se a sessão que o
// emitiu continua autenticada
func (s *Service) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, "")
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	var flags domain.AuthFlags
	found, err := s.settings.Get(ctx, claims.SessionID(), settings.KeyAuth, &flags)
	if err != nil {
		return nil, NewUserAuthError(ErrSettingsStore, apiErrors.ErrInternalServer, claims.UserID, err.Error())
	}

	if !found || !flags.Authenticated || flags.TokenID != claims.ID {
		return nil, NewUserAuthError(ErrSessionEnded, apiErrors.ErrInvalidToken, claims.UserID, "")
	}

	return claims, nil
}
