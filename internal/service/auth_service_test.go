package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aumugisha-umu/seido-sub006/config"
	"github.com/aumugisha-umu/seido-sub006/internal/dto"
	"github.com/aumugisha-umu/seido-sub006/internal/model"
	"github.com/aumugisha-umu/seido-sub006/pkg/jwt"
)

func newAuthEnv(t *testing.T) (*testRepos, AuthService, *jwt.Manager) {
	t.Helper()
	repos := newTestRepos()
	jwtMgr := jwt.NewManager(&config.AuthConfig{
		JWTSecret:               "secret-de-test-suffisamment-long",
		AccessTokenTTL:          15 * time.Minute,
		RefreshTokenTTLDefault:  24 * time.Hour,
		RefreshTokenTTLRemember: 30 * 24 * time.Hour,
	})
	svc := NewAuthService(repos.repo, jwtMgr, nil, zap.NewNop())
	return repos, svc, jwtMgr
}

func seedUser(t *testing.T, repos *testRepos, email, password string, active bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hachage: %v", err)
	}
	user := &model.User{
		Name:         "Testeur",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleGestionnaire,
		IsActive:     active,
	}
	if err := repos.users.Create(context.Background(), user); err != nil {
		t.Fatalf("création utilisateur: %v", err)
	}
	return user
}

func TestLoginNominal(t *testing.T) {
	repos, svc, jwtMgr := newAuthEnv(t)
	user := seedUser(t, repos, "gaelle@seido.test", "motdepasse1234", true)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "gaelle@seido.test",
		Password: "motdepasse1234",
	})
	if err != nil {
		t.Fatalf("connexion: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("tokens absents")
	}
	if resp.User.ID != user.UserID {
		t.Errorf("user.id = %s, attendu %s", resp.User.ID, user.UserID)
	}

	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("décodage access token: %v", err)
	}
	if claims.TokenType != "access" || claims.UserID != user.UserID {
		t.Error("claims de l'access token incorrects")
	}
}

func TestLoginMauvaisMotDePasse(t *testing.T) {
	repos, svc, _ := newAuthEnv(t)
	seedUser(t, repos, "gaelle@seido.test", "motdepasse1234", true)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "gaelle@seido.test",
		Password: "mauvais-mot-de-passe",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, attendu ErrInvalidCredentials", err)
	}
}

func TestLoginEmailInconnu(t *testing.T) {
	_, svc, _ := newAuthEnv(t)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "inconnu@seido.test",
		Password: "peu-importe-123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, attendu ErrInvalidCredentials", err)
	}
}

func TestLoginCompteDesactive(t *testing.T) {
	repos, svc, _ := newAuthEnv(t)
	seedUser(t, repos, "inactif@seido.test", "motdepasse1234", false)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "inactif@seido.test",
		Password: "motdepasse1234",
	})
	if !errors.Is(err, ErrAccountDisabled) {
		t.Errorf("err = %v, attendu ErrAccountDisabled", err)
	}
}

func TestRefreshEmetUneNouvellePaire(t *testing.T) {
	repos, svc, _ := newAuthEnv(t)
	seedUser(t, repos, "gaelle@seido.test", "motdepasse1234", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:      "gaelle@seido.test",
		Password:   "motdepasse1234",
		RememberMe: true,
	})
	if err != nil {
		t.Fatalf("connexion: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	if err != nil {
		t.Fatalf("rafraîchissement: %v", err)
	}
	if refreshed.AccessToken == "" || refreshed.RefreshToken == "" {
		t.Fatal("nouvelle paire absente")
	}
}

func TestRefreshAvecAccessTokenRefuse(t *testing.T) {
	repos, svc, _ := newAuthEnv(t)
	seedUser(t, repos, "gaelle@seido.test", "motdepasse1234", true)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "gaelle@seido.test",
		Password: "motdepasse1234",
	})
	if err != nil {
		t.Fatalf("connexion: %v", err)
	}

	// un access token n'est pas un refresh token
	if _, err := svc.Refresh(context.Background(), login.AccessToken); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("err = %v, attendu ErrInvalidRefreshToken", err)
	}
}

func TestChangePassword(t *testing.T) {
	repos, svc, _ := newAuthEnv(t)
	user := seedUser(t, repos, "gaelle@seido.test", "motdepasse1234", true)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "mauvais",
		NewPassword:     "nouveaumotdepasse",
	}); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("err = %v, attendu ErrWrongPassword", err)
	}

	if err := svc.ChangePassword(ctx, user.UserID, &dto.ChangePasswordRequest{
		CurrentPassword: "motdepasse1234",
		NewPassword:     "nouveaumotdepasse",
	}); err != nil {
		t.Fatalf("changement de mot de passe: %v", err)
	}

	// l'ancien mot de passe ne passe plus
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "gaelle@seido.test",
		Password: "motdepasse1234",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("ancien mot de passe accepté après changement: %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "gaelle@seido.test",
		Password: "nouveaumotdepasse",
	}); err != nil {
		t.Errorf("nouveau mot de passe refusé: %v", err)
	}
}
