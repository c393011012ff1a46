package auth

import (
	"fmt"
	"strings"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
)

// Session is what the identity service hands back on a successful sign-in.
type Session struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
}

// Service wraps the hosted GoTrue identity boundary: sign-up, sign-in and
// sign-out by email/password, consumed as a black box. Token validation does
// not go through here; the middleware checks the JWT locally.
type Service struct {
	client gotrue.Client
}

func NewService(projectURL, serviceKey, gotrueURL string) *Service {
	if gotrueURL == "" {
		gotrueURL = strings.TrimRight(projectURL, "/") + "/auth/v1"
	}
	client := gotrue.New("fintrack", serviceKey).WithCustomGoTrueURL(gotrueURL)
	return &Service{client: client}
}

// SignUp registers a new identity and signs it straight in.
func (s *Service) SignUp(email, password string) (*Session, error) {
	_, err := s.client.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	return s.SignIn(email, password)
}

// SignIn exchanges credentials for a session token.
func (s *Service) SignIn(email, password string) (*Session, error) {
	resp, err := s.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	return &Session{
		AccessToken: resp.AccessToken,
		UserID:      resp.User.ID.String(),
		Email:       resp.User.Email,
	}, nil
}

// SignOut revokes the token on the identity service. A failure here is not
// fatal; the cookie is cleared either way.
func (s *Service) SignOut(accessToken string) error {
	if err := s.client.WithToken(accessToken).Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}
