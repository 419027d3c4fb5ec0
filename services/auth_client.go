// services/auth_client.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"card-explorer-backend/utils"
)

// AuthClient talks to the hosted identity provider. The backend never
// stores or checks passwords itself; signup, login and recovery are all
// delegated here.
type AuthClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type AuthSession struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int      `json:"expires_in"`
	User         AuthUser `json:"user"`
}

func NewAuthClient(baseURL, apiKey string) *AuthClient {
	return &AuthClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *AuthClient) post(path string, payload interface{}, out interface{}) error {
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", c.BaseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("AuthClient %s returned %d: %s", path, resp.StatusCode, string(body))
		return fmt.Errorf("auth provider %s failed: %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return err
		}
	}
	return nil
}

// SignUp creates the credential on the provider side.
func (c *AuthClient) SignUp(email, password string) (*AuthUser, error) {
	var out struct {
		ID    string   `json:"id"`
		Email string   `json:"email"`
		User  AuthUser `json:"user"`
	}
	err := c.post("/auth/v1/signup", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	// Some provider versions nest the user, some return it flat.
	if out.User.ID != "" {
		return &out.User, nil
	}
	return &AuthUser{ID: out.ID, Email: out.Email}, nil
}

// SignIn exchanges email+password for a session.
func (c *AuthClient) SignIn(email, password string) (*AuthSession, error) {
	var session AuthSession
	err := c.post("/auth/v1/token?grant_type=password", map[string]string{
		"email":    email,
		"password": password,
	}, &session)
	if err != nil {
		return nil, utils.Unauthorized("falha no login")
	}
	return &session, nil
}

// RecoverPassword triggers the provider's reset email.
func (c *AuthClient) RecoverPassword(email string) error {
	return c.post("/auth/v1/recover", map[string]string{"email": email}, nil)
}

// GetUser resolves an access token to the provider account, or fails when
// the token is invalid or expired.
func (c *AuthClient) GetUser(accessToken string) (*AuthUser, error) {
	req, err := http.NewRequest("GET", c.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.APIKey)
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, utils.Unauthorized("token inválido ou expirado")
	}

	var user AuthUser
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, utils.Unauthorized("token inválido ou expirado")
	}
	return &user, nil
}
