package client

import (
	"encoding/json"
	"fmt"

	"tidybook/pkg/model"
)

type AuthClient struct {
	httpClient *HttpClient
}

func NewAuthClient(httpClient *HttpClient) *AuthClient {
	return &AuthClient{httpClient: httpClient}
}

func (c *AuthClient) Register(body any) (*Response, error) {
	return c.httpClient.POST("/api/auth/register", body)
}

func (c *AuthClient) Login(email, password string) (*Response, error) {
	return c.httpClient.POST("/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

func (c *AuthClient) GetProfile() (*Response, error) {
	return c.httpClient.GET("/api/auth/profile")
}

func (c *AuthClient) UpdateProfile(body any) (*Response, error) {
	return c.httpClient.PUT("/api/auth/profile", body)
}

// DecodeSession extracts the user and token from a register or login response.
func (c *AuthClient) DecodeSession(resp *Response) (*model.User, string, error) {
	var wrapper struct {
		Data struct {
			User  json.RawMessage `json:"user"`
			Token string          `json:"token"`
		} `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, "", fmt.Errorf("could not decode session wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var user model.User
	if err := json.Unmarshal(wrapper.Data.User, &user); err != nil {
		return nil, "", fmt.Errorf("could not decode user json:\n%+v\n%s", resp.ToString(), err)
	}

	return &user, wrapper.Data.Token, nil
}

func (c *AuthClient) DecodeUser(resp *Response) (*model.User, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode user wrapper:\n%+v\n%s", resp.ToString(), err)
	}

	var user model.User
	if err := json.Unmarshal(wrapper.Data, &user); err != nil {
		return nil, fmt.Errorf("could not decode user json:\n%+v\n%s", resp.ToString(), err)
	}

	return &user, nil
}
