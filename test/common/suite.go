package common

import (
	"fmt"
	"os"
	"testing"
	"time"

	"tidybook/pkg/client"
	"tidybook/pkg/model"
)

// IntegrationTestSuite talks to a running API instance. Tests using it are
// skipped unless TEST_SERVER_URL is set.
type IntegrationTestSuite struct {
	ServerURL string
}

func NewIntegrationTestSuite(t *testing.T) *IntegrationTestSuite {
	t.Helper()

	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		t.Skip("TEST_SERVER_URL not set, skipping integration tests")
	}

	httpClient := client.NewHttpClient(serverURL)
	if err := httpClient.WaitForHealthy(30 * time.Second); err != nil {
		t.Fatalf("server not healthy: %v", err)
	}

	return &IntegrationTestSuite{ServerURL: serverURL}
}

// NewSession returns a fresh authenticated HTTP client for a newly
// registered user, plus the user itself.
func (s *IntegrationTestSuite) NewSession(t *testing.T) (*client.HttpClient, *model.User) {
	t.Helper()

	httpClient := client.NewHttpClient(s.ServerURL)
	auth := client.NewAuthClient(httpClient)

	email := fmt.Sprintf("it-%d@example.com", time.Now().UnixNano())
	resp, err := auth.Register(map[string]any{
		"firstName": "Integration",
		"lastName":  "Tester",
		"email":     email,
		"password":  "Str0ngPass",
		"phone":     "+14155552671",
		"address": map[string]string{
			"street":  "1 Test Way",
			"city":    "San Francisco",
			"state":   "CA",
			"zipCode": "94105",
		},
	})
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("register failed: %s", resp.ToString())
	}

	user, token, err := auth.DecodeSession(resp)
	if err != nil {
		t.Fatal(err)
	}
	httpClient.SetToken(token)
	return httpClient, user
}

// AdminSession logs in with the seeded admin account. Skips the calling test
// when SEED_ADMIN_PASSWORD is not provided.
func (s *IntegrationTestSuite) AdminSession(t *testing.T) *client.HttpClient {
	t.Helper()

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		t.Skip("SEED_ADMIN_PASSWORD not set, skipping admin integration tests")
	}
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tidybook.local"
	}

	httpClient := client.NewHttpClient(s.ServerURL)
	auth := client.NewAuthClient(httpClient)

	resp, err := auth.Login(adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("admin login request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("admin login failed: %s", resp.ToString())
	}

	_, token, err := auth.DecodeSession(resp)
	if err != nil {
		t.Fatal(err)
	}
	httpClient.SetToken(token)
	return httpClient
}
