package integrationtests

import (
	"testing"

	"tidybook/pkg/client"
	"tidybook/test/common"
)

func TestProfileRoundTrip(t *testing.T) {
	suite := common.NewIntegrationTestSuite(t)
	userHTTP, user := suite.NewSession(t)

	auth := client.NewAuthClient(userHTTP)

	resp, err := auth.GetProfile()
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("get profile failed: %s", resp.ToString())
	}
	profile, err := auth.DecodeUser(resp)
	if err != nil {
		t.Fatal(err)
	}
	if profile.Email != user.Email {
		t.Fatalf("profile email = %q, want %q", profile.Email, user.Email)
	}

	resp, err = auth.UpdateProfile(map[string]string{"firstName": "Renamed"})
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("update profile failed: %s", resp.ToString())
	}
	updated, err := auth.DecodeUser(resp)
	if err != nil {
		t.Fatal(err)
	}
	if updated.FirstName != "Renamed" {
		t.Fatalf("firstName = %q after update", updated.FirstName)
	}
	if updated.Email != user.Email {
		t.Fatal("email changed through profile update")
	}
}

func TestDeactivatedAccountCannotLogin(t *testing.T) {
	suite := common.NewIntegrationTestSuite(t)
	adminHTTP := suite.AdminSession(t)
	userHTTP, user := suite.NewSession(t)

	admin := client.NewAdminClient(adminHTTP)
	resp, err := admin.SetUserStatus(user.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("deactivate failed: %s", resp.ToString())
	}

	auth := client.NewAuthClient(client.NewHttpClient(suite.ServerURL))
	resp, err = auth.Login(user.Email, "Str0ngPass")
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("deactivated login: status = %d, want 401, body: %s", resp.StatusCode, resp.ToString())
	}
	if code := client.GetErrorCode(resp); code != "ACCOUNT_DEACTIVATED" {
		t.Fatalf("deactivated login: code = %q", code)
	}

	// Reactivate so other tests are unaffected.
	resp, err = admin.SetUserStatus(user.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("reactivate failed: %s", resp.ToString())
	}

	resp, err = client.NewAuthClient(userHTTP).GetProfile()
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("profile after reactivation failed: %s", resp.ToString())
	}
}
