package credentials

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/snapshare/cli/pkg/config"
)

// TestCredentialsIsExpired validates token expiration check
func TestCredentialsIsExpired(t *testing.T) {
	testCases := []struct {
		expiresAt time.Time
		expect    bool
		name      string
	}{
		{time.Now().Add(-1 * time.Hour), true, "past expiration"},
		{time.Now().Add(1 * time.Hour), false, "future expiration"},
		{time.Now().Add(-1 * time.Minute), true, "recently expired"},
		{time.Time{}, false, "no known expiry"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: "test_token",
				ExpiresAt:   tc.expiresAt,
			}

			if result := creds.IsExpired(); result != tc.expect {
				t.Errorf("Expected IsExpired=%v, got %v", tc.expect, result)
			}
		})
	}
}

// TestCredentialsIsValid validates credential validity check
func TestCredentialsIsValid(t *testing.T) {
	testCases := []struct {
		accessToken string
		expiresAt   time.Time
		expect      bool
		name        string
	}{
		{"valid_token", time.Now().Add(1 * time.Hour), true, "valid credentials"},
		{"", time.Now().Add(1 * time.Hour), false, "empty access token"},
		{"valid_token", time.Now().Add(-1 * time.Hour), false, "expired token"},
		{"valid_token", time.Time{}, true, "token without expiry"},
		{"", time.Time{}, false, "zero value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			creds := &Credentials{
				AccessToken: tc.accessToken,
				ExpiresAt:   tc.expiresAt,
			}

			if result := creds.IsValid(); result != tc.expect {
				t.Errorf("Expected IsValid=%v, got %v", tc.expect, result)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)

	in := &Credentials{
		AccessToken: "tok",
		ExpiresAt:   expires,
		UserID:      "64f0c2",
		Username:    "maria",
		Email:       "maria@example.com",
	}
	if err := SaveTo(path, in); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}

	out, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if out.UserID != in.UserID || out.AccessToken != in.AccessToken || !out.ExpiresAt.Equal(expires) {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestLoadMissingFile(t *testing.T) {
	creds, err := LoadFrom(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if creds != nil {
		t.Error("missing file should yield nil credentials")
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("corrupt credentials should fail to load")
	}
}

func TestDefaultPathAndDelete(t *testing.T) {
	if err := config.Init(filepath.Join(t.TempDir(), "config.toml")); err != nil {
		t.Fatalf("config init: %v", err)
	}

	if err := Save(&Credentials{AccessToken: "tok"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	creds, err := Load()
	if err != nil || creds == nil {
		t.Fatalf("Load: %v %v", creds, err)
	}

	if err := Delete(); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	// deleting twice is fine
	if err := Delete(); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}
