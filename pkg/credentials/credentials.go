package credentials

import (
	"os"
	"time"

	json "github.com/json-iterator/go"
	"github.com/snapshare/cli/pkg/config"
)

// Credentials is the persisted session of the viewer
type Credentials struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	return LoadFrom(config.GetCredentialsPath())
}

// LoadFrom loads credentials from the given path. A missing file yields nil, nil.
func LoadFrom(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	return SaveTo(config.GetCredentialsPath(), creds)
}

// SaveTo writes credentials to path, owner read/write only
func SaveTo(path string, creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// Delete deletes credentials from disk
func Delete() error {
	err := os.Remove(config.GetCredentialsPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsExpired checks if the access token is expired. Tokens without a known
// expiry never expire client-side.
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are valid
func (c *Credentials) IsValid() bool {
	return c.AccessToken != "" && !c.IsExpired()
}
