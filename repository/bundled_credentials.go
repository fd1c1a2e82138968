// ABOUTME: This file loads the bundled default credentials file
// ABOUTME: Missing or malformed defaults are fatal configuration errors at startup

package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"parking-gateway/models"
)

// BundledCredentials holds the default client-credentials pairs shipped with
// the deployment, keyed by environment name. Read once at startup.
type BundledCredentials struct {
	byEnvironment map[models.Environment]models.ClientCredentials
}

// bundledSecretsFile is the wire shape of the defaults file:
// {"production": {"client_id": "...", "client_secret": "..."}, ...}
type bundledSecretsFile map[string]models.ClientCredentials

// LoadBundledCredentials reads and decodes the bundled defaults file.
// A missing file returns ErrBundledSecretsMissing; a file that cannot be
// decoded returns ErrBundledSecretsMalformed. Both are fatal to the caller.
func LoadBundledCredentials(path string) (*BundledCredentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrBundledSecretsMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrBundledSecretsMissing, err)
	}

	var file bundledSecretsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBundledSecretsMalformed, err)
	}

	byEnv := make(map[models.Environment]models.ClientCredentials, len(file))
	for name, creds := range file {
		env := models.Environment(name)
		if err := env.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBundledSecretsMalformed, err)
		}
		if !creds.IsComplete() {
			return nil, fmt.Errorf("%w: incomplete credentials for %q", ErrBundledSecretsMalformed, name)
		}
		byEnv[env] = creds
	}

	return &BundledCredentials{byEnvironment: byEnv}, nil
}

// Get returns the bundled default for the environment, or
// ErrCredentialsNotFound when the file carries none for it.
func (b *BundledCredentials) Get(env models.Environment) (*models.ClientCredentials, error) {
	creds, ok := b.byEnvironment[env]
	if !ok {
		return nil, ErrCredentialsNotFound
	}
	return &creds, nil
}
