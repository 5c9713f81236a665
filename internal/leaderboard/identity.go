package leaderboard

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Identity is the anonymous installation id reported with every score, so
// the board can de-duplicate without accounts.
type Identity struct {
	ID string `json:"id"`
}

// LoadIdentity reads the persisted identity, minting and saving one on
// first run.
func LoadIdentity(dataDir string) (Identity, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return Identity{}, err
	}
	path := filepath.Join(dataDir, "identity.json")

	b, err := os.ReadFile(path)
	if err == nil {
		var id Identity
		if jsonErr := json.Unmarshal(b, &id); jsonErr == nil && id.ID != "" {
			return id, nil
		}
		// Unreadable identity file: mint a new one below.
	} else if !os.IsNotExist(err) {
		return Identity{}, err
	}

	id := Identity{ID: uuid.NewString()}
	b, err = json.MarshalIndent(id, "", "  ")
	if err != nil {
		return Identity{}, err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return Identity{}, err
	}
	return id, nil
}
