package storage

import (
	"encoding/json"
	"fmt"

	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/tui-platformer/internal/game"
)

const bestScoreKey = "best_score"

// KV keeps the best score in the platform's per-user data directory.
// It is the fallback when no SQLite database is available.
type KV struct {
	manager *gdata.Manager
}

type bestScoreRecord struct {
	Score int `json:"score"`
}

// OpenKV opens the key-value store for the given application name.
func OpenKV(appName string) (*KV, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data dir: %w", err)
	}
	return &KV{manager: m}, nil
}

// LoadBestScore implements game.BestScoreStore.
func (k *KV) LoadBestScore() (int, error) {
	data, err := k.manager.LoadItem(bestScoreKey)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}
	return decodeBestScore(data)
}

// SaveBestScore implements game.BestScoreStore. Lower scores are ignored.
func (k *KV) SaveBestScore(score int) error {
	current, err := k.LoadBestScore()
	if err == nil && current >= score {
		return nil
	}
	data, err := encodeBestScore(score)
	if err != nil {
		return err
	}
	if err := k.manager.SaveItem(bestScoreKey, data); err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

var _ game.BestScoreStore = (*KV)(nil)

// decodeBestScore parses a stored record. Missing data means no score yet.
func decodeBestScore(data []byte) (int, error) {
	if data == nil {
		return 0, nil
	}
	var rec bestScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("storage: corrupt best score: %w", err)
	}
	if rec.Score < 0 {
		return 0, nil
	}
	return rec.Score, nil
}

func encodeBestScore(score int) ([]byte, error) {
	data, err := json.Marshal(bestScoreRecord{Score: score})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode best score: %w", err)
	}
	return data, nil
}
