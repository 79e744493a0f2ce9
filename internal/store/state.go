package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"Premiacao/internal/model"
)

// State is everything the roster file holds.
type State struct {
	Employees []model.Employee     `json:"employees"`
	History   model.MonthlyHistory `json:"history"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// LoadState reads the state from a JSON file. Returns an empty state if the file doesn't exist.
func LoadState(filePath string) (*State, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{History: model.MonthlyHistory{}}, nil
		}
		return nil, err
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.History == nil {
		state.History = model.MonthlyHistory{}
	}
	return &state, nil
}

// SaveState writes the state to a JSON file, creating its directory if needed.
func SaveState(filePath string, state *State) error {
	state.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0644)
}
