package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const viewFile = "view.json"

// View is the per-user board layout remembered between runs.
type View struct {
	// Scroll maps column id to the first visible card.
	Scroll map[string]int `json:"scroll"`
	// Column is the id of the focused column.
	Column string `json:"column,omitempty"`
}

func viewPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "dragboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, viewFile), nil
}

func SaveView(v View) error {
	path, err := viewPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadView returns the saved view, or an empty one when none exists.
func LoadView() (View, error) {
	v := View{Scroll: map[string]int{}}
	path, err := viewPath()
	if err != nil {
		return v, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return v, nil
		}
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return View{Scroll: map[string]int{}}, err
	}
	if v.Scroll == nil {
		v.Scroll = map[string]int{}
	}
	return v, nil
}
