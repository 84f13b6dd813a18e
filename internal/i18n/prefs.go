package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/cardkeeper/internal/paths"
)

// Prefs stores per-user language choices, persisted as JSON so they
// survive restarts.
type Prefs struct {
	mu    sync.RWMutex
	path  string
	langs map[int64]string
	log   *zap.Logger
}

// LoadPrefs reads the preference file under dataDir. A missing file
// yields empty preferences; an unreadable or malformed one is logged and
// treated the same, so a damaged file never blocks startup.
func LoadPrefs(dataDir string, log *zap.Logger) *Prefs {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Prefs{
		path:  paths.PrefsFile(dataDir),
		langs: make(map[int64]string),
		log:   log.Named("i18n"),
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		if !os.IsNotExist(err) {
			p.log.Warn("language preferences unreadable, starting empty",
				zap.String("path", p.path), zap.Error(err))
		}
		return p
	}

	// JSON object keys are strings; user ids are converted back.
	var decoded map[string]string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		p.log.Warn("language preferences malformed, starting empty",
			zap.String("path", p.path), zap.Error(err))
		return p
	}
	for k, v := range decoded {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		p.langs[id] = v
	}

	p.log.Info("language preferences loaded", zap.Int("users", len(p.langs)))
	return p
}

// Locale returns the string table for the user's chosen language,
// falling back to the default when no choice was recorded.
func (p *Prefs) Locale(userID int64) *Locale {
	p.mu.RLock()
	code, ok := p.langs[userID]
	p.mu.RUnlock()
	if !ok {
		return ByCode(DefaultCode)
	}
	return ByCode(code)
}

// Set records the user's language and rewrites the preference file
// atomically.
func (p *Prefs) Set(userID int64, code string) error {
	if !Known(code) {
		return fmt.Errorf("unknown language %q", code)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	prev, had := p.langs[userID]
	p.langs[userID] = code
	if err := p.saveLocked(); err != nil {
		if had {
			p.langs[userID] = prev
		} else {
			delete(p.langs, userID)
		}
		return err
	}

	p.log.Info("user language set",
		zap.Int64("user_id", userID), zap.String("lang", code))
	return nil
}

// saveLocked writes the whole preference map through a temp file and a
// rename, so readers never see a partial file.
func (p *Prefs) saveLocked() error {
	encoded := make(map[string]string, len(p.langs))
	for id, code := range p.langs {
		encoded[strconv.FormatInt(id, 10)] = code
	}
	data, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding language preferences: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("creating preference directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), ".langs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp preference file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing language preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp preference file: %w", err)
	}
	if err := os.Rename(tmpName, p.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing language preferences: %w", err)
	}
	return nil
}
