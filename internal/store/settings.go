package store

import (
	"fmt"
	"sync"

	"github.com/diewo77/go-devis/internal/models"
)

// SettingsStore holds the application preferences.
type SettingsStore struct {
	mu        sync.RWMutex
	value     models.Settings
	listeners []func(models.Settings)
}

// NewSettingsStore returns a store holding the default settings.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{value: models.DefaultSettings()}
}

// Get returns the current settings.
func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Subscribe registers fn to receive the settings after every change.
func (s *SettingsStore) Subscribe(fn func(models.Settings)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Restore replaces the settings without notifying subscribers. Missing or
// invalid fields fall back to their defaults.
func (s *SettingsStore) Restore(v models.Settings) {
	def := models.DefaultSettings()
	if !v.Theme.Valid() {
		v.Theme = def.Theme
	}
	if v.Language == "" {
		v.Language = def.Language
	}
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()
}

// SetTheme changes the theme.
func (s *SettingsStore) SetTheme(theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.update(func(v *models.Settings) { v.Theme = theme })
	return nil
}

// SetLanguage changes the interface language.
func (s *SettingsStore) SetLanguage(lang string) {
	s.update(func(v *models.Settings) { v.Language = lang })
}

// SetReceiveNotifications toggles notifications.
func (s *SettingsStore) SetReceiveNotifications(on bool) {
	s.update(func(v *models.Settings) { v.ReceiveNotifications = on })
}

func (s *SettingsStore) update(fn func(*models.Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.value)
	for _, l := range s.listeners {
		l(s.value)
	}
}
