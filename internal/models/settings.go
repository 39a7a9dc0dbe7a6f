package models

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a supported theme.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Settings holds the application preferences persisted alongside the ledgers.
type Settings struct {
	Theme                Theme  `json:"theme"`
	Language             string `json:"language"`
	ReceiveNotifications bool   `json:"receive_notifications"`
}

// DefaultSettings returns the first-run preferences.
func DefaultSettings() Settings {
	return Settings{
		Theme:                ThemeSystem,
		Language:             "fr",
		ReceiveNotifications: true,
	}
}
