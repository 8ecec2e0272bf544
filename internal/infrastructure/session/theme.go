package session

// DefaultTheme is applied until the user picks another one.
const DefaultTheme = "indigo"

// Themes lists the selectable visual themes.
var Themes = []string{"indigo", "sky", "emerald", "rose"}

// ValidTheme reports whether name is a selectable theme.
func ValidTheme(name string) bool {
	for _, t := range Themes {
		if t == name {
			return true
		}
	}
	return false
}
