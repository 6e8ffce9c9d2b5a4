package catalog

import "github.com/goliatone/go-lingo/internal/identity"

// DefaultLanguages returns the built-in catalog. It seeds fresh stores and
// matches the set the stock backend serves, so a client talking to an
// unmodified deployment sees the same list either way.
func DefaultLanguages() []*Language {
	entries := []struct {
		code   string
		name   string
		native string
	}{
		{"en", "English", "English"},
		{"es", "Spanish", "Español"},
		{"fr", "French", "Français"},
		{"de", "German", "Deutsch"},
		{"it", "Italian", "Italiano"},
		{"pt", "Portuguese", "Português"},
		{"ru", "Russian", "Русский"},
		{"ja", "Japanese", "日本語"},
		{"ko", "Korean", "한국어"},
		{"zh", "Chinese", "中文"},
		{"ar", "Arabic", "العربية"},
		{"hi", "Hindi", "हिंदी"},
		{"bn", "Bengali", "বাংলা"},
		{"ur", "Urdu", "اردو"},
		{"ta", "Tamil", "தமிழ்"},
		{"te", "Telugu", "తెలుగు"},
		{"ml", "Malayalam", "മലയാളം"},
		{"kn", "Kannada", "ಕನ್ನಡ"},
		{"gu", "Gujarati", "ગુજરાતી"},
		{"pa", "Punjabi", "ਪੰਜਾਬੀ"},
	}

	out := make([]*Language, 0, len(entries))
	for _, entry := range entries {
		out = append(out, &Language{
			ID:         identity.LanguageUUID(entry.code),
			Code:       entry.code,
			Name:       entry.name,
			NativeName: entry.native,
			IsActive:   true,
		})
	}
	return out
}
