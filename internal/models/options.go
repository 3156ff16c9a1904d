package models

import "slices"

// Language pairs a display name with its language code
type Language struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// LanguageTable is an ordered mapping from display name to language code.
// Names are unique.
type LanguageTable []Language

// Code returns the code registered for name
func (t LanguageTable) Code(name string) (string, bool) {
	for _, l := range t {
		if l.Name == name {
			return l.Code, true
		}
	}
	return "", false
}

// Names returns the display names in table order
func (t LanguageTable) Names() []string {
	names := make([]string, len(t))
	for i, l := range t {
		names[i] = l.Name
	}
	return names
}

// LandingPage is the data the recipe form is rendered from
type LandingPage struct {
	Cuisines            []string      `json:"cuisines"`
	DietaryRestrictions []string      `json:"dietary_restrictions"`
	Languages           LanguageTable `json:"languages"`
}

// The empty first entry is the "no cuisine selected" option.
var cuisines = []string{
	"",
	"Italian", "Mexican", "Chinese", "Indian", "Japanese",
	"Thai", "French", "Mediterranean", "American", "Greek",
}

var languages = LanguageTable{
	{"English", "en"}, {"Spanish", "es"}, {"French", "fr"}, {"German", "de"},
	{"Russian", "ru"}, {"Chinese (Simplified)", "zh-CN"}, {"Chinese (Traditional)", "zh-TW"},
	{"Japanese", "ja"}, {"Korean", "ko"}, {"Italian", "it"}, {"Portuguese", "pt"},
	{"Arabic", "ar"}, {"Dutch", "nl"}, {"Swedish", "sv"}, {"Turkish", "tr"},
	{"Greek", "el"}, {"Hebrew", "he"}, {"Hindi", "hi"}, {"Indonesian", "id"},
	{"Thai", "th"}, {"Filipino", "tl"}, {"Vietnamese", "vi"},
}

// Cuisines returns a copy of the configured cuisine list
func Cuisines() []string {
	return slices.Clone(cuisines)
}

// Languages returns a copy of the configured language table
func Languages() LanguageTable {
	return slices.Clone(languages)
}
