// Package i18n holds the localized string tables and per-user language
// preferences. The default language is English; unknown users and unknown
// codes fall back to it.
package i18n

import "sort"

// Locale is a complete table of user-facing strings for one language.
type Locale struct {
	Code string
	Name string
	Flag string

	MsgSelectLanguage  string
	MsgLanguageChanged string
	MsgStart           string
	MsgCategoriesMenu  string
	MsgInfo            string
	MsgContacts        string
	MsgAdminPanel      string

	MsgReviewsTitle  string
	RowCardReview    string
	RowOverallRating string
	NoReviews        string
	MsgStartReview   string
	MsgWriteComment  string
	MsgReviewSaved   string
	WarnAlreadyRated string

	MsgWriteTitle    string
	MsgTitleOK       string
	MsgVideoOK       string
	MsgCardPublished string
	MsgCardUpdated   string
	MsgCardDeleted   string
	MsgConfirmDelete string
	MsgCategory      string
	NoCards          string

	WarnSessionExpired  string
	WarnTextRequired    string
	WarnTitleTooLong    string
	WarnVideoRequired   string
	WarnVideoTooLarge   string
	WarnDescRequired    string
	WarnDescTooLong     string
	WarnCommentTooLong  string
	WarnInvalidCategory string
	WarnAccessDenied    string
	WarnCardNotFound    string
	WarnSaveError       string
	WarnDeleteError     string
	WarnTooManyRequests string
	WarnReviewCooldown  string
}

// locales is the registry of every built-in language, keyed by code.
var locales = map[string]*Locale{
	English.Code: English,
	Italian.Code: Italian,
}

// DefaultCode is used for users who never picked a language.
const DefaultCode = "en"

// ByCode returns the locale for code, falling back to English when the
// code is unknown.
func ByCode(code string) *Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return English
}

// Known reports whether code names a built-in locale.
func Known(code string) bool {
	_, ok := locales[code]
	return ok
}

// Available returns every built-in locale, sorted by code.
func Available() []*Locale {
	out := make([]*Locale, 0, len(locales))
	for _, l := range locales {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
