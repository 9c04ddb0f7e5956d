// Package i18n resolves the effective localized view of an entity that
// carries zero-or-one translation rows per language. A translation row may
// leave individual fields unset; fallback is per field, never all-or-nothing.
package i18n

// DefaultLanguage is assumed when a caller does not request a language.
const DefaultLanguage = "en"

// Translation is one localized row attached to a base entity.
type Translation interface {
	Lang() string
	Active() bool
}

// Pick returns the active translation matching lang, if any.
// A missing or inactive row is the steady-state "use base fields" case.
func Pick[T Translation](rows []T, lang string) (T, bool) {
	var zero T
	if lang == "" {
		return zero, false
	}
	for _, row := range rows {
		if row.Lang() == lang && row.Active() {
			return row, true
		}
	}
	return zero, false
}

// Override returns the translated value when it is set, otherwise the base
// value. This is the field-level fallback rule.
func Override(translated, base string) string {
	if translated != "" {
		return translated
	}
	return base
}
