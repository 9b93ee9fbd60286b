// Package i18n translates the handful of user-facing messages the CLI prints.
// English is built in; other languages are gettext catalogs embedded from
// locales/.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"
)

// English is the built-in language; it needs no catalog.
const English = "en"

// Message IDs shared by the CLI and the catalogs.
const (
	MsgExitFound        = "Exit found!"
	MsgExitNotFound     = "Exit not found."
	MsgEntranceNotFound = "Entrance not found in the maze."
	MsgOpenFailed       = "Failed to open maze file."
	MsgMalformed        = "The maze file is malformed."
	MsgStepLimit        = "Search stopped after %d steps."
	MsgPath             = "Path (%d cells): %s"
	MsgUsage            = "Usage: %s <maze_file>"
)

// ErrUnknownLanguage is returned by New for a language without a catalog.
var ErrUnknownLanguage = errors.New("i18n: unknown language")

//go:embed locales/*.po
var locales embed.FS

// Catalog looks up translations for one language. A nil Catalog, or one for
// English, returns messages unchanged.
type Catalog struct {
	lang string
	po   *gotext.Po
}

// New loads the catalog for lang. Accepted spellings include "pt_BR",
// "pt-BR" and "pt"; an empty string selects English.
func New(lang string) (*Catalog, error) {
	lang = Normalize(lang)
	if lang == English {
		return &Catalog{lang: English}, nil
	}

	data, err := locales.ReadFile("locales/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, lang, strings.Join(Languages(), ", "))
	}
	po := gotext.NewPo()
	po.Parse(data)
	return &Catalog{lang: lang, po: po}, nil
}

// Lang returns the normalized language of the catalog.
func (c *Catalog) Lang() string {
	if c == nil {
		return English
	}
	return c.lang
}

// Get returns the translation of msg, formatted with vars when given.
func (c *Catalog) Get(msg string, vars ...any) string {
	if c == nil || c.po == nil {
		if len(vars) > 0 {
			return fmt.Sprintf(msg, vars...)
		}
		return msg
	}
	return c.po.Get(msg, vars...)
}

// Normalize maps user spellings onto catalog names.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return English
	}
	lang = strings.ReplaceAll(lang, "-", "_")
	if i := strings.IndexByte(lang, '.'); i >= 0 {
		lang = lang[:i] // drop encodings such as ".UTF-8"
	}
	parts := strings.SplitN(lang, "_", 2)
	base := strings.ToLower(parts[0])
	switch {
	case base == "en":
		return English
	case base == "pt":
		return "pt_BR"
	case len(parts) == 2:
		return base + "_" + strings.ToUpper(parts[1])
	}
	return base
}

// Languages lists every supported language, English first.
func Languages() []string {
	langs := []string{English}
	entries, err := locales.ReadDir("locales")
	if err != nil {
		return langs
	}
	var extra []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), ".po"); ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(langs, extra...)
}
