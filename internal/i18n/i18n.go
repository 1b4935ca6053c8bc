// Package i18n holds the site's message catalogs and locale-aware number
// formatting.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"
)

// Message keys.
const (
	KeyValidationTitle = "notice.validation.title"
	KeyValidationBody  = "notice.validation.body"
	KeyEmailTitle      = "notice.email.title"
	KeyEmailBody       = "notice.email.body"
	KeySuccessTitle    = "notice.success.title"
	KeySuccessBody     = "notice.success.body"
	KeyFailureTitle    = "notice.failure.title"
	KeyFailureBody     = "notice.failure.body"
	KeyThemeDark       = "theme.dark"
	KeyThemeLight      = "theme.light"
	KeyInvestment      = "summary.investment"
)

var (
	// Default is the fallback locale.
	Default = language.BrazilianPortuguese
	// English is the secondary locale.
	English = language.AmericanEnglish

	supported = []language.Tag{Default, English}
	matcher   = language.NewMatcher(supported)
)

//go:embed locales/*.yaml
var localeFS embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

var messages = mustLoad(localeFS)

func mustLoad(fsys fs.FS) *catalog.Builder {
	b, err := load(fsys)
	if err != nil {
		panic(err)
	}
	return b
}

func load(fsys fs.FS) (*catalog.Builder, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)
	b := catalog.NewBuilder(catalog.Fallback(Default))
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("%s: locale %q: %w", path, file.Locale, err)
		}
		for key, msg := range file.Messages {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("%s: key %s: %w", path, key, err)
			}
		}
	}
	return b, nil
}

// Supported lists the available locales, default first.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match picks the best supported locale for an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// Parse resolves a locale name such as "en-US" to a supported tag.
func Parse(locale string) language.Tag {
	if strings.TrimSpace(locale) == "" {
		return Default
	}
	return Match(locale)
}

// Printer returns a printer bound to the site catalog.
func Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messages))
}

// FormatCurrency renders amount in Brazilian reais with two decimals and the
// locale's digit grouping.
func FormatCurrency(tag language.Tag, amount float64) string {
	p := Printer(tag)
	symbol := p.Sprint(currency.Symbol(currency.BRL))
	return symbol + " " + p.Sprint(number.Decimal(amount, number.Scale(2)))
}
