package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const desktopGroup = "Desktop Entry"

// Entry holds the keys of a desktop file's [Desktop Entry] group. Localized
// keys are stored verbatim, e.g. "Name[de]".
type Entry map[string]string

// ParseDesktopEntry reads the [Desktop Entry] group of a desktop file.
func ParseDesktopEntry(r io.Reader) (Entry, error) {
	entry := make(Entry)
	group := ""
	seen := false

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
			group = text[1 : len(text)-1]
			if group == desktopGroup {
				seen = true
			}
			continue
		}
		if group != desktopGroup {
			continue
		}
		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=value", line)
		}
		entry[strings.TrimSpace(key)] = unescape(strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !seen {
		return nil, fmt.Errorf("missing [%s] group", desktopGroup)
	}
	return entry, nil
}

// LoadDesktopEntry parses the desktop file at path.
func LoadDesktopEntry(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entry, err := ParseDesktopEntry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entry, nil
}

// Localized returns key for the best match of locale (lang_COUNTRY@MODIFIER
// form), falling back to the unlocalized value.
func (e Entry) Localized(key, locale string) string {
	for _, l := range localeVariants(locale) {
		if v, ok := e[key+"["+l+"]"]; ok {
			return v
		}
	}
	return e[key]
}

func localeVariants(locale string) []string {
	if i := strings.IndexByte(locale, '.'); i >= 0 {
		// Drop the encoding but keep any modifier.
		rest := locale[i:]
		locale = locale[:i]
		if j := strings.IndexByte(rest, '@'); j >= 0 {
			locale += rest[j:]
		}
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return nil
	}

	lang, modifier, _ := strings.Cut(locale, "@")
	lang, country, _ := strings.Cut(lang, "_")

	var out []string
	if country != "" && modifier != "" {
		out = append(out, lang+"_"+country+"@"+modifier)
	}
	if country != "" {
		out = append(out, lang+"_"+country)
	}
	if modifier != "" {
		out = append(out, lang+"@"+modifier)
	}
	return append(out, lang)
}

// CurrentLocale returns the message locale from the environment.
func CurrentLocale() string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			b.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 's':
			b.WriteByte(' ')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// StripFieldCodes removes %f, %U and friends from an Exec value. Runs of
// spaces left outside quotes collapse to one.
func StripFieldCodes(exec string) string {
	var b strings.Builder
	quoted := false
	last := byte(' ')
	write := func(c byte) {
		if c == ' ' && last == ' ' && !quoted {
			return
		}
		if c == '"' {
			quoted = !quoted
		}
		b.WriteByte(c)
		last = c
	}
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' || i == len(exec)-1 {
			write(exec[i])
			continue
		}
		i++
		if exec[i] == '%' {
			write('%')
		}
	}
	return strings.TrimSpace(b.String())
}
