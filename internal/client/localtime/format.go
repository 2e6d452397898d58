package localtime

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// InvalidDate is what an empty match time renders as.
const InvalidDate = "Invalid Date"

type layout struct {
	tag    language.Tag
	format string
}

// layouts lists the supported locales; the first entry is the default.
var layouts = []layout{
	{language.AmericanEnglish, "1/2/2006, 3:04:05 PM"},
	{language.BritishEnglish, "02/01/2006, 15:04:05"},
	{language.German, "2.1.2006, 15:04:05"},
	{language.French, "02/01/2006 15:04:05"},
	{language.Spanish, "2/1/2006, 15:04:05"},
	{language.Italian, "2/1/2006, 15:04:05"},
	{language.Russian, "02.01.2006, 15:04:05"},
	{language.Japanese, "2006/1/2 15:04:05"},
	{language.Chinese, "2006/1/2 15:04:05"},
	{language.BrazilianPortuguese, "02/01/2006, 15:04:05"},
	{language.Dutch, "2-1-2006, 15:04:05"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(layouts))
	for i, l := range layouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// Formatter formats times for one viewer.
type Formatter struct {
	loc    *time.Location
	tag    language.Tag
	layout string
}

// NewFormatter resolves locale (a BCP 47 tag such as "en-GB") and binds the
// formatter to loc. A nil loc means time.Local.
func NewFormatter(locale string, loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	l := layouts[0]
	if tag, err := language.Parse(locale); err == nil && locale != "" {
		_, idx, conf := matcher.Match(tag)
		if conf != language.No {
			l = layouts[idx]
		}
	}
	return &Formatter{loc: loc, tag: l.tag, layout: l.format}
}

// LoadLocation accepts "", "Local" or an IANA zone name.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", name, err)
	}
	return loc, nil
}

// Locale returns the resolved locale tag.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Location returns the viewer's time zone.
func (f *Formatter) Location() *time.Location {
	return f.loc
}

// Format renders t in the viewer's zone and locale.
func (f *Formatter) Format(t time.Time) string {
	return t.In(f.loc).Format(f.layout)
}

// FormatMatchTime joins date, clock and zone into a kick-off time and
// renders it for the viewer. An empty zone means the viewer's own zone.
func (f *Formatter) FormatMatchTime(date, clock, zone string) string {
	t, err := f.ParseMatchTime(date, clock, zone)
	if err != nil {
		raw := strings.TrimSpace(strings.Join([]string{date, clock, zone}, " "))
		if raw == "" {
			return InvalidDate
		}
		return raw
	}
	return f.Format(t)
}

var (
	dateLayouts  = []string{"2006-01-02", "2006/01/02", "2006-1-2", "2006/1/2"}
	clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM"}
	offsetRe     = regexp.MustCompile(`^([+-])(\d{1,2})(?::?(\d{2}))?$`)
)

// ParseMatchTime parses the backend's date, clock and zone fields.
func (f *Formatter) ParseMatchTime(date, clock, zone string) (time.Time, error) {
	d, err := parseFirst(strings.TrimSpace(date), dateLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	c, err := parseFirst(strings.TrimSpace(clock), clockLayouts)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", clock, err)
	}
	loc, err := f.parseZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), c.Second(), 0, loc), nil
}

func parseFirst(s string, candidates []string) (time.Time, error) {
	var lastErr error
	for _, l := range candidates {
		t, err := time.Parse(l, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (f *Formatter) parseZone(zone string) (*time.Location, error) {
	z := strings.TrimSpace(zone)
	if z == "" {
		return f.loc, nil
	}

	upper := strings.ToUpper(z)
	switch upper {
	case "UTC", "GMT", "Z":
		return time.UTC, nil
	}
	for _, prefix := range []string{"UTC", "GMT"} {
		if strings.HasPrefix(upper, prefix) {
			upper = strings.TrimSpace(upper[len(prefix):])
			break
		}
	}

	if m := offsetRe.FindStringSubmatch(upper); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("offset %q out of range", zone)
		}
		secs := hours*3600 + minutes*60
		if m[1] == "-" {
			secs = -secs
		}
		return time.FixedZone(z, secs), nil
	}

	loc, err := time.LoadLocation(z)
	if err != nil {
		return nil, fmt.Errorf("parse zone %q: %w", zone, err)
	}
	return loc, nil
}
