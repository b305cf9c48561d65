package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"agendai/internal/dateutil"
	"agendai/internal/models"
)

// Weekday names in normalized (unaccented, lowercase) form.
var weekdayTokens = map[string]time.Weekday{
	"domenica":  time.Sunday,
	"lunedi":    time.Monday,
	"martedi":   time.Tuesday,
	"mercoledi": time.Wednesday,
	"giovedi":   time.Thursday,
	"venerdi":   time.Friday,
	"sabato":    time.Saturday,
}

// titleBoundaries are the recurrence markers that end the free-text title.
var titleBoundaries = []string{
	"dal", "dalle", "tutti", "fino",
	"lunedi", "martedi", "mercoledi", "giovedi", "venerdi", "sabato", "domenica",
}

var (
	weekdayAlt   = "(lunedi|martedi|mercoledi|giovedi|venerdi|sabato|domenica)"
	weekdayRx    = regexp.MustCompile(weekdayAlt)
	dayRangeRx   = regexp.MustCompile(`dal\s+` + weekdayAlt + `\s+al\s+` + weekdayAlt)
	timeRangeRx  = regexp.MustCompile(`dall[ea]\s+(\d{1,2})(?::(\d{2}))?\s+all[ea]\s+(\d{1,2})(?::(\d{2}))?`)
	dateRangeRx  = regexp.MustCompile(`dal\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?\s+al\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	dateUntilRx  = regexp.MustCompile(`fino\s+al\s+(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	allDaysAlt1  = "tutti i giorni"
	allDaysAlt2  = "ogni giorno"
	businessWeek = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
)

// extractTitle takes the text up to the first recurrence marker. When no
// marker exists the first whitespace-delimited token is used. The returned
// title keeps the original casing and accents.
func extractTitle(original, normalized string) string {
	boundary := -1
	for _, kw := range titleBoundaries {
		if idx := strings.Index(normalized, kw); idx >= 0 && (boundary < 0 || idx < boundary) {
			boundary = idx
		}
	}

	origRunes := []rune(original)
	if boundary >= 0 {
		runeOff := len([]rune(normalized[:boundary]))
		return strings.TrimSpace(string(origRunes[:runeOff]))
	}

	fields := strings.Fields(original)
	if len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// extractWeekdays resolves the weekday set. Rules are tried in priority order:
// every-day phrases, a "dal X al Y" range (cyclic, so Friday..Monday wraps
// through the weekend), any weekday names scattered in the text, and finally
// the Monday..Friday business week.
func extractWeekdays(normalized string) []time.Weekday {
	if strings.Contains(normalized, allDaysAlt1) || strings.Contains(normalized, allDaysAlt2) {
		return []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		}
	}

	if m := dayRangeRx.FindStringSubmatch(normalized); m != nil {
		start := weekdayTokens[m[1]]
		end := weekdayTokens[m[2]]
		days := []time.Weekday{start}
		for d := start; d != end; {
			d = (d + 1) % 7
			days = append(days, d)
		}
		return days
	}

	if names := weekdayRx.FindAllString(normalized, -1); len(names) > 0 {
		seen := make(map[time.Weekday]bool)
		var days []time.Weekday
		for _, name := range names {
			wd := weekdayTokens[name]
			if !seen[wd] {
				seen[wd] = true
				days = append(days, wd)
			}
		}
		return days
	}

	return append([]time.Weekday(nil), businessWeek...)
}

// extractTimeRange matches "dalle h[:mm] alle h[:mm]" (dalla/alla forms too).
// Hours are zero-padded, minutes default to 00. No match leaves both empty.
func extractTimeRange(normalized string) (start, end string) {
	m := timeRangeRx.FindStringSubmatch(normalized)
	if m == nil {
		return "", ""
	}
	return ClockString(m[1], m[2]), ClockString(m[3], m[4])
}

// ClockString builds a zero-padded HH:MM from hour/minute captures; a missing
// minute part reads as ":00".
func ClockString(hour, minute string) string {
	if len(hour) == 1 {
		hour = "0" + hour
	}
	if minute == "" {
		minute = "00"
	}
	return hour + ":" + minute
}

// extractDateRange resolves the habit's date bounds relative to now:
// an explicit "dal d/m[/y] al d/m[/y]" range, a "fino al d/m[/y]" end with
// today as start, or the default today..December 31. An inverted range is a
// validation error.
func extractDateRange(normalized string, now time.Time) (start, end string, err error) {
	year := now.Year()

	if m := dateRangeRx.FindStringSubmatch(normalized); m != nil {
		start = AbsoluteDate(m[1], m[2], m[3], year)
		end = AbsoluteDate(m[4], m[5], m[6], year)
	} else if m := dateUntilRx.FindStringSubmatch(normalized); m != nil {
		start = dateutil.FormatDate(now)
		end = AbsoluteDate(m[1], m[2], m[3], year)
	} else {
		start = dateutil.FormatDate(now)
		end = fmt.Sprintf("%04d-12-31", year)
	}

	if start > end {
		return "", "", &ValidationError{
			Reason: fmt.Sprintf("la data di inizio %s è successiva alla data di fine %s", start, end),
		}
	}
	return start, end, nil
}

// AbsoluteDate builds YYYY-MM-DD from day/month/year captures as matched in
// user text. A two-digit year is expanded with the "20" prefix; a missing year
// takes the current one. The assistant shares it for "d/m" event dates.
func AbsoluteDate(day, month, year string, currentYear int) string {
	switch len(year) {
	case 0:
		year = fmt.Sprintf("%04d", currentYear)
	case 2:
		year = "20" + year
	}
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}
	return year + "-" + month + "-" + day
}

// Category keyword tables, checked sport -> studio -> lavoro, first match
// wins. No match leaves the default "personale".
var categoryKeywords = []struct {
	category models.Category
	words    []string
}{
	{models.CategorySport, []string{"palestra", "gym", "corsa", "nuoto", "calcio", "tennis", "allenamento"}},
	{models.CategoryStudy, []string{"studio", "lezione", "corso", "esame", "universita"}},
	{models.CategoryWork, []string{"lavoro", "ufficio", "riunione", "meeting"}},
}

// InferCategory classifies free text into a category by keyword. The input
// may be raw; it is normalized internally.
func InferCategory(text string) models.Category {
	normalized := Normalize(text)
	for _, set := range categoryKeywords {
		for _, w := range set.words {
			if strings.Contains(normalized, w) {
				return set.category
			}
		}
	}
	return models.CategoryPersonal
}
