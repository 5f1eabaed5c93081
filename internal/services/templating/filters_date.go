package templating

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ternarybob/inkwell/internal/models"
)

func init() {
	registerFilter("date", filterDate)
	registerFilter("date_modify", filterDateModify)
	registerFilter("duration", filterDuration)
}

// parseLayouts are tried in order when auto-detecting the carried date's
// format; the format-agnostic ISO variants cover the page-context fields
// (published, highlight timestamps) the date filters most commonly see.
var parseLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

func parseAnyDate(s string) (time.Time, bool) {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateTokenOrder and dateTokenLayout drive tokensToLayout, which rewrites the
// day-based token set into a Go time layout string. Longer tokens are
// matched first so "MMM" isn't shadowed by "MM".
var dateTokenOrder = []string{"YYYY", "MMM", "MM", "DD", "HH", "mm", "ss", "D"}

var dateTokenLayout = map[string]string{
	"YYYY": "2006",
	"MMM":  "Jan",
	"MM":   "01",
	"DD":   "02",
	"HH":   "15",
	"mm":   "04",
	"ss":   "05",
	"D":    "2",
}

func tokensToLayout(format string) string {
	var b strings.Builder
	i := 0
	for i < len(format) {
		matched := false
		for _, tok := range dateTokenOrder {
			if strings.HasPrefix(format[i:], tok) {
				b.WriteString(dateTokenLayout[tok])
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}

// filterDate formats or reformats a date string using the day-based token
// set. On parse failure, the carry passes through unchanged.
func filterDate(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	t, ok := parseAnyDate(value.Str)
	if !ok {
		return value
	}
	format := firstArgString(args, "YYYY-MM-DD")
	return models.NewString(t.Format(tokensToLayout(format)))
}

var intervalPattern = regexp.MustCompile(`^([+-]?\d+)\s*(year|month|week|day|hour|minute|second)s?$`)

// filterDateModify adds a signed interval ("+N unit" | "-N unit") to the
// carried date.
func filterDateModify(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	t, ok := parseAnyDate(value.Str)
	if !ok {
		return value
	}
	spec := strings.TrimSpace(firstArgString(args, ""))
	m := intervalPattern.FindStringSubmatch(spec)
	if m == nil {
		return value
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return value
	}
	switch m[2] {
	case "year":
		t = t.AddDate(n, 0, 0)
	case "month":
		t = t.AddDate(0, n, 0)
	case "week":
		t = t.AddDate(0, 0, 7*n)
	case "day":
		t = t.AddDate(0, 0, n)
	case "hour":
		t = t.Add(time.Duration(n) * time.Hour)
	case "minute":
		t = t.Add(time.Duration(n) * time.Minute)
	case "second":
		t = t.Add(time.Duration(n) * time.Second)
	}
	return models.NewString(t.Format(time.RFC3339))
}

var isoDurationPattern = regexp.MustCompile(`^PT?(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?$`)

// filterDuration accepts an ISO 8601 duration or a number of seconds and
// produces H:mm:ss output.
func filterDuration(value models.FilterValue, args parsedArgs, rc *renderContext) models.FilterValue {
	if value.Kind != models.KindString {
		return value
	}
	seconds, ok := parseDurationSeconds(value.Str)
	if !ok {
		return value
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return models.NewString(fmt.Sprintf("%d:%02d:%02d", h, m, s))
}

func parseDurationSeconds(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return int(n), true
	}
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	sec, _ := strconv.ParseFloat(m[3], 64)
	return h*3600 + min*60 + int(sec), true
}
