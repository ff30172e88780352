package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DateHints are the accident date/time signals pulled straight from the
// text. Each field is independent; nil means the transcript never mentions
// it, which is distinct from mentioning a zero value.
type DateHints struct {
	Date           *string
	Time           *string
	MonthReference *string
}

// CountHints carries the count/duration signals. TimeOffWorkDays is only
// ever 7: the sole recognized phrasing is "(a) week off work".
type CountHints struct {
	PhysioSessions         *int
	AcutePainDurationWeeks *int
	TimeOffWorkDays        *int
}

var (
	timePattern  = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)
	datePattern  = regexp.MustCompile(`\b(september|sept)\s+(\d{1,2})(st|nd|rd|th)?\b`)
	weeksPattern = regexp.MustCompile(`\b(\d+)\s+weeks?\b`)

	sessionsPattern = regexp.MustCompile(`\b(\d+)\s+(?:physio(?:therapy)?\s+)?sessions?\b`)
)

var spelledNumbers = []struct {
	word  string
	value int
}{
	{"one", 1}, {"two", 2}, {"three", 3}, {"four", 4}, {"five", 5},
	{"six", 6}, {"seven", 7}, {"eight", 8}, {"nine", 9}, {"ten", 10},
}

// DatesAndTimes extracts a 24-hour time, a September date and the literal
// "last september" reference. First match wins per field; the patterns are
// evaluated independently.
func DatesAndTimes(text string) DateHints {
	lower := strings.ToLower(text)
	var hints DateHints

	if m := timePattern.FindString(text); m != "" {
		hints.Time = &m
	}
	if m := datePattern.FindStringSubmatch(lower); m != nil {
		month := strings.ToUpper(m[1][:1]) + m[1][1:]
		date := fmt.Sprintf("%s %s", month, m[2])
		hints.Date = &date
	}
	if strings.Contains(lower, "last september") {
		ref := "last September"
		hints.MonthReference = &ref
	}
	return hints
}

// CountsAndDurations extracts session counts, pain duration in weeks and
// time off work. Numeric forms are tried before spelled-out one..ten.
func CountsAndDurations(text string) CountHints {
	lower := strings.ToLower(text)
	var hints CountHints

	hints.PhysioSessions = countMatch(lower, sessionsPattern, `\s+(?:physio(?:therapy)?\s+)?sessions?\b`)
	hints.AcutePainDurationWeeks = countMatch(lower, weeksPattern, `\s+weeks?\b`)

	if strings.Contains(lower, "week off work") {
		days := 7
		hints.TimeOffWorkDays = &days
	}
	return hints
}

func countMatch(lower string, numeric *regexp.Regexp, spelledSuffix string) *int {
	if m := numeric.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return &n
		}
	}
	for _, spelled := range spelledNumbers {
		pattern := regexp.MustCompile(`\b` + spelled.word + spelledSuffix)
		if pattern.MatchString(lower) {
			n := spelled.value
			return &n
		}
	}
	return nil
}
