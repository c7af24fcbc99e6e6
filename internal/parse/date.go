package parse

import (
	"regexp"
	"strconv"
	"time"
)

// KST is the reference timezone for all calendar bucketing. Both platforms
// serve the Korean market; normalizing to one fixed offset keeps day and
// month grouping stable no matter where the export is analyzed.
var KST = time.FixedZone("KST", 9*60*60)

var koreanDatePattern = regexp.MustCompile(`(\d{4})년 (\d{1,2})월 (\d{1,2})일`)

// KoreanDate parses a "YYYY년 M월 D일" date string into a calendar date at
// midnight KST. The second return is false when the pattern does not match;
// the caller skips the record.
func KoreanDate(s string) (time.Time, bool) {
	parts := koreanDatePattern.FindStringSubmatch(s)
	if parts == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(parts[1])
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, KST), true
}

// InstantDate converts an absolute timestamp (an RFC 3339 instant, the
// order export's creationTime) to a calendar date at midnight KST. The
// instant must be shifted into KST before taking year/month/day: reading
// the UTC calendar date directly moves purchases made near midnight into
// the wrong day bucket.
func InstantDate(s string) (time.Time, bool) {
	instant, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	local := instant.In(KST)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, KST), true
}
