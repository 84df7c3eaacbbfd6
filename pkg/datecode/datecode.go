// Package datecode packs catalog dates into a single integer that sorts in
// (roughly) chronological order.
//
// Layout, low bits first: 5 bits day, 5 bits month, 11 bits year. Besides
// doubled calendar months the month field is meant to carry odd special-issue
// codes (1 New Year, 3 Valentine's, 5 Spring, 7 Easter, 13 Summer, 19 Fall,
// 21 Halloween, 23 Winter, 25 Christmas, 27 Annual, 29 Other).
//
// Encode stores the calendar month undoubled while Decode reads the month
// field shifted by one bit, so only day and year survive a round trip; a
// July date decodes as month 3. Both formulas are kept exactly as the stored
// codes were produced.
package datecode

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// Unknown is returned for text that is not a YYYY-MM-DD date.
	Unknown = 0

	// NewScan is shown for negative codes, which mark freshly added issues
	// whose date is not known yet.
	NewScan = "New Scan"

	maxYear  = 2047
	maxField = 31
)

// Date is a decoded code. Zero fields are unknown.
type Date struct {
	Code  int
	Year  int
	Month int
	Day   int
}

// Encode packs "YYYY-MM-DD" as day + month*32 + year*1024. Anything else,
// including out-of-range components, yields Unknown.
func Encode(text string) int {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return Unknown
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return Unknown
		}
		nums[i] = n
	}
	year, month, day := nums[0], nums[1], nums[2]
	if year > maxYear || month > maxField || day > maxField {
		return Unknown
	}
	return day + month*32 + year*1024
}

// Decode unpacks code. Negative codes carry no date.
func Decode(code int) Date {
	if code < 0 {
		return Date{Code: code}
	}
	return Date{
		Code:  code,
		Year:  code / 1024,
		Month: (code / 64) & 15,
		Day:   code & 31,
	}
}

// String renders YYYY/MM/DD, YYYY/MM or YYYY depending on which parts are
// known, "?" when none are, and NewScan for negative codes.
func (d Date) String() string {
	switch {
	case d.Code < 0:
		return NewScan
	case d.Day != 0:
		return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
	case d.Month != 0:
		return fmt.Sprintf("%04d/%02d", d.Year, d.Month)
	case d.Year != 0:
		return fmt.Sprintf("%04d", d.Year)
	default:
		return "?"
	}
}

// Display is shorthand for Decode(code).String().
func Display(code int) string {
	return Decode(code).String()
}
