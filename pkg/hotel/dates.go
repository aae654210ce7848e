package hotel

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of stay dates.
const DateLayout = "2006-01-02"

// DateRange is a half-open stay interval [checkIn, checkOut) at day granularity.
type DateRange struct {
	checkIn  time.Time
	checkOut time.Time
}

// ParseDate parses a YYYY-MM-DD date as a UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return parsed, nil
}

// NewDateRange truncates both bounds to calendar days and requires checkIn < checkOut.
func NewDateRange(checkIn time.Time, checkOut time.Time) (DateRange, error) {
	normalizedIn := startOfDay(checkIn)
	normalizedOut := startOfDay(checkOut)
	if !normalizedIn.Before(normalizedOut) {
		return DateRange{}, fmt.Errorf("%w: check-out %s must be after check-in %s", ErrInvalidRange, normalizedOut.Format(DateLayout), normalizedIn.Format(DateLayout))
	}
	return DateRange{checkIn: normalizedIn, checkOut: normalizedOut}, nil
}

// ParseDateRange parses both bounds and builds a DateRange.
func ParseDateRange(rawCheckIn string, rawCheckOut string) (DateRange, error) {
	checkIn, err := ParseDate(rawCheckIn)
	if err != nil {
		return DateRange{}, err
	}
	checkOut, err := ParseDate(rawCheckOut)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(checkIn, checkOut)
}

// CheckIn returns the first night of the stay.
func (stay DateRange) CheckIn() time.Time {
	return stay.checkIn
}

// CheckOut returns the departure day, which is not occupied.
func (stay DateRange) CheckOut() time.Time {
	return stay.checkOut
}

// IsZero reports whether the range was never constructed.
func (stay DateRange) IsZero() bool {
	return stay.checkIn.IsZero() && stay.checkOut.IsZero()
}

// Nights counts occupied nights.
func (stay DateRange) Nights() int {
	return int(stay.checkOut.Sub(stay.checkIn).Hours() / hoursPerDay)
}

// Overlaps applies the half-open test a1 < b2 && b1 < a2.
func (stay DateRange) Overlaps(other DateRange) bool {
	return stay.checkIn.Before(other.checkOut) && other.checkIn.Before(stay.checkOut)
}

// String renders the range as "checkIn/checkOut".
func (stay DateRange) String() string {
	return stay.checkIn.Format(DateLayout) + "/" + stay.checkOut.Format(DateLayout)
}

func startOfDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Page selects a slice of a newest-first listing. Numbers start at zero.
type Page struct {
	number int
	size   int
}

// NewPage validates paging input; a non-positive size selects the default.
func NewPage(number int, size int) (Page, error) {
	if number < 0 {
		return Page{}, fmt.Errorf("%w: page number %d is negative", ErrInvalidPage, number)
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		return Page{}, fmt.Errorf("%w: page size exceeds maximum: %d > %d", ErrInvalidPage, size, MaxPageSize)
	}
	return Page{number: number, size: size}, nil
}

// Number returns the zero-based page number.
func (page Page) Number() int {
	return page.number
}

// Limit returns the page size, falling back to the default for a zero Page.
func (page Page) Limit() int {
	if page.size <= 0 {
		return DefaultPageSize
	}
	return page.size
}

// Offset returns the number of rows to skip.
func (page Page) Offset() int {
	return page.number * page.Limit()
}
