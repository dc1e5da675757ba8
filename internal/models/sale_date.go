package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const saleDateLayout = "2006-01-02"

// SaleDate is a calendar date without time of day or zone.
type SaleDate struct {
	Year  int
	Month time.Month
	Day   int
}

func NewSaleDate(year int, month time.Month, day int) SaleDate {
	return SaleDate{Year: year, Month: month, Day: day}
}

// ParseSaleDate accepts an RFC3339 timestamp or a bare YYYY-MM-DD date. For
// timestamps the wall date in the timestamp's own offset is kept.
func ParseSaleDate(s string) (SaleDate, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return SaleDate{}, fmt.Errorf("empty date")
	}

	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", saleDateLayout} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return SaleDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
		}
	}
	return SaleDate{}, fmt.Errorf("invalid date %q", s)
}

// Valid reports whether d names a real calendar day.
func (d SaleDate) Valid() bool {
	if d.Month < time.January || d.Month > time.December || d.Day < 1 {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

func (d SaleDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d SaleDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *SaleDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseSaleDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
