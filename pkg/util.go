package pkg

import (
	"fmt"
	"os"
	"time"
)

const DayLayout = "2006-01-02"

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if isDir != stat.IsDir() {
		return false, fmt.Errorf("%s: is a directory = %t", path, stat.IsDir())
	}
	return true, nil
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD date. Empty input yields today.
func ParseDay(s string) (time.Time, error) {
	if s == "" {
		return Day(time.Now()), nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day [%s]: %w", s, err)
	}
	return t, nil
}
