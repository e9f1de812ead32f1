package ports

import (
	"fmt"
	"strconv"
	"time"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseSeason(raw string) (string, error) {
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1876 || year > 2100 {
		return "", fmt.Errorf("invalid season %q", raw)
	}
	return raw, nil
}

func parseDate(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", fmt.Errorf("invalid date %q", raw)
	}
	return raw, nil
}
