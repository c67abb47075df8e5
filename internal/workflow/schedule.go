package workflow

import (
	"fmt"
	"regexp"
	"time"
)

var timeOfDayRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)

// NormalizeStartTime normalise une heure "H:MM", "HH:MM" ou "HH:MM:SS"
// au format canonique "HH:MM:SS" (secondes à :00 si absentes)
func NormalizeStartTime(raw string) (string, error) {
	m := timeOfDayRe.FindStringSubmatch(raw)
	if m == nil {
		return "", fmt.Errorf("heure invalide: %q", raw)
	}

	var hh, mm, ss int
	fmt.Sscanf(m[1], "%d", &hh)
	fmt.Sscanf(m[2], "%d", &mm)
	if m[3] != "" {
		fmt.Sscanf(m[3], "%d", &ss)
	}

	if hh > 23 || mm > 59 || ss > 59 {
		return "", fmt.Errorf("heure invalide: %q", raw)
	}

	return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss), nil
}

// ScheduledDate combine la date du créneau et son heure de début normalisée
// en horodatage de rendez-vous (fuseau de la date conservé)
func ScheduledDate(slotDate time.Time, startTime string) (time.Time, error) {
	normalized, err := NormalizeStartTime(startTime)
	if err != nil {
		return time.Time{}, err
	}

	var hh, mm, ss int
	fmt.Sscanf(normalized, "%02d:%02d:%02d", &hh, &mm, &ss)

	return time.Date(
		slotDate.Year(), slotDate.Month(), slotDate.Day(),
		hh, mm, ss, 0,
		slotDate.Location(),
	), nil
}
