package workflow

import (
	"testing"
	"time"
)

func TestNormalizeStartTime(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"09:30", "09:30:00", false},
		{"9:30", "09:30:00", false},
		{"09:30:15", "09:30:15", false},
		{"00:00", "00:00:00", false},
		{"23:59:59", "23:59:59", false},
		{"24:00", "", true},
		{"09:60", "", true},
		{"0930", "", true},
		{"", "", true},
		{"neuf heures", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeStartTime(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeStartTime(%q): erreur attendue, obtenu %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeStartTime(%q): erreur inattendue: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeStartTime(%q): attendu %q, obtenu %q", tc.in, tc.want, got)
		}
	}
}

// Aller-retour : la date et l'heure:minute du rendez-vous calculé
// correspondent toujours exactement au créneau d'origine.
func TestScheduledDate_RoundTrip(t *testing.T) {
	cases := []struct {
		date  time.Time
		start string
	}{
		{time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "09:30"},
		{time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), "9:05"},
		{time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), "23:59:59"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "00:00"},
	}

	for _, tc := range cases {
		got, err := ScheduledDate(tc.date, tc.start)
		if err != nil {
			t.Fatalf("ScheduledDate(%v, %q): %v", tc.date, tc.start, err)
		}

		if got.Year() != tc.date.Year() || got.Month() != tc.date.Month() || got.Day() != tc.date.Day() {
			t.Errorf("date altérée: %v depuis %v", got, tc.date)
		}

		normalized, _ := NormalizeStartTime(tc.start)
		if got.Format("15:04:05") != normalized {
			t.Errorf("heure attendue %s, obtenue %s", normalized, got.Format("15:04:05"))
		}
	}
}

func TestScheduledDate_InvalidTime(t *testing.T) {
	_, err := ScheduledDate(time.Now(), "pas une heure")
	if err == nil {
		t.Error("une heure invalide doit être refusée")
	}
}
