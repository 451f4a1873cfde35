package service

import (
	"testing"
	"time"
)

func jhb(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Johannesburg")
	if err != nil {
		t.Skipf("tzdata tidak ada: %v", err)
	}
	return loc
}

func TestClassifyBoundaries(t *testing.T) {
	loc := jhb(t)
	cl := NewClassifier(loc)

	start := "08:00"
	date := time.Date(2026, time.September, 7, 0, 0, 0, 0, loc)
	at := func(h, m int) time.Time {
		return time.Date(2026, time.September, 7, h, m, 0, 0, loc)
	}

	cases := []struct {
		name     string
		grace    *int
		scan     time.Time
		status   string
		lateMins int
	}{
		{"jauh sebelum mulai", nil, at(7, 30), "present", 0},
		{"tepat jam mulai", nil, at(8, 0), "present", 0},
		{"di dalam grace", nil, at(8, 44), "present", 0},
		{"tepat batas grace", nil, at(8, 45), "present", 0},
		{"satu menit lewat", nil, at(8, 46), "late", 1},
		{"telat jauh", nil, at(10, 0), "late", 75},
		{"grace custom 10", intPtr(10), at(8, 11), "late", 1},
		{"grace custom 10 masih aman", intPtr(10), at(8, 10), "present", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cl.Classify(&start, tc.grace, date, tc.scan)
			if got.Status != tc.status || got.LateMinutes != tc.lateMins {
				t.Fatalf("Classify = %+v, mau {%s %d}", got, tc.status, tc.lateMins)
			}
		})
	}
}

func TestClassifyNoStartTimeAlwaysPresent(t *testing.T) {
	cl := NewClassifier(jhb(t))

	got := cl.Classify(nil, nil, time.Now(), time.Now().Add(10*time.Hour))
	if got.Status != "present" || got.LateMinutes != 0 {
		t.Fatalf("tanpa jadwal harus present/0, dapat %+v", got)
	}
}

func TestClassifyCorruptStartTime(t *testing.T) {
	cl := NewClassifier(jhb(t))
	bad := "banyak-siang"

	got := cl.Classify(&bad, nil, time.Now(), time.Now())
	if got.Status != "present" {
		t.Fatalf("jam mulai korup tidak boleh menghukum siswa, dapat %+v", got)
	}
}

func TestParseScanClock(t *testing.T) {
	loc := jhb(t)
	cl := NewClassifier(loc)
	server := time.Date(2026, time.September, 7, 9, 0, 0, 0, loc)

	// client valid → dipakai
	got := cl.ParseScanClock("2026-09-07T08:30:00+02:00", server)
	if !got.Equal(time.Date(2026, time.September, 7, 8, 30, 0, 0, loc)) {
		t.Fatalf("client time valid harus dipakai, dapat %v", got)
	}

	// client rusak → fallback server, tanpa error
	if got := cl.ParseScanClock("kemarin sore", server); !got.Equal(server) {
		t.Fatalf("client rusak harus fallback ke server, dapat %v", got)
	}
	if got := cl.ParseScanClock("", server); !got.Equal(server) {
		t.Fatalf("client kosong harus fallback ke server, dapat %v", got)
	}
}

func intPtr(v int) *int { return &v }
