package service

import (
	"strconv"
	"strings"
	"time"
)

// toleransi keterlambatan default (menit) kalau grup tidak menyetel sendiri
const DefaultLateGraceMin = 45

type ClassifyResult struct {
	Status      string `json:"status"`
	LateMinutes int    `json:"late_minutes"`
}

/* =========================================================
   Classifier — murni, tanpa DB. Timezone di-inject.
========================================================= */

type Classifier struct {
	Loc *time.Location
}

func NewClassifier(loc *time.Location) *Classifier {
	return &Classifier{Loc: loc}
}

// Classify menentukan present/late untuk satu scan.
//   - startHHMM nil (grup tanpa jadwal) → present, 0 menit.
//   - diff = floor((scan - start) / menit); diff <= grace → present,
//     selebihnya late dengan late_minutes = diff - grace.
//   - scan sebelum jam mulai selalu present.
func (cl *Classifier) Classify(startHHMM *string, graceMin *int, date time.Time, scanTime time.Time) ClassifyResult {
	if startHHMM == nil {
		return ClassifyResult{Status: "present"}
	}

	start, ok := cl.combine(date, *startHHMM)
	if !ok {
		// jam mulai korup di data — jangan hukum siswa
		return ClassifyResult{Status: "present"}
	}

	grace := DefaultLateGraceMin
	if graceMin != nil {
		grace = *graceMin
	}

	diff := int(scanTime.Sub(start) / time.Minute)
	if diff <= grace {
		return ClassifyResult{Status: "present"}
	}
	return ClassifyResult{Status: "late", LateMinutes: diff - grace}
}

// combine menempelkan "HH:MM" ke tanggal di timezone sekolah.
func (cl *Classifier) combine(date time.Time, hhmm string) (time.Time, bool) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 3)
	if len(parts) < 2 {
		return time.Time{}, false
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return time.Time{}, false
	}
	loc := cl.Loc
	if loc == nil {
		loc = time.UTC
	}
	y, mo, d := date.In(loc).Date()
	return time.Date(y, mo, d, h, m, 0, 0, loc), true
}

// ParseScanClock memilih sumber waktu scan: timestamp client (ISO-8601)
// kalau bisa di-parse, selain itu jam server. Gagal parse diabaikan diam.
func (cl *Classifier) ParseScanClock(clientTime string, serverNow time.Time) time.Time {
	s := strings.TrimSpace(clientTime)
	if s == "" {
		return serverNow
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		if cl.Loc != nil {
			return t.In(cl.Loc)
		}
		return t
	}
	return serverNow
}
