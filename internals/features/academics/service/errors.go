package service

import "errors"

// Sentinel errors — controller yang memetakan ke status HTTP.
var (
	// lebih dari satu enrollment active untuk (periode, siswa)
	ErrDataIntegrity = errors.New("data integrity: multiple active enrollments")

	// siswa tidak punya enrollment apa pun di periode berjalan
	ErrNoCurrentEnrollment = errors.New("no enrollment in current period")

	// periode sudah ditutup, mutasi ditolak
	ErrPeriodClosed = errors.New("academic period is closed")

	// intent sudah diputuskan (approved/rejected), tidak bisa diputuskan ulang
	ErrIntentDecided = errors.New("re-enrollment intent already decided")
)
