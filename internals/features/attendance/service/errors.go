package service

import "errors"

// Sentinel errors — dipetakan ke 4xx oleh controller.
var (
	ErrQREmpty  = errors.New("empty qr payload")
	ErrQRFormat = errors.New("unsupported qr format")

	// siswa tidak punya enrollment active di periode berjalan
	ErrNotEnrolled = errors.New("student not enrolled this period")

	// QR ruangan/grup tidak cocok dengan grup siswa
	ErrWrongClassroom = errors.New("wrong classroom for student group")

	// koordinat di luar radius kampus
	ErrOutsideCampus = errors.New("location outside campus radius")

	// guru tidak ditugaskan ke grup check-in tsb
	ErrNotAuthorized = errors.New("teacher not assigned to this group")
)
