package service

import (
	"math"
	"testing"

	academicsModel "abcschool_backend/internals/features/academics/model"
)

// kampus ABC di Johannesburg
var testCampus = &academicsModel.SchoolCampusModel{
	SchoolCampusName:      "Main Campus",
	SchoolCampusCenterLat: -26.2041,
	SchoolCampusCenterLng: 28.0473,
	SchoolCampusRadiusM:   150,
}

func TestDistanceMetersKnownPair(t *testing.T) {
	// Johannesburg → Pretoria, kira-kira 52-54 km
	d := DistanceMeters(-26.2041, 28.0473, -25.7479, 28.2293)
	if d < 50000 || d > 56000 {
		t.Fatalf("Jhb-Pta = %.0f m, di luar rentang wajar", d)
	}

	if d := DistanceMeters(-26.2041, 28.0473, -26.2041, 28.0473); d != 0 {
		t.Fatalf("jarak titik yang sama = %f, mau 0", d)
	}
}

func TestWithinCampus(t *testing.T) {
	// di titik pusat
	if !WithinCampus(testCampus, -26.2041, 28.0473) {
		t.Fatalf("titik pusat harus di dalam")
	}

	// ~100 m ke utara: 1 derajat lintang ≈ 111.32 km
	lat100m := testCampus.SchoolCampusCenterLat + 100.0/111320.0
	if !WithinCampus(testCampus, lat100m, testCampus.SchoolCampusCenterLng) {
		t.Fatalf("100 m dari pusat harus di dalam radius 150 m")
	}

	// ~200 m ke utara: di luar
	lat200m := testCampus.SchoolCampusCenterLat + 200.0/111320.0
	if WithinCampus(testCampus, lat200m, testCampus.SchoolCampusCenterLng) {
		t.Fatalf("200 m dari pusat harus di luar radius 150 m")
	}

	// verifikasi asumsi offset-nya sendiri
	d := DistanceMeters(testCampus.SchoolCampusCenterLat, testCampus.SchoolCampusCenterLng, lat200m, testCampus.SchoolCampusCenterLng)
	if math.Abs(d-200) > 5 {
		t.Fatalf("offset 200 m meleset: %f", d)
	}
}

func TestWithinCampusNilCampusAllowsAll(t *testing.T) {
	if !WithinCampus(nil, 0, 0) {
		t.Fatalf("tanpa kampus ter-geofence, semua koordinat diterima")
	}
}
