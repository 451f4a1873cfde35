package service

import (
	"math"

	academicsModel "abcschool_backend/internals/features/academics/model"
)

const earthRadiusM = 6371000.0

// DistanceMeters — haversine antara dua koordinat WGS84.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLng := (lng2 - lng1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinCampus: true kalau koordinat masih dalam radius geofence kampus.
func WithinCampus(campus *academicsModel.SchoolCampusModel, lat, lng float64) bool {
	if campus == nil {
		return true
	}
	d := DistanceMeters(campus.SchoolCampusCenterLat, campus.SchoolCampusCenterLng, lat, lng)
	return d <= campus.SchoolCampusRadiusM
}
