package utils

import (
	"math"

	"github.com/jftuga/geodist"
)

// GreatCircleKM returns the distance in kilometers between two coordinates, rounded to
// one decimal. ok is false when either coordinate is missing or out of range.
func GreatCircleKM(lat1, lon1, lat2, lon2 float64) (float64, bool) {
	if !validCoord(lat1, lon1) || !validCoord(lat2, lon2) {
		return 0, false
	}
	p := geodist.Coord{Lat: lat1, Lon: lon1}
	q := geodist.Coord{Lat: lat2, Lon: lon2}
	_, km, err := geodist.VincentyDistance(p, q)
	if err != nil {
		// Vincenty does not converge for nearly antipodal points
		_, km = geodist.HaversineDistance(p, q)
	}
	return RoundTo(km, 1), true
}

// RoundTo rounds v to the given number of decimal digits; negative digits return v unchanged.
func RoundTo(v float64, digits int) float64 {
	if digits < 0 {
		return v
	}
	pow := math.Pow(10, float64(digits))
	return math.Round(v*pow) / pow
}

func validCoord(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
