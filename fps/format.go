package fps

import (
	"math"
	"strconv"
)

const FastItoaTableLength = 1000

var fastItoaTable = [FastItoaTableLength]string{}

func init() {
	for i := range FastItoaTableLength {
		fastItoaTable[i] = strconv.Itoa(i)
	}
}

// FormatFPS rounds to the nearest integer, the common range is served
// from a precomputed table since it runs on every flush.
func FormatFPS(v float64) string {
	if v >= 0 && v < FastItoaTableLength-0.5 {
		return fastItoaTable[int(v+0.5)]
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	// FormatFloat alone would round ties to even
	return strconv.FormatFloat(math.Floor(v+0.5), 'f', 0, 64)
}

func FormatMs(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
