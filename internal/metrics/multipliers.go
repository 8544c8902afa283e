package metrics

import "strings"

// Lookup order matters: the first matching city wins, so "New Delhi South"
// resolves through "Delhi" and "Greater Noida" falls through to the default.
var locationTiers = []struct {
	city string
	mult float64
}{
	{"Mumbai", 1.5},
	{"Delhi", 1.3},
	{"Bangalore", 1.2},
	{"Chennai", 1.0},
	{"Hyderabad", 0.9},
}

func locationMultiplier(location string) float64 {
	for _, t := range locationTiers {
		if strings.Contains(location, t.city) {
			return t.mult
		}
	}
	return 0.8
}

var configurationMults = map[string]float64{
	"1 RK":  0.7,
	"1 BHK": 0.8,
	"2 BHK": 1.0,
	"3 BHK": 1.2,
	"4 BHK": 1.4,
	"5 BHK": 1.6,
	"Villa": 1.8,
}

func configurationMultiplier(configuration string) float64 {
	if m, ok := configurationMults[configuration]; ok {
		return m
	}
	if strings.Contains(configuration, "Plot") {
		return 1.1
	}
	return 1.0
}

// channelMultiplier scales lead volume; Google-only search intent converts best.
func channelMultiplier(channels string) float64 {
	switch {
	case strings.Contains(channels, "Google"):
		return 1.3
	case strings.Contains(channels, "+"):
		return 1.1
	}
	return 1.0
}

// seriesChannelMultiplier scales how fast the projected series ramps up.
func seriesChannelMultiplier(channels string) float64 {
	switch {
	case strings.Contains(channels, "+"):
		return 1.1
	case strings.Contains(channels, "Google"):
		return 1.2
	}
	return 1.0
}

// channelCPLAdjust returns the signed offset applied to the base CPL:
// mixed campaigns keep the table value, Google pays more, Meta less.
func channelCPLAdjust(channels string, offset float64) float64 {
	switch {
	case strings.Contains(channels, "+"):
		return 0
	case strings.Contains(channels, "Google"):
		return offset
	}
	return -offset
}

func propertyMultiplier(propertyType string) float64 {
	switch propertyType {
	case "Villa":
		return 1.5
	case "Commercial":
		return 1.3
	case "Senior Living":
		return 0.8
	}
	return 1.0
}

func launchMultiplier(launchType string) float64 {
	switch launchType {
	case "Teaser":
		return 0.7
	case "Sustenance":
		return 0.9
	case "NRI":
		return 1.2
	}
	return 1.0
}
