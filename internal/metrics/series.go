package metrics

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/models"
)

var durationMonths = map[string]float64{
	"15 Days":  0.5,
	"1 Month":  1,
	"2 Months": 2,
	"3 Months": 3,
	"4 Months": 4,
	"5 Months": 5,
	"6 Months": 6,
	"7 Months": 7,
	"8 Months": 8,
}

const defaultMonths = 6

// DurationMonths maps a duration label to months; unknown labels count as six.
func DurationMonths(duration string) float64 {
	if m, ok := durationMonths[duration]; ok {
		return m
	}
	return defaultMonths
}

// TimePoints is the number of periods charted for a duration, never below two.
func TimePoints(duration string) int {
	n := int(math.Ceil(DurationMonths(duration)))
	if n < 2 {
		return 2
	}
	return n
}

// Series projects the estimated funnel over the campaign duration. The growth
// and linear models are cumulative and non-decreasing; the jitter model spreads
// the totals over periods with per-period noise.
func Series(in models.Inputs, m models.Metrics, p config.Estimation) []models.ChartPoint {
	months := DurationMonths(in.Duration)
	n := TimePoints(in.Duration)
	unit := "Month"
	if months < 1 {
		unit = "Week"
	}

	var rng *rand.Rand
	if p.SeriesModel == SeriesJitter {
		seed := seedFor(in)
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	chMult := seriesChannelMultiplier(in.MarketingChannels)

	out := make([]models.ChartPoint, 0, n)
	for i := 1; i <= n; i++ {
		var f float64
		switch p.SeriesModel {
		case SeriesLinear:
			f = float64(i) / float64(n)
		case SeriesJitter:
			f = (0.7 + 0.6*rng.Float64()) / float64(n)
		default:
			f = clamp01(math.Pow(float64(i)/float64(n), p.SeriesExponent) * chMult)
		}
		out = append(out, models.ChartPoint{
			Period:         fmt.Sprintf("%s %d", unit, i),
			Leads:          scale(m.Leads, f),
			QualifiedLeads: scale(m.QualifiedLeads, f),
			SiteVisits:     scale(m.SiteVisits, f),
			Bookings:       scale(m.Bookings, f),
			CPL:            m.CPL,
		})
	}
	return out
}

func seedFor(in models.Inputs) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s|%s|%s|%s|%d|%s", in.PropertyType, in.LaunchType, in.Location,
		in.Configuration, in.MarketingChannels, in.SellUnits, in.Duration)
	return h.Sum64()
}

func scale(v int, f float64) int { return int(roundHalfUp(float64(v) * f)) }

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
