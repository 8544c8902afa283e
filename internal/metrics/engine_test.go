package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/costtable"
	"github.com/AngelCh415/leadcalc/internal/models"
)

type fixedCost int

func (f fixedCost) CPL(string, string) int { return int(f) }

func defaultTable(t *testing.T) *costtable.Table {
	t.Helper()
	tbl, err := costtable.Default()
	require.NoError(t, err)
	return tbl
}

func inputs(channel, location, configuration string, units int) models.Inputs {
	in := models.DefaultInputs()
	in.MarketingChannels = channel
	in.Location = location
	in.Configuration = configuration
	in.SellUnits = units
	return in
}

func TestComputeCanonicalScenario(t *testing.T) {
	got := Compute(models.DefaultInputs(), defaultTable(t), config.DefaultEstimation())

	assert.Equal(t, models.Metrics{
		Leads:          16283,
		QualifiedLeads: 4885,
		SiteVisits:     1319,
		Bookings:       50,
		CPL:            2160,
		CPQL:           7200,
		CPSV:           26665,
		CPB:            703423,
		TotalBudget:    35171280,
	}, got)
}

func TestComputeCPQLFromCPL(t *testing.T) {
	p := config.DefaultEstimation()
	p.CPQLMode = CPQLFromCPL

	got := Compute(models.DefaultInputs(), defaultTable(t), p)
	assert.Equal(t, int64(9818), got.CPQL)
	assert.Equal(t, int64(2160), got.CPL)
}

func TestComputeChannels(t *testing.T) {
	tbl := defaultTable(t)
	p := config.DefaultEstimation()

	meta := Compute(inputs("Meta", "Mumbai South", "2 BHK", 50), tbl, p)
	assert.Equal(t, 12525, meta.Leads)
	assert.Equal(t, int64(1389), meta.CPL)
	assert.Equal(t, int64(17397225), meta.TotalBudget)

	mixed := Compute(inputs("G+M", "Mumbai South", "2 BHK", 50), tbl, p)
	assert.Equal(t, 13778, mixed.Leads)
	assert.Equal(t, int64(1775), mixed.CPL)
}

func TestChannelOffsetBeforeScaling(t *testing.T) {
	// Location and launch multipliers of 1.0 expose the raw channel offset.
	p := config.DefaultEstimation()
	base := inputs("Google", "Chennai Central", "2 BHK", 10)

	google := Compute(base, fixedCost(1000), p)
	base.MarketingChannels = "Meta"
	meta := Compute(base, fixedCost(1000), p)
	base.MarketingChannels = "G+M"
	mixed := Compute(base, fixedCost(1000), p)

	assert.Equal(t, int64(1257), google.CPL)
	assert.Equal(t, int64(743), meta.CPL)
	assert.Equal(t, int64(1000), mixed.CPL)
	assert.Equal(t, int64(2*257), google.CPL-meta.CPL)
}

func TestComputeLaunchScaling(t *testing.T) {
	tbl := defaultTable(t)
	in := inputs("G+M", "Bangalore East", "3 BHK", 20)
	in.PropertyType = "Commercial"
	in.LaunchType = "NRI"

	p := config.DefaultEstimation()
	scaled := Compute(in, tbl, p)
	assert.Equal(t, 8253, scaled.Leads)
	assert.Equal(t, int64(1623), scaled.CPL)

	p.ScaleCPLByLaunch = false
	flat := Compute(in, tbl, p)
	assert.Equal(t, 8253, flat.Leads)
	assert.Equal(t, int64(1352), flat.CPL)
}

func TestFloorRule(t *testing.T) {
	tbl := defaultTable(t)
	p := config.DefaultEstimation()

	// (480-257)*0.8 = 178 -> bumped by 200.
	bumped := Compute(inputs("Meta", "Lucknow", "2 BHK", 10), tbl, p)
	assert.Equal(t, int64(378), bumped.CPL)

	// (360-257)*0.8 = 82 -> 282 after the bump, clamped to 300.
	clamped := Compute(inputs("Meta", "Lucknow", "1 RK", 1), tbl, p)
	assert.Equal(t, int64(300), clamped.CPL)
	assert.Equal(t, 94, clamped.Leads)
	assert.Equal(t, int64(94*300), clamped.TotalBudget)

	assert.Equal(t, int64(300), applyFloor(-40, 300, 200))
	assert.Equal(t, int64(499), applyFloor(299, 300, 200))
	assert.Equal(t, int64(300), applyFloor(300, 300, 200))
}

func TestZeroDenominatorsAreClamped(t *testing.T) {
	p := config.DefaultEstimation()
	p.QualifiedRatio = 0.001
	p.SiteVisitRatio = 0.001

	var got models.Metrics
	require.NotPanics(t, func() {
		got = Compute(inputs("Meta", "Lucknow", "1 RK", 1), defaultTable(t), p)
	})
	assert.Equal(t, 0, got.QualifiedLeads)
	assert.Equal(t, 0, got.SiteVisits)
	assert.Equal(t, got.TotalBudget, got.CPQL)
	assert.Equal(t, got.TotalBudget, got.CPSV)
	assert.Equal(t, int64(0), got.CPB)
}

func TestSellUnitsClampedToOne(t *testing.T) {
	tbl := defaultTable(t)
	p := config.DefaultEstimation()
	for _, u := range []int{0, -5} {
		got := Compute(inputs("Google", "Pune", "2 BHK", u), tbl, p)
		assert.Equal(t, 1, got.Bookings)
	}
}

func TestComputeInvariants(t *testing.T) {
	tbl := defaultTable(t)
	p := config.DefaultEstimation()

	for _, pt := range models.PropertyTypes {
		for _, lt := range models.LaunchTypes {
			for _, loc := range models.Locations {
				for _, cfg := range models.Configurations {
					for _, ch := range models.ChannelValues() {
						for _, units := range []int{1, 7, 50} {
							in := models.Inputs{
								PropertyType: pt, LaunchType: lt, Location: loc, Configuration: cfg,
								MarketingChannels: ch, SellUnits: units, Duration: "3 Months",
							}
							m := Compute(in, tbl, p)
							if m.Bookings != units ||
								m.QualifiedLeads > m.Leads ||
								m.SiteVisits > m.QualifiedLeads ||
								m.CPL < p.MinCPL ||
								m.TotalBudget != int64(m.Leads)*m.CPL {
								t.Fatalf("invariant broken for %+v: %+v", in, m)
							}
							if again := Compute(in, tbl, p); again != m {
								t.Fatalf("not idempotent for %+v", in)
							}
						}
					}
				}
			}
		}
	}
}

func TestMultipliers(t *testing.T) {
	assert.Equal(t, 1.5, locationMultiplier("Mumbai North"))
	assert.Equal(t, 1.3, locationMultiplier("New Delhi South"))
	assert.Equal(t, 1.2, locationMultiplier("Bangalore West"))
	assert.Equal(t, 1.0, locationMultiplier("Chennai Suburb"))
	assert.Equal(t, 0.9, locationMultiplier("Hyderabad East"))
	assert.Equal(t, 0.8, locationMultiplier("Gurugram"))

	assert.Equal(t, 0.7, configurationMultiplier("1 RK"))
	assert.Equal(t, 1.1, configurationMultiplier("Plot Size 2000 Sq - 4000 Sq"))
	assert.Equal(t, 1.8, configurationMultiplier("Villa"))
	assert.Equal(t, 1.0, configurationMultiplier("Penthouse"))

	assert.Equal(t, 1.3, channelMultiplier("Google"))
	assert.Equal(t, 1.1, channelMultiplier("G+M"))
	assert.Equal(t, 1.0, channelMultiplier("Meta"))

	assert.Equal(t, 0.8, propertyMultiplier("Senior Living"))
	assert.Equal(t, 1.0, propertyMultiplier("Plots"))
	assert.Equal(t, 0.7, launchMultiplier("Teaser"))
	assert.Equal(t, 1.2, launchMultiplier("NRI"))
}

func TestValidateParams(t *testing.T) {
	require.NoError(t, ValidateParams(config.DefaultEstimation()))

	bad := config.DefaultEstimation()
	bad.QualifiedRatio = 1.2
	bad.SiteVisitRatio = 0
	bad.CPQLMode = "median"
	bad.SeriesModel = "spline"
	err := ValidateParams(bad)
	require.Error(t, err)
	for _, want := range []string{"qualified ratio", "site visit ratio", "cpql mode", "series model"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, int64(3), roundHalfUp(2.5))
	assert.Equal(t, int64(-2), roundHalfUp(-2.5))
	assert.Equal(t, int64(2), roundHalfUp(2.49))
}
