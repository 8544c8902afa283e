package metrics

import "github.com/AngelCh415/leadcalc/internal/models"

// Funnel breaks the first three stages into donut slices. Bookings are left
// out; they are tiny next to leads and would not show.
func Funnel(m models.Metrics) []models.FunnelSlice {
	slices := []models.FunnelSlice{
		{Name: "Leads", Value: m.Leads},
		{Name: "Qualified Leads", Value: m.QualifiedLeads},
		{Name: "Site Visits", Value: m.SiteVisits},
	}
	total := m.Leads + m.QualifiedLeads + m.SiteVisits
	if total == 0 {
		return slices
	}
	for i := range slices {
		slices[i].Share = round1(float64(slices[i].Value) * 100 / float64(total))
	}
	return slices
}

func round1(f float64) float64 { return float64(roundHalfUp(f*10)) / 10 }
