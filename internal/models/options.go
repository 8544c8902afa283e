package models

var PropertyTypes = []string{
	"Residential",
	"Commercial",
	"Senior Living",
	"Plots",
	"Shops cum Offices",
}

var LaunchTypes = []string{"Teaser", "Launch", "Sustenance", "NRI"}

var Locations = []string{
	"Bangalore East", "Bangalore North", "Bangalore South", "Bangalore West",
	"Chennai Central", "Chennai East", "Chennai North", "Chennai Outer East",
	"Chennai Outer North", "Chennai Outer South", "Chennai Outer West",
	"Chennai South", "Chennai Suburb", "Chennai West",
	"Delhi NCR", "Delhi", "Greater Noida",
	"Gujarat - Ahmedabad", "Gujarat - Rajkot", "Gujarat - Surat", "Gujarat - Vadodra",
	"Gurugram",
	"Hyderabad East", "Hyderabad North", "Hyderabad South", "Hyderabad West",
	"Kolkata Central", "Kolkata East", "Kolkata New", "Kolkata North",
	"Kolkata South", "Kolkata West",
	"Lucknow", "Mangalore",
	"Mumbai Central", "Mumbai East", "Mumbai North", "Mumbai South",
	"Nashik",
	"New Delhi Central", "New Delhi East", "New Delhi North", "New Delhi South", "New Delhi West",
	"Noida", "Noida Central",
	"Pune",
}

var Configurations = []string{
	"1 RK", "1 BHK", "2 BHK", "3 BHK", "4 BHK", "5 BHK",
	"Plot Size 1000 Sq - 2000 Sq",
	"Plot Size 2000 Sq - 4000 Sq",
	"Villa",
}

// Channel values as submitted; labels are what the form shows.
var Channels = []Option{
	{Value: "Google", Label: "Google Ads"},
	{Value: "Meta", Label: "Meta Ads"},
	{Value: "G+M", Label: "Google Ads+Meta Ads"},
}

var Durations = []string{
	"15 Days", "1 Month", "2 Months", "3 Months", "4 Months",
	"5 Months", "6 Months", "7 Months", "8 Months",
}

// MaxSellUnits caps the units a single estimate may cover. Larger counts
// overflow the budget arithmetic.
const MaxSellUnits = 1_000_000

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func DefaultInputs() Inputs {
	return Inputs{
		PropertyType:      "Residential",
		LaunchType:        "Launch",
		Location:          "Mumbai South",
		Configuration:     "2 BHK",
		MarketingChannels: "Google",
		SellUnits:         50,
		Duration:          "6 Months",
	}
}

// InitialMetrics is what the page shows before the first recomputation.
// It is a fixed display record (a ~1.8 Cr budget at CPL 2160), not the output
// of the estimator for DefaultInputs.
func InitialMetrics() Metrics {
	return Metrics{
		Leads:          8333,
		QualifiedLeads: 1833,
		SiteVisits:     500,
		Bookings:       50,
		CPL:            2160,
		CPQL:           9819,
		CPSV:           35999,
		CPB:            359986,
		TotalBudget:    17999280,
	}
}

func ChannelValues() []string {
	out := make([]string, 0, len(Channels))
	for _, c := range Channels {
		out = append(out, c.Value)
	}
	return out
}
