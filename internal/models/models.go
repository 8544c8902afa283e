package models

import "time"

type Inputs struct {
	PropertyType      string `json:"property_type" yaml:"property_type"`
	LaunchType        string `json:"launch_type" yaml:"launch_type"`
	Location          string `json:"location" yaml:"location"`
	Configuration     string `json:"configuration" yaml:"configuration"`
	MarketingChannels string `json:"marketing_channels" yaml:"marketing_channels"`
	SellUnits         int    `json:"sell_units" yaml:"sell_units"`
	Duration          string `json:"duration" yaml:"duration"`
}

type Metrics struct {
	Leads          int   `json:"leads"`
	QualifiedLeads int   `json:"qualified_leads"`
	SiteVisits     int   `json:"site_visits"`
	Bookings       int   `json:"bookings"`
	CPL            int64 `json:"cpl"`
	CPQL           int64 `json:"cpql"`
	CPSV           int64 `json:"cpsv"`
	CPB            int64 `json:"cpb"`
	TotalBudget    int64 `json:"total_budget"`
}

// ChartPoint is one synthetic period of the projected campaign.
type ChartPoint struct {
	Period         string `json:"period"`
	Leads          int    `json:"leads"`
	QualifiedLeads int    `json:"qualified_leads"`
	SiteVisits     int    `json:"site_visits"`
	Bookings       int    `json:"bookings"`
	CPL            int64  `json:"cpl"`
}

type FunnelSlice struct {
	Name  string  `json:"name"`
	Value int     `json:"value"`
	Share float64 `json:"share"` // percent of the donut total
}

type Estimate struct {
	Inputs  Inputs        `json:"inputs"`
	Metrics Metrics       `json:"metrics"`
	Series  []ChartPoint  `json:"series"`
	Funnel  []FunnelSlice `json:"funnel"`
}

// Contact is the gate form. Validation tags are checked after normalisation;
// in_mobile, work_email and website are registered by the capture package.
type Contact struct {
	Name         string `json:"name" validate:"required,max=120"`
	Phone        string `json:"phone" validate:"required,in_mobile"`
	Email        string `json:"email" validate:"required,email,work_email"`
	Organization string `json:"organization" validate:"required,website"`
}

type SubmissionStatus string

const (
	StatusQueued    SubmissionStatus = "queued"
	StatusDelivered SubmissionStatus = "delivered"
	StatusFailed    SubmissionStatus = "failed"
)

type Submission struct {
	ID        string           `json:"id"`
	Contact   Contact          `json:"contact"`
	Estimate  Estimate         `json:"estimate"`
	Status    SubmissionStatus `json:"status"`
	Attempts  int              `json:"attempts"`
	LastError string           `json:"last_error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
