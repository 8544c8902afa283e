package metrics

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/telemetry"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	costs CostSource
	p     config.Estimation
	tm    *telemetry.Metrics
}

func NewService(costs CostSource, p config.Estimation, tm *telemetry.Metrics) (*Service, error) {
	if costs == nil {
		return nil, errors.New("metrics: nil cost source")
	}
	if err := ValidateParams(p); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	return &Service{costs: costs, p: p, tm: tm}, nil
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// Estimate validates and canonicalises the inputs, then derives metrics,
// chart series and donut breakdown from them. Empty fields take the form
// defaults; unit counts below one are clamped to one.
func (s *Service) Estimate(in models.Inputs) (models.Estimate, error) {
	in, err := Canonical(in)
	if err != nil {
		return models.Estimate{}, err
	}
	m := Compute(in, s.costs, s.p)
	s.tm.Estimate(in.MarketingChannels)
	return models.Estimate{
		Inputs:  in,
		Metrics: m,
		Series:  Series(in, m, s.p),
		Funnel:  Funnel(m),
	}, nil
}

// EstimateQuery reads inputs from query or form values.
func (s *Service) EstimateQuery(v url.Values) (models.Estimate, error) {
	in := models.DefaultInputs()
	in.PropertyType = v.Get("property_type")
	in.LaunchType = v.Get("launch_type")
	in.Location = v.Get("location")
	in.Configuration = v.Get("configuration")
	in.MarketingChannels = v.Get("channel")
	in.Duration = v.Get("duration")
	if u := v.Get("units"); u != "" {
		in.SellUnits = atoiDef(u, 0)
	}
	return s.Estimate(in)
}

func (s *Service) Params() config.Estimation { return s.p }

type Options struct {
	PropertyTypes  []string        `json:"property_types"`
	LaunchTypes    []string        `json:"launch_types"`
	Locations      []string        `json:"locations"`
	Configurations []string        `json:"configurations"`
	Channels       []models.Option `json:"channels"`
	Durations      []string        `json:"durations"`
	Defaults       models.Inputs   `json:"defaults"`
	Initial        models.Metrics  `json:"initial_metrics"`
}

func (s *Service) Options() Options {
	return Options{
		PropertyTypes:  models.PropertyTypes,
		LaunchTypes:    models.LaunchTypes,
		Locations:      models.Locations,
		Configurations: models.Configurations,
		Channels:       models.Channels,
		Durations:      models.Durations,
		Defaults:       models.DefaultInputs(),
		Initial:        models.InitialMetrics(),
	}
}

// Canonical fills defaults, clamps units below one, rejects units above
// models.MaxSellUnits and maps every categorical field onto
// its canonical spelling, matching case-insensitively.
func Canonical(in models.Inputs) (models.Inputs, error) {
	def := models.DefaultInputs()
	var errs []error
	pick := func(field, v, d string, allowed []string) string {
		if strings.TrimSpace(v) == "" {
			return d
		}
		for _, a := range allowed {
			if norm(a) == norm(v) {
				return a
			}
		}
		errs = append(errs, fmt.Errorf("%w: %s %q", ErrInvalidInput, field, v))
		return v
	}
	out := models.Inputs{
		PropertyType:      pick("property_type", in.PropertyType, def.PropertyType, models.PropertyTypes),
		LaunchType:        pick("launch_type", in.LaunchType, def.LaunchType, models.LaunchTypes),
		Location:          pick("location", in.Location, def.Location, models.Locations),
		Configuration:     pick("configuration", in.Configuration, def.Configuration, models.Configurations),
		MarketingChannels: pick("channel", in.MarketingChannels, def.MarketingChannels, models.ChannelValues()),
		SellUnits:         max1(in.SellUnits),
		Duration:          pick("duration", in.Duration, def.Duration, models.Durations),
	}
	if in.SellUnits > models.MaxSellUnits {
		errs = append(errs, fmt.Errorf("%w: units %d exceeds %d", ErrInvalidInput, in.SellUnits, models.MaxSellUnits))
	}
	if len(errs) > 0 {
		return models.Inputs{}, errors.Join(errs...)
	}
	return out, nil
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return d
	}
	return v
}
