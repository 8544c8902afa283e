package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/models"
)

// CostSource supplies the base cost per lead for a location and configuration.
type CostSource interface {
	CPL(location, configuration string) int
}

const (
	CPQLFromBudget = "budget"
	CPQLFromCPL    = "cpl"

	SeriesGrowth = "growth"
	SeriesLinear = "linear"
	SeriesJitter = "jitter"
)

func ValidateParams(p config.Estimation) error {
	var errs []error
	if p.LeadsPerUnit <= 0 {
		errs = append(errs, errors.New("leads per unit must be positive"))
	}
	if p.QualifiedRatio <= 0 || p.QualifiedRatio > 1 {
		errs = append(errs, fmt.Errorf("qualified ratio %v outside (0,1]", p.QualifiedRatio))
	}
	if p.SiteVisitRatio <= 0 || p.SiteVisitRatio > 1 {
		errs = append(errs, fmt.Errorf("site visit ratio %v outside (0,1]", p.SiteVisitRatio))
	}
	if p.MinCPL < 0 || p.FloorBump < 0 || p.ChannelCPLOffset < 0 {
		errs = append(errs, errors.New("cpl constants must not be negative"))
	}
	switch p.CPQLMode {
	case CPQLFromBudget:
	case CPQLFromCPL:
		if p.CPQLDivisor <= 0 {
			errs = append(errs, errors.New("cpql divisor must be positive"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown cpql mode %q", p.CPQLMode))
	}
	switch p.SeriesModel {
	case SeriesGrowth:
		if p.SeriesExponent <= 0 {
			errs = append(errs, errors.New("series exponent must be positive"))
		}
	case SeriesLinear, SeriesJitter:
	default:
		errs = append(errs, fmt.Errorf("unknown series model %q", p.SeriesModel))
	}
	return errors.Join(errs...)
}

// Compute derives the funnel for one set of inputs. It is a pure function of
// its arguments; SellUnits below 1 is treated as 1.
func Compute(in models.Inputs, costs CostSource, p config.Estimation) models.Metrics {
	units := max1(in.SellUnits)

	locMult := locationMultiplier(in.Location)
	cfgMult := configurationMultiplier(in.Configuration)
	chMult := channelMultiplier(in.MarketingChannels)
	propMult := propertyMultiplier(in.PropertyType)
	launchMult := launchMultiplier(in.LaunchType)

	base := float64(costs.CPL(in.Location, in.Configuration))
	raw := (base + channelCPLAdjust(in.MarketingChannels, p.ChannelCPLOffset)) * locMult
	if p.ScaleCPLByLaunch {
		raw *= launchMult
	}
	cpl := applyFloor(roundHalfUp(raw), p.MinCPL, p.FloorBump)

	baseLeads := float64(units) * p.LeadsPerUnit
	leads := int(roundHalfUp(baseLeads * locMult * cfgMult * chMult * propMult * launchMult))
	qualified := int(roundHalfUp(float64(leads) * p.QualifiedRatio))
	visits := int(roundHalfUp(float64(qualified) * p.SiteVisitRatio))
	bookings := units

	budget := int64(leads) * cpl

	var cpql int64
	if p.CPQLMode == CPQLFromCPL {
		cpql = roundHalfUp(float64(cpl) / p.CPQLDivisor)
	} else {
		cpql = roundHalfUp(float64(budget) / float64(max1(qualified)))
	}
	cpsv := roundHalfUp(float64(budget) / float64(max1(visits)))
	cpb := roundHalfUp(float64(cpsv) * float64(visits) / float64(bookings))

	return models.Metrics{
		Leads:          leads,
		QualifiedLeads: qualified,
		SiteVisits:     visits,
		Bookings:       bookings,
		CPL:            cpl,
		CPQL:           cpql,
		CPSV:           cpsv,
		CPB:            cpb,
		TotalBudget:    budget,
	}
}

// applyFloor bumps a too-cheap CPL and then clamps to the minimum, so the
// result is never below minCPL.
func applyFloor(cpl, minCPL, bump int64) int64 {
	if cpl < minCPL {
		cpl += bump
	}
	if cpl < minCPL {
		cpl = minCPL
	}
	return cpl
}

// roundHalfUp rounds .5 toward +Inf for negative values too.
func roundHalfUp(f float64) int64 { return int64(math.Floor(f + 0.5)) }

func max1(i int) int {
	if i <= 0 {
		return 1
	}
	return i
}
