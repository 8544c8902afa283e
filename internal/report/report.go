package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/AngelCh415/leadcalc/internal/models"
)

const disclaimer = "The data presented is based on past experience and is provided for informational purposes only."

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// Markdown writes the estimate as a markdown report.
func Markdown(w io.Writer, est models.Estimate) error {
	in, m := est.Inputs, est.Metrics
	var b strings.Builder

	fmt.Fprintf(&b, "# Lead projection: %s, %s\n\n", in.Location, in.Configuration)
	fmt.Fprintf(&b, "%s · %s · %s · %d units · %s\n\n", in.PropertyType, in.LaunchType, channelLabel(in.MarketingChannels), in.SellUnits, in.Duration)

	b.WriteString("| Stage | Volume | Unit cost |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Leads | %s | %s CPL |\n", Group(int64(m.Leads)), Rupees(m.CPL))
	fmt.Fprintf(&b, "| Qualified leads | %s | %s CPQL |\n", Group(int64(m.QualifiedLeads)), Rupees(m.CPQL))
	fmt.Fprintf(&b, "| Site visits | %s | %s CPSV |\n", Group(int64(m.SiteVisits)), Rupees(m.CPSV))
	fmt.Fprintf(&b, "| Bookings | %s | %s CPB |\n\n", Group(int64(m.Bookings)), Lakhs(m.CPB))

	fmt.Fprintf(&b, "**Total budget required: %s**\n\n", Rupees(m.TotalBudget))

	if len(est.Series) > 0 {
		b.WriteString("## Projected ramp-up\n\n| Period | Leads | Qualified | Site visits | Bookings |\n|---|---:|---:|---:|---:|\n")
		for _, p := range est.Series {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", p.Period,
				Group(int64(p.Leads)), Group(int64(p.QualifiedLeads)), Group(int64(p.SiteVisits)), Group(int64(p.Bookings)))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "_%s_\n", disclaimer)
	_, err := io.WriteString(w, b.String())
	return err
}

// HTML renders the markdown report into a standalone HTML page.
func HTML(w io.Writer, est models.Estimate) error {
	var src bytes.Buffer
	if err := Markdown(&src, est); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	_, err := fmt.Fprintf(w, "<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>Lead projection</title></head><body>\n%s</body></html>\n", body.String())
	return err
}

func channelLabel(v string) string {
	for _, c := range models.Channels {
		if c.Value == v {
			return c.Label
		}
	}
	return v
}
