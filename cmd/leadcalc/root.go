package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/leadcalc/internal/config"
	"github.com/AngelCh415/leadcalc/internal/costtable"
	"github.com/AngelCh415/leadcalc/internal/metrics"
	"github.com/AngelCh415/leadcalc/internal/models"
	"github.com/AngelCh415/leadcalc/internal/report"
)

type rootOpts struct {
	costTable string
}

func newRootCmd() *cobra.Command {
	o := &rootOpts{}
	root := &cobra.Command{
		Use:          "leadcalc",
		Short:        "Estimate the marketing funnel for a real-estate launch",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&o.costTable, "cost-table", "", "YAML cost-per-lead table (defaults to the embedded one)")

	root.AddCommand(newEstimateCmd(o), newOptionsCmd(o))
	return root
}

func (o *rootOpts) service() (*metrics.Service, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	costs, err := costtable.Load(o.costTable)
	if err != nil {
		return nil, err
	}
	return metrics.NewService(costs, config.FromEnv().Estimation, nil)
}

func newEstimateCmd(o *rootOpts) *cobra.Command {
	in := models.DefaultInputs()
	var format string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Compute leads, qualified leads, site visits, bookings and costs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.service()
			if err != nil {
				return err
			}
			est, err := svc.Estimate(in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(est)
			case "markdown", "md":
				return report.Markdown(out, est)
			case "table":
				return writeTable(out, est)
			default:
				return fmt.Errorf("unknown format %q (table, json, markdown)", format)
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.PropertyType, "property-type", in.PropertyType, "property type, e.g. Residential or Plots")
	f.StringVar(&in.LaunchType, "launch-type", in.LaunchType, "Teaser | Launch | Sustenance | NRI")
	f.StringVar(&in.Location, "location", in.Location, "project location")
	f.StringVar(&in.Configuration, "configuration", in.Configuration, "unit configuration, e.g. 2 BHK")
	f.StringVar(&in.MarketingChannels, "channel", in.MarketingChannels, "Google | Meta | G+M")
	f.IntVar(&in.SellUnits, "units", in.SellUnits, "units to sell")
	f.StringVar(&in.Duration, "duration", in.Duration, "campaign duration, e.g. 6 Months")
	f.StringVarP(&format, "format", "o", "table", "output format: table, json or markdown")
	return cmd
}

func writeTable(w io.Writer, est models.Estimate) error {
	m := est.Metrics
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "STAGE\tVOLUME\tUNIT COST\t\n")
	fmt.Fprintf(tw, "Leads\t%s\t%s\t\n", report.Group(int64(m.Leads)), report.Rupees(m.CPL))
	fmt.Fprintf(tw, "Qualified leads\t%s\t%s\t\n", report.Group(int64(m.QualifiedLeads)), report.Rupees(m.CPQL))
	fmt.Fprintf(tw, "Site visits\t%s\t%s\t\n", report.Group(int64(m.SiteVisits)), report.Rupees(m.CPSV))
	fmt.Fprintf(tw, "Bookings\t%s\t%s\t\n", report.Group(int64(m.Bookings)), report.Lakhs(m.CPB))
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nTotal budget required: %s\n", report.Rupees(m.TotalBudget))
	return err
}

func newOptionsCmd(o *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List accepted values for every input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := o.service()
			if err != nil {
				return err
			}
			opts := svc.Options()
			out := cmd.OutOrStdout()
			section := func(name string, vals []string) {
				fmt.Fprintf(out, "%s:\n", name)
				for _, v := range vals {
					fmt.Fprintf(out, "  %s\n", v)
				}
			}
			section("property types", opts.PropertyTypes)
			section("launch types", opts.LaunchTypes)
			section("locations", opts.Locations)
			section("configurations", opts.Configurations)
			fmt.Fprintln(out, "channels:")
			for _, c := range opts.Channels {
				fmt.Fprintf(out, "  %s (%s)\n", c.Value, c.Label)
			}
			section("durations", opts.Durations)
			return nil
		},
	}
}
