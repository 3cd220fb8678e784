package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jengzang/slotting-backend-go/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	reportFilter models.PeriodFilter
	reportTop    int
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	tierStyles   = map[string]lipgloss.Style{
		models.TierHot:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		models.TierWarm: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")),
		models.TierCold: lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
	}
	cellStyle = lipgloss.NewStyle().PaddingRight(2)
)

// slottingReport is what the report command prints
type slottingReport struct {
	Layout     int64
	Velocity   *models.VelocityResponse
	Reslotting *models.ReslottingResponse
	ROI        *models.ROIResponse
}

// reportCmd prints a velocity, reslotting and ROI summary for one layout
var reportCmd = &cobra.Command{
	Use:   "report <layout-id>",
	Short: "Print a slotting report for a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		layoutID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || layoutID <= 0 {
			return fmt.Errorf("invalid layout id %q", args[0])
		}

		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.db.Close()

		ctx := cmd.Context()
		rep := slottingReport{Layout: layoutID}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			v, err := svc.analytics.Velocity(gctx, layoutID, reportFilter)
			rep.Velocity = v
			return err
		})
		g.Go(func() error {
			r, err := svc.analytics.Reslotting(gctx, layoutID, models.ReslottingFilter{PeriodFilter: reportFilter, Limit: reportTop})
			rep.Reslotting = r
			return err
		})
		g.Go(func() error {
			r, err := svc.analytics.ROI(gctx, layoutID, models.ROIFilter{PeriodFilter: reportFilter})
			rep.ROI = r
			return err
		})
		if err := g.Wait(); err != nil {
			return err
		}

		renderReport(cmd.OutOrStdout(), rep, reportTop)
		return nil
	},
}

func renderReport(w io.Writer, rep slottingReport, top int) {
	if top <= 0 {
		top = 10
	}
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Layout %d slotting report", rep.Layout)))
	b.WriteString("\n")
	if rep.Velocity != nil {
		p := rep.Velocity.Period
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%s to %s (%d days)", p.Start, p.End, p.Days)))
		b.WriteString("\n")

		s := rep.Velocity.Summary
		b.WriteString(headingStyle.Render("Velocity"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %d  %s %d  %s %d  total %d\n",
			tierStyles[models.TierHot].Render("hot"), s.Hot,
			tierStyles[models.TierWarm].Render("warm"), s.Warm,
			tierStyles[models.TierCold].Render("cold"), s.Cold,
			s.Total)
		for i, e := range rep.Velocity.Elements {
			if i == top {
				break
			}
			b.WriteString(row(
				e.Label,
				tierStyles[e.Tier].Render(e.Tier),
				fmt.Sprintf("%d picks", e.TotalPicks),
				fmt.Sprintf("%+.1f%% %s", e.TrendPercent, e.Trend),
			))
		}
	}

	if rep.Reslotting != nil {
		b.WriteString(headingStyle.Render("Reslotting"))
		b.WriteString("\n")
		if len(rep.Reslotting.Opportunities) == 0 {
			b.WriteString(mutedStyle.Render("no moves proposed"))
			b.WriteString("\n")
		}
		for _, o := range rep.Reslotting.Opportunities {
			b.WriteString(row(
				o.ItemID,
				fmt.Sprintf("%s -> %s", o.FromLocation, o.ToLocation),
				fmt.Sprintf("%.0f ft/day", o.FeetSavedPerDay),
				o.Priority,
			))
		}
	}

	if rep.ROI != nil {
		p := rep.ROI.Projection
		b.WriteString(headingStyle.Render("ROI"))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%.1f min/day saved at $%.2f/h: $%.2f/year\n", p.DailyMinutesSaved, p.HourlyRate, p.AnnualSavings)
		if p.PaybackDays != nil {
			fmt.Fprintf(&b, "payback in %.1f days for $%.2f\n", *p.PaybackDays, p.ImplementationCost)
		} else {
			b.WriteString(mutedStyle.Render("no payback"))
			b.WriteString("\n")
		}
	}

	fmt.Fprint(w, b.String())
}

func row(cols ...string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cells[i] = cellStyle.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n"
}

func init() {
	reportCmd.Flags().StringVar(&reportFilter.Start, "start", "", "Period start (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportFilter.End, "end", "", "Period end (YYYY-MM-DD)")
	reportCmd.Flags().IntVar(&reportFilter.Days, "days", 0, "Window length when --start is omitted")
	reportCmd.Flags().IntVar(&reportTop, "top", 10, "Rows per section")
}
