package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/investwise"
	md "github.com/nao1215/markdown"
)

// SimulationMarkdown renders a historical simulation: key metrics, the year
// by year breakdown and the contribution of each asset class.
func SimulationMarkdown(s *investwise.Simulation) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2f("Historical Simulation: %s", s.Allocation)
	doc.BulletList(
		fmt.Sprintf("Average annual return: %s", s.AvgReturn),
		fmt.Sprintf("Best year: %s (%s)", s.BestYear, s.BestReturn.SignedString()),
		fmt.Sprintf("Worst year: %s (%s)", s.WorstYear, s.WorstReturn.SignedString()),
		fmt.Sprintf("Volatility: %s", s.Volatility),
		fmt.Sprintf("Total growth: %s", s.TotalGrowth.SignedString()),
		fmt.Sprintf("CAGR: %s", s.CAGR),
	)
	doc.LF()

	doc.H3f("Growth of %.0f", investwise.InitialValue)
	header := []string{"Year"}
	for _, c := range investwise.AssetClasses {
		header = append(header, className(c))
	}
	header = append(header, "Return", "Value")
	rows := make([][]string, 0, len(s.Years))
	for i, y := range s.Years {
		row := []string{y.Year}
		for _, c := range investwise.AssetClasses {
			row = append(row, fmt.Sprintf("%+.2f", y.Contribution(c)))
		}
		row = append(row, investwise.Percent(y.Total).SignedString(), fmt.Sprintf("%.2f", s.Cumulative[i].Value))
		rows = append(rows, row)
	}
	doc.Table(md.TableSet{Header: header, Rows: rows})
	doc.LF()

	doc.H3("Contribution by asset class")
	rows = nil
	for _, c := range investwise.AssetClasses {
		if s.Allocation.Get(c) == 0 {
			continue
		}
		rows = append(rows, []string{
			className(c),
			fmt.Sprintf("%d%%", s.Allocation.Get(c)),
			s.AverageContribution(c).SignedString(),
			s.ContributionShare(c).String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Asset class", "Allocation", "Avg contribution", "Share of return"},
		Rows:   rows,
	})

	return doc.String()
}

// ComparisonMarkdown renders the strategies side by side.
func ComparisonMarkdown(c investwise.Comparison) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Strategy Comparison")
	rows := [][]string{}
	for _, r := range c.Ordered() {
		m := r.Metrics
		rows = append(rows, []string{
			r.Name,
			shortAllocation(r.Allocation),
			m.AvgReturn.String(),
			m.Volatility.String(),
			m.TotalGrowth.SignedString(),
			m.CAGR.String(),
			fmt.Sprintf("%.2f", m.FinalValue()),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Strategy", "E/B/G/C/Cash", "Avg return", "Volatility", "Total growth", "CAGR", "Final value"},
		Rows:   rows,
	})
	doc.LF()

	for _, r := range c.Ordered() {
		if r.Description == "" {
			continue
		}
		doc.H3(r.Name)
		doc.PlainText(r.Description)
		doc.LF()
	}
	return doc.String()
}

// shortAllocation formats an allocation as equity/bonds/gold/crypto/cash.
func shortAllocation(a investwise.Allocation) string {
	return fmt.Sprintf("%d/%d/%d/%d/%d", a.Equity, a.Bonds, a.Gold, a.Crypto, a.Cash)
}
