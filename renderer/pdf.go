package renderer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/etnz/investwise"
	"github.com/go-pdf/fpdf"
)

// pdfText replaces the signs the PDF standard fonts lack. The rupee sign is
// spelled out.
func pdfText(s string) string {
	s = strings.ReplaceAll(s, "₹", "Rs. ")
	s = strings.ReplaceAll(s, "•", "-")
	return strings.ReplaceAll(s, "€", "EUR ")
}

// planReport writes a plan as a PDF document.
type planReport struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	width float64
}

func newPlanReport() *planReport {
	pdf := fpdf.New("P", "mm", "A4", "")
	left, _, right, _ := pdf.GetMargins()
	pageWidth, _ := pdf.GetPageSize()
	return &planReport{
		pdf:   pdf,
		tr:    pdf.UnicodeTranslatorFromDescriptor(""),
		width: pageWidth - left - right,
	}
}

// text encodes s for the core fonts, the pound sign included.
func (r *planReport) text(s string) string { return r.tr(pdfText(s)) }

// WritePlanPDF writes the plan of s, with the simulation of its allocation
// and the strategy comparison, as a PDF document. sim and cmp may be nil.
func WritePlanPDF(w io.Writer, s investwise.State, sim *investwise.Simulation, cmp investwise.Comparison, now time.Time) error {
	r := newPlanReport()
	pdf := r.pdf

	p := NewPlan(s)
	r.title(now)
	r.finances(p.Snapshot)
	if s.HasCompletedRiskAssessment {
		r.profile(p)
	}
	r.suggestions(p.Suggestions)
	if sim != nil {
		r.simulation(sim)
	}
	if cmp != nil {
		r.comparison(cmp)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("could not build PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("could not write PDF: %w", err)
	}
	return nil
}

func (r *planReport) title(now time.Time) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.CellFormat(r.width, 12, "InvestWise Investment Plan", "", 1, "C", false, 0, "")
	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(r.width, 6, fmt.Sprintf("Generated: %s", now.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)
}

func (r *planReport) section(title string) {
	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.CellFormat(r.width, 9, r.text(title), "B", 1, "L", false, 0, "")
	r.pdf.Ln(2)
	r.pdf.SetFont("Arial", "", 10)
}

// table prints a table whose first column takes the remaining width.
func (r *planReport) table(header []string, widths []float64, rows [][]string) {
	first := r.width
	for _, w := range widths {
		first -= w
	}
	cols := append([]float64{first}, widths...)

	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetFont("Arial", "B", 9)
	for i, h := range header {
		r.pdf.CellFormat(cols[i], 7, r.text(h), "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		for i, v := range row {
			align := "R"
			if i == 0 {
				align = "L"
			}
			r.pdf.CellFormat(cols[i], 6, r.text(v), "1", 0, align, false, 0, "")
		}
		r.pdf.Ln(-1)
	}
}

func (r *planReport) finances(s investwise.FinancialSnapshot) {
	r.section("Monthly Finances")
	r.table([]string{"", "Amount"}, []float64{50}, [][]string{
		{"Total income", s.TotalIncome.String()},
		{"Total expenses", s.TotalExpenses.String()},
		{"Disposable income", s.DisposableIncome.String()},
		{"Suggested monthly investment", s.SuggestedMonthlyInvestment.String()},
	})
}

func (r *planReport) profile(p *Plan) {
	r.section(fmt.Sprintf("Risk Profile: %s (%.1f / 10)", p.Profile.Tier, p.Profile.Score))
	r.pdf.MultiCell(r.width, 5, r.text(p.Profile.Description), "", "L", false)
	r.pdf.Ln(3)
	rows := make([][]string, 0, len(p.Split))
	for _, s := range p.Split {
		rows = append(rows, []string{s.Class, fmt.Sprintf("%d%%", s.Percent), s.Amount.String()})
	}
	r.table([]string{"Asset class", "Allocation", "Monthly amount"}, []float64{30, 45}, rows)
}

func (r *planReport) suggestions(suggestions []investwise.Suggestion) {
	if len(suggestions) == 0 {
		return
	}
	r.section("Suggested Investments")
	for _, s := range suggestions {
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.CellFormat(r.width, 7, r.text(s.Category), "", 1, "L", false, 0, "")
		r.pdf.SetFont("Arial", "", 10)
		for _, o := range s.Options {
			r.pdf.MultiCell(r.width, 5, r.text("- "+o), "", "L", false)
		}
		r.pdf.Ln(2)
	}
}

func (r *planReport) simulation(s *investwise.Simulation) {
	r.section("Historical Simulation: " + s.Allocation.String())
	r.pdf.MultiCell(r.width, 5, fmt.Sprintf("Average return %s, volatility %s, total growth %s, CAGR %s.",
		s.AvgReturn, s.Volatility, s.TotalGrowth.SignedString(), s.CAGR), "", "L", false)
	r.pdf.Ln(2)
	rows := make([][]string, 0, len(s.Years))
	for i, y := range s.Years {
		rows = append(rows, []string{y.Year, investwise.Percent(y.Total).SignedString(), fmt.Sprintf("%.2f", s.Cumulative[i].Value)})
	}
	r.table([]string{"Year", "Return", "Value"}, []float64{40, 40}, rows)
}

func (r *planReport) comparison(c investwise.Comparison) {
	r.section("Strategy Comparison")
	rows := [][]string{}
	for _, s := range c.Ordered() {
		m := s.Metrics
		rows = append(rows, []string{s.Name, m.AvgReturn.String(), m.Volatility.String(), m.TotalGrowth.SignedString(), m.CAGR.String()})
	}
	r.table([]string{"Strategy", "Avg return", "Volatility", "Total growth", "CAGR"}, []float64{28, 28, 28, 28}, rows)
}
