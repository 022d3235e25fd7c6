// Package report provides the read-only analytical surface over the
// persisted warehouse: the hiring KPI queries and the CSV export of
// warehouse tables.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Countries tracked by the hires-over-the-years KPI. Fixed
// allow-list, not derived from the data.
var kpiCountries = []string{
	"United States of America",
	"Brazil",
	"Colombia",
	"Ecuador",
}

// KPI runs the analytical queries against a loaded warehouse.
type KPI struct {
	DB *sql.DB
}

func NewKPI(db *sql.DB) *KPI {
	return &KPI{DB: db}
}

type TechnologyHires struct {
	Technology string
	Hires      int
}

// HiresByTechnology counts hired applications per technology,
// most hires first.
func (k *KPI) HiresByTechnology(ctx context.Context) ([]TechnologyHires, error) {
	rows, err := k.DB.QueryContext(ctx, `
		SELECT t.technology_name, COUNT(*) AS total_hires
		FROM fact_applications f
		JOIN dim_technology t ON f.technology_key = t.technology_key
		WHERE f.is_hired = 1
		GROUP BY t.technology_name
		ORDER BY total_hires DESC`)
	if err != nil {
		return nil, fmt.Errorf("hires by technology query failed: %w", err)
	}
	defer rows.Close()

	var out []TechnologyHires
	for rows.Next() {
		var r TechnologyHires
		if err := rows.Scan(&r.Technology, &r.Hires); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type YearHires struct {
	Year  int
	Hires int
}

// HiresByYear counts hired applications per application year.
func (k *KPI) HiresByYear(ctx context.Context) ([]YearHires, error) {
	rows, err := k.DB.QueryContext(ctx, `
		SELECT d.year, COUNT(*) AS total_hires
		FROM fact_applications f
		JOIN dim_date d ON f.date_key = d.date_key
		WHERE f.is_hired = 1
		GROUP BY d.year
		ORDER BY d.year`)
	if err != nil {
		return nil, fmt.Errorf("hires by year query failed: %w", err)
	}
	defer rows.Close()

	var out []YearHires
	for rows.Next() {
		var r YearHires
		if err := rows.Scan(&r.Year, &r.Hires); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type SeniorityHires struct {
	Seniority string
	Hires     int
}

// HiresBySeniority counts hired applications per seniority level,
// most hires first.
func (k *KPI) HiresBySeniority(ctx context.Context) ([]SeniorityHires, error) {
	rows, err := k.DB.QueryContext(ctx, `
		SELECT s.seniority_level, COUNT(*) AS total_hires
		FROM fact_applications f
		JOIN dim_seniority s ON f.seniority_key = s.seniority_key
		WHERE f.is_hired = 1
		GROUP BY s.seniority_level
		ORDER BY total_hires DESC`)
	if err != nil {
		return nil, fmt.Errorf("hires by seniority query failed: %w", err)
	}
	defer rows.Close()

	var out []SeniorityHires
	for rows.Next() {
		var r SeniorityHires
		if err := rows.Scan(&r.Seniority, &r.Hires); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type CountryYearHires struct {
	Country string
	Year    int
	Hires   int
}

// HiresByCountryYear counts hires per (country, year) for the fixed
// country allow-list.
func (k *KPI) HiresByCountryYear(ctx context.Context) ([]CountryYearHires, error) {
	placeholders := strings.Repeat("?, ", len(kpiCountries)-1) + "?"
	args := make([]any, len(kpiCountries))
	for i, c := range kpiCountries {
		args[i] = c
	}

	rows, err := k.DB.QueryContext(ctx, fmt.Sprintf(`
		SELECT c.country_name, d.year, COUNT(*) AS total_hires
		FROM fact_applications f
		JOIN dim_country c ON f.country_key = c.country_key
		JOIN dim_date d ON f.date_key = d.date_key
		WHERE f.is_hired = 1
		  AND c.country_name IN (%s)
		GROUP BY c.country_name, d.year
		ORDER BY c.country_name, d.year`, placeholders), args...)
	if err != nil {
		return nil, fmt.Errorf("hires by country and year query failed: %w", err)
	}
	defer rows.Close()

	var out []CountryYearHires
	for rows.Next() {
		var r CountryYearHires
		if err := rows.Scan(&r.Country, &r.Year, &r.Hires); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type TechnologyHiringRate struct {
	Technology   string
	Applications int
	Hires        int
	RatePct      float64
}

// HiringRateByTechnology computes the hire percentage per
// technology, highest rate first.
func (k *KPI) HiringRateByTechnology(ctx context.Context) ([]TechnologyHiringRate, error) {
	rows, err := k.DB.QueryContext(ctx, `
		SELECT t.technology_name,
		       COUNT(*) AS total_applications,
		       SUM(f.is_hired) AS total_hires,
		       ROUND(SUM(f.is_hired) * 100.0 / COUNT(*), 2) AS hiring_rate_pct
		FROM fact_applications f
		JOIN dim_technology t ON f.technology_key = t.technology_key
		GROUP BY t.technology_name
		ORDER BY hiring_rate_pct DESC`)
	if err != nil {
		return nil, fmt.Errorf("hiring rate by technology query failed: %w", err)
	}
	defer rows.Close()

	var out []TechnologyHiringRate
	for rows.Next() {
		var r TechnologyHiringRate
		if err := rows.Scan(&r.Technology, &r.Applications, &r.Hires, &r.RatePct); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type SeniorityScores struct {
	Seniority             string
	AvgCodeChallenge      float64
	AvgTechnicalInterview float64
}

// AverageScoresBySeniority computes mean scores per seniority level.
func (k *KPI) AverageScoresBySeniority(ctx context.Context) ([]SeniorityScores, error) {
	rows, err := k.DB.QueryContext(ctx, `
		SELECT s.seniority_level,
		       ROUND(AVG(f.code_challenge_score), 2) AS avg_code_challenge,
		       ROUND(AVG(f.technical_interview_score), 2) AS avg_technical_interview
		FROM fact_applications f
		JOIN dim_seniority s ON f.seniority_key = s.seniority_key
		GROUP BY s.seniority_level
		ORDER BY s.seniority_level`)
	if err != nil {
		return nil, fmt.Errorf("average scores by seniority query failed: %w", err)
	}
	defer rows.Close()

	var out []SeniorityScores
	for rows.Next() {
		var r SeniorityScores
		if err := rows.Scan(&r.Seniority, &r.AvgCodeChallenge, &r.AvgTechnicalInterview); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Print runs all six KPI queries and renders them as aligned text
// tables on w.
func (k *KPI) Print(ctx context.Context, w io.Writer) error {
	byTech, err := k.HiresByTechnology(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Hires by Technology", []string{"Technology", "Hires"}, len(byTech), func(i int) []string {
		return []string{byTech[i].Technology, fmt.Sprint(byTech[i].Hires)}
	})

	byYear, err := k.HiresByYear(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Hires by Year", []string{"Year", "Hires"}, len(byYear), func(i int) []string {
		return []string{fmt.Sprint(byYear[i].Year), fmt.Sprint(byYear[i].Hires)}
	})

	bySeniority, err := k.HiresBySeniority(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Hires by Seniority", []string{"Seniority", "Hires"}, len(bySeniority), func(i int) []string {
		return []string{bySeniority[i].Seniority, fmt.Sprint(bySeniority[i].Hires)}
	})

	byCountryYear, err := k.HiresByCountryYear(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Hires by Country Over the Years", []string{"Country", "Year", "Hires"}, len(byCountryYear), func(i int) []string {
		r := byCountryYear[i]
		return []string{r.Country, fmt.Sprint(r.Year), fmt.Sprint(r.Hires)}
	})

	rates, err := k.HiringRateByTechnology(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Hiring Rate (%) by Technology", []string{"Technology", "Applications", "Hires", "Rate %"}, len(rates), func(i int) []string {
		r := rates[i]
		return []string{r.Technology, fmt.Sprint(r.Applications), fmt.Sprint(r.Hires), fmt.Sprintf("%.2f", r.RatePct)}
	})

	scores, err := k.AverageScoresBySeniority(ctx)
	if err != nil {
		return err
	}
	printTable(w, "Average Scores by Seniority", []string{"Seniority", "Avg Code Challenge", "Avg Technical Interview"}, len(scores), func(i int) []string {
		r := scores[i]
		return []string{r.Seniority, fmt.Sprintf("%.2f", r.AvgCodeChallenge), fmt.Sprintf("%.2f", r.AvgTechnicalInterview)}
	})

	return nil
}

func printTable(w io.Writer, title string, headers []string, n int, rowAt func(i int) []string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for i := 0; i < n; i++ {
		fmt.Fprintln(tw, strings.Join(rowAt(i), "\t"))
	}
	tw.Flush()
}
