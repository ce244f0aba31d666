// Package analytics produces the descriptive profiling report over the
// cleaned accident table: null distribution, descriptive statistics, trends,
// geography, and data-quality findings, rendered as plain-text ASCII tables.
//
// Everything here is straight SQL aggregation plus formatting; the one piece
// of domain logic is the country-level rollup, which reuses the extended
// location parser instead of naively taking the last comma token.
package analytics

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"crashclean/internal/clean"
	"crashclean/internal/storage"
)

const reportWidth = 70

var (
	thick = strings.Repeat("=", reportWidth)
	sep   = strings.Repeat("-", reportWidth)
)

// Profiler generates the analysis report for one cleaned table.
type Profiler struct {
	repo  storage.Repository
	table string
	rules *clean.Ruleset
}

// New returns a Profiler. A nil ruleset selects the embedded defaults.
func New(repo storage.Repository, table string, rules *clean.Ruleset) *Profiler {
	if rules == nil {
		rules = clean.DefaultRuleset()
	}
	return &Profiler{repo: repo, table: table, rules: rules}
}

// WriteReport writes the full multi-section profile to w.
func (p *Profiler) WriteReport(ctx context.Context, w io.Writer) error {
	fmt.Fprintf(w, "\n%s\n  PLANE CRASHES DATASET - ANALYSIS & PROFILING\n  Table: %s\n%s\n", thick, p.table, thick)

	steps := []func(context.Context, io.Writer) error{
		p.profileNulls,
		p.descriptiveStats,
		p.trendAnalysis,
		p.geographicAnalysis,
		p.dataQuality,
	}
	for _, step := range steps {
		if err := step(ctx, w); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%s\n  Analysis complete.\n%s\n", thick, thick)
	return nil
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n  %s\n%s\n", thick, title, thick)
}

func sub(w io.Writer, title string) {
	fmt.Fprintf(w, "\n  %s\n  %s\n", title, sep[:min(len(title)+2, reportWidth)])
}

func pct(num, den float64) string {
	if num == 0 || den == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", num/den*100)
}

// profileNulls renders the per-column NULL distribution.
func (p *Profiler) profileNulls(ctx context.Context, w io.Writer) error {
	section(w, "1. DATA PROFILING - NULL Distribution")

	total, err := p.queryInt(ctx, "SELECT COUNT(*) AS n FROM "+p.table)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n  Total rows: %d\n\n", total)

	cols, err := p.repo.Columns(ctx, p.table)
	if err != nil {
		return err
	}

	widths := []int{26, 8, 10, 8, 8, 8}
	writeTable(w, []string{"Column", "Type", "Non-NULL", "NULL", "NULL %", "Unique"}, nil, widths)

	for _, col := range cols {
		nonNull, err := p.queryInt(ctx,
			fmt.Sprintf("SELECT COUNT(*) AS n FROM %s WHERE %s IS NOT NULL", p.table, col.Name))
		if err != nil {
			return err
		}
		unique, err := p.queryInt(ctx,
			fmt.Sprintf("SELECT COUNT(DISTINCT %s) AS n FROM %s", col.Name, p.table))
		if err != nil {
			return err
		}
		nNull := total - nonNull
		pctCell := "N/A"
		if total > 0 {
			pctCell = fmt.Sprintf("%.1f%%", float64(nNull)/float64(total)*100)
		}
		writeTable(w, nil, [][]string{{
			col.Name, col.Type,
			fmt.Sprint(nonNull), fmt.Sprint(nNull), pctCell, fmt.Sprint(unique),
		}}, widths)
	}
	return nil
}

// descriptiveStats renders fatality/survival rates, ground casualties, the
// crew-vs-passenger split, and the deadliest single crashes.
func (p *Profiler) descriptiveStats(ctx context.Context, w io.Writer) error {
	section(w, "2. DESCRIPTIVE STATISTICS")

	sub(w, "Fatality Rate (fatalities_aboard / aboard_total)")
	recs, err := p.repo.Query(ctx, fmt.Sprintf(`
		SELECT SUM(fatalities_aboard) AS total_fat,
		       SUM(aboard_total)      AS total_aboard,
		       AVG(CAST(fatalities_aboard AS REAL) / aboard_total) AS avg_rate
		  FROM %s
		 WHERE fatalities_aboard IS NOT NULL AND aboard_total IS NOT NULL AND aboard_total > 0`,
		p.table))
	if err != nil {
		return err
	}
	if len(recs) > 0 {
		fat, _ := recs[0].Float("total_fat")
		aboard, _ := recs[0].Float("total_aboard")
		fmt.Fprintf(w, "  Aggregate fatality rate : %s\n", pct(fat, aboard))
		if rate, ok := recs[0].Float("avg_rate"); ok && !math.IsNaN(rate) {
			fmt.Fprintf(w, "  Average per-flight rate : %.1f%%\n", rate*100)
		}

		sub(w, "Survival Rate ((aboard_total - fatalities_aboard) / aboard_total)")
		fmt.Fprintf(w, "  Aggregate survival rate : %s\n", pct(aboard-fat, aboard))
	}

	sub(w, "Ground Casualties")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT COUNT(*)    AS crashes,
		       SUM(ground) AS total_ground,
		       MAX(ground) AS max_ground,
		       AVG(ground) AS avg_ground
		  FROM %s
		 WHERE ground IS NOT NULL AND ground > 0`, p.table))
	if err != nil {
		return err
	}
	if len(recs) > 0 {
		crashes, _ := recs[0].Int("crashes")
		totalGround, _ := recs[0].Int("total_ground")
		maxGround, _ := recs[0].Int("max_ground")
		fmt.Fprintf(w, "  Crashes with ground fatalities : %d\n", crashes)
		fmt.Fprintf(w, "  Total ground fatalities        : %d\n", totalGround)
		fmt.Fprintf(w, "  Max ground fatalities (single) : %d\n", maxGround)
		if avg, ok := recs[0].Float("avg_ground"); ok {
			fmt.Fprintf(w, "  Avg ground fatalities          : %.2f\n", avg)
		}
	}

	sub(w, "Crew vs Passenger Fatality Ratio")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT SUM(fatalities_passengers) AS pax_fat,
		       SUM(fatalities_crew)       AS crew_fat
		  FROM %s
		 WHERE fatalities_passengers IS NOT NULL AND fatalities_crew IS NOT NULL`, p.table))
	if err != nil {
		return err
	}
	if len(recs) > 0 {
		pax, _ := recs[0].Float("pax_fat")
		crew, _ := recs[0].Float("crew_fat")
		total := pax + crew
		fmt.Fprintf(w, "  Passenger fatalities : %.0f  (%s)\n", pax, pct(pax, total))
		fmt.Fprintf(w, "  Crew fatalities      : %.0f  (%s)\n", crew, pct(crew, total))
	}

	sub(w, "Top 10 Deadliest Single Crashes")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT date, operator, ac_type, location, fatalities_total
		  FROM %s
		 WHERE fatalities_total IS NOT NULL
		 ORDER BY fatalities_total DESC
		 LIMIT 10`, p.table))
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			cell(rec["date"]), cell(rec["operator"]), cell(rec["ac_type"]),
			cell(rec["location"]), cell(rec["fatalities_total"]),
		})
	}
	writeTable(w, []string{"Date", "Operator", "Aircraft", "Location", "Fatalities"}, rows,
		[]int{12, 30, 24, 30, 10})
	return nil
}

// trendAnalysis renders per-decade and per-year series plus operator and
// aircraft-type leaderboards.
func (p *Profiler) trendAnalysis(ctx context.Context, w io.Writer) error {
	section(w, "3. TREND ANALYSIS")

	sub(w, "Crashes & Fatalities per Decade")
	recs, err := p.repo.Query(ctx, fmt.Sprintf(`
		SELECT (CAST(SUBSTR(date, 1, 4) AS INTEGER) / 10) * 10 AS decade,
		       COUNT(*)              AS crashes,
		       SUM(fatalities_total) AS fatalities
		  FROM %s
		 WHERE date IS NOT NULL
		 GROUP BY (CAST(SUBSTR(date, 1, 4) AS INTEGER) / 10) * 10
		 ORDER BY decade`, p.table))
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		decade, _ := rec.Int("decade")
		crashes, _ := rec.Int("crashes")
		fatalities, _ := rec.Int("fatalities")
		rows = append(rows, []string{
			fmt.Sprintf("%ds", decade), fmt.Sprint(crashes), fmt.Sprint(fatalities),
		})
	}
	writeTable(w, []string{"Decade", "Crashes", "Total Fatalities"}, rows, []int{10, 10, 18})

	sub(w, "Crashes per Year (1940+, ASCII bar)")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT SUBSTR(date, 1, 4) AS year, COUNT(*) AS crashes
		  FROM %s
		 WHERE date IS NOT NULL AND CAST(SUBSTR(date, 1, 4) AS INTEGER) >= 1940
		 GROUP BY SUBSTR(date, 1, 4)
		 ORDER BY year`, p.table))
	if err != nil {
		return err
	}
	var maxCrashes int64 = 1
	for _, rec := range recs {
		if n, _ := rec.Int("crashes"); n > maxCrashes {
			maxCrashes = n
		}
	}
	const barWidth = 40
	for _, rec := range recs {
		year, _ := rec.String("year")
		n, _ := rec.Int("crashes")
		bar := strings.Repeat("#", int(math.Round(float64(n)/float64(maxCrashes)*barWidth)))
		fmt.Fprintf(w, "  %s |%-*s %d\n", year, barWidth, bar, n)
	}

	sub(w, "Top 15 Operators by Crash Count")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT operator, COUNT(*) AS crashes, SUM(fatalities_total) AS fatalities
		  FROM %s
		 WHERE operator IS NOT NULL
		 GROUP BY operator
		 ORDER BY crashes DESC
		 LIMIT 15`, p.table))
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, rec := range recs {
		crashes, _ := rec.Int("crashes")
		fatalities, _ := rec.Int("fatalities")
		rows = append(rows, []string{
			cell(rec["operator"]), fmt.Sprint(crashes), fmt.Sprint(fatalities),
		})
	}
	writeTable(w, []string{"Operator", "Crashes", "Total Fatalities"}, rows, []int{42, 10, 18})

	sub(w, "Top 15 Aircraft Types by Fatality Rate (min 10 incidents)")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT ac_type,
		       COUNT(*)               AS incidents,
		       SUM(fatalities_aboard) AS total_fat,
		       SUM(aboard_total)      AS total_aboard,
		       CAST(SUM(fatalities_aboard) AS REAL) / NULLIF(SUM(aboard_total), 0) AS fat_rate
		  FROM %s
		 WHERE ac_type IS NOT NULL
		   AND fatalities_aboard IS NOT NULL
		   AND aboard_total IS NOT NULL
		 GROUP BY ac_type
		 HAVING COUNT(*) >= 10
		 ORDER BY fat_rate DESC
		 LIMIT 15`, p.table))
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, rec := range recs {
		rate, _ := rec.Float("fat_rate")
		rows = append(rows, []string{
			cell(rec["ac_type"]), cell(rec["incidents"]), cell(rec["total_fat"]),
			cell(rec["total_aboard"]), fmt.Sprintf("%.1f%%", rate*100),
		})
	}
	writeTable(w, []string{"Aircraft Type", "Incidents", "Fatalities", "Aboard", "Rate"}, rows,
		[]int{40, 10, 12, 10, 7})
	return nil
}

// geographicAnalysis renders country-level and site-level crash counts. The
// country rollup runs each location through the extended location parser so
// US states and UK constituents aggregate under one country each.
func (p *Profiler) geographicAnalysis(ctx context.Context, w io.Writer) error {
	section(w, "4. GEOGRAPHIC ANALYSIS")

	sub(w, "Top 20 Countries / Regions by Crash Count")
	recs, err := p.repo.Query(ctx,
		fmt.Sprintf("SELECT location FROM %s WHERE location IS NOT NULL", p.table))
	if err != nil {
		return err
	}
	counts := map[string]int{}
	for _, rec := range recs {
		loc, ok := rec.String("location")
		if !ok {
			continue
		}
		if _, country := p.rules.ParseLocation(loc); country != nil {
			counts[*country]++
		}
	}
	type countryCount struct {
		name string
		n    int
	}
	ranked := make([]countryCount, 0, len(counts))
	for name, n := range counts {
		ranked = append(ranked, countryCount{name, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > 20 {
		ranked = ranked[:20]
	}
	rows := make([][]string, 0, len(ranked))
	for _, c := range ranked {
		rows = append(rows, []string{c.name, fmt.Sprint(c.n)})
	}
	writeTable(w, []string{"Country / Region", "Crashes"}, rows, []int{40, 10})

	sub(w, "Top 20 Specific Crash Locations")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT location, COUNT(*) AS crashes
		  FROM %s
		 WHERE location IS NOT NULL
		 GROUP BY location
		 ORDER BY crashes DESC
		 LIMIT 20`, p.table))
	if err != nil {
		return err
	}
	rows = rows[:0]
	for _, rec := range recs {
		rows = append(rows, []string{cell(rec["location"]), cell(rec["crashes"])})
	}
	writeTable(w, []string{"Location", "Crashes"}, rows, []int{54, 10})
	return nil
}

// dataQuality renders the known-inconsistency findings: mismatched totals,
// impossible fatality counts, potential duplicates, and registration reuse.
func (p *Profiler) dataQuality(ctx context.Context, w io.Writer) error {
	section(w, "5. DATA QUALITY")

	sub(w, "Rows Where aboard_total != aboard_passengers + aboard_crew")
	recs, err := p.repo.Query(ctx, fmt.Sprintf(`
		SELECT date, operator, aboard_total, aboard_passengers, aboard_crew
		  FROM %s
		 WHERE aboard_total IS NOT NULL
		   AND aboard_passengers IS NOT NULL
		   AND aboard_crew IS NOT NULL
		   AND aboard_total != aboard_passengers + aboard_crew
		 LIMIT 10`, p.table))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "  No mismatches found.")
	} else {
		rows := make([][]string, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, []string{
				cell(rec["date"]), cell(rec["operator"]), cell(rec["aboard_total"]),
				cell(rec["aboard_passengers"]), cell(rec["aboard_crew"]),
			})
		}
		writeTable(w, []string{"Date", "Operator", "Total", "Pax", "Crew"}, rows, []int{12, 32, 7, 7, 7})
	}

	sub(w, "Rows Where fatalities_aboard != fatalities_passengers + fatalities_crew")
	n, err := p.queryInt(ctx, fmt.Sprintf(`
		SELECT COUNT(*) AS n FROM %s
		 WHERE fatalities_aboard IS NOT NULL
		   AND fatalities_passengers IS NOT NULL
		   AND fatalities_crew IS NOT NULL
		   AND fatalities_aboard != fatalities_passengers + fatalities_crew`, p.table))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "  Total mismatched rows: %d\n", n)

	sub(w, "Rows Where fatalities_aboard > aboard_total")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT date, operator, aboard_total, fatalities_aboard
		  FROM %s
		 WHERE fatalities_aboard IS NOT NULL
		   AND aboard_total IS NOT NULL
		   AND fatalities_aboard > aboard_total
		 LIMIT 10`, p.table))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "  No rows where fatalities exceed aboard count.")
	} else {
		rows := make([][]string, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, []string{
				cell(rec["date"]), cell(rec["operator"]),
				cell(rec["aboard_total"]), cell(rec["fatalities_aboard"]),
			})
		}
		writeTable(w, []string{"Date", "Operator", "Aboard", "Fatalities"}, rows, []int{12, 32, 8, 12})
	}

	sub(w, "Potential Duplicates - same (date, operator, route)")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT date, operator, route, COUNT(*) AS occurrences
		  FROM %s
		 WHERE date IS NOT NULL AND operator IS NOT NULL AND route IS NOT NULL
		 GROUP BY date, operator, route
		 HAVING COUNT(*) > 1
		 ORDER BY occurrences DESC
		 LIMIT 10`, p.table))
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "  No duplicate (date, operator, route) combinations found.")
	} else {
		rows := make([][]string, 0, len(recs))
		for _, rec := range recs {
			rows = append(rows, []string{
				cell(rec["date"]), cell(rec["operator"]), cell(rec["route"]), cell(rec["occurrences"]),
			})
		}
		writeTable(w, []string{"Date", "Operator", "Route", "Count"}, rows, []int{12, 30, 30, 7})
	}

	sub(w, "Registrations Used Across Multiple Aircraft Types (top 10)")
	recs, err = p.repo.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT registration, ac_type
		  FROM %s
		 WHERE registration IS NOT NULL AND ac_type IS NOT NULL`, p.table))
	if err != nil {
		return err
	}
	typesByReg := map[string][]string{}
	for _, rec := range recs {
		reg, ok := rec.String("registration")
		if !ok {
			continue
		}
		if t, ok := rec.String("ac_type"); ok {
			typesByReg[reg] = append(typesByReg[reg], t)
		}
	}
	type reuse struct {
		reg   string
		types []string
	}
	var reused []reuse
	for reg, types := range typesByReg {
		if len(types) > 1 {
			sort.Strings(types)
			reused = append(reused, reuse{reg, types})
		}
	}
	sort.Slice(reused, func(i, j int) bool {
		if len(reused[i].types) != len(reused[j].types) {
			return len(reused[i].types) > len(reused[j].types)
		}
		return reused[i].reg < reused[j].reg
	})
	if len(reused) > 10 {
		reused = reused[:10]
	}
	if len(reused) == 0 {
		fmt.Fprintln(w, "  No registrations reused across multiple aircraft types.")
	} else {
		rows := make([][]string, 0, len(reused))
		for _, r := range reused {
			rows = append(rows, []string{r.reg, fmt.Sprint(len(r.types)), strings.Join(r.types, ", ")})
		}
		writeTable(w, []string{"Registration", "# Types", "Aircraft Types"}, rows, []int{14, 9, 52})
	}
	return nil
}

func (p *Profiler) queryInt(ctx context.Context, query string) (int64, error) {
	recs, err := p.repo.Query(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, fmt.Errorf("analytics: query returned no rows")
	}
	n, ok := recs[0].Int("n")
	if !ok {
		return 0, fmt.Errorf("analytics: query column n is not an integer")
	}
	return n, nil
}
