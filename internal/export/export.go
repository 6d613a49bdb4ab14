package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jimezsa/jobboard/internal/models"
	"github.com/jimezsa/jobboard/internal/ui"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatTable    Format = "table"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatTSV      Format = "tsv"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts the names used on the command line.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "table":
		return FormatTable, nil
	case "csv":
		return FormatCSV, nil
	case "tsv":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q", value)
	}
}

type WriteOptions struct {
	ColorEnabled bool
	Hyperlinks   bool
	LinkStyle    LinkStyle
	// Favorites marks rows whose id maps to true.
	Favorites map[int64]bool
}

type LinkStyle string

const (
	LinkStyleShort LinkStyle = "short"
	LinkStyleFull  LinkStyle = "full"
)

func WriteJobs(w io.Writer, jobs []models.JobPosting, format Format, opts WriteOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, jobs)
	case FormatYAML:
		return writeYAML(w, jobs)
	case FormatCSV:
		return writeCSV(w, jobs, ',')
	case FormatTSV:
		return writeCSV(w, jobs, '\t')
	case FormatMarkdown:
		return writeMarkdown(w, jobs)
	default:
		return writeTable(w, jobs, opts)
	}
}

func writeJSON(w io.Writer, jobs []models.JobPosting) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jobs)
}

func writeYAML(w io.Writer, jobs []models.JobPosting) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(jobs); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, jobs []models.JobPosting, delim rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = delim
	if err := writer.Write(csvHeader()); err != nil {
		return err
	}
	for _, job := range jobs {
		if err := writer.Write(csvRow(job)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, jobs []models.JobPosting, opts WriteOptions) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(tableHeader(), "\t"))
	output := termenv.NewOutput(w)
	for _, job := range jobs {
		fmt.Fprintln(tw, strings.Join(tableRow(job, output, opts), "\t"))
	}
	return tw.Flush()
}

func writeMarkdown(w io.Writer, jobs []models.JobPosting) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}
	for _, job := range jobs {
		urlLine := "  URL: -"
		if url := safe(job.URL); url != "" {
			urlLine = fmt.Sprintf("  URL: [Open listing](<%s>)", url)
		}
		lines := []string{
			fmt.Sprintf("- **%s** (%s)", safe(job.Title), safe(job.CompanyName)),
			fmt.Sprintf("  ID: %d", job.ID),
			fmt.Sprintf("  Location: %s", safe(job.LocationName)),
			urlLine,
		}
		if job.WorkplaceModel != "" {
			lines = append(lines, fmt.Sprintf("  Workplace: %s", safe(job.WorkplaceModel)))
		}
		if contract := contractLabel(job); contract != "" {
			lines = append(lines, fmt.Sprintf("  Contract: %s", contract))
		}
		if salary := SalaryRange(job); salary != "" {
			lines = append(lines, fmt.Sprintf("  Salary: %s", salary))
		}
		if !job.Created.IsZero() {
			lines = append(lines, fmt.Sprintf("  Posted: %s", job.Created.Format(time.RFC3339)))
		}
		if len(job.Skills) > 0 {
			lines = append(lines, fmt.Sprintf("  Skills: %s", strings.Join(job.Skills, ", ")))
		}
		if len(job.Languages) > 0 {
			lines = append(lines, fmt.Sprintf("  Languages: %s", strings.Join(job.Languages, ", ")))
		}
		for _, line := range lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

func csvHeader() []string {
	return []string{
		"id",
		"title",
		"company",
		"location",
		"country",
		"contract_type",
		"contract_time",
		"workplace_model",
		"salary_min",
		"salary_max",
		"skills",
		"languages",
		"url",
		"created",
	}
}

func csvRow(job models.JobPosting) []string {
	created := ""
	if !job.Created.IsZero() {
		created = job.Created.Format(time.RFC3339)
	}
	return []string{
		strconv.FormatInt(job.ID, 10),
		job.Title,
		job.CompanyName,
		job.LocationName,
		job.CountryCode,
		job.ContractType,
		job.ContractTime,
		job.WorkplaceModel,
		floatString(job.SalaryMin),
		floatString(job.SalaryMax),
		strings.Join(job.Skills, ";"),
		strings.Join(job.Languages, ";"),
		job.URL,
		created,
	}
}

func floatString(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// SalaryRange renders "min - max" with the currency of the posting's
// country, or "" when neither bound is known.
func SalaryRange(job models.JobPosting) string {
	if job.SalaryMin == nil && job.SalaryMax == nil {
		return ""
	}
	symbol := models.CurrencySymbol(job.CountryCode)
	return fmt.Sprintf("%s %s - %s", symbol, formatAmount(job.SalaryMin), formatAmount(job.SalaryMax))
}

// formatAmount uses German grouping, 1.234,50.
func formatAmount(value *float64) string {
	if value == nil {
		return "-"
	}
	raw := strconv.FormatFloat(*value, 'f', 2, 64)
	whole, frac, _ := strings.Cut(raw, ".")
	negative := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	out := b.String() + "," + frac
	if negative {
		out = "-" + out
	}
	return out
}

func contractLabel(job models.JobPosting) string {
	parts := make([]string, 0, 2)
	if v := safe(job.ContractType); v != "" {
		parts = append(parts, v)
	}
	if v := safe(job.ContractTime); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ", ")
}

func safe(value string) string {
	return strings.TrimSpace(value)
}

func tableHeader() []string {
	return []string{
		"",
		"id",
		"title",
		"company",
		"location",
		"posted",
		"url",
	}
}

func tableRow(job models.JobPosting, output *termenv.Output, opts WriteOptions) []string {
	url := safe(job.URL)
	displayURL := "-"
	if url != "" {
		displayURL = url
		if opts.LinkStyle == LinkStyleShort && opts.Hyperlinks {
			displayURL = shortURLLabel(url)
		}
		displayURL = ui.ColorizeLink(output, opts.ColorEnabled, displayURL)
		if opts.Hyperlinks {
			displayURL = hyperlink(url, displayURL)
		}
	}
	mark := " "
	if opts.Favorites[job.ID] {
		mark = "♥"
	}
	posted := "-"
	if !job.Created.IsZero() {
		posted = job.Created.Format("2006-01-02")
	}
	return []string{
		mark,
		strconv.FormatInt(job.ID, 10),
		safe(job.Title),
		safe(job.CompanyName),
		safe(job.LocationName),
		posted,
		displayURL,
	}
}

func hyperlink(url string, text string) string {
	const esc = "\x1b"
	return esc + "]8;;" + url + esc + "\\" + text + esc + "]8;;" + esc + "\\"
}

func shortURLLabel(raw string) string {
	const maxLen = 60
	label := strings.TrimSpace(raw)
	if parsed, err := url.Parse(raw); err == nil {
		host := strings.TrimPrefix(parsed.Host, "www.")
		if host != "" {
			label = host + parsed.Path
		}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = raw
	}
	if len(label) > maxLen {
		label = label[:maxLen-3] + "..."
	}
	return label
}
