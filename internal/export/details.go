package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jimezsa/jobboard/internal/models"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"
)

// WriteDetails prints one posting with its description rendered as text.
func WriteDetails(w io.Writer, job models.JobPosting, opts WriteOptions) error {
	output := termenv.NewOutput(w)
	title := safe(job.Title)
	if opts.ColorEnabled {
		title = output.String(title).Bold().String()
	}

	lines := []string{title}
	company := safe(job.CompanyName)
	if company != "" {
		if url := safe(job.CompanyURL); url != "" && opts.Hyperlinks {
			company = hyperlink(url, company)
		}
		lines = append(lines, company)
	}
	lines = append(lines, "")

	field := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			lines = append(lines, fmt.Sprintf("%-15s %s", label+":", value))
		}
	}
	field("Location", job.LocationName)
	field("Contract Type", FormatContractType(job.ContractType))
	field("Work Time", FormatContractTime(job.ContractTime))
	field("Work Location", job.WorkplaceModel)
	if code := safe(job.CountryCode); code != "" {
		name := models.CountryName(code)
		if name == strings.ToUpper(code) && job.CountryName != "" {
			name = job.CountryName
		}
		field("Country", strings.TrimSpace(models.FlagEmoji(code)+" "+name))
	}
	field("Salary", SalaryRange(job))
	if !job.Created.IsZero() {
		field("Posted", job.Created.Format("02/01/2006"))
	}
	field("Skills", strings.Join(job.Skills, ", "))
	field("Languages", strings.Join(job.Languages, ", "))
	field("URL", job.URL)

	if desc := HTMLToText(job.DisplayDescription()); desc != "" {
		lines = append(lines, "", desc)
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func FormatContractType(value string) string {
	switch value {
	case "permanent":
		return "Permanent"
	case "contract":
		return "Contract"
	default:
		return value
	}
}

func FormatContractTime(value string) string {
	switch value {
	case "full_time":
		return "Full Time"
	case "part_time":
		return "Part Time"
	default:
		return value
	}
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "tr": true, "table": true,
}

// HTMLToText flattens an HTML description into plain text with one line
// per block element. Plain text input passes through trimmed.
func HTMLToText(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.Contains(raw, "<") {
		return raw
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return raw
	}
	doc.Find("script, style").Remove()

	var b strings.Builder
	var walk func(*goquery.Selection)
	walk = func(sel *goquery.Selection) {
		sel.Contents().Each(func(_ int, node *goquery.Selection) {
			n := node.Get(0)
			switch n.Type {
			case html.TextNode:
				b.WriteString(n.Data)
			case html.ElementNode:
				block := blockElements[n.Data]
				if block {
					b.WriteString("\n")
				}
				if n.Data == "li" {
					b.WriteString("- ")
				}
				walk(node)
				if block {
					b.WriteString("\n")
				}
			}
		})
	}
	walk(doc.Find("body"))

	out := make([]string, 0)
	for _, line := range strings.Split(b.String(), "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
