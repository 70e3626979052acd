package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/deusflow/campusnews/internal/app"
	"github.com/deusflow/campusnews/internal/config"
	"github.com/deusflow/campusnews/internal/news"
)

const (
	maxTitleWidth    = 60
	maxCategoryWidth = 24
)

// renderTable prints ranked articles as a table aligned by display width.
func renderTable(w io.Writer, res *app.Result) {
	if len(res.Articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
	} else {
		rows := make([][]string, 0, len(res.Articles))
		for i, v := range res.Articles {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				v.FormattedDate,
				runewidth.Truncate(v.DisplayCategories, maxCategoryWidth, "…"),
				strconv.Itoa(v.SourceCount),
				strconv.Itoa(v.ImportanceScore),
				runewidth.Truncate(v.Title, maxTitleWidth, "…"),
			})
		}
		writeTable(w, []string{"#", "날짜", "분류", "출처", "중요도", "제목"}, rows)

		printed := false
		for i, v := range res.Articles {
			if v.Summary == "" {
				continue
			}
			if !printed {
				fmt.Fprintln(w)
				printed = true
			}
			fmt.Fprintf(w, "[%d] %s\n", i+1, v.Summary)
		}
	}

	fmt.Fprintf(w, "\n%d of %d articles", len(res.Articles), res.Total)
	if res.FromCache {
		fmt.Fprint(w, " (cached)")
	}
	fmt.Fprintln(w)
	if len(res.FailedSources) > 0 {
		fmt.Fprintf(w, "Failed sources: %s\n", strings.Join(res.FailedSources, ", "))
	}
}

// renderCatalog prints enabled and disabled sources and the category labels.
func renderCatalog(w io.Writer, cat *config.Catalog) {
	fmt.Fprintln(w, "Sources:")
	writeTable(w, []string{"이름", "종류", "대상"}, descriptorRows(cat.Sources))
	if len(cat.Disabled) > 0 {
		fmt.Fprintln(w, "\nDisabled:")
		writeTable(w, []string{"이름", "종류", "대상"}, descriptorRows(cat.Disabled))
	}
	fmt.Fprintf(w, "\nCategories: %s (fallback %s)\n", strings.Join(cat.Taxonomy.Labels(), ", "), news.OtherCategory)
}

func descriptorRows(ds []news.Descriptor) [][]string {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{d.Name, d.Kind, d.Target})
	}
	return rows
}

func writeTable(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			if i == len(cells)-1 {
				parts[i] = cell
				continue
			}
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.Join(parts, "  "))
	}

	writeRow(headers)
	sep := make([]string, len(headers))
	for i := range headers {
		sep[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(sep, "  "))
	for _, row := range rows {
		writeRow(row)
	}
}
