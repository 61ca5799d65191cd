package formatter

import (
	"fmt"
	"strings"
	"time"

	"dayboard/internal/dateindex"
	"dayboard/internal/daykey"
)

// cellWidth fits a two-digit day number plus its marker column.
const cellWidth = 4

// dayCell renders one day number with its marker. Incomplete tasks take
// precedence over completed ones so an unfinished day never looks done.
func dayCell(day int, s dateindex.Summary, isToday bool) string {
	num := fmt.Sprintf("%2d", day)
	switch {
	case isToday:
		num = StyleHeader.Render(num)
	case s.HasIncomplete:
		num = StyleRed.Render(num)
	case s.HasComplete:
		num = StyleGreen.Render(num)
	default:
		num = StyleFg.Render(num)
	}

	marker := " "
	if s.HasRating {
		marker = StylePurple.Render("•")
	}
	return num + marker + " "
}

// FormatMonth renders a month grid with per-day markers: red for days with
// incomplete tasks, green for days where all due tasks are done, and a dot
// for rated days.
func FormatMonth(year int, month time.Month, days map[int]dateindex.Summary) string {
	return formatMonthFrom(year, month, days, daykey.Today())
}

func formatMonthFrom(year int, month time.Month, days map[int]dateindex.Summary, today daykey.Date) string {
	var b strings.Builder

	for _, wd := range []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"} {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%2s", wd)) + "  ")
	}
	b.WriteString("\n")

	col := int(daykey.FirstWeekday(year, month))
	b.WriteString(strings.Repeat(" ", col*cellWidth))

	for day := 1; day <= daykey.DaysIn(year, month); day++ {
		isToday := today.Year == year && today.Month == month && today.Day == day
		b.WriteString(dayCell(day, days[day], isToday))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}

	legend := fmt.Sprintf("%s incomplete  %s all done  %s rated",
		StyleRed.Render("■"), StyleGreen.Render("■"), StylePurple.Render("•"))
	b.WriteString("\n" + legend + "\n")

	return RenderBox(month.String()+" "+fmt.Sprint(year), b.String())
}
