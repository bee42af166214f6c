package screens

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/spotlight/layout"
	"github.com/dylan/spotlight/tours"
	"github.com/dylan/spotlight/tui/shared"
)

// Data backs the demo screens.
type Data struct {
	Name    string
	Tasks   []string
	Entries []string
	Now     func() time.Time
}

// DemoData returns a week of planned tasks and an empty journal.
func DemoData() *Data {
	tasks := []string{
		"Morning stretch", "Drink a glass of water", "Ten minute walk",
		"Reply to Sam", "Plan groceries", "Breathing exercise",
		"Read one chapter", "Call the dentist", "Evening journal",
		"Prep tomorrow's lunch", "Lights out by 23:00", "Stretch again",
		"Water the plants", "Review the week", "Book a massage",
		"Try a new recipe", "Meditate five minutes", "Tidy the desk",
		"Check in with mum", "Sunday long walk", "Refill prescriptions",
		"Budget review", "Inbox zero", "Plan the weekend",
	}
	return &Data{Name: "friend", Tasks: tasks, Now: time.Now}
}

func card(width int, title, body string) string {
	return shared.CardStyle.Width(max(width-2, 10)).Render(
		shared.CardTitleStyle.Render(title) + "\n" + body)
}

// Home is the landing screen.
func Home(reg *layout.Registry, d *Data) *Screen {
	content := func(width int) []Row {
		now := d.Now()
		greeting := fmt.Sprintf("Good %s, %s", partOfDay(now), d.Name)
		rows := []Row{
			{{Locator: tours.LocHomeGreeting, View: card(width, greeting,
				shared.SubtitleStyle.Render(now.Format("Monday, 2 January")))}},
			{{View: ""}},
			{{Locator: tours.LocHomeToday, View: card(width, "Today", strings.Join([]string{
				"Next session  " + shared.AccentStyle.Render("Breathing, 10 min"),
				fmt.Sprintf("Planned       %d tasks", len(d.Tasks)),
				fmt.Sprintf("Journal       %d entries", len(d.Entries)),
			}, "\n"))}},
			{{View: ""}},
		}
		tips := []string{
			"Small steps add up. Pick one task and start there.",
			"A short walk after lunch helps the afternoon.",
			"Write one sentence in the journal, even on busy days.",
			"Drink water before coffee.",
			"Stretch whenever a build is running.",
		}
		for _, tip := range tips {
			rows = append(rows, Row{{View: shared.DimStyle.Render("· " + tip)}})
		}
		return rows
	}
	return New("home", "Home", tours.Home, content, reg)
}

// Planner lists every planned task. The list is deliberately taller than
// the screen.
func Planner(reg *layout.Registry, d *Data) *Screen {
	content := func(width int) []Row {
		var items []string
		for i, t := range d.Tasks {
			mark := "○"
			if i < 3 {
				mark = shared.AccentStyle.Render("●")
			}
			items = append(items, mark+" "+t)
		}
		list := shared.CardStyle.Width(max(width-2, 10)).Render(strings.Join(items, "\n"))
		return []Row{
			{{Locator: tours.LocPlannerHeader, View: shared.TitleStyle.Render("Planner") + "  " +
				shared.SubtitleStyle.Render(fmt.Sprintf("%d tasks this week", len(d.Tasks)))}},
			{{View: ""}},
			{{Locator: tours.LocPlannerList, View: list}},
			{{View: ""}},
			{{Locator: tours.LocPlannerAdd, View: shared.ButtonStyle.Render("+ add task (a)")}},
		}
	}
	s := New("planner", "Planner", tours.Planner, content, reg)
	s.OnAdd(func() {
		d.Tasks = append(d.Tasks, fmt.Sprintf("New task %d", len(d.Tasks)+1))
	})
	return s
}

// Journal shows the editor, the mood picker and, once there is an entry,
// the streak badge.
func Journal(reg *layout.Registry, d *Data) *Screen {
	content := func(width int) []Row {
		editor := shared.CardStyle.Width(max(width-2, 10)).Render(
			shared.DimStyle.Render("What happened today? (a to add)") + "\n\n")
		mood := shared.CardStyle.Render(
			shared.CardTitleStyle.Render("Mood") + "\n" + "☀  ☁  ☂")
		controls := Row{{Locator: tours.LocJournalMood, View: mood}}
		if len(d.Entries) > 0 {
			badge := shared.BadgeStyle.Render(fmt.Sprintf("🔥 %d day streak", len(d.Entries)))
			controls = append(controls, Block{Locator: tours.LocJournalStreak, View: badge})
		}

		rows := []Row{
			{{Locator: tours.LocJournalEditor, View: editor}},
			{{View: ""}},
			controls,
			{{View: ""}},
		}
		if len(d.Entries) == 0 {
			rows = append(rows, Row{{View: shared.MutedStyle.Render("No entries yet.")}})
		}
		for i := len(d.Entries) - 1; i >= 0; i-- {
			rows = append(rows, Row{{View: shared.DimStyle.Render("· " + d.Entries[i])}})
		}
		return rows
	}
	s := New("journal", "Journal", tours.Journal, content, reg)
	s.OnAdd(func() {
		d.Entries = append(d.Entries, d.Now().Format("Mon 2 Jan 15:04")+"  felt okay")
	})
	return s
}

func partOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

// Tabs renders a tab strip for the given screens.
func Tabs(all []*Screen, active int) string {
	var tabs []string
	for i, s := range all {
		if i == active {
			tabs = append(tabs, shared.TabActiveStyle.Render(s.Title()))
		} else {
			tabs = append(tabs, shared.TabStyle.Render(s.Title()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}
