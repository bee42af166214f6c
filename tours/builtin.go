// Package tours holds the step lists for the app's features. The built-in
// catalog ships with the binary; a YAML catalog can override or extend it
// and is reloaded when the file changes.
package tours

import "github.com/dylan/spotlight/tour"

// Features with a built-in tour.
const (
	Home    tour.Feature = "home"
	Planner tour.Feature = "planner"
	Journal tour.Feature = "journal"
)

// Locators the demo screens register.
const (
	LocHomeGreeting = "home.greeting"
	LocHomeTabs     = "home.tabs"
	LocHomeToday    = "home.today"

	LocPlannerHeader = "planner.header"
	LocPlannerList   = "planner.list"
	LocPlannerAdd    = "planner.add"

	LocJournalEditor = "journal.editor"
	LocJournalStreak = "journal.streak"
	LocJournalMood   = "journal.mood"
)

func homeSteps() []tour.Step {
	return []tour.Step{
		tour.Centered("welcome", "Welcome", "A quick look around before you start."),
		tour.Anchored("greeting", LocHomeGreeting, tour.PositionBottom,
			"Your day", "The greeting shows how today is shaping up.").
			WithAction(tour.ActionLook),
		tour.Anchored("today", LocHomeToday, tour.PositionTop,
			"Today", "Your next session and planned tasks live here."),
		tour.Anchored("tabs", LocHomeTabs, tour.PositionTop,
			"Moving around", "Switch between home, planner and journal with tab.").
			WithAction(tour.ActionTap),
	}
}

func plannerSteps() []tour.Step {
	return []tour.Step{
		tour.Anchored("header", LocPlannerHeader, tour.PositionBottom,
			"Planner", "Plan the week one task at a time."),
		tour.Anchored("list", LocPlannerList, tour.PositionBottom,
			"Your tasks", "Scroll the list to review everything that is planned.").
			WithAction(tour.ActionSwipe),
		tour.Anchored("add", LocPlannerAdd, tour.PositionTop,
			"Add a task", "Press a to add something new.").
			WithAction(tour.ActionTap),
	}
}

func journalSteps() []tour.Step {
	return []tour.Step{
		tour.Anchored("editor", LocJournalEditor, tour.PositionBottom,
			"Journal", "Write a few lines about how today went.").
			WithAction(tour.ActionTap),
		tour.Anchored("mood", LocJournalMood, tour.PositionRight,
			"Mood", "Tag each entry with how you felt."),
		// The badge only renders once there is at least one entry.
		tour.Anchored("streak", LocJournalStreak, tour.PositionLeft,
			"Streak", "Keep writing daily to grow your streak.").
			WithAction(tour.ActionLook).
			When(tour.TargetPresent(LocJournalStreak)),
		tour.Centered("done", "All set", "That's the journal. Happy writing."),
	}
}

// Builtin returns the catalog compiled into the binary.
func Builtin() *Catalog {
	c := NewCatalog()
	c.Set(Home, homeSteps)
	c.Set(Planner, plannerSteps)
	c.Set(Journal, journalSteps)
	return c
}
