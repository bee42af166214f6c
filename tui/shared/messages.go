package shared

import (
	"github.com/dylan/spotlight/tour"
	"github.com/dylan/spotlight/tours"
)

// TourFinishedMsg reports the end of a tour session.
type TourFinishedMsg struct {
	Feature tour.Feature
	Outcome tour.Outcome
}

// StartTourMsg asks the app to (re)start the current screen's tour.
type StartTourMsg struct {
	Feature tour.Feature
	Force   bool
}

// CatalogReloadedMsg carries a catalog re-read from disk.
type CatalogReloadedMsg struct {
	Catalog *tours.Catalog
}

// ScreenChangedMsg is sent after the active screen switches.
type ScreenChangedMsg struct {
	Name string
}
