package seasons

import "time"

// Current is the active NFL season. League imports default to this when the
// caller does not name a season. Sleeper's live endpoints (players, trending,
// rosters) roll forward automatically and never need it.
const Current = "2025"

// Next is the upcoming NFL season year
const Next = "2026"

// Status describes where a season sits relative to the active one
type Status string

const (
	StatusArchived Status = "archived"
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
)

// Season is one selectable season with its display label
type Season struct {
	Year        string `json:"year"`
	Status      Status `json:"status"`
	DisplayName string `json:"display_name"`
}

// Available returns the seasons the UI can offer
func Available() []Season {
	return []Season{
		{Year: "2024", Status: StatusArchived, DisplayName: "2024 Season (Archived)"},
		{Year: Current, Status: StatusActive, DisplayName: Current + " Season (Current)"},
		{Year: Next, Status: StatusUpcoming, DisplayName: Next + " Season (Upcoming)"},
	}
}

// TransitionInfo reports whether two seasons may both carry live data
type TransitionInfo struct {
	Current      string `json:"current"`
	IsTransition bool   `json:"is_transition"`
	Upcoming     string `json:"upcoming,omitempty"`
}

// Transition checks the calendar for the overlap windows: July/August when
// drafts for the new season start, and January/February when playoffs run
// alongside off-season prep.
func Transition(now time.Time) TransitionInfo {
	month := now.Month()
	isTransition := month == time.January || month == time.February ||
		month == time.July || month == time.August

	info := TransitionInfo{Current: Current, IsTransition: isTransition}
	if isTransition {
		info.Upcoming = Next
	}
	return info
}

// Scenario names a season-transition situation the UI may need to explain
type Scenario string

const (
	ScenarioNewSeason     Scenario = "new_season"
	ScenarioOldData       Scenario = "old_data"
	ScenarioDraftDetected Scenario = "draft_detected"
)

// Message is the user-facing copy for a transition scenario
type Message struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
	Urgency string `json:"urgency"`
}

// TransitionMessage returns the copy for a scenario, or false for one it
// does not know.
func TransitionMessage(scenario Scenario) (Message, bool) {
	switch scenario {
	case ScenarioNewSeason:
		return Message{
			Title:   "Welcome to the " + Current + " Season!",
			Message: "A new fantasy season has started. Your 2024 data has been archived and you can now set up your " + Current + " leagues.",
			Action:  "Set Up " + Current + " Season",
			Urgency: "medium",
		}, true
	case ScenarioOldData:
		return Message{
			Title:   "Update Required",
			Message: "You're viewing 2024 season data, but the " + Current + " season is now active. Update to get current player info and league data.",
			Action:  "Switch to " + Current + " Season",
			Urgency: "high",
		}, true
	case ScenarioDraftDetected:
		return Message{
			Title:   "Draft Activity Detected!",
			Message: "We noticed league activity in your " + Current + " season. Ready to start using current season data?",
			Action:  "Yes, Switch to " + Current,
			Urgency: "medium",
		}, true
	}
	return Message{}, false
}

// IsStaleData reports whether a last-active timestamp is old enough that the
// stored data likely belongs to a previous season.
func IsStaleData(lastActive time.Time, now time.Time) bool {
	if lastActive.IsZero() {
		return false
	}
	const staleAfter = 4 * 30 * 24 * time.Hour
	return now.Sub(lastActive) > staleAfter
}
