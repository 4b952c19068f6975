package common

// Section represents a dashboard tab with its URL and display title
type Section struct {
	Url   string
	Title string
}

// Sections contains the dashboard tabs in display order
var Sections = []Section{
	{Url: "/", Title: "Overview"},
	{Url: "/countries", Title: "Countries"},
	{Url: "/genres", Title: "Genres"},
	{Url: "/about", Title: "About"},
}
