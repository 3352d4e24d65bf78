package templates

import (
	"strconv"

	"dataforall/internal/denuncias"
	"dataforall/internal/tracking"
	"dataforall/pkg/requestcontext"
)

// NavLink is one navbar entry.
type NavLink struct {
	Href     string
	LabelKey string
	Active   bool
}

var navLinks = []NavLink{
	{Href: "/orientador", LabelKey: "nav.orientador"},
	{Href: "/denuncias", LabelKey: "nav.track"},
	{Href: "/guia", LabelKey: "nav.guide"},
	{Href: "/datos-abiertos", LabelKey: "nav.open_data"},
	{Href: "/programas", LabelKey: "nav.programs"},
}

// Chrome is the data every page layout needs.
type Chrome struct {
	TitleKey string
	Path     string
	Viewer   requestcontext.Viewer
}

// NavLinks returns the navbar with the entry for the current path marked.
func (c Chrome) NavLinks() []NavLink {
	out := make([]NavLink, len(navLinks))
	for i, l := range navLinks {
		l.Active = l.Href == c.Path
		out[i] = l
	}
	return out
}

// GuideStep is one card of the home page carousel.
type GuideStep struct {
	Number int
}

func (g GuideStep) TitleKey() string {
	return "guide.step" + strconv.Itoa(g.Number) + ".title"
}

func (g GuideStep) DescriptionKey() string {
	return "guide.step" + strconv.Itoa(g.Number) + ".description"
}

// GuideSteps is the summarized five step guide.
var GuideSteps = []GuideStep{{1}, {2}, {3}, {4}, {5}}

// CarouselScrollPx is how far one carousel control click scrolls.
const CarouselScrollPx = 320

// TrackingView is the tracking section state. At most one of Error and
// Petition is set.
type TrackingView struct {
	Action   string
	Folio    string
	Source   string
	Error    string
	Petition *tracking.Petition
}

// SourceKey names the data origin notice, or "" when nothing was fetched.
func (v TrackingView) SourceKey() string {
	switch v.Source {
	case "":
		return ""
	case denuncias.SourceAPI:
		return "tracking.source_api"
	default:
		return "tracking.source_mock"
	}
}

type HomeView struct {
	Chrome
	Tracking TrackingView
	Steps    []GuideStep
	ScrollPx int
}

type TrackingPageView struct {
	Chrome
	Tracking TrackingView
}

type LoginView struct {
	Chrome
	Email string
	Error string
}

// RecentFolio is one entry of the panel list.
type RecentFolio struct {
	Folio int64
}

func (r RecentFolio) String() string { return strconv.FormatInt(r.Folio, 10) }

type AdminView struct {
	Chrome
	Email  string
	Recent []RecentFolio
}

type PlaceholderView struct {
	Chrome
}

type NotFoundView struct {
	Chrome
}
