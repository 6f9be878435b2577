package web

import "strings"

// Breadcrumb is one step of the path trail shown above a document.
type Breadcrumb struct {
	Label string
	Href  string
}

// Breadcrumbs splits a document path into a trail starting at Home.
// Directory steps link to their category section on the overview; the
// last step is the current page and has no link.
func Breadcrumbs(path string) []Breadcrumb {
	crumbs := []Breadcrumb{{Label: "Home", Href: "/"}}

	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}

	for i, seg := range segments {
		crumb := Breadcrumb{Label: seg}
		if i < len(segments)-1 {
			crumb.Href = "/#" + seg
		}
		crumbs = append(crumbs, crumb)
	}
	return crumbs
}
