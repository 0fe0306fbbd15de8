package navigation

// CSS classes the nav templates toggle.
const (
	ClassCollapsed    = "collapsed"
	ClassCollapsedNav = "collapsed-nav"
	ClassHoverNav     = "hover-secondary-nav-pf"
	ClassIsHover      = "is-hover"
	ClassActive       = "active"
)

// Classes is the presentation applied to the vertical nav and its container.
type Classes struct {
	Nav       []string
	Container []string
}

// ViewState owns the collapse and hover flags of one rendered navigation bar.
type ViewState struct {
	Collapsed  bool
	Hovering   bool
	HoverEntry string
}

// ToggleNavBar applies the presentation for the current Collapsed flag.
func (v *ViewState) ToggleNavBar() Classes {
	return v.Classes()
}

// UserToggle flips Collapsed and applies the resulting presentation.
func (v *ViewState) UserToggle() Classes {
	v.Collapsed = !v.Collapsed
	return v.ToggleNavBar()
}

// OnMouseEnter marks entryID as the single hovered entry.
func (v *ViewState) OnMouseEnter(entryID string) {
	v.Hovering = true
	v.HoverEntry = entryID
}

func (v *ViewState) OnMouseLeave() {
	v.Hovering = false
	v.HoverEntry = ""
}

func (v *ViewState) Classes() Classes {
	var out Classes
	if v.Collapsed {
		out.Nav = append(out.Nav, ClassCollapsed)
		out.Container = append(out.Container, ClassCollapsedNav)
	}
	if v.Hovering {
		out.Nav = append(out.Nav, ClassHoverNav)
	}
	return out
}

// EntryClasses returns the classes of one nav list item.
func (v *ViewState) EntryClasses(entry Entry, active ActiveSet) []string {
	var out []string
	if active.Entry(entry.ID) {
		out = append(out, ClassActive)
	}
	if v.Hovering && v.HoverEntry != "" && v.HoverEntry == entry.ID {
		out = append(out, ClassIsHover)
	}
	return out
}

// GroupClasses returns the classes of a secondary-nav group.
func (v *ViewState) GroupClasses(group string, active ActiveSet) []string {
	if active.Group(group) {
		return []string{ClassActive}
	}
	return nil
}
