package viewmodels

type NavItemData struct {
	ID           string
	Label        string
	Href         string
	Group        string
	Classes      string
	GroupClasses string
}

type LayoutData struct {
	Title            string
	CSRFToken        string
	BaseHref         string
	Username         string
	LogoutURL        string
	BackURL          string
	NavItems         []NavItemData
	NavClasses       string
	ContainerClasses string
	NavCollapsed     bool
	Toast            *ToastViewData
}
