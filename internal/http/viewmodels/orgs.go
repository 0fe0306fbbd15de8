package viewmodels

type OrgSummaryItem struct {
	ID          string
	Name        string
	Description string
	Href        string
}

type OrgShowViewData struct {
	Layout         LayoutData
	OrgID          string
	Name           string
	Description    string
	DescriptionURL string
	DeleteURL      string
}

type OrgListViewData struct {
	Layout LayoutData
	Items  []OrgSummaryItem
}

type PageErrorData struct {
	Title   string
	Message string
}

// DeleteDialogViewData renders one state of the delete-confirmation modal.
type DeleteDialogViewData struct {
	DialogID     string
	CSRFToken    string
	OrgID        string
	OrgName      string
	TypedName    string
	OkayToDelete bool
	Deleting     bool
	Succeeded    bool
	PollDelayMS  int64
	TypedURL     string
	YesURL       string
	NoURL        string
	StatusURL    string
	Error        *PageErrorData
}
