package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/apiman/apiman-ui/internal/browser"
	"github.com/apiman/apiman-ui/internal/http/viewmodels"
	"github.com/apiman/apiman-ui/internal/http/views"
	"github.com/apiman/apiman-ui/internal/manager"
	"github.com/apiman/apiman-ui/internal/metrics"
	"github.com/apiman/apiman-ui/internal/orgs"
	"github.com/apiman/apiman-ui/internal/session"
)

// deleteDialog is one open delete-confirmation modal and the collaborators
// its workflow reports to.
type deleteDialog struct {
	id        string
	workflow  *orgs.DeleteWorkflow
	host      *orgs.Dialog
	location  *browser.Location
	lifecycle *pageLifecycle

	// confirmMu serializes confirmations so each failure is logged under
	// the request that issued it.
	confirmMu sync.Mutex
}

func (d *deleteDialog) Discard() {
	d.workflow.Discard()
}

// HandleOrgDeleteOpen opens a new delete dialog for the organization.
func (h *Handlers) HandleOrgDeleteOpen(c *echo.Context) error {
	orgID := strings.TrimSpace(c.Param("orgId"))
	if orgID == "" {
		return RenderNotFound(c)
	}
	snap, err := h.currentSession(c)
	if err != nil {
		return err
	}

	org, err := h.Orgs.GetOrganization(c.Request().Context(), orgID)
	if err != nil {
		if manager.IsNotFound(err) {
			return RenderNotFound(c)
		}
		return h.RenderError(c, err)
	}

	dialog := &deleteDialog{
		host:      orgs.NewDialog(),
		location:  &browser.Location{},
		lifecycle: newPageLifecycle(h.templater(c, snap), "org-delete"),
	}
	dialog.workflow = orgs.NewDeleteWorkflow(orgs.WorkflowConfig{
		Organization: org,
		Session:      snap,
		Resource:     h.Orgs,
		Host:         dialog.host,
		Navigator:    dialog.location,
		Errors:       dialog.lifecycle,
		Clock:        h.Clock,
		CloseDelay:   h.Cfg.DeleteRedirectDelay,
	})
	dialog.id = h.Dialogs.Add(snap.User.Username, dialog)
	metrics.DeleteDialogsOpen.Set(float64(h.Dialogs.Len()))

	return h.RenderComponent(c, views.DeleteDialog(h.deleteDialogView(c, dialog)))
}

// HandleOrgDeleteTyped recomputes the confirmation gate for the typed name
// and re-renders the confirm button.
func (h *Handlers) HandleOrgDeleteTyped(c *echo.Context) error {
	dialog, _, err := h.lookupDialog(c)
	if err != nil {
		return h.dialogLookupError(c, err)
	}
	okay := dialog.workflow.Typed(c.FormValue("typed"))
	disabled := !okay || dialog.workflow.State() != orgs.StateEditing
	yesURL := views.DeleteDialogURL(h.basePath(), dialog.workflow.Organization().ID, dialog.id, "yes")
	return h.RenderComponent(c, views.DeleteConfirmButtonFragment(yesURL, disabled))
}

// HandleOrgDeleteYes issues the delete. Remote failures keep the dialog open
// with the error shown; a success starts the close delay.
func (h *Handlers) HandleOrgDeleteYes(c *echo.Context) error {
	dialog, snap, err := h.lookupDialog(c)
	if err != nil {
		return h.dialogLookupError(c, err)
	}
	dialog.confirmMu.Lock()
	defer dialog.confirmMu.Unlock()
	dialog.lifecycle.bind(h.templater(c, snap))

	if typed, ok := postedValue(c, "typed"); ok {
		dialog.workflow.Typed(typed)
	}

	err = dialog.workflow.Confirm(c.Request().Context())
	switch {
	case errors.Is(err, orgs.ErrNotConfirmed):
		return h.RenderComponentStatus(c, http.StatusUnprocessableEntity, views.DeleteDialog(h.deleteDialogView(c, dialog)))
	case errors.Is(err, orgs.ErrDeleteInFlight):
		return h.RenderComponentStatus(c, http.StatusConflict, views.DeleteDialog(h.deleteDialogView(c, dialog)))
	case errors.Is(err, orgs.ErrWorkflowClosed):
		return c.String(http.StatusGone, "delete dialog is closed")
	case err != nil:
		return h.RenderError(c, err)
	}

	switch dialog.workflow.State() {
	case orgs.StateSucceeded, orgs.StateClosed:
		metrics.OrgDeletionsTotal.WithLabelValues("deleted").Inc()
		setFlashToast(c, deletedOrganizationToast(dialog.workflow.Organization().Name))
	case orgs.StateFailed:
		metrics.OrgDeletionsTotal.WithLabelValues("failed").Inc()
	case orgs.StateCancelled:
		metrics.OrgDeletionsTotal.WithLabelValues("dismissed").Inc()
		h.forgetDialog(dialog)
		return c.String(http.StatusOK, "")
	}
	return h.RenderComponent(c, views.DeleteDialog(h.deleteDialogView(c, dialog)))
}

// HandleOrgDeleteStatus is polled after a successful delete. Once the dialog
// has closed it redirects the browser to where the workflow navigated.
func (h *Handlers) HandleOrgDeleteStatus(c *echo.Context) error {
	dialog, _, err := h.lookupDialog(c)
	if err != nil {
		return h.dialogLookupError(c, err)
	}

	if outcome, _ := dialog.host.Outcome(); outcome == orgs.OutcomeClosed {
		h.forgetDialog(dialog)
		target, ok := dialog.location.Target()
		if !ok {
			target = dialog.workflow.RedirectPath()
		}
		return redirect(c, target)
	}
	return h.RenderComponent(c, views.DeleteDialog(h.deleteDialogView(c, dialog)))
}

// HandleOrgDeleteNo dismisses the dialog without touching the organization.
func (h *Handlers) HandleOrgDeleteNo(c *echo.Context) error {
	dialog, _, err := h.lookupDialog(c)
	if err != nil {
		return h.dialogLookupError(c, err)
	}
	if err := dialog.workflow.Dismiss(); err != nil {
		if errors.Is(err, orgs.ErrWorkflowClosed) {
			return c.String(http.StatusGone, "delete dialog is closed")
		}
		return h.RenderError(c, err)
	}
	h.forgetDialog(dialog)
	return c.String(http.StatusOK, "")
}

// lookupDialog finds the dialog addressed by the request. Dialogs are only
// visible to the user who opened them, and only under their organization.
func (h *Handlers) lookupDialog(c *echo.Context) (*deleteDialog, session.Snapshot, error) {
	snap, err := h.currentSession(c)
	if err != nil {
		return nil, snap, err
	}
	dialog, err := h.Dialogs.Get(c.Param("dialogId"), snap.User.Username)
	if err != nil {
		return nil, snap, err
	}
	if dialog.workflow.Organization().ID != c.Param("orgId") {
		return nil, snap, orgs.ErrDialogNotFound
	}
	return dialog, snap, nil
}

func (h *Handlers) dialogLookupError(c *echo.Context, err error) error {
	if errors.Is(err, orgs.ErrDialogNotFound) {
		return RenderNotFound(c)
	}
	return err
}

func (h *Handlers) forgetDialog(dialog *deleteDialog) {
	h.Dialogs.Remove(dialog.id)
	metrics.DeleteDialogsOpen.Set(float64(h.Dialogs.Len()))
}

func (h *Handlers) deleteDialogView(c *echo.Context, dialog *deleteDialog) viewmodels.DeleteDialogViewData {
	w := dialog.workflow
	org := w.Organization()
	base := h.basePath()
	csrfToken, _ := c.Get(csrfContextKey).(string)
	state := w.State()
	delay := h.Cfg.DeleteRedirectDelay
	if delay <= 0 {
		delay = orgs.DefaultCloseDelay
	}
	return viewmodels.DeleteDialogViewData{
		DialogID:     dialog.id,
		CSRFToken:    csrfToken,
		OrgID:        org.ID,
		OrgName:      org.Name,
		TypedName:    w.TypedName(),
		OkayToDelete: w.OkayToDelete(),
		Deleting:     state == orgs.StateDeleting,
		Succeeded:    state == orgs.StateSucceeded || state == orgs.StateClosed,
		PollDelayMS:  delay.Milliseconds(),
		TypedURL:     views.DeleteDialogURL(base, org.ID, dialog.id, "typed"),
		YesURL:       views.DeleteDialogURL(base, org.ID, dialog.id, "yes"),
		NoURL:        views.DeleteDialogURL(base, org.ID, dialog.id, "no"),
		StatusURL:    views.DeleteDialogURL(base, org.ID, dialog.id, "status"),
		Error:        pageError("Unable to delete organization", w.LastError()),
	}
}

// postedValue returns a form field only when the request actually sent it.
func postedValue(c *echo.Context, name string) (string, bool) {
	req := c.Request()
	if err := req.ParseForm(); err != nil {
		return "", false
	}
	values, ok := req.PostForm[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// RunDialogSweeper discards delete dialogs left open past their TTL until
// ctx is done.
func (h *Handlers) RunDialogSweeper(ctx context.Context, interval time.Duration) error {
	logger := h.logger()
	return h.Dialogs.Run(ctx, interval, func(removed, remaining int) {
		metrics.DeleteDialogsOpen.Set(float64(remaining))
		if removed > 0 {
			metrics.DeleteDialogsExpiredTotal.Add(float64(removed))
			logger.Debug("expired delete dialogs", "removed", removed, "remaining", remaining)
		}
	})
}
