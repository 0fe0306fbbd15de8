package handlers

import (
	"errors"
	"sync"

	"github.com/apiman/apiman-ui/internal/http/viewmodels"
	"github.com/apiman/apiman-ui/internal/logging"
	"github.com/apiman/apiman-ui/internal/manager"
	"github.com/apiman/apiman-ui/internal/metrics"
)

// pageLifecycle is the page-level error handler a dialog reports remote
// failures to. It logs and counts each failure; rendering reads the error
// back from the workflow.
type pageLifecycle struct {
	source string

	mu     sync.Mutex
	logger *logging.Templater
}

func newPageLifecycle(logger *logging.Templater, source string) *pageLifecycle {
	return &pageLifecycle{logger: logger, source: source}
}

// bind sends later failures to logger, the one scoped to the request that
// triggers them.
func (p *pageLifecycle) bind(logger *logging.Templater) {
	p.mu.Lock()
	p.logger = logger
	p.mu.Unlock()
}

func (p *pageLifecycle) HandleError(err error) {
	if err == nil {
		return
	}
	p.mu.Lock()
	logger := p.logger
	p.mu.Unlock()
	metrics.PageErrorsTotal.WithLabelValues(p.source).Inc()
	logger.Error("Request failed in {0}: {1}", p.source, err)
}

// pageError turns a remote failure into the message shown to the user.
// Transport details stay in the logs.
func pageError(title string, err error) *viewmodels.PageErrorData {
	if err == nil {
		return nil
	}
	data := &viewmodels.PageErrorData{Title: title, Message: "The API Manager could not complete the request."}
	var apiErr *manager.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Message != "":
			data.Message = apiErr.Message
		case apiErr.Status != "":
			data.Message = "The API Manager responded " + apiErr.Status + "."
		}
	}
	return data
}
