package application

import (
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/model"
	"github.com/ericfisherdev/xbar-pr-status/internal/domain/navigate"
)

// checkFromContext builds a Check from a legacy commit status context.
func checkFromContext(node any) (model.Check, error) {
	name, err := navigate.String(node, "/context")
	if err != nil {
		return model.Check{}, err
	}

	state, err := navigate.String(node, "/state")
	if err != nil {
		return model.Check{}, err
	}
	status, err := model.ParseCheckStatus(state)
	if err != nil {
		return model.Check{}, loadErr(err, "state from context")
	}

	url, err := navigate.String(node, "/targetUrl")
	if err != nil {
		return model.Check{}, err
	}

	return model.Check{Name: name, Status: status, URL: url, Source: model.CheckSourceContext}, nil
}

// checkFromRun builds a Check from a check run. The conclusion key must be
// present; null means the run has not finished.
func checkFromRun(node any) (model.Check, error) {
	name, err := navigate.String(node, "/name")
	if err != nil {
		return model.Check{}, err
	}

	conclusion, ok := navigate.Lookup(node, "/conclusion")
	if !ok {
		return model.Check{}, &navigate.Error{Path: "/conclusion", Expected: "string", Missing: true}
	}

	status := model.CheckStatusPending
	if conclusion != nil {
		if status, err = model.CheckStatusFromValue(conclusion); err != nil {
			return model.Check{}, loadErr(err, "conclusion from check run")
		}
	}

	url, err := navigate.String(node, "/url")
	if err != nil {
		return model.Check{}, err
	}

	return model.Check{Name: name, Status: status, URL: url, Source: model.CheckSourceRun}, nil
}
