package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/dataguard/svc/validation"
)

type domainRequest struct {
	Domain string
	Input  validation.Input
}

type allRequest struct {
	Inputs map[string]validation.Input
}

type domainResult struct {
	Domain string `json:"domain"`
	validation.Outcome
}

func (a *API) readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, a.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.Join(ErrPayloadTooLarge, err)
		}
		return nil, errors.Join(ErrBadRequest, err)
	}
	return data, nil
}

func (a *API) bindDomain(r *http.Request, req *domainRequest) error {
	req.Domain = chi.URLParam(r, "domain")
	if _, ok := validation.Lookup(req.Domain); !ok {
		return errors.Join(ErrNotFound, fmt.Errorf("%w: %q", validation.ErrUnknownDomain, req.Domain))
	}
	data, err := a.readBody(r)
	if err != nil {
		return err
	}
	in, err := validation.DecodeJSON(req.Domain, data)
	if err != nil {
		return errors.Join(ErrBadRequest, err)
	}
	req.Input = in
	return nil
}

func (a *API) bindAll(r *http.Request, req *allRequest) error {
	data, err := a.readBody(r)
	if err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Join(ErrBadRequest, fmt.Errorf("%w: expected an object keyed by domain", validation.ErrInvalidInput), err)
	}
	if len(raw) == 0 {
		return errors.Join(ErrBadRequest, fmt.Errorf("%w: no domains supplied", validation.ErrInvalidInput))
	}

	req.Inputs = make(map[string]validation.Input, len(raw))
	for domain, payload := range raw {
		in, err := validation.DecodeJSON(domain, payload)
		switch {
		case errors.Is(err, validation.ErrUnknownDomain):
			// Reported as a failed validation by the validator.
			in = validation.Input{}
		case err != nil:
			return errors.Join(ErrBadRequest, fmt.Errorf("domain %q: %w", domain, err))
		}
		req.Inputs[domain] = in
	}
	return nil
}

func (a *API) newValidator() *validation.Validator {
	return validation.New(
		validation.WithLogger(a.log),
		validation.WithMissingThreshold(a.threshold),
	)
}

func (a *API) validateDomain(ctx context.Context, req domainRequest) Response {
	out := a.newValidator().Validate(ctx, req.Domain, req.Input)
	return JSON(domainResult{Domain: req.Domain, Outcome: out}, map[string]any{"passed": out.Passed})
}

func (a *API) validateAll(ctx context.Context, req allRequest) Response {
	res := a.newValidator().ValidateAll(ctx, req.Inputs)
	return JSON(res, map[string]any{"passed": res.OverallPassed})
}

func (a *API) domains(context.Context, struct{}) Response {
	return JSON(validation.Domains(), nil)
}
