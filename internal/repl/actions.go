package repl

import (
	"context"
	"fmt"
	"io"

	"github.com/billmal071/finna/internal/finna"
	"github.com/billmal071/finna/internal/launcher"
	"github.com/billmal071/finna/internal/render"
)

// Actions performs record actions. It talks to the API, the launcher and
// the output only; session state is never touched.
type Actions struct {
	Gateway  finna.Gateway
	Launcher launcher.Launcher
	Out      io.Writer
	Settings Settings
	Lng      string
}

// Dispatch runs the record action name for id. rec is the record from the
// current page when the action addressed one by position, nil otherwise.
func (a *Actions) Dispatch(ctx context.Context, name, id string, rec *finna.Record) error {
	switch name {
	case ActionView:
		return a.view(ctx, id)
	case ActionRaw:
		return a.raw(ctx, id)
	case ActionFull:
		return a.full(ctx, id)
	case ActionImage:
		return a.image(ctx, id, rec)
	case ActionOpen:
		return a.Launcher.OpenURL(finna.RecordURL(a.Settings.SiteBaseURL, id))
	case ActionHoldings:
		return a.Launcher.OpenURL(finna.HoldingsURL(a.Settings.SiteBaseURL, id))
	default:
		return fmt.Errorf("%w: :%s", ErrUnknownCommand, name)
	}
}

func (a *Actions) fetch(ctx context.Context, id string, fields []string) (*finna.Record, error) {
	query, err := finna.BuildRecordQueryLng(id, fields, a.Lng)
	if err != nil {
		return nil, err
	}
	return a.Gateway.Record(ctx, query)
}

func (a *Actions) view(ctx context.Context, id string) error {
	rec, err := a.fetch(ctx, id, finna.SummaryFields)
	if err != nil {
		return err
	}
	render.Record(a.Out, rec)
	return nil
}

func (a *Actions) raw(ctx context.Context, id string) error {
	rec, err := a.fetch(ctx, id, finna.RawDataFields)
	if err != nil {
		return err
	}
	data, ok := rec.Extra("rawData")
	if !ok {
		return fmt.Errorf("%w: record %s has no raw data", finna.ErrParse, id)
	}
	render.Raw(a.Out, data)
	return nil
}

func (a *Actions) full(ctx context.Context, id string) error {
	rec, err := a.fetch(ctx, id, finna.FullRecordFields)
	if err != nil {
		return err
	}
	data, ok := rec.Extra("fullRecord")
	if !ok {
		return fmt.Errorf("%w: record %s has no full record", finna.ErrParse, id)
	}
	render.Markup(a.Out, finna.NormalizeMarkup(string(data)))
	return nil
}

func (a *Actions) image(ctx context.Context, id string, rec *finna.Record) error {
	if rec == nil || len(rec.Images) == 0 {
		fetched, err := a.fetch(ctx, id, finna.SummaryFields)
		if err != nil {
			return err
		}
		rec = fetched
	}
	if len(rec.Images) == 0 {
		return fmt.Errorf("%w for %s", launcher.ErrNoImages, id)
	}
	return a.Launcher.ViewImages([]string{finna.ImageURL(a.Settings.ImageHost, rec.Images[0])})
}
