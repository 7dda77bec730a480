package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ConfirmConfig configures a yes/no style prompt.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single-select prompt.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Help         string
	PageSize     int
}

// PromptDriver abstracts the terminal so the drawer can be tested without one
// and callers can swap implementations.
type PromptDriver interface {
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the interactive driver backed by survey. The ask
// options apply to every prompt, e.g. survey.WithStdio in tests or pipes.
func NewSurveyDriver(opts ...survey.AskOpt) PromptDriver {
	return &surveyDriver{out: os.Stdout, opts: opts}
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var ok bool
	prompt := &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}
	if err := survey.AskOne(prompt, &ok, d.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return ok, nil
}

// Select answers with the chosen index; survey writes OptionAnswer.Index into
// int targets.
func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		prompt.Default = cfg.DefaultIndex
	}
	opts := d.opts
	if cfg.PageSize > 0 {
		opts = append(append([]survey.AskOpt(nil), d.opts...), survey.WithPageSize(cfg.PageSize))
	}
	idx := -1
	if err := survey.AskOne(prompt, &idx, opts...); err != nil {
		return -1, translateSurveyErr(err)
	}
	return idx, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

// translateSurveyErr maps Ctrl+C and a closed stdin to ErrAborted.
func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
		return ErrAborted
	}
	return err
}
