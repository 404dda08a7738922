// Package repl implements the interactive search prompt.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/billmal071/finna/internal/db"
	"github.com/billmal071/finna/internal/finna"
	"github.com/billmal071/finna/internal/launcher"
	"github.com/billmal071/finna/internal/logging"
	"github.com/billmal071/finna/internal/render"
	"github.com/spf13/pflag"
)

// Prompt is printed before every input line
const Prompt = "finna> "

// History persists the prompt lines and completed searches
type History interface {
	AppendLines(lines []string) error
	RecordSearch(query string, resultCount int, filters db.SearchFilters) error
}

// Options configures a REPL
type Options struct {
	Gateway  finna.Gateway
	Launcher launcher.Launcher
	History  History // optional
	In       io.Reader
	Out      io.Writer
	Logger   *slog.Logger
	Settings Settings
}

// REPL reads commands and searches line by line
type REPL struct {
	gateway finna.Gateway
	history History
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger
	actions *Actions
	session *Session
	lines   []string
}

// New creates a REPL starting from params
func New(opts Options, params finna.SearchParameters) *REPL {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &REPL{
		gateway: opts.Gateway,
		history: opts.History,
		in:      opts.In,
		out:     opts.Out,
		logger:  logger,
		actions: &Actions{
			Gateway:  opts.Gateway,
			Launcher: opts.Launcher,
			Out:      opts.Out,
			Settings: opts.Settings,
			Lng:      params.Lng,
		},
		session: NewSession(params, opts.Settings),
	}
}

// Session returns the current session state
func (r *REPL) Session() *Session {
	return r.session
}

// Search runs params and prints the result page. The session changes only
// when the request succeeds.
func (r *REPL) Search(ctx context.Context, params finna.SearchParameters) error {
	query, err := finna.BuildSearchQuery(params)
	if err != nil {
		return err
	}

	page, err := r.gateway.Search(ctx, query)
	if err != nil {
		return err
	}

	r.session.commit(params, query, page)
	r.actions.Lng = params.Lng
	render.Page(r.out, params, page)

	if r.history != nil {
		filters := db.SearchFilters{
			Filters: params.Filters,
			Type:    params.Type,
			Lng:     params.Lng,
			Limit:   params.Limit,
			Sort:    params.Sort,
		}
		if err := r.history.RecordSearch(params.LookforString(), page.ResultCount, filters); err != nil {
			r.logger.Warn("failed to save search history", "error", err)
		}
	}
	return nil
}

// MaxLineLength is the longest input line the prompt accepts
const MaxLineLength = 64 * 1024

type readResult struct {
	line    string
	err     error
	eof     bool
	tooLong bool
}

// readLines forwards input lines until EOF or a read error. Lines longer
// than MaxLineLength are reported and skipped.
func (r *REPL) readLines(ctx context.Context, out chan<- readResult) {
	reader := bufio.NewReader(r.in)
	send := func(res readResult) bool {
		select {
		case out <- res:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			res := readResult{line: line}
			if len(line) > MaxLineLength {
				res = readResult{tooLong: true}
			}
			if !send(res) {
				return
			}
		}
		switch {
		case err == io.EOF:
			send(readResult{eof: true})
			return
		case err != nil:
			send(readResult{err: err})
			return
		}
	}
}

// Run reads and executes lines until :q, end of input or ctx is cancelled.
// The line history is saved on every exit path. Only a failure to read
// input is returned.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	input := make(chan readResult)
	go r.readLines(ctx, input)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out)
			r.flush()
			return nil
		}
		fmt.Fprint(r.out, render.PromptStyle.Render(Prompt))

		var res readResult
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			r.flush()
			return nil
		case res = <-input:
		}

		switch {
		case res.err != nil:
			r.flush()
			return fmt.Errorf("failed to read input: %w", res.err)
		case res.eof:
			fmt.Fprintln(r.out)
			r.flush()
			return nil
		case res.tooLong:
			render.Error(r.out, fmt.Errorf("%w: line longer than %d bytes", ErrInvalidInput, MaxLineLength))
			continue
		}

		if quit := r.handle(ctx, res.line); quit {
			r.flush()
			return nil
		}
	}
}

// handle executes one line and reports whether the loop should stop
func (r *REPL) handle(ctx context.Context, line string) bool {
	cmd, err := Classify(line)
	if cmd.Kind != KindNone || err != nil {
		r.lines = append(r.lines, strings.TrimSpace(line))
	}
	if err == nil {
		if cmd.Kind == KindSession && cmd.Name == CmdQuit {
			return true
		}
		err = r.execute(ctx, cmd)
	}

	switch {
	case err == nil:
	case errors.Is(err, pflag.ErrHelp):
		r.printHelp()
	default:
		r.logger.Debug("command failed", "line", line, "error", err)
		render.Error(r.out, err)
	}
	return false
}

func (r *REPL) execute(ctx context.Context, cmd Command) error {
	switch cmd.Kind {
	case KindNone:
		return nil
	case KindSearch:
		params, err := ParseSearchLine(cmd.Line, r.session.Params)
		if err != nil {
			return err
		}
		return r.Search(ctx, params)
	case KindSession:
		return r.sessionCommand(ctx, cmd.Name)
	case KindIndexed:
		rec, err := r.session.Lookup(cmd.Index)
		if err != nil {
			return err
		}
		return r.actions.Dispatch(ctx, cmd.Name, rec.ID, rec)
	case KindLiteral:
		return r.actions.Dispatch(ctx, cmd.Name, cmd.ID, nil)
	}
	return fmt.Errorf("%w: %q", ErrInvalidInput, cmd.Line)
}

var errNoSearch = fmt.Errorf("%w: no search yet", ErrInvalidInput)

func (r *REPL) sessionCommand(ctx context.Context, name string) error {
	s := r.session
	switch name {
	case CmdHelp:
		r.printHelp()
		return nil
	case CmdRerun:
		// the startup search may have failed; it can still be retried
		if validate(s.Params) != nil {
			return errNoSearch
		}
		return r.Search(ctx, s.Params.Clone())
	case CmdNext, CmdPrevious:
		if !s.HasResults() {
			return errNoSearch
		}
		params := s.Params.Clone()
		switch name {
		case CmdNext:
			params.Page++
		case CmdPrevious:
			if params.Page <= 1 {
				return fmt.Errorf("%w: already on the first page", ErrInvalidInput)
			}
			params.Page--
		}
		return r.Search(ctx, params)
	case CmdWeb:
		if s.LastQuery == "" {
			return errNoSearch
		}
		return r.actions.Launcher.OpenURL(finna.SearchURL(s.Settings.SiteBaseURL, s.LastQuery))
	case CmdImages:
		if !s.HasResults() {
			return errNoSearch
		}
		return r.actions.Launcher.ViewImages(finna.ImageURLs(s.Settings.ImageHost, s.Page.Records))
	}
	return fmt.Errorf("%w: :%s", ErrUnknownCommand, name)
}

func (r *REPL) flush() {
	if r.history == nil || len(r.lines) == 0 {
		return
	}
	if err := r.history.AppendLines(r.lines); err != nil {
		r.logger.Warn("failed to save history", "error", err)
		return
	}
	r.lines = nil
}

func (r *REPL) printHelp() {
	fmt.Fprint(r.out, Help())
}

// Help describes the prompt commands and search options
func Help() string {
	var b strings.Builder
	b.WriteString("Type words to search, optionally with options:\n")
	b.WriteString(SearchUsage())
	b.WriteString("\nCommands:\n")
	for _, c := range [][2]string{
		{":n / :p", "next / previous page"},
		{":r", "run the current search again"},
		{":finna", "open the current search on the web"},
		{":img", "view all images of the current page"},
		{":v N|ID", "show a record summary"},
		{":raw N|ID", "show the raw index data"},
		{":full N|ID", "show the full record"},
		{":img N|ID", "view the first image of a record"},
		{":o N|ID", "open the record on the web"},
		{":hold N|ID", "open the record holdings on the web"},
		{":help", "show this help"},
		{":q", "quit"},
	} {
		fmt.Fprintf(&b, "  %-12s %s\n", c[0], c[1])
	}
	return b.String()
}
