package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/billmal071/finna/internal/finna"
	"github.com/billmal071/finna/internal/render"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadMoreFunc fetches the next result page
type LoadMoreFunc func() ([]*finna.Record, error)

// loadMoreMsg is sent when the next page has arrived
type loadMoreMsg struct {
	records []*finna.Record
	err     error
}

// RecordItem wraps a Record for the list component
type RecordItem struct {
	Record *finna.Record
}

func (r RecordItem) Title() string {
	if r.Record.Title == "" {
		return r.Record.ID
	}
	return r.Record.Title
}

func (r RecordItem) Description() string {
	var parts []string

	if authors := render.Authors(r.Record); authors != "" {
		parts = append(parts, authors)
	}
	label, code := r.Record.CanonicalFormat()
	parts = append(parts, fmt.Sprintf("%s [%s]", label, code))
	if r.Record.Year != "" {
		parts = append(parts, r.Record.Year)
	}
	if building := r.Record.CanonicalBuilding(); building != "" {
		parts = append(parts, building)
	}

	return render.DimStyle.Render(strings.Join(parts, " | "))
}

func (r RecordItem) FilterValue() string { return r.Title() }

// RecordDelegate handles rendering of record items
type RecordDelegate struct{}

func (d RecordDelegate) Height() int                             { return 3 }
func (d RecordDelegate) Spacing() int                            { return 0 }
func (d RecordDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d RecordDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	rec, ok := item.(RecordItem)
	if !ok {
		return
	}

	title := render.Title(rec.Title(), 60)

	var str string
	if index == m.Index() {
		str = render.SelectedStyle.Render(fmt.Sprintf("  ➤ %d. %s", index+1, title))
	} else {
		str = render.NormalStyle.Render(fmt.Sprintf("    %d. %s", index+1, title))
	}
	str += "\n" + render.DimStyle.Render(fmt.Sprintf("      %s", rec.Description()))
	str += "\n" + render.DimStyle.Render(fmt.Sprintf("      ID: %s", rec.Record.ID))

	fmt.Fprint(w, str)
}

// SelectorModel is the Bubble Tea model for browsing results
type SelectorModel struct {
	list          list.Model
	selected      *finna.Record
	quitting      bool
	err           error
	loadMore      LoadMoreFunc
	loading       bool
	seenIDs       map[string]bool
	noMoreResults bool
}

// NewSelector creates a result browser; loadMore may be nil
func NewSelector(records []*finna.Record, title string, loadMore LoadMoreFunc) SelectorModel {
	items := make([]list.Item, 0, len(records))
	seenIDs := make(map[string]bool)
	for _, rec := range records {
		if rec == nil || seenIDs[rec.ID] {
			continue
		}
		items = append(items, RecordItem{Record: rec})
		seenIDs[rec.ID] = true
	}

	l := list.New(items, RecordDelegate{}, 80, 4+len(items)*3)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(true)
	l.Styles.Title = render.HeaderStyle

	return SelectorModel{
		list:     l,
		loadMore: loadMore,
		seenIDs:  seenIDs,
	}
}

func (m SelectorModel) Init() tea.Cmd {
	return nil
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(RecordItem); ok {
				m.selected = item.Record
			}
			return m, tea.Quit
		case "m", "M":
			if m.loadMore != nil && !m.noMoreResults {
				m.loading = true
				return m, m.doLoadMore()
			}
		}
	case loadMoreMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.noMoreResults = true
			return m, nil
		}
		newItems := make([]list.Item, 0, len(msg.records))
		for _, rec := range msg.records {
			if rec != nil && !m.seenIDs[rec.ID] {
				m.seenIDs[rec.ID] = true
				newItems = append(newItems, RecordItem{Record: rec})
			}
		}
		if len(newItems) == 0 {
			m.noMoreResults = true
			return m, nil
		}
		allItems := append(m.list.Items(), newItems...)
		m.list.SetItems(allItems)
		m.list.SetHeight(4 + len(allItems)*3)
		return m, nil
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectorModel) doLoadMore() tea.Cmd {
	return func() tea.Msg {
		records, err := m.loadMore()
		return loadMoreMsg{records: records, err: err}
	}
}

func (m SelectorModel) View() string {
	if m.selected != nil {
		return render.SuccessStyle.Render(fmt.Sprintf("\n  ✓ Selected: %s\n", RecordItem{m.selected}.Title()))
	}

	if m.quitting {
		return render.DimStyle.Render("\n  Cancelled.\n")
	}

	if m.loading {
		return "\n" + m.list.View() + "\n" + render.WarningStyle.Render("  Loading more results...")
	}

	helpParts := []string{"↑/↓: navigate", "enter: open"}
	if m.loadMore != nil && !m.noMoreResults {
		helpParts = append(helpParts, "m: more results")
	}
	helpParts = append(helpParts, "q/esc: cancel")
	help := render.HelpStyle.Render("  " + strings.Join(helpParts, " • "))

	view := "\n" + m.list.View() + "\n" + help
	if m.err != nil {
		view += "\n" + render.ErrorStyle.Render("  Error: "+m.err.Error())
	}
	return view
}

// Selected returns the chosen record
func (m SelectorModel) Selected() *finna.Record {
	return m.selected
}

// Len returns the number of records in the list
func (m SelectorModel) Len() int {
	return len(m.list.Items())
}

// RunSelector shows the result browser and returns the chosen record, or
// nil when the user cancelled
func RunSelector(records []*finna.Record, title string, loadMore LoadMoreFunc) (*finna.Record, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no records to browse")
	}

	p := tea.NewProgram(NewSelector(records, title, loadMore))
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(SelectorModel).Selected(), nil
}
