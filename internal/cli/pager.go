package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shiwantha-I-Rodrigo/watch-tower/pkg/gateway"

	tea "github.com/charmbracelet/bubbletea"
)

type pageLoadedMsg struct {
	err error
}

type pagerModel struct {
	ctx     context.Context
	binding ResourceBinding

	isLoading bool
	err       error
}

// Browse runs an interactive pager over one resource: n/p page through
// the listing, r reloads the current page, q quits
func Browse(ctx context.Context, binding ResourceBinding) error {
	if err := binding.LoadPage(ctx, 0); err != nil {
		return fmt.Errorf("failed to load the first page: %w", err)
	}
	model := &pagerModel{
		ctx:     ctx,
		binding: binding,
	}
	program := tea.NewProgram(model)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run the pager: %s", err)
	}
	return nil
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.isLoading = false
		// a superseded load means a newer page already owns the
		// window; there is nothing to surface
		if msg.err != nil && !errors.Is(msg.err, gateway.ErrorSuperseded) {
			m.err = msg.err
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "n":
			return m.startLoad(func() error { return m.binding.NextPage(m.ctx) })
		case "p":
			return m.startLoad(func() error { return m.binding.PrevPage(m.ctx) })
		case "r":
			offset := m.binding.Offset()
			return m.startLoad(func() error { return m.binding.LoadPage(m.ctx, offset) })
		}
	}
	return m, nil
}

func (m *pagerModel) startLoad(load func() error) (tea.Model, tea.Cmd) {
	if m.isLoading {
		return m, nil
	}
	m.isLoading = true
	m.err = nil
	return m, func() tea.Msg {
		return pageLoadedMsg{err: load()}
	}
}

func (m pagerModel) View() string {
	table := NewTable(NewTableOpts{
		Headers: m.binding.Headers(),
		Rows: func(t *Table) error {
			for _, row := range m.binding.Rows() {
				if err := t.NewRow(row...); err != nil {
					return err
				}
			}
			return nil
		},
	})
	schema := m.binding.Schema()
	status := fmt.Sprintf(
		"%s | offset %v | page size %v",
		schema.Name,
		m.binding.Offset(),
		schema.PageSize,
	)
	if m.binding.HasMore() {
		status += " | more available"
	}
	if m.isLoading {
		status += " | loading..."
	}
	view := styleTitle.Render(status) + "\n" + table.Render().GetString()
	if m.err != nil {
		view += styleError.Render(m.err.Error()) + "\n"
	}
	view += styleFaded.Render("n: next page, p: previous page, r: reload, q: quit") + "\n"
	return view
}
