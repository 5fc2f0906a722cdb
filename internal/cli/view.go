package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/kintree/pkg/connector"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/family"
	"github.com/matzehuels/kintree/pkg/geom"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/storage"
	"github.com/matzehuels/kintree/pkg/viewport"
)

// Diagram units moved per arrow key press.
const panStep = 60.0

// Wheel delta reported per mouse-wheel notch.
const wheelNotch = 100.0

// chromeLines is the number of terminal lines used below the diagram.
const chromeLines = 2

// connectorsMsg carries a recomputed connector set.
type connectorsMsg struct{ res connector.Result }

// reloadMsg reports that the stored tree changed outside this viewer.
type reloadMsg struct{}

// ViewModel is the bubbletea model for the interactive diagram.
type ViewModel struct {
	ctx        context.Context
	store      *storage.TreeStore
	tree       *family.Tree
	metrics    layout.Metrics
	view       *viewport.Viewport
	invalidate func(connector.Scene)

	forest   layout.Forest
	frame    layout.Frame
	links    []connector.Link
	selected string

	width, height int
	fitted        bool
	confirmDelete bool
	status        string
}

// newViewModel creates a viewer over tree. invalidate receives a new scene
// whenever the layout or viewport changes.
func newViewModel(ctx context.Context, store *storage.TreeStore, tree *family.Tree, metrics layout.Metrics, limits viewport.Limits, invalidate func(connector.Scene)) ViewModel {
	m := ViewModel{
		ctx:        ctx,
		store:      store,
		tree:       tree,
		metrics:    metrics,
		view:       viewport.New(limits),
		invalidate: invalidate,
	}
	m.relayout()
	return m
}

func (m ViewModel) Init() tea.Cmd {
	return nil
}

// relayout recomputes the diagram after the tree changed.
func (m *ViewModel) relayout() {
	m.forest, m.frame = layout.Compute(m.ctx, m.tree.Members(), m.metrics)
	if _, ok := m.tree.Get(m.selected); !ok {
		m.selected = ""
		if placed := m.forest.Placed(); len(placed) > 0 {
			m.selected = placed[0]
		}
	}
	m.sendScene()
}

// sendScene hands the current layout, as measured on screen, to the
// connector recomputer.
func (m *ViewModel) sendScene() {
	if m.invalidate == nil {
		return
	}
	view := *m.view
	frame := m.frame
	m.invalidate(connector.Scene{
		Members: m.tree.Members(),
		Lookup: func(id string) (geom.Rect, bool) {
			r, ok := frame.Anchor(id)
			if !ok {
				return geom.Rect{}, false
			}
			return view.ApplyRect(r), true
		},
		Canvas: connector.Canvas{Origin: view.ApplyRect(frame.Bounds()), LogicalWidth: frame.Width},
	})
}

// screenSize returns the diagram area in diagram units.
func (m ViewModel) screenSize() (float64, float64) {
	return float64(m.width) * cellW, float64(max(m.height-chromeLines, 1)) * cellH
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case connectorsMsg:
		m.links = msg.res.Links
		return m, nil

	case reloadMsg:
		td := m.store.Load(m.ctx)
		if slices.Equal(td.Members, m.tree.Members()) {
			return m, nil
		}
		m.tree = family.NewTree(td)
		m.relayout()
		m.status = "Reloaded external change"
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if !m.fitted {
			w, h := m.screenSize()
			m.view.Fit(m.frame.Bounds(), w, h)
			m.fitted = true
		}
		m.sendScene()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirmDelete {
			m.confirmDelete = false
			if msg.String() == "y" {
				m.deleteSelected()
			} else {
				m.status = "Delete cancelled"
			}
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *ViewModel) handleMouse(msg tea.MouseMsg) {
	p := screenPoint(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view.Wheel(p, -wheelNotch)
	case msg.Button == tea.MouseButtonWheelDown:
		m.view.Wheel(p, wheelNotch)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if id, ok := m.scene().cardAt(p); ok {
			m.selected = id
		}
		m.view.BeginDrag(p)
	case msg.Action == tea.MouseActionMotion:
		m.view.DragTo(p)
	case msg.Action == tea.MouseActionRelease:
		m.view.EndDrag()
	default:
		return
	}
	m.sendScene()
}

func (m ViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	w, h := m.screenSize()
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		m.view.PanBy(panStep, 0)
	case "right", "l":
		m.view.PanBy(-panStep, 0)
	case "up", "k":
		m.view.PanBy(0, panStep)
	case "down", "j":
		m.view.PanBy(0, -panStep)
	case "+", "=":
		m.view.ZoomIn()
	case "-", "_":
		m.view.ZoomOut()
	case "0":
		m.view.Reset()
	case "f":
		m.view.Fit(m.frame.Bounds(), w, h)
	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)
	case "n":
		m.edit("Added", func(t *family.Tree) (family.Member, error) { return t.AddRoot(), nil })
	case "c":
		m.edit("Added child", func(t *family.Tree) (family.Member, error) { return t.AddChild(m.selected) })
	case "F":
		m.edit("Added father", func(t *family.Tree) (family.Member, error) { return t.AddFather(m.selected) })
	case "M":
		m.edit("Added mother", func(t *family.Tree) (family.Member, error) { return t.AddMother(m.selected) })
	case "x", "delete":
		if sel, ok := m.tree.Get(m.selected); ok {
			m.confirmDelete = true
			m.status = fmt.Sprintf("Delete %s? (y/N)", sel.FullName())
		}
		return m, nil
	default:
		return m, nil
	}
	m.sendScene()
	return m, nil
}

// cycleSelection moves the selection through the diagram in layout order.
func (m *ViewModel) cycleSelection(step int) {
	placed := m.forest.Placed()
	if len(placed) == 0 {
		return
	}
	i := slices.Index(placed, m.selected)
	if i < 0 {
		m.selected = placed[0]
		return
	}
	m.selected = placed[(i+step+len(placed))%len(placed)]
}

// edit applies fn to a copy of the tree and keeps the copy only once it has
// been saved, then selects the member fn returns.
func (m *ViewModel) edit(verb string, fn func(t *family.Tree) (family.Member, error)) {
	next := m.tree.Clone()
	added, err := fn(next)
	if err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	if !m.commit(next) {
		return
	}
	m.selected = added.ID
	m.relayout()
	m.status = verb + " " + added.FullName()
}

func (m *ViewModel) deleteSelected() {
	sel, ok := m.tree.Get(m.selected)
	if !ok {
		return
	}
	next := m.tree.Clone()
	if err := next.Delete(sel.ID); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	if !m.commit(next) {
		return
	}
	m.relayout()
	m.status = "Deleted " + sel.FullName()
}

// commit saves next and makes it the viewer's tree. On failure the current
// tree is left untouched.
func (m *ViewModel) commit(next *family.Tree) bool {
	if err := m.store.Save(m.ctx, next.Data()); err != nil {
		m.status = "Save failed: " + errors.UserMessage(err)
		return false
	}
	m.tree = next
	return true
}

func (m ViewModel) scene() scene {
	members := make(map[string]family.Member, m.tree.Len())
	for _, mem := range m.tree.Members() {
		members[mem.ID] = mem
	}
	return scene{frame: m.frame, members: members, links: m.links, view: m.view, selected: m.selected}
}

func (m ViewModel) View() string {
	if m.width == 0 {
		return ""
	}
	g := newGrid(m.width, m.height-chromeLines)
	m.scene().draw(g)

	var b strings.Builder
	b.WriteString(g.render())
	b.WriteByte('\n')
	b.WriteString(m.statusLine())
	b.WriteByte('\n')
	b.WriteString(StyleDim.Render("←↑↓→ pan  +/- zoom  0 reset  f fit  tab select  n new  c child  F father  M mother  x delete  q quit"))
	return b.String()
}

func (m ViewModel) statusLine() string {
	parts := []string{
		fmt.Sprintf("%3.0f%%", m.view.Scale*100),
		fmt.Sprintf("%d members", m.tree.Len()),
	}
	if sel, ok := m.tree.Get(m.selected); ok {
		parts = append(parts, memberLabel(sel))
	}
	if n := len(m.forest.Unplaced); n > 0 {
		parts = append(parts, StyleWarning.Render(fmt.Sprintf("%d unplaced", n)))
	}
	line := strings.Join(parts, StyleDim.Render(" · "))
	if m.status != "" {
		line += "  " + StyleHighlight.Render(m.status)
	}
	return line
}

// viewCommand creates the interactive diagram viewer.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Browse and edit the tree as an interactive diagram",
		Long: `Open the family diagram in the terminal.

Drag with the mouse or use the arrow keys to pan, scroll or press +/- to
zoom, click or tab to select a member. n adds a new member, c a child of the
selection, F and M a father or mother, x deletes the selection.

With the file backend, changes written by other kintree commands are picked
up while the viewer is open.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.interactive() {
				return errors.New(errors.ErrCodeUnsupported, "view needs an interactive terminal; use 'kintree tree' or 'kintree render' instead")
			}
			return c.runView(cmd.Context())
		},
	}
}

func (c *CLI) runView(ctx context.Context) error {
	s, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var prog *tea.Program
	rec := connector.NewRecomputer(func(res connector.Result) {
		prog.Send(connectorsMsg{res: res})
	}, connector.WithInterval(s.cfg.Connectors.Interval))

	model := newViewModel(ctx, s.store, s.tree, s.cfg.Layout, s.cfg.Viewport, rec.Invalidate)
	prog = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	logger := loggerFromContext(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = rec.Run(ctx)
	}()
	if fb, ok := s.store.Backend().(*storage.FileBackend); ok {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := fb.Watch(ctx, s.store.Key(), func() { prog.Send(reloadMsg{}) })
			if err != nil && !stderrors.Is(err, context.Canceled) {
				logger.Debug("watch stopped", "err", err)
			}
		}()
	}

	_, err = prog.Run()
	cancel()
	wg.Wait()
	if stderrors.Is(err, tea.ErrProgramKilled) {
		return ctx.Err()
	}
	return err
}
