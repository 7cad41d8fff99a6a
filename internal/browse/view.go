// Package browse is the interactive terminal view behind "hyprkeys browse":
// a filter input above a tree of sections and their keybindings.
package browse

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/jward/hyprkeys"
)

// View shows a section tree with a live filter.
type View struct {
	*tview.Flex
	input  *tview.InputField
	tree   *tview.TreeView
	detail *tview.TextView
	root   *tview.TreeNode

	sections []hyprkeys.Section
	subs     *hyprkeys.Substitutions
}

// New creates a View over secs. subs renders key names; nil shows them as
// written.
func New(title string, secs []hyprkeys.Section, subs *hyprkeys.Substitutions) *View {
	v := &View{
		input:    tview.NewInputField().SetLabel(" Filter: ").SetFieldWidth(0),
		tree:     tview.NewTreeView(),
		detail:   tview.NewTextView().SetDynamicColors(false).SetWrap(true),
		root:     tview.NewTreeNode(""),
		sections: secs,
		subs:     subs,
	}

	v.tree.SetRoot(v.root).SetTopLevel(1).SetGraphics(true)
	v.tree.SetBorder(true).SetTitle(" " + title + " ")
	v.detail.SetBorder(true).SetTitle(" Bind ")

	v.input.SetChangedFunc(v.Filter)
	v.tree.SetChangedFunc(v.showDetail)
	v.tree.SetSelectedFunc(func(node *tview.TreeNode) {
		node.SetExpanded(!node.IsExpanded())
	})

	v.Flex = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.input, 1, 0, true).
		AddItem(v.tree, 0, 1, false).
		AddItem(v.detail, 4, 0, false)

	v.Filter("")
	return v
}

// Root returns the tree's hidden root node.
func (v *View) Root() *tview.TreeNode {
	return v.root
}

// Filter rebuilds the tree. An empty term shows the full nested tree; any
// other term shows the matching binds grouped under their section path.
func (v *View) Filter(term string) {
	v.root.ClearChildren()
	if term == "" {
		for _, sec := range v.sections {
			v.root.AddChild(v.sectionNode(sec))
		}
	} else {
		for _, g := range hyprkeys.Search(v.sections, term, v.subs) {
			node := tview.NewTreeNode(fmt.Sprintf("%s (%d)", g.Section, len(g.Keybinds))).
				SetColor(tcell.ColorYellow).
				SetSelectable(true)
			for _, kb := range g.Keybinds {
				node.AddChild(v.bindNode(kb))
			}
			v.root.AddChild(node)
		}
	}

	if children := v.root.GetChildren(); len(children) > 0 {
		v.tree.SetCurrentNode(children[0])
		v.showDetail(children[0])
	} else {
		v.detail.SetText("no matches")
	}
}

func (v *View) sectionNode(sec hyprkeys.Section) *tview.TreeNode {
	node := tview.NewTreeNode(fmt.Sprintf("%s (%d)", sec.Name, sec.Count())).
		SetColor(tcell.ColorYellow).
		SetSelectable(true).
		SetExpanded(true)
	for _, kb := range sec.Keybinds {
		node.AddChild(v.bindNode(kb))
	}
	for _, child := range sec.Children {
		node.AddChild(v.sectionNode(child))
	}
	return node
}

func (v *View) bindNode(kb hyprkeys.KeyBinding) *tview.TreeNode {
	text := fmt.Sprintf("%-24s %s", v.subs.Combo(kb), kb.Comment)
	return tview.NewTreeNode(tview.Escape(text)).
		SetReference(kb).
		SetSelectable(true)
}

func (v *View) showDetail(node *tview.TreeNode) {
	if node == nil {
		return
	}
	kb, ok := node.GetReference().(hyprkeys.KeyBinding)
	if !ok {
		v.detail.SetText(node.GetText())
		return
	}
	v.detail.SetText(fmt.Sprintf("%s\n%s %s", kb.Comment, kb.Dispatcher, kb.Params))
}

// Run shows the View full screen until Esc or Ctrl-C. Tab moves focus
// between the filter and the tree.
func (v *View) Run() error {
	app := tview.NewApplication()
	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			app.Stop()
			return nil
		case tcell.KeyTab:
			if v.input.HasFocus() {
				app.SetFocus(v.tree)
			} else {
				app.SetFocus(v.input)
			}
			return nil
		}
		return event
	})
	return app.SetRoot(v, true).SetFocus(v.input).Run()
}
