package parse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedConfig = `# Hyprland keybinds
monitor = ,preferred,auto,1
bind = SUPER, X, exec, dropped-before-heading

#!Workspaces
bind = SUPER, 1, workspace, 1
##!Moving
bind = SUPER SHIFT, 1, movetoworkspace, 1
###!Special
bind = SUPER, S, togglespecialworkspace, magic
##!Scrolling
bind = SUPER, mouse_down, workspace, e+1
#/# bind = SUPER, mouse_up, workspace, e-1

#!Apps
bind = SUPER, Return, exec, kitty
bind = SUPER, E, exec, thunar # Files
bind = SUPER, H, exec, htop [hidden]
bind = SUPER, B
#/# # not a bind
`

func TestParse_BasicDocuments(t *testing.T) {
	t.Parallel()

	t.Run("single section", func(t *testing.T) {
		t.Parallel()
		got := Parse("#!General\nbind = SUPER, Return, exec, kitty\n")
		require.Len(t, got, 1)
		assert.Equal(t, "General", got[0].Name)
		require.Len(t, got[0].Keybinds, 1)
		assert.Equal(t, KeyBinding{
			Mods: []string{}, Key: "Return", Dispatcher: "exec", Params: "kitty", Comment: "Run: kitty",
		}, got[0].Keybinds[0])
		assert.Empty(t, got[0].Children)
	})

	t.Run("deeper first heading is a root child", func(t *testing.T) {
		t.Parallel()
		got := Parse("##!Sub\nbind = SUPER SHIFT, Q, killactive,\n")
		require.Len(t, got, 1)
		assert.Equal(t, "Sub", got[0].Name)
		require.Len(t, got[0].Keybinds, 1)
		kb := got[0].Keybinds[0]
		// The lead field "bind = SUPER SHIFT" is not part of the key spec.
		assert.Equal(t, []string{}, kb.Mods)
		assert.Equal(t, "Q", kb.Key)
		assert.Equal(t, "killactive", kb.Dispatcher)
		assert.Equal(t, "", kb.Params)
		assert.Equal(t, "killactive", kb.Comment)
	})

	t.Run("hidden bind", func(t *testing.T) {
		t.Parallel()
		got := Parse("#!H\nbind = SUPER, 1, workspace, 1 #/# hidden test [hidden]")
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Keybinds)
	})

	t.Run("siblings", func(t *testing.T) {
		t.Parallel()
		got := Parse("#!A\n#!B\nbind=SUPER,F,fullscreen,")
		require.Len(t, got, 2)
		assert.Equal(t, "A", got[0].Name)
		assert.Empty(t, got[0].Keybinds)
		assert.Equal(t, "B", got[1].Name)
		require.Len(t, got[1].Keybinds, 1)
		assert.Equal(t, "fullscreen", got[1].Keybinds[0].Dispatcher)
		assert.Equal(t, "Toggle fullscreen", got[1].Keybinds[0].Comment)
	})

	t.Run("explicit comment", func(t *testing.T) {
		t.Parallel()
		got := Parse("#!Files\nbind=SUPER,E,exec,thunar # Open file manager")
		require.Len(t, got, 1)
		require.Len(t, got[0].Keybinds, 1)
		assert.Equal(t, "thunar", got[0].Keybinds[0].Params)
		assert.Equal(t, "Open file manager", got[0].Keybinds[0].Comment)
	})
}

func TestParse_NestedTree(t *testing.T) {
	t.Parallel()

	got := Parse(nestedConfig)
	require.Len(t, got, 2)

	ws := got[0]
	assert.Equal(t, "Workspaces", ws.Name)
	require.Len(t, ws.Keybinds, 1)
	assert.Equal(t, "Switch to workspace 1", ws.Keybinds[0].Comment)
	require.Len(t, ws.Children, 2)

	moving := ws.Children[0]
	assert.Equal(t, "Moving", moving.Name)
	require.Len(t, moving.Keybinds, 1)
	assert.Equal(t, "movetoworkspace", moving.Keybinds[0].Dispatcher)
	require.Len(t, moving.Children, 1)
	assert.Equal(t, "Special", moving.Children[0].Name)
	require.Len(t, moving.Children[0].Keybinds, 1)
	assert.Equal(t, "togglespecialworkspace magic", moving.Children[0].Keybinds[0].Comment)

	scrolling := ws.Children[1]
	assert.Equal(t, "Scrolling", scrolling.Name)
	require.Len(t, scrolling.Keybinds, 2)
	assert.Equal(t, "mouse_down", scrolling.Keybinds[0].Key)
	assert.Equal(t, "mouse_up", scrolling.Keybinds[1].Key)
	assert.Equal(t, "Switch to workspace e-1", scrolling.Keybinds[1].Comment)

	apps := got[1]
	assert.Equal(t, "Apps", apps.Name)
	require.Len(t, apps.Keybinds, 2)
	assert.Equal(t, "Return", apps.Keybinds[0].Key)
	assert.Equal(t, "Files", apps.Keybinds[1].Comment)
	assert.Empty(t, apps.Children)
}

func TestParse_ShallowerHeadingClosesChain(t *testing.T) {
	t.Parallel()

	got := Parse("###!Deep\nbind = SUPER, D, exec, a\n##!Mid\n#!Top\nbind = SUPER, T, exec, b\n")
	require.Len(t, got, 3)
	assert.Equal(t, "Deep", got[0].Name)
	assert.Equal(t, "Mid", got[1].Name)
	assert.Equal(t, "Top", got[2].Name)
	assert.Len(t, got[0].Keybinds, 1)
	assert.Empty(t, got[1].Keybinds)
	assert.Len(t, got[2].Keybinds, 1)
}

func TestParse_NoHeadings(t *testing.T) {
	t.Parallel()

	got := Parse("bind = SUPER, Q, killactive,\nbind = SUPER, W, exec, firefox\n")
	assert.Empty(t, got)
	assert.Empty(t, Parse(""))
}

func TestParse_CRLF(t *testing.T) {
	t.Parallel()

	unix := Parse(nestedConfig)
	dos := Parse(strings.ReplaceAll(nestedConfig, "\n", "\r\n"))
	assert.Equal(t, unix, dos)
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Parse(nestedConfig), Parse(nestedConfig))
}

func TestParse_CountMatchesParseableBinds(t *testing.T) {
	t.Parallel()

	lines := SplitLines(nestedConfig)
	seenHeading := false
	want := 0
	for _, l := range lines {
		c := classify(l)
		if c.kind == lineHeading {
			seenHeading = true
			continue
		}
		if c.kind != lineBind || !seenHeading {
			continue
		}
		if _, ok := parseBind(c.payload, nil); ok {
			want++
		}
	}

	total := 0
	for _, s := range Parse(nestedConfig) {
		total += s.Count()
	}
	assert.Equal(t, want, total)
	assert.Equal(t, 7, total)
}

func TestParse_DepthIncreasesDownTheTree(t *testing.T) {
	t.Parallel()

	text := "#!A\n##!A1\n###!A1a\n##!A2\n#!B\n####!B1\n###!B2\n"
	got := Parse(text)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"A1", "A2"}, names(got[0].Children))
	assert.Equal(t, []string{"A1a"}, names(got[0].Children[0].Children))
	assert.Equal(t, []string{"B1", "B2"}, names(got[1].Children))

	// Skipped levels keep their marker depth.
	assert.Equal(t, 2, got[1].Depth)
	assert.Equal(t, 5, got[1].Children[0].Depth)
	assert.Equal(t, 4, got[1].Children[1].Depth)
	assert.Equal(t, 4, got[0].Children[0].Children[0].Depth)
}

func TestParser_WithCommenter(t *testing.T) {
	t.Parallel()

	p := New(WithCommenter(func(kb KeyBinding) string {
		return strings.ToUpper(kb.Dispatcher)
	}))
	got := p.ParseString("#!A\nbind = SUPER, Q, killactive,\nbind = SUPER, E, exec, x # kept\n")
	require.Len(t, got, 1)
	require.Len(t, got[0].Keybinds, 2)
	assert.Equal(t, "KILLACTIVE", got[0].Keybinds[0].Comment)
	assert.Equal(t, "kept", got[0].Keybinds[1].Comment)
}

func TestSection_Walk(t *testing.T) {
	t.Parallel()

	var paths []string
	for _, s := range Parse(nestedConfig) {
		s.Walk(func(path []string, _ Section) {
			paths = append(paths, strings.Join(path, " > "))
		})
	}
	assert.Equal(t, []string{
		"Workspaces",
		"Workspaces > Moving",
		"Workspaces > Moving > Special",
		"Workspaces > Scrolling",
		"Apps",
	}, paths)
}

func names(secs []Section) []string {
	out := make([]string, len(secs))
	for i, s := range secs {
		out[i] = s.Name
	}
	return out
}
