package dispatch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/claytono/go-itemcmd/internal/catalog"
	"github.com/claytono/go-itemcmd/internal/command"
	"github.com/claytono/go-itemcmd/internal/host"
	"github.com/claytono/go-itemcmd/internal/resolve"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHost records host calls and can fail them.
type mockHost struct {
	host.Recorder
	err error
}

func (m *mockHost) OpenDictionary(ctx context.Context, hrid string) error {
	_ = m.Recorder.OpenDictionary(ctx, hrid)
	return m.err
}

func (m *mockHost) OpenMarketplace(ctx context.Context, hrid string) error {
	_ = m.Recorder.OpenMarketplace(ctx, hrid)
	return m.err
}

func (m *mockHost) OpenURL(ctx context.Context, url string) error {
	_ = m.Recorder.OpenURL(ctx, url)
	return m.err
}

func (m *mockHost) Notify(ctx context.Context, message string) error {
	_ = m.Recorder.Notify(ctx, message)
	return m.err
}

func testIndex() *resolve.Index {
	return resolve.BuildIndex(catalog.New([]catalog.Item{
		{Name: "Radiant Fiber", HRID: "/items/radiant_fiber"},
		{Name: "Silk Fiber", HRID: "/items/silk_fiber"},
		{Name: "Philosopher's Stone", HRID: "/items/philosophers_stone"},
	}), nil)
}

func newTestDispatcher(t *testing.T, h host.Host, idx *resolve.Index) *Dispatcher {
	t.Helper()
	d, err := New(Options{
		Index:       func() *resolve.Index { return idx },
		Host:        h,
		WikiBaseURL: "https://wiki.example/wiki/",
	})
	require.NoError(t, err)
	return d
}

func TestNew_RequiresHost(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestNew_Defaults(t *testing.T) {
	h := &mockHost{}
	d, err := New(Options{Host: h})
	require.NoError(t, err)

	out, err := d.Run(context.Background(), command.Command{Kind: command.Wiki, Arg: "radiant fiber"})
	require.NoError(t, err)
	// No index: best-effort name, default wiki.
	assert.Equal(t, "https://milkywayidle.wiki.gg/wiki/Radiant_Fiber", out.Target)
}

func TestRun_Routing(t *testing.T) {
	tests := []struct {
		name       string
		cmd        command.Command
		idx        *resolve.Index
		wantAction Action
		wantTarget string
		wantCalls  []string
	}{
		{
			name:       "dictionary resolved",
			cmd:        command.Command{Kind: command.Dictionary, Arg: "radiant"},
			idx:        testIndex(),
			wantAction: ActionDictionary,
			wantTarget: "/items/radiant_fiber",
			wantCalls:  []string{"dictionary /items/radiant_fiber"},
		},
		{
			name:       "market resolved",
			cmd:        command.Command{Kind: command.Market, Arg: "SILK FIBER"},
			idx:        testIndex(),
			wantAction: ActionMarket,
			wantTarget: "/items/silk_fiber",
			wantCalls:  []string{"marketplace /items/silk_fiber"},
		},
		{
			name:       "wiki resolved uses canonical name",
			cmd:        command.Command{Kind: command.Wiki, Arg: "silk fiber"},
			idx:        testIndex(),
			wantAction: ActionURL,
			wantTarget: "https://wiki.example/wiki/Silk_Fiber",
			wantCalls:  []string{"open https://wiki.example/wiki/Silk_Fiber"},
		},
		{
			name:       "wiki unresolved uses formatted name",
			cmd:        command.Command{Kind: command.Wiki, Arg: "holy milk"},
			idx:        testIndex(),
			wantAction: ActionURL,
			wantTarget: "https://wiki.example/wiki/Holy_Milk",
			wantCalls:  []string{"open https://wiki.example/wiki/Holy_Milk"},
		},
		{
			name:       "wiki escapes name",
			cmd:        command.Command{Kind: command.Wiki, Arg: "philosopher"},
			idx:        testIndex(),
			wantAction: ActionURL,
			wantTarget: "https://wiki.example/wiki/Philosopher%27s_Stone",
			wantCalls:  []string{"open https://wiki.example/wiki/Philosopher%27s_Stone"},
		},
		{
			name:       "dictionary unresolved skipped",
			cmd:        command.Command{Kind: command.Dictionary, Arg: "holy milk"},
			idx:        testIndex(),
			wantAction: ActionSkipped,
		},
		{
			name:       "market without index skipped",
			cmd:        command.Command{Kind: command.Market, Arg: "radiant fiber"},
			wantAction: ActionSkipped,
		},
		{
			name:       "ambiguous notifies",
			cmd:        command.Command{Kind: command.Market, Arg: "fiber"},
			idx:        testIndex(),
			wantAction: ActionNotice,
			wantTarget: `Multiple items match "fiber": Radiant Fiber, Silk Fiber`,
			wantCalls:  []string{`notify Multiple items match "fiber": Radiant Fiber, Silk Fiber`},
		},
		{
			name:       "ambiguous wiki does not navigate",
			cmd:        command.Command{Kind: command.Wiki, Arg: "fiber"},
			idx:        testIndex(),
			wantAction: ActionNotice,
			wantTarget: `Multiple items match "fiber": Radiant Fiber, Silk Fiber`,
			wantCalls:  []string{`notify Multiple items match "fiber": Radiant Fiber, Silk Fiber`},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &mockHost{}
			d := newTestDispatcher(t, h, tc.idx)
			out, err := d.Run(context.Background(), tc.cmd)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAction, out.Action)
			assert.Equal(t, tc.wantTarget, out.Target)
			assert.Equal(t, tc.cmd, out.Command)
			assert.Equal(t, tc.wantCalls, h.Actions)
		})
	}
}

func TestRun_AmbiguousTruncated(t *testing.T) {
	var items []catalog.Item
	for i := 1; i <= 7; i++ {
		items = append(items, catalog.Item{Name: fmt.Sprintf("Milk %d", i), HRID: fmt.Sprintf("/items/milk_%d", i)})
	}
	idx := resolve.BuildIndex(catalog.New(items), nil)

	h := &mockHost{}
	d := newTestDispatcher(t, h, idx)
	out, err := d.Run(context.Background(), command.Command{Kind: command.Dictionary, Arg: "milk"})
	require.NoError(t, err)
	assert.Equal(t, `Multiple items match "milk": Milk 1, Milk 2, Milk 3, Milk 4, Milk 5 (+2 more)`, out.Target)
	assert.Len(t, out.Result.Candidates, 7)
}

func TestRun_HostErrorWrapped(t *testing.T) {
	hostErr := errors.New("panel missing")
	h := &mockHost{err: hostErr}
	idx := testIndex()
	d := newTestDispatcher(t, h, idx)

	out, err := d.Run(context.Background(), command.Command{Kind: command.Dictionary, Arg: "radiant"})
	require.Error(t, err)
	assert.ErrorIs(t, err, hostErr)
	assert.Contains(t, err.Error(), "/item radiant")
	assert.Equal(t, ActionDictionary, out.Action)

	// The resolver keeps working after a host failure.
	h.err = nil
	out, err = d.Run(context.Background(), command.Command{Kind: command.Dictionary, Arg: "radiant"})
	require.NoError(t, err)
	assert.Equal(t, "/items/radiant_fiber", out.Target)
	assert.Equal(t, 3, idx.Len())
}

func TestRun_UnknownKind(t *testing.T) {
	d := newTestDispatcher(t, &mockHost{}, testIndex())
	_, err := d.Run(context.Background(), command.Command{Kind: command.Kind(42), Arg: "radiant"})
	assert.Error(t, err)
}

func TestHandleLine(t *testing.T) {
	h := &mockHost{}
	d := newTestDispatcher(t, h, testIndex())

	_, handled, err := d.HandleLine(context.Background(), "hello everyone")
	require.NoError(t, err)
	assert.False(t, handled)

	_, handled, err = d.HandleLine(context.Background(), "/item")
	require.NoError(t, err)
	assert.False(t, handled)

	out, handled, err := d.HandleLine(context.Background(), "/wiki radiant")
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "https://wiki.example/wiki/Radiant_Fiber", out.Target)
	assert.Equal(t, []string{"open https://wiki.example/wiki/Radiant_Fiber"}, h.Actions)
}

func TestHandleLine_IndexSwap(t *testing.T) {
	var current *resolve.Index
	h := &mockHost{}
	d, err := New(Options{Index: func() *resolve.Index { return current }, Host: h})
	require.NoError(t, err)

	out, _, err := d.HandleLine(context.Background(), "/item radiant")
	require.NoError(t, err)
	assert.Equal(t, ActionSkipped, out.Action)

	current = testIndex()
	out, _, err = d.HandleLine(context.Background(), "/item radiant")
	require.NoError(t, err)
	assert.Equal(t, ActionDictionary, out.Action)
}

func TestWikiURL(t *testing.T) {
	assert.Equal(t, "https://w.example/wiki/Radiant_Fiber", WikiURL("https://w.example/wiki/", "Radiant Fiber"))
	assert.Equal(t, "https://w.example/wiki/Ancient_Log", WikiURL("https://w.example/wiki", "Ancient_Log"))
	assert.Equal(t, "https://w.example/wiki/A%3FB", WikiURL("https://w.example/wiki/", "A?B"))
}
