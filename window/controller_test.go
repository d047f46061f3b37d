package window

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/platform"
	"github.com/onyx-dot-app/desktop-core/webview"
)

func newTestController(t *testing.T) (*Controller, *webview.MockEngine) {
	t.Helper()

	logger.Reset()
	if err := logger.Init(filepath.Join(t.TempDir(), "test.log")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(logger.Reset)

	eng := webview.NewMockEngine()
	c := NewController(eng, platform.New(launch.NewMockSpawner()))
	c.SetInjectDelays(nil) // Tests opt back in where injection matters
	return c, eng
}

// waitInjected returns a controller hook and a wait func that blocks until
// the labeled window's injection schedule has finished.
func waitInjected(t *testing.T, c *Controller, label string) func() {
	t.Helper()
	done := make(chan struct{})
	var once sync.Once
	c.SetOnInjectDone(func(l string) {
		if l == label {
			once.Do(func() { close(done) })
		}
	})
	return func() {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("injection for %q never completed", label)
		}
	}
}

func TestCreateMain_RegistersAndFocuses(t *testing.T) {
	c, eng := newTestController(t)

	win, err := c.CreateMain("https://cloud.onyx.app", "Onyx")
	if err != nil {
		t.Fatalf("CreateMain: %v", err)
	}

	if got := c.Main(); got != win {
		t.Error("Main() did not return the created window")
	}
	if got := c.Get(MainLabel); got != win {
		t.Error("Get(main) did not return the created window")
	}

	mws := eng.Windows()
	if len(mws) != 1 {
		t.Fatalf("expected 1 engine window, got %d", len(mws))
	}
	mw := mws[0]
	if mw.FocusCalls() != 1 {
		t.Errorf("focus calls = %d, want 1", mw.FocusCalls())
	}

	opts := mw.Options()
	if opts.Label != MainLabel {
		t.Errorf("label = %q, want %q", opts.Label, MainLabel)
	}
	if opts.URL != "https://cloud.onyx.app" {
		t.Errorf("url = %q", opts.URL)
	}
	if opts.Width != 1200 || opts.Height != 800 {
		t.Errorf("size = %vx%v, want 1200x800", opts.Width, opts.Height)
	}
	if opts.MinWidth != 800 || opts.MinHeight != 600 {
		t.Errorf("min size = %vx%v, want 800x600", opts.MinWidth, opts.MinHeight)
	}
	if !opts.Transparent || !opts.TitleBarOverlay || !opts.HiddenTitle {
		t.Errorf("chrome style flags = %+v, want all set", opts)
	}
}

func TestCreateSecondary_UniqueLabels(t *testing.T) {
	c, _ := newTestController(t)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		win, err := c.CreateSecondary("https://cloud.onyx.app", "Onyx")
		if err != nil {
			t.Fatalf("CreateSecondary: %v", err)
		}
		label := win.Label()
		if !strings.HasPrefix(label, "onyx-") {
			t.Errorf("label %q lacks onyx- prefix", label)
		}
		if label == MainLabel {
			t.Errorf("secondary window got the main label")
		}
		if seen[label] {
			t.Errorf("duplicate label %q", label)
		}
		seen[label] = true
	}

	if got := len(c.Labels()); got != 10 {
		t.Errorf("tracked %d windows, want 10", got)
	}
}

func TestCreate_InvalidURL(t *testing.T) {
	c, eng := newTestController(t)

	if _, err := c.CreateMain("not a url", "Onyx"); err == nil {
		t.Fatal("expected error for unparseable URL")
	}
	if len(eng.Windows()) != 0 {
		t.Error("engine window created despite invalid URL")
	}
	if c.Main() != nil {
		t.Error("window registered despite invalid URL")
	}
}

func TestCreate_EngineFailureNoPartialState(t *testing.T) {
	c, eng := newTestController(t)

	want := errors.New("platform refused")
	eng.SetCreateErr(want)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); !errors.Is(err, want) {
		t.Fatalf("CreateMain error = %v, want engine error", err)
	}
	if c.Main() != nil {
		t.Error("window registered despite creation failure")
	}
	if got := len(c.Labels()); got != 0 {
		t.Errorf("tracked %d windows after failure, want 0", got)
	}
}

func TestDefaultInjectionSchedule(t *testing.T) {
	if len(injectDelays) != 5 {
		t.Fatalf("schedule has %d attempts, want 5", len(injectDelays))
	}
	for i, d := range injectDelays {
		want := time.Duration(i+1) * time.Second
		if d != want {
			t.Errorf("delay[%d] = %v, want %v", i, d, want)
		}
	}
}

func TestInjectChrome_FiveAttempts(t *testing.T) {
	c, eng := newTestController(t)
	c.SetBridgeAddr("ws://127.0.0.1:9999")
	c.SetChromeScript("installTitlebar();")
	c.SetInjectDelays([]time.Duration{
		time.Microsecond,
		2 * time.Microsecond,
		3 * time.Microsecond,
		4 * time.Microsecond,
		5 * time.Microsecond,
	})
	wait := waitInjected(t, c, MainLabel)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatalf("CreateMain: %v", err)
	}
	wait()

	mw := eng.Windows()[0]
	evals := mw.Evals()
	if len(evals) != 5 {
		t.Fatalf("eval count = %d, want 5 injection attempts", len(evals))
	}
	for i, script := range evals {
		if !strings.Contains(script, `window.__ONYX_BRIDGE_ADDR__ = "ws://127.0.0.1:9999";`) {
			t.Errorf("attempt %d missing bridge address preamble", i+1)
		}
		if !strings.Contains(script, `window.__ONYX_WINDOW_LABEL__ = "main";`) {
			t.Errorf("attempt %d missing window label preamble", i+1)
		}
		if !strings.Contains(script, "installTitlebar();") {
			t.Errorf("attempt %d missing chrome script body", i+1)
		}
	}
}

func TestInjectChrome_ClosedWindow(t *testing.T) {
	c, eng := newTestController(t)
	c.SetInjectDelays([]time.Duration{
		time.Microsecond, time.Microsecond, time.Microsecond,
	})

	// Destroy the window before the schedule starts so every attempt hits
	// a closed window; the schedule must run out quietly.
	win, err := eng.CreateWindow(webview.Options{Label: MainLabel, URL: "https://cloud.onyx.app"})
	if err != nil {
		t.Fatal(err)
	}
	mw := win.(*webview.MockWindow)
	mw.Close()

	wait := waitInjected(t, c, MainLabel)
	c.InjectChrome(win)
	wait()

	if got := mw.EvalCount(); got != 0 {
		t.Errorf("closed window recorded %d evals, want 0", got)
	}
}

func TestNavigationScripts(t *testing.T) {
	c, eng := newTestController(t)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatalf("CreateMain: %v", err)
	}
	mw := eng.Windows()[0]

	c.Navigate(MainLabel, "https://cloud.onyx.app/chat")
	c.Reload(MainLabel)
	c.GoBack(MainLabel)
	c.GoForward(MainLabel)

	want := []string{
		"window.location.href = 'https://cloud.onyx.app/chat'",
		"window.location.reload()",
		"window.history.back()",
		"window.history.forward()",
	}
	got := mw.Evals()
	if len(got) != len(want) {
		t.Fatalf("evals = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("eval[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNavigation_MissingWindowIsNoOp(t *testing.T) {
	c, _ := newTestController(t)

	// No window registered; none of these may panic or create state.
	c.Navigate("ghost", "https://cloud.onyx.app")
	c.Reload("ghost")
	c.GoBack("ghost")
	c.GoForward("ghost")

	if got := len(c.Labels()); got != 0 {
		t.Errorf("tracked %d windows, want 0", got)
	}
}

func TestNavigation_EvalFailureIsSwallowed(t *testing.T) {
	c, eng := newTestController(t)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatalf("CreateMain: %v", err)
	}
	eng.Windows()[0].SetEvalErr(errors.New("engine rejected script"))

	// Fire-and-forget: failures must not surface.
	c.Reload(MainLabel)
	c.Navigate(MainLabel, "https://cloud.onyx.app/chat")
}

func TestStartDrag(t *testing.T) {
	c, eng := newTestController(t)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatalf("CreateMain: %v", err)
	}

	if err := c.StartDrag(MainLabel); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if got := eng.Windows()[0].DragCalls(); got != 1 {
		t.Errorf("drag calls = %d, want 1", got)
	}

	if err := c.StartDrag("ghost"); !errors.Is(err, ErrWindowNotFound) {
		t.Errorf("StartDrag(ghost) = %v, want ErrWindowNotFound", err)
	}
}

func TestRemoveAndShutdown(t *testing.T) {
	c, _ := newTestController(t)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CreateSecondary("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatal(err)
	}

	c.Remove(MainLabel)
	if c.Main() != nil {
		t.Error("main window still tracked after Remove")
	}
	if got := len(c.Labels()); got != 1 {
		t.Errorf("tracked %d windows after Remove, want 1", got)
	}

	// Removing an unknown label is harmless.
	c.Remove("ghost")

	c.Shutdown()
	if got := len(c.Labels()); got != 0 {
		t.Errorf("tracked %d windows after Shutdown, want 0", got)
	}
}

func TestApplyTranslucencyOnCreate(t *testing.T) {
	c, eng := newTestController(t)

	if _, err := c.CreateMain("https://cloud.onyx.app", "Onyx"); err != nil {
		t.Fatal(err)
	}

	// Creation must succeed even when the effect is unavailable; the call
	// count only matters on platforms that wire the effect, so just check
	// the window exists and no error leaked.
	if c.Main() == nil {
		t.Fatal("main window not registered")
	}
	_ = eng.Windows()[0].TranslucencyCalls()
}
