// Package app wires the shell together: configuration, the command bridge,
// the window controller, and global shortcuts. The host glue constructs an
// App at process start with its platform bindings and tears it down on exit.
package app

import (
	"fmt"

	"github.com/onyx-dot-app/desktop-core/bridge"
	"github.com/onyx-dot-app/desktop-core/command"
	"github.com/onyx-dot-app/desktop-core/config"
	"github.com/onyx-dot-app/desktop-core/launch"
	"github.com/onyx-dot-app/desktop-core/logger"
	"github.com/onyx-dot-app/desktop-core/paths"
	"github.com/onyx-dot-app/desktop-core/platform"
	"github.com/onyx-dot-app/desktop-core/shortcut"
	"github.com/onyx-dot-app/desktop-core/webview"
	"github.com/onyx-dot-app/desktop-core/window"
)

// Options carries the platform bindings the shell cannot provide itself.
type Options struct {
	// Engine renders windows. Required.
	Engine webview.Engine

	// Registrar hooks global shortcuts. Optional; without one no shortcuts
	// are bound and the shell still runs.
	Registrar shortcut.Registrar

	// Spawner launches external programs. Defaults to the OS spawner.
	Spawner launch.Spawner

	// Store overrides the config store (for testing). Defaults to the
	// platform config path.
	Store *config.Store

	// KeymapPath overrides the keymap file location (for testing).
	KeymapPath string

	// Debug enables debug level logging.
	Debug bool
}

// App is the running shell.
type App struct {
	State   *config.State
	Windows *window.Controller
	Surface *command.Surface
	Bridge  *bridge.Server
	Router  *shortcut.Router
}

// New builds the shell: loads config, starts the command bridge, and
// prepares the window controller. No window exists yet; call Launch to
// open the main window and bind shortcuts.
func New(opts Options) (*App, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("app: engine is required")
	}

	logger.SetDebug(opts.Debug)
	log := logger.WithComponent("app")

	store := opts.Store
	if store == nil {
		store = config.NewStore()
	}
	state := config.NewState(store)
	configPath, pathErr := store.Path()
	if pathErr != nil {
		configPath = "(unresolved)"
	}
	log.Info("starting", "serverURL", state.ServerURL(), "configPath", configPath)

	spawner := opts.Spawner
	if spawner == nil {
		spawner = launch.NewOSSpawner()
	}
	effects := platform.New(spawner)

	windows := window.NewController(opts.Engine, effects)
	surface := command.NewSurface(state, windows, effects)

	srv, err := bridge.NewServer(surface)
	if err != nil {
		return nil, fmt.Errorf("starting command bridge: %w", err)
	}
	srv.Start()
	windows.SetBridgeAddr(srv.Addr())

	a := &App{
		State:   state,
		Windows: windows,
		Surface: surface,
		Bridge:  srv,
		Router:  shortcut.NewRouter(surface),
	}
	return a, nil
}

// Launch opens the main window and binds global shortcuts. Shortcut
// binding failures are logged and skipped; a shell without shortcuts is
// degraded, not broken.
func (a *App) Launch(reg shortcut.Registrar, keymapPath string) error {
	log := logger.WithComponent("app")

	if _, err := a.Windows.CreateMain(a.State.ServerURL(), a.State.WindowTitle()); err != nil {
		return fmt.Errorf("creating main window: %w", err)
	}

	if reg != nil {
		if keymapPath == "" {
			p, err := paths.KeymapFilePath()
			if err != nil {
				log.Warn("no keymap path, using default bindings only in-process", "error", err)
			} else {
				keymapPath = p
			}
		}
		km := shortcut.LoadKeymap(keymapPath)
		shortcut.Bind(reg, a.Router, km)
	} else {
		log.Info("no shortcut registrar, skipping global shortcuts")
	}

	log.Info("launched")
	return nil
}

// Run builds the shell and brings it up in one call.
func Run(opts Options) (*App, error) {
	a, err := New(opts)
	if err != nil {
		return nil, err
	}
	if err := a.Launch(opts.Registrar, opts.KeymapPath); err != nil {
		a.Shutdown()
		return nil, err
	}
	return a, nil
}

// Shutdown stops the bridge and releases window tracking. Safe to call
// after a partial startup.
func (a *App) Shutdown() {
	log := logger.WithComponent("app")
	log.Info("shutting down")

	if a.Bridge != nil {
		if err := a.Bridge.Close(); err != nil {
			log.Warn("bridge close failed", "error", err)
		}
	}
	if a.Windows != nil {
		a.Windows.Shutdown()
	}
	logger.Close()
}
