package platform

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	mutterIdleService = "org.gnome.Mutter.IdleMonitor"
	mutterIdlePath    = dbus.ObjectPath("/org/gnome/Mutter/IdleMonitor/Core")
	mutterIdleMethod  = mutterIdleService + ".GetIdletime"
)

type xprintidleProvider struct {
	path string
}

// mutterProvider asks GNOME's idle monitor over the session bus, which also
// works under Wayland where X11 tools see no input.
type mutterProvider struct {
	mu   sync.Mutex
	conn *dbus.Conn
}

func newIdleProvider() IdleProvider {
	var chain chainProvider
	wayland := strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland")
	if path, err := exec.LookPath("xprintidle"); err == nil && !wayland {
		chain = append(chain, &xprintidleProvider{path: path})
	}
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") != "" {
		chain = append(chain, &mutterProvider{})
	}
	if len(chain) == 0 {
		return unsupportedIdleProvider{}
	}
	return chain
}

func (provider *xprintidleProvider) IdleDuration() (time.Duration, error) {
	output, err := exec.Command(provider.path).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	return parseIdleMillis(string(output))
}

func (provider *mutterProvider) IdleDuration() (time.Duration, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.conn == nil {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return 0, fmt.Errorf("connect session bus: %w", err)
		}
		provider.conn = conn
	}

	var idleMillis uint64
	err := provider.conn.Object(mutterIdleService, mutterIdlePath).Call(mutterIdleMethod, 0).Store(&idleMillis)
	if err != nil {
		if !provider.conn.Connected() {
			_ = provider.conn.Close()
			provider.conn = nil
		}
		return 0, fmt.Errorf("mutter idle monitor: %w", err)
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}
