package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// WindowInfo identifies one EWMH client window.
type WindowInfo struct {
	ID    xproto.Window
	Title string
}

// ListWindows returns every window in the EWMH client list with its
// _NET_WM_NAME. Windows whose name cannot be read are listed untitled.
func (d *Display) ListWindows() ([]WindowInfo, error) {
	clients, err := ewmh.ClientListGet(d.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	infos := make([]WindowInfo, 0, len(clients))
	for _, win := range clients {
		name, err := ewmh.WmNameGet(d.xu, win)
		if err != nil {
			name = ""
		}
		infos = append(infos, WindowInfo{ID: win, Title: name})
	}
	return infos, nil
}

// FindWindowByTitle searches the EWMH client list for a window whose
// _NET_WM_NAME contains the given substring. Returns the first match.
func (d *Display) FindWindowByTitle(substring string) (xproto.Window, error) {
	if substring == "" {
		return 0, fmt.Errorf("empty title substring")
	}
	clients, err := ewmh.ClientListGet(d.xu)
	if err != nil {
		return 0, fmt.Errorf("failed to get client list: %w", err)
	}
	for _, win := range clients {
		name, err := ewmh.WmNameGet(d.xu, win)
		if err != nil {
			continue
		}
		if strings.Contains(name, substring) {
			return win, nil
		}
	}
	return 0, fmt.Errorf("no window found with title containing %q", substring)
}
