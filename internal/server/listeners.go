// ABOUTME: Tailnet listener setup for serving the API over Tailscale
// ABOUTME: Wraps tsnet lifecycle so the server can treat it as a plain net.Listener

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"

	"tailscale.com/tsnet"

	"github.com/apexforge/studio/internal/config"
)

// tailnetListener owns the tsnet node backing a listener.
type tailnetListener struct {
	server *tsnet.Server
}

func (t *tailnetListener) Close() error {
	return t.server.Close()
}

// setupTailnetListener starts a tsnet node and returns a listener on the
// tailnet HTTP port.
func setupTailnetListener(ctx context.Context, tsCfg config.TailscaleConfig, logger *slog.Logger) (*tailnetListener, net.Listener, error) {
	stateDir, err := resolveTailnetStateDir(tsCfg.StateDir)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(stateDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("creating tailscale state dir: %w", err)
	}

	authKey := tsCfg.AuthKey
	if authKey == "" {
		authKey = os.Getenv("TS_AUTHKEY")
	}
	if authKey == "" {
		return nil, nil, errors.New("tailscale auth key required: set auth_key in config or TS_AUTHKEY environment variable")
	}

	tsn := &tsnet.Server{
		Hostname:  tsCfg.Hostname,
		Dir:       stateDir,
		Ephemeral: tsCfg.Ephemeral,
		AuthKey:   authKey,
	}

	logger.Info("starting tailscale node", "hostname", tsCfg.Hostname, "state_dir", stateDir, "ephemeral", tsCfg.Ephemeral)
	status, err := tsn.Up(ctx)
	if err != nil {
		_ = tsn.Close()
		return nil, nil, fmt.Errorf("starting tailscale: %w", err)
	}

	var tsAddr, dnsName string
	if len(status.TailscaleIPs) > 0 {
		tsAddr = status.TailscaleIPs[0].String()
	} else {
		logger.Warn("tailscale node has no IP addresses assigned")
	}
	if status.Self != nil {
		dnsName = status.Self.DNSName
	}
	logger.Info("tailscale node ready", "hostname", tsCfg.Hostname, "tailscale_ip", tsAddr, "dns_name", dnsName)

	ln, err := tsn.Listen("tcp", ":80")
	if err != nil {
		_ = tsn.Close()
		return nil, nil, fmt.Errorf("listening on tailscale HTTP port: %w", err)
	}

	return &tailnetListener{server: tsn}, ln, nil
}

// resolveTailnetStateDir returns the tsnet state directory.
// Priority: configured dir > XDG_DATA_HOME/studio/tsnet > ~/.local/share/studio/tsnet
func resolveTailnetStateDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "studio", "tsnet"), nil
}
