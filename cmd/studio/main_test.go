// ABOUTME: Tests for CLI helpers
// ABOUTME: Covers health probe address selection

package main

import (
	"testing"

	"github.com/apexforge/studio/internal/config"
)

func TestHealthURL(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		want    string
		wantErr bool
	}{
		{
			name: "http address",
			cfg: config.Config{
				Server: config.ServerConfig{HTTPAddr: "localhost:8000"},
			},
			want: "http://localhost:8000/api/health",
		},
		{
			name: "tailscale only falls back to tailnet hostname",
			cfg: config.Config{
				Tailscale: config.TailscaleConfig{Enabled: true, Hostname: "studio"},
			},
			want: "http://studio/api/health",
		},
		{
			name: "http address wins over tailscale",
			cfg: config.Config{
				Server:    config.ServerConfig{HTTPAddr: "localhost:8000"},
				Tailscale: config.TailscaleConfig{Enabled: true, Hostname: "studio"},
			},
			want: "http://localhost:8000/api/health",
		},
		{
			name:    "no address at all",
			cfg:     config.Config{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := healthURL(&tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("healthURL = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("healthURL failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("healthURL = %q, want %q", got, tt.want)
			}
		})
	}
}
