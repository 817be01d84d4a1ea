package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestDeployService_Deploy(t *testing.T) {
	tests := []struct {
		name            string
		data            map[string]any
		wantEnvironment string
		wantVersion     string
	}{
		{"defaults", map[string]any{}, "production", "latest"},
		{"explicit target", map[string]any{"environment": "staging", "version": "2.1"}, "staging", "2.1"},
		{"environment only", map[string]any{"environment": "staging"}, "staging", "latest"},
		{"non-string values fall back", map[string]any{"environment": 3, "version": true}, "production", "latest"},
		{"empty string kept", map[string]any{"environment": ""}, "", "latest"},
	}

	s := NewDeployService(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ack, err := s.Deploy(context.Background(), tt.data)
			if err != nil {
				t.Fatalf("Deploy() error = %v", err)
			}
			if ack.Status != "success" {
				t.Errorf("Status = %q, want %q", ack.Status, "success")
			}
			if ack.Message != "Deployment initiated" {
				t.Errorf("Message = %q, want %q", ack.Message, "Deployment initiated")
			}
			if ack.Environment != tt.wantEnvironment {
				t.Errorf("Environment = %q, want %q", ack.Environment, tt.wantEnvironment)
			}
			if ack.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", ack.Version, tt.wantVersion)
			}
		})
	}
}
