package validator

import (
	"testing"
	"time"
)

type sample struct {
	Webhook string        `validate:"webhookurl"`
	Mode    string        `validate:"oneof=proxy page browser"`
	Timeout time.Duration `validate:"gt=0"`
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		in      sample
		wantErr bool
	}{
		{
			name: "Valid",
			in:   sample{Webhook: "https://discord.com/api/webhooks/1/abc", Mode: "proxy", Timeout: time.Second},
		},
		{
			name: "Empty webhook allowed",
			in:   sample{Mode: "page", Timeout: time.Second},
		},
		{
			name: "Placeholder webhook allowed",
			in:   sample{Webhook: WebhookPlaceholder, Mode: "browser", Timeout: time.Second},
		},
		{
			name:    "Relative webhook",
			in:      sample{Webhook: "/api/webhooks", Mode: "proxy", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "Non-http webhook",
			in:      sample{Webhook: "ftp://example.com/hook", Mode: "proxy", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "Unknown mode",
			in:      sample{Mode: "carrier-pigeon", Timeout: time.Second},
			wantErr: true,
		},
		{
			name:    "Zero timeout",
			in:      sample{Mode: "proxy"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := v.ValidateStruct(tt.in); (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidator_ValidateVar(t *testing.T) {
	v := New()
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"", false},
		{WebhookPlaceholder, false},
		{"https://discord.com/api/webhooks/1/abc", false},
		{"not a url", true},
		{"ftp://discord.com/api/webhooks/1/abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if err := v.ValidateVar(tt.in, "webhookurl"); (err != nil) != tt.wantErr {
				t.Errorf("ValidateVar(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}
