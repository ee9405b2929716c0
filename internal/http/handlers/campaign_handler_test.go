package handlers

import (
	"testing"

	"github.com/ad-agent/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func TestLaunchFailureStatus(t *testing.T) {
	tests := []struct {
		name   string
		result *services.LaunchResult
		want   int
	}{
		{
			name:   "precondition failure before any remote call",
			result: &services.LaunchResult{Message: "meta account not connected"},
			want:   fiber.StatusBadRequest,
		},
		{
			name:   "budget validation failure",
			result: &services.LaunchResult{Message: "invalid daily budget"},
			want:   fiber.StatusBadRequest,
		},
		{
			name:   "campaign creation rejected upstream",
			result: &services.LaunchResult{Message: "graph api error", Step: "campaign"},
			want:   fiber.StatusBadGateway,
		},
		{
			name:   "adset creation rejected upstream",
			result: &services.LaunchResult{Message: "graph api error", Step: "adset"},
			want:   fiber.StatusBadGateway,
		},
		{
			name:   "creative creation rejected upstream",
			result: &services.LaunchResult{Message: "graph api error", Step: "creative"},
			want:   fiber.StatusBadGateway,
		},
		{
			name:   "ad creation rejected upstream",
			result: &services.LaunchResult{Message: "graph api error", Step: "ad"},
			want:   fiber.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := launchFailureStatus(tt.result); got != tt.want {
				t.Errorf("launchFailureStatus(step=%q) = %d, want %d", tt.result.Step, got, tt.want)
			}
		})
	}
}
