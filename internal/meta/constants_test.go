package meta

import "testing"

func TestMapObjective(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sales", ObjectiveSales},
		{"leads", ObjectiveLeads},
		{"traffic", ObjectiveTraffic},
		{"awareness", ObjectiveAwareness},
		{"engagement", ObjectiveEngagement},
		{"app_promotion", ObjectiveAppPromotion},

		// Case and whitespace insensitive
		{"Sales", ObjectiveSales},
		{"  TRAFFIC  ", ObjectiveTraffic},

		// Unknown inputs fall back to sales
		{"", ObjectiveSales},
		{"world domination", ObjectiveSales},
	}

	for _, tt := range tests {
		if got := MapObjective(tt.input); got != tt.expected {
			t.Errorf("MapObjective(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMapOptimizationGoal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"increase sales", GoalOffsiteConversions},
		{"maximize conversions", GoalOffsiteConversions},
		{"link clicks", GoalLinkClicks},
		{"impressions", GoalImpressions},
		{"reach", GoalReach},
		{"landing page views", GoalLandingPageViews},
		{"leads", GoalLeadGeneration},

		{"Increase Sales", GoalOffsiteConversions},

		// Unknown inputs fall back to offsite conversions
		{"", GoalOffsiteConversions},
		{"go viral", GoalOffsiteConversions},
	}

	for _, tt := range tests {
		if got := MapOptimizationGoal(tt.input); got != tt.expected {
			t.Errorf("MapOptimizationGoal(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
