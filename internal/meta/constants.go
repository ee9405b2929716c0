package meta

import "strings"

// Graph API enums used by the launch sequence.
const (
	ObjectiveSales        = "OUTCOME_SALES"
	ObjectiveLeads        = "OUTCOME_LEADS"
	ObjectiveTraffic      = "OUTCOME_TRAFFIC"
	ObjectiveAwareness    = "OUTCOME_AWARENESS"
	ObjectiveEngagement   = "OUTCOME_ENGAGEMENT"
	ObjectiveAppPromotion = "OUTCOME_APP_PROMOTION"

	GoalOffsiteConversions = "OFFSITE_CONVERSIONS"
	GoalLinkClicks         = "LINK_CLICKS"
	GoalImpressions        = "IMPRESSIONS"
	GoalReach              = "REACH"
	GoalLandingPageViews   = "LANDING_PAGE_VIEWS"
	GoalLeadGeneration     = "LEAD_GENERATION"

	StatusPaused  = "PAUSED"
	StatusDeleted = "DELETED"

	BillingEventImpressions = "IMPRESSIONS"

	CallToActionShopNow = "SHOP_NOW"
)

var objectives = map[string]string{
	"sales":         ObjectiveSales,
	"leads":         ObjectiveLeads,
	"traffic":       ObjectiveTraffic,
	"awareness":     ObjectiveAwareness,
	"engagement":    ObjectiveEngagement,
	"app_promotion": ObjectiveAppPromotion,
}

var optimizationGoals = map[string]string{
	"increase sales":       GoalOffsiteConversions,
	"maximize conversions": GoalOffsiteConversions,
	"link clicks":          GoalLinkClicks,
	"impressions":          GoalImpressions,
	"reach":                GoalReach,
	"landing page views":   GoalLandingPageViews,
	"leads":                GoalLeadGeneration,
}

// MapObjective translates the abstract objective keyword to the Graph enum.
// Matching is case-insensitive; anything unrecognized falls back to sales.
func MapObjective(objective string) string {
	if v, ok := objectives[strings.ToLower(strings.TrimSpace(objective))]; ok {
		return v
	}
	return ObjectiveSales
}

// MapOptimizationGoal translates the abstract goal phrase to the Graph enum,
// defaulting to offsite conversions.
func MapOptimizationGoal(goal string) string {
	if v, ok := optimizationGoals[strings.ToLower(strings.TrimSpace(goal))]; ok {
		return v
	}
	return GoalOffsiteConversions
}
