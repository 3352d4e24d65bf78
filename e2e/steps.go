package e2e

import (
	"github.com/cucumber/godog"

	"dataforall/e2e/steps/common"
	"dataforall/e2e/steps/session"
	"dataforall/e2e/steps/tracking"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (navigation, generic assertions)
	common.RegisterSteps(ctx, tc)

	// Register folio tracking steps
	tracking.RegisterSteps(ctx, tc)

	// Register login/logout steps
	session.RegisterSteps(ctx, tc)
}
