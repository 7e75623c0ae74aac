//go:build e2e

package e2e

import (
	"github.com/cucumber/godog"

	"bicns/e2e/steps/common"
	"bicns/e2e/steps/registration"
	"bicns/e2e/steps/reverse"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	registration.RegisterSteps(ctx, tc)
	reverse.RegisterSteps(ctx, tc)
}
