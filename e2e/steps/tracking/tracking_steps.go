package tracking

import (
	"context"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	POSTForm(path string, form url.Values) error
}

// RegisterSteps registers folio tracking step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &trackingSteps{tc: tc}

	ctx.Step(`^I track folio "([^"]*)"$`, steps.trackFolio)
	ctx.Step(`^I submit folio "([^"]*)" on the tracking page$`, steps.submitFolio)
	ctx.Step(`^I request the JSON petition for folio "([^"]*)"$`, steps.requestPetitionJSON)
}

type trackingSteps struct {
	tc TestContext
}

func (s *trackingSteps) trackFolio(ctx context.Context, folio string) error {
	return s.tc.GET("/denuncias?folio=" + url.QueryEscape(folio))
}

func (s *trackingSteps) submitFolio(ctx context.Context, folio string) error {
	return s.tc.POSTForm("/denuncias", url.Values{"folio": {folio}})
}

func (s *trackingSteps) requestPetitionJSON(ctx context.Context, folio string) error {
	return s.tc.GET("/api/tracking/" + url.PathEscape(folio))
}
