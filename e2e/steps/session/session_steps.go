package session

import (
	"context"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POSTForm(path string, form url.Values) error
}

// RegisterSteps registers login and logout step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &sessionSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.login)
	ctx.Step(`^I log out$`, steps.logout)
}

type sessionSteps struct {
	tc TestContext
}

func (s *sessionSteps) login(ctx context.Context, email, password string) error {
	return s.tc.POSTForm("/login", url.Values{"email": {email}, "password": {password}})
}

func (s *sessionSteps) logout(ctx context.Context) error {
	return s.tc.POSTForm("/logout", url.Values{})
}
