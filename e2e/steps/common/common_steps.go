package common

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	GetLastStatusCode() int
	GetLastBody() string
	GetLastHeader(name string) string
	GetResponseField(field string) (interface{}, error)
}

// RegisterSteps registers navigation and assertion step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the portal is running$`, steps.portalIsRunning)
	ctx.Step(`^I open "([^"]*)"$`, steps.open)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^I should be redirected to "([^"]*)"$`, steps.redirectedTo)
	ctx.Step(`^the page should contain "([^"]*)"$`, steps.pageShouldContain)
	ctx.Step(`^the page should not contain "([^"]*)"$`, steps.pageShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) portalIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/health"); err != nil {
		return err
	}
	if s.tc.GetLastStatusCode() != 200 {
		return fmt.Errorf("health check returned %d: %s", s.tc.GetLastStatusCode(), s.tc.GetLastBody())
	}
	return nil
}

func (s *commonSteps) open(ctx context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.GetLastStatusCode(); got != expected {
		return fmt.Errorf("expected status %d, got %d", expected, got)
	}
	return nil
}

func (s *commonSteps) redirectedTo(ctx context.Context, location string) error {
	if got := s.tc.GetLastStatusCode(); got != 303 {
		return fmt.Errorf("expected 303 redirect, got %d", got)
	}
	if got := s.tc.GetLastHeader("Location"); got != location {
		return fmt.Errorf("expected redirect to %q, got %q", location, got)
	}
	return nil
}

func (s *commonSteps) pageShouldContain(ctx context.Context, text string) error {
	if !strings.Contains(s.tc.GetLastBody(), text) {
		return fmt.Errorf("page does not contain %q", text)
	}
	return nil
}

func (s *commonSteps) pageShouldNotContain(ctx context.Context, text string) error {
	if strings.Contains(s.tc.GetLastBody(), text) {
		return fmt.Errorf("page unexpectedly contains %q", text)
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(ctx context.Context, field, expected string) error {
	value, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	var got string
	switch v := value.(type) {
	case string:
		got = v
	case float64:
		got = strconv.FormatFloat(v, 'f', -1, 64)
	default:
		got = fmt.Sprint(v)
	}
	if got != expected {
		return fmt.Errorf("field %q: expected %q, got %q", field, expected, got)
	}
	return nil
}
