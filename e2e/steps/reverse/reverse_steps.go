//go:build e2e

package reverse

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/ethereum/go-ethereum/common"

	"bicns/e2e/steps/registration"
	"bicns/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(ctx context.Context, path string) error
	POSTAs(ctx context.Context, account, path string, body any) error
	Account(name string) common.Address
	Recall(key string) (string, error)
	StringField(name string) (string, error)
}

// RegisterSteps registers reverse record and primary name steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &reverseSteps{tc: tc}

	ctx.Step(`^"([^"]*)" claims the committed name as primary$`, steps.claimPrimary)
	ctx.Step(`^"([^"]*)" claims "([^"]*)" as primary$`, steps.claimName)
	ctx.Step(`^I look up the primary name of "([^"]*)"$`, steps.lookupPrimary)
	ctx.Step(`^the primary name of "([^"]*)" should be the committed name$`, steps.primaryShouldBeCommitted)
}

type reverseSteps struct {
	tc TestContext
}

func (s *reverseSteps) committedName() (string, error) {
	label, err := s.tc.Recall(registration.KeyLabel)
	if err != nil {
		return "", err
	}
	return label + "." + domain.TLD, nil
}

func (s *reverseSteps) claimPrimary(ctx context.Context, account string) error {
	name, err := s.committedName()
	if err != nil {
		return err
	}
	return s.claimName(ctx, account, name)
}

func (s *reverseSteps) claimName(ctx context.Context, account, name string) error {
	return s.tc.POSTAs(ctx, account, "/reverse", map[string]any{"name": name})
}

func (s *reverseSteps) lookupPrimary(ctx context.Context, account string) error {
	return s.tc.GET(ctx, "/reverse/"+s.tc.Account(account).Hex())
}

func (s *reverseSteps) primaryShouldBeCommitted(ctx context.Context, account string) error {
	want, err := s.committedName()
	if err != nil {
		return err
	}
	if err := s.lookupPrimary(ctx, account); err != nil {
		return err
	}
	got, err := s.tc.StringField("name")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected primary name %q, got %q", want, got)
	}
	return nil
}
