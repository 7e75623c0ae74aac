//go:build e2e

package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
	"github.com/ethereum/go-ethereum/common"

	"bicns/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(ctx context.Context, path string) error
	POSTAs(ctx context.Context, account, path string, body any) error
	AdminPOST(ctx context.Context, path string, body any) error
	Account(name string) common.Address
	Status() int
	Body() string
	StringField(name string) (string, error)
}

// RegisterSteps registers funding, request and assertion steps shared by all features.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^the server is healthy$`, steps.serverIsHealthy)
	ctx.Step(`^"([^"]*)" holds (\d+) fee tokens$`, steps.holdsFeeTokens)
	ctx.Step(`^"([^"]*)" approves the controller to spend (\d+)$`, steps.approvesController)
	ctx.Step(`^"([^"]*)" transfers (\d+) fee tokens to "([^"]*)"$`, steps.transfers)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the fee token balance of "([^"]*)" should be (\d+)$`, steps.balanceShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) serverIsHealthy(ctx context.Context) error {
	if err := s.tc.GET(ctx, "/healthz"); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) holdsFeeTokens(ctx context.Context, account string, amount int64) error {
	body := map[string]any{
		"to":     s.tc.Account(account).Hex(),
		"amount": fmt.Sprint(amount),
	}
	if err := s.tc.AdminPOST(ctx, "/admin/token/mint", body); err != nil {
		return err
	}
	if s.tc.Status()/100 != 2 {
		return fmt.Errorf("mint failed with %d: %s", s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *commonSteps) approvesController(ctx context.Context, account string, amount int64) error {
	body := map[string]any{
		"spender": domain.SystemAddress("controller").Hex(),
		"amount":  fmt.Sprint(amount),
	}
	if err := s.tc.POSTAs(ctx, account, "/token/approvals", body); err != nil {
		return err
	}
	if s.tc.Status()/100 != 2 {
		return fmt.Errorf("approve failed with %d: %s", s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *commonSteps) transfers(ctx context.Context, from string, amount int64, to string) error {
	body := map[string]any{
		"to":     s.tc.Account(to).Hex(),
		"amount": fmt.Sprint(amount),
	}
	return s.tc.POSTAs(ctx, from, "/token/transfers", body)
}

func (s *commonSteps) statusShouldBe(_ context.Context, status int) error {
	if s.tc.Status() != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.tc.Status(), s.tc.Body())
	}
	return nil
}

func (s *commonSteps) fieldShouldBe(_ context.Context, field, want string) error {
	got, err := s.tc.StringField(field)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s=%q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) balanceShouldBe(ctx context.Context, account string, want int64) error {
	if err := s.tc.GET(ctx, "/token/balances/"+s.tc.Account(account).Hex()); err != nil {
		return err
	}
	got, err := s.tc.StringField("balance")
	if err != nil {
		return err
	}
	if strings.TrimSpace(got) != fmt.Sprint(want) {
		return fmt.Errorf("expected balance %d for %s, got %s", want, account, got)
	}
	return nil
}
