//go:build e2e

package registration

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/ethereum/go-ethereum/common"

	"bicns/pkg/domain"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(ctx context.Context, path string) error
	POST(ctx context.Context, path string, body any) error
	POSTAs(ctx context.Context, account, path string, body any) error
	Account(name string) common.Address
	Remember(key, value string)
	Recall(key string) (string, error)
	Status() int
	Body() string
	StringField(name string) (string, error)
}

// Keys under which the pending registration is remembered between steps.
const (
	KeyLabel        = "label"
	KeySecret       = "secret"
	KeyDuration     = "duration"
	KeyOwner        = "owner"
	KeyWithAddr     = "with_addr"
	KeyRevealableAt = "revealable_at"
)

// RegisterSteps registers commit-reveal registration steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &registrationSteps{tc: tc}

	ctx.Step(`^"([^"]*)" commits to a fresh label for (\d+) seconds$`, steps.commitFresh)
	ctx.Step(`^"([^"]*)" commits to a fresh label with an address record for (\d+) seconds$`, steps.commitFreshWithAddr)
	ctx.Step(`^the commitment matures$`, steps.commitmentMatures)
	ctx.Step(`^"([^"]*)" registers the committed label paying (\d+)$`, steps.register)
	ctx.Step(`^"([^"]*)" renews the committed label for (\d+) seconds paying (\d+)$`, steps.renew)

	ctx.Step(`^the committed label should not be available$`, steps.labelNotAvailable)
	ctx.Step(`^the registry owner of the committed name should be "([^"]*)"$`, steps.registryOwnerShouldBe)
}

type registrationSteps struct {
	tc TestContext
}

func (s *registrationSteps) commitFresh(ctx context.Context, account string, duration int64) error {
	return s.commit(ctx, account, duration, false)
}

func (s *registrationSteps) commitFreshWithAddr(ctx context.Context, account string, duration int64) error {
	return s.commit(ctx, account, duration, true)
}

func (s *registrationSteps) commit(ctx context.Context, account string, duration int64, withAddr bool) error {
	label := "e2e" + randomHex(5)
	s.tc.Remember(KeyLabel, label)
	s.tc.Remember(KeySecret, "0x"+randomHex(32))
	s.tc.Remember(KeyDuration, strconv.FormatInt(duration, 10))
	s.tc.Remember(KeyOwner, account)
	s.tc.Remember(KeyWithAddr, strconv.FormatBool(withAddr))

	params, err := s.params()
	if err != nil {
		return err
	}
	if err := s.tc.POST(ctx, "/controller/commitments/make", params); err != nil {
		return err
	}
	commitment, err := s.tc.StringField("commitment")
	if err != nil {
		return err
	}

	if err := s.tc.POSTAs(ctx, account, "/controller/commitments", map[string]any{"commitment": commitment}); err != nil {
		return err
	}
	if s.tc.Status() != 201 {
		return fmt.Errorf("commit failed with %d: %s", s.tc.Status(), s.tc.Body())
	}
	revealableAt, err := s.tc.StringField("revealable_at")
	if err != nil {
		return err
	}
	s.tc.Remember(KeyRevealableAt, revealableAt)
	return nil
}

func (s *registrationSteps) commitmentMatures(ctx context.Context) error {
	raw, err := s.tc.Recall(KeyRevealableAt)
	if err != nil {
		return err
	}
	at, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("parse revealable_at %q: %w", raw, err)
	}
	wait := time.Until(time.Unix(at, 0).Add(time.Second))
	if wait > 2*time.Minute {
		return fmt.Errorf("commitment matures in %s; start the server with a shorter BICNS_MIN_COMMITMENT_AGE", wait)
	}
	if wait <= 0 {
		return nil
	}
	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *registrationSteps) register(ctx context.Context, account string, fee int64) error {
	params, err := s.params()
	if err != nil {
		return err
	}
	params["fee"] = strconv.FormatInt(fee, 10)
	return s.tc.POSTAs(ctx, account, "/controller/registrations", params)
}

func (s *registrationSteps) renew(ctx context.Context, account string, duration, fee int64) error {
	label, err := s.tc.Recall(KeyLabel)
	if err != nil {
		return err
	}
	return s.tc.POSTAs(ctx, account, "/controller/renewals", map[string]any{
		"label":    label,
		"duration": duration,
		"fee":      strconv.FormatInt(fee, 10),
	})
}

func (s *registrationSteps) labelNotAvailable(ctx context.Context) error {
	label, err := s.tc.Recall(KeyLabel)
	if err != nil {
		return err
	}
	if err := s.tc.GET(ctx, "/controller/labels/"+label); err != nil {
		return err
	}
	available, err := s.tc.StringField("available")
	if err != nil {
		return err
	}
	if available != "false" {
		return fmt.Errorf("expected %s to be taken, got available=%s", label, available)
	}
	return nil
}

func (s *registrationSteps) registryOwnerShouldBe(ctx context.Context, account string) error {
	label, err := s.tc.Recall(KeyLabel)
	if err != nil {
		return err
	}
	node := domain.BICSubnode(label)
	if err := s.tc.GET(ctx, "/registry/nodes/"+node.Hex()); err != nil {
		return err
	}
	owner, err := s.tc.StringField("owner")
	if err != nil {
		return err
	}
	if want := s.tc.Account(account).Hex(); !strings.EqualFold(owner, want) {
		return fmt.Errorf("expected registry owner %s, got %s", want, owner)
	}
	return nil
}

// params rebuilds the commitment parameters from remembered values so commit
// and reveal always agree.
func (s *registrationSteps) params() (map[string]any, error) {
	values := make(map[string]string)
	for _, key := range []string{KeyLabel, KeySecret, KeyDuration, KeyOwner, KeyWithAddr} {
		v, err := s.tc.Recall(key)
		if err != nil {
			return nil, err
		}
		values[key] = v
	}
	duration, err := strconv.ParseUint(values[KeyDuration], 10, 64)
	if err != nil {
		return nil, err
	}
	owner := s.tc.Account(values[KeyOwner])

	params := map[string]any{
		"label":    values[KeyLabel],
		"owner":    owner.Hex(),
		"duration": duration,
		"secret":   values[KeySecret],
	}
	if values[KeyWithAddr] == "true" {
		params["resolver"] = domain.SystemAddress("resolver").Hex()
		params["data"] = []map[string]string{{"kind": "addr", "value": owner.Hex()}}
	}
	return params, nil
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
