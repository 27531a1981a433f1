package auth_test

import (
	"testing"

	"github.com/aussiebroadwan/tenantry/pkg/authsdk"
)

func TestLivezEndpoint(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)
}

func TestReadyzEndpoint(t *testing.T) {
	client := authsdk.NewSDKClient(setupAuthContainer(t))

	health, err := client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	if health.Checks == nil || health.Checks.Database != "ok" {
		t.Fatalf("expected database check ok, got %+v", health.Checks)
	}
}
