package container

import (
	"testing"
	"time"

	"github.com/oksasatya/user-account-service/config"
	"github.com/oksasatya/user-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

func TestBuildServicesWithoutOptionalClients(t *testing.T) {
	SetConfig(&config.Config{UserCacheTTL: time.Minute, ESUsersIndex: "users"})
	SetLogger(helpers.NewNopLogger())
	SetUserRepo(memory.NewUserRepository())
	SetHasher(helpers.NewPasswordHasher(4))
	SetJWT(helpers.NewJWTManager("secret", time.Hour))

	BuildServices()

	if GetAuthService() == nil || GetUserService() == nil {
		t.Fatal("expected services to be built")
	}
	us := GetUserService()
	if us.Redis != nil || us.ES != nil || us.Events != nil {
		t.Fatalf("expected optional integrations to stay disabled, got %+v", us)
	}
	if GetAuthService().JWT != GetJWT() {
		t.Fatal("expected auth service to share the JWT manager")
	}
}
