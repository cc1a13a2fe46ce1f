package application

import (
	"context"
	"sync"
	"testing"

	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/internal/infrastructure/memory"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []UserEvent
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if evt, ok := body.(UserEvent); ok {
		p.events = append(p.events, evt)
	}
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

// testHasher keeps the bcrypt work factor at the minimum.
var testHasher = helpers.NewPasswordHasher(4)

func seedUser(t *testing.T, repo *memory.UserRepository, email, phone, password string) *entity.User {
	t.Helper()
	hash, err := testHasher.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := &entity.User{Name: "Seed", Email: email, Phone: phone, Address: "Somewhere", Password: hash}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return u
}
