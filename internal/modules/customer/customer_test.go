package customer

import (
	"context"
	"testing"
)

func TestRegister(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name    string
		cmd     RegisterCommand
		wantErr error
	}{
		{name: "unknown kind", cmd: RegisterCommand{Kind: "vip", Name: "a", Phone: "1"}, wantErr: ErrBadRequest},
		{name: "corporate without company", cmd: RegisterCommand{Kind: KindCorporate, Name: "a", Phone: "1"}, wantErr: ErrBadRequest},
		{name: "no contact", cmd: RegisterCommand{Kind: KindBuyer, Name: "a"}, wantErr: ErrBadRequest},
		{name: "buyer", cmd: RegisterCommand{Kind: KindBuyer, Name: "Abel", Phone: "1"}},
		{name: "corporate", cmd: RegisterCommand{Kind: KindCorporate, Name: "Hana", CompanyName: "Blue Nile Trading", Email: "h@bn.example"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.cmd)
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListByKindAndGet(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	b, err := svc.Register(ctx, RegisterCommand{Kind: KindBuyer, Name: "Abel", Phone: "1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, RegisterCommand{Kind: KindReceiver, Name: "Liya", Phone: "2"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	buyers, err := svc.List(ctx, KindBuyer)
	if err != nil || len(buyers) != 1 {
		t.Fatalf("expected one buyer, got %d (%v)", len(buyers), err)
	}
	if _, err := svc.List(ctx, "vip"); err != ErrBadRequest {
		t.Errorf("expected ErrBadRequest for unknown kind, got %v", err)
	}
	got, err := svc.Get(ctx, b.ID)
	if err != nil || got.Name != "Abel" {
		t.Fatalf("get: %+v %v", got, err)
	}
	if _, err := svc.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
