package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/dnexpress/logistics-api/internal/core/domain"
	"github.com/dnexpress/logistics-api/internal/core/ports"
)

// SethwanService manages a customer's link to the Sethwan warehouse platform.
type SethwanService struct {
	users  ports.UserRepository
	client ports.SethwanClient
	logger zerolog.Logger
}

func NewSethwanService(users ports.UserRepository, client ports.SethwanClient, logger zerolog.Logger) *SethwanService {
	return &SethwanService{users: users, client: client, logger: logger}
}

// TestConnection checks credentials against the partner without persisting
// anything.
func (s *SethwanService) TestConnection(ctx context.Context, actor ports.Actor, creds ports.SethwanCredentials) (*ports.SethwanValidation, error) {
	if creds.APIKey == "" || creds.AccountID == "" {
		return nil, domain.ErrValidation
	}
	return s.client.Validate(ctx, creds), nil
}

// Connect validates credentials, registers the customer's forwarding
// warehouse on the partner side, and stores the link on the account.
func (s *SethwanService) Connect(ctx context.Context, actor ports.Actor, creds ports.SethwanCredentials) (*ports.SethwanValidation, error) {
	if creds.APIKey == "" || creds.AccountID == "" {
		return nil, domain.ErrValidation
	}

	validation := s.client.Validate(ctx, creds)
	if !validation.Success || !validation.Valid {
		return validation, nil
	}

	user, err := s.users.ByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	link := domain.SethwanLink{
		CustomerID: user.CustomerNumber,
		AccountID:  creds.AccountID,
		APIKey:     creds.APIKey,
		Integrated: true,
	}
	sync := s.client.SyncCustomerWarehouse(ctx, creds, user)
	if sync.Success {
		link.DefaultWarehouse = sync.WarehouseID
	} else {
		s.logger.Warn().
			Str("user_id", user.ID).
			Str("reason", sync.Error).
			Msg("sethwan warehouse sync failed; link stored without default warehouse")
	}

	if _, err := s.users.Update(ctx, actor.ID, ports.UserPatch{Sethwan: &link}); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("sethwan_account", creds.AccountID).
		Msg("sethwan integration connected")
	return validation, nil
}

func (s *SethwanService) Status(ctx context.Context, actor ports.Actor) (*ports.SethwanStatus, error) {
	user, err := s.users.ByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !user.Sethwan.Integrated {
		return &ports.SethwanStatus{Integrated: false, Message: "Sethwan integration not configured"}, nil
	}
	return &ports.SethwanStatus{
		Integrated:       true,
		CustomerID:       user.Sethwan.CustomerID,
		AccountID:        user.Sethwan.AccountID,
		DefaultWarehouse: user.Sethwan.DefaultWarehouse,
		Message:          "Sethwan integration active",
	}, nil
}

func (s *SethwanService) Warehouses(ctx context.Context, actor ports.Actor) (*ports.SethwanWarehouses, error) {
	user, err := s.users.ByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !user.Sethwan.Integrated {
		return nil, domain.ErrNotIntegrated
	}
	creds := ports.SethwanCredentials{APIKey: user.Sethwan.APIKey, AccountID: user.Sethwan.AccountID}
	return s.client.Warehouses(ctx, creds), nil
}

func (s *SethwanService) SetDefaultWarehouse(ctx context.Context, actor ports.Actor, warehouseID string) error {
	if warehouseID == "" {
		return domain.ErrValidation
	}
	user, err := s.users.ByID(ctx, actor.ID)
	if err != nil {
		return err
	}
	if !user.Sethwan.Integrated {
		return domain.ErrNotIntegrated
	}

	link := user.Sethwan
	link.DefaultWarehouse = warehouseID
	_, err = s.users.Update(ctx, actor.ID, ports.UserPatch{Sethwan: &link})
	return err
}

// Disconnect drops the stored link. Idempotent: disconnecting an account that
// was never linked succeeds.
func (s *SethwanService) Disconnect(ctx context.Context, actor ports.Actor) error {
	if _, err := s.users.ByID(ctx, actor.ID); err != nil {
		return err
	}
	empty := domain.SethwanLink{}
	if _, err := s.users.Update(ctx, actor.ID, ports.UserPatch{Sethwan: &empty}); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", actor.ID).Msg("sethwan integration disconnected")
	return nil
}
