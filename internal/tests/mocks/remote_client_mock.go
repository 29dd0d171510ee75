package mocks

import (
	"context"

	"github.com/FringeNet/OpenHands/internal/models"
	"github.com/FringeNet/OpenHands/internal/remote"
)

type RemoteClientMock struct {
	FetchFunc   func(ctx context.Context) (*remote.RemoteSettings, error)
	StoreFunc   func(ctx context.Context, settings models.Settings) (bool, error)
	OptionsFunc func(ctx context.Context, kind string) ([]string, error)
	LogoutFunc  func(ctx context.Context) error
}

func (m *RemoteClientMock) Fetch(ctx context.Context) (*remote.RemoteSettings, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return nil, nil
}

func (m *RemoteClientMock) Store(ctx context.Context, settings models.Settings) (bool, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, settings)
	}
	return true, nil
}

func (m *RemoteClientMock) Options(ctx context.Context, kind string) ([]string, error) {
	if m.OptionsFunc != nil {
		return m.OptionsFunc(ctx, kind)
	}
	return nil, nil
}

func (m *RemoteClientMock) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}
