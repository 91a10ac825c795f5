package atiempo

import (
	"context"

	"github.com/firebase/genkit/go/core/api"
)

const providerID = "atiempo"

type AtiempoPlugin struct {
}

func (p *AtiempoPlugin) Name() string {
	return providerID
}

func (m *AtiempoPlugin) Init(ctx context.Context) []api.Action {
	return []api.Action{}
}
