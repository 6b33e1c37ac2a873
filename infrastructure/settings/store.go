// Package settings guarda as preferências de cada sessão de usuário
// (meta de vendas, período do dashboard e flags de autenticação)
package settings

import (
	"context"
	"errors"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	KeySalesGoal = "sales_goal"
	KeyDateRange = "date_range"
	KeyAuth      = "auth"
)

var ErrSessionRequired = errors.New("session id is required")

// Store é o armazenamento chave/valor de configurações por sessão.
// Escritas concorrentes seguem last-writer-wins.
type Store interface {
	// Get decodifica o valor em dest. Retorna false quando a chave não existe.
	Get(ctx context.Context, sessionID, key string, dest any) (bool, error)
	Set(ctx context.Context, sessionID, key string, value any) error
	Clear(ctx context.Context, sessionID, key string) error
	// Sessions lista as sessões com pelo menos uma configuração gravada
	Sessions(ctx context.Context) ([]string, error)
}
