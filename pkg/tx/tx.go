package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
)

// Manager инкапсулирует логику управления транзакциями.
type Manager struct {
	internal *manager.Manager
	isoLevel pgx.TxIsoLevel
}

// New создаёт менеджер транзакций с уровнем изоляции ReadCommitted.
// Смена статуса заказа защищена compare-and-set в UPDATE, Serializable там не нужен.
func New(db pgxv5.Transactional) *Manager {
	return NewWithIsoLevel(db, pgx.ReadCommitted)
}

func NewWithIsoLevel(db pgxv5.Transactional, level pgx.TxIsoLevel) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		isoLevel: level,
	}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	txSettings := pgxv5.MustSettings(
		settings.Must(),
		pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: m.isoLevel}),
	)
	return m.internal.DoWithSettings(ctx, txSettings, fn)
}
