package queries_test

import (
	"testing"

	"quickbite/internal/core/application/usecases/queries"
	"quickbite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetWalletBalanceQuery_ValidInput(t *testing.T) {
	ownerID := kernel.NewUUID()
	q, err := queries.NewGetWalletBalanceQuery(ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, q.OwnerID())
	require.NoError(t, q.Validate())
}

func TestNewGetWalletBalanceQuery_InvalidOwnerID(t *testing.T) {
	_, err := queries.NewGetWalletBalanceQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetWalletBalanceQuery_NotConstructed(t *testing.T) {
	var q queries.GetWalletBalanceQuery
	err := q.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetWalletBalanceQueryIsNotConstructed)
}

func TestNewGetWalletTransactionsQuery_DefaultLimit(t *testing.T) {
	q, err := queries.NewGetWalletTransactionsQuery(kernel.NewUUID(), 0)
	require.NoError(t, err)
	assert.Equal(t, queries.DefaultTransactionLimit, q.Limit())
}

func TestNewGetWalletTransactionsQuery_ExplicitLimit(t *testing.T) {
	q, err := queries.NewGetWalletTransactionsQuery(kernel.NewUUID(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, q.Limit())
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}
