package database

import (
	"context"
	"testing"
)

func TestContextWithTransaction(t *testing.T) {
	// ARRANGE
	bg := context.Background()
	tx := &transaction{}

	// ACT
	ctx := ContextWithTransaction(bg, tx)

	// ASSERT
	t.Run("carries the transaction", func(t *testing.T) {
		wanted := tx
		got := ctx.Value(transactionKey).(*transaction)
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}

func TestTransactionFromContext(t *testing.T) {
	// ARRANGE
	bg := context.Background()
	tx := &transaction{}

	t.Run("when the context carries a transaction", func(t *testing.T) {
		// ARRANGE
		ctx := ContextWithTransaction(bg, tx)

		// ACT
		result := TransactionFromContext(ctx)

		// ASSERT
		wanted := Transaction(tx)
		got := result
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})

	t.Run("when it does not", func(t *testing.T) {
		// ACT
		result := TransactionFromContext(bg)

		// ASSERT
		wanted := (Transaction)(nil)
		got := result
		if wanted != got {
			t.Errorf("\nwanted %#v\ngot    %#v", wanted, got)
		}
	})
}
