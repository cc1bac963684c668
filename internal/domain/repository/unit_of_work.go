package repository

import "context"

// Repositories is the set of transaction-scoped repositories handed to a unit
// of work. Every handle issues its reads and writes against the same database
// transaction, so a multi-table mutation either commits as a whole or rolls
// back as a whole.
type Repositories struct {
	Sales        SaleRepository
	SaleItems    SaleItemRepository
	Tables       TableRepository
	Transactions TransactionRepository
	Categories   CategoryRepository
}

// UnitOfWork runs a function inside a single database transaction. The
// repositories passed to fn are only valid for the duration of the call;
// holding writes outside the scope is structurally impossible. A non-nil
// error from fn rolls everything back and is returned unchanged when it is
// an application error, or wrapped as a storage failure otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r *Repositories) error) error
}
