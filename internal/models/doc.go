// Package models defines the core domain models for Tallyup.
//
// # Shared-expense models
//
//   - Group: A named set of members who share expenses
//   - Transaction: A shared expense or a direct payment within a group
//
// Members are identified by opaque string IDs. A member has no lifecycle of
// its own; membership is a set relation owned by Group.
//
// # Personal-finance models
//
//   - Income: A personal income entry (salary, refund, ...)
//   - PersonalExpense: A personal spending entry
//   - Bill: A one-off or recurring bill with a due date and a paid flag
//
// # Design Principles
//
// 1. **Derived state stays out**: balances and settlement instructions are
// recomputed on demand by the ledger package and never persisted.
// 2. **Avoid circular references**: models reference each other by ID string,
// never by pointer.
// 3. **Single currency**: amounts are plain decimals with no currency code.
package models
