// Package models defines the core domain models for roomfund.
//
// A Room is an isolated pooled fund identified by a short public code.
// Members deposit money into the pool and record expenses drawn from it;
// each member's balance is their deposits minus their share of expenses.
//
// # Identity
//
// There are no passwords. A member's ID doubles as their access key: knowing
// the room code and your member ID is what lets you act on a room. Member IDs
// are UUIDs, so they are unguessable in practice.
//
// # Design Principles
//
//  1. **Append-only ledger**: deposits and expenses are immutable records
//     (expenses allow amount/description corrections, nothing else).
//  2. **Soft member removal**: members are tombstoned, never hard-deleted, so
//     historical ledger records keep resolving.
//  3. **Avoid circular references**: relationships use ID strings, not pointers.
package models
