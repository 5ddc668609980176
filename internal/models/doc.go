// Package models defines the core domain models for billsplitter.
//
// # Bill Models
//
// A bill session is built from three kinds of records:
//   - Participant: a person splitting the bill, keyed by a generated ID
//   - Item: a line on the bill with a price and the set of people sharing it
//   - Settings: session-wide VAT and service charge percentages
//
// Items reference participants through SharedBy, which is either an explicit set
// of participant IDs or the Everyone marker. Everyone always resolves against the
// current participant list, so adding or removing people changes the divisor
// without touching the item.
//
// # Receipt Models
//
// Candidate is a receipt line produced by extraction that has not been reviewed
// yet. It only becomes an Item once it is confirmed with a set of sharers.
//
// # Account Models
//
// User is an account record. Accounts are not part of the billing domain; they
// exist only to gate receipt scanning behind approval.
//
// # Design Principles
//
//  1. IDs over pointers: items reference participants by ID string
//  2. Value types: models are copied out of the bill state, never shared
//  3. No magic strings: "shared by everyone" is a tagged variant, not a sentinel ID
package models
