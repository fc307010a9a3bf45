// Package store provides persistent storage for the studio server using SQLite.
//
// # Architecture
//
// The store package uses an interface-driven architecture:
//
//   - ProjectStore: CRUD for public portfolio projects
//   - InquiryStore: creation, listing, and deletion of contact inquiries
//   - Store: the combination of both, implemented by SQLiteStore
//
// # Data Models
//
//   - Project: portfolio entry with an enumerated Category
//     (Residential, Commercial, Urban, Interior)
//   - Inquiry: visitor-submitted contact message with server-assigned
//     creation timestamp
//
// IDs are server-assigned UUIDs and are never reused after deletion.
// Listings are ordered by creation time ascending with ID as tiebreak, so
// order is stable across restarts.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//	PRAGMA foreign_keys=ON;
//
// Every statement runs as a single implicit transaction, so a concurrent
// public ListProjects never observes a half-applied create or delete.
//
// # Error Handling
//
//   - ErrNotFound: requested entity does not exist
//   - ValidationError: a rejected field on create/update; check with
//     IsValidation
//
// All other errors indicate the underlying storage failed and are safe to
// retry. All methods accept context.Context for cancellation support.
//
// # Testing
//
// Use NewMockStore() for unit tests and NewSQLiteStore(":memory:") for
// integration tests with real SQLite.
package store
