// Package store defines the persistence interfaces for cards and review
// logs, together with the sentinel errors and transaction helper shared by
// their implementations. The scheduling logic depends only on these
// interfaces; the concrete database lives in internal/platform/sqldb.
package store
