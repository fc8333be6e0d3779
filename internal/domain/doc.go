// Package domain holds the core entities of the trainer: cards with their
// scheduling state, review grades, and review log records. It has no
// dependencies on storage or transport; the scheduling algorithm itself
// lives in the srs subpackage.
package domain
