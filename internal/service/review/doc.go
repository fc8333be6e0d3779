// Package review drives review sessions: it selects which due card to ask
// next, resolves which side to show, applies the scheduling algorithm to
// the learner's answer, and persists the outcome. Exactly one card is
// current at a time and every transition is learner-initiated.
package review
