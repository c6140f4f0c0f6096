package repository

import "errors"

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateTransaction means the dedupe key already holds a
	// transaction: the other resolution path won the race.
	ErrDuplicateTransaction = errors.New("transaction already recorded for this payment")

	// ErrTerminalWithdrawal means the withdrawal already left pending;
	// completed and rejected are one-way.
	ErrTerminalWithdrawal = errors.New("withdrawal already resolved")

	ErrEmailTaken = errors.New("email already registered")
)
