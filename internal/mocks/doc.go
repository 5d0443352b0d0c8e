// Package mocks holds testify mocks for the interfaces consumed across
// switchboard. Constructors register AssertExpectations on test cleanup.
package mocks

import "github.com/stretchr/testify/mock"

// T is the subset of *testing.T the constructors need.
type T interface {
	mock.TestingT
	Cleanup(func())
}

func register(t T, m interface{ AssertExpectations(mock.TestingT) bool }) {
	t.Cleanup(func() { m.AssertExpectations(t) })
}
