//go:build tools

package tools

// Tool dependencies are not tracked here. mockery v3 is used as an
// installed binary; run `mockery` from the repository root to regenerate
// the mocks under pkg/reminder/mocks and pkg/notify/mocks.
