package consensus

import "github.com/pkg/errors"

var (
	ErrSearchSpaceExhausted = errors.New("mining exhausted search space")
)
