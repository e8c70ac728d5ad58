package namespace

import (
	"context"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// Unavailable stands in when no durable storage could be opened. Every call
// fails with common.ErrUnavailable; the record store turns those failures
// into "absent" on read.
type Unavailable struct{}

func (Unavailable) Get(context.Context, string) ([]byte, error) {
	return nil, common.ErrUnavailable
}

func (Unavailable) Set(context.Context, string, []byte) error {
	return common.ErrUnavailable
}

func (Unavailable) Delete(context.Context, string) error {
	return common.ErrUnavailable
}

func (Unavailable) List(context.Context) (map[string][]byte, error) {
	return nil, common.ErrUnavailable
}

func (Unavailable) Clear(context.Context) error {
	return common.ErrUnavailable
}
