package orders

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onPicked, onDelivered, onCanceled actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"picked":    onPicked,
			"delivered": onDelivered,
			"completed": onDelivered,
			"canceled":  onCanceled,
			"deleted":   onCanceled,
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
