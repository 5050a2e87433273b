// Package iter is the minimal pull-based iterator used to express the
// Redfish Interface's lazy, ordered, non-restartable collection-member
// sequence (Each) and the CLI's jq-filtered result rows.
package iter

import (
	"context"
	"errors"
)

var eos = errors.New("end of stream")

// EOS signals the end of the stream.
func EOS() error {
	return eos
}

func IsEOS(err error) bool {
	return errors.Is(err, EOS())
}

// Iterator yields a sequence of T, one at a time, terminated by EOS.
type Iterator[T any] interface {
	Next(ctx context.Context, x *T) error
}

// ForEach drains it, calling fn for every element until EOS or fn returns
// an error.
func ForEach[T any](ctx context.Context, it Iterator[T], fn func(*T) error) error {
	var x T
	for {
		if err := it.Next(ctx, &x); err != nil {
			if IsEOS(err) {
				return nil
			}
			return err
		}
		if err := fn(&x); err != nil {
			return err
		}
	}
}

// Collect drains it into a slice, up to limit elements.
func Collect[T any](ctx context.Context, it Iterator[T], limit int) ([]T, error) {
	var out []T
	var x T
	for len(out) < limit {
		if err := it.Next(ctx, &x); err != nil {
			if IsEOS(err) {
				break
			}
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}
