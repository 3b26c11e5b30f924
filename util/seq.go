package util

import "iter"

// SeqOf yields items in order.
func SeqOf[T any](items ...T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

// Collect2 drains a fallible sequence, stopping at the first error.
func Collect2[T any](seq iter.Seq2[T, error]) (out []T, _ error) {
	for item, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, item)
	}
	return out, nil
}
