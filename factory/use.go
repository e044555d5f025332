package factory

import wasmbind "github.com/wippyai/wasm-bind"

// Use creates a value through p, hands it to fn and disposes of it when fn
// returns. The call shape is the same in both ownership modes.
func Use[T, A, H any](p Policy[T, A, H], acc wasmbind.Accountant, args A, fn func(H) error) error {
	h, err := p.Create(acc, args)
	if err != nil {
		return err
	}
	defer Dispose[T, A, H](p, acc, h)
	return fn(h)
}
