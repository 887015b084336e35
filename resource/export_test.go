package resource

import (
	"slices"
	"testing"
)

// RestoreKinds puts the kind registry back to its current contents when t
// ends.
func RestoreKinds(t testing.TB) {
	t.Helper()
	saved := Kinds()
	t.Cleanup(func() {
		register.mu.Lock()
		defer register.mu.Unlock()
		register.kinds = slices.Clone(saved)
	})
}
