package native

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// workspace is one request's isolated temp directory. Owned exclusively by
// the run that acquired it; released unconditionally on every exit path.
type workspace struct {
	Dir string
}

func acquireWorkspace(prefix string) (*workspace, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create workspace dir")
	}
	return &workspace{Dir: dir}, nil
}

// Release removes the whole tree. Cleanup is best-effort: a failed delete
// must never mask the real execution result.
func (w *workspace) Release() {
	os.RemoveAll(w.Dir)
}

func (w *workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}
