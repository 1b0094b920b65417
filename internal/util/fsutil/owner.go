package fsutil

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
)

// Owner is the operating-system account that ends up owning generated files.
type Owner struct {
	Username string
	UID      int
	GID      int
	HomeDir  string
}

// LookupOwner resolves name to an Owner. An empty name resolves the invoking user.
func LookupOwner(name string) (*Owner, error) {
	var (
		u   *user.User
		err error
	)
	if name == "" {
		u, err = user.Current()
	} else {
		u, err = user.Lookup(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %q: %w", name, err)
	}

	uid, err := strconv.Atoi(u.Uid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric uid %q", u.Username, u.Uid)
	}
	gid, err := strconv.Atoi(u.Gid)
	if err != nil {
		return nil, fmt.Errorf("user %s has non-numeric gid %q", u.Username, u.Gid)
	}

	return &Owner{Username: u.Username, UID: uid, GID: gid, HomeDir: u.HomeDir}, nil
}

// isProcessOwner reports whether files created by this process already belong to o.
func (o *Owner) isProcessOwner() bool {
	return o.UID == os.Geteuid() && o.GID == os.Getegid()
}

// Chown hands path to the owner. A nil owner, or an owner equal to the
// process identity, is a no-op.
func (o *Owner) Chown(path string) error {
	if o == nil || o.isProcessOwner() {
		return nil
	}
	if err := os.Lchown(path, o.UID, o.GID); err != nil {
		return fmt.Errorf("failed to chown %s to %s: %w", path, o.Username, err)
	}
	return nil
}
