package provisioning

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/ocpctl/internal/config"
	"github.com/imamik/ocpctl/internal/util/fsutil"
)

func TestNewContext_Defaults(t *testing.T) {
	cfg := config.Default()
	ctx := NewContext(context.Background(), cfg, Deps{})

	assert.Same(t, cfg, ctx.Config)
	assert.NotNil(t, ctx.State)
	assert.NotNil(t, ctx.Observer)
	assert.NotNil(t, ctx.Out)
	assert.NotNil(t, ctx.Timeouts)
	assert.Equal(t, StateInitial, ctx.Checkpoint)
}

func TestContext_HomeDirPrefersOwner(t *testing.T) {
	ctx := NewContext(context.Background(), config.Default(), Deps{Owner: &fsutil.Owner{HomeDir: "/home/ops"}})
	home, err := ctx.HomeDir()
	require.NoError(t, err)
	assert.Equal(t, "/home/ops", home)
}

func TestContext_WithTimeout(t *testing.T) {
	ctx := NewContext(context.Background(), config.Default(), Deps{Observer: NewMockObserver()})

	bounded, cancel := ctx.WithTimeout(time.Minute)
	defer cancel()
	_, ok := bounded.Deadline()
	assert.True(t, ok)

	unbounded, cancel2 := ctx.WithTimeout(0)
	defer cancel2()
	_, ok = unbounded.Deadline()
	assert.False(t, ok)
}

func TestAccessConfig_StringOmitsPassword(t *testing.T) {
	a := AccessConfig{Username: "kubeadmin", Password: "s3cr3t-pass"}
	assert.NotContains(t, a.String(), "s3cr3t-pass")
}
