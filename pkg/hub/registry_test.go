package hub

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	conn := newFakeConn("c1")
	pole := PoleIdentity{Code: "P2"}

	r.Register(conn, pole)
	r.Register(conn, pole)
	r.Register(conn, pole)

	assert.True(t, r.Online(pole))

	gone := r.DropConn("c1")
	require.Len(t, gone, 1)
	assert.False(t, r.Online(pole))
}

func TestRegistryLastEventWins(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	conn := newFakeConn("c1")
	cam := CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.144"}

	r.Register(conn, cam)
	assert.True(t, r.Online(cam))

	last := r.Deregister("c1", cam)
	assert.True(t, last)
	assert.False(t, r.Online(cam))

	// Repeated offline is a no-op.
	assert.False(t, r.Deregister("c1", cam))

	r.Register(conn, cam)
	assert.True(t, r.Online(cam))
}

func TestRegistryCameraAndPoleKeysAreDistinct(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	conn := newFakeConn("c1")
	pole := PoleIdentity{Code: "P2"}
	cam := CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.144"}

	r.Register(conn, pole)
	r.Register(conn, cam)

	// A camera going offline must not take its hosting pole offline.
	r.Deregister("c1", cam)
	assert.False(t, r.Online(cam))
	assert.True(t, r.Online(pole))
}

func TestRegistryIdentitySurvivesUntilLastConnection(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	pole := PoleIdentity{Code: "P2"}

	r.Register(newFakeConn("c1"), pole)
	r.Register(newFakeConn("c2"), pole)

	gone := r.DropConn("c1")
	assert.Empty(t, gone)
	assert.True(t, r.Online(pole))

	gone = r.DropConn("c2")
	require.Len(t, gone, 1)
	assert.Equal(t, pole.Key(), gone[0].Key())
	assert.False(t, r.Online(pole))
}

func TestRegistryDropConnReturnsAllLostIdentities(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Register(conn, PoleIdentity{Code: "P2"})
	r.Register(conn, CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.144"})
	r.Register(conn, CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.145"})

	gone := r.DropConn("c1")
	assert.Len(t, gone, 3)

	// The registry retains no trace of the connection.
	assert.Empty(t, r.OnlinePoles())
	assert.Empty(t, r.AllOnlineCameras())
	assert.Empty(t, r.DropConn("c1"))
}

func TestRegistryOnlineCamerasScopedToPole(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	conn := newFakeConn("c1")

	r.Register(conn, CameraIdentity{PoleCode: "P2", CameraIP: "10.11.5.144"})
	r.Register(conn, CameraIdentity{PoleCode: "P9", CameraIP: "10.20.1.7"})

	assert.Len(t, r.OnlineCameras("P2"), 1)
	assert.Len(t, r.OnlineCameras("P9"), 1)
	assert.Empty(t, r.OnlineCameras("P5"))
	assert.Len(t, r.AllOnlineCameras(), 2)
}
