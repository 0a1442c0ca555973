package hub

import "fmt"

// IdentityKind distinguishes pole and camera registry keys.
type IdentityKind string

const (
	KindPole   IdentityKind = "pole"
	KindCamera IdentityKind = "camera"
)

// Identity names a presence-tracked device. Pole and camera identities are
// distinct registry keys: a camera going offline must never be conflated with
// its hosting pole going offline.
type Identity interface {
	Key() string
	Kind() IdentityKind
}

// PoleIdentity identifies an edge gateway by its pole code.
type PoleIdentity struct {
	Code         string
	RouterIP     string
	FileServerID string
}

func (p PoleIdentity) Key() string {
	return "pole:" + p.Code
}

func (PoleIdentity) Kind() IdentityKind {
	return KindPole
}

// CameraIdentity identifies a camera by its IP, scoped to its hosting pole.
type CameraIdentity struct {
	PoleCode string
	CameraIP string
}

func (c CameraIdentity) Key() string {
	return fmt.Sprintf("camera:%s:%s", c.PoleCode, c.CameraIP)
}

func (CameraIdentity) Kind() IdentityKind {
	return KindCamera
}
