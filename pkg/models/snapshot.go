package models

// StatusSnapshot is the full, non-differential status payload broadcast to
// dashboard observers on every presence transition. The invariant
// Online+Offline == Total holds for every emitted snapshot.
type StatusSnapshot struct {
	Total   int         `json:"total"`
	Online  int         `json:"online"`
	Offline int         `json:"offline"`
	Data    interface{} `json:"data"`
}
