// Package shmring implements a family of lock-free shared-memory ring
// buffers for inter-process communication: single/multi producer and
// consumer variants (SPSC, MPSC, MPMC), a bidirectional duplex Channel
// layered on two independently-named rings, and a publisher/subscriber
// wait/notify ring for low-frequency event streams whose pops block on a
// process-shared condition instead of busy-waiting.
//
// Every variant shares the same on-disk/in-memory segment layout: a
// cache-line aligned synchronization header (magic, head, tail,
// elementSize, capacity) followed by a capacity*elementSize byte slot
// array. The first process to open a name creates and initializes the
// header under a one-writer-wins CAS protocol; every later opener
// attaches and validates its configured elementSize/capacity against
// what is already there.
//
// Payloads are opaque fixed-size byte slices; this package does not
// serialize, fan out, or persist beyond process lifetime, and does not
// authenticate peers. Crash recovery of a peer is best-effort: a
// segment is only ever detected as already-initialized via its magic
// value, never repaired.
package shmring
