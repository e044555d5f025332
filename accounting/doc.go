// Package accounting implements host memory accountants.
//
// Counter is the accountant an embedding host owns: it keeps the running
// total of externally allocated bytes and raises a pressure signal when a
// soft limit is crossed, which the host uses to start a collection cycle.
// Recorder wraps another accountant and keeps every delta it sees.
//
// Both types are safe for concurrent use.
package accounting
