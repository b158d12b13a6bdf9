// Package client assembles the desktop shell: local autosave store, cloud
// sync adapter, background workers and the terminal UI, tied together by a
// single App lifecycle.
package client
