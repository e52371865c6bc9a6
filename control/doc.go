// File: control/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Runtime control plane: tuning configuration with TOML loading and
// hot-reload listeners, and a counter registry the scheduler reports
// into.
package control
