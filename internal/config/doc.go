// Package config handles scenario configuration and instance state for kiln-ctl.
//
// # Scenario Files
//
// A scenario is described by a TOML file (kiln.toml by default) that selects
// an infrastructure driver and lists the platforms (container instances) the
// scenario needs:
//
//	name = "default"
//
//	[driver]
//	name = "podman"
//
//	[[platforms]]
//	name = "web1"
//	image = "quay.io/centos/centos:stream9"
//	privileged = true
//	volumes = ["/sys/fs/cgroup:/sys/fs/cgroup:ro"]
//
// Platform fields are passed through to the driver unmodified; this package
// does not interpret volume, port, or registry semantics.
//
// # Instance State
//
// Created instances are recorded as JSON metadata files under the state dir
// (~/.kiln by default, overridable with KILN_STATE_DIR). Metadata is written
// at create and removed at destroy; listing the state dir is how ps, login,
// and inventory discover instances.
package config
