// Package inventory assembles the Ansible dynamic-inventory JSON document
// from Atlantic.Net cloud servers: the all group with injected group
// variables, per-ID and per-name host groups, and derived image/distro/
// plan/status groups.
package inventory
