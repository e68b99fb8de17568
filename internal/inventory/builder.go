package inventory

import (
	"github.com/anetops/anet-inventory/internal/anet"
)

// Options controls inventory construction.
type Options struct {
	// UsePrivateNetwork selects the private address for every host entry.
	UsePrivateNetwork bool
	// GroupVariables is injected as vars of the all group.
	GroupVariables map[string]any
}

// Build assembles the Ansible inventory for the given cloud servers.
//
// Every server is listed in the all group and in groups named after its
// instance ID and description, plus derived groups: image_<vm_image>,
// distro_<display name>, plan_<plan>, and status_<status>. Image and distro
// components pass through SafeGroupName before use.
func Build(servers []anet.CloudServer, opts Options) *Document {
	doc := NewDocument()

	all := doc.group("all")
	if len(opts.GroupVariables) > 0 {
		for k, v := range opts.GroupVariables {
			all.Vars[k] = v
		}
	}

	for i := range servers {
		s := &servers[i]
		dest := s.Address(opts.UsePrivateNetwork)
		if dest == "" {
			continue
		}

		all.Hosts = append(all.Hosts, dest)

		if s.InstanceID != "" {
			doc.group(s.InstanceID).Hosts = append(doc.group(s.InstanceID).Hosts, dest)
		}
		if s.Name != "" {
			doc.group(s.Name).Hosts = append(doc.group(s.Name).Hosts, dest)
		}

		for _, name := range derivedGroups(s) {
			g := doc.group(name)
			g.Hosts = append(g.Hosts, dest)
		}
	}

	return doc
}

// derivedGroups names the classification groups a server belongs to,
// skipping ones whose source field is empty.
func derivedGroups(s *anet.CloudServer) []string {
	var groups []string
	if s.Image != "" {
		groups = append(groups, "image_"+SafeGroupName(s.Image))
	}
	if s.ImageDisplayName != "" {
		groups = append(groups, "distro_"+SafeGroupName(s.ImageDisplayName))
	}
	if s.PlanName != "" {
		groups = append(groups, "plan_"+s.PlanName)
	}
	if s.Status != "" {
		groups = append(groups, "status_"+s.Status)
	}
	return groups
}

// HostVariables namespaces every field of a cloud server under an anet_
// prefix, the shape returned for a --host query.
func HostVariables(s *anet.CloudServer) map[string]any {
	fields := s.Fields()
	vars := make(map[string]any, len(fields))
	for k, v := range fields {
		vars["anet_"+k] = v
	}
	return vars
}
